package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the console.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	Escape     key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Common actions
	Search       key.Binding
	Play         key.Binding
	Stop         key.Binding
	Refresh      key.Binding
	NextSelector key.Binding
	PrevSelector key.Binding

	// Calm Radio
	NextCategory key.Binding
	PrevCategory key.Binding

	// Roon
	RoonPlay  key.Binding
	RoonPause key.Binding
	RoonNext  key.Binding
	RoonPrev  key.Binding

	// Music Assistant
	QueueAdd       key.Binding
	QueueNext      key.Binding
	ShowQueue      key.Binding
	CycleMediaType key.Binding

	// Volume (device tabs)
	VolumeUp   key.Binding
	VolumeDown key.Binding
	Mute       key.Binding
	Unmute     key.Binding

	// Logs
	ToggleFollow key.Binding
	CycleLevel   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous tab"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel search"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		Play: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Play selection"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Stop"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),
		NextSelector: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Next room/zone/device"),
		),
		PrevSelector: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Previous room/zone/device"),
		),

		NextCategory: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Next category"),
		),
		PrevCategory: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "Previous category"),
		),

		RoonPlay: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Play"),
		),
		RoonPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Pause"),
		),
		RoonNext: key.NewBinding(
			key.WithKeys(">", "."),
			key.WithHelp(">", "Next track"),
		),
		RoonPrev: key.NewBinding(
			key.WithKeys("<", ","),
			key.WithHelp("<", "Previous track"),
		),

		QueueAdd: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add to queue"),
		),
		QueueNext: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Play next"),
		),
		ShowQueue: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Load queue"),
		),
		CycleMediaType: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Cycle media type"),
		),

		VolumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Volume up"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Volume down"),
		),
		Mute: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "Mute"),
		),
		Unmute: key.NewBinding(
			key.WithKeys("U"),
			key.WithHelp("U", "Unmute"),
		),

		ToggleFollow: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Toggle follow"),
		),
		CycleLevel: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Cycle minimum level"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Search, k.Play, k.Stop, k.Help, k.Quit}
}

// FullHelp returns key bindings grouped for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Up, k.Down, k.Top, k.Bottom},
		{k.Search, k.Play, k.Stop, k.Refresh, k.PrevSelector, k.NextSelector},
		{k.NextCategory, k.PrevCategory},
		{k.RoonPlay, k.RoonPause, k.RoonNext, k.RoonPrev},
		{k.QueueAdd, k.QueueNext, k.ShowQueue, k.CycleMediaType},
		{k.VolumeUp, k.VolumeDown, k.Mute, k.Unmute},
		{k.ToggleFollow, k.CycleLevel},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
