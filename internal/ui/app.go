// Package ui implements the interactive lodge console on Bubble Tea.
package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lodgemusic/lodgectl/internal/console"
	"github.com/lodgemusic/lodgectl/internal/logging"
	"github.com/lodgemusic/lodgectl/internal/prefs"
	"github.com/lodgemusic/lodgectl/internal/services/roon"
)

// Options configures the console.
type Options struct {
	Context            context.Context
	Screens            *Screens
	Logger             *slog.Logger
	Prefs              prefs.Prefs
	PrefsPath          string
	LogPath            string
	RequestTimeout     time.Duration
	NowPlayingInterval time.Duration
	Tick               time.Duration
}

// Model is the root console state for Bubble Tea.
type Model struct {
	ctx                context.Context
	screens            *Screens
	logger             *slog.Logger
	keys               keyMap
	prefs              prefs.Prefs
	prefsPath          string
	logPath            string
	requestTimeout     time.Duration
	nowPlayingInterval time.Duration
	tick               time.Duration

	theme  Theme
	tab    Tab
	width  int
	height int
	ready  bool

	cursor   [tabCount]int
	showHelp bool

	searching bool
	input     textinput.Model

	pending int
	spinner spinner.Model

	logs logState
}

// actionMsg reports a finished backend action.
type actionMsg struct {
	tab Tab
	err error
}

type tickMsg time.Time

// New creates the console model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	nowPlaying := opts.NowPlayingInterval
	if nowPlaying <= 0 {
		nowPlaying = DefaultNowPlayingInterval
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultUIInterval
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	input := textinput.New()
	input.Placeholder = "Search..."
	input.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:                ctx,
		screens:            opts.Screens,
		logger:             logging.NewComponentLogger(opts.Logger, "ui"),
		keys:               DefaultKeyMap(),
		prefs:              opts.Prefs,
		prefsPath:          prefsPath,
		logPath:            opts.LogPath,
		requestTimeout:     timeout,
		nowPlayingInterval: nowPlaying,
		tick:               tick,
		theme:              GetTheme(opts.Prefs.Theme),
		tab:                TabQuickPlay,
		input:              input,
		spinner:            sp,
		logs:               newLogState(),
	}
	for t := Tab(0); t < tabCount; t++ {
		if m.screens != nil && m.screens.load(t, "", "") != nil {
			m.pending++
		}
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.tick), m.spinner.Tick}
	for t := Tab(0); t < tabCount; t++ {
		if act := m.screens.load(t, m.prefs.Room, m.prefs.Zone); act != nil {
			cmds = append(cmds, m.command(t, act))
		}
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeLogViewport()
		return m, nil

	case actionMsg:
		if m.pending > 0 {
			m.pending--
		}
		if msg.tab == TabRoon && m.tab == TabRoon {
			m.ensureNowPlaying()
		}
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd(m.tick)}
		if m.tab == TabLogs && m.logs.follow {
			cmds = append(cmds, loadLogsCmd(m.logPath))
		}
		return m, tea.Batch(cmds...)

	case logsMsg:
		m.handleLogs(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.screens.Roon.StopNowPlaying()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab(m.tab.step(1))
	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab(m.tab.step(-1))
	case key.Matches(msg, m.keys.Search):
		if !m.tab.searchable() {
			return m, nil
		}
		m.searching = true
		m.input.SetValue("")
		m.input.Placeholder = searchPlaceholder(m.tab)
		return m, m.input.Focus()
	}

	if m.tab == TabLogs {
		return m.handleLogsKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Top):
		m.cursor[m.tab] = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor[m.tab] = maxInt(len(m.screens.rows(m.tab))-1, 0)
	case key.Matches(msg, m.keys.NextSelector):
		return m.cycleSelector(1)
	case key.Matches(msg, m.keys.PrevSelector):
		return m.cycleSelector(-1)
	case key.Matches(msg, m.keys.Refresh):
		return m.dispatch(m.tab, m.screens.load(m.tab, m.prefs.Room, m.prefs.Zone))
	case key.Matches(msg, m.keys.Play):
		return m.activate()
	case key.Matches(msg, m.keys.Stop):
		return m.dispatch(m.tab, m.screens.stop(m.tab))
	default:
		return m.handleTabKey(msg)
	}
	return m, nil
}

// handleTabKey covers bindings that only exist on one tab.
func (m Model) handleTabKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.screens
	switch m.tab {
	case TabCalm:
		switch {
		case key.Matches(msg, m.keys.NextCategory):
			m.cursor[TabCalm] = 0
			return m.dispatch(TabCalm, func(ctx context.Context) error { s.Calm.CycleCategory(ctx, 1); return nil })
		case key.Matches(msg, m.keys.PrevCategory):
			m.cursor[TabCalm] = 0
			return m.dispatch(TabCalm, func(ctx context.Context) error { s.Calm.CycleCategory(ctx, -1); return nil })
		}
	case TabRoon:
		switch {
		case key.Matches(msg, m.keys.RoonPlay):
			return m.dispatch(TabRoon, s.roonControl(roon.ActionPlay))
		case key.Matches(msg, m.keys.RoonPause):
			return m.dispatch(TabRoon, s.roonControl(roon.ActionPause))
		case key.Matches(msg, m.keys.RoonNext):
			return m.dispatch(TabRoon, s.roonControl(roon.ActionNext))
		case key.Matches(msg, m.keys.RoonPrev):
			return m.dispatch(TabRoon, s.roonControl(roon.ActionPrev))
		}
	case TabAssistant:
		index := m.cursor[TabAssistant]
		switch {
		case key.Matches(msg, m.keys.QueueAdd):
			return m.dispatch(TabAssistant, func(ctx context.Context) error { return s.Assistant.QueueAdd(ctx, index) })
		case key.Matches(msg, m.keys.QueueNext):
			return m.dispatch(TabAssistant, func(ctx context.Context) error { return s.Assistant.QueueNext(ctx, index) })
		case key.Matches(msg, m.keys.ShowQueue):
			return m.dispatch(TabAssistant, s.Assistant.LoadQueue)
		case key.Matches(msg, m.keys.CycleMediaType):
			s.Assistant.CycleMediaType(1)
			return m, nil
		}
	}

	if vol := s.volume(m.tab); vol != nil {
		switch {
		case key.Matches(msg, m.keys.VolumeUp):
			return m.dispatch(m.tab, applyVolume(vol, console.VolumeUp))
		case key.Matches(msg, m.keys.VolumeDown):
			return m.dispatch(m.tab, applyVolume(vol, console.VolumeDown))
		case key.Matches(msg, m.keys.Mute):
			return m.dispatch(m.tab, applyVolume(vol, console.VolumeMute))
		case key.Matches(msg, m.keys.Unmute):
			return m.dispatch(m.tab, applyVolume(vol, console.VolumeUnmute))
		}
	}
	return m, nil
}

// applyVolume sends a and reads the resulting level back.
func applyVolume(vol *console.VolumeControl, a console.VolumeAction) action {
	return func(ctx context.Context) error {
		if err := vol.Apply(ctx, a); err != nil {
			return err
		}
		vol.RefreshLevel(ctx)
		return nil
	}
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		query := m.input.Value()
		m.searching = false
		m.input.Blur()
		if m.tab == TabLogs {
			m.logs.query = strings.TrimSpace(query)
			m.refreshLogViewport()
			return m, nil
		}
		m.cursor[m.tab] = 0
		return m.dispatch(m.tab, m.screens.search(m.tab, query))
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// switchTab moves to next. Leaving Roon tears down its now-playing poll.
func (m Model) switchTab(next Tab) (tea.Model, tea.Cmd) {
	if m.tab == TabRoon && next != TabRoon {
		m.screens.Roon.StopNowPlaying()
	}
	m.tab = next
	switch next {
	case TabRoon:
		m.ensureNowPlaying()
	case TabLogs:
		return m, loadLogsCmd(m.logPath)
	}
	return m, nil
}

func (m Model) cycleSelector(delta int) (tea.Model, tea.Cmd) {
	s := m.screens
	switch {
	case m.tab.usesRooms():
		room := s.roomPicker(m.tab).Cycle(delta)
		for _, picker := range s.roomPickers() {
			picker.Select(room)
		}
		m.prefs.Room = room
		m.savePrefs()
	case m.tab == TabRoon:
		zone := s.Roon.CycleZone(delta)
		m.prefs.Zone = zone
		m.savePrefs()
		m.ensureNowPlaying()
	default:
		if picker := s.devicePicker(m.tab); picker != nil {
			picker.Cycle(delta)
		}
		if vol := s.volume(m.tab); vol != nil {
			return m.dispatch(m.tab, func(ctx context.Context) error {
				vol.RefreshLevel(ctx)
				return nil
			})
		}
	}
	return m, nil
}

func (m Model) activate() (tea.Model, tea.Cmd) {
	index := m.cursor[m.tab]
	if m.tab == TabRoon {
		zones := m.screens.Roon.Zones()
		if index < 0 || index >= len(zones) {
			return m, nil
		}
		m.screens.Roon.SelectZone(zones[index].ID)
		m.prefs.Zone = zones[index].ID
		m.savePrefs()
		m.ensureNowPlaying()
		return m, nil
	}
	return m.dispatch(m.tab, m.screens.activate(m.tab, index))
}

// ensureNowPlaying starts the Roon poll when a zone is chosen and none runs.
func (m Model) ensureNowPlaying() {
	r := m.screens.Roon
	if r.Zone() == "" || r.Polling() {
		return
	}
	r.StartNowPlaying(m.ctx, m.nowPlayingInterval)
}

func (m *Model) moveCursor(delta int) {
	n := len(m.screens.rows(m.tab))
	if n == 0 {
		m.cursor[m.tab] = 0
		return
	}
	next := m.cursor[m.tab] + delta
	m.cursor[m.tab] = maxInt(0, minInt(next, n-1))
}

// dispatch runs act in the background and counts it as pending.
func (m Model) dispatch(tab Tab, act action) (tea.Model, tea.Cmd) {
	if act == nil {
		return m, nil
	}
	m.pending++
	return m, m.command(tab, act)
}

// command wraps act in a command bounded by the request timeout.
func (m Model) command(tab Tab, act action) tea.Cmd {
	parent := m.ctx
	timeout := m.requestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		return actionMsg{tab: tab, err: act(ctx)}
	}
}

func (m Model) savePrefs() {
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("save preferences failed", logging.Error(err))
	}
}

func searchPlaceholder(t Tab) string {
	switch t {
	case TabAlexa:
		return "Ask Alexa to play..."
	case TabLogs:
		return "Filter logs..."
	case TabAssistant:
		return "Search the library..."
	}
	return "Search " + t.String() + "..."
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	m.screens.Roon.StopNowPlaying()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
