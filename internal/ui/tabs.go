package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/lodgemusic/lodgectl/internal/console"
	"github.com/lodgemusic/lodgectl/internal/services/roon"
)

// Tab identifies one console tab.
type Tab int

const (
	TabQuickPlay Tab = iota
	TabYouTube
	TabSpotify
	TabCalm
	TabRoon
	TabAssistant
	TabAlexa
	TabStatus
	TabLogs
	tabCount
)

var tabTitles = [tabCount]string{
	"Quick Play",
	"YouTube Music",
	"Spotify",
	"Calm Radio",
	"Roon",
	"Assistant",
	"Alexa",
	"Status",
	"Logs",
}

func (t Tab) String() string {
	if t < 0 || t >= tabCount {
		return fmt.Sprintf("Tab(%d)", int(t))
	}
	return tabTitles[t]
}

// step returns the tab delta positions away, wrapping around.
func (t Tab) step(delta int) Tab {
	n := int(tabCount)
	return Tab(((int(t)+delta)%n + n) % n)
}

// searchable reports whether "/" opens the search input on t.
func (t Tab) searchable() bool {
	switch t {
	case TabYouTube, TabSpotify, TabCalm, TabAssistant, TabAlexa, TabLogs:
		return true
	}
	return false
}

func (t Tab) usesRooms() bool {
	switch t {
	case TabQuickPlay, TabYouTube, TabSpotify, TabCalm:
		return true
	}
	return false
}

// Screens bundles the controllers behind each tab.
type Screens struct {
	QuickPlay       *console.QuickPlay
	YouTube         *console.YouTubeScreen
	Spotify         *console.SpotifyScreen
	Calm            *console.CalmScreen
	Roon            *console.RoonScreen
	Assistant       *console.AssistantScreen
	AssistantVolume *console.VolumeControl
	Alexa           *console.AlexaScreen
	AlexaVolume     *console.VolumeControl
	Status          *console.StatusScreen
}

// action is one unit of backend work triggered from the console.
type action func(ctx context.Context) error

// row is one line of a tab's list.
type row struct {
	Title  string
	Detail string
	Badge  string
}

func (s *Screens) roomPickers() []*console.RoomPicker {
	return []*console.RoomPicker{s.QuickPlay.Rooms, s.YouTube.Rooms, s.Spotify.Rooms, s.Calm.Rooms}
}

func (s *Screens) roomPicker(t Tab) *console.RoomPicker {
	switch t {
	case TabQuickPlay:
		return s.QuickPlay.Rooms
	case TabYouTube:
		return s.YouTube.Rooms
	case TabSpotify:
		return s.Spotify.Rooms
	case TabCalm:
		return s.Calm.Rooms
	}
	return nil
}

func (s *Screens) devicePicker(t Tab) *console.DevicePicker {
	switch t {
	case TabAssistant:
		return s.Assistant.Players
	case TabAlexa:
		return s.Alexa.Devices
	}
	return nil
}

func (s *Screens) volume(t Tab) *console.VolumeControl {
	switch t {
	case TabAssistant:
		return s.AssistantVolume
	case TabAlexa:
		return s.AlexaVolume
	}
	return nil
}

func (s *Screens) journal(t Tab) *console.Journal {
	switch t {
	case TabQuickPlay:
		return s.QuickPlay.Journal
	case TabYouTube:
		return s.YouTube.Journal
	case TabSpotify:
		return s.Spotify.Journal
	case TabCalm:
		return s.Calm.Journal
	case TabRoon:
		return s.Roon.Journal
	case TabAssistant:
		return s.Assistant.Journal
	case TabAlexa:
		return s.Alexa.Journal
	}
	return nil
}

// selector returns the label and current value of the tab's target picker.
func (s *Screens) selector(t Tab) (string, string) {
	switch {
	case t.usesRooms():
		return "Room", s.roomPicker(t).Selected()
	case t == TabRoon:
		return "Zone", s.Roon.ZoneLabel()
	case t == TabAssistant:
		return "Player", s.Assistant.Players.SelectedName()
	case t == TabAlexa:
		return "Device", s.Alexa.Devices.SelectedName()
	}
	return "", ""
}

func (s *Screens) rows(t Tab) []row {
	var out []row
	switch t {
	case TabQuickPlay:
		for _, p := range s.QuickPlay.Presets() {
			out = append(out, row{Title: p.Label, Detail: titleCase(p.Source)})
		}
	case TabYouTube:
		for _, item := range s.YouTube.Results() {
			out = append(out, row{Title: item.Title, Detail: item.ArtistLine()})
		}
	case TabSpotify:
		for _, item := range s.Spotify.Results() {
			out = append(out, row{Title: item.Title, Detail: item.ArtistLine(), Badge: titleCase(item.Kind)})
		}
	case TabCalm:
		for _, ch := range s.Calm.Channels() {
			out = append(out, row{Title: ch.DisplayTitle(), Detail: titleCase(ch.Category)})
		}
	case TabRoon:
		current := s.Roon.Zone()
		for _, z := range s.Roon.Zones() {
			r := row{Title: z.Label(), Detail: titleCase(z.State)}
			if z.ID == current {
				r.Badge = "selected"
			}
			out = append(out, r)
		}
	case TabAssistant:
		for _, item := range s.Assistant.Results() {
			out = append(out, row{Title: item.Name, Detail: item.ArtistName(), Badge: titleCase(item.MediaType)})
		}
	case TabAlexa:
		for _, c := range console.AlexaQuickCommands {
			out = append(out, row{Title: c.Label, Detail: c.Query})
		}
	case TabStatus:
		for _, svc := range s.Status.Services() {
			out = append(out, row{Title: svc.Label, Detail: svc.URL, Badge: string(svc.Status)})
		}
	}
	return out
}

// load refreshes the tab's pickers and listings.
func (s *Screens) load(t Tab, prefRoom, prefZone string) action {
	switch t {
	case TabQuickPlay, TabYouTube, TabSpotify, TabCalm:
		return func(ctx context.Context) error {
			var err error
			switch t {
			case TabQuickPlay:
				err = s.QuickPlay.Load(ctx)
			case TabYouTube:
				err = s.YouTube.Load(ctx)
			case TabSpotify:
				err = s.Spotify.Load(ctx)
			case TabCalm:
				err = s.Calm.Load(ctx)
			}
			if picker := s.roomPicker(t); prefRoom != "" && picker.Selected() == "" {
				picker.Select(prefRoom)
			}
			return err
		}
	case TabRoon:
		return func(ctx context.Context) error {
			s.Roon.Load(ctx)
			if prefZone != "" && s.Roon.Zone() == "" {
				for _, z := range s.Roon.Zones() {
					if z.ID == prefZone {
						s.Roon.SelectZone(z.ID)
					}
				}
			}
			return nil
		}
	case TabAssistant:
		return s.Assistant.Load
	case TabAlexa:
		return s.Alexa.Load
	case TabStatus:
		return func(ctx context.Context) error {
			s.Status.Refresh(ctx)
			return nil
		}
	}
	return nil
}

// activate runs the enter action for row index on tab t.
func (s *Screens) activate(t Tab, index int) action {
	switch t {
	case TabQuickPlay:
		return func(ctx context.Context) error { return s.QuickPlay.Play(ctx, index) }
	case TabYouTube:
		return func(ctx context.Context) error { return s.YouTube.Play(ctx, index) }
	case TabSpotify:
		return func(ctx context.Context) error { return s.Spotify.Play(ctx, index) }
	case TabCalm:
		return func(ctx context.Context) error { return s.Calm.Play(ctx, index) }
	case TabAssistant:
		return func(ctx context.Context) error { return s.Assistant.Play(ctx, index) }
	case TabAlexa:
		if index < 0 || index >= len(console.AlexaQuickCommands) {
			return nil
		}
		query := console.AlexaQuickCommands[index].Query
		return func(ctx context.Context) error { return s.Alexa.Send(ctx, query) }
	case TabStatus:
		return s.load(TabStatus, "", "")
	}
	return nil
}

// search runs query on tab t.
func (s *Screens) search(t Tab, query string) action {
	query = strings.TrimSpace(query)
	switch t {
	case TabYouTube:
		return func(ctx context.Context) error { return s.YouTube.Search(ctx, query) }
	case TabSpotify:
		return func(ctx context.Context) error { return s.Spotify.Search(ctx, query) }
	case TabCalm:
		return func(ctx context.Context) error { return s.Calm.Search(ctx, query) }
	case TabAssistant:
		return func(ctx context.Context) error { return s.Assistant.Search(ctx, query) }
	case TabAlexa:
		return func(ctx context.Context) error { return s.Alexa.Send(ctx, query) }
	}
	return nil
}

// stop stops playback for the tab's current target.
func (s *Screens) stop(t Tab) action {
	switch t {
	case TabQuickPlay:
		return s.QuickPlay.Stop
	case TabYouTube:
		return s.YouTube.Stop
	case TabSpotify:
		return s.Spotify.Stop
	case TabCalm:
		return s.Calm.Stop
	case TabRoon:
		return s.roonControl(roon.ActionStop)
	}
	return nil
}

func (s *Screens) roonControl(a roon.Action) action {
	return func(ctx context.Context) error { return s.Roon.Control(ctx, a) }
}
