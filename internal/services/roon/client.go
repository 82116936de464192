package roon

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/lodgemusic/lodgectl/internal/logging"
	"github.com/lodgemusic/lodgectl/internal/media"
	"github.com/lodgemusic/lodgectl/internal/transport"
)

// Action is a transport verb. Each verb is a path segment on the bridge.
type Action string

const (
	ActionPlay  Action = "play"
	ActionPause Action = "pause"
	ActionNext  Action = "next"
	ActionPrev  Action = "prev"
	ActionStop  Action = "stop"
)

// Actions lists the supported verbs in control-bar order.
func Actions() []Action {
	return []Action{ActionPlay, ActionPause, ActionPrev, ActionNext, ActionStop}
}

// ParseAction validates a verb.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Actions() {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown roon action %q", s)
}

// Zone is a Roon playback group.
type Zone struct {
	ID          string `json:"zone_id"`
	DisplayName string `json:"display_name"`
	State       string `json:"state,omitempty"`
}

// Label returns the display name, or the ID when the name is empty.
func (z Zone) Label() string {
	if z.DisplayName != "" {
		return z.DisplayName
	}
	return z.ID
}

type threeLine struct {
	Line1 string `json:"line1"`
	Line2 string `json:"line2"`
	Line3 string `json:"line3"`
}

type nowPlayingPayload struct {
	State      string `json:"state"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	Volume     *int   `json:"volume"`
	NowPlaying *struct {
		ThreeLine threeLine `json:"three_line"`
	} `json:"now_playing"`
}

func (p nowPlayingPayload) playbackState() *media.PlaybackState {
	title, artist, album := p.Title, p.Artist, p.Album
	if title == "" && p.NowPlaying != nil {
		title = p.NowPlaying.ThreeLine.Line1
		artist = p.NowPlaying.ThreeLine.Line2
		album = p.NowPlaying.ThreeLine.Line3
	}
	state := &media.PlaybackState{State: p.State}
	if state.State == "" {
		state.State = media.StateIdle
	}
	if title != "" {
		item := media.Item{Provider: media.ProviderRoon, Kind: "track", Title: title}
		if artist != "" {
			item.Artists = []media.Artist{{Name: artist}}
		}
		if album != "" {
			item.Album = &media.Album{Name: album}
		}
		state.Current = &item
	}
	if p.Volume != nil {
		state.VolumeLevel = *p.Volume
	}
	return state
}

// Client wraps the Roon bridge.
type Client struct {
	base      string
	transport *transport.Client
	logger    *slog.Logger
}

// NewClient builds a Client for the Roon bridge at base.
func NewClient(base string, t *transport.Client, logger *slog.Logger) *Client {
	return &Client{
		base:      strings.TrimRight(base, "/"),
		transport: t,
		logger:    logging.NewComponentLogger(logger, "roon"),
	}
}

// Zones lists playback zones. Failures yield an empty list.
func (c *Client) Zones(ctx context.Context) []Zone {
	var zones []Zone
	if err := c.transport.GetJSON(ctx, c.base+"/zones", &zones); err != nil {
		c.logger.Warn("zone listing failed", logging.Error(err))
		return []Zone{}
	}
	if zones == nil {
		zones = []Zone{}
	}
	return zones
}

// Control posts {zone} to /{action}. Failures are *media.PlaybackError.
func (c *Client) Control(ctx context.Context, zone string, action Action) error {
	if _, err := ParseAction(string(action)); err != nil {
		return &media.PlaybackError{Op: string(action), Source: string(media.ProviderRoon), Err: err}
	}
	if strings.TrimSpace(zone) == "" {
		return &media.PlaybackError{Op: string(action), Source: string(media.ProviderRoon), Err: fmt.Errorf("select a zone first")}
	}
	if _, err := c.transport.Do(ctx, transport.Request{
		Method: http.MethodPost,
		URL:    c.base + "/" + string(action),
		Body:   map[string]string{"zone": zone},
	}); err != nil {
		return &media.PlaybackError{Op: string(action), Source: string(media.ProviderRoon), Err: err}
	}
	return nil
}

// Play resumes playback in zone.
func (c *Client) Play(ctx context.Context, zone string) error { return c.Control(ctx, zone, ActionPlay) }

// Pause pauses zone.
func (c *Client) Pause(ctx context.Context, zone string) error { return c.Control(ctx, zone, ActionPause) }

// Next skips forward in zone.
func (c *Client) Next(ctx context.Context, zone string) error { return c.Control(ctx, zone, ActionNext) }

// Prev skips back in zone.
func (c *Client) Prev(ctx context.Context, zone string) error { return c.Control(ctx, zone, ActionPrev) }

// Stop stops zone.
func (c *Client) Stop(ctx context.Context, zone string) error { return c.Control(ctx, zone, ActionStop) }

// NowPlaying returns the zone's current playback, or nil on any failure.
func (c *Client) NowPlaying(ctx context.Context, zone string) *media.PlaybackState {
	if strings.TrimSpace(zone) == "" {
		return nil
	}
	resp, err := c.transport.Do(ctx, transport.Request{URL: c.base + "/now_playing/" + url.PathEscape(zone)})
	if err != nil {
		c.logger.Debug("now playing poll failed", logging.Error(err), "zone", zone)
		return nil
	}
	if body := strings.TrimSpace(string(resp.JSON)); body == "" || body == "null" {
		return nil
	}
	var payload nowPlayingPayload
	if err := resp.Decode(&payload); err != nil {
		c.logger.Warn("now playing unreadable", logging.Error(err), "zone", zone)
		return nil
	}
	return payload.playbackState()
}
