package spotify

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/lodgemusic/lodgectl/internal/logging"
	"github.com/lodgemusic/lodgectl/internal/media"
	"github.com/lodgemusic/lodgectl/internal/transport"
)

const (
	// DefaultSearchKinds is the type filter used when none is given.
	DefaultSearchKinds = "track,album,playlist"
	// DefaultSearchLimit is the result limit used when none is given.
	DefaultSearchLimit = 20
)

// Client wraps the Spotify bridge endpoints.
type Client struct {
	base      string
	transport *transport.Client
	logger    *slog.Logger
}

// NewClient builds a Client for the Spotify bridge at base.
func NewClient(base string, t *transport.Client, logger *slog.Logger) *Client {
	return &Client{
		base:      strings.TrimRight(base, "/"),
		transport: t,
		logger:    logging.NewComponentLogger(logger, "spotify"),
	}
}

// Search runs a catalog search. Errors propagate to the caller.
func (c *Client) Search(ctx context.Context, query, kinds string, limit int) (SearchResults, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchResults{}, fmt.Errorf("search query is empty")
	}
	if strings.TrimSpace(kinds) == "" {
		kinds = DefaultSearchKinds
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	values := url.Values{}
	values.Set("q", query)
	values.Set("type", kinds)
	values.Set("limit", strconv.Itoa(limit))

	var payload searchPayload
	if err := c.transport.GetJSON(ctx, c.base+"/search?"+values.Encode(), &payload); err != nil {
		return SearchResults{}, fmt.Errorf("spotify search: %w", err)
	}
	return SearchResults{
		Tracks:    payload.Tracks.Items,
		Albums:    payload.Albums.Items,
		Playlists: payload.Playlists.Items,
	}, nil
}

// Devices lists Spotify Connect devices. Failures yield an empty list.
func (c *Client) Devices(ctx context.Context) []Device {
	resp, err := c.transport.Do(ctx, transport.Request{URL: c.base + "/devices"})
	if err != nil {
		c.logger.Warn("device listing failed", logging.Error(err))
		return []Device{}
	}
	devices, err := decodeDevices(resp.JSON)
	if err != nil {
		c.logger.Warn("device listing unreadable", logging.Error(err))
		return []Device{}
	}
	if devices == nil {
		devices = []Device{}
	}
	return devices
}

// NowPlaying returns the current playback, or nil when nothing is known or
// the request failed.
func (c *Client) NowPlaying(ctx context.Context) *media.PlaybackState {
	resp, err := c.transport.Do(ctx, transport.Request{URL: c.base + "/now_playing"})
	if err != nil {
		c.logger.Warn("now playing poll failed", logging.Error(err))
		return nil
	}
	if body := strings.TrimSpace(string(resp.JSON)); body == "" || body == "null" {
		return nil
	}
	var payload nowPlayingPayload
	if err := resp.Decode(&payload); err != nil {
		c.logger.Warn("now playing unreadable", logging.Error(err))
		return nil
	}
	return payload.playbackState()
}
