package musicassistant

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lodgemusic/lodgectl/internal/logging"
	"github.com/lodgemusic/lodgectl/internal/media"
	"github.com/lodgemusic/lodgectl/internal/transport"
)

const (
	// DefaultMediaType is used when a search or play names no media type.
	DefaultMediaType = "track"
	// DefaultSearchLimit is used when a search gives no limit.
	DefaultSearchLimit = 25
	// MediaTypeCustom marks a raw provider URI.
	MediaTypeCustom = "custom"

	servicePath = "/api/services/music_assistant/"
)

// EnqueueMode selects where play_media inserts an item.
type EnqueueMode string

const (
	EnqueueAdd  EnqueueMode = "add"
	EnqueueNext EnqueueMode = "next"
)

// Client calls Music Assistant services through Home Assistant. The token is
// sent as an opaque bearer credential.
type Client struct {
	base      string
	token     string
	transport *transport.Client
	logger    *slog.Logger
}

// NewClient builds a Client for the Home Assistant instance at base.
func NewClient(base, token string, t *transport.Client, logger *slog.Logger) *Client {
	return &Client{
		base:      strings.TrimRight(base, "/"),
		token:     strings.TrimSpace(token),
		transport: t,
		logger:    logging.NewComponentLogger(logger, "music_assistant"),
	}
}

// Search queries the Music Assistant library.
func (c *Client) Search(ctx context.Context, query, mediaType string, limit int) ([]Item, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is empty")
	}
	if mediaType == "" {
		mediaType = DefaultMediaType
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	resp, err := c.call(ctx, "search", map[string]any{
		"search":     query,
		"media_type": []string{mediaType},
		"limit":      limit,
	})
	if err != nil {
		return nil, err
	}
	var payload struct {
		Items []Item `json:"items"`
	}
	if err := decode(unwrapResponse(resp.JSON, ""), &payload); err != nil {
		return nil, fmt.Errorf("music assistant search: %w", err)
	}
	if payload.Items == nil {
		payload.Items = []Item{}
	}
	return payload.Items, nil
}

// PlayMedia plays mediaID on the target player.
func (c *Client) PlayMedia(ctx context.Context, target, mediaID, mediaType string) error {
	if mediaType == "" {
		mediaType = DefaultMediaType
	}
	return c.play(ctx, "play_media", target, mediaID, map[string]any{
		"entity_id":  target,
		"media_id":   mediaID,
		"media_type": mediaType,
	})
}

// PlayFromURI plays a raw provider URI.
func (c *Client) PlayFromURI(ctx context.Context, target, uri string) error {
	return c.PlayMedia(ctx, target, uri, MediaTypeCustom)
}

// Enqueue inserts mediaID into the target's queue.
func (c *Client) Enqueue(ctx context.Context, target, mediaID string, mode EnqueueMode) error {
	if mode != EnqueueAdd && mode != EnqueueNext {
		return fmt.Errorf("unknown enqueue mode %q", mode)
	}
	return c.play(ctx, "enqueue", target, mediaID, map[string]any{
		"entity_id": target,
		"media_id":  mediaID,
		"enqueue":   string(mode),
	})
}

// QueueAdd appends mediaID to the end of the queue.
func (c *Client) QueueAdd(ctx context.Context, target, mediaID string) error {
	return c.Enqueue(ctx, target, mediaID, EnqueueAdd)
}

// QueueNext inserts mediaID after the current item.
func (c *Client) QueueNext(ctx context.Context, target, mediaID string) error {
	return c.Enqueue(ctx, target, mediaID, EnqueueNext)
}

// Queue fetches the target player's queue.
func (c *Client) Queue(ctx context.Context, target string) (media.Queue, error) {
	if strings.TrimSpace(target) == "" {
		return media.Queue{}, fmt.Errorf("get queue: select a player first")
	}
	resp, err := c.call(ctx, "get_queue", map[string]any{"entity_id": target})
	if err != nil {
		return media.Queue{}, err
	}
	var payload queuePayload
	if err := decode(unwrapResponse(resp.JSON, target), &payload); err != nil {
		return media.Queue{}, fmt.Errorf("music assistant queue: %w", err)
	}
	return payload.queue(), nil
}

func (c *Client) play(ctx context.Context, op, target, mediaID string, body map[string]any) error {
	if strings.TrimSpace(target) == "" {
		return &media.PlaybackError{Op: op, Source: string(media.ProviderMusicAssistant), Err: fmt.Errorf("select a player first")}
	}
	if strings.TrimSpace(mediaID) == "" {
		return &media.PlaybackError{Op: op, Source: string(media.ProviderMusicAssistant), Err: fmt.Errorf("nothing to play")}
	}
	if _, err := c.call(ctx, "play_media", body); err != nil {
		return &media.PlaybackError{Op: op, Source: string(media.ProviderMusicAssistant), Err: err}
	}
	return nil
}

func (c *Client) call(ctx context.Context, service string, body any) (*transport.Response, error) {
	headers := http.Header{}
	if c.token != "" {
		headers.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.transport.Do(ctx, transport.Request{
		Method:  http.MethodPost,
		URL:     c.base + servicePath + service,
		Body:    body,
		Headers: headers,
	})
	if err != nil {
		return nil, fmt.Errorf("music assistant %s: %w", service, err)
	}
	return resp, nil
}
