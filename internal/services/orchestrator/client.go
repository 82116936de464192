package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/lodgemusic/lodgectl/internal/logging"
	"github.com/lodgemusic/lodgectl/internal/media"
	"github.com/lodgemusic/lodgectl/internal/transport"
)

// Controller is implemented by *Client.
type Controller interface {
	Play(ctx context.Context, cmd PlayCommand) (json.RawMessage, error)
	Stop(ctx context.Context, target Target, source string) error
	Status(ctx context.Context) *Status
	AlexaCommand(ctx context.Context, device, query string) (json.RawMessage, error)
	Playing() bool
}

var _ Controller = (*Client)(nil)

// Client issues play and stop commands against the orchestrator.
type Client struct {
	base      string
	transport *transport.Client
	logger    *slog.Logger
	playing   atomic.Bool
}

// NewClient builds a Client for the orchestrator at base.
func NewClient(base string, t *transport.Client, logger *slog.Logger) *Client {
	return &Client{
		base:      strings.TrimRight(base, "/"),
		transport: t,
		logger:    logging.NewComponentLogger(logger, "orchestrator"),
	}
}

// Play posts cmd to /play. The playing flag is set only on success; failures
// are returned as *media.PlaybackError.
func (c *Client) Play(ctx context.Context, cmd PlayCommand) (json.RawMessage, error) {
	if err := cmd.Validate(); err != nil {
		return nil, &media.PlaybackError{Op: "play", Source: cmd.Source, Err: err}
	}
	resp, err := c.transport.Do(ctx, transport.Request{
		Method: http.MethodPost,
		URL:    c.base + "/play",
		Body:   cmd,
	})
	if err != nil {
		return nil, &media.PlaybackError{Op: "play", Source: cmd.Source, Err: err}
	}
	c.playing.Store(true)
	c.logger.Info("play accepted", "source", cmd.Source, "target", cmd.Target().String())
	return responseBody(resp), nil
}

// Stop posts {room|device, source} to /stop. An empty source means "all".
// The playing flag is cleared only on success.
func (c *Client) Stop(ctx context.Context, target Target, source string) error {
	if strings.TrimSpace(source) == "" {
		source = SourceAll
	}
	if err := target.Validate(); err != nil {
		return &media.PlaybackError{Op: "stop", Source: source, Err: err}
	}
	body := map[string]string{"source": source}
	if target.Room != "" {
		body["room"] = target.Room
	} else {
		body["device"] = target.Device
	}
	if _, err := c.transport.Do(ctx, transport.Request{
		Method: http.MethodPost,
		URL:    c.base + "/stop",
		Body:   body,
	}); err != nil {
		return &media.PlaybackError{Op: "stop", Source: source, Err: err}
	}
	c.playing.Store(false)
	return nil
}

// Status fetches the aggregate orchestrator status. It never fails: any error
// is logged and reported as nil.
func (c *Client) Status(ctx context.Context) *Status {
	resp, err := c.transport.Do(ctx, transport.Request{URL: c.base + "/status"})
	if err != nil {
		c.logger.Warn("status check failed", logging.Error(err))
		return nil
	}
	return &Status{Raw: responseBody(resp)}
}

// AlexaCommand asks an Echo device to play query from Amazon Music.
func (c *Client) AlexaCommand(ctx context.Context, device, query string) (json.RawMessage, error) {
	device = strings.TrimSpace(device)
	query = strings.TrimSpace(query)
	if device == "" {
		return nil, &media.PlaybackError{Op: "alexa", Source: SourceAlexa, Err: fmt.Errorf("select a device first")}
	}
	if query == "" {
		return nil, &media.PlaybackError{Op: "alexa", Source: SourceAlexa, Err: fmt.Errorf("enter something to play")}
	}
	resp, err := c.transport.Do(ctx, transport.Request{
		Method: http.MethodPost,
		URL:    c.base + "/alexa/command",
		Body: map[string]string{
			"device":  device,
			"command": AlexaPhrase(query),
		},
	})
	if err != nil {
		return nil, &media.PlaybackError{Op: "alexa", Source: SourceAlexa, Err: err}
	}
	return responseBody(resp), nil
}

// AlexaPhrase is the voice command sent for query.
func AlexaPhrase(query string) string {
	return "play " + query + " on Amazon Music"
}

// Playing reports whether the last successful command was a play.
func (c *Client) Playing() bool {
	return c.playing.Load()
}

// Status is the orchestrator's free-form status document.
type Status struct {
	Raw json.RawMessage
}

// Field is one top-level status entry rendered as text.
type Field struct {
	Key   string
	Value string
}

// Fields lists top-level keys in sorted order. Non-object documents yield a
// single "status" field.
func (s *Status) Fields() []Field {
	if s == nil || len(s.Raw) == 0 {
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(s.Raw, &obj); err != nil {
		return []Field{{Key: "status", Value: strings.Trim(string(s.Raw), `"`)}}
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, Field{Key: k, Value: strings.Trim(string(obj[k]), `"`)})
	}
	return out
}

func responseBody(resp *transport.Response) json.RawMessage {
	if resp == nil {
		return nil
	}
	if resp.IsJSON() {
		return resp.JSON
	}
	if text := strings.TrimSpace(resp.Text); text != "" {
		data, _ := json.Marshal(text)
		return data
	}
	return nil
}
