package volume

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/lodgemusic/lodgectl/internal/logging"
	"github.com/lodgemusic/lodgectl/internal/transport"
)

// DefaultStep is the increment used by Up and Down when step <= 0.
const DefaultStep = 10

// Level is a device's volume reading. Value is on the 0-100 scale.
type Level struct {
	DeviceID string          `json:"device_id,omitempty"`
	Value    int             `json:"level"`
	Muted    bool            `json:"muted"`
	Raw      json.RawMessage `json:"-"`
}

// Client wraps the volume service's per-device endpoints.
type Client struct {
	base      string
	transport *transport.Client
	logger    *slog.Logger
}

// NewClient builds a Client for the volume service at base.
func NewClient(base string, t *transport.Client, logger *slog.Logger) *Client {
	return &Client{
		base:      strings.TrimRight(base, "/"),
		transport: t,
		logger:    logging.NewComponentLogger(logger, "volume"),
	}
}

// Get reads the device volume, or returns nil on any failure.
func (c *Client) Get(ctx context.Context, id string) *Level {
	resp, err := c.transport.Do(ctx, transport.Request{URL: c.deviceURL(id, "", nil)})
	if err != nil {
		c.logger.Warn("volume read failed", logging.Error(err), "device", id)
		return nil
	}
	level, err := decodeLevel(id, resp)
	if err != nil {
		c.logger.Warn("volume reading unreadable", logging.Error(err), "device", id)
		return nil
	}
	return level
}

// Set sends an absolute level. The value is passed through unmodified: no
// clamping and no rescaling.
func (c *Client) Set(ctx context.Context, id string, level int) error {
	values := url.Values{}
	values.Set("level", strconv.Itoa(level))
	return c.post(ctx, id, "set", values)
}

// Up raises the volume by step.
func (c *Client) Up(ctx context.Context, id string, step int) error {
	return c.post(ctx, id, "up", stepValues(step))
}

// Down lowers the volume by step.
func (c *Client) Down(ctx context.Context, id string, step int) error {
	return c.post(ctx, id, "down", stepValues(step))
}

// Mute silences the device.
func (c *Client) Mute(ctx context.Context, id string) error {
	return c.post(ctx, id, "mute", nil)
}

// Unmute restores the device's output.
func (c *Client) Unmute(ctx context.Context, id string) error {
	return c.post(ctx, id, "unmute", nil)
}

func (c *Client) post(ctx context.Context, id, action string, values url.Values) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("volume %s: select a device first", action)
	}
	if _, err := c.transport.Do(ctx, transport.Request{
		Method: http.MethodPost,
		URL:    c.deviceURL(id, action, values),
	}); err != nil {
		return fmt.Errorf("volume %s %s: %w", action, id, err)
	}
	return nil
}

func (c *Client) deviceURL(id, action string, values url.Values) string {
	u := c.base + "/vol/" + url.PathEscape(id)
	if action != "" {
		u += "/" + action
	}
	if len(values) > 0 {
		u += "?" + values.Encode()
	}
	return u
}

func stepValues(step int) url.Values {
	if step <= 0 {
		step = DefaultStep
	}
	values := url.Values{}
	values.Set("step", strconv.Itoa(step))
	return values
}

func decodeLevel(id string, resp *transport.Response) (*Level, error) {
	if resp.IsJSON() {
		var payload struct {
			Level  *int `json:"level"`
			Volume *int `json:"volume"`
			Muted  bool `json:"muted"`
		}
		if err := resp.Decode(&payload); err != nil {
			return nil, err
		}
		level := &Level{DeviceID: id, Muted: payload.Muted, Raw: resp.JSON}
		switch {
		case payload.Level != nil:
			level.Value = *payload.Level
		case payload.Volume != nil:
			level.Value = *payload.Volume
		default:
			return nil, fmt.Errorf("no level in response")
		}
		return level, nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(resp.Text))
	if err != nil {
		return nil, fmt.Errorf("parse level %q: %w", resp.Text, err)
	}
	return &Level{DeviceID: id, Value: value}, nil
}

// ParseLevel reads a user-entered level. Only whole numbers are accepted, so
// a 0-1 fraction is rejected instead of being rescaled.
func ParseLevel(s string) (int, error) {
	s = strings.TrimSpace(s)
	level, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("volume level %q must be a whole number from 0 to 100", s)
	}
	return level, nil
}
