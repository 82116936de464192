package topology

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lodgemusic/lodgectl/internal/logging"
	"github.com/lodgemusic/lodgectl/internal/transport"
)

// Device is one playback endpoint known to the volume service.
type Device struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Protocol  string `json:"protocol"`
	Available bool   `json:"available"`
	Enabled   bool   `json:"enabled"`
}

// DisplayName falls back to the ID when the backend sent no name.
func (d Device) DisplayName() string {
	if strings.TrimSpace(d.Name) != "" {
		return d.Name
	}
	return d.ID
}

// Room is derived from the volume service's room map on every fetch. Count
// always equals len(Devices).
type Room struct {
	Name    string   `json:"name"`
	Count   int      `json:"count"`
	Devices []Device `json:"devices"`
}

// Topology is the room and device listing in backend order.
type Topology struct {
	Rooms   []Room   `json:"rooms"`
	Devices []Device `json:"devices"`
}

// Fetcher is implemented by *Client.
type Fetcher interface {
	Fetch(ctx context.Context) (Topology, error)
}

var _ Fetcher = (*Client)(nil)

// Client reads the room and device inventories from the volume service.
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
		logger:    logging.NewComponentLogger(logger, "topology"),
	}
}

// Fetch loads /rooms then /devices. Any failure returns an empty Topology with
// the error; partial results are never returned.
func (c *Client) Fetch(ctx context.Context) (Topology, error) {
	if c == nil || c.transport == nil {
		return Topology{}, fmt.Errorf("topology client is nil")
	}
	roomsResp, err := c.transport.Do(ctx, transport.Request{URL: c.base + "/rooms"})
	if err != nil {
		return Topology{}, fmt.Errorf("fetch rooms: %w", err)
	}
	devicesResp, err := c.transport.Do(ctx, transport.Request{URL: c.base + "/devices"})
	if err != nil {
		return Topology{}, fmt.Errorf("fetch devices: %w", err)
	}

	devices, err := parseDevices(devicesResp.JSON)
	if err != nil {
		c.logger.Warn("devices payload rejected", logging.Error(err))
		return Topology{}, fmt.Errorf("parse devices: %w", err)
	}
	rooms, err := parseRooms(roomsResp.JSON, devices)
	if err != nil {
		c.logger.Warn("rooms payload rejected", logging.Error(err))
		return Topology{}, fmt.Errorf("parse rooms: %w", err)
	}
	return Topology{Rooms: rooms, Devices: devices}, nil
}

func parseDevices(data json.RawMessage) ([]Device, error) {
	entries, err := decodeOrdered(data)
	if err != nil {
		return nil, err
	}
	devices := make([]Device, 0, len(entries))
	for _, e := range entries {
		var d Device
		if err := json.Unmarshal(e.Value, &d); err != nil {
			return nil, fmt.Errorf("device %q: %w", e.Key, err)
		}
		if d.ID == "" {
			d.ID = e.Key
		}
		devices = append(devices, d)
	}
	return devices, nil
}

// parseRooms accepts room members given either as device objects or as bare
// device IDs; IDs are resolved against the device inventory when possible.
func parseRooms(data json.RawMessage, devices []Device) ([]Room, error) {
	entries, err := decodeOrdered(data)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]Device, len(devices))
	for _, d := range devices {
		byID[d.ID] = d
	}
	rooms := make([]Room, 0, len(entries))
	for _, e := range entries {
		var members []json.RawMessage
		if err := json.Unmarshal(e.Value, &members); err != nil {
			return nil, fmt.Errorf("room %q: %w", e.Key, err)
		}
		room := Room{Name: e.Key, Devices: make([]Device, 0, len(members))}
		for _, m := range members {
			d, err := parseMember(m, byID)
			if err != nil {
				return nil, fmt.Errorf("room %q: %w", e.Key, err)
			}
			room.Devices = append(room.Devices, d)
		}
		room.Count = len(room.Devices)
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func parseMember(raw json.RawMessage, byID map[string]Device) (Device, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var id string
		if err := json.Unmarshal(trimmed, &id); err != nil {
			return Device{}, err
		}
		if d, ok := byID[id]; ok {
			return d, nil
		}
		return Device{ID: id}, nil
	}
	var d Device
	if err := json.Unmarshal(trimmed, &d); err != nil {
		return Device{}, err
	}
	return d, nil
}

// Room returns the room with the given name.
func (t Topology) Room(name string) (Room, bool) {
	for _, r := range t.Rooms {
		if r.Name == name {
			return r, true
		}
	}
	return Room{}, false
}

// RoomNames lists room names in backend order.
func (t Topology) RoomNames() []string {
	names := make([]string, 0, len(t.Rooms))
	for _, r := range t.Rooms {
		names = append(names, r.Name)
	}
	return names
}

// DeviceName resolves a device ID to its display name, or returns id.
func (t Topology) DeviceName(id string) string {
	for _, d := range t.Devices {
		if d.ID == id {
			return d.DisplayName()
		}
	}
	return id
}

// ProtocolHAMediaPlayer marks devices exposed through Home Assistant.
const ProtocolHAMediaPlayer = "ha_media_player"

var alexaMarkers = []string{"echo", "alexa", "show", "fire tv"}

// AlexaDevices returns Home Assistant media players that look like Amazon
// Echo, Show or Fire TV devices.
func (t Topology) AlexaDevices() []Device {
	var out []Device
	for _, d := range t.Devices {
		if d.Protocol != ProtocolHAMediaPlayer {
			continue
		}
		name := strings.ToLower(d.Name)
		for _, marker := range alexaMarkers {
			if strings.Contains(name, marker) {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

// AssistantPlayers returns devices that the media assistant can drive.
func (t Topology) AssistantPlayers() []Device {
	var out []Device
	for _, d := range t.Devices {
		name := strings.ToLower(d.Name)
		if strings.Contains(name, "echo") ||
			strings.HasPrefix(d.ID, "media_player.echo_") ||
			strings.HasPrefix(d.ID, "media_player.music_assistant") {
			out = append(out, d)
		}
	}
	return out
}
