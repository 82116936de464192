package orchestrator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lodgemusic/lodgectl/internal/media"
)

// Sources understood by the orchestrator.
const (
	SourceSpotify = string(media.ProviderSpotify)
	SourceYTMusic = string(media.ProviderYouTubeMusic)
	SourceCalm    = string(media.ProviderCalm)
	SourceAlexa   = string(media.ProviderAlexa)
	SourceAll     = "all"
)

// PlayCommand is the body posted to /play. Fields are flattened into a
// single JSON object; Extra carries provider fields not modelled here and
// never overrides a typed field.
type PlayCommand struct {
	Source  string
	Room    string
	Device  string
	URI     string
	Channel string
	VideoID string
	MediaID string
	Shuffle bool
	Extra   map[string]any
}

// Validate requires a source and exactly one of Room or Device.
func (c PlayCommand) Validate() error {
	if strings.TrimSpace(c.Source) == "" {
		return errors.New("play command requires a source")
	}
	return Target{Room: c.Room, Device: c.Device}.Validate()
}

// Target returns the room or device the command addresses.
func (c PlayCommand) Target() Target {
	return Target{Room: c.Room, Device: c.Device}
}

// MarshalJSON flattens the command.
func (c PlayCommand) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Extra)+6)
	for k, v := range c.Extra {
		out[k] = v
	}
	out["source"] = c.Source
	setIf(out, "room", c.Room)
	setIf(out, "device", c.Device)
	setIf(out, "uri", c.URI)
	setIf(out, "channel", c.Channel)
	setIf(out, "video_id", c.VideoID)
	setIf(out, "media_id", c.MediaID)
	if c.Shuffle {
		out["shuffle"] = true
	}
	return json.Marshal(out)
}

func setIf(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}

// Target addresses a room or a single device.
type Target struct {
	Room   string
	Device string
}

// Validate requires exactly one of Room or Device.
func (t Target) Validate() error {
	room := strings.TrimSpace(t.Room) != ""
	device := strings.TrimSpace(t.Device) != ""
	switch {
	case room && device:
		return errors.New("target must be a room or a device, not both")
	case !room && !device:
		return errors.New("select a room or device first")
	}
	return nil
}

// String renders the target for messages.
func (t Target) String() string {
	if t.Device != "" {
		return fmt.Sprintf("device %s", t.Device)
	}
	return fmt.Sprintf("room %s", t.Room)
}

// SpotifyCommand plays a Spotify URI.
func SpotifyCommand(target Target, uri string, shuffle bool) PlayCommand {
	return PlayCommand{Source: SourceSpotify, Room: target.Room, Device: target.Device, URI: uri, Shuffle: shuffle}
}

// YouTubeMusicCommand plays a YouTube Music video ID.
func YouTubeMusicCommand(target Target, videoID string) PlayCommand {
	return PlayCommand{Source: SourceYTMusic, Room: target.Room, Device: target.Device, VideoID: videoID}
}

// CalmCommand plays a Calm Radio channel.
func CalmCommand(target Target, channel string) PlayCommand {
	return PlayCommand{Source: SourceCalm, Room: target.Room, Device: target.Device, Channel: channel}
}
