package orchestrator

// Preset is a one-press quick play entry.
type Preset struct {
	Label   string
	Source  string
	URI     string
	Channel string
	Shuffle bool
}

// Command builds the play command for target. The label rides along so the
// backend can name what is playing.
func (p Preset) Command(target Target) PlayCommand {
	return PlayCommand{
		Source:  p.Source,
		Room:    target.Room,
		Device:  target.Device,
		URI:     p.URI,
		Channel: p.Channel,
		Shuffle: p.Shuffle,
		Extra:   map[string]any{"label": p.Label},
	}
}

// Presets returns the quick play entries in display order.
func Presets() []Preset {
	return []Preset{
		{Label: "Daily Mix", Source: SourceSpotify, URI: "spotify:playlist:37i9dQZF1EQqZlCxLOykhS", Shuffle: true},
		{Label: "Liked Songs", Source: SourceSpotify, URI: "spotify:collection:tracks", Shuffle: true},
		{Label: "SPA", Source: SourceCalm, Channel: "spa"},
		{Label: "Classical", Source: SourceCalm, Channel: "classical"},
	}
}
