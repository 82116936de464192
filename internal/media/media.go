package media

import "strings"

// Provider names the backend a media item came from.
type Provider string

const (
	ProviderSpotify        Provider = "spotify"
	ProviderYouTubeMusic   Provider = "ytmusic"
	ProviderCalm           Provider = "calm"
	ProviderRoon           Provider = "roon"
	ProviderMusicAssistant Provider = "music_assistant"
	ProviderAlexa          Provider = "alexa"
)

// Artist is a credited performer.
type Artist struct {
	Name string `json:"name"`
}

// Album is the optional album an item belongs to.
type Album struct {
	Name string `json:"name"`
}

// Item is the normalized shape rendering code works with. Provider packages
// decode their own payloads and convert them with a MediaItem method.
type Item struct {
	Provider Provider `json:"provider"`
	Kind     string   `json:"kind,omitempty"`
	ID       string   `json:"id,omitempty"`
	URI      string   `json:"uri,omitempty"`
	Title    string   `json:"title"`
	Artists  []Artist `json:"artists,omitempty"`
	Album    *Album   `json:"album,omitempty"`
	Category string   `json:"category,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
}

// ArtistLine joins artist names for display.
func (i Item) ArtistLine() string {
	names := make([]string, 0, len(i.Artists))
	for _, a := range i.Artists {
		if name := strings.TrimSpace(a.Name); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}

// AlbumName returns the album name or "".
func (i Item) AlbumName() string {
	if i.Album == nil {
		return ""
	}
	return i.Album.Name
}

// PlayRef returns the reference a play command needs for this item: the URI
// when present, otherwise the provider ID.
func (i Item) PlayRef() string {
	if i.URI != "" {
		return i.URI
	}
	return i.ID
}

// Label renders "Title - Artists" or just the title.
func (i Item) Label() string {
	if artists := i.ArtistLine(); artists != "" {
		return i.Title + " - " + artists
	}
	return i.Title
}

// Playback states reported by the backends. Others pass through verbatim.
const (
	StatePlaying = "playing"
	StatePaused  = "paused"
	StateIdle    = "idle"
	StateStopped = "stopped"
)

// PlaybackState is one now-playing snapshot. VolumeLevel is 0-100.
type PlaybackState struct {
	State       string `json:"state"`
	Current     *Item  `json:"current_media,omitempty"`
	VolumeLevel int    `json:"volume_level"`
}

// IsPlaying reports whether the state is "playing".
func (p *PlaybackState) IsPlaying() bool {
	return p != nil && strings.EqualFold(p.State, StatePlaying)
}

// Queue is the ordered upcoming-track list of a playback session.
type Queue struct {
	Items        []Item `json:"items"`
	CurrentIndex int    `json:"current_index"`
}

// Current returns the item at CurrentIndex, if it is in range.
func (q Queue) Current() (Item, bool) {
	if q.CurrentIndex < 0 || q.CurrentIndex >= len(q.Items) {
		return Item{}, false
	}
	return q.Items[q.CurrentIndex], true
}

// PlaybackError reports a failed user-initiated playback command. It is
// always meant to be shown to the user.
type PlaybackError struct {
	Op     string
	Source string
	Err    error
}

func (e *PlaybackError) Error() string {
	if e.Source != "" {
		return e.Op + " " + e.Source + ": " + e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *PlaybackError) Unwrap() error {
	return e.Err
}
