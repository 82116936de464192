package spotify

import (
	"bytes"
	"encoding/json"

	"github.com/lodgemusic/lodgectl/internal/media"
)

// Artist is a Spotify artist reference.
type Artist struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	URI  string `json:"uri,omitempty"`
}

// Image is album or playlist artwork.
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Album is a Spotify album.
type Album struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	URI     string   `json:"uri"`
	Artists []Artist `json:"artists,omitempty"`
	Images  []Image  `json:"images,omitempty"`
}

// Track is a Spotify track.
type Track struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	URI        string   `json:"uri"`
	Artists    []Artist `json:"artists"`
	Album      *Album   `json:"album,omitempty"`
	DurationMS int      `json:"duration_ms,omitempty"`
}

// Playlist is a Spotify playlist.
type Playlist struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	URI    string  `json:"uri"`
	Images []Image `json:"images,omitempty"`
	Owner  struct {
		DisplayName string `json:"display_name"`
	} `json:"owner"`
}

type page[T any] struct {
	Items []T `json:"items"`
}

type searchPayload struct {
	Tracks    page[Track]    `json:"tracks"`
	Albums    page[Album]    `json:"albums"`
	Playlists page[Playlist] `json:"playlists"`
}

// SearchResults groups a search response by kind. Each search replaces the
// previous results wholesale.
type SearchResults struct {
	Tracks    []Track    `json:"tracks"`
	Albums    []Album    `json:"albums"`
	Playlists []Playlist `json:"playlists"`
}

// Items normalizes every result, tracks first.
func (r SearchResults) Items() []media.Item {
	out := make([]media.Item, 0, len(r.Tracks)+len(r.Albums)+len(r.Playlists))
	for _, t := range r.Tracks {
		out = append(out, t.MediaItem())
	}
	for _, a := range r.Albums {
		out = append(out, a.MediaItem())
	}
	for _, p := range r.Playlists {
		out = append(out, p.MediaItem())
	}
	return out
}

// Len counts all results.
func (r SearchResults) Len() int {
	return len(r.Tracks) + len(r.Albums) + len(r.Playlists)
}

// MediaItem normalizes the track.
func (t Track) MediaItem() media.Item {
	item := media.Item{
		Provider: media.ProviderSpotify,
		Kind:     "track",
		ID:       t.ID,
		URI:      t.URI,
		Title:    t.Name,
		Artists:  artists(t.Artists),
	}
	if t.Album != nil {
		item.Album = &media.Album{Name: t.Album.Name}
		item.ImageURL = firstImage(t.Album.Images)
	}
	return item
}

// MediaItem normalizes the album.
func (a Album) MediaItem() media.Item {
	return media.Item{
		Provider: media.ProviderSpotify,
		Kind:     "album",
		ID:       a.ID,
		URI:      a.URI,
		Title:    a.Name,
		Artists:  artists(a.Artists),
		ImageURL: firstImage(a.Images),
	}
}

// MediaItem normalizes the playlist; the owner is shown as the artist.
func (p Playlist) MediaItem() media.Item {
	item := media.Item{
		Provider: media.ProviderSpotify,
		Kind:     "playlist",
		ID:       p.ID,
		URI:      p.URI,
		Title:    p.Name,
		ImageURL: firstImage(p.Images),
	}
	if p.Owner.DisplayName != "" {
		item.Artists = []media.Artist{{Name: p.Owner.DisplayName}}
	}
	return item
}

// Device is a Spotify Connect device.
type Device struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	IsActive      bool   `json:"is_active"`
	VolumePercent int    `json:"volume_percent"`
}

type nowPlayingPayload struct {
	IsPlaying bool   `json:"is_playing"`
	State     string `json:"state"`
	Item      *Track `json:"item"`
	Device    *struct {
		VolumePercent int `json:"volume_percent"`
	} `json:"device"`
}

func (p nowPlayingPayload) playbackState() *media.PlaybackState {
	state := &media.PlaybackState{State: p.State}
	if state.State == "" {
		state.State = media.StatePaused
		if p.IsPlaying {
			state.State = media.StatePlaying
		}
		if p.Item == nil {
			state.State = media.StateIdle
		}
	}
	if p.Item != nil {
		item := p.Item.MediaItem()
		state.Current = &item
	}
	if p.Device != nil {
		state.VolumeLevel = p.Device.VolumePercent
	}
	return state
}

// decodeDevices accepts a bare array or an object with a devices array.
func decodeDevices(data json.RawMessage) ([]Device, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var devices []Device
		err := json.Unmarshal(trimmed, &devices)
		return devices, err
	}
	var wrapped struct {
		Devices []Device `json:"devices"`
	}
	err := json.Unmarshal(trimmed, &wrapped)
	return wrapped.Devices, err
}

func artists(in []Artist) []media.Artist {
	if len(in) == 0 {
		return nil
	}
	out := make([]media.Artist, 0, len(in))
	for _, a := range in {
		out = append(out, media.Artist{Name: a.Name})
	}
	return out
}

func firstImage(images []Image) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}
