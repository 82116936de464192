package musicassistant

import (
	"bytes"
	"encoding/json"

	"github.com/lodgemusic/lodgectl/internal/media"
)

type named struct {
	Name string `json:"name"`
}

// Item is one library entry returned by a search or queue call.
type Item struct {
	Name      string  `json:"name"`
	URI       string  `json:"uri"`
	MediaType string  `json:"media_type,omitempty"`
	Artist    *named  `json:"artist,omitempty"`
	Artists   []named `json:"artists,omitempty"`
	Album     *named  `json:"album,omitempty"`
	Image     string  `json:"image,omitempty"`
}

// ArtistName returns the single artist, or the first of several.
func (i Item) ArtistName() string {
	if i.Artist != nil && i.Artist.Name != "" {
		return i.Artist.Name
	}
	if len(i.Artists) > 0 {
		return i.Artists[0].Name
	}
	return ""
}

// MediaItem normalizes the entry.
func (i Item) MediaItem() media.Item {
	item := media.Item{
		Provider: media.ProviderMusicAssistant,
		Kind:     i.MediaType,
		URI:      i.URI,
		Title:    i.Name,
		ImageURL: i.Image,
	}
	if i.Artist != nil && i.Artist.Name != "" {
		item.Artists = append(item.Artists, media.Artist{Name: i.Artist.Name})
	}
	for _, a := range i.Artists {
		item.Artists = append(item.Artists, media.Artist{Name: a.Name})
	}
	if i.Album != nil && i.Album.Name != "" {
		item.Album = &media.Album{Name: i.Album.Name}
	}
	return item
}

type queuePayload struct {
	Items        []Item `json:"items"`
	CurrentIndex int    `json:"current_index"`
}

func (q queuePayload) queue() media.Queue {
	out := media.Queue{Items: make([]media.Item, 0, len(q.Items))}
	for _, it := range q.Items {
		out.Items = append(out.Items, it.MediaItem())
	}
	out.CurrentIndex = q.CurrentIndex
	return out
}

// unwrapResponse returns the useful part of a service call response. Home
// Assistant may wrap it in service_response, keyed by entity for per-player
// services.
func unwrapResponse(data json.RawMessage, entity string) json.RawMessage {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	var envelope struct {
		ServiceResponse json.RawMessage `json:"service_response"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && len(envelope.ServiceResponse) > 0 {
		data = envelope.ServiceResponse
	}
	if entity == "" {
		return data
	}
	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(data, &keyed); err == nil {
		if inner, ok := keyed[entity]; ok {
			return inner
		}
	}
	return data
}

func decode(data json.RawMessage, dest any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return json.Unmarshal(data, dest)
}
