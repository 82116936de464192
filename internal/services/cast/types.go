package cast

import (
	"strings"

	"github.com/lodgemusic/lodgectl/internal/media"
)

// Track is a YouTube Music search result.
type Track struct {
	VideoID   string `json:"videoId"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Album     string `json:"album,omitempty"`
	Duration  string `json:"duration,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// MediaItem normalizes the result.
func (t Track) MediaItem() media.Item {
	item := media.Item{
		Provider: media.ProviderYouTubeMusic,
		Kind:     "song",
		ID:       t.VideoID,
		Title:    t.Title,
		ImageURL: t.Thumbnail,
	}
	if strings.TrimSpace(t.Artist) != "" {
		item.Artists = []media.Artist{{Name: t.Artist}}
	}
	if t.Album != "" {
		item.Album = &media.Album{Name: t.Album}
	}
	return item
}

// Category is a Calm Radio channel category.
type Category struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Channel is a Calm Radio channel.
type Channel struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`
}

// PlayRef is the channel reference the orchestrator expects: the name when
// set, otherwise the ID.
func (c Channel) PlayRef() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// DisplayTitle falls back to the play reference when the title is empty.
func (c Channel) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return c.PlayRef()
}

// MediaItem normalizes the channel.
func (c Channel) MediaItem() media.Item {
	return media.Item{
		Provider: media.ProviderCalm,
		Kind:     "channel",
		ID:       c.PlayRef(),
		Title:    c.DisplayTitle(),
		Category: c.Category,
	}
}

// ChannelFilter narrows a channel listing. Each field is independent; only
// non-empty fields are sent.
type ChannelFilter struct {
	Category string
	Search   string
}
