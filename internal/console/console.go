package console

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/lodgemusic/lodgectl/internal/media"
	"github.com/lodgemusic/lodgectl/internal/services/cast"
	"github.com/lodgemusic/lodgectl/internal/services/musicassistant"
	"github.com/lodgemusic/lodgectl/internal/services/orchestrator"
	"github.com/lodgemusic/lodgectl/internal/services/roon"
	"github.com/lodgemusic/lodgectl/internal/services/spotify"
)

// Selection errors are journaled and returned without issuing a request.
var (
	ErrNoRoom   = errors.New("select a room first")
	ErrNoDevice = errors.New("select a device first")
	ErrNoZone   = errors.New("select a zone first")
	ErrNoQuery  = errors.New("enter a search query")
	ErrNoItem   = errors.New("no such result")
)

// Player is the orchestrator surface the screens use.
type Player interface {
	Play(ctx context.Context, cmd orchestrator.PlayCommand) (json.RawMessage, error)
	Stop(ctx context.Context, target orchestrator.Target, source string) error
}

// SpotifySearcher searches the Spotify catalog.
type SpotifySearcher interface {
	Search(ctx context.Context, query, kinds string, limit int) (spotify.SearchResults, error)
}

// YouTubeSearcher searches YouTube Music.
type YouTubeSearcher interface {
	SearchYouTubeMusic(ctx context.Context, query, filter string, limit int) ([]cast.Track, error)
}

// CalmBrowser lists and searches Calm Radio.
type CalmBrowser interface {
	CalmCategories(ctx context.Context) []cast.Category
	CalmChannels(ctx context.Context, filter cast.ChannelFilter) []cast.Channel
	SearchCalm(ctx context.Context, query string) ([]cast.Channel, error)
}

// RoonController drives Roon zones.
type RoonController interface {
	Zones(ctx context.Context) []roon.Zone
	Control(ctx context.Context, zone string, action roon.Action) error
	NowPlaying(ctx context.Context, zone string) *media.PlaybackState
}

// Assistant is the Music Assistant surface.
type Assistant interface {
	Search(ctx context.Context, query, mediaType string, limit int) ([]musicassistant.Item, error)
	PlayMedia(ctx context.Context, target, mediaID, mediaType string) error
	QueueAdd(ctx context.Context, target, mediaID string) error
	QueueNext(ctx context.Context, target, mediaID string) error
	Queue(ctx context.Context, target string) (media.Queue, error)
}

// AlexaSender sends voice commands to Echo devices.
type AlexaSender interface {
	AlexaCommand(ctx context.Context, device, query string) (json.RawMessage, error)
}

var (
	_ Player          = (*orchestrator.Client)(nil)
	_ SpotifySearcher = (*spotify.Client)(nil)
	_ YouTubeSearcher = (*cast.Client)(nil)
	_ CalmBrowser     = (*cast.Client)(nil)
	_ RoonController  = (*roon.Client)(nil)
	_ Assistant       = (*musicassistant.Client)(nil)
	_ AlexaSender     = (*orchestrator.Client)(nil)
)

func pick[T any](items []T, index int) (T, error) {
	var zero T
	if index < 0 || index >= len(items) {
		return zero, ErrNoItem
	}
	return items[index], nil
}
