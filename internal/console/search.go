package console

import (
	"context"
	"strings"
	"sync"

	"github.com/lodgemusic/lodgectl/internal/media"
	"github.com/lodgemusic/lodgectl/internal/services/orchestrator"
	"github.com/lodgemusic/lodgectl/internal/topology"
)

// results holds a screen's latest search results. Each search replaces them.
type results struct {
	mu    sync.Mutex
	items []media.Item
	query string
}

func (r *results) replace(query string, items []media.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.query = query
	r.items = items
}

// Results returns a copy of the current results.
func (r *results) Results() []media.Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]media.Item(nil), r.items...)
}

// Query returns the query that produced the current results.
func (r *results) Query() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.query
}

func (r *results) item(index int) (media.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return pick(r.items, index)
}

// SpotifyScreen searches Spotify and plays results into a room.
type SpotifyScreen struct {
	results
	Rooms    *RoomPicker
	Journal  *Journal
	searcher SpotifySearcher
	player   Player
}

// NewSpotifyScreen builds the screen.
func NewSpotifyScreen(fetcher topology.Fetcher, searcher SpotifySearcher, player Player) *SpotifyScreen {
	return &SpotifyScreen{
		Rooms:    NewRoomPicker(fetcher),
		Journal:  NewJournal(0),
		searcher: searcher,
		player:   player,
	}
}

// Load fetches the room list.
func (s *SpotifyScreen) Load(ctx context.Context) error {
	return s.Rooms.Load(ctx, s.Journal)
}

// Search replaces the results with the tracks matching query.
func (s *SpotifyScreen) Search(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return ErrNoQuery
	}
	s.Journal.Info("Searching Spotify for %q", query)
	found, err := s.searcher.Search(ctx, query, "", 0)
	if err != nil {
		s.Journal.Err("Search error: %v", err)
		return err
	}
	items := make([]media.Item, 0, len(found.Tracks))
	for _, t := range found.Tracks {
		items = append(items, t.MediaItem())
	}
	s.replace(query, items)
	s.Journal.OK("Found %d tracks", len(items))
	return nil
}

// Play plays result index in the selected room.
func (s *SpotifyScreen) Play(ctx context.Context, index int) error {
	item, err := s.item(index)
	if err != nil {
		return err
	}
	return playInRoom(ctx, s.player, s.Rooms, s.Journal, item,
		func(t orchestrator.Target) orchestrator.PlayCommand {
			return orchestrator.SpotifyCommand(t, item.URI, false)
		})
}

// Stop stops the selected room.
func (s *SpotifyScreen) Stop(ctx context.Context) error {
	return stopRoom(ctx, s.player, s.Rooms, s.Journal)
}

// YouTubeScreen searches YouTube Music and plays results into a room.
type YouTubeScreen struct {
	results
	Rooms    *RoomPicker
	Journal  *Journal
	searcher YouTubeSearcher
	player   Player
}

// NewYouTubeScreen builds the screen.
func NewYouTubeScreen(fetcher topology.Fetcher, searcher YouTubeSearcher, player Player) *YouTubeScreen {
	return &YouTubeScreen{
		Rooms:    NewRoomPicker(fetcher),
		Journal:  NewJournal(0),
		searcher: searcher,
		player:   player,
	}
}

// Load fetches the room list.
func (y *YouTubeScreen) Load(ctx context.Context) error {
	return y.Rooms.Load(ctx, y.Journal)
}

// Search replaces the results with songs matching query.
func (y *YouTubeScreen) Search(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return ErrNoQuery
	}
	y.Journal.Info("Searching YouTube Music for %q", query)
	tracks, err := y.searcher.SearchYouTubeMusic(ctx, query, "", 0)
	if err != nil {
		y.Journal.Err("Search error: %v", err)
		return err
	}
	items := make([]media.Item, 0, len(tracks))
	for _, t := range tracks {
		items = append(items, t.MediaItem())
	}
	y.replace(query, items)
	y.Journal.OK("Found %d songs", len(items))
	return nil
}

// Play plays result index in the selected room.
func (y *YouTubeScreen) Play(ctx context.Context, index int) error {
	item, err := y.item(index)
	if err != nil {
		return err
	}
	return playInRoom(ctx, y.player, y.Rooms, y.Journal, item,
		func(t orchestrator.Target) orchestrator.PlayCommand {
			return orchestrator.YouTubeMusicCommand(t, item.ID)
		})
}

// Stop stops the selected room.
func (y *YouTubeScreen) Stop(ctx context.Context) error {
	return stopRoom(ctx, y.player, y.Rooms, y.Journal)
}

func playInRoom(ctx context.Context, player Player, rooms *RoomPicker, journal *Journal, item media.Item, build func(orchestrator.Target) orchestrator.PlayCommand) error {
	room := rooms.Selected()
	if room == "" {
		journal.Err("Select a room first")
		return ErrNoRoom
	}
	journal.Info("Playing %q in %s", item.Title, room)
	if _, err := player.Play(ctx, build(orchestrator.Target{Room: room})); err != nil {
		journal.Err("%v", err)
		return err
	}
	journal.OK("Playing: %s", item.Label())
	return nil
}
