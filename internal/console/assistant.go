package console

import (
	"context"
	"strings"
	"sync"

	"github.com/lodgemusic/lodgectl/internal/media"
	"github.com/lodgemusic/lodgectl/internal/services/musicassistant"
	"github.com/lodgemusic/lodgectl/internal/topology"
)

// AssistantGenres are the one-press genre searches.
var AssistantGenres = []string{"rock", "jazz", "classical", "electronic"}

// AssistantMediaTypes are the selectable search types.
var AssistantMediaTypes = []string{"track", "album", "artist", "playlist", "radio"}

// AssistantScreen searches the Music Assistant library and plays on players.
type AssistantScreen struct {
	Players   *DevicePicker
	Journal   *Journal
	assistant Assistant

	mu        sync.Mutex
	mediaType string
	items     []musicassistant.Item
	queue     media.Queue
}

// NewAssistantScreen builds the screen.
func NewAssistantScreen(fetcher topology.Fetcher, assistant Assistant) *AssistantScreen {
	return &AssistantScreen{
		Players:   NewDevicePicker(fetcher, topology.Topology.AssistantPlayers),
		Journal:   NewJournal(0),
		assistant: assistant,
		mediaType: musicassistant.DefaultMediaType,
	}
}

// Load fetches the player list.
func (a *AssistantScreen) Load(ctx context.Context) error {
	return a.Players.Load(ctx, a.Journal)
}

// MediaType returns the search type.
func (a *AssistantScreen) MediaType() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mediaType
}

// CycleMediaType moves through AssistantMediaTypes.
func (a *AssistantScreen) CycleMediaType(delta int) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mediaType = cycle(AssistantMediaTypes, a.mediaType, delta)
	return a.mediaType
}

// Search replaces the results with library entries matching query.
func (a *AssistantScreen) Search(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return ErrNoQuery
	}
	mediaType := a.MediaType()
	a.Journal.Info("Searching MA library for %q", query)
	items, err := a.assistant.Search(ctx, query, mediaType, musicassistant.DefaultSearchLimit)
	if err != nil {
		a.Journal.Err("Search error: %v", err)
		return err
	}
	a.mu.Lock()
	a.items = items
	a.mu.Unlock()
	a.Journal.OK("Found %d results", len(items))
	return nil
}

// Results returns the current search results.
func (a *AssistantScreen) Results() []musicassistant.Item {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]musicassistant.Item(nil), a.items...)
}

// Play plays result index on the selected player.
func (a *AssistantScreen) Play(ctx context.Context, index int) error {
	return a.withItem(index, "Playing", func(player string, item musicassistant.Item) error {
		return a.assistant.PlayMedia(ctx, player, item.URI, a.MediaType())
	}, "Now playing!")
}

// QueueAdd appends result index to the player's queue.
func (a *AssistantScreen) QueueAdd(ctx context.Context, index int) error {
	return a.withItem(index, "Queueing", func(player string, item musicassistant.Item) error {
		return a.assistant.QueueAdd(ctx, player, item.URI)
	}, "Added to queue")
}

// QueueNext plays result index after the current item.
func (a *AssistantScreen) QueueNext(ctx context.Context, index int) error {
	return a.withItem(index, "Playing next", func(player string, item musicassistant.Item) error {
		return a.assistant.QueueNext(ctx, player, item.URI)
	}, "Queued next")
}

func (a *AssistantScreen) withItem(index int, verb string, fn func(string, musicassistant.Item) error, success string) error {
	a.mu.Lock()
	item, err := pick(a.items, index)
	a.mu.Unlock()
	if err != nil {
		return err
	}
	player := a.Players.Selected()
	if player == "" {
		a.Journal.Err("Select a device first")
		return ErrNoDevice
	}
	a.Journal.Info("%s %q on %s", verb, item.Name, a.Players.SelectedName())
	if err := fn(player, item); err != nil {
		a.Journal.Err("%v", err)
		return err
	}
	a.Journal.OK("%s", success)
	return nil
}

// LoadQueue fetches the selected player's queue.
func (a *AssistantScreen) LoadQueue(ctx context.Context) error {
	player := a.Players.Selected()
	if player == "" {
		a.Journal.Err("Select a device first")
		return ErrNoDevice
	}
	queue, err := a.assistant.Queue(ctx, player)
	if err != nil {
		a.Journal.Err("Queue error: %v", err)
		return err
	}
	a.mu.Lock()
	a.queue = queue
	a.mu.Unlock()
	a.Journal.OK("Queue has %d items", len(queue.Items))
	return nil
}

// Queue returns the last loaded queue.
func (a *AssistantScreen) Queue() media.Queue {
	a.mu.Lock()
	defer a.mu.Unlock()
	q := a.queue
	q.Items = append([]media.Item(nil), a.queue.Items...)
	return q
}
