package console

import (
	"context"
	"strings"
	"sync"

	"github.com/lodgemusic/lodgectl/internal/services/cast"
	"github.com/lodgemusic/lodgectl/internal/services/orchestrator"
	"github.com/lodgemusic/lodgectl/internal/topology"
)

// CalmScreen browses Calm Radio by category and plays channels into a room.
type CalmScreen struct {
	Rooms   *RoomPicker
	Journal *Journal
	browser CalmBrowser
	player  Player

	mu         sync.Mutex
	categories []cast.Category
	channels   []cast.Channel
	category   string
}

// NewCalmScreen builds the screen.
func NewCalmScreen(fetcher topology.Fetcher, browser CalmBrowser, player Player) *CalmScreen {
	return &CalmScreen{
		Rooms:   NewRoomPicker(fetcher),
		Journal: NewJournal(0),
		browser: browser,
		player:  player,
	}
}

// Load fetches rooms, categories and the unfiltered channel list.
func (c *CalmScreen) Load(ctx context.Context) error {
	err := c.Rooms.Load(ctx, c.Journal)
	categories := c.browser.CalmCategories(ctx)
	c.mu.Lock()
	c.categories = categories
	c.mu.Unlock()
	c.loadChannels(ctx, "")
	return err
}

// SelectCategory switches category and reloads channels for it. An empty
// category lists every channel.
func (c *CalmScreen) SelectCategory(ctx context.Context, category string) {
	c.loadChannels(ctx, strings.TrimSpace(category))
}

// CycleCategory moves through "all" and each category, reloading channels.
func (c *CalmScreen) CycleCategory(ctx context.Context, delta int) string {
	c.mu.Lock()
	names := []string{""}
	for _, cat := range c.categories {
		names = append(names, cat.Name)
	}
	next := cycle(names, c.category, delta)
	c.category = next
	c.mu.Unlock()
	c.fetchChannels(ctx, next)
	return next
}

func (c *CalmScreen) loadChannels(ctx context.Context, category string) {
	c.mu.Lock()
	c.category = category
	c.mu.Unlock()
	c.fetchChannels(ctx, category)
}

// fetchChannels replaces the grid; the last fetch to complete wins.
func (c *CalmScreen) fetchChannels(ctx context.Context, category string) {
	channels := c.browser.CalmChannels(ctx, cast.ChannelFilter{Category: category})
	c.mu.Lock()
	c.channels = channels
	c.mu.Unlock()
}

// Search replaces the channel grid with channels matching query.
func (c *CalmScreen) Search(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return ErrNoQuery
	}
	c.Journal.Info("Searching Calm Radio for %q", query)
	channels, err := c.browser.SearchCalm(ctx, query)
	if err != nil {
		c.Journal.Err("Search error: %v", err)
		return err
	}
	c.mu.Lock()
	c.channels = channels
	c.mu.Unlock()
	c.Journal.OK("Found %d channels", len(channels))
	return nil
}

// Categories returns the loaded categories.
func (c *CalmScreen) Categories() []cast.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]cast.Category(nil), c.categories...)
}

// Channels returns the current channel grid.
func (c *CalmScreen) Channels() []cast.Channel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]cast.Channel(nil), c.channels...)
}

// Category returns the selected category, "" for all.
func (c *CalmScreen) Category() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.category
}

// Play plays channel index in the selected room.
func (c *CalmScreen) Play(ctx context.Context, index int) error {
	c.mu.Lock()
	channel, err := pick(c.channels, index)
	c.mu.Unlock()
	if err != nil {
		return err
	}
	return playInRoom(ctx, c.player, c.Rooms, c.Journal, channel.MediaItem(),
		func(t orchestrator.Target) orchestrator.PlayCommand {
			return orchestrator.CalmCommand(t, channel.PlayRef())
		})
}

// Stop stops the selected room.
func (c *CalmScreen) Stop(ctx context.Context) error {
	return stopRoom(ctx, c.player, c.Rooms, c.Journal)
}
