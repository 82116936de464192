package console

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lodgemusic/lodgectl/internal/media"
	"github.com/lodgemusic/lodgectl/internal/services/cast"
	"github.com/lodgemusic/lodgectl/internal/services/musicassistant"
	"github.com/lodgemusic/lodgectl/internal/services/roon"
	"github.com/lodgemusic/lodgectl/internal/topology"
)

// MockRoon implements RoonController with configurable functions.
type MockRoon struct {
	ZonesFn      func(ctx context.Context) []roon.Zone
	ControlFn    func(ctx context.Context, zone string, action roon.Action) error
	NowPlayingFn func(ctx context.Context, zone string) *media.PlaybackState
}

func (m *MockRoon) Zones(ctx context.Context) []roon.Zone {
	if m.ZonesFn != nil {
		return m.ZonesFn(ctx)
	}
	return nil
}

func (m *MockRoon) Control(ctx context.Context, zone string, action roon.Action) error {
	if m.ControlFn != nil {
		return m.ControlFn(ctx, zone, action)
	}
	return nil
}

func (m *MockRoon) NowPlaying(ctx context.Context, zone string) *media.PlaybackState {
	if m.NowPlayingFn != nil {
		return m.NowPlayingFn(ctx, zone)
	}
	return nil
}

// staticTopology implements topology.Fetcher.
type staticTopology struct {
	topo topology.Topology
	err  error
}

func (s staticTopology) Fetch(context.Context) (topology.Topology, error) {
	if s.err != nil {
		return topology.Topology{}, s.err
	}
	return s.topo, nil
}

var echoTopology = staticTopology{topo: topology.Topology{Devices: []topology.Device{
	{ID: "media_player.echo_kitchen", Name: "Kitchen Echo", Protocol: topology.ProtocolHAMediaPlayer},
	{ID: "cast-1", Name: "Den Speaker", Protocol: "cast"},
}}}

func TestRoonZoneChangeTearsDownPoll(t *testing.T) {
	var polled sync.Map
	var polls atomic.Int32
	mock := &MockRoon{
		ZonesFn: func(context.Context) []roon.Zone {
			return []roon.Zone{{ID: "z1", DisplayName: "Living"}, {ID: "z2", DisplayName: "Office"}}
		},
		NowPlayingFn: func(_ context.Context, zone string) *media.PlaybackState {
			polls.Add(1)
			polled.Store(zone, true)
			return &media.PlaybackState{State: media.StatePlaying, Current: &media.Item{Title: zone}}
		},
	}
	screen := NewRoonScreen(mock)
	ctx := context.Background()
	screen.Load(ctx)
	require.Len(t, screen.Zones(), 2)

	screen.SelectZone("z1")
	screen.StartNowPlaying(ctx, 5*time.Millisecond)
	require.True(t, screen.Polling())
	require.Eventually(t, func() bool {
		snap := screen.NowPlaying.Snapshot()
		return snap.Has && snap.Value.Current.Title == "z1"
	}, 2*time.Second, time.Millisecond)

	screen.CycleZone(1)
	assert.Equal(t, "z2", screen.Zone())
	assert.False(t, screen.Polling(), "changing zone stops the poll")
	assert.False(t, screen.NowPlaying.Snapshot().Has, "previous zone data is dropped")

	time.Sleep(20 * time.Millisecond)
	_, sawZ2 := polled.Load("z2")
	assert.False(t, sawZ2, "no polls for the new zone until restarted")

	screen.StopNowPlaying()
	assert.False(t, screen.Polling())
}

func TestRoonRefreshDiscardsStaleZone(t *testing.T) {
	started := make(chan string, 1)
	release := make(chan struct{})
	mock := &MockRoon{NowPlayingFn: func(_ context.Context, zone string) *media.PlaybackState {
		started <- zone
		<-release
		return &media.PlaybackState{State: media.StatePlaying}
	}}
	screen := NewRoonScreen(mock)
	screen.SelectZone("z1")

	done := make(chan struct{})
	go func() {
		screen.RefreshNowPlaying(context.Background())
		close(done)
	}()
	assert.Equal(t, "z1", <-started)
	screen.SelectZone("z2")
	close(release)
	<-done
	assert.False(t, screen.NowPlaying.Snapshot().Has)
}

func TestRoonControl(t *testing.T) {
	var got []string
	mock := &MockRoon{ControlFn: func(_ context.Context, zone string, action roon.Action) error {
		got = append(got, fmt.Sprintf("%s:%s", action, zone))
		if action == roon.ActionNext {
			return &media.PlaybackError{Op: "next", Source: "roon", Err: errors.New("HTTP 500")}
		}
		return nil
	}}
	screen := NewRoonScreen(mock)
	ctx := context.Background()

	assert.ErrorIs(t, screen.Control(ctx, roon.ActionPlay), ErrNoZone)
	assert.Empty(t, got)

	screen.SelectZone("z1")
	require.NoError(t, screen.Control(ctx, roon.ActionPlay))
	require.Error(t, screen.Control(ctx, roon.ActionNext))
	assert.Equal(t, []string{"play:z1", "next:z1"}, got)
	last, _ := screen.Journal.Last()
	assert.Equal(t, LevelErr, last.Level)
}

// MockAssistant implements Assistant with configurable functions.
type MockAssistant struct {
	SearchFn    func(ctx context.Context, query, mediaType string, limit int) ([]musicassistant.Item, error)
	PlayMediaFn func(ctx context.Context, target, mediaID, mediaType string) error
	QueueAddFn  func(ctx context.Context, target, mediaID string) error
	QueueNextFn func(ctx context.Context, target, mediaID string) error
	QueueFn     func(ctx context.Context, target string) (media.Queue, error)
}

func (m *MockAssistant) Search(ctx context.Context, query, mediaType string, limit int) ([]musicassistant.Item, error) {
	return m.SearchFn(ctx, query, mediaType, limit)
}

func (m *MockAssistant) PlayMedia(ctx context.Context, target, mediaID, mediaType string) error {
	return m.PlayMediaFn(ctx, target, mediaID, mediaType)
}

func (m *MockAssistant) QueueAdd(ctx context.Context, target, mediaID string) error {
	return m.QueueAddFn(ctx, target, mediaID)
}

func (m *MockAssistant) QueueNext(ctx context.Context, target, mediaID string) error {
	return m.QueueNextFn(ctx, target, mediaID)
}

func (m *MockAssistant) Queue(ctx context.Context, target string) (media.Queue, error) {
	return m.QueueFn(ctx, target)
}

func TestAssistantScreenFlow(t *testing.T) {
	var calls []string
	mock := &MockAssistant{
		SearchFn: func(_ context.Context, query, mediaType string, limit int) ([]musicassistant.Item, error) {
			calls = append(calls, fmt.Sprintf("search %s %s %d", query, mediaType, limit))
			return []musicassistant.Item{{Name: "Blue Train", URI: "library://track/1"}}, nil
		},
		PlayMediaFn: func(_ context.Context, target, mediaID, mediaType string) error {
			calls = append(calls, fmt.Sprintf("play %s %s %s", target, mediaID, mediaType))
			return nil
		},
		QueueAddFn: func(_ context.Context, target, mediaID string) error {
			calls = append(calls, "add "+mediaID)
			return nil
		},
		QueueNextFn: func(_ context.Context, target, mediaID string) error {
			calls = append(calls, "next "+mediaID)
			return nil
		},
		QueueFn: func(_ context.Context, target string) (media.Queue, error) {
			calls = append(calls, "queue "+target)
			return media.Queue{Items: []media.Item{{Title: "Blue Train"}}}, nil
		},
	}
	screen := NewAssistantScreen(echoTopology, mock)
	ctx := context.Background()
	require.NoError(t, screen.Load(ctx))
	require.Len(t, screen.Players.Devices(), 1)

	require.NoError(t, screen.Search(ctx, "coltrane"))
	assert.ErrorIs(t, screen.Play(ctx, 0), ErrNoDevice)

	require.True(t, screen.Players.Select("media_player.echo_kitchen"))
	assert.Equal(t, "album", screen.CycleMediaType(1))
	require.NoError(t, screen.Play(ctx, 0))
	require.NoError(t, screen.QueueAdd(ctx, 0))
	require.NoError(t, screen.QueueNext(ctx, 0))
	require.NoError(t, screen.LoadQueue(ctx))
	assert.Len(t, screen.Queue().Items, 1)

	assert.Equal(t, []string{
		"search coltrane track 25",
		"play media_player.echo_kitchen library://track/1 album",
		"add library://track/1",
		"next library://track/1",
		"queue media_player.echo_kitchen",
	}, calls)
}

type alexaFunc func(ctx context.Context, device, query string) (json.RawMessage, error)

func (f alexaFunc) AlexaCommand(ctx context.Context, device, query string) (json.RawMessage, error) {
	return f(ctx, device, query)
}

func TestAlexaScreen(t *testing.T) {
	var sent []string
	screen := NewAlexaScreen(echoTopology, alexaFunc(func(_ context.Context, device, query string) (json.RawMessage, error) {
		sent = append(sent, device+"|"+query)
		return nil, nil
	}))
	ctx := context.Background()
	require.NoError(t, screen.Load(ctx))

	assert.ErrorIs(t, screen.Send(ctx, "jazz music"), ErrNoDevice)
	assert.Equal(t, "media_player.echo_kitchen", screen.Devices.Cycle(1))
	assert.ErrorIs(t, screen.Send(ctx, " "), ErrNoQuery)
	require.NoError(t, screen.Send(ctx, AlexaQuickCommands[0].Query))
	assert.Equal(t, []string{"media_player.echo_kitchen|90s rock"}, sent)

	entries := screen.Journal.Entries()
	require.GreaterOrEqual(t, len(entries), 2)
	assert.Contains(t, entries[len(entries)-2].Message, "play 90s rock on Amazon Music")
}

func TestDevicePickerClearsOnFailedLoad(t *testing.T) {
	picker := NewDevicePicker(echoTopology, topology.Topology.AlexaDevices)
	journal := NewJournal(0)
	require.NoError(t, picker.Load(context.Background(), journal))
	require.True(t, picker.Select("media_player.echo_kitchen"))

	picker.fetcher = staticTopology{err: errors.New("down")}
	require.Error(t, picker.Load(context.Background(), journal))
	assert.Empty(t, picker.Devices())
	assert.Empty(t, picker.Selected())
}

func TestJournalIsBounded(t *testing.T) {
	j := NewJournal(3)
	for i := range 5 {
		j.Info("entry %d", i)
	}
	entries := j.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "entry 2", entries[0].Message)
	assert.Equal(t, "entry 4", entries[2].Message)
}

func TestCycleWraps(t *testing.T) {
	values := []string{"a", "b", "c"}
	assert.Equal(t, "a", cycle(values, "", 1))
	assert.Equal(t, "c", cycle(values, "", -1))
	assert.Equal(t, "a", cycle(values, "c", 1))
	assert.Equal(t, "c", cycle(values, "a", -1))
	assert.Equal(t, "", cycle(nil, "a", 1))
}

// MockCalm implements CalmBrowser with configurable functions.
type MockCalm struct {
	CalmChannelsFn func(ctx context.Context, filter cast.ChannelFilter) []cast.Channel
}

func (m *MockCalm) CalmCategories(context.Context) []cast.Category { return nil }

func (m *MockCalm) CalmChannels(ctx context.Context, filter cast.ChannelFilter) []cast.Channel {
	if m.CalmChannelsFn != nil {
		return m.CalmChannelsFn(ctx, filter)
	}
	return nil
}

func (m *MockCalm) SearchCalm(context.Context, string) ([]cast.Channel, error) { return nil, nil }

func TestCalmCycleCategoryAdvancesBeforeFetch(t *testing.T) {
	started := make(chan string, 2)
	release := make(chan struct{})
	mock := &MockCalm{CalmChannelsFn: func(_ context.Context, filter cast.ChannelFilter) []cast.Channel {
		started <- filter.Category
		<-release
		return []cast.Channel{{ID: filter.Category, Category: filter.Category}}
	}}
	screen := NewCalmScreen(staticTopology{}, mock, nil)
	screen.categories = []cast.Category{{Name: "spa"}, {Name: "classical"}}

	var wg sync.WaitGroup
	results := make(chan string, 2)
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- screen.CycleCategory(context.Background(), 1)
		}()
	}
	fetched := []string{<-started, <-started}
	close(release)
	wg.Wait()
	close(results)

	var got []string
	for r := range results {
		got = append(got, r)
	}
	assert.ElementsMatch(t, []string{"spa", "classical"}, got)
	assert.ElementsMatch(t, []string{"spa", "classical"}, fetched)
	assert.Equal(t, "classical", screen.Category())
	require.Len(t, screen.Channels(), 1)
}
