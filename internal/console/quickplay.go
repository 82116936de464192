package console

import (
	"context"

	"github.com/lodgemusic/lodgectl/internal/services/orchestrator"
	"github.com/lodgemusic/lodgectl/internal/topology"
)

// QuickPlay plays presets into a room and stops it.
type QuickPlay struct {
	Rooms   *RoomPicker
	Journal *Journal
	player  Player
	presets []orchestrator.Preset
}

// NewQuickPlay builds the screen.
func NewQuickPlay(fetcher topology.Fetcher, player Player) *QuickPlay {
	return &QuickPlay{
		Rooms:   NewRoomPicker(fetcher),
		Journal: NewJournal(0),
		player:  player,
		presets: orchestrator.Presets(),
	}
}

// Load fetches the room list.
func (q *QuickPlay) Load(ctx context.Context) error {
	return q.Rooms.Load(ctx, q.Journal)
}

// Presets lists the quick play entries.
func (q *QuickPlay) Presets() []orchestrator.Preset {
	return append([]orchestrator.Preset(nil), q.presets...)
}

// Play starts preset index in the selected room.
func (q *QuickPlay) Play(ctx context.Context, index int) error {
	preset, err := pick(q.presets, index)
	if err != nil {
		q.Journal.Err("%v", err)
		return err
	}
	room := q.Rooms.Selected()
	if room == "" {
		q.Journal.Err("Select a room first")
		return ErrNoRoom
	}
	q.Journal.Info("Playing %s via %s...", preset.Label, preset.Source)
	if _, err := q.player.Play(ctx, preset.Command(orchestrator.Target{Room: room})); err != nil {
		q.Journal.Err("%v", err)
		return err
	}
	q.Journal.OK("Success!")
	return nil
}

// Stop stops everything in the selected room.
func (q *QuickPlay) Stop(ctx context.Context) error {
	return stopRoom(ctx, q.player, q.Rooms, q.Journal)
}

func stopRoom(ctx context.Context, player Player, rooms *RoomPicker, journal *Journal) error {
	room := rooms.Selected()
	if room == "" {
		journal.Err("Select a room first")
		return ErrNoRoom
	}
	journal.Info("Stopping %s...", room)
	if err := player.Stop(ctx, orchestrator.Target{Room: room}, orchestrator.SourceAll); err != nil {
		journal.Err("%v", err)
		return err
	}
	journal.OK("Stopped")
	return nil
}
