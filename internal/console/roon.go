package console

import (
	"context"
	"sync"
	"time"

	"github.com/lodgemusic/lodgectl/internal/media"
	"github.com/lodgemusic/lodgectl/internal/poll"
	"github.com/lodgemusic/lodgectl/internal/services/roon"
	"github.com/lodgemusic/lodgectl/internal/state"
)

// RoonScreen controls one Roon zone and polls what it is playing.
type RoonScreen struct {
	Journal    *Journal
	NowPlaying *state.Latest[*media.PlaybackState]
	controller RoonController

	mu     sync.Mutex
	zones  []roon.Zone
	zone   string
	handle *poll.Handle
}

// NewRoonScreen builds the screen.
func NewRoonScreen(controller RoonController) *RoonScreen {
	return &RoonScreen{
		Journal:    NewJournal(0),
		NowPlaying: &state.Latest[*media.PlaybackState]{},
		controller: controller,
	}
}

// Load fetches the zone list.
func (r *RoonScreen) Load(ctx context.Context) {
	zones := r.controller.Zones(ctx)
	r.mu.Lock()
	r.zones = zones
	r.mu.Unlock()
	r.Journal.Info("Loaded %d zones", len(zones))
}

// Zones returns the loaded zones.
func (r *RoonScreen) Zones() []roon.Zone {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]roon.Zone(nil), r.zones...)
}

// Zone returns the selected zone ID.
func (r *RoonScreen) Zone() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zone
}

// ZoneLabel returns the selected zone's display name.
func (r *RoonScreen) ZoneLabel() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, z := range r.zones {
		if z.ID == r.zone {
			return z.Label()
		}
	}
	return r.zone
}

// SelectZone changes the zone. Any running now-playing poll is torn down and
// the previous zone's snapshot is dropped; the caller restarts polling.
func (r *RoonScreen) SelectZone(id string) {
	r.mu.Lock()
	changed := r.zone != id
	r.zone = id
	r.mu.Unlock()
	if changed {
		r.StopNowPlaying()
		r.NowPlaying.Reset()
	}
}

// CycleZone moves the selection by delta and returns the new zone ID.
func (r *RoonScreen) CycleZone(delta int) string {
	r.mu.Lock()
	ids := make([]string, len(r.zones))
	for i, z := range r.zones {
		ids[i] = z.ID
	}
	next := cycle(ids, r.zone, delta)
	r.mu.Unlock()
	r.SelectZone(next)
	return next
}

// Control sends action to the selected zone.
func (r *RoonScreen) Control(ctx context.Context, action roon.Action) error {
	zone := r.Zone()
	if zone == "" {
		r.Journal.Err("Select a zone first")
		return ErrNoZone
	}
	if err := r.controller.Control(ctx, zone, action); err != nil {
		r.Journal.Err("%v", err)
		return err
	}
	r.Journal.OK("%s: %s", action, r.ZoneLabel())
	return nil
}

// RefreshNowPlaying polls the selected zone once.
func (r *RoonScreen) RefreshNowPlaying(ctx context.Context) {
	r.refreshZone(ctx, r.Zone())
}

// refreshZone stores the result only if zone is still selected.
func (r *RoonScreen) refreshZone(ctx context.Context, zone string) {
	if zone == "" {
		return
	}
	np := r.controller.NowPlaying(ctx, zone)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.zone != zone {
		return
	}
	r.NowPlaying.Set(np)
}

// StartNowPlaying polls the selected zone every interval, replacing any
// previous poll.
func (r *RoonScreen) StartNowPlaying(ctx context.Context, interval time.Duration) {
	r.StopNowPlaying()
	zone := r.Zone()
	if zone == "" {
		return
	}
	handle := poll.Every(ctx, interval, func(ctx context.Context) {
		r.refreshZone(ctx, zone)
	})
	r.mu.Lock()
	r.handle = handle
	r.mu.Unlock()
}

// StopNowPlaying stops future polls. In-flight requests finish.
func (r *RoonScreen) StopNowPlaying() {
	r.mu.Lock()
	handle := r.handle
	r.handle = nil
	r.mu.Unlock()
	handle.Stop()
}

// Polling reports whether a now-playing poll is scheduled.
func (r *RoonScreen) Polling() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handle != nil
}
