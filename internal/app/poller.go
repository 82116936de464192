package app

import (
	"context"

	"github.com/lodgemusic/lodgectl/internal/config"
	"github.com/lodgemusic/lodgectl/internal/console"
	"github.com/lodgemusic/lodgectl/internal/health"
	"github.com/lodgemusic/lodgectl/internal/poll"
)

// Pollers owns the background loops started for the console.
type Pollers struct {
	handles []*poll.Handle
}

// StartPollers starts the health poll at the configured cadence. It returns
// immediately; the first cycle runs in the background.
func StartPollers(ctx context.Context, status *console.StatusScreen, cfg config.Config) *Pollers {
	interval := cfg.HealthInterval
	if interval <= 0 {
		interval = health.DefaultInterval
	}
	return &Pollers{handles: []*poll.Handle{status.Start(ctx, interval)}}
}

// Stop ends every loop and waits for in-flight runs.
func (p *Pollers) Stop() {
	if p == nil {
		return
	}
	for _, h := range p.handles {
		h.Stop()
	}
	for _, h := range p.handles {
		h.Wait()
	}
}
