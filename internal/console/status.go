package console

import (
	"context"
	"time"

	"github.com/lodgemusic/lodgectl/internal/health"
	"github.com/lodgemusic/lodgectl/internal/poll"
	"github.com/lodgemusic/lodgectl/internal/state"
)

// HealthChecker runs one health cycle.
type HealthChecker interface {
	Refresh(ctx context.Context, store *state.Latest[[]health.ServiceHealth]) []health.ServiceHealth
	Start(ctx context.Context, store *state.Latest[[]health.ServiceHealth], interval time.Duration) *poll.Handle
}

var _ HealthChecker = (*health.Checker)(nil)

// StatusScreen shows per-service health.
type StatusScreen struct {
	Health  *state.Latest[[]health.ServiceHealth]
	checker HealthChecker
}

// NewStatusScreen builds the screen around a shared health store.
func NewStatusScreen(checker HealthChecker, store *state.Latest[[]health.ServiceHealth]) *StatusScreen {
	if store == nil {
		store = state.NewLatest(state.CloneSlice[health.ServiceHealth])
	}
	return &StatusScreen{Health: store, checker: checker}
}

// Refresh runs a cycle now.
func (s *StatusScreen) Refresh(ctx context.Context) []health.ServiceHealth {
	return s.checker.Refresh(ctx, s.Health)
}

// Start schedules cycles every interval.
func (s *StatusScreen) Start(ctx context.Context, interval time.Duration) *poll.Handle {
	return s.checker.Start(ctx, s.Health, interval)
}

// Services returns the latest results.
func (s *StatusScreen) Services() []health.ServiceHealth {
	return s.Health.Snapshot().Value
}
