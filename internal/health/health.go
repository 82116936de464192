package health

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lodgemusic/lodgectl/internal/config"
	"github.com/lodgemusic/lodgectl/internal/logging"
	"github.com/lodgemusic/lodgectl/internal/poll"
	"github.com/lodgemusic/lodgectl/internal/state"
)

// Status is a probe outcome.
type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
)

// DefaultInterval is the health poll cadence.
const DefaultInterval = 10 * time.Second

// ServiceHealth is one service's result for a single cycle.
type ServiceHealth struct {
	Name      string        `json:"name"`
	Label     string        `json:"label"`
	URL       string        `json:"url"`
	Status    Status        `json:"status"`
	Latency   time.Duration `json:"latency_ns"`
	Error     string        `json:"error,omitempty"`
	CheckedAt time.Time     `json:"checked_at"`
}

// Online reports whether the probe succeeded.
func (s ServiceHealth) Online() bool {
	return s.Status == StatusOnline
}

// Prober issues a health request. *transport.Client implements it.
type Prober interface {
	Probe(ctx context.Context, url string) error
}

// Checker probes every configured service.
type Checker struct {
	services []config.Service
	prober   Prober
	timeout  time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewChecker builds a Checker for services. A positive timeout bounds each
// probe through its context.
func NewChecker(services []config.Service, prober Prober, timeout time.Duration, logger *slog.Logger) *Checker {
	return &Checker{
		services: append([]config.Service(nil), services...),
		prober:   prober,
		timeout:  timeout,
		logger:   logging.NewComponentLogger(logger, "health"),
		now:      time.Now,
	}
}

// CheckAll probes every service concurrently and returns a complete list in
// service order. A failed probe only marks its own service offline.
func (c *Checker) CheckAll(ctx context.Context) []ServiceHealth {
	results := make([]ServiceHealth, len(c.services))
	g, gctx := errgroup.WithContext(ctx)
	for i, svc := range c.services {
		g.Go(func() error {
			results[i] = c.probe(gctx, svc)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (c *Checker) probe(ctx context.Context, svc config.Service) ServiceHealth {
	url := strings.TrimRight(svc.URL, "/") + "/health"
	result := ServiceHealth{Name: svc.Name, Label: svc.Label, URL: svc.URL, Status: StatusOnline}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := c.now()
	err := c.prober.Probe(ctx, url)
	result.CheckedAt = c.now()
	result.Latency = result.CheckedAt.Sub(start)
	if err != nil {
		result.Status = StatusOffline
		result.Error = err.Error()
		c.logger.Debug("service offline", logging.FieldService, svc.Name, logging.Error(err))
	}
	return result
}

// Refresh runs one cycle and stores the full result list.
func (c *Checker) Refresh(ctx context.Context, store *state.Latest[[]ServiceHealth]) []ServiceHealth {
	results := c.CheckAll(ctx)
	store.Set(results)
	return results
}

// Start runs Refresh now and then every interval until the handle is
// stopped or ctx ends.
func (c *Checker) Start(ctx context.Context, store *state.Latest[[]ServiceHealth], interval time.Duration) *poll.Handle {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return poll.Every(ctx, interval, func(ctx context.Context) {
		c.Refresh(ctx, store)
	})
}

// Summary counts online services.
func Summary(results []ServiceHealth) (online, total int) {
	for _, r := range results {
		if r.Online() {
			online++
		}
	}
	return online, len(results)
}
