package poll

import (
	"context"
	"sync"
	"time"
)

// Handle controls a scheduled task started by Every.
type Handle struct {
	stop     chan struct{}
	once     sync.Once
	done     chan struct{}
	inflight sync.WaitGroup
}

// Every runs fn immediately and then on each tick until ctx is done or the
// handle is stopped. Each run gets its own goroutine; a slow run does not
// delay or cancel the next one, so runs may overlap.
func Every(ctx context.Context, interval time.Duration, fn func(context.Context)) *Handle {
	h := &Handle{stop: make(chan struct{}), done: make(chan struct{})}
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		h.run(ctx, ticker.C, fn)
	}()
	return h
}

func (h *Handle) run(ctx context.Context, ticks <-chan time.Time, fn func(context.Context)) {
	defer close(h.done)
	for {
		// A tick and a stop can be ready together; stop wins.
		if h.stopped(ctx) {
			return
		}
		h.inflight.Add(1)
		go func() {
			defer h.inflight.Done()
			fn(ctx)
		}()
		select {
		case <-ctx.Done():
			return
		case <-h.stop:
			return
		case <-ticks:
		}
	}
}

func (h *Handle) stopped(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	case <-h.stop:
		return true
	default:
		return false
	}
}

// Stop ends scheduling. Runs already started are not interrupted. Stop is
// safe to call more than once and on a nil handle.
func (h *Handle) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	<-h.done
}

// Wait blocks until every started run has returned. Call it after Stop.
func (h *Handle) Wait() {
	if h == nil {
		return
	}
	h.inflight.Wait()
}
