package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lodgemusic/lodgectl/internal/config"
	"github.com/lodgemusic/lodgectl/internal/logging"
	"github.com/lodgemusic/lodgectl/internal/state"
	"github.com/lodgemusic/lodgectl/internal/transport"
)

// MockProber implements Prober with a configurable function.
type MockProber struct {
	ProbeFn func(ctx context.Context, url string) error
	calls   atomic.Int32
}

func (m *MockProber) Probe(ctx context.Context, url string) error {
	m.calls.Add(1)
	if m.ProbeFn != nil {
		return m.ProbeFn(ctx, url)
	}
	return nil
}

func TestCheckAllIsolatesRoonFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/roon/health" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if !strings.HasSuffix(r.URL.Path, "/health") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.APIBase = srv.URL
	cfg.Endpoints = config.Endpoints{
		Orchestrator: srv.URL + "/api/orchestrator",
		Spotify:      srv.URL + "/api/spotify",
		Roon:         srv.URL + "/api/roon",
		Cast:         srv.URL + "/api/cast",
		Volume:       srv.URL + "/api/volume",
	}
	tr := transport.New(transport.Options{Logger: logging.NewNop()})
	checker := NewChecker(cfg.Services(), tr, time.Second, logging.NewNop())

	results := checker.CheckAll(context.Background())
	require.Len(t, results, 5)

	want := map[string]Status{
		config.ServiceOrchestrator: StatusOnline,
		config.ServiceSpotify:      StatusOnline,
		config.ServiceRoon:         StatusOffline,
		config.ServiceCast:         StatusOnline,
		config.ServiceVolume:       StatusOnline,
	}
	for _, r := range results {
		assert.Equal(t, want[r.Name], r.Status, r.Name)
	}
	assert.Equal(t, config.ServiceRoon, results[2].Name, "results keep service order")
	assert.Equal(t, "HTTP 500: Internal Server Error", results[2].Error)

	online, total := Summary(results)
	assert.Equal(t, 4, online)
	assert.Equal(t, 5, total)
}

func TestCheckAllTreatsNetworkFailureAsOffline(t *testing.T) {
	services := []config.Service{
		{Name: "up", URL: "http://up"},
		{Name: "down", URL: "http://down"},
	}
	prober := &MockProber{ProbeFn: func(ctx context.Context, url string) error {
		if url == "http://down/health" {
			return &transport.NetworkError{URL: url, Err: errors.New("connection refused")}
		}
		return nil
	}}
	checker := NewChecker(services, prober, 0, nil)

	results := checker.CheckAll(context.Background())
	require.Len(t, results, 2)
	assert.True(t, results[0].Online())
	assert.False(t, results[1].Online())
	assert.Contains(t, results[1].Error, "connection refused")
	assert.EqualValues(t, 2, prober.calls.Load())
}

func TestCheckAllProbesConcurrently(t *testing.T) {
	services := []config.Service{{Name: "a", URL: "http://a"}, {Name: "b", URL: "http://b"}, {Name: "c", URL: "http://c"}}
	var active, peak atomic.Int32
	gate := make(chan struct{})
	prober := &MockProber{ProbeFn: func(ctx context.Context, url string) error {
		n := active.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		if n == int32(len(services)) {
			close(gate)
		}
		select {
		case <-gate:
		case <-time.After(2 * time.Second):
		}
		active.Add(-1)
		return nil
	}}

	results := NewChecker(services, prober, 0, nil).CheckAll(context.Background())
	assert.Len(t, results, 3)
	assert.EqualValues(t, 3, peak.Load())
}

func TestProbeTimeoutMarksOffline(t *testing.T) {
	prober := &MockProber{ProbeFn: func(ctx context.Context, url string) error {
		<-ctx.Done()
		return ctx.Err()
	}}
	checker := NewChecker([]config.Service{{Name: "slow", URL: "http://slow"}}, prober, 20*time.Millisecond, nil)

	results := checker.CheckAll(context.Background())
	require.Len(t, results, 1)
	assert.Equal(t, StatusOffline, results[0].Status)
}

func TestRefreshReplacesWholeList(t *testing.T) {
	var fail atomic.Bool
	prober := &MockProber{ProbeFn: func(ctx context.Context, url string) error {
		if fail.Load() && url == "http://b/health" {
			return errors.New("down")
		}
		return nil
	}}
	checker := NewChecker([]config.Service{{Name: "a", URL: "http://a"}, {Name: "b", URL: "http://b"}}, prober, 0, nil)
	store := state.NewLatest(state.CloneSlice[ServiceHealth])

	checker.Refresh(context.Background(), store)
	first := store.Snapshot().Value
	require.Len(t, first, 2)
	assert.True(t, first[1].Online())

	fail.Store(true)
	checker.Refresh(context.Background(), store)
	second := store.Snapshot().Value
	require.Len(t, second, 2)
	assert.True(t, second[0].Online())
	assert.False(t, second[1].Online())
	assert.True(t, first[1].Online(), "earlier snapshots are not patched")
}

func TestStartPollsUntilStopped(t *testing.T) {
	prober := &MockProber{}
	checker := NewChecker([]config.Service{{Name: "a", URL: "http://a"}}, prober, 0, nil)
	store := state.NewLatest(state.CloneSlice[ServiceHealth])

	handle := checker.Start(context.Background(), store, 10*time.Millisecond)
	require.Eventually(t, func() bool { return prober.calls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	handle.Stop()
	handle.Wait()

	assert.True(t, store.Snapshot().Has)
	after := prober.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, prober.calls.Load())
}
