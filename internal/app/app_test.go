package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lodgemusic/lodgectl/internal/config"
	"github.com/lodgemusic/lodgectl/internal/health"
	"github.com/lodgemusic/lodgectl/internal/logging"
	"github.com/lodgemusic/lodgectl/internal/state"
)

type pathRecorder struct {
	mu    sync.Mutex
	paths map[string]int
}

func (p *pathRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	if p.paths == nil {
		p.paths = map[string]int{}
	}
	p.paths[r.URL.Path]++
	p.mu.Unlock()

	if r.URL.Path == "/api/roon/health" {
		http.Error(w, "down", http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{}`))
}

func (p *pathRecorder) count(path string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paths[path]
}

func testConfig(t *testing.T, base string) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.APIBase = base
	cfg.Endpoints = config.Endpoints{
		Orchestrator: base + "/api/orchestrator",
		Spotify:      base + "/api/spotify",
		Roon:         base + "/api/roon",
		Cast:         base + "/api/cast",
		Volume:       base + "/api/volume",
	}
	cfg.HealthInterval = time.Hour
	cfg.RequestTimeout = time.Second
	return cfg
}

func TestNewClientsShareEndpoints(t *testing.T) {
	rec := &pathRecorder{}
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)

	clients := NewClients(testConfig(t, srv.URL), logging.NewNop(), nil)
	ctx := context.Background()

	_, _ = clients.Topology.Fetch(ctx)
	clients.Roon.Zones(ctx)
	clients.Cast.CalmCategories(ctx)

	assert.Equal(t, 1, rec.count("/api/volume/rooms"))
	assert.Equal(t, 1, rec.count("/api/volume/devices"))
	assert.Equal(t, 1, rec.count("/api/roon/zones"))
	assert.Equal(t, 1, rec.count("/api/cast/calm/categories"))
}

func TestStartPollersFillsHealthStore(t *testing.T) {
	rec := &pathRecorder{}
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)

	cfg := testConfig(t, srv.URL)
	clients := NewClients(cfg, logging.NewNop(), nil)
	store := state.NewLatest(state.CloneSlice[health.ServiceHealth])
	screens := NewScreens(clients, store)

	pollers := StartPollers(context.Background(), screens.Status, cfg)
	require.Eventually(t, func() bool { return store.Snapshot().Has }, 2*time.Second, 10*time.Millisecond)
	pollers.Stop()

	results := store.Snapshot().Value
	require.Len(t, results, len(cfg.Services()))
	online, total := health.Summary(results)
	assert.Equal(t, total-1, online, "only roon is down")
	for _, r := range results {
		if r.Name == config.ServiceRoon {
			assert.Equal(t, health.StatusOffline, r.Status)
		}
	}
}

func TestPollersStopIsNilSafe(t *testing.T) {
	var p *Pollers
	p.Stop()
}
