package volume

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lodgemusic/lodgectl/internal/logging"
	"github.com/lodgemusic/lodgectl/internal/transport"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		r.mu.Lock()
		r.calls = append(r.calls, req.Method+" "+req.URL.RequestURI())
		r.mu.Unlock()
		if req.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"level":42,"muted":false}`))
		}
	}
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api/volume", transport.New(transport.Options{Logger: logging.NewNop()}), logging.NewNop())
}

func TestSetPassesLevelThroughUnmodified(t *testing.T) {
	rec := &recorder{}
	client := newTestClient(t, rec.handler(t))
	ctx := context.Background()

	for _, level := range []int{0, 1, 55, 100, 150, -5} {
		require.NoError(t, client.Set(ctx, "den-cast", level))
	}
	assert.Equal(t, []string{
		"POST /api/volume/vol/den-cast/set?level=0",
		"POST /api/volume/vol/den-cast/set?level=1",
		"POST /api/volume/vol/den-cast/set?level=55",
		"POST /api/volume/vol/den-cast/set?level=100",
		"POST /api/volume/vol/den-cast/set?level=150",
		"POST /api/volume/vol/den-cast/set?level=-5",
	}, rec.all())
}

func TestParseLevelRejectsFractions(t *testing.T) {
	_, err := ParseLevel("0.5")
	assert.Error(t, err)

	level, err := ParseLevel(" 1 ")
	require.NoError(t, err)
	assert.Equal(t, 1, level, "a level of 1 stays 1, it is not read as 100%")

	level, err = ParseLevel("120")
	require.NoError(t, err)
	assert.Equal(t, 120, level)
}

func TestStepAndMuteEndpoints(t *testing.T) {
	rec := &recorder{}
	client := newTestClient(t, rec.handler(t))
	ctx := context.Background()

	require.NoError(t, client.Up(ctx, "tv", 0))
	require.NoError(t, client.Down(ctx, "tv", 5))
	require.NoError(t, client.Mute(ctx, "tv"))
	require.NoError(t, client.Unmute(ctx, "tv"))

	assert.Equal(t, []string{
		"POST /api/volume/vol/tv/up?step=10",
		"POST /api/volume/vol/tv/down?step=5",
		"POST /api/volume/vol/tv/mute",
		"POST /api/volume/vol/tv/unmute",
	}, rec.all())
}

func TestGet(t *testing.T) {
	rec := &recorder{}
	client := newTestClient(t, rec.handler(t))

	level := client.Get(context.Background(), "tv")
	require.NotNil(t, level)
	assert.Equal(t, 42, level.Value)
	assert.Equal(t, "tv", level.DeviceID)
	assert.Equal(t, []string{"GET /api/volume/vol/tv"}, rec.all())
}

func TestGetAcceptsPlainText(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("37\n"))
	}))
	level := client.Get(context.Background(), "tv")
	require.NotNil(t, level)
	assert.Equal(t, 37, level.Value)
}

func TestWritesPropagateAndReadsSwallow(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	ctx := context.Background()

	assert.Nil(t, client.Get(ctx, "tv"))
	for name, fn := range map[string]func() error{
		"set":    func() error { return client.Set(ctx, "tv", 30) },
		"up":     func() error { return client.Up(ctx, "tv", 10) },
		"down":   func() error { return client.Down(ctx, "tv", 10) },
		"mute":   func() error { return client.Mute(ctx, "tv") },
		"unmute": func() error { return client.Unmute(ctx, "tv") },
	} {
		err := fn()
		require.Error(t, err, name)
		status, ok := transport.StatusCode(err)
		assert.True(t, ok, name)
		assert.Equal(t, http.StatusServiceUnavailable, status, name)
	}
}
