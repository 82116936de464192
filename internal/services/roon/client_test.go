package roon

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lodgemusic/lodgectl/internal/logging"
	"github.com/lodgemusic/lodgectl/internal/media"
	"github.com/lodgemusic/lodgectl/internal/transport"
)

type call struct {
	Path string
	Zone string
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api/roon", transport.New(transport.Options{Logger: logging.NewNop()}), logging.NewNop())
}

func TestControlRoutesEveryVerbThroughOnePattern(t *testing.T) {
	var mu sync.Mutex
	var calls []call
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body struct {
			Zone string `json:"zone"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		calls = append(calls, call{Path: r.URL.Path, Zone: body.Zone})
		mu.Unlock()
	})

	ctx := context.Background()
	require.NoError(t, client.Play(ctx, "z1"))
	require.NoError(t, client.Pause(ctx, "z1"))
	require.NoError(t, client.Next(ctx, "z1"))
	require.NoError(t, client.Prev(ctx, "z1"))
	require.NoError(t, client.Stop(ctx, "z1"))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []call{
		{"/api/roon/play", "z1"},
		{"/api/roon/pause", "z1"},
		{"/api/roon/next", "z1"},
		{"/api/roon/prev", "z1"},
		{"/api/roon/stop", "z1"},
	}, calls)
}

func TestControlFailureIsPlaybackError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := client.Pause(context.Background(), "z1")
	var playErr *media.PlaybackError
	require.True(t, errors.As(err, &playErr))
	assert.Equal(t, "pause", playErr.Op)
	status, ok := transport.StatusCode(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, status)

	assert.Error(t, client.Control(context.Background(), "z1", Action("rewind")))
	assert.Error(t, client.Play(context.Background(), ""))
}

func TestZones(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"zone_id":"z1","display_name":"Living Room"},{"zone_id":"z2"}]`))
	})
	zones := client.Zones(context.Background())
	require.Len(t, zones, 2)
	assert.Equal(t, "Living Room", zones[0].Label())
	assert.Equal(t, "z2", zones[1].Label())

	failing := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	assert.Equal(t, []Zone{}, failing.Zones(context.Background()))
}

func TestNowPlaying(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/roon/now_playing/Living%20Room", r.URL.EscapedPath())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"state":"playing","now_playing":{"three_line":{"line1":"Naima","line2":"John Coltrane","line3":"Giant Steps"}},"volume":35}`))
	})

	state := client.NowPlaying(context.Background(), "Living Room")
	require.NotNil(t, state)
	assert.Equal(t, media.StatePlaying, state.State)
	assert.Equal(t, 35, state.VolumeLevel)
	require.NotNil(t, state.Current)
	assert.Equal(t, "Naima - John Coltrane", state.Current.Label())
	assert.Equal(t, "Giant Steps", state.Current.AlbumName())
}

func TestNowPlayingFailureIsNil(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	assert.Nil(t, client.NowPlaying(context.Background(), "z1"))
	assert.Nil(t, client.NowPlaying(context.Background(), ""))
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction(" PREV ")
	require.NoError(t, err)
	assert.Equal(t, ActionPrev, a)
	_, err = ParseAction("shuffle")
	assert.Error(t, err)
}
