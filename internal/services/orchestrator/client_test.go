package orchestrator

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

type recorded struct {
	Method string
	Path   string
	Body   map[string]any
}

type fakeOrchestrator struct {
	mu       sync.Mutex
	requests []recorded
	status   int
}

func (f *fakeOrchestrator) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	f.mu.Lock()
	f.requests = append(f.requests, recorded{Method: r.Method, Path: r.URL.Path, Body: body})
	status := f.status
	f.mu.Unlock()
	if status != 0 {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/api/orchestrator/status":
		_, _ = w.Write([]byte(`{"state":"playing","rooms":2}`))
	default:
		_, _ = w.Write([]byte(`{"ok":true}`))
	}
}

func (f *fakeOrchestrator) calls() []recorded {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recorded(nil), f.requests...)
}

func newTestClient(t *testing.T) (*Client, *fakeOrchestrator) {
	t.Helper()
	fake := &fakeOrchestrator{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	tr := transport.New(transport.Options{Logger: logging.NewNop()})
	return NewClient(srv.URL+"/api/orchestrator", tr, logging.NewNop()), fake
}

func TestPlayPostsFlattenedCommandAndSetsFlag(t *testing.T) {
	client, fake := newTestClient(t)

	result, err := client.Play(context.Background(), SpotifyCommand(Target{Room: "Kitchen"}, "spotify:track:1", false))
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(result))
	assert.True(t, client.Playing())

	calls := fake.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, "/api/orchestrator/play", calls[0].Path)
	assert.Equal(t, map[string]any{"source": "spotify", "room": "Kitchen", "uri": "spotify:track:1"}, calls[0].Body)
}

func TestFailedPlayLeavesFlagUnchanged(t *testing.T) {
	client, fake := newTestClient(t)
	fake.setStatus(http.StatusBadGateway)

	_, err := client.Play(context.Background(), CalmCommand(Target{Room: "Den"}, "spa"))
	require.Error(t, err)
	var playErr *media.PlaybackError
	require.True(t, errors.As(err, &playErr))
	assert.Equal(t, "calm", playErr.Source)
	status, ok := transport.StatusCode(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.False(t, client.Playing())

	fake.setStatus(0)
	_, err = client.Play(context.Background(), CalmCommand(Target{Room: "Den"}, "spa"))
	require.NoError(t, err)
	require.True(t, client.Playing())

	fake.setStatus(http.StatusInternalServerError)
	_, err = client.Play(context.Background(), CalmCommand(Target{Room: "Den"}, "spa"))
	require.Error(t, err)
	assert.True(t, client.Playing(), "failed play must not clear a set flag")
}

func TestPlayWithoutTargetSendsNothing(t *testing.T) {
	client, fake := newTestClient(t)

	_, err := client.Play(context.Background(), PlayCommand{Source: SourceSpotify, URI: "spotify:x"})
	require.Error(t, err)
	assert.Empty(t, fake.calls())

	_, err = client.Play(context.Background(), PlayCommand{Room: "Kitchen"})
	require.Error(t, err)
	assert.Empty(t, fake.calls())
}

func TestStopDefaultsSourceAndClearsFlag(t *testing.T) {
	client, fake := newTestClient(t)
	_, err := client.Play(context.Background(), YouTubeMusicCommand(Target{Device: "den-cast"}, "vid1"))
	require.NoError(t, err)

	require.NoError(t, client.Stop(context.Background(), Target{Room: "Kitchen"}, ""))
	assert.False(t, client.Playing())

	calls := fake.calls()
	require.Len(t, calls, 2)
	assert.Equal(t, map[string]any{"source": "ytmusic", "device": "den-cast", "video_id": "vid1"}, calls[0].Body)
	assert.Equal(t, "/api/orchestrator/stop", calls[1].Path)
	assert.Equal(t, map[string]any{"room": "Kitchen", "source": "all"}, calls[1].Body)
}

func TestFailedStopKeepsFlag(t *testing.T) {
	client, fake := newTestClient(t)
	_, err := client.Play(context.Background(), CalmCommand(Target{Room: "Den"}, "classical"))
	require.NoError(t, err)

	fake.setStatus(http.StatusServiceUnavailable)
	err = client.Stop(context.Background(), Target{Room: "Den"}, "calm")
	require.Error(t, err)
	assert.True(t, client.Playing())
}

func TestStatusSwallowsFailures(t *testing.T) {
	client, fake := newTestClient(t)

	status := client.Status(context.Background())
	require.NotNil(t, status)
	assert.Equal(t, []Field{{Key: "rooms", Value: "2"}, {Key: "state", Value: "playing"}}, status.Fields())

	fake.setStatus(http.StatusInternalServerError)
	assert.Nil(t, client.Status(context.Background()))
}

func TestStatusUnreachableIsNil(t *testing.T) {
	tr := transport.New(transport.Options{Logger: logging.NewNop()})
	client := NewClient("http://127.0.0.1:1/api/orchestrator", tr, logging.NewNop())
	assert.NotPanics(t, func() {
		assert.Nil(t, client.Status(context.Background()))
	})
}

func TestAlexaCommand(t *testing.T) {
	client, fake := newTestClient(t)

	_, err := client.AlexaCommand(context.Background(), "media_player.echo_kitchen", "90s rock")
	require.NoError(t, err)

	calls := fake.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/api/orchestrator/alexa/command", calls[0].Path)
	assert.Equal(t, map[string]any{
		"device":  "media_player.echo_kitchen",
		"command": "play 90s rock on Amazon Music",
	}, calls[0].Body)

	_, err = client.AlexaCommand(context.Background(), "", "jazz")
	assert.Error(t, err)
	assert.Len(t, fake.calls(), 1)
}

func TestPlayCommandMarshalKeepsTypedFields(t *testing.T) {
	cmd := PlayCommand{
		Source:  SourceSpotify,
		Room:    "Kitchen",
		URI:     "spotify:playlist:1",
		Shuffle: true,
		Extra:   map[string]any{"source": "evil", "volume": 30},
	}
	data, err := json.Marshal(cmd)
	require.NoError(t, err)
	assert.JSONEq(t, `{"source":"spotify","room":"Kitchen","uri":"spotify:playlist:1","shuffle":true,"volume":30}`, string(data))
}

func TestTargetValidate(t *testing.T) {
	tests := []struct {
		name    string
		target  Target
		wantErr bool
	}{
		{"room", Target{Room: "Kitchen"}, false},
		{"device", Target{Device: "tv"}, false},
		{"neither", Target{}, true},
		{"blank", Target{Room: "  "}, true},
		{"both", Target{Room: "Kitchen", Device: "tv"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.target.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	presets := Presets()
	require.Len(t, presets, 4)
	cmd := presets[0].Command(Target{Room: "Lounge"})
	assert.Equal(t, SourceSpotify, cmd.Source)
	assert.Equal(t, "spotify:playlist:37i9dQZF1EQqZlCxLOykhS", cmd.URI)
	assert.True(t, cmd.Shuffle)
	assert.Equal(t, "spa", presets[2].Command(Target{Room: "Lounge"}).Channel)

	body, err := json.Marshal(presets[3].Command(Target{Device: "tv"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"source":"calm","device":"tv","channel":"classical","label":"Classical"}`, string(body))
}

func (f *fakeOrchestrator) setStatus(status int) {
	f.mu.Lock()
	f.status = status
	f.mu.Unlock()
}
