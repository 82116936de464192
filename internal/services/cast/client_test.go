package cast

import (
	"context"
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

type requestLog struct {
	mu   sync.Mutex
	uris []string
}

func (l *requestLog) add(uri string) {
	l.mu.Lock()
	l.uris = append(l.uris, uri)
	l.mu.Unlock()
}

func (l *requestLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.uris...)
}

var allChannels = []Channel{
	{ID: "1", Name: "spa", Title: "Spa", Category: "spa"},
	{ID: "2", Name: "", Title: "Zen Garden", Category: "spa"},
	{ID: "3", Name: "classical", Title: "Classical Piano", Category: "classical"},
}

func newCastServer(t *testing.T, log *requestLog) *Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/cast/ytmusic/search", func(w http.ResponseWriter, r *http.Request) {
		log.add(r.URL.RequestURI())
		writeJSON(t, w, []Track{{VideoID: "v1", Title: "Blue in Green", Artist: "Miles Davis"}})
	})
	mux.HandleFunc("/api/cast/calm/categories", func(w http.ResponseWriter, r *http.Request) {
		log.add(r.URL.RequestURI())
		writeJSON(t, w, []Category{{Name: "spa", Count: 2}, {Name: "classical", Count: 1}})
	})
	mux.HandleFunc("/api/cast/calm/channels", func(w http.ResponseWriter, r *http.Request) {
		log.add(r.URL.RequestURI())
		category := r.URL.Query().Get("category")
		var out []Channel
		for _, ch := range allChannels {
			if category == "" || ch.Category == category {
				out = append(out, ch)
			}
		}
		writeJSON(t, w, out)
	})
	mux.HandleFunc("/api/cast/calm/search/", func(w http.ResponseWriter, r *http.Request) {
		log.add(r.URL.EscapedPath())
		writeJSON(t, w, allChannels[:1])
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	tr := transport.New(transport.Options{Logger: logging.NewNop()})
	return NewClient(srv.URL+"/api/cast", tr, logging.NewNop())
}

func TestSearchYouTubeMusicDefaults(t *testing.T) {
	log := &requestLog{}
	client := newCastServer(t, log)

	tracks, err := client.SearchYouTubeMusic(context.Background(), "miles davis", "", 0)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, []string{"/api/cast/ytmusic/search?filter=songs&limit=20&q=miles+davis"}, log.all())

	item := tracks[0].MediaItem()
	assert.Equal(t, media.ProviderYouTubeMusic, item.Provider)
	assert.Equal(t, "v1", item.PlayRef())
	assert.Equal(t, "Miles Davis", item.ArtistLine())
}

func TestCalmCategorySelectionFiltersChannels(t *testing.T) {
	log := &requestLog{}
	client := newCastServer(t, log)

	channels := client.CalmChannels(context.Background(), ChannelFilter{Category: "spa"})
	require.Len(t, channels, 2)
	for _, ch := range channels {
		assert.Equal(t, "spa", ch.Category)
	}
	assert.Equal(t, []string{"/api/cast/calm/channels?category=spa"}, log.all())
}

func TestCalmChannelFiltersAreIndependent(t *testing.T) {
	tests := []struct {
		name   string
		filter ChannelFilter
		want   string
	}{
		{"neither", ChannelFilter{}, "/api/cast/calm/channels"},
		{"category", ChannelFilter{Category: "spa"}, "/api/cast/calm/channels?category=spa"},
		{"search", ChannelFilter{Search: "zen"}, "/api/cast/calm/channels?search=zen"},
		{"both", ChannelFilter{Category: "spa", Search: "zen"}, "/api/cast/calm/channels?category=spa&search=zen"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &requestLog{}
			client := newCastServer(t, log)
			client.CalmChannels(context.Background(), tt.filter)
			assert.Equal(t, []string{tt.want}, log.all())
		})
	}
}

func TestCalmListingsSwallowFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL, transport.New(transport.Options{}), nil)

	var categories []Category
	assert.NotPanics(t, func() { categories = client.CalmCategories(context.Background()) })
	assert.NotNil(t, categories)
	assert.Empty(t, categories)

	channels := client.CalmChannels(context.Background(), ChannelFilter{Category: "spa"})
	assert.NotNil(t, channels)
	assert.Empty(t, channels)

	_, err := client.SearchCalm(context.Background(), "spa")
	assert.Error(t, err)
	_, err = client.SearchYouTubeMusic(context.Background(), "jazz", "", 0)
	assert.Error(t, err)
}

func TestSearchCalmEscapesQuery(t *testing.T) {
	log := &requestLog{}
	client := newCastServer(t, log)

	channels, err := client.SearchCalm(context.Background(), "rain & thunder")
	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.Equal(t, []string{"/api/cast/calm/search/rain%20&%20thunder"}, log.all())
}

func TestChannelPlayRef(t *testing.T) {
	assert.Equal(t, "spa", allChannels[0].PlayRef())
	assert.Equal(t, "2", allChannels[1].PlayRef())
	assert.Equal(t, "Zen Garden", allChannels[1].MediaItem().Title)
	assert.Equal(t, "1", Channel{ID: "1"}.DisplayTitle())
}
