package media

import "testing"

func TestItemDisplayHelpers(t *testing.T) {
	item := Item{
		Provider: ProviderSpotify,
		ID:       "abc",
		Title:    "So What",
		Artists:  []Artist{{Name: "Miles Davis"}, {Name: " "}, {Name: "John Coltrane"}},
	}
	if got := item.ArtistLine(); got != "Miles Davis, John Coltrane" {
		t.Fatalf("ArtistLine = %q", got)
	}
	if got := item.Label(); got != "So What - Miles Davis, John Coltrane" {
		t.Fatalf("Label = %q", got)
	}
	if got := item.PlayRef(); got != "abc" {
		t.Fatalf("PlayRef without URI = %q, want id", got)
	}
	item.URI = "spotify:track:abc"
	if got := item.PlayRef(); got != "spotify:track:abc" {
		t.Fatalf("PlayRef = %q, want uri", got)
	}
	if item.AlbumName() != "" {
		t.Fatal("expected empty album name")
	}
}

func TestQueueCurrent(t *testing.T) {
	q := Queue{Items: []Item{{Title: "a"}, {Title: "b"}}, CurrentIndex: 1}
	if cur, ok := q.Current(); !ok || cur.Title != "b" {
		t.Fatalf("Current = %+v, %v", cur, ok)
	}
	q.CurrentIndex = 5
	if _, ok := q.Current(); ok {
		t.Fatal("out of range index should report false")
	}
}

func TestPlaybackStateIsPlaying(t *testing.T) {
	var nilState *PlaybackState
	if nilState.IsPlaying() {
		t.Fatal("nil state should not be playing")
	}
	if !(&PlaybackState{State: "Playing"}).IsPlaying() {
		t.Fatal("state comparison should ignore case")
	}
}
