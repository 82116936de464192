package ui

import (
	"testing"
	"time"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"Living Room", 20, "Living Room"},
		{"Living Room", 8, "Livin..."},
		{"Living Room", 3, "Liv"},
		{"  padded  ", 0, "padded"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestTitleCase(t *testing.T) {
	tests := map[string]string{
		"music_assistant": "Music Assistant",
		"ha_media_player": "Ha Media Player",
		"spa":             "Spa",
		"new-age  piano":  "New Age Piano",
		"":                "",
	}
	for in, want := range tests {
		if got := titleCase(in); got != want {
			t.Fatalf("titleCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padRight("abcdef", 4); got != "abcdef" {
		t.Fatalf("padRight should not cut, got %q", got)
	}
}

func TestFormatLatency(t *testing.T) {
	if got := formatLatency(0); got != "-" {
		t.Fatalf("formatLatency(0) = %q", got)
	}
	if got := formatLatency(500 * time.Microsecond); got != "<1ms" {
		t.Fatalf("formatLatency(500us) = %q", got)
	}
	if got := formatLatency(42*time.Millisecond + 300*time.Microsecond); got != "42ms" {
		t.Fatalf("formatLatency(42.3ms) = %q", got)
	}
}
