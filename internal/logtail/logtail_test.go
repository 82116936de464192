package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "read all (0)", maxLines: 0, expected: expectedAll},
		{name: "read all (negative)", maxLines: -1, expected: expectedAll},
		{name: "read partial (5)", maxLines: 5, expected: expectedAll[5:]},
		{name: "read exactly all (10)", maxLines: 10, expected: expectedAll},
		{name: "read more than exists (20)", maxLines: 20, expected: expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestReadMissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read() = %v, %v; want nil, nil", got, err)
	}
}

func TestParse(t *testing.T) {
	line := `{"ts":"2026-03-01T10:00:00Z","level":"warn","msg":"probe failed","component":"health","url":"http://lodge:8080/health","status":503}`
	e := Parse(line)

	if e.Level != "warn" || e.Message != "probe failed" || e.Component != "health" {
		t.Fatalf("unexpected entry: %+v", e)
	}
	want := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if !e.Time.Equal(want) {
		t.Fatalf("Time = %v, want %v", e.Time, want)
	}
	if e.Attrs["status"] != "503" || e.Attrs["url"] != "http://lodge:8080/health" {
		t.Fatalf("Attrs = %v", e.Attrs)
	}
	if keys := e.AttrKeys(); !reflect.DeepEqual(keys, []string{"status", "url"}) {
		t.Fatalf("AttrKeys = %v", keys)
	}
}

func TestParsePlainText(t *testing.T) {
	e := Parse("  panic: something odd ")
	if e.Message != "panic: something odd" || e.Level != "" || e.Attrs != nil {
		t.Fatalf("unexpected entry: %+v", e)
	}
}

func TestTailAndFilter(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "lodgectl.log")
	lines := []string{
		`{"ts":"2026-03-01T10:00:00Z","level":"debug","msg":"tick","component":"poll"}`,
		``,
		`{"ts":"2026-03-01T10:00:01Z","level":"info","msg":"play requested","component":"console","room":"Kitchen"}`,
		`{"ts":"2026-03-01T10:00:02Z","level":"error","msg":"api request failed","component":"transport","url":"http://lodge/play"}`,
	}
	if err := os.WriteFile(logPath, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	entries, err := Tail(logPath, 0)
	if err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Tail() returned %d entries, want 3", len(entries))
	}

	tests := []struct {
		name     string
		level    string
		query    string
		expected []string
	}{
		{name: "everything", expected: []string{"tick", "play requested", "api request failed"}},
		{name: "info and up", level: "info", expected: []string{"play requested", "api request failed"}},
		{name: "errors", level: "error", expected: []string{"api request failed"}},
		{name: "query matches attribute", query: "kitchen", expected: []string{"play requested"}},
		{name: "query matches component", query: "TRANSPORT", expected: []string{"api request failed"}},
		{name: "no match", level: "warn", query: "kitchen", expected: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(entries, tt.level, tt.query)
			msgs := make([]string, 0, len(got))
			for _, e := range got {
				msgs = append(msgs, e.Message)
			}
			if !reflect.DeepEqual(msgs, tt.expected) {
				t.Errorf("Filter() = %v, want %v", msgs, tt.expected)
			}
		})
	}
}
