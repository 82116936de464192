package console

import (
	"fmt"
	"sync"
	"time"
)

// Level classifies a journal entry.
type Level string

const (
	LevelInfo Level = "info"
	LevelOK   Level = "ok"
	LevelErr  Level = "err"
)

const defaultJournalSize = 200

// Entry is one line of a screen's activity journal.
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
}

// Journal is a bounded, append-only activity log owned by one screen.
type Journal struct {
	mu      sync.Mutex
	entries []Entry
	max     int
	now     func() time.Time
}

// NewJournal returns a journal that keeps at most max entries. max <= 0
// uses a default.
func NewJournal(max int) *Journal {
	if max <= 0 {
		max = defaultJournalSize
	}
	return &Journal{max: max, now: time.Now}
}

// Info records a progress message.
func (j *Journal) Info(format string, args ...any) { j.add(LevelInfo, format, args...) }

// OK records a success.
func (j *Journal) OK(format string, args ...any) { j.add(LevelOK, format, args...) }

// Err records a failure.
func (j *Journal) Err(format string, args ...any) { j.add(LevelErr, format, args...) }

func (j *Journal) add(level Level, format string, args ...any) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.max == 0 {
		j.max = defaultJournalSize
	}
	if j.now == nil {
		j.now = time.Now
	}
	j.entries = append(j.entries, Entry{Time: j.now(), Level: level, Message: fmt.Sprintf(format, args...)})
	if over := len(j.entries) - j.max; over > 0 {
		j.entries = append([]Entry(nil), j.entries[over:]...)
	}
}

// Entries returns a copy of the journal, oldest first.
func (j *Journal) Entries() []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]Entry(nil), j.entries...)
}

// Last returns the newest entry.
func (j *Journal) Last() (Entry, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.entries) == 0 {
		return Entry{}, false
	}
	return j.entries[len(j.entries)-1], true
}
