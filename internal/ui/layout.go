package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100
)

// Pane sizing.
const (
	// chromeLines covers header, tab bar, selector line and footer.
	chromeLines = 6

	// journalLines is the number of activity entries shown under each tab.
	journalLines = 5
)

// Log display limits.
const (
	// LogTailLines is the number of log lines read for the Logs tab.
	LogTailLines = 1000
)

// Timing constants.
const (
	// DefaultUIInterval is the redraw cadence for background state.
	DefaultUIInterval = time.Second

	// DefaultNowPlayingInterval is the Roon now-playing poll cadence.
	DefaultNowPlayingInterval = 5 * time.Second

	// DefaultRequestTimeout bounds each user-triggered request.
	DefaultRequestTimeout = 10 * time.Second
)
