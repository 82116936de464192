// Package orchestrator drives the central playback orchestrator.
//
// Play and Stop are user actions and return *media.PlaybackError on failure.
// Status is a background read: failures are logged and reported as nil. The
// client tracks a local playing flag that only changes when a command
// succeeds.
package orchestrator
