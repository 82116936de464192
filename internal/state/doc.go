// Package state holds the latest snapshot of each polled resource for the
// console.
//
// # Overview
//
// Background polls (service health, now playing) write into a Latest[T] and
// the UI reads Snapshot whenever it renders. The two sides never share
// mutable data: a write replaces the whole value and reads can copy it.
//
//	poll run ──Set/Fail──→ Latest[T] ←──Snapshot── UI render
//
// # Write Semantics
//
// Set replaces the value, clears the error and resets the failure count.
// Fail keeps the last good value and records the error, so a view can show
// stale data with a warning instead of going blank.
//
// Poll runs may overlap. Writes are applied in completion order, so the
// run that finishes last determines what the view shows even when it
// started first.
//
// # Usage
//
//	health := state.NewLatest(state.CloneSlice[health.ServiceHealth])
//	health.Set(checker.CheckAll(ctx))
//	snap := health.Snapshot()
//
// The zero Latest is usable and returns values without copying.
package state
