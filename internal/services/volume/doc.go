// Package volume wraps the volume service's per-device controls.
//
// Levels are absolute integers on a 0-100 scale and are sent exactly as
// given. Get is a passive read and returns nil on failure; every write is a
// POST whose error reaches the caller.
package volume
