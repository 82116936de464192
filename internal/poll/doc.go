// Package poll schedules repeating background fetches.
//
// A Handle returned by Every stops future runs only: requests already in
// flight finish and may still write their results afterwards. Consumers that
// care about stray late writes must check that the subject they polled is
// still current.
package poll
