// Package console holds the per-screen controllers behind the interactive
// console.
//
// Each screen owns its own view state (selection, results, activity journal)
// and is safe to call from the UI's command goroutines. A user action calls
// exactly one client function. Missing selections are journaled as errors and
// no request is made. Search results replace the previous results wholesale.
package console
