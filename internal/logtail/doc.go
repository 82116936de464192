// Package logtail reads the tail of the lodgectl log file for the console's
// Logs tab.
//
// Read keeps a ring buffer of the last N lines so memory stays bounded by the
// window, not the file. Tail parses each line with Parse, which understands
// the JSON records written by the logging package (ts, level, msg, component
// plus arbitrary attributes) and falls back to the raw text for anything
// else. Filter narrows entries by minimum level and a case-insensitive query.
//
// A missing log file is not an error; Read returns nil, nil.
package logtail
