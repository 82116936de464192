// Package cast wraps the cast bridge, which fronts both YouTube Music and
// Calm Radio.
//
// Searches are user actions and return their errors. Category and channel
// listings are passive reads: on failure they log and return an empty slice.
package cast
