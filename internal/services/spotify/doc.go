// Package spotify wraps the Spotify bridge: catalog search, Connect devices
// and now playing. Search errors propagate; the device and now-playing reads
// degrade to empty or nil.
package spotify
