// Package media defines the provider-neutral shapes shared by the service
// clients and the console: Item, PlaybackState and Queue.
package media
