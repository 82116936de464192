// Package roon wraps the Roon bridge. All five transport verbs go through
// Control, which posts the zone to a path named after the verb.
package roon
