// Package musicassistant calls Music Assistant services through the Home
// Assistant REST API.
//
// Every call is a bearer-authenticated POST to
// /api/services/music_assistant/{service}. Enqueueing is a field on
// play_media, not a separate service. All calls are user actions and return
// their errors.
package musicassistant
