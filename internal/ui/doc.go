// Package ui provides the interactive lodge console.
//
// The console is a Bubble Tea program with one tab per source: Quick Play,
// YouTube Music, Spotify, Calm Radio, Roon, Assistant, Alexa, Status and
// Logs. Tabs do not talk to the backends directly. Each tab drives a screen
// controller from the console package, and every backend call runs as a
// tea.Cmd bounded by the request timeout so the event loop never blocks.
//
// # Layout
//
//	lodge  ● 5/5 online  checked 10:42:01  Room: Kitchen
//	[Quick Play][YouTube Music][Spotify]...
//	list of presets, results, channels, zones or services
//	╭ activity journal ──────────────────────────────╮
//	╰────────────────────────────────────────────────╯
//	tab next tab · / search · enter play selection ...
//
// # Keys
//
// tab/shift+tab cycle tabs, "/" opens the search input on searchable tabs,
// enter plays the selected row, "[" and "]" cycle the room, zone or device,
// "r" refreshes, "s" stops, and T cycles the theme. The full list lives in
// keys.go and is rendered by the help overlay (h or ?).
//
// # Background state
//
// Service health is written by the health poller into a shared store and
// read on each frame. The Roon now-playing poll runs only while the Roon tab
// is visible with a zone selected; changing the zone or leaving the tab
// stops it. Theme, room and zone choices are saved through the prefs
// package.
package ui
