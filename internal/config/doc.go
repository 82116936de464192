// Package config loads the lodgectl configuration file.
//
// # Overview
//
// lodgectl talks to five backend services (orchestrator, spotify, roon, cast
// and volume) that normally sit behind one origin under a common path prefix,
// plus a Home Assistant instance hosting the music assistant integration. The
// config file names that origin and lets any single service be pointed
// elsewhere.
//
// # Configuration Discovery
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/lodge/config.toml
//  3. If the file doesn't exist, fall back to defaults
//  4. If the file exists but fields are blank, use defaults for those fields
//
// # TOML Format
//
//	api_base   = "http://10.0.101.20:8080"
//	api_prefix = "/api"
//
//	[services]
//	roon = "http://10.0.101.30:9330"
//
//	[music_assistant]
//	url = "http://10.0.101.98:8123"
//
//	[poll]
//	health_seconds = 10
//
//	[log]
//	level = "debug"
//
// With the example above the spotify endpoint resolves to
// http://10.0.101.20:8080/api/spotify while roon uses its override.
//
// # Secrets
//
// The music assistant token may be set in the file, but the LODGE_MA_TOKEN
// environment variable takes precedence. The token is passed through as an
// opaque bearer string and is never logged.
//
// # Immutability
//
// Load returns a Config value. Nothing in lodgectl mutates the endpoint set
// after startup; packages receive the URLs they need at construction time.
package config
