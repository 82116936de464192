// Package health probes each backend's /health endpoint.
//
// Every cycle issues one independent probe per service and produces a full
// replacement list; entries are never patched individually. Any probe
// failure, whether a refused connection or a 5xx, is recorded as offline and
// never returned as an error.
package health
