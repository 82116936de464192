// Package main hosts the lodgectl entrypoint and command graph.
//
// Without a subcommand lodgectl opens the interactive console. The other
// commands call a single backend client each and print a table, or indented
// JSON with --json, so they can be scripted from cron jobs and home
// automation hooks.
package main
