// Package app is the composition root for the lodge console.
//
// Run loads the TOML config, builds the file-only JSON logger, creates one
// client per backend over a shared transport, starts the health poller and
// hands the console screens to the ui package. It blocks until the user
// quits or the context is cancelled, then stops the pollers.
//
//	Run()
//	 ├─ config.Load()            ~/.config/lodge/config.toml
//	 ├─ logging.NewFromConfig()  {log.dir}/lodgectl.log
//	 ├─ NewClients()             topology, orchestrator, spotify, cast,
//	 │                           roon, volume, music assistant, health
//	 ├─ NewScreens()             console controllers for each tab
//	 ├─ StartPollers()           health every health.interval
//	 └─ ui.Run()                 Bubble Tea program (blocks)
//
// NewClients is shared with the lodgectl subcommands so the CLI and the
// console issue identical requests.
package app
