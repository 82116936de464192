package main

import (
	"github.com/spf13/cobra"

	"github.com/lodgemusic/lodgectl/internal/app"
)

func newRootCommand() *cobra.Command {
	root, _ := newRootCommandWithContext()
	return root
}

func newRootCommandWithContext() (*cobra.Command, *commandContext) {
	var configFlag string
	var prefsFlag string
	var jsonFlag bool

	ctx := newCommandContext(&configFlag, &prefsFlag, &jsonFlag)

	rootCmd := &cobra.Command{
		Use:           "lodgectl",
		Short:         "Lodge home audio console",
		Long:          "Control the lodge's music backends from a terminal console or one-shot commands.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd, ctx)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (default ~/.config/lodge/config.toml)")
	rootCmd.PersistentFlags().StringVar(&prefsFlag, "prefs", "", "Preferences file path (default ~/.config/lodge/prefs.toml)")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Print machine-readable JSON")

	rootCmd.AddCommand(newConsoleCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newRoomsCommand(ctx))
	rootCmd.AddCommand(newDevicesCommand(ctx))
	rootCmd.AddCommand(newPlayCommand(ctx))
	rootCmd.AddCommand(newStopCommand(ctx))
	rootCmd.AddCommand(newSearchCommand(ctx))
	rootCmd.AddCommand(newCalmCommand(ctx))
	rootCmd.AddCommand(newRoonCommand(ctx))
	rootCmd.AddCommand(newVolumeCommand(ctx))
	rootCmd.AddCommand(newMusicAssistantCommand(ctx))
	rootCmd.AddCommand(newAlexaCommand(ctx))

	return rootCmd, ctx
}

func newConsoleCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Open the interactive console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd, ctx)
		},
	}
}

// runConsole starts the TUI, or prints the status table when stdout is not a
// terminal.
func runConsole(cmd *cobra.Command, ctx *commandContext) error {
	if !ctx.interactive() || ctx.jsonOutput() {
		return runStatus(cmd, ctx)
	}
	return app.Run(cmd.Context(), app.Options{
		ConfigPath: ctx.configPath(),
		PrefsPath:  ctx.prefsPath(),
	})
}
