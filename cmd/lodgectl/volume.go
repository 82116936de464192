package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lodgemusic/lodgectl/internal/app"
	"github.com/lodgemusic/lodgectl/internal/services/volume"
)

func newVolumeCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "volume",
		Short: "Read or change a device's volume",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <device>",
		Short: "Show the current level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClients(cmd, func(c context.Context, clients *app.Clients) error {
				level := clients.Volume.Get(c, args[0])
				if level == nil {
					return fmt.Errorf("volume for %s is unavailable", args[0])
				}
				muted := ""
				if level.Muted {
					muted = " (muted)"
				}
				return ctx.report(cmd, level, "%s: %d%s", args[0], level.Value, muted)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <device> <level>",
		Short: "Set an absolute level",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("level must be an integer: %w", err)
			}
			return ctx.withClients(cmd, func(c context.Context, clients *app.Clients) error {
				if err := clients.Volume.Set(c, args[0], level); err != nil {
					return err
				}
				return ctx.report(cmd, map[string]any{"device": args[0], "level": level},
					"%s set to %d", args[0], level)
			})
		},
	})

	cmd.AddCommand(newVolumeStepCommand(ctx, "up", "Raise the level", func(c context.Context, v *volume.Client, id string, step int) error {
		return v.Up(c, id, step)
	}))
	cmd.AddCommand(newVolumeStepCommand(ctx, "down", "Lower the level", func(c context.Context, v *volume.Client, id string, step int) error {
		return v.Down(c, id, step)
	}))
	cmd.AddCommand(newVolumeToggleCommand(ctx, "mute", "Mute the device", (*volume.Client).Mute))
	cmd.AddCommand(newVolumeToggleCommand(ctx, "unmute", "Unmute the device", (*volume.Client).Unmute))
	return cmd
}

func newVolumeStepCommand(ctx *commandContext, name, short string, apply func(context.Context, *volume.Client, string, int) error) *cobra.Command {
	var step int
	cmd := &cobra.Command{
		Use:   name + " <device>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClients(cmd, func(c context.Context, clients *app.Clients) error {
				if err := apply(c, clients.Volume, args[0], step); err != nil {
					return err
				}
				return ctx.report(cmd, map[string]any{"device": args[0], "action": name, "step": step},
					"%s volume %s by %d", args[0], name, step)
			})
		},
	}
	cmd.Flags().IntVar(&step, "step", volume.DefaultStep, "Step size")
	return cmd
}

func newVolumeToggleCommand(ctx *commandContext, name, short string, apply func(*volume.Client, context.Context, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <device>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClients(cmd, func(c context.Context, clients *app.Clients) error {
				if err := apply(clients.Volume, c, args[0]); err != nil {
					return err
				}
				return ctx.report(cmd, map[string]string{"device": args[0], "action": name},
					"%s %sd", args[0], name)
			})
		},
	}
}
