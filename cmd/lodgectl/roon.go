package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lodgemusic/lodgectl/internal/app"
	"github.com/lodgemusic/lodgectl/internal/services/roon"
)

func newRoonCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roon",
		Short: "Control Roon zones",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "zones",
		Short: "List Roon zones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClients(cmd, func(c context.Context, clients *app.Clients) error {
				zones := clients.Roon.Zones(c)
				return ctx.emit(cmd, zones, func(w io.Writer) error {
					list := newListing("Zone", "Name", "State").whenEmpty("No Roon zones available")
					for _, z := range zones {
						list.add(z.ID, z.Label(), z.State)
					}
					return list.write(w)
				})
			})
		},
	})

	for _, action := range roon.Actions() {
		cmd.AddCommand(newRoonControlCommand(ctx, action))
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "now <zone>",
		Short: "Show what a zone is playing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClients(cmd, func(c context.Context, clients *app.Clients) error {
				zone := resolveZone(c, clients.Roon, args[0])
				state := clients.Roon.NowPlaying(c, zone)
				return ctx.emit(cmd, state, func(w io.Writer) error {
					if state == nil || state.Current == nil {
						fmt.Fprintf(w, "Nothing playing in %s\n", args[0])
						return nil
					}
					fmt.Fprintf(w, "%s [%s]\n", state.Current.Label(), state.State)
					if album := state.Current.AlbumName(); album != "" {
						fmt.Fprintf(w, "Album: %s\n", album)
					}
					return nil
				})
			})
		},
	})
	return cmd
}

func newRoonControlCommand(ctx *commandContext, action roon.Action) *cobra.Command {
	return &cobra.Command{
		Use:   string(action) + " <zone>",
		Short: "Send " + string(action) + " to a zone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClients(cmd, func(c context.Context, clients *app.Clients) error {
				zone := resolveZone(c, clients.Roon, args[0])
				if err := clients.Roon.Control(c, zone, action); err != nil {
					return err
				}
				return ctx.report(cmd, map[string]string{"zone": zone, "action": string(action)},
					"Sent %s to %s", action, args[0])
			})
		},
	}
}

// resolveZone maps a display name to its zone ID. Unknown names pass through
// as IDs.
func resolveZone(ctx context.Context, client *roon.Client, name string) string {
	name = strings.TrimSpace(name)
	for _, z := range client.Zones(ctx) {
		if z.ID == name {
			return z.ID
		}
		if strings.EqualFold(z.DisplayName, name) {
			return z.ID
		}
	}
	return name
}
