package main

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lodgemusic/lodgectl/internal/app"
)

func newRoomsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rooms",
		Short: "List rooms and their member devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClients(cmd, func(c context.Context, clients *app.Clients) error {
				topo, err := clients.Topology.Fetch(c)
				if err != nil {
					return err
				}
				return ctx.emit(cmd, topo.Rooms, func(w io.Writer) error {
					list := newListing("Room", "Devices", "Members").whenEmpty("No rooms configured")
					for _, room := range topo.Rooms {
						names := make([]string, 0, len(room.Devices))
						for _, d := range room.Devices {
							names = append(names, d.DisplayName())
						}
						list.add(room.Name, room.Count, strings.Join(names, ", "))
					}
					return list.write(w)
				})
			})
		},
	}
}

func newDevicesCommand(ctx *commandContext) *cobra.Command {
	var spotifyOnly bool
	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List playback devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClients(cmd, func(c context.Context, clients *app.Clients) error {
				if spotifyOnly {
					devices := clients.Spotify.Devices(c)
					return ctx.emit(cmd, devices, func(w io.Writer) error {
						list := newListing("ID", "Name", "Type", "Active", "Volume").whenEmpty("No Spotify Connect devices")
						for _, d := range devices {
							list.add(d.ID, d.Name, d.Type, d.IsActive, d.VolumePercent)
						}
						return list.write(w)
					})
				}

				topo, err := clients.Topology.Fetch(c)
				if err != nil {
					return err
				}
				return ctx.emit(cmd, topo.Devices, func(w io.Writer) error {
					list := newListing("ID", "Name", "Protocol", "Available", "Enabled").whenEmpty("No devices found")
					for _, d := range topo.Devices {
						list.add(d.ID, d.DisplayName(), d.Protocol, d.Available, d.Enabled)
					}
					return list.write(w)
				})
			})
		},
	}
	cmd.Flags().BoolVar(&spotifyOnly, "spotify", false, "List Spotify Connect devices instead")
	return cmd
}
