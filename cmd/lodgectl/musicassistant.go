package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lodgemusic/lodgectl/internal/app"
	"github.com/lodgemusic/lodgectl/internal/services/musicassistant"
)

func newMusicAssistantCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ma",
		Aliases: []string{"assistant"},
		Short:   "Drive Music Assistant players",
	}

	var mediaType string
	play := &cobra.Command{
		Use:   "play <player> <media-id>",
		Short: "Play an item on a player, replacing what is playing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClients(cmd, func(c context.Context, clients *app.Clients) error {
				if err := clients.MusicAssistant.PlayMedia(c, args[0], args[1], mediaType); err != nil {
					return err
				}
				return ctx.report(cmd, map[string]string{"player": args[0], "media_id": args[1]},
					"Playing %s on %s", args[1], args[0])
			})
		},
	}
	play.Flags().StringVarP(&mediaType, "type", "t", musicassistant.DefaultMediaType, "Media type of the item")
	cmd.AddCommand(play)

	cmd.AddCommand(newEnqueueCommand(ctx, "add", "Append an item to the player's queue", musicassistant.EnqueueAdd))
	cmd.AddCommand(newEnqueueCommand(ctx, "next", "Play an item after the current one", musicassistant.EnqueueNext))

	cmd.AddCommand(&cobra.Command{
		Use:   "queue <player>",
		Short: "Show the player's queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClients(cmd, func(c context.Context, clients *app.Clients) error {
				queue, err := clients.MusicAssistant.Queue(c, args[0])
				if err != nil {
					return err
				}
				return ctx.emit(cmd, queue, func(w io.Writer) error {
					list := newListing("", "#", "Title", "Artist").whenEmpty(fmt.Sprintf("Queue for %s is empty", args[0]))
					for i, item := range queue.Items {
						marker := " "
						if i == queue.CurrentIndex {
							marker = "▶"
						}
						list.add(marker, i+1, item.Title, item.ArtistLine())
					}
					return list.write(w)
				})
			})
		},
	})
	return cmd
}

func newEnqueueCommand(ctx *commandContext, name, short string, mode musicassistant.EnqueueMode) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <player> <media-id>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClients(cmd, func(c context.Context, clients *app.Clients) error {
				if err := clients.MusicAssistant.Enqueue(c, args[0], args[1], mode); err != nil {
					return err
				}
				return ctx.report(cmd, map[string]string{"player": args[0], "media_id": args[1], "enqueue": string(mode)},
					"Queued %s on %s (%s)", args[1], args[0], mode)
			})
		},
	}
}
