package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lodgemusic/lodgectl/internal/app"
	"github.com/lodgemusic/lodgectl/internal/media"
	"github.com/lodgemusic/lodgectl/internal/services/cast"
	"github.com/lodgemusic/lodgectl/internal/services/musicassistant"
	"github.com/lodgemusic/lodgectl/internal/services/spotify"
)

type searchFunc func(ctx context.Context, clients *app.Clients, query, kind string, limit int) ([]media.Item, error)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search a music provider",
	}
	cmd.AddCommand(newSearchProviderCommand(ctx, "spotify", "Search Spotify", spotify.DefaultSearchKinds, searchSpotify))
	cmd.AddCommand(newSearchProviderCommand(ctx, "ytmusic", "Search YouTube Music", cast.DefaultFilter, searchYouTube))
	cmd.AddCommand(newSearchProviderCommand(ctx, "calm", "Search Calm Radio channels", "", searchCalm))
	cmd.AddCommand(newSearchProviderCommand(ctx, "ma", "Search the Music Assistant library", musicassistant.DefaultMediaType, searchMusicAssistant))
	return cmd
}

func newSearchProviderCommand(ctx *commandContext, name, short, defaultKind string, search searchFunc) *cobra.Command {
	var kind string
	var limit int
	cmd := &cobra.Command{
		Use:   name + " <query...>",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return ctx.withClients(cmd, func(c context.Context, clients *app.Clients) error {
				items, err := search(c, clients, query, kind, limit)
				if err != nil {
					return err
				}
				if items == nil {
					items = []media.Item{}
				}
				return ctx.emit(cmd, items, func(w io.Writer) error {
					return itemListing(items).whenEmpty(fmt.Sprintf("No results for %q", query)).write(w)
				})
			})
		},
	}
	if defaultKind != "" {
		cmd.Flags().StringVarP(&kind, "type", "t", defaultKind, "Result type filter")
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum results (0 uses the provider default)")
	return cmd
}

// itemListing numbers items from 1; Ref is what the play commands accept.
func itemListing(items []media.Item) *listing {
	list := newListing("#", "Kind", "Title", "Artist", "Ref")
	for i, item := range items {
		list.add(i+1, item.Kind, item.Title, item.ArtistLine(), item.PlayRef())
	}
	return list
}

func searchSpotify(ctx context.Context, clients *app.Clients, query, kind string, limit int) ([]media.Item, error) {
	if kind == "" {
		kind = spotify.DefaultSearchKinds
	}
	results, err := clients.Spotify.Search(ctx, query, kind, limit)
	if err != nil {
		return nil, err
	}
	return results.Items(), nil
}

func searchYouTube(ctx context.Context, clients *app.Clients, query, kind string, limit int) ([]media.Item, error) {
	tracks, err := clients.Cast.SearchYouTubeMusic(ctx, query, kind, limit)
	if err != nil {
		return nil, err
	}
	out := make([]media.Item, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, t.MediaItem())
	}
	return out, nil
}

func searchCalm(ctx context.Context, clients *app.Clients, query, _ string, limit int) ([]media.Item, error) {
	channels, err := clients.Cast.SearchCalm(ctx, query)
	if err != nil {
		return nil, err
	}
	out := channelItems(channels)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func searchMusicAssistant(ctx context.Context, clients *app.Clients, query, kind string, limit int) ([]media.Item, error) {
	results, err := clients.MusicAssistant.Search(ctx, query, kind, limit)
	if err != nil {
		return nil, err
	}
	out := make([]media.Item, 0, len(results))
	for _, r := range results {
		out = append(out, r.MediaItem())
	}
	return out, nil
}

func channelItems(channels []cast.Channel) []media.Item {
	out := make([]media.Item, 0, len(channels))
	for _, ch := range channels {
		out = append(out, ch.MediaItem())
	}
	return out
}

func newCalmCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calm",
		Short: "Browse Calm Radio",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "categories",
		Short: "List channel categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClients(cmd, func(c context.Context, clients *app.Clients) error {
				categories := clients.Cast.CalmCategories(c)
				return ctx.emit(cmd, categories, func(w io.Writer) error {
					list := newListing("Category", "Channels").whenEmpty("No categories available")
					for _, cat := range categories {
						list.add(cat.Name, cat.Count)
					}
					return list.write(w)
				})
			})
		},
	})

	var filter cast.ChannelFilter
	channels := &cobra.Command{
		Use:   "channels",
		Short: "List channels, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClients(cmd, func(c context.Context, clients *app.Clients) error {
				items := channelItems(clients.Cast.CalmChannels(c, filter))
				return ctx.emit(cmd, items, func(w io.Writer) error {
					list := newListing("Channel", "Title", "Category").whenEmpty("No channels found")
					for _, item := range items {
						list.add(item.ID, item.Title, item.Category)
					}
					return list.write(w)
				})
			})
		},
	}
	channels.Flags().StringVar(&filter.Category, "category", "", "Only channels in this category")
	channels.Flags().StringVar(&filter.Search, "search", "", "Only channels matching this text")
	cmd.AddCommand(channels)
	return cmd
}
