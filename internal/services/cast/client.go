package cast

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/lodgemusic/lodgectl/internal/logging"
	"github.com/lodgemusic/lodgectl/internal/transport"
)

const (
	// DefaultFilter is the YouTube Music result filter used when none is given.
	DefaultFilter = "songs"
	// DefaultLimit is the YouTube Music result limit used when none is given.
	DefaultLimit = 20
)

// Client wraps the cast bridge: YouTube Music search and Calm Radio.
type Client struct {
	base      string
	transport *transport.Client
	logger    *slog.Logger
}

// NewClient builds a Client for the cast bridge at base.
func NewClient(base string, t *transport.Client, logger *slog.Logger) *Client {
	return &Client{
		base:      strings.TrimRight(base, "/"),
		transport: t,
		logger:    logging.NewComponentLogger(logger, "cast"),
	}
}

// SearchYouTubeMusic searches YouTube Music. Errors propagate.
func (c *Client) SearchYouTubeMusic(ctx context.Context, query, filter string, limit int) ([]Track, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is empty")
	}
	if strings.TrimSpace(filter) == "" {
		filter = DefaultFilter
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	values := url.Values{}
	values.Set("q", query)
	values.Set("filter", filter)
	values.Set("limit", strconv.Itoa(limit))

	var tracks []Track
	if err := c.transport.GetJSON(ctx, c.base+"/ytmusic/search?"+values.Encode(), &tracks); err != nil {
		return nil, fmt.Errorf("youtube music search: %w", err)
	}
	if tracks == nil {
		tracks = []Track{}
	}
	return tracks, nil
}

// CalmCategories lists Calm Radio categories. Failures yield an empty list.
func (c *Client) CalmCategories(ctx context.Context) []Category {
	var categories []Category
	if err := c.transport.GetJSON(ctx, c.base+"/calm/categories", &categories); err != nil {
		c.logger.Warn("calm categories failed", logging.Error(err))
		return []Category{}
	}
	if categories == nil {
		categories = []Category{}
	}
	return categories
}

// CalmChannels lists Calm Radio channels matching filter. Failures yield an
// empty list.
func (c *Client) CalmChannels(ctx context.Context, filter ChannelFilter) []Channel {
	values := url.Values{}
	if category := strings.TrimSpace(filter.Category); category != "" {
		values.Set("category", category)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		values.Set("search", search)
	}
	rel := c.base + "/calm/channels"
	if len(values) > 0 {
		rel += "?" + values.Encode()
	}
	var channels []Channel
	if err := c.transport.GetJSON(ctx, rel, &channels); err != nil {
		c.logger.Warn("calm channels failed", logging.Error(err), "category", filter.Category)
		return []Channel{}
	}
	if channels == nil {
		channels = []Channel{}
	}
	return channels
}

// SearchCalm searches Calm Radio channels by free text. Errors propagate.
func (c *Client) SearchCalm(ctx context.Context, query string) ([]Channel, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is empty")
	}
	var channels []Channel
	if err := c.transport.GetJSON(ctx, c.base+"/calm/search/"+url.PathEscape(query), &channels); err != nil {
		return nil, fmt.Errorf("calm search: %w", err)
	}
	if channels == nil {
		channels = []Channel{}
	}
	return channels, nil
}
