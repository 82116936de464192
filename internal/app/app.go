package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/lodgemusic/lodgectl/internal/config"
	"github.com/lodgemusic/lodgectl/internal/console"
	"github.com/lodgemusic/lodgectl/internal/health"
	"github.com/lodgemusic/lodgectl/internal/logging"
	"github.com/lodgemusic/lodgectl/internal/prefs"
	"github.com/lodgemusic/lodgectl/internal/services/cast"
	"github.com/lodgemusic/lodgectl/internal/services/musicassistant"
	"github.com/lodgemusic/lodgectl/internal/services/orchestrator"
	"github.com/lodgemusic/lodgectl/internal/services/roon"
	"github.com/lodgemusic/lodgectl/internal/services/spotify"
	"github.com/lodgemusic/lodgectl/internal/services/volume"
	"github.com/lodgemusic/lodgectl/internal/state"
	"github.com/lodgemusic/lodgectl/internal/topology"
	"github.com/lodgemusic/lodgectl/internal/transport"
	"github.com/lodgemusic/lodgectl/internal/ui"
)

// Options configure the console application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses ~/.config/lodge/prefs.toml
}

// Clients holds one client per backend, sharing a single transport.
type Clients struct {
	Transport      *transport.Client
	Topology       *topology.Client
	Orchestrator   *orchestrator.Client
	Spotify        *spotify.Client
	Cast           *cast.Client
	Roon           *roon.Client
	Volume         *volume.Client
	MusicAssistant *musicassistant.Client
	Health         *health.Checker
}

// NewClients builds every backend client from cfg.
func NewClients(cfg config.Config, logger *slog.Logger, doer transport.HTTPDoer) *Clients {
	if doer == nil {
		doer = &http.Client{}
	}
	tr := transport.New(transport.Options{HTTP: doer, Logger: logger})
	ep := cfg.Endpoints
	return &Clients{
		Transport:      tr,
		Topology:       topology.NewClient(ep.Volume, tr, logger),
		Orchestrator:   orchestrator.NewClient(ep.Orchestrator, tr, logger),
		Spotify:        spotify.NewClient(ep.Spotify, tr, logger),
		Cast:           cast.NewClient(ep.Cast, tr, logger),
		Roon:           roon.NewClient(ep.Roon, tr, logger),
		Volume:         volume.NewClient(ep.Volume, tr, logger),
		MusicAssistant: musicassistant.NewClient(cfg.MusicAssistant.URL, cfg.MusicAssistant.Token, tr, logger),
		Health:         health.NewChecker(cfg.Services(), tr, cfg.RequestTimeout, logger),
	}
}

// NewScreens builds the console controllers around c. The health store is
// shared with the background poller.
func NewScreens(c *Clients, healthStore *state.Latest[[]health.ServiceHealth]) *ui.Screens {
	assistant := console.NewAssistantScreen(c.Topology, c.MusicAssistant)
	alexa := console.NewAlexaScreen(c.Topology, c.Orchestrator)
	return &ui.Screens{
		QuickPlay:       console.NewQuickPlay(c.Topology, c.Orchestrator),
		YouTube:         console.NewYouTubeScreen(c.Topology, c.Cast, c.Orchestrator),
		Spotify:         console.NewSpotifyScreen(c.Topology, c.Spotify, c.Orchestrator),
		Calm:            console.NewCalmScreen(c.Topology, c.Cast, c.Orchestrator),
		Roon:            console.NewRoonScreen(c.Roon),
		Assistant:       assistant,
		AssistantVolume: console.NewVolumeControl(assistant.Players, assistant.Journal, c.Volume),
		Alexa:           alexa,
		AlexaVolume:     console.NewVolumeControl(alexa.Devices, alexa.Journal, c.Volume),
		Status:          console.NewStatusScreen(c.Health, healthStore),
	}
}

// Run boots the console until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.NewFromConfig(&cfg, true)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger = logging.NewComponentLogger(logger, "app")
	logger.Info("console starting", "config", opts.ConfigPath, "api_base", cfg.APIBase)

	userPrefs := prefs.Load(opts.PrefsPath)
	clients := NewClients(cfg, logger, nil)
	healthStore := state.NewLatest(state.CloneSlice[health.ServiceHealth])
	screens := NewScreens(clients, healthStore)

	pollers := StartPollers(ctx, screens.Status, cfg)
	defer pollers.Stop()

	err = ui.Run(ui.Options{
		Context:            ctx,
		Screens:            screens,
		Logger:             logger,
		Prefs:              userPrefs,
		PrefsPath:          opts.PrefsPath,
		LogPath:            cfg.LogPath(),
		RequestTimeout:     cfg.RequestTimeout,
		NowPlayingInterval: cfg.NowPlayingInterval,
	})
	logger.Info("console stopped", logging.Error(err))
	return err
}
