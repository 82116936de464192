package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Service names making up the endpoint set.
const (
	ServiceOrchestrator = "orchestrator"
	ServiceSpotify      = "spotify"
	ServiceRoon         = "roon"
	ServiceCast         = "cast"
	ServiceVolume       = "volume"
)

// Endpoints maps each logical backend to its base URL. It is resolved once by
// Load and never mutated afterwards.
type Endpoints struct {
	Orchestrator string
	Spotify      string
	Roon         string
	Cast         string
	Volume       string
}

// MusicAssistant holds the bearer-authenticated media-assistant integration.
type MusicAssistant struct {
	URL   string
	Token string
}

// Config captures everything lodgectl needs at startup.
type Config struct {
	APIBase        string
	APIPrefix      string
	Endpoints      Endpoints
	MusicAssistant MusicAssistant

	HealthInterval     time.Duration
	NowPlayingInterval time.Duration
	RequestTimeout     time.Duration

	LogLevel  string
	LogFormat string
	LogDir    string
}

// Service is a named backend with its resolved base URL.
type Service struct {
	Name  string
	Label string
	URL   string
}

const (
	defaultConfigPath         = "~/.config/lodge/config.toml"
	defaultAPIBase            = "http://127.0.0.1:8080"
	defaultAPIPrefix          = "/api"
	defaultMusicAssistantURL  = "http://homeassistant.local:8123"
	defaultHealthSeconds      = 10
	defaultNowPlayingSeconds  = 5
	defaultRequestTimeoutSecs = 10
	defaultLogLevel           = "info"
	defaultLogFormat          = "console"
	defaultLogDir             = "~/.local/state/lodge"

	// TokenEnv supplies the media-assistant token out of band.
	TokenEnv = "LODGE_MA_TOKEN"
)

type rawConfig struct {
	APIBase   string `toml:"api_base"`
	APIPrefix string `toml:"api_prefix"`
	Services  struct {
		Orchestrator string `toml:"orchestrator"`
		Spotify      string `toml:"spotify"`
		Roon         string `toml:"roon"`
		Cast         string `toml:"cast"`
		Volume       string `toml:"volume"`
	} `toml:"services"`
	MusicAssistant struct {
		URL   string `toml:"url"`
		Token string `toml:"token"`
	} `toml:"music_assistant"`
	Poll struct {
		HealthSeconds         int `toml:"health_seconds"`
		NowPlayingSeconds     int `toml:"now_playing_seconds"`
		RequestTimeoutSeconds int `toml:"request_timeout_seconds"`
	} `toml:"poll"`
	Log struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
		Dir    string `toml:"dir"`
	} `toml:"log"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	cfg := Config{
		APIBase:            defaultAPIBase,
		APIPrefix:          defaultAPIPrefix,
		MusicAssistant:     MusicAssistant{URL: defaultMusicAssistantURL},
		HealthInterval:     defaultHealthSeconds * time.Second,
		NowPlayingInterval: defaultNowPlayingSeconds * time.Second,
		RequestTimeout:     defaultRequestTimeoutSecs * time.Second,
		LogLevel:           defaultLogLevel,
		LogFormat:          defaultLogFormat,
		LogDir:             mustExpand(defaultLogDir),
	}
	cfg.Endpoints = resolveEndpoints(cfg.APIBase, cfg.APIPrefix, rawConfig{})
	cfg.MusicAssistant.Token = strings.TrimSpace(os.Getenv(TokenEnv))
	return cfg
}

// Load locates and parses the lodge config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	if base := strings.TrimSpace(raw.APIBase); base != "" {
		cfg.APIBase = strings.TrimRight(base, "/")
	}
	if prefix := strings.TrimSpace(raw.APIPrefix); prefix != "" {
		cfg.APIPrefix = normalizePrefix(prefix)
	}
	cfg.Endpoints = resolveEndpoints(cfg.APIBase, cfg.APIPrefix, raw)

	if maURL := strings.TrimSpace(raw.MusicAssistant.URL); maURL != "" {
		cfg.MusicAssistant.URL = strings.TrimRight(maURL, "/")
	}
	// The environment wins so the token can stay out of the file.
	if cfg.MusicAssistant.Token == "" {
		cfg.MusicAssistant.Token = strings.TrimSpace(raw.MusicAssistant.Token)
	}

	cfg.HealthInterval = seconds(raw.Poll.HealthSeconds, defaultHealthSeconds)
	cfg.NowPlayingInterval = seconds(raw.Poll.NowPlayingSeconds, defaultNowPlayingSeconds)
	cfg.RequestTimeout = seconds(raw.Poll.RequestTimeoutSeconds, defaultRequestTimeoutSecs)

	if level := strings.TrimSpace(raw.Log.Level); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}
	if format := strings.TrimSpace(raw.Log.Format); format != "" {
		cfg.LogFormat = strings.ToLower(format)
	}
	if dir := strings.TrimSpace(raw.Log.Dir); dir != "" {
		cfg.LogDir = mustExpand(dir)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	for _, svc := range c.Services() {
		if err := validateURL(svc.URL); err != nil {
			return fmt.Errorf("service %s: %w", svc.Name, err)
		}
	}
	if err := validateURL(c.MusicAssistant.URL); err != nil {
		return fmt.Errorf("music_assistant.url: %w", err)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log.format: unsupported value %q", c.LogFormat)
	}
	return nil
}

// Services returns the monitored backends in display order.
func (c Config) Services() []Service {
	return []Service{
		{Name: ServiceOrchestrator, Label: "Orchestrator", URL: c.Endpoints.Orchestrator},
		{Name: ServiceSpotify, Label: "Spotify", URL: c.Endpoints.Spotify},
		{Name: ServiceRoon, Label: "Roon", URL: c.Endpoints.Roon},
		{Name: ServiceCast, Label: "Cast/YTM/Calm", URL: c.Endpoints.Cast},
		{Name: ServiceVolume, Label: "Volume", URL: c.Endpoints.Volume},
	}
}

// LogPath returns the console's log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return filepath.Join(mustExpand(defaultLogDir), "lodgectl.log")
	}
	return filepath.Join(c.LogDir, "lodgectl.log")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

func resolveEndpoints(base, prefix string, raw rawConfig) Endpoints {
	pick := func(override, name string) string {
		if v := strings.TrimSpace(override); v != "" {
			return strings.TrimRight(v, "/")
		}
		return strings.TrimRight(base, "/") + prefix + "/" + name
	}
	return Endpoints{
		Orchestrator: pick(raw.Services.Orchestrator, ServiceOrchestrator),
		Spotify:      pick(raw.Services.Spotify, ServiceSpotify),
		Roon:         pick(raw.Services.Roon, ServiceRoon),
		Cast:         pick(raw.Services.Cast, ServiceCast),
		Volume:       pick(raw.Services.Volume, ServiceVolume),
	}
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}
	return "/" + prefix
}

func seconds(value, fallback int) time.Duration {
	if value <= 0 {
		value = fallback
	}
	return time.Duration(value) * time.Second
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme in %q (must be http or https)", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid url %q: host is required", raw)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
