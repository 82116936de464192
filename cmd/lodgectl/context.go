package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/lodgemusic/lodgectl/internal/app"
	"github.com/lodgemusic/lodgectl/internal/config"
	"github.com/lodgemusic/lodgectl/internal/logging"
	"github.com/lodgemusic/lodgectl/internal/transport"
)

type commandContext struct {
	configFlag *string
	prefsFlag  *string
	jsonFlag   *bool

	// http overrides the backend HTTP client; nil uses the default.
	http transport.HTTPDoer
	// interactive reports whether stdout is a terminal.
	interactive func() bool

	once    sync.Once
	config  config.Config
	logger  *slog.Logger
	clients *app.Clients
	err     error
}

func newCommandContext(configFlag, prefsFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		prefsFlag:   prefsFlag,
		jsonFlag:    jsonFlag,
		interactive: stdoutIsTerminal,
	}
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) prefsPath() string {
	if c.prefsFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.prefsFlag)
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// ensure loads config and builds the backend clients once per invocation.
func (c *commandContext) ensure() (*app.Clients, error) {
	c.once.Do(func() {
		cfg, err := config.Load(c.configPath())
		if err != nil {
			c.err = fmt.Errorf("load config: %w", err)
			return
		}
		logger, err := logging.NewFromConfig(&cfg, false)
		if err != nil {
			c.err = fmt.Errorf("init logger: %w", err)
			return
		}
		c.config = cfg
		c.logger = logging.NewComponentLogger(logger, "cli")
		c.clients = app.NewClients(cfg, logger, c.http)
	})
	return c.clients, c.err
}

// withClients runs fn with a context bounded by the configured request timeout.
func (c *commandContext) withClients(cmd *cobra.Command, fn func(context.Context, *app.Clients) error) error {
	clients, err := c.ensure()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if c.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.RequestTimeout)
		defer cancel()
	}
	return wrapBackendError(fn(ctx, clients), c.config.APIBase)
}

// wrapBackendError points at the config when a request never got a response.
func wrapBackendError(err error, apiBase string) error {
	if err == nil || errors.Is(err, context.Canceled) || !transport.IsTransportError(err) {
		return err
	}
	if _, ok := transport.StatusCode(err); ok {
		return err
	}
	return fmt.Errorf("%w; is the Lodge backend running at %s? check api_base and [endpoints] in the config", err, apiBase)
}
