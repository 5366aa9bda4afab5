package commands

import (
	"context"
	"fmt"
	"net"

	"go.uber.org/zap"

	"github.com/vsinha/schc/pkg/infrastructure/config"
	"github.com/vsinha/schc/pkg/infrastructure/reference"
	"github.com/vsinha/schc/pkg/interfaces/web"
)

// ServeConfig holds configuration for the serve command
type ServeConfig struct {
	Settings *config.Config
	// Listener overrides Settings.Server.Address when set.
	Listener net.Listener
}

// ServeCommand runs the dashboard and JSON API until the context ends
type ServeCommand struct {
	config ServeConfig
	logger *zap.SugaredLogger
}

// NewServeCommand creates a new serve command
func NewServeCommand(config ServeConfig) *ServeCommand {
	return &ServeCommand{
		config: config,
		logger: zap.S().Named("serve"),
	}
}

// Execute runs the serve command
func (c *ServeCommand) Execute(ctx context.Context) error {
	settings := c.config.Settings

	session, err := reference.Build(ctx, settings, c.logger)
	if err != nil {
		return fmt.Errorf("failed to load reference data: %w", err)
	}
	holder := reference.NewHolder(session)

	if settings.Server.Watch {
		go c.watch(ctx, holder)
	}

	listener := c.config.Listener
	if listener == nil {
		listener, err = net.Listen("tcp", settings.Server.Address)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", settings.Server.Address, err)
		}
	}

	server := web.NewServer(holder, zap.L())
	return server.Run(ctx, listener, settings.Server.ShutdownTimeout)
}

func (c *ServeCommand) watch(ctx context.Context, holder *reference.Holder) {
	settings := c.config.Settings
	reload := func() {
		if err := holder.Reload(ctx, settings, c.logger); err != nil {
			c.logger.Errorw("reference reload failed, keeping previous data", "error", err)
			return
		}
		c.logger.Info("reference data reloaded")
	}

	if err := reference.Watch(ctx, settings.DataDir, reference.DefaultDebounce, reload, c.logger); err != nil {
		c.logger.Errorw("reference watcher stopped", "error", err)
	}
}
