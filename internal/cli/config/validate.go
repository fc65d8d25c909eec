package config

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leapblocks/internal/cli/output"
	"github.com/leapstack-labs/leapblocks/pkg/dialect"
	"github.com/leapstack-labs/leapblocks/pkg/gesture"
)

// Validate checks the configuration.
func (c *Config) Validate() error {
	if _, err := dialect.Resolve(c.Dialect); err != nil {
		return fmt.Errorf("invalid dialect: %w", err)
	}
	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		return err
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}

	geo := gesture.DefaultGeometry(c.Workspace.Width, c.Workspace.Height)
	if c.Workspace.Width < geo.BlockWidth || c.Workspace.Height < geo.BlockHeight {
		return fmt.Errorf("workspace must be at least %gx%g, got %gx%g",
			geo.BlockWidth, geo.BlockHeight, c.Workspace.Width, c.Workspace.Height)
	}
	if c.UI.Port < 0 || c.UI.Port > 65535 {
		return fmt.Errorf("ui.port out of range: %d", c.UI.Port)
	}
	if c.UI.SessionTTL <= 0 {
		return fmt.Errorf("ui.session_ttl must be positive, got %s", c.UI.SessionTTL)
	}
	return nil
}

// Geometry returns the gesture geometry for the configured workspace.
func (c *Config) Geometry() gesture.Geometry {
	return gesture.DefaultGeometry(c.Workspace.Width, c.Workspace.Height)
}
