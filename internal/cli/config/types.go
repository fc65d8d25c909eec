// Package config provides configuration management for the leapblocks CLI.
//
// Values are layered with koanf, lowest to highest precedence: built-in
// defaults, leapblocks.yaml, LEAPBLOCKS_* environment variables and
// explicitly set command-line flags.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	Dialect      string          `koanf:"dialect"`
	Verbose      bool            `koanf:"verbose"`
	LogLevel     string          `koanf:"log_level"`
	OutputFormat string          `koanf:"output"`
	Workspace    WorkspaceConfig `koanf:"workspace"`
	UI           UIConfig        `koanf:"ui"`
}

// WorkspaceConfig is the canvas geometry used for clamping drags and drops.
type WorkspaceConfig struct {
	Width  float64 `koanf:"width"`
	Height float64 `koanf:"height"`
}

// UIConfig holds configuration for the UI server.
type UIConfig struct {
	Port          int           `koanf:"port"`
	AutoOpen      bool          `koanf:"auto_open"`
	Watch         bool          `koanf:"watch"`
	StaticDir     string        `koanf:"static_dir"`
	ShowCode      bool          `koanf:"show_code"`
	SessionTTL    time.Duration `koanf:"session_ttl"`
	SessionSecret string        `koanf:"session_secret"`
}

// Default configuration values.
const (
	DefaultDialect    = "js"
	DefaultLogLevel   = "warn"
	DefaultOutput     = "auto" // TTY=text, otherwise markdown
	DefaultWidth      = 800
	DefaultHeight     = 600
	DefaultPort       = 8765
	DefaultSessionTTL = 2 * time.Hour
	DefaultStaticDir  = "internal/ui/resources/static"
)

// defaults is the lowest configuration layer.
func defaults() map[string]any {
	return map[string]any{
		"dialect":           DefaultDialect,
		"verbose":           false,
		"log_level":         DefaultLogLevel,
		"output":            DefaultOutput,
		"workspace.width":   DefaultWidth,
		"workspace.height":  DefaultHeight,
		"ui.port":           DefaultPort,
		"ui.auto_open":      true,
		"ui.watch":          false,
		"ui.static_dir":     DefaultStaticDir,
		"ui.show_code":      true,
		"ui.session_ttl":    DefaultSessionTTL.String(),
		"ui.session_secret": "",
	}
}

// Default returns the configuration with nothing but defaults applied.
func Default() *Config {
	return &Config{
		Dialect:      DefaultDialect,
		LogLevel:     DefaultLogLevel,
		OutputFormat: DefaultOutput,
		Workspace:    WorkspaceConfig{Width: DefaultWidth, Height: DefaultHeight},
		UI: UIConfig{
			Port:       DefaultPort,
			AutoOpen:   true,
			StaticDir:  DefaultStaticDir,
			ShowCode:   true,
			SessionTTL: DefaultSessionTTL,
		},
	}
}
