package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapblocks/internal/cli/config"
)

// ConfigField represents a configuration key.
type ConfigField struct {
	Key         string
	Type        string
	Default     string
	Flag        string
	Description string
}

// configFields mirrors internal/cli/config/types.go.
func configFields() []ConfigField {
	return []ConfigField{
		{Key: "dialect", Type: "string", Default: config.DefaultDialect, Flag: "--dialect", Description: "Dialect used for generated code: js, py, ts or pseudo"},
		{Key: "output", Type: "string", Default: config.DefaultOutput, Flag: "--output", Description: "Output format: auto, text, markdown, json or yaml"},
		{Key: "log_level", Type: "string", Default: config.DefaultLogLevel, Flag: "--log-level", Description: "Minimum level of log lines written to stderr"},
		{Key: "verbose", Type: "bool", Default: "false", Flag: "--verbose", Description: "Verbose output"},
		{Key: "workspace.width", Type: "float", Default: strconv.Itoa(config.DefaultWidth), Flag: "--width", Description: "Workspace width in pixels; drags and drops are clamped to it"},
		{Key: "workspace.height", Type: "float", Default: strconv.Itoa(config.DefaultHeight), Flag: "--height", Description: "Workspace height in pixels"},
		{Key: "ui.port", Type: "int", Default: strconv.Itoa(config.DefaultPort), Flag: "--port", Description: "Port the editor is served on"},
		{Key: "ui.auto_open", Type: "bool", Default: "true", Flag: "--open", Description: "Open the browser when the server starts"},
		{Key: "ui.watch", Type: "bool", Default: "false", Flag: "--watch", Description: "Serve static assets from disk and reload pages when they change"},
		{Key: "ui.static_dir", Type: "string", Default: config.DefaultStaticDir, Flag: "--static-dir", Description: "Static asset directory used in watch mode"},
		{Key: "ui.show_code", Type: "bool", Default: "true", Flag: "--show-code", Description: "Show the code panel in new sessions"},
		{Key: "ui.session_ttl", Type: "duration", Default: config.DefaultSessionTTL.String(), Flag: "--session-ttl", Description: "Idle time after which a browser session is discarded"},
		{Key: "ui.session_secret", Type: "string", Flag: "--session-secret", Description: "Cookie signing secret; random on every start when empty"},
	}
}

// envVar returns the environment variable that sets key.
func envVar(key string) string {
	return config.EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// generateConfigDocs generates the configuration reference.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := generateConfigurationDoc(outDir); err != nil {
		return fmt.Errorf("failed to generate configuration.md: %w", err)
	}
	log.Printf("  Generated configuration.md")

	return nil
}

// generateConfigurationDoc generates the configuration reference page.
func generateConfigurationDoc(outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Configuration", "LeapBlocks configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("LeapBlocks reads `leapblocks.yaml` from the current directory or the nearest parent that has one. " +
		"Use `--config` to point at another file.")

	w.Header(2, "Precedence")
	w.BulletList([]string{
		"Built-in defaults",
		"`leapblocks.yaml`",
		"`" + config.EnvPrefix + "*` environment variables",
		"Command-line flags that were set explicitly",
	})

	w.Header(2, "Keys")
	headers := []string{"Key", "Type", "Default", "Flag", "Description"}
	var rows [][]string
	for _, f := range configFields() {
		def := "-"
		if f.Default != "" {
			def = InlineCode(f.Default)
		}
		rows = append(rows, []string{InlineCode(f.Key), f.Type, def, InlineCode(f.Flag), f.Description})
	}
	w.Table(headers, rows)

	w.Header(2, "Example")
	w.CodeBlock("yaml", `dialect: py
output: text

workspace:
  width: 1024
  height: 768

ui:
  port: 3000
  auto_open: false
  session_ttl: 30m`)

	filename := filepath.Join(outDir, "configuration.md")
	return os.WriteFile(filename, w.Bytes(), 0600)
}
