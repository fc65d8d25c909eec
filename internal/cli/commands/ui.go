package commands

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/leapstack-labs/leapblocks/internal/session"
	"github.com/leapstack-labs/leapblocks/internal/ui"
	"github.com/leapstack-labs/leapblocks/pkg/catalog"
	"github.com/spf13/cobra"
)

// NewUICommand creates the ui command.
func NewUICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Start the block editor in the browser",
		Long: `Start a local web server hosting the visual block editor.

Each browser gets its own workspace, kept in memory until the session has
been idle for the session TTL. The editor provides:
- A toolbar of block kinds to drag onto the workspace
- Block dragging, configuration and connections
- A code panel generating JavaScript, Python, TypeScript or pseudocode`,
		Example: `  # Start UI on default port
  leapblocks ui

  # Start on custom port without opening a browser
  leapblocks ui --port 3000 --open=false

  # Serve static assets from disk and reload pages when they change
  leapblocks ui --watch --static-dir internal/ui/resources/static`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd)
		},
	}

	// Values are read through the config loader; these only override it.
	cmd.Flags().Int("port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().Bool("open", true, "Open the browser on start")
	cmd.Flags().Bool("watch", false, "Serve static assets from --static-dir and reload on change")
	cmd.Flags().String("static-dir", "", "Static asset directory used with --watch")
	cmd.Flags().Bool("show-code", true, "Show the code panel in new sessions")
	cmd.Flags().Duration("session-ttl", 0, "Evict sessions idle for this long (default: 2h)")
	cmd.Flags().String("session-secret", "", "Cookie signing secret (default: random per start)")
	cmd.Flags().Float64("width", 0, "Workspace width in pixels (default: 800)")
	cmd.Flags().Float64("height", 0, "Workspace height in pixels (default: 600)")

	return cmd
}

func runUI(cmd *cobra.Command) error {
	cctx := NewCommandContext(cmd)
	cfg := cctx.Cfg
	logger := cctx.Logger

	staticDir := ""
	if cfg.UI.Watch {
		info, err := os.Stat(cfg.UI.StaticDir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("static directory does not exist: %s", cfg.UI.StaticDir)
		}
		staticDir = cfg.UI.StaticDir
	}

	secret := cfg.UI.SessionSecret
	if secret == "" {
		var err error
		if secret, err = generateSessionSecret(); err != nil {
			return err
		}
	}

	manager := session.NewManager(session.Config{
		Catalog:  catalog.Default(),
		Dialect:  cfg.Dialect,
		Geometry: cfg.Geometry(),
		TTL:      cfg.UI.SessionTTL,
		ShowCode: cfg.UI.ShowCode,
		Logger:   logger,
	})

	server := ui.NewServer(ui.Config{
		Sessions:      manager,
		Port:          cfg.UI.Port,
		Watch:         cfg.UI.Watch,
		StaticDir:     staticDir,
		SessionSecret: secret,
		Logger:        logger,
	})

	url := fmt.Sprintf("http://localhost:%d", cfg.UI.Port)
	if cfg.UI.AutoOpen {
		go openBrowser(url)
	}

	r := cctx.Renderer
	r.Success("Starting UI server on " + url)
	r.Muted("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Serve(ctx)
}

// generateSessionSecret returns a random cookie signing key. Cookies issued
// before a restart stop validating, which only matters as much as the
// in-memory sessions they pointed to.
func generateSessionSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
