package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/leapblocks/internal/console"
	"github.com/leapstack-labs/leapblocks/pkg/workspace"
	"github.com/spf13/cobra"
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	var historyFile string

	cmd := &cobra.Command{
		Use:     "repl",
		Aliases: []string{"console"},
		Short:   "Edit a workspace from the terminal",
		Long: `Start an interactive console editing one in-memory workspace.

Blocks are added, moved, configured and connected with commands; code is
generated on demand. Nothing is saved when the console exits.`,
		Example: `  leapblocks repl
  leapblocks repl --dialect py`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd, historyFile)
		},
	}

	cmd.Flags().StringVar(&historyFile, "history", defaultHistoryFile(), "History file (empty to disable)")
	return cmd
}

func defaultHistoryFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "leapblocks", "repl_history")
}

func runREPL(cmd *cobra.Command, historyFile string) error {
	cctx := NewCommandContext(cmd)

	ws := workspace.New(workspace.WithLogger(cctx.Logger))
	con, err := console.New(ws, cctx.Renderer, cctx.Cfg.Dialect, cctx.Logger)
	if err != nil {
		return err
	}

	if historyFile != "" {
		if err := os.MkdirAll(filepath.Dir(historyFile), 0o750); err != nil {
			cctx.Logger.Warn("history disabled", "error", err)
			historyFile = ""
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          con.Prompt(),
		HistoryFile:     historyFile,
		AutoComplete:    con.Completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		Stdin:           io.NopCloser(cmd.InOrStdin()),
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize console: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "leapblocks console. Type help for commands, quit to exit.")

	return loop(cmd, rl, con)
}

// lineReader is the part of *readline.Instance used by the loop.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(string)
}

func loop(cmd *cobra.Command, rl lineReader, con *console.Console) error {
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := con.Exec(strings.TrimSpace(line)); err != nil {
			if errors.Is(err, console.ErrQuit) {
				return nil
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		rl.SetPrompt(con.Prompt())
	}
}
