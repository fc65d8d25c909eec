// Package console implements the line-oriented editor behind `leapblocks repl`.
//
// Each input line is one command operating on a single workspace, e.g.
//
//	add variable
//	set 0 name total
//	code py
package console

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/chzyer/readline"

	"github.com/leapstack-labs/leapblocks/internal/cli/output"
	"github.com/leapstack-labs/leapblocks/pkg/dialect"
	"github.com/leapstack-labs/leapblocks/pkg/workspace"
)

// ErrQuit is returned by Exec when the user asks to leave.
var ErrQuit = errors.New("quit")

// Layout of blocks added without an explicit position.
const (
	defaultX   = 20
	firstY     = 20
	rowSpacing = 70
)

type command struct {
	usage string
	help  string
	// args is the number of leading arguments split on whitespace; the
	// remainder of the line, if any, is passed as one final argument.
	args int
	min  int
	run  func(c *Console, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"add":      {usage: "add <kind> [x y]", help: "Place a block", args: 3, min: 1, run: (*Console).add},
		"move":     {usage: "move <id> <x> <y>", help: "Move a block", args: 3, min: 3, run: (*Console).move},
		"set":      {usage: "set <id> <field> <value>", help: `Set a configuration field (\n for newlines)`, args: 2, min: 2, run: (*Console).set},
		"form":     {usage: "form <id>", help: "Show a block's configuration form", args: 1, min: 1, run: (*Console).form},
		"connect":  {usage: "connect <from> <to>", help: "Link the output of one block to the input of another", args: 2, min: 2, run: (*Console).connect},
		"delete":   {usage: "delete <id>", help: "Delete a block and its connections", args: 1, min: 1, run: (*Console).delete},
		"clear":    {usage: "clear", help: "Remove everything and restart numbering", run: (*Console).clear},
		"blocks":   {usage: "blocks", help: "List blocks", run: (*Console).blocks},
		"links":    {usage: "links", help: "List connections", run: (*Console).links},
		"code":     {usage: "code [dialect]", help: "Generate code", args: 1, run: (*Console).code},
		"dialect":  {usage: "dialect [name]", help: "Show or select the output dialect", args: 1, run: (*Console).setDialect},
		"dialects": {usage: "dialects", help: "List output dialects", run: (*Console).dialects},
		"kinds":    {usage: "kinds", help: "List block kinds", run: (*Console).kinds},
		"help":     {usage: "help", help: "Show this help", run: (*Console).help},
		"quit":     {usage: "quit", help: "Leave the console", run: func(*Console, []string) error { return ErrQuit }},
	}
	commands["exit"] = commands["quit"]
}

// Console executes commands against one workspace.
type Console struct {
	ws      *workspace.Workspace
	r       *output.Renderer
	dialect string
	logger  *slog.Logger
}

// New creates a console. dialectName may be empty for the default dialect.
func New(ws *workspace.Workspace, r *output.Renderer, dialectName string, logger *slog.Logger) (*Console, error) {
	d, err := dialect.Resolve(dialectName)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Console{ws: ws, r: r, dialect: d.Name, logger: logger}, nil
}

// Dialect returns the selected dialect name.
func (c *Console) Dialect() string {
	return c.dialect
}

// Prompt returns the prompt showing the selected dialect.
func (c *Console) Prompt() string {
	return fmt.Sprintf("leapblocks[%s]> ", c.dialect)
}

// Exec runs one line. Empty lines and # comments are ignored.
func (c *Console) Exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	name, rest, _ := strings.Cut(line, " ")
	name = strings.ToLower(strings.TrimPrefix(name, "."))

	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q (type help for commands)", name)
	}
	args := splitArgs(rest, cmd.args)
	if len(args) < cmd.min {
		return fmt.Errorf("usage: %s", cmd.usage)
	}
	c.logger.Debug("console command", "command", name, "args", len(args))
	return cmd.run(c, args)
}

// splitArgs splits off n whitespace-separated arguments. Any remaining text
// is appended verbatim as one more argument.
func splitArgs(s string, n int) []string {
	var args []string
	s = strings.TrimSpace(s)
	for i := 0; i < n && s != ""; i++ {
		head, tail, found := strings.Cut(s, " ")
		args = append(args, head)
		s = strings.TrimLeft(tail, " \t")
		if !found {
			s = ""
		}
	}
	if s != "" {
		args = append(args, s)
	}
	return args
}

// Completer returns a readline completer for commands, kinds and dialects.
func (c *Console) Completer() *readline.PrefixCompleter {
	var kinds []readline.PrefixCompleterInterface
	for _, tag := range c.ws.Catalog().Tags() {
		kinds = append(kinds, readline.PcItem(string(tag)))
	}
	var dialects []readline.PrefixCompleterInterface
	for _, name := range dialect.List() {
		dialects = append(dialects, readline.PcItem(name))
	}

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]readline.PrefixCompleterInterface, 0, len(names))
	for _, name := range names {
		switch name {
		case "add":
			items = append(items, readline.PcItem(name, kinds...))
		case "code", "dialect":
			items = append(items, readline.PcItem(name, dialects...))
		default:
			items = append(items, readline.PcItem(name))
		}
	}
	return readline.NewPrefixCompleter(items...)
}

func (c *Console) help(_ []string) error {
	names := make([]string, 0, len(commands))
	for name := range commands {
		if name != "exit" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{commands[name].usage, commands[name].help})
	}
	c.r.Table([]string{"COMMAND", "DESCRIPTION"}, rows)
	c.r.Muted("Block ids may be written as 3 or block-3.")
	return nil
}
