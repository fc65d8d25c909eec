package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/leapblocks/internal/cli"
)

// commandDoc is the documented surface of one command.
type commandDoc struct {
	Name     string
	Short    string
	Long     string
	Usage    string
	Aliases  []string
	Flags    [][]string
	Global   [][]string
	Example  string
	Children []*commandDoc
}

// documented lists the visible subcommands of cmd.
func documented(cmd *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, c := range cmd.Commands() {
		if c.Hidden || c.Name() == "help" || c.Name() == "__complete" {
			continue
		}
		out = append(out, c)
	}
	return out
}

func newCommandDoc(cmd *cobra.Command) *commandDoc {
	d := &commandDoc{
		Name:    cmd.Name(),
		Short:   cleanDescription(cmd.Short),
		Long:    cmd.Long,
		Usage:   cmd.UseLine(),
		Aliases: cmd.Aliases,
		Example: cleanExample(cmd.Example),
	}
	if !strings.HasPrefix(d.Usage, "leapblocks") {
		d.Usage = "leapblocks " + d.Usage
	}
	if cmd.HasLocalFlags() {
		d.Flags = flagRows(cmd.LocalFlags())
	}
	if cmd.HasInheritedFlags() {
		d.Global = flagRows(cmd.InheritedFlags())
	}
	for _, c := range documented(cmd) {
		d.Children = append(d.Children, newCommandDoc(c))
	}
	return d
}

// generateCLIDocs writes index.md plus one page per top-level command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	if err := os.WriteFile(filepath.Join(outDir, "index.md"), cliIndex(root), 0600); err != nil {
		return fmt.Errorf("failed to generate index: %w", err)
	}
	log.Printf("  Generated index.md")

	for _, cmd := range documented(root) {
		page := commandPage(newCommandDoc(cmd))
		if err := os.WriteFile(filepath.Join(outDir, cmd.Name()+".md"), page, 0600); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", cmd.Name(), err)
		}
		log.Printf("  Generated %s.md", cmd.Name())
	}
	return nil
}

func cliIndex(root *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for LeapBlocks")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("LeapBlocks provides a command-line interface for browsing block kinds and dialects, " +
		"editing a workspace from the terminal, and serving the browser editor.")

	w.Header(2, "Installation")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/leapblocks/cmd/leapblocks@latest")

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range documented(root) {
		rows = append(rows, []string{
			fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name()),
			cleanDescription(cmd.Short),
		})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	w.Table(flagHeaders, flagRows(root.PersistentFlags()))

	w.Header(2, "Environment Variables")
	w.Paragraph("Every configuration key can be set from the environment. " +
		"Nested keys join their section with an underscore:")
	var env [][]string
	for _, f := range configFields() {
		env = append(env, []string{InlineCode(envVar(f.Key)), InlineCode(f.Key)})
	}
	w.Table([]string{"Variable", "Key"}, env)
	w.Paragraph("Command-line flags take precedence over environment variables, " +
		"which take precedence over `leapblocks.yaml`.")

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Success"},
		{InlineCode("1"), "Error, printed once to stderr"},
	})
	return w.Bytes()
}

func commandPage(d *commandDoc) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter(d.Name, d.Short)
	w.GeneratedMarker()
	writeCommand(w, d, 1)
	return w.Bytes()
}

// writeCommand renders d and, one heading level down, its subcommands.
func writeCommand(w *MarkdownWriter, d *commandDoc, level int) {
	w.Header(level, d.Name)
	if d.Long != "" {
		w.Paragraph(d.Long)
	} else {
		w.Paragraph(d.Short)
	}

	w.Header(level+1, "Usage")
	w.CodeBlock("bash", d.Usage)

	if len(d.Aliases) > 0 {
		w.Header(level+1, "Aliases")
		aliases := make([]string, len(d.Aliases))
		for i, a := range d.Aliases {
			aliases[i] = InlineCode(a)
		}
		w.BulletList(aliases)
	}
	if len(d.Flags) > 0 {
		w.Header(level+1, "Options")
		w.Table(flagHeaders, d.Flags)
	}
	if len(d.Global) > 0 && level == 1 {
		w.Header(level+1, "Global Options")
		w.Table(flagHeaders, d.Global)
	}
	if d.Example != "" {
		w.Header(level+1, "Examples")
		w.CodeBlock("bash", d.Example)
	}
	for _, c := range d.Children {
		writeCommand(w, c, level+1)
	}
}

var flagHeaders = []string{"Option", "Short", "Default", "Description"}

func flagRows(flags *pflag.FlagSet) [][]string {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		short := ""
		if f.Shorthand != "" {
			short = "-" + f.Shorthand
		}
		def := f.DefValue
		if def != "" && f.Value.Type() != "bool" {
			def = InlineCode(def)
		}
		rows = append(rows, []string{InlineCode("--" + f.Name), short, def, cleanDescription(f.Usage)})
	})
	return rows
}

// cleanExample strips the indentation shared by every non-blank line.
func cleanExample(example string) string {
	lines := strings.Split(example, "\n")
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			lines[i] = line[indent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
