package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leapblocks/pkg/catalog"
	"github.com/leapstack-labs/leapblocks/pkg/dialect"

	// Register dialects via init()
	_ "github.com/leapstack-labs/leapblocks/pkg/dialects/javascript"
	_ "github.com/leapstack-labs/leapblocks/pkg/dialects/pseudocode"
	_ "github.com/leapstack-labs/leapblocks/pkg/dialects/python"
	_ "github.com/leapstack-labs/leapblocks/pkg/dialects/typescript"
)

// generateKindDocs generates one page per block kind plus an index.
func generateKindDocs(outDir string) error {
	log.Printf("Generating block kind docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	cat := catalog.Default()
	if err := generateKindIndex(cat, outDir); err != nil {
		return fmt.Errorf("failed to generate index: %w", err)
	}
	log.Printf("  Generated index.md")

	for _, k := range cat.Kinds() {
		if err := generateKindPage(k, outDir); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", k.Tag, err)
		}
		log.Printf("  Generated %s.md", k.Tag)
	}
	return nil
}

func generateKindIndex(cat *catalog.Catalog, outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Blocks", "Block kinds available in the toolbar")
	w.GeneratedMarker()

	w.Header(1, "Blocks")
	w.Paragraph(fmt.Sprintf("The toolbar offers %d block kinds. Generated code lists blocks top to bottom by position, "+
		"one fragment per block.", cat.Len()))

	headers := []string{"Kind", "Label", "Fields", "Explicit dialects"}
	var rows [][]string
	for _, k := range cat.Kinds() {
		fields := make([]string, 0, len(k.Fields))
		for _, f := range k.Fields {
			fields = append(fields, InlineCode(f.Name))
		}
		rows = append(rows, []string{
			fmt.Sprintf("[%s](/blocks/%s)", InlineCode(string(k.Tag)), k.Tag),
			k.Label,
			strings.Join(fields, ", "),
			strings.Join(k.Dialects(), ", "),
		})
	}
	w.Table(headers, rows)

	w.Header(2, "Dialects")
	dHeaders := []string{"Name", "Label", "Extension", "Aliases", "Falls back to"}
	var dRows [][]string
	for _, d := range dialect.All() {
		dRows = append(dRows, []string{InlineCode(d.Name), d.Label, InlineCode(d.Extension), strings.Join(d.Aliases, ", "), d.FallsBackTo})
	}
	w.Table(dHeaders, dRows)
	w.Paragraph(fmt.Sprintf("A kind without a rule for the selected dialect uses its %s rule.", InlineCode(catalog.FallbackDialect)))

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

func generateKindPage(k *catalog.Kind, outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter(k.Label, fmt.Sprintf("The %s block", k.Tag))
	w.GeneratedMarker()

	w.Header(1, k.Label)
	w.BulletList([]string{
		"Kind: " + InlineCode(string(k.Tag)),
		"Color: " + InlineCode(k.Color),
	})

	if k.Configurable() {
		w.Header(2, "Fields")
		headers := []string{"Field", "Label", "Type", "Default", "Options"}
		var rows [][]string
		for _, f := range k.Fields {
			def := "-"
			if f.Default != "" {
				def = InlineCode(f.Default)
			}
			rows = append(rows, []string{InlineCode(f.Name), f.Label, f.Kind.String(), def, strings.Join(f.Options, ", ")})
		}
		w.Table(headers, rows)
	} else {
		w.Paragraph("This block has no configuration.")
	}

	w.Header(2, "Generated code")
	w.Paragraph("Output with default values:")
	for _, d := range dialect.All() {
		heading := d.Label
		if !k.HasRule(d.Name) {
			heading += " (uses the " + catalog.FallbackDialect + " rule)"
		}
		w.Header(3, heading)
		w.CodeBlock(d.Name, k.Render(d.Name, k.Defaults()))
	}

	return os.WriteFile(filepath.Join(outDir, string(k.Tag)+".md"), w.Bytes(), 0600)
}
