// Package main provides a generator that extracts CLI, block kind and
// configuration metadata from LeapBlocks source code and generates markdown
// documentation.
//
// Usage:
//
//	go run ./scripts/gendocs -gen=cli -outdir=docs/cli
//	go run ./scripts/gendocs -gen=kinds -outdir=docs/blocks
//	go run ./scripts/gendocs -gen=config -outdir=docs/concepts
//	go run ./scripts/gendocs -gen=all
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

var (
	genFlag    = flag.String("gen", "all", "what to generate: cli, kinds, config, all")
	outDirFlag = flag.String("outdir", "", "output directory (defaults based on gen type)")
)

// generators maps a -gen value to its generator and default directory
// below docs/.
var generators = map[string]struct {
	dir string
	run func(outDir string) error
}{
	"cli":    {dir: "cli", run: generateCLIDocs},
	"kinds":  {dir: "blocks", run: generateKindDocs},
	"config": {dir: "concepts", run: generateConfigDocs},
}

func main() {
	flag.Parse()

	// Find project root (where go.mod is)
	projectRoot, err := findProjectRoot()
	if err != nil {
		log.Fatalf("failed to find project root: %v", err)
	}

	log.Printf("Project root: %s", projectRoot)

	if err := run(*genFlag, *outDirFlag, filepath.Join(projectRoot, "docs")); err != nil {
		log.Fatal(err)
	}

	log.Println("Done!")
}

// run executes the generator named gen. outDir overrides the default
// directory of a single generator; docsDir is the root used otherwise.
func run(gen, outDir, docsDir string) error {
	if gen == "all" {
		for _, name := range []string{"cli", "kinds", "config"} {
			g := generators[name]
			if err := g.run(filepath.Join(docsDir, g.dir)); err != nil {
				return fmt.Errorf("failed to generate %s docs: %w", name, err)
			}
		}
		return nil
	}

	g, ok := generators[gen]
	if !ok {
		return fmt.Errorf("unknown -gen value: %s (use: cli, kinds, config, all)", gen)
	}
	if outDir == "" {
		outDir = filepath.Join(docsDir, g.dir)
	}
	if err := g.run(outDir); err != nil {
		return fmt.Errorf("failed to generate %s docs: %w", gen, err)
	}
	return nil
}

// findProjectRoot walks up from current directory to find go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
