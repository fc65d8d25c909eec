// Package main provides the leapblocks CLI entry point.
package main

import (
	"os"

	"github.com/leapstack-labs/leapblocks/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
