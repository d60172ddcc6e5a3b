// Package main provides the entry point for the coalesce CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/coalescence/cmd/coalesce/commands"
)

// Build metadata, set with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := commands.NewRootCommand(fmt.Sprintf("%s (commit: %s)", version, commit))

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
