// Command rpcompletion completes retrosynthesis pathways into concrete,
// ranked metabolic pathways.
package main

import (
	"os"

	"github.com/turtacn/RetroPath-Completion/internal/interfaces/cli"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate
}

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
