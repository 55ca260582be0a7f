package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/stashlens/cli/cmd"
)

// Set via -ldflags at release build time.
var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	cmd.SetMetadata(cmd.Metadata{Version: version, Commit: commit, Date: date})

	if err := fang.Execute(context.Background(), cmd.RootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}
