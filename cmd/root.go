// Package cmd wires up the stashlens command tree.
package cmd

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/stashlens/cli/pkg/codec"
	"github.com/stashlens/cli/pkg/offload"
)

// Metadata describes the running binary. Populated by main at startup from
// build-time values.
type Metadata struct {
	Version string
	Commit  string
	Date    string
}

var metadata = Metadata{Version: "dev"}

// SetMetadata records build information for the upgrade check and --version.
func SetMetadata(m Metadata) {
	if m.Version == "" {
		m.Version = "dev"
	}
	metadata = m
}

var rootCmd = &cobra.Command{
	Use:   "stashlens",
	Short: "Inspect and decode values from browser client-side storage",
	Long: `stashlens inspects values exported from a browser's client-side storage
(cookies, localStorage, sessionStorage, IndexedDB, Cache Storage) and
reversibly decodes the encodings web apps wrap them in: JSON, Base64,
percent-encoding and LZ-string compression.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional; the process environment wins over it
		_ = godotenv.Load()
	},
}

// RootCmd exposes the root command so main can hand it to fang.
func RootCmd() *cobra.Command { return rootCmd }

// newRegistry is the one place commands get their codec set from.
func newRegistry() *codec.Registry { return codec.NewRegistry() }

// offloadThreshold resolves the worker hand-off threshold, honoring the
// STASHLENS_OFFLOAD_THRESHOLD override.
func offloadThreshold() int {
	if v := os.Getenv("STASHLENS_OFFLOAD_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return offload.DefaultThreshold
}
