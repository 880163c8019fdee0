// Command builder is the offline build pipeline for the ReadBack
// reference datasets. Each dataset builder walks a fallback chain of
// sources (explicit local input, FAA API, embedded fallback) and writes
// canonical JSON; the manifest subcommands version the produced set.
package main

import (
	"os"

	logs "github.com/danmuck/smplog"
	"github.com/spf13/cobra"

	"github.com/nolmscheid/ReadbackCorrect-sub001/cmd/internal/logcfg"
)

var rootCmd = &cobra.Command{
	Use:   "builder",
	Short: "Build and version the ReadBack aviation reference datasets",
	Long: `Build pipeline for the ReadBack reference data.

Each dataset builder tries its sources in a fixed order and commits to
the first that produces data: an explicit --input file, then the FAA
API (unless --no-network), then an embedded fallback that always
succeeds. The manifest subcommands write or re-version the manifest
that describes a produced set.`,
	SilenceUsage: true,
}

func main() {
	logs.Configure(logcfg.Load())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
