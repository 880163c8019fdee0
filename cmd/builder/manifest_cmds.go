package main

import (
	"fmt"
	"os"
	"path/filepath"

	logs "github.com/danmuck/smplog"
	"github.com/spf13/cobra"

	"github.com/nolmscheid/ReadbackCorrect-sub001/src/avdata"
	"github.com/nolmscheid/ReadbackCorrect-sub001/src/builders"
)

var (
	manifestCycle string
	manifestDir   string
	manifestBump  bool

	checkCycleWrite bool
	checkCycleDir   string
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Write or re-version the dataset manifest",
	Long: `Write the manifest for a produced dataset set, or with --bump
rewrite only the cycle field of an existing manifest, leaving every
other field untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if manifestBump {
			path := filepath.Join(manifestDir, avdata.ManifestFileName)
			if err := builders.BumpManifest(path, manifestCycle); err != nil {
				return err
			}
			logs.Infof("bumped %s to cycle %s", path, manifestCycle)
			return nil
		}
		path, err := builders.WriteManifest(manifestDir, manifestCycle)
		if err != nil {
			return err
		}
		logs.Infof("wrote %s (cycle %s)", path, manifestCycle)
		return nil
	},
}

var checkCycleCmd = &cobra.Command{
	Use:   "check-cycle",
	Short: "Compare the live FAA NASR cycle against the local manifest",
	Long: `Fetch the current FAA NASR subscription cycle and compare it with
the local manifest. Exit code 0 means the manifest is current (or
absent); 1 means a newer FAA cycle is available and a rebuild is
recommended. With --write, the manifest's cycle is set to the live FAA
cycle.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		faaCycle, err := builders.CurrentFAACycle(cmd.Context(), nil, "")
		if err != nil {
			return fmt.Errorf("could not determine current FAA NASR cycle: %w", err)
		}
		logs.Infof("current FAA NASR cycle: %s", faaCycle)

		path := filepath.Join(checkCycleDir, avdata.ManifestFileName)
		if checkCycleWrite {
			if _, err := os.Stat(path); os.IsNotExist(err) {
				if _, err := builders.WriteManifest(checkCycleDir, faaCycle); err != nil {
					return err
				}
				logs.Infof("wrote %s with cycle %s", path, faaCycle)
				return nil
			}
			if err := builders.BumpManifest(path, faaCycle); err != nil {
				return err
			}
			logs.Infof("updated %s to cycle %s", path, faaCycle)
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			logs.Infof("no local manifest at %s; run the builders and write one", path)
			return nil
		}
		manifest, err := avdata.ParseManifest(data)
		if err != nil {
			return fmt.Errorf("local manifest invalid: %w", err)
		}
		logs.Infof("manifest cycle:         %s", manifest.Cycle)

		if manifest.Cycle != faaCycle {
			logs.Warnf("new FAA cycle available; rebuild datasets and bump the manifest")
			os.Exit(1)
		}
		logs.Infof("manifest is current")
		return nil
	},
}

func init() {
	manifestCmd.Flags().StringVar(&manifestCycle, "cycle", "", "cycle token to record (e.g. 2026-02-19)")
	manifestCmd.Flags().StringVar(&manifestDir, "output-dir", "./out", "directory holding the manifest")
	manifestCmd.Flags().BoolVar(&manifestBump, "bump", false, "update only the cycle of an existing manifest")
	manifestCmd.MarkFlagRequired("cycle")

	checkCycleCmd.Flags().BoolVar(&checkCycleWrite, "write", false, "write the live FAA cycle into the manifest")
	checkCycleCmd.Flags().StringVar(&checkCycleDir, "output-dir", "./out", "directory holding the manifest")

	rootCmd.AddCommand(manifestCmd, checkCycleCmd)
}
