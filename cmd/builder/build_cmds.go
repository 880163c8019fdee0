package main

import (
	"context"

	logs "github.com/danmuck/smplog"
	"github.com/spf13/cobra"

	"github.com/nolmscheid/ReadbackCorrect-sub001/src/builders"
)

var (
	buildInput     string
	buildOutputDir string
	buildNoNetwork bool
)

var airportsCmd = &cobra.Command{
	Use:   "airports",
	Short: "Build airports.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(cmd.Context(), builders.BuildAirports)
	},
}

var waypointsCmd = &cobra.Command{
	Use:   "waypoints",
	Short: "Build waypoints.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(cmd.Context(), builders.BuildWaypoints)
	},
}

var victorAirwaysCmd = &cobra.Command{
	Use:   "victor-airways",
	Short: "Build victor_airways.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(cmd.Context(), builders.BuildVictorAirways)
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Build all three datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := buildOptions()
		results, err := builders.BuildAll(cmd.Context(), opts, opts, opts)
		for _, r := range results {
			logs.Infof("wrote %d %s records to %s (source: %s)", r.Count, r.Dataset, r.OutputPath, r.Tier)
		}
		return err
	},
}

func buildOptions() builders.BuildOptions {
	return builders.BuildOptions{
		InputPath: buildInput,
		OutputDir: buildOutputDir,
		NoNetwork: buildNoNetwork,
	}
}

func runBuild(ctx context.Context, build func(context.Context, builders.BuildOptions) (builders.BuildResult, error)) error {
	result, err := build(ctx, buildOptions())
	if err != nil {
		return err
	}
	logs.Infof("wrote %d %s records to %s (source: %s)", result.Count, result.Dataset, result.OutputPath, result.Tier)
	return nil
}

func init() {
	for _, cmd := range []*cobra.Command{airportsCmd, waypointsCmd, victorAirwaysCmd} {
		// --input is per-dataset, so the combined "all" run does not take it.
		cmd.Flags().StringVar(&buildInput, "input", "", "explicit local input file (highest-priority source)")
	}
	for _, cmd := range []*cobra.Command{airportsCmd, waypointsCmd, victorAirwaysCmd, allCmd} {
		cmd.Flags().StringVar(&buildOutputDir, "output-dir", "./out", "directory for produced JSON files")
		cmd.Flags().BoolVar(&buildNoNetwork, "no-network", false, "skip remote sources")
		rootCmd.AddCommand(cmd)
	}
}
