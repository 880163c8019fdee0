package builders

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/nolmscheid/ReadbackCorrect-sub001/src/data_store"
)

// BuildOptions configures one dataset build.
type BuildOptions struct {
	InputPath string       // tier-1 explicit local input; "" skips the tier
	OutputDir string       // directory the canonical JSON file lands in
	NoNetwork bool         // when true, remote tiers are skipped entirely
	Client    *http.Client // HTTP client for remote tiers; nil uses a default
}

// BuildResult reports what a builder produced and which source tier
// supplied it. The tier is operator information only; the client never
// sees it.
type BuildResult struct {
	Dataset    string
	Count      int
	Tier       string
	OutputPath string
}

// writeDataset serializes records as a pretty-printed JSON array into
// outputDir under the dataset's canonical file name.
func writeDataset[T any](dataset, outputDir, tier string, records []T) (BuildResult, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return BuildResult{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return BuildResult{}, fmt.Errorf("failed to encode %s: %w", dataset, err)
	}

	outputPath := filepath.Join(outputDir, data_store.DatasetFileName(dataset))
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return BuildResult{}, fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	return BuildResult{
		Dataset:    dataset,
		Count:      len(records),
		Tier:       tier,
		OutputPath: outputPath,
	}, nil
}

// BuildAll runs the three dataset builders in sequence. The builders are
// independent; a failure in one does not stop the others, and all
// failures are reported together.
func BuildAll(ctx context.Context, airports, waypoints, airways BuildOptions) ([]BuildResult, error) {
	var results []BuildResult
	var errs []error

	if r, err := BuildAirports(ctx, airports); err != nil {
		errs = append(errs, fmt.Errorf("airports: %w", err))
	} else {
		results = append(results, r)
	}
	if r, err := BuildWaypoints(ctx, waypoints); err != nil {
		errs = append(errs, fmt.Errorf("waypoints: %w", err))
	} else {
		results = append(results, r)
	}
	if r, err := BuildVictorAirways(ctx, airways); err != nil {
		errs = append(errs, fmt.Errorf("victor airways: %w", err))
	} else {
		results = append(results, r)
	}

	if len(errs) > 0 {
		return results, fmt.Errorf("build failures: %v", errs)
	}
	return results, nil
}
