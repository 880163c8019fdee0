package builders

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/nolmscheid/ReadbackCorrect-sub001/src/avdata"
	"github.com/nolmscheid/ReadbackCorrect-sub001/src/seed_data"
)

// LocalAirwaySource reads victor airway numbers from a local JSON array
// of strings. Tier 1. There is no remote tier for airways; the set of
// US Victor airway numbers is stable enough that the static range covers
// it.
type LocalAirwaySource struct {
	Path string
}

func (s LocalAirwaySource) Name() string { return "local-json" }

func (s LocalAirwaySource) Fetch(_ context.Context) ([]string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	var airways []string
	if err := json.Unmarshal(data, &airways); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path, err)
	}
	var out []string
	for _, a := range airways {
		if t := strings.TrimSpace(a); t != "" {
			out = append(out, t)
		}
	}
	return out, nil
}

// StaticAirwaySource yields the fixed "1".."500" range. Final tier;
// cannot fail.
type StaticAirwaySource struct{}

func (StaticAirwaySource) Name() string { return "static-range" }

func (StaticAirwaySource) Fetch(_ context.Context) ([]string, error) {
	return seed_data.VictorAirways(), nil
}

// AirwayChain assembles the ordered airway sources for the given build
// options.
func AirwayChain(opts BuildOptions) []Source[string] {
	var sources []Source[string]
	if opts.InputPath != "" {
		sources = append(sources, LocalAirwaySource{Path: opts.InputPath})
	}
	sources = append(sources, StaticAirwaySource{})
	return sources
}

// BuildVictorAirways resolves the airway chain and writes
// victor_airways.json into the output directory. Numeric airway numbers
// sort numerically so the output reads "1","2",..."500" rather than
// lexically.
func BuildVictorAirways(ctx context.Context, opts BuildOptions) (BuildResult, error) {
	airways, tier, err := Resolve(ctx, avdata.NameVictorAirways, AirwayChain(opts))
	if err != nil {
		return BuildResult{}, err
	}

	seen := make(map[string]bool, len(airways))
	out := make([]string, 0, len(airways))
	for _, a := range airways {
		if seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		ni, iErr := strconv.Atoi(out[i])
		nj, jErr := strconv.Atoi(out[j])
		if iErr == nil && jErr == nil {
			return ni < nj
		}
		return out[i] < out[j]
	})

	return writeDataset(avdata.NameVictorAirways, opts.OutputDir, tier, out)
}
