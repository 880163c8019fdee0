// Package builders implements the offline build pipeline: for each
// dataset kind, an ordered source-acquisition fallback chain produces a
// canonical JSON file, and a manifest emitter describes the produced set
// under a cycle token. Chains commit to the first source that yields a
// non-empty result; a source failure is demoted to "try next", never
// raised past the chain.
package builders

import (
	"context"
	"fmt"

	logs "github.com/danmuck/smplog"
)

// Source is one acquisition strategy for a dataset of record type T.
type Source[T any] interface {
	// Name identifies the strategy tier for operator visibility.
	Name() string
	// Fetch produces the full dataset or fails. A failure never
	// terminates the chain; the next source is tried.
	Fetch(ctx context.Context) ([]T, error)
}

// Resolve walks sources strictly in order and returns the first
// non-error, non-empty result together with the name of the source that
// produced it. Partial results are never merged across sources. Only
// total exhaustion fails, which is unreachable when the last source is a
// static fallback.
func Resolve[T any](ctx context.Context, dataset string, sources []Source[T]) ([]T, string, error) {
	for _, src := range sources {
		records, err := src.Fetch(ctx)
		if err != nil {
			logs.Warnf("%s: source %s failed, trying next: %v", dataset, src.Name(), err)
			continue
		}
		if len(records) == 0 {
			logs.Warnf("%s: source %s returned no records, trying next", dataset, src.Name())
			continue
		}
		return records, src.Name(), nil
	}
	return nil, "", fmt.Errorf("every source failed for dataset %s", dataset)
}
