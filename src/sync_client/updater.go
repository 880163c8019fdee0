package sync_client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	logs "github.com/danmuck/smplog"
	"golang.org/x/sync/errgroup"

	"github.com/nolmscheid/ReadbackCorrect-sub001/src/avdata"
	"github.com/nolmscheid/ReadbackCorrect-sub001/src/data_store"
)

// State is the observable phase of an update attempt.
type State string

const (
	StateIdle             State = "idle"
	StateFetchingManifest State = "fetching_manifest"
	StateFetchingFiles    State = "fetching_files"
	StateValidating       State = "validating"
	StateSwapping         State = "swapping"
	StateComplete         State = "complete"
	StateFailed           State = "failed"
)

// ErrUpdateInProgress is returned when Update is called while another
// attempt is still running. Two attempts would race on the staging area
// and the swap target, so the second is rejected rather than queued.
var ErrUpdateInProgress = errors.New("update already in progress")

// Updater drives one update attempt at a time: manifest fetch, staged
// concurrent downloads, validation, and the atomic store commit. A new
// attempt re-enters from Idle; Complete and Failed are terminal per
// attempt and the store is only ever touched by a successful swap.
type Updater struct {
	store  *data_store.Store
	client *ManifestClient

	mu       sync.Mutex
	inFlight bool
	state    State
}

// NewUpdater returns an idle Updater bound to a store and a manifest client.
func NewUpdater(store *data_store.Store, client *ManifestClient) *Updater {
	return &Updater{store: store, client: client, state: StateIdle}
}

// State returns the phase of the current (or most recent) attempt.
func (u *Updater) State() State {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

func (u *Updater) setState(s State) {
	u.mu.Lock()
	u.state = s
	u.mu.Unlock()
}

// Update runs one full attempt and returns the committed cycle on
// success. On any failure the local datastore is left exactly as it was:
// staged files are discarded and nothing partial is ever visible to
// readers.
func (u *Updater) Update(ctx context.Context) (string, error) {
	u.mu.Lock()
	if u.inFlight {
		u.mu.Unlock()
		return "", ErrUpdateInProgress
	}
	u.inFlight = true
	u.state = StateIdle
	u.mu.Unlock()

	cycle, err := u.run(ctx)

	u.mu.Lock()
	u.inFlight = false
	if err != nil {
		u.state = StateFailed
	} else {
		u.state = StateComplete
	}
	u.mu.Unlock()
	return cycle, err
}

func (u *Updater) run(ctx context.Context) (string, error) {
	// Config gate before any network activity.
	if u.client == nil || u.client.BaseURL == "" {
		return "", fmt.Errorf("%w: data server base URL is not set", avdata.ErrConfig)
	}

	u.setState(StateFetchingManifest)
	manifest, err := u.client.FetchManifest(ctx)
	if err != nil {
		return "", err
	}
	logs.Debugf("manifest fetched: cycle %s, %d files", manifest.Cycle, len(manifest.Files))

	u.setState(StateFetchingFiles)
	stagingDir, err := u.store.BeginStaging()
	if err != nil {
		return "", err
	}
	// Any exit before the swap discards staging; Commit moves the
	// directory away, making this a no-op on success.
	defer u.store.Discard(stagingDir)

	if err := u.fetchFiles(ctx, manifest, stagingDir); err != nil {
		return "", err
	}

	u.setState(StateValidating)
	if err := validateStaged(manifest, stagingDir); err != nil {
		return "", err
	}

	if err := writeStagedManifest(manifest, stagingDir); err != nil {
		return "", err
	}

	u.setState(StateSwapping)
	if err := u.store.Commit(stagingDir); err != nil {
		return "", err
	}

	return manifest.Cycle, nil
}

// fetchFiles downloads every file the manifest names, including unknown
// extras, into the staging directory. Downloads run concurrently with
// join semantics: the first failure cancels the rest and fails the
// attempt, so the store can never pair a manifest from one cycle with a
// file from another.
func (u *Updater) fetchFiles(ctx context.Context, manifest avdata.Manifest, stagingDir string) error {
	g, gctx := errgroup.WithContext(ctx)
	for name, relPath := range manifest.Files {
		g.Go(func() error {
			dest := filepath.Join(stagingDir, data_store.DatasetFileName(name))
			if err := u.client.FetchFile(gctx, relPath, dest); err != nil {
				// Peer downloads were cancelled by gctx; report the
				// caller's cancellation, not the collateral one.
				if ctx.Err() != nil && !errors.Is(err, avdata.ErrCancelled) {
					return fmt.Errorf("%w: fetch %s: %v", avdata.ErrCancelled, name, ctx.Err())
				}
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

// validateStaged parses each required staged file as its expected dataset
// shape. Extra files ride along unvalidated; current consumers ignore
// them.
func validateStaged(manifest avdata.Manifest, stagingDir string) error {
	for _, name := range avdata.RequiredNames {
		data, err := os.ReadFile(filepath.Join(stagingDir, data_store.DatasetFileName(name)))
		if err != nil {
			return fmt.Errorf("staged %s unreadable: %w", name, err)
		}
		if err := avdata.ValidateDataset(name, data); err != nil {
			return err
		}
	}
	return nil
}

func writeStagedManifest(manifest avdata.Manifest, stagingDir string) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	path := filepath.Join(stagingDir, avdata.ManifestFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to stage manifest: %w", err)
	}
	return nil
}
