// Package data_store owns the durable, versioned holder of the current
// reference datasets. Exactly one of {committed local set, embedded seed
// set} is active at any time: the local set becomes active after the
// first ever successful update and stays active from then on, even if a
// later update attempt fails. Updates land through staging directories
// and an atomic rename swap so a reader never observes a mixed cycle.
package data_store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	logs "github.com/danmuck/smplog"
	"github.com/nolmscheid/ReadbackCorrect-sub001/src/avdata"
	"github.com/nolmscheid/ReadbackCorrect-sub001/src/seed_data"
)

const (
	currentDirName  = "current"
	previousDirName = "previous"
	stagingDirName  = "staging"
	stateFileName   = "state.toml"
)

// StoreConfig controls a Store instance.
type StoreConfig struct {
	RootDir string // root directory for committed data, staging and state
	Verbose bool   // when true, emit debug logging for loads and swaps
}

// DefaultConfig returns a StoreConfig rooted at dir.
func DefaultConfig(dir string) StoreConfig {
	return StoreConfig{RootDir: dir}
}

// snapshot is an immutable view of the active dataset set. Readers hold
// the pointer they grabbed; a commit installs a fresh snapshot rather
// than mutating fields in place.
type snapshot struct {
	fromSeed bool
	cycle    string
	airports []avdata.AirportRecord
	waypoints []avdata.WaypointRecord
	airways  []string
}

// Store answers "what dataset is active" for each logical name and
// performs the atomic commit of a fully staged update.
type Store struct {
	cfg  StoreConfig
	lock sync.RWMutex
	snap *snapshot
}

// InitStore opens (or creates) the store rooted at cfg.RootDir. Leftover
// staging from interrupted attempts is discarded, an interrupted swap is
// rolled forward, and the committed set is loaded if one exists;
// otherwise the embedded seed set becomes active.
func InitStore(cfg StoreConfig) (*Store, error) {
	if cfg.RootDir == "" {
		return nil, fmt.Errorf("store root directory is required")
	}
	if err := os.MkdirAll(cfg.RootDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	s := &Store{cfg: cfg}

	// Staged files from a crashed attempt are never committable.
	if err := os.RemoveAll(filepath.Join(cfg.RootDir, stagingDirName)); err != nil {
		return nil, fmt.Errorf("failed to clear staging: %w", err)
	}

	if err := s.recoverInterruptedSwap(); err != nil {
		return nil, err
	}

	snap, err := s.loadCommitted()
	if err != nil {
		if !os.IsNotExist(err) {
			logs.Warnf("committed dataset unreadable, serving seed data: %v", err)
		}
		seed, seedErr := seedSnapshot()
		if seedErr != nil {
			return nil, seedErr
		}
		snap = seed
	}
	s.snap = snap

	if cfg.Verbose {
		logs.Debugf("store initialized at %s (seed=%v cycle=%q)", cfg.RootDir, snap.fromSeed, snap.cycle)
	}
	return s, nil
}

// recoverInterruptedSwap handles a crash between the two renames of a
// commit: if current/ is gone but previous/ survived, the prior valid
// version is restored; a stray previous/ next to a healthy current/ is
// dropped.
func (s *Store) recoverInterruptedSwap() error {
	currentDir := filepath.Join(s.cfg.RootDir, currentDirName)
	previousDir := filepath.Join(s.cfg.RootDir, previousDirName)

	_, currentErr := os.Stat(currentDir)
	_, previousErr := os.Stat(previousDir)

	if os.IsNotExist(currentErr) && previousErr == nil {
		logs.Warnf("recovering interrupted dataset swap from %s", previousDir)
		if err := os.Rename(previousDir, currentDir); err != nil {
			return fmt.Errorf("failed to recover interrupted swap: %w", err)
		}
		return nil
	}
	if previousErr == nil {
		if err := os.RemoveAll(previousDir); err != nil {
			return fmt.Errorf("failed to remove stale previous set: %w", err)
		}
	}
	return nil
}

// loadCommitted reads and validates the committed set under current/.
// Returns an os.IsNotExist error when no update has ever completed.
func (s *Store) loadCommitted() (*snapshot, error) {
	currentDir := filepath.Join(s.cfg.RootDir, currentDirName)

	manifestData, err := os.ReadFile(filepath.Join(currentDir, avdata.ManifestFileName))
	if err != nil {
		return nil, err
	}
	manifest, err := avdata.ParseManifest(manifestData)
	if err != nil {
		return nil, fmt.Errorf("committed manifest invalid: %w", err)
	}

	snap := &snapshot{cycle: manifest.Cycle}
	for _, name := range avdata.RequiredNames {
		data, err := os.ReadFile(filepath.Join(currentDir, DatasetFileName(name)))
		if err != nil {
			return nil, fmt.Errorf("committed dataset %s unreadable: %w", name, err)
		}
		switch name {
		case avdata.NameAirports:
			snap.airports, err = avdata.DecodeAirports(data)
		case avdata.NameWaypoints:
			snap.waypoints, err = avdata.DecodeWaypoints(data)
		case avdata.NameVictorAirways:
			snap.airways, err = avdata.DecodeAirways(data)
		}
		if err != nil {
			return nil, fmt.Errorf("committed dataset %s invalid: %w", name, err)
		}
	}
	return snap, nil
}

func seedSnapshot() (*snapshot, error) {
	airports, err := seed_data.Airports()
	if err != nil {
		return nil, err
	}
	waypoints, err := seed_data.Waypoints()
	if err != nil {
		return nil, err
	}
	return &snapshot{
		fromSeed:  true,
		airports:  airports,
		waypoints: waypoints,
		airways:   seed_data.VictorAirways(),
	}, nil
}

func (s *Store) active() *snapshot {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.snap
}

// Airports returns the active airport dataset.
func (s *Store) Airports() []avdata.AirportRecord { return s.active().airports }

// Waypoints returns the active waypoint dataset.
func (s *Store) Waypoints() []avdata.WaypointRecord { return s.active().waypoints }

// VictorAirways returns the active victor airway dataset.
func (s *Store) VictorAirways() []string { return s.active().airways }

// CurrentCycle returns the committed cycle token. ok is false before the
// first successful update; seed data is unversioned.
func (s *Store) CurrentCycle() (cycle string, ok bool) {
	snap := s.active()
	if snap.fromSeed {
		return "", false
	}
	return snap.cycle, true
}

// UsingSeed reports whether the embedded seed set is still active.
func (s *Store) UsingSeed() bool { return s.active().fromSeed }

// DatasetCount returns the record count of the active dataset for a
// logical name, or -1 for names this store does not decode.
func (s *Store) DatasetCount(name string) int {
	snap := s.active()
	switch name {
	case avdata.NameAirports:
		return len(snap.airports)
	case avdata.NameWaypoints:
		return len(snap.waypoints)
	case avdata.NameVictorAirways:
		return len(snap.airways)
	default:
		return -1
	}
}

// DatasetFileName maps a logical name to the store's on-disk file name.
// Files are keyed by logical name rather than by server path so a
// manifest pointing at "data/2026/airports.json" still lands in a flat,
// predictable layout.
func DatasetFileName(name string) string {
	return name + ".json"
}
