package data_store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	logs "github.com/danmuck/smplog"
	"github.com/nolmscheid/ReadbackCorrect-sub001/src/avdata"
)

// StoreState is the persisted record of the last committed update. It is
// the single source of the "has any update ever succeeded" flag outside
// process memory; it is read and written only by this package.
type StoreState struct {
	Cycle       string `toml:"cycle"`
	CommittedAt string `toml:"committed_at"`
}

// BeginStaging creates a fresh staging directory for one update attempt
// and returns its path. Staged files are invisible to readers until
// Commit; Discard (or the next InitStore) removes them.
func (s *Store) BeginStaging() (string, error) {
	dir := filepath.Join(s.cfg.RootDir, stagingDirName, fmt.Sprintf("upd_%d", time.Now().UnixNano()))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}
	return dir, nil
}

// Discard removes a staging directory and everything in it.
func (s *Store) Discard(stagingDir string) {
	if stagingDir == "" {
		return
	}
	if err := os.RemoveAll(stagingDir); err != nil {
		logs.Warnf("failed to discard staging %s: %v", stagingDir, err)
	}
}

// Commit atomically replaces the committed set with the fully staged one.
// The staging directory must hold the manifest file plus every dataset
// file it names. The previous set is retained until the new set is in
// place, so a crash at any point leaves either the old or the new
// version readable, never neither and never a mix.
func (s *Store) Commit(stagingDir string) error {
	manifestData, err := os.ReadFile(filepath.Join(stagingDir, avdata.ManifestFileName))
	if err != nil {
		return fmt.Errorf("staged manifest unreadable: %w", err)
	}
	manifest, err := avdata.ParseManifest(manifestData)
	if err != nil {
		return err
	}

	// Decode the candidate snapshot before touching the live set; a
	// structurally bad staging must leave the store exactly as it was.
	candidate := &snapshot{cycle: manifest.Cycle}
	for name := range manifest.Files {
		data, err := os.ReadFile(filepath.Join(stagingDir, DatasetFileName(name)))
		if err != nil {
			return fmt.Errorf("staged dataset %s unreadable: %w", name, err)
		}
		switch name {
		case avdata.NameAirports:
			candidate.airports, err = avdata.DecodeAirports(data)
		case avdata.NameWaypoints:
			candidate.waypoints, err = avdata.DecodeWaypoints(data)
		case avdata.NameVictorAirways:
			candidate.airways, err = avdata.DecodeAirways(data)
		}
		if err != nil {
			return err
		}
	}

	currentDir := filepath.Join(s.cfg.RootDir, currentDirName)
	previousDir := filepath.Join(s.cfg.RootDir, previousDirName)

	s.lock.Lock()
	defer s.lock.Unlock()

	hadCurrent := true
	if err := os.Rename(currentDir, previousDir); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to set aside current set: %w", err)
		}
		hadCurrent = false
	}

	if err := os.Rename(stagingDir, currentDir); err != nil {
		// Roll the prior version back into place; the attempt fails but
		// the store stays usable.
		if hadCurrent {
			if rbErr := os.Rename(previousDir, currentDir); rbErr != nil {
				logs.Errorf(rbErr, "rollback after failed swap also failed")
			}
		}
		return fmt.Errorf("failed to swap staged set into place: %w", err)
	}

	if err := s.writeState(StoreState{
		Cycle:       manifest.Cycle,
		CommittedAt: time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		logs.Warnf("committed set is live but state record write failed: %v", err)
	}

	if hadCurrent {
		if err := os.RemoveAll(previousDir); err != nil {
			logs.Warnf("failed to remove previous set: %v", err)
		}
	}

	s.snap = candidate
	if s.cfg.Verbose {
		logs.Debugf("committed cycle %s (%d airports, %d waypoints, %d airways)",
			candidate.cycle, len(candidate.airports), len(candidate.waypoints), len(candidate.airways))
	}
	return nil
}

// writeState persists the state record with a tmp-file rename so a crash
// mid-write cannot truncate it.
func (s *Store) writeState(state StoreState) error {
	statePath := filepath.Join(s.cfg.RootDir, stateFileName)
	tmpPath := statePath + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create state file: %w", err)
	}
	encoder := toml.NewEncoder(f)
	encoder.Indent = "    "
	if err := encoder.Encode(state); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close state file: %w", err)
	}
	if err := os.Rename(tmpPath, statePath); err != nil {
		return fmt.Errorf("failed to move state file into place: %w", err)
	}
	return nil
}

// ReadState returns the persisted state record, or ok=false when no
// update has ever been committed.
func (s *Store) ReadState() (StoreState, bool) {
	var state StoreState
	if _, err := toml.DecodeFile(filepath.Join(s.cfg.RootDir, stateFileName), &state); err != nil {
		return StoreState{}, false
	}
	return state, state.Cycle != ""
}
