package data_store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/nolmscheid/ReadbackCorrect-sub001/src/avdata"
	"github.com/nolmscheid/ReadbackCorrect-sub001/src/seed_data"
)

func newTestStore(t *testing.T, rootDir string) *Store {
	t.Helper()
	s, err := InitStore(StoreConfig{RootDir: rootDir})
	if err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return s
}

// stageSet creates a complete staged update for the given cycle and
// returns the staging directory.
func stageSet(t *testing.T, s *Store, cycle string) string {
	t.Helper()

	staging, err := s.BeginStaging()
	if err != nil {
		t.Fatalf("BeginStaging failed: %v", err)
	}

	manifest := avdata.Manifest{
		Cycle: cycle,
		Files: map[string]string{
			avdata.NameAirports:      "airports.json",
			avdata.NameVictorAirways: "victor_airways.json",
			avdata.NameWaypoints:     "waypoints.json",
		},
	}
	writeStagedJSON(t, staging, avdata.ManifestFileName, manifest)
	writeStagedJSON(t, staging, "airports.json", []avdata.AirportRecord{
		{ID: "KTEST", Name: "Test Field", City: "Testville", State: "MN"},
	})
	writeStagedJSON(t, staging, "waypoints.json", []avdata.WaypointRecord{
		{ID: "GEP", Name: "Gopher"},
		{ID: "OCN"},
	})
	writeStagedJSON(t, staging, "victor_airways.json", []string{"1", "2", "3"})
	return staging
}

func writeStagedJSON(t *testing.T, dir, name string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to encode %s: %v", name, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestSeedActiveBeforeFirstUpdate(t *testing.T) {
	s := newTestStore(t, filepath.Join(t.TempDir(), "store"))

	if !s.UsingSeed() {
		t.Error("fresh store should serve seed data")
	}
	if _, ok := s.CurrentCycle(); ok {
		t.Error("seed data must be unversioned")
	}

	seedAirports, err := seed_data.Airports()
	if err != nil {
		t.Fatal(err)
	}
	if got := len(s.Airports()); got != len(seedAirports) {
		t.Errorf("airports = %d records, want seed's %d", got, len(seedAirports))
	}
	if got := len(s.VictorAirways()); got != seed_data.VictorAirwayCount {
		t.Errorf("victor airways = %d, want %d", got, seed_data.VictorAirwayCount)
	}
}

func TestCommitActivatesStagedSet(t *testing.T) {
	s := newTestStore(t, filepath.Join(t.TempDir(), "store"))

	staging := stageSet(t, s, "2026-02-19")
	if err := s.Commit(staging); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	cycle, ok := s.CurrentCycle()
	if !ok || cycle != "2026-02-19" {
		t.Errorf("CurrentCycle = %q/%v, want 2026-02-19/true", cycle, ok)
	}
	if s.UsingSeed() {
		t.Error("store should no longer serve seed data")
	}
	if got := s.DatasetCount(avdata.NameAirports); got != 1 {
		t.Errorf("airports count = %d, want 1", got)
	}
	if got := s.DatasetCount(avdata.NameWaypoints); got != 2 {
		t.Errorf("waypoints count = %d, want 2", got)
	}
	if got := s.DatasetCount(avdata.NameVictorAirways); got != 3 {
		t.Errorf("victor airways count = %d, want 3", got)
	}

	// Staging directory was consumed by the swap.
	if _, err := os.Stat(staging); !os.IsNotExist(err) {
		t.Error("staging directory should be gone after commit")
	}
}

func TestCommitPersistsAcrossReload(t *testing.T) {
	rootDir := filepath.Join(t.TempDir(), "store")
	s1 := newTestStore(t, rootDir)

	if err := s1.Commit(stageSet(t, s1, "2026-02-19")); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	s2 := newTestStore(t, rootDir)
	cycle, ok := s2.CurrentCycle()
	if !ok || cycle != "2026-02-19" {
		t.Errorf("reloaded CurrentCycle = %q/%v, want 2026-02-19/true", cycle, ok)
	}
	if s2.UsingSeed() {
		t.Error("reloaded store should serve the committed set")
	}

	state, ok := s2.ReadState()
	if !ok || state.Cycle != "2026-02-19" {
		t.Errorf("state record = %+v/%v, want cycle 2026-02-19", state, ok)
	}
}

func TestCommitReplacesPriorSet(t *testing.T) {
	s := newTestStore(t, filepath.Join(t.TempDir(), "store"))

	if err := s.Commit(stageSet(t, s, "2026-01-22")); err != nil {
		t.Fatalf("first Commit failed: %v", err)
	}
	if err := s.Commit(stageSet(t, s, "2026-02-19")); err != nil {
		t.Fatalf("second Commit failed: %v", err)
	}

	cycle, _ := s.CurrentCycle()
	if cycle != "2026-02-19" {
		t.Errorf("cycle = %q, want 2026-02-19", cycle)
	}

	// No transient previous/ left behind.
	if _, err := os.Stat(filepath.Join(s.cfg.RootDir, previousDirName)); !os.IsNotExist(err) {
		t.Error("previous set should be removed after a successful swap")
	}
}

func TestCommitRejectsIncompleteStaging(t *testing.T) {
	s := newTestStore(t, filepath.Join(t.TempDir(), "store"))

	staging := stageSet(t, s, "2026-02-19")
	if err := os.Remove(filepath.Join(staging, "waypoints.json")); err != nil {
		t.Fatal(err)
	}

	if err := s.Commit(staging); err == nil {
		t.Fatal("expected Commit to fail on incomplete staging")
	}
	if !s.UsingSeed() {
		t.Error("failed commit must leave seed data active")
	}
	if _, ok := s.CurrentCycle(); ok {
		t.Error("failed commit must not record a cycle")
	}
}

func TestCommitRejectsInvalidStagedDataset(t *testing.T) {
	s := newTestStore(t, filepath.Join(t.TempDir(), "store"))

	if err := s.Commit(stageSet(t, s, "2026-01-22")); err != nil {
		t.Fatalf("first Commit failed: %v", err)
	}

	staging := stageSet(t, s, "2026-02-19")
	if err := os.WriteFile(filepath.Join(staging, "airports.json"), []byte(`{"broken":`), 0644); err != nil {
		t.Fatal(err)
	}

	if err := s.Commit(staging); err == nil {
		t.Fatal("expected Commit to fail on invalid staged dataset")
	}

	// The prior committed set stays active, field for field.
	cycle, ok := s.CurrentCycle()
	if !ok || cycle != "2026-01-22" {
		t.Errorf("cycle after failed commit = %q/%v, want 2026-01-22/true", cycle, ok)
	}
}

func TestInitRecoversInterruptedSwap(t *testing.T) {
	rootDir := filepath.Join(t.TempDir(), "store")
	s1 := newTestStore(t, rootDir)
	if err := s1.Commit(stageSet(t, s1, "2026-02-19")); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	// Simulate a crash between the two swap renames: current/ moved
	// aside, replacement never arrived.
	currentDir := filepath.Join(rootDir, currentDirName)
	previousDir := filepath.Join(rootDir, previousDirName)
	if err := os.Rename(currentDir, previousDir); err != nil {
		t.Fatal(err)
	}

	s2 := newTestStore(t, rootDir)
	cycle, ok := s2.CurrentCycle()
	if !ok || cycle != "2026-02-19" {
		t.Errorf("recovered cycle = %q/%v, want 2026-02-19/true", cycle, ok)
	}
	if _, err := os.Stat(previousDir); !os.IsNotExist(err) {
		t.Error("previous/ should be gone after recovery")
	}
}

func TestInitDiscardsLeftoverStaging(t *testing.T) {
	rootDir := filepath.Join(t.TempDir(), "store")
	s1 := newTestStore(t, rootDir)
	staging := stageSet(t, s1, "2026-02-19") // never committed

	s2 := newTestStore(t, rootDir)
	if _, err := os.Stat(staging); !os.IsNotExist(err) {
		t.Error("leftover staging should be discarded on init")
	}
	if !s2.UsingSeed() {
		t.Error("uncommitted staging must not become active")
	}
}

func TestCorruptCommittedSetFallsBackToSeed(t *testing.T) {
	rootDir := filepath.Join(t.TempDir(), "store")
	s1 := newTestStore(t, rootDir)
	if err := s1.Commit(stageSet(t, s1, "2026-02-19")); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	// Corrupt the committed manifest on disk.
	manifestPath := filepath.Join(rootDir, currentDirName, avdata.ManifestFileName)
	if err := os.WriteFile(manifestPath, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}

	s2 := newTestStore(t, rootDir)
	if !s2.UsingSeed() {
		t.Error("unreadable committed set should fall back to seed data")
	}
}

func TestDatasetFileName(t *testing.T) {
	if got := DatasetFileName(avdata.NameVictorAirways); got != "victor_airways.json" {
		t.Errorf("DatasetFileName = %q, want victor_airways.json", got)
	}
}
