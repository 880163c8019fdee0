package builders

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nolmscheid/ReadbackCorrect-sub001/src/avdata"
	"github.com/nolmscheid/ReadbackCorrect-sub001/src/data_store"
)

// WriteManifest emits the manifest document for a produced dataset set:
// the given cycle plus the three fixed logical names mapped to their
// canonical file names. Returns the manifest path.
func WriteManifest(dir, cycle string) (string, error) {
	if cycle == "" {
		return "", fmt.Errorf("cycle is required")
	}

	manifest := avdata.Manifest{
		Cycle: cycle,
		Files: make(map[string]string, len(avdata.RequiredNames)),
	}
	for _, name := range avdata.RequiredNames {
		manifest.Files[name] = data_store.DatasetFileName(name)
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode manifest: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, avdata.ManifestFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return path, nil
}

// BumpManifest rewrites only the cycle field of an existing manifest,
// preserving every other field including ones this tool does not know
// about. Used to re-version a manifest without rebuilding data.
func BumpManifest(path, cycle string) error {
	if cycle == "" {
		return fmt.Errorf("cycle is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	// Decode into a generic map so unknown fields survive the rewrite.
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}
	doc["cycle"] = cycle

	updated, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, updated, 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace manifest: %w", err)
	}
	return nil
}
