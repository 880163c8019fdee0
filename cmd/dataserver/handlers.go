package main

import (
	"net/http"
	"os"
	"path/filepath"

	logs "github.com/danmuck/smplog"

	"github.com/nolmscheid/ReadbackCorrect-sub001/src/avdata"
)

// loadManifest re-reads the manifest on every request so a cycle bump is
// picked up without restarting the server.
func loadManifest(dir string) (avdata.Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, avdata.ManifestFileName))
	if err != nil {
		return avdata.Manifest{}, err
	}
	return avdata.ParseManifest(data)
}

func handleManifest(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := loadManifest(dir); err != nil {
			logs.Warnf("manifest unavailable: %v", err)
			http.Error(w, "manifest unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, filepath.Join(dir, avdata.ManifestFileName))
	}
}

// handleDataset serves only files the manifest names; everything else is
// a 404 regardless of what sits in the directory.
func handleDataset(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		manifest, err := loadManifest(dir)
		if err != nil {
			http.Error(w, "manifest unavailable", http.StatusServiceUnavailable)
			return
		}

		name := r.PathValue("name")
		served := false
		for _, relPath := range manifest.Files {
			if relPath == name {
				served = true
				break
			}
		}
		if !served {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, filepath.Join(dir, filepath.Base(name)))
	}
}
