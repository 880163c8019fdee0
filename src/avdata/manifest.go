package avdata

import (
	"encoding/json"
	"fmt"
)

// Manifest maps logical dataset names to relative file paths for one
// release cycle. Cycle is an opaque version token; the reference
// deployment uses FAA 28-day cycle dates ("2026-02-19") but no code here
// may do date arithmetic or ordering on it.
type Manifest struct {
	Cycle string            `json:"cycle"`
	Files map[string]string `json:"files"`
}

// ParseManifest decodes and structurally validates a manifest document.
// All failures wrap ErrFormat.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("%w: manifest is not valid JSON: %v", ErrFormat, err)
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Validate checks the invariants every manifest must hold: a non-empty
// cycle and a files map carrying the three required logical names, each
// with a non-empty relative path. Extra names are allowed.
func (m Manifest) Validate() error {
	if m.Cycle == "" {
		return fmt.Errorf("%w: manifest missing cycle", ErrFormat)
	}
	if m.Files == nil {
		return fmt.Errorf("%w: manifest missing files mapping", ErrFormat)
	}
	for _, name := range RequiredNames {
		path, ok := m.Files[name]
		if !ok {
			return fmt.Errorf("%w: manifest files missing %q", ErrFormat, name)
		}
		if path == "" {
			return fmt.Errorf("%w: manifest files[%q] is empty", ErrFormat, name)
		}
	}
	return nil
}
