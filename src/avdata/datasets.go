package avdata

import (
	"encoding/json"
	"fmt"
)

// DecodeAirports parses a staged airports file. Every record must carry a
// non-empty id; other fields may be empty. Failures wrap ErrFormat.
func DecodeAirports(data []byte) ([]AirportRecord, error) {
	var records []AirportRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: airports file is not a JSON array of records: %v", ErrFormat, err)
	}
	for i, r := range records {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: airports record %d missing id", ErrFormat, i)
		}
	}
	return records, nil
}

// DecodeWaypoints parses a staged waypoints file. Every record must carry
// a non-empty id; name is optional. Failures wrap ErrFormat.
func DecodeWaypoints(data []byte) ([]WaypointRecord, error) {
	var records []WaypointRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: waypoints file is not a JSON array of records: %v", ErrFormat, err)
	}
	for i, r := range records {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: waypoints record %d missing id", ErrFormat, i)
		}
	}
	return records, nil
}

// DecodeAirways parses a staged victor airways file: a JSON array of
// non-empty airway number strings. Failures wrap ErrFormat.
func DecodeAirways(data []byte) ([]string, error) {
	var airways []string
	if err := json.Unmarshal(data, &airways); err != nil {
		return nil, fmt.Errorf("%w: victor airways file is not a JSON array of strings: %v", ErrFormat, err)
	}
	for i, a := range airways {
		if a == "" {
			return nil, fmt.Errorf("%w: victor airways entry %d is empty", ErrFormat, i)
		}
	}
	return airways, nil
}

// ValidateDataset checks a staged file against the dataset shape expected
// for its logical name. Unknown logical names pass untouched; current
// consumers ignore them but the files still ride along in the store.
func ValidateDataset(name string, data []byte) error {
	switch name {
	case NameAirports:
		_, err := DecodeAirports(data)
		return err
	case NameWaypoints:
		_, err := DecodeWaypoints(data)
		return err
	case NameVictorAirways:
		_, err := DecodeAirways(data)
		return err
	default:
		return nil
	}
}
