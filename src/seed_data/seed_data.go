// Package seed_data bundles the version-less reference datasets that ship
// inside the application. The client serves these until its first
// successful update; the build pipeline reuses them as the final fallback
// tier when every better source fails. Seed data is read-only and carries
// no cycle token.
package seed_data

import (
	_ "embed"
	"fmt"
	"strconv"

	"github.com/nolmscheid/ReadbackCorrect-sub001/src/avdata"
)

//go:embed airports.json
var airportsJSON []byte

//go:embed waypoints.json
var waypointsJSON []byte

// VictorAirwayCount is the highest seeded Victor airway number. US Victor
// airways run V1 through roughly V500; the app only needs the numbers for
// readback validation.
const VictorAirwayCount = 500

// Airports returns the seed airport records.
func Airports() ([]avdata.AirportRecord, error) {
	records, err := avdata.DecodeAirports(airportsJSON)
	if err != nil {
		return nil, fmt.Errorf("seed airports corrupt: %w", err)
	}
	return records, nil
}

// Waypoints returns the seed waypoint records.
func Waypoints() ([]avdata.WaypointRecord, error) {
	records, err := avdata.DecodeWaypoints(waypointsJSON)
	if err != nil {
		return nil, fmt.Errorf("seed waypoints corrupt: %w", err)
	}
	return records, nil
}

// VictorAirways returns the seed airway numbers "1" through "500".
func VictorAirways() []string {
	airways := make([]string, VictorAirwayCount)
	for i := range airways {
		airways[i] = strconv.Itoa(i + 1)
	}
	return airways
}

// AirportsJSON returns the raw embedded airports document.
func AirportsJSON() []byte { return airportsJSON }

// WaypointsJSON returns the raw embedded waypoints document.
func WaypointsJSON() []byte { return waypointsJSON }
