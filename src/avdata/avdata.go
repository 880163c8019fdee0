// Package avdata holds the shared data model for the ReadBack aviation
// reference datasets: the manifest document, the three dataset kinds, and
// the structural validation both the client and the build pipeline rely on.
package avdata

import (
	"regexp"
	"strings"
)

// Logical dataset names. The manifest must map every one of these to a
// relative file path; unknown extra names are carried along untouched.
const (
	NameAirports      = "airports"
	NameVictorAirways = "victor_airways"
	NameWaypoints     = "waypoints"

	ManifestFileName = "aviation_manifest.json"
)

// RequiredNames lists the logical names every manifest must contain,
// in canonical order.
var RequiredNames = []string{NameAirports, NameVictorAirways, NameWaypoints}

// AirportRecord is one airport entry. Only ID is mandatory; upstream FAA
// exports leave name, city and state null for private strips.
type AirportRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`
}

// WaypointRecord is one designated point (fix/waypoint) entry.
type WaypointRecord struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

var waypointIDPattern = regexp.MustCompile(`^[A-Z0-9]{2,5}$`)

// NormalizeAirportID trims and uppercases s and returns it if it is a
// plausible airport identifier (2-4 characters), else "".
func NormalizeAirportID(s string) string {
	t := strings.ToUpper(strings.TrimSpace(s))
	if len(t) < 2 || len(t) > 4 {
		return ""
	}
	return t
}

// NormalizeWaypointID trims and uppercases s and returns it if it is a
// valid designated-point identifier (2-5 alphanumerics), else "".
func NormalizeWaypointID(s string) string {
	t := strings.ToUpper(strings.TrimSpace(s))
	if !waypointIDPattern.MatchString(t) {
		return ""
	}
	return t
}
