package seed_data

import (
	"testing"

	"github.com/nolmscheid/ReadbackCorrect-sub001/src/avdata"
)

func TestSeedAirportsDecode(t *testing.T) {
	records, err := Airports()
	if err != nil {
		t.Fatalf("embedded airports must decode: %v", err)
	}
	if len(records) == 0 {
		t.Fatal("embedded airports are empty")
	}
	for _, r := range records {
		if avdata.NormalizeAirportID(r.ID) != r.ID {
			t.Errorf("seed airport %q is not in normalized form", r.ID)
		}
	}
}

func TestSeedWaypointsDecode(t *testing.T) {
	records, err := Waypoints()
	if err != nil {
		t.Fatalf("embedded waypoints must decode: %v", err)
	}
	if len(records) == 0 {
		t.Fatal("embedded waypoints are empty")
	}
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if avdata.NormalizeWaypointID(r.ID) != r.ID {
			t.Errorf("seed waypoint %q is not in normalized form", r.ID)
		}
		if seen[r.ID] {
			t.Errorf("duplicate seed waypoint %q", r.ID)
		}
		seen[r.ID] = true
	}
}

func TestVictorAirwaysRange(t *testing.T) {
	airways := VictorAirways()
	if len(airways) != VictorAirwayCount {
		t.Fatalf("got %d airways, want %d", len(airways), VictorAirwayCount)
	}
	if airways[0] != "1" || airways[VictorAirwayCount-1] != "500" {
		t.Errorf("range = %q..%q, want 1..500", airways[0], airways[len(airways)-1])
	}
}
