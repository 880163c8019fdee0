package builders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/nolmscheid/ReadbackCorrect-sub001/src/avdata"
	"github.com/nolmscheid/ReadbackCorrect-sub001/src/seed_data"
)

func writeTempFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestCSVAirportSource(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want int
	}{
		{
			name: "nasr column names",
			csv:  "IDENT,NAME,SERVCITY,STATE\nKMSP,Minneapolis-St Paul Intl,Minneapolis,MN\nKSTP,St Paul Downtown,St Paul,MN\n",
			want: 2,
		},
		{
			name: "lowercase aliases",
			csv:  "id,name,city,state\nkmsp,Minneapolis-St Paul Intl,Minneapolis,MN\n",
			want: 1,
		},
		{
			name: "rows with bad identifiers are skipped",
			csv:  "IDENT,NAME\nKMSP,Minneapolis\nX,too short\nTOOLONG,too long\n,empty\n",
			want: 1,
		},
		{
			name: "short rows tolerated",
			csv:  "IDENT,NAME,SERVCITY,STATE\nKMSP\nKSTP,St Paul Downtown\n",
			want: 2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := CSVAirportSource{Path: writeTempFile(t, "airports.csv", tc.csv)}
			records, err := src.Fetch(context.Background())
			if err != nil {
				t.Fatalf("Fetch failed: %v", err)
			}
			if len(records) != tc.want {
				t.Errorf("got %d records, want %d: %+v", len(records), tc.want, records)
			}
			for _, r := range records {
				if r.ID != avdata.NormalizeAirportID(r.ID) {
					t.Errorf("identifier %q not normalized", r.ID)
				}
			}
		})
	}
}

func TestCSVAirportSourceMissingIdentColumn(t *testing.T) {
	src := CSVAirportSource{Path: writeTempFile(t, "airports.csv", "NAME,STATE\nsomewhere,MN\n")}
	if _, err := src.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for missing identifier column")
	}
}

func TestFAAAirportSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"features": []map[string]any{
				{"attributes": map[string]any{"IDENT": "KMSP", "NAME": "Minneapolis-St Paul Intl", "SERVCITY": "Minneapolis", "STATE": "MN"}},
				{"attributes": map[string]any{"IDENT": "KMSP", "NAME": "duplicate row"}},
				{"attributes": map[string]any{"IDENT": "x", "NAME": "bad ident"}},
				{"attributes": map[string]any{"IDENT": "KSTP", "NAME": "St Paul Downtown", "STATE": "MN"}},
			},
		})
	}))
	defer server.Close()

	src := FAAAirportSource{URL: server.URL}
	records, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2: %+v", len(records), records)
	}
	if records[0].ID != "KMSP" || records[0].State != "MN" {
		t.Errorf("unexpected first record: %+v", records[0])
	}
}

func TestAirportChainFallsBackToSeed(t *testing.T) {
	// A server that is already closed stands in for an unreachable API.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	chain := []Source[avdata.AirportRecord]{
		FAAAirportSource{URL: server.URL},
		SeedAirportSource{},
	}
	records, tier, err := Resolve(context.Background(), avdata.NameAirports, chain)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if tier != "embedded-fallback" {
		t.Errorf("tier = %q, want embedded-fallback", tier)
	}

	seeds, err := seed_data.Airports()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != len(seeds) {
		t.Errorf("got %d records, want the %d seed records exactly", len(records), len(seeds))
	}
}

func TestBuildAirportsFromLocalInput(t *testing.T) {
	input := writeTempFile(t, "airports.csv",
		"IDENT,NAME,SERVCITY,STATE\nKSTP,St Paul Downtown,St Paul,MN\nKMSP,Minneapolis-St Paul Intl,Minneapolis,MN\nKMSP,duplicate,x,y\n")
	outDir := t.TempDir()

	result, err := BuildAirports(context.Background(), BuildOptions{
		InputPath: input,
		OutputDir: outDir,
		NoNetwork: true,
	})
	if err != nil {
		t.Fatalf("BuildAirports failed: %v", err)
	}
	if result.Tier != "local-csv" {
		t.Errorf("tier = %q, want local-csv", result.Tier)
	}
	if result.Count != 2 {
		t.Errorf("count = %d, want 2 after dedupe", result.Count)
	}

	data, err := os.ReadFile(result.OutputPath)
	if err != nil {
		t.Fatalf("output unreadable: %v", err)
	}
	records, err := avdata.DecodeAirports(data)
	if err != nil {
		t.Fatalf("output is not a valid airport dataset: %v", err)
	}
	// Deterministic order: sorted by identifier, first occurrence wins.
	if records[0].ID != "KMSP" || records[0].Name != "Minneapolis-St Paul Intl" {
		t.Errorf("unexpected first record: %+v", records[0])
	}
	if records[1].ID != "KSTP" {
		t.Errorf("unexpected second record: %+v", records[1])
	}
}

func TestBuildAirportsOfflineUsesSeed(t *testing.T) {
	result, err := BuildAirports(context.Background(), BuildOptions{
		OutputDir: t.TempDir(),
		NoNetwork: true,
	})
	if err != nil {
		t.Fatalf("BuildAirports failed: %v", err)
	}
	if result.Tier != "embedded-fallback" {
		t.Errorf("tier = %q, want embedded-fallback", result.Tier)
	}
	if result.Count == 0 {
		t.Error("seed build produced no records")
	}
}
