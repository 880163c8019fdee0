package builders

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/nolmscheid/ReadbackCorrect-sub001/src/avdata"
	"github.com/nolmscheid/ReadbackCorrect-sub001/src/seed_data"
)

// FAAAirportURL queries the FAA ArcGIS US_Airport layer for every airport
// identifier with its name, serviced city and state.
const FAAAirportURL = "https://services6.arcgis.com/ssFJjBXIUyZDrSYZ/arcgis/rest/services/US_Airport/FeatureServer/0/query" +
	"?where=1%3D1&outFields=IDENT,NAME,SERVCITY,STATE&returnGeometry=false&f=json&resultRecordCount=25000"

// CSVAirportSource reads airports from a local NASR/ArcGIS CSV export.
// Tier 1 of the airports chain.
type CSVAirportSource struct {
	Path string
}

func (s CSVAirportSource) Name() string { return "local-csv" }

func (s CSVAirportSource) Fetch(_ context.Context) ([]avdata.AirportRecord, error) {
	table, err := readCSVTable(s.Path)
	if err != nil {
		return nil, err
	}

	idCol := table.column("IDENT", "id", "Id", "LOCID", "IDENTIFIER")
	if idCol < 0 {
		return nil, fmt.Errorf("%s: no identifier column found", s.Path)
	}
	nameCol := table.column("NAME", "name", "Name")
	cityCol := table.column("SERVCITY", "city", "City", "CITY")
	stateCol := table.column("STATE", "state", "State")

	var records []avdata.AirportRecord
	for _, row := range table.rows {
		id := avdata.NormalizeAirportID(table.field(row, idCol))
		if id == "" {
			continue
		}
		records = append(records, avdata.AirportRecord{
			ID:    id,
			Name:  table.field(row, nameCol),
			City:  table.field(row, cityCol),
			State: table.field(row, stateCol),
		})
	}
	return records, nil
}

// FAAAirportSource fetches the US_Airport layer. Tier 2.
type FAAAirportSource struct {
	URL    string
	Client *http.Client
}

func (s FAAAirportSource) Name() string { return "faa-us-airport-api" }

func (s FAAAirportSource) Fetch(ctx context.Context) ([]avdata.AirportRecord, error) {
	url := s.URL
	if url == "" {
		url = FAAAirportURL
	}
	features, err := fetchArcGIS(ctx, s.Client, url)
	if err != nil {
		return nil, err
	}

	var records []avdata.AirportRecord
	seen := make(map[string]bool)
	for _, f := range features {
		id := avdata.NormalizeAirportID(f.attr("IDENT", "ident"))
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		records = append(records, avdata.AirportRecord{
			ID:    id,
			Name:  f.attr("NAME", "name"),
			City:  f.attr("SERVCITY", "city"),
			State: f.attr("STATE", "state"),
		})
	}
	return records, nil
}

// SeedAirportSource serves the embedded seed airports. Tier 3; cannot
// fail, which keeps chain exhaustion unreachable.
type SeedAirportSource struct{}

func (SeedAirportSource) Name() string { return "embedded-fallback" }

func (SeedAirportSource) Fetch(_ context.Context) ([]avdata.AirportRecord, error) {
	return seed_data.Airports()
}

// AirportChain assembles the ordered airport sources for the given build
// options.
func AirportChain(opts BuildOptions) []Source[avdata.AirportRecord] {
	var sources []Source[avdata.AirportRecord]
	if opts.InputPath != "" {
		sources = append(sources, CSVAirportSource{Path: opts.InputPath})
	}
	if !opts.NoNetwork {
		sources = append(sources, FAAAirportSource{Client: opts.Client})
	}
	sources = append(sources, SeedAirportSource{})
	return sources
}

// BuildAirports resolves the airport chain and writes airports.json into
// the output directory.
func BuildAirports(ctx context.Context, opts BuildOptions) (BuildResult, error) {
	records, tier, err := Resolve(ctx, avdata.NameAirports, AirportChain(opts))
	if err != nil {
		return BuildResult{}, err
	}

	byID := make(map[string]avdata.AirportRecord, len(records))
	ids := make([]string, 0, len(records))
	for _, r := range records {
		if _, ok := byID[r.ID]; ok {
			continue
		}
		byID[r.ID] = r
		ids = append(ids, r.ID)
	}
	sort.Strings(ids)

	out := make([]avdata.AirportRecord, len(ids))
	for i, id := range ids {
		out[i] = byID[id]
	}
	return writeDataset(avdata.NameAirports, opts.OutputDir, tier, out)
}
