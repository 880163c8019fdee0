package builders

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	logs "github.com/danmuck/smplog"
	"github.com/nolmscheid/ReadbackCorrect-sub001/src/avdata"
	"github.com/nolmscheid/ReadbackCorrect-sub001/src/seed_data"
)

// FAAWaypointURLTemplate queries the FAA ArcGIS Designated_Points layer.
// The server caps per-request size, so fetches paginate by IDENT order.
const FAAWaypointURLTemplate = "https://services6.arcgis.com/ssFJjBXIUyZDrSYZ/arcgis/rest/services/Designated_Points/FeatureServer/0/query" +
	"?where=1%%3D1&outFields=IDENT,NAME&returnGeometry=false&f=json&orderByFields=IDENT&resultRecordCount=%d&resultOffset=%d"

// WaypointPageSize is the per-request record cap used for pagination.
const WaypointPageSize = 1000

// CSVWaypointSource reads waypoints from a local CSV export. Tier 1.
type CSVWaypointSource struct {
	Path string
}

func (s CSVWaypointSource) Name() string { return "local-csv" }

func (s CSVWaypointSource) Fetch(_ context.Context) ([]avdata.WaypointRecord, error) {
	table, err := readCSVTable(s.Path)
	if err != nil {
		return nil, err
	}

	idCol := table.column("IDENT", "id", "Id", "IDENTIFIER")
	if idCol < 0 {
		return nil, fmt.Errorf("%s: no identifier column found", s.Path)
	}
	nameCol := table.column("NAME", "name", "Name")

	var records []avdata.WaypointRecord
	for _, row := range table.rows {
		id := avdata.NormalizeWaypointID(table.field(row, idCol))
		if id == "" {
			continue
		}
		records = append(records, avdata.WaypointRecord{
			ID:   id,
			Name: table.field(row, nameCol),
		})
	}
	return records, nil
}

// FAAWaypointSource fetches the Designated_Points layer page by page.
// Tier 2. A failure on the first page fails the source; a failure
// mid-pagination keeps the pages already fetched.
type FAAWaypointSource struct {
	URLTemplate string // fmt template taking (pageSize, offset); "" uses the FAA layer
	PageSize    int
	Client      *http.Client
}

func (s FAAWaypointSource) Name() string { return "faa-designated-points-api" }

func (s FAAWaypointSource) Fetch(ctx context.Context) ([]avdata.WaypointRecord, error) {
	template := s.URLTemplate
	if template == "" {
		template = FAAWaypointURLTemplate
	}
	pageSize := s.PageSize
	if pageSize <= 0 {
		pageSize = WaypointPageSize
	}

	var records []avdata.WaypointRecord
	seen := make(map[string]bool)
	offset := 0
	for {
		url := fmt.Sprintf(template, pageSize, offset)
		features, err := fetchArcGIS(ctx, s.Client, url)
		if err != nil {
			if offset == 0 {
				return nil, err
			}
			logs.Warnf("waypoint pagination stopped at offset %d: %v", offset, err)
			break
		}
		for _, f := range features {
			id := avdata.NormalizeWaypointID(f.attr("IDENT", "ident"))
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			records = append(records, avdata.WaypointRecord{
				ID:   id,
				Name: f.attr("NAME", "name"),
			})
		}
		if len(features) < pageSize {
			break
		}
		offset += pageSize
		logs.Debugf("fetched %d waypoints so far", len(records))
	}
	return records, nil
}

// SeedWaypointSource serves the embedded seed waypoints. Tier 3.
type SeedWaypointSource struct{}

func (SeedWaypointSource) Name() string { return "embedded-fallback" }

func (SeedWaypointSource) Fetch(_ context.Context) ([]avdata.WaypointRecord, error) {
	return seed_data.Waypoints()
}

// WaypointChain assembles the ordered waypoint sources for the given
// build options.
func WaypointChain(opts BuildOptions) []Source[avdata.WaypointRecord] {
	var sources []Source[avdata.WaypointRecord]
	if opts.InputPath != "" {
		sources = append(sources, CSVWaypointSource{Path: opts.InputPath})
	}
	if !opts.NoNetwork {
		sources = append(sources, FAAWaypointSource{Client: opts.Client})
	}
	sources = append(sources, SeedWaypointSource{})
	return sources
}

// BuildWaypoints resolves the waypoint chain and writes waypoints.json
// into the output directory.
func BuildWaypoints(ctx context.Context, opts BuildOptions) (BuildResult, error) {
	records, tier, err := Resolve(ctx, avdata.NameWaypoints, WaypointChain(opts))
	if err != nil {
		return BuildResult{}, err
	}

	byID := make(map[string]avdata.WaypointRecord, len(records))
	ids := make([]string, 0, len(records))
	for _, r := range records {
		if _, ok := byID[r.ID]; ok {
			continue
		}
		byID[r.ID] = r
		ids = append(ids, r.ID)
	}
	sort.Strings(ids)

	out := make([]avdata.WaypointRecord, len(ids))
	for i, id := range ids {
		out[i] = byID[id]
	}
	return writeDataset(avdata.NameWaypoints, opts.OutputDir, tier, out)
}
