package builders

import (
	"encoding/csv"
	"fmt"
	"os"
)

// csvTable is a header-indexed view of a local CSV export. FAA NASR and
// ArcGIS exports disagree on column naming, so lookups go through alias
// lists.
type csvTable struct {
	header map[string]int
	rows   [][]string
}

func readCSVTable(path string) (*csvTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return &csvTable{header: map[string]int{}}, nil
	}

	header := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		header[col] = i
	}
	return &csvTable{header: header, rows: records[1:]}, nil
}

// column returns the index of the first alias present in the header,
// or -1 when none match.
func (t *csvTable) column(aliases ...string) int {
	for _, a := range aliases {
		if i, ok := t.header[a]; ok {
			return i
		}
	}
	return -1
}

func (t *csvTable) field(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
