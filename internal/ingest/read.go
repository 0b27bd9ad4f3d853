package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/catalogdash/catalogdash/internal/database"
)

// MissingValues are the cell texts read as missing. It is the usual
// dataframe NA set, so "NaN" or "N/A" in any column is treated as absent.
var MissingValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// ReadCSV reads every row of a catalog CSV export. All columns are kept as
// text; cells in MissingValues come back as nil. Rows shorter than the header
// are padded with missing cells. A header with no rows yields no rows.
func ReadCSV(path string) ([]database.TitleRow, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}

	header := make(map[string]bool, len(records[0]))
	for _, name := range records[0] {
		header[strings.TrimSpace(name)] = true
	}
	if missing := missingColumns(header); len(missing) > 0 {
		return nil, fmt.Errorf("%s: missing required columns: %s", path, strings.Join(missing, ", "))
	}
	if len(records) == 1 {
		return []database.TitleRow{}, nil
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(MissingValues),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, df.Err)
	}

	cols := make(map[string]series.Series, df.Ncol())
	for _, name := range df.Names() {
		cols[strings.TrimSpace(name)] = df.Col(name)
	}

	cell := func(name string, i int) *string {
		col, ok := cols[name]
		if !ok {
			return nil
		}
		e := col.Elem(i)
		if e.IsNA() {
			return nil
		}
		s := e.String()
		return &s
	}

	rows := make([]database.TitleRow, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		rows = append(rows, database.TitleRow{
			ShowID:      strings.TrimSpace(str(cell("show_id", i))),
			Type:        cell("type", i),
			Title:       cell("title", i),
			Director:    cell("director", i),
			Cast:        cell("cast", i),
			Country:     cell("country", i),
			DateAdded:   cell("date_added", i),
			ReleaseYear: cell("release_year", i),
			Rating:      cell("rating", i),
			Duration:    cell("duration", i),
			ListedIn:    cell("listed_in", i),
			Description: cell("description", i),
		})
	}
	return rows, nil
}

// readRecords reads the raw CSV records, header first. Short rows are padded
// to the header width; long rows are an error.
func readRecords(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: no header row", path)
	}

	width := len(records[0])
	for i := 1; i < len(records); i++ {
		switch n := len(records[i]); {
		case n > width:
			return nil, fmt.Errorf("%s: line %d has %d fields, header has %d", path, i+1, n, width)
		case n < width:
			padded := make([]string, width)
			copy(padded, records[i])
			records[i] = padded
		}
	}
	return records, nil
}

// ReadSnapshot reads every row from a SQLite snapshot written by Import.
func ReadSnapshot(path string) ([]database.TitleRow, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.GetTitles()
	if err != nil {
		return nil, fmt.Errorf("reading titles: %w", err)
	}
	return rows, nil
}

// Import copies a CSV export into a SQLite snapshot and returns the number of
// rows written.
func Import(csvPath, dbPath string) (int, error) {
	rows, err := ReadCSV(csvPath)
	if err != nil {
		return 0, err
	}

	db, err := database.Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	n, err := db.ReplaceTitles(csvPath, rows)
	if err != nil {
		return 0, fmt.Errorf("writing snapshot: %w", err)
	}
	return n, nil
}

// ParseDate parses a date_added value in any of the formats found in catalog
// exports ("September 25, 2021", "2021-09-25", ...). Times are UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func missingColumns(header map[string]bool) []string {
	var missing []string
	for _, name := range RequiredColumns {
		if !header[name] {
			missing = append(missing, name)
		}
	}
	return missing
}
