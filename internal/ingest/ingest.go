// Package ingest loads the catalog source into an immutable catalog.Table.
//
// Loading runs as ordered steps (Read, Dates, Fill, Durations), each
// reporting a StepResult. A missing source is not an error: Load returns an
// empty table and a report with Missing set.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/catalogdash/catalogdash/internal/analytics"
	"github.com/catalogdash/catalogdash/internal/catalog"
	"github.com/catalogdash/catalogdash/internal/database"
)

// Source kinds.
const (
	KindCSV     = "csv"
	KindSQLite  = "sqlite"
	KindMissing = "missing"
)

// RequiredColumns must be present in every source.
var RequiredColumns = []string{
	"show_id", "type", "country", "date_added", "duration",
	"rating", "director", "cast", "listed_in",
}

// Source describes where the catalog comes from and how to read it.
type Source struct {
	Path  string
	Units catalog.UnitTable
}

// StepResult holds the result of a single load step.
type StepResult struct {
	Name    string
	Summary string
	Err     error
}

// Report describes what a load did to the source rows.
type Report struct {
	SourcePath string
	SourceKind string
	Missing    bool

	RowsRead     int
	RowsLoaded   int
	SkippedTypes int
	Duplicates   int

	// DroppedDates lists the show_ids of rows whose date_added did not parse.
	DroppedDates      []string
	Filled            map[string]int
	UnparsedDurations int
	DataDate          string

	LoadedAt time.Time
	Steps    []StepResult
}

// working is a row between steps.
type working struct {
	title    catalog.Title
	dateText string
}

type loader struct {
	src    Source
	log    zerolog.Logger
	report *Report
	raw    []database.TitleRow
	rows   []working
}

// Load reads src and returns the cleaned table. Errors are returned only for
// sources that exist but cannot be read.
func Load(ctx context.Context, src Source, logger zerolog.Logger) (*catalog.Table, *Report, error) {
	if src.Units == nil {
		src.Units = catalog.DefaultUnits()
	}
	l := &loader{
		src: src,
		log: logger,
		report: &Report{
			SourcePath: src.Path,
			SourceKind: sourceKind(src.Path),
			Filled:     map[string]int{},
			DataDate:   analytics.NoDataDate,
			LoadedAt:   time.Now(),
		},
	}

	if _, err := os.Stat(src.Path); err != nil {
		if os.IsNotExist(err) {
			l.report.Missing = true
			l.report.SourceKind = KindMissing
			l.log.Warn().Str("path", src.Path).Msg("catalog source not found, starting with an empty table")
			return catalog.NewTable(nil), l.report, nil
		}
		return nil, l.report, fmt.Errorf("checking source: %w", err)
	}

	steps := []func(context.Context) StepResult{
		l.runRead,
		l.runDates,
		l.runFill,
		l.runDurations,
	}
	for _, run := range steps {
		if err := ctx.Err(); err != nil {
			return nil, l.report, err
		}
		step := run(ctx)
		l.report.Steps = append(l.report.Steps, step)
		if step.Err != nil {
			return nil, l.report, fmt.Errorf("%s: %w", strings.ToLower(step.Name), step.Err)
		}
		l.log.Debug().Str("step", step.Name).Msg(step.Summary)
	}

	titles := make([]catalog.Title, len(l.rows))
	for i, w := range l.rows {
		titles[i] = w.title
	}
	table := catalog.NewTable(titles)
	l.report.RowsLoaded = table.Len()
	l.report.DataDate = analytics.DataDate(table.All())

	l.log.Info().
		Str("path", src.Path).
		Str("kind", l.report.SourceKind).
		Int("rows", l.report.RowsLoaded).
		Str("data_date", l.report.DataDate).
		Msg("catalog loaded")
	return table, l.report, nil
}

func sourceKind(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return KindSQLite
	default:
		return KindCSV
	}
}

// runRead reads the raw rows and keeps those with a known category tag and a
// first-seen show_id.
func (l *loader) runRead(ctx context.Context) StepResult {
	var err error
	switch l.report.SourceKind {
	case KindSQLite:
		l.raw, err = ReadSnapshot(l.src.Path)
	default:
		l.raw, err = ReadCSV(l.src.Path)
	}
	if err != nil {
		return StepResult{Name: "Read", Err: err}
	}
	l.report.RowsRead = len(l.raw)

	seen := make(map[string]bool, len(l.raw))
	l.rows = make([]working, 0, len(l.raw))
	for _, r := range l.raw {
		typ := strings.TrimSpace(str(r.Type))
		if !catalog.IsType(typ) {
			l.report.SkippedTypes++
			continue
		}
		if seen[r.ShowID] {
			l.report.Duplicates++
			continue
		}
		seen[r.ShowID] = true

		release, _ := strconv.Atoi(strings.TrimSpace(str(r.ReleaseYear)))
		l.rows = append(l.rows, working{
			dateText: str(r.DateAdded),
			title: catalog.Title{
				ShowID:      r.ShowID,
				Type:        typ,
				Title:       str(r.Title),
				Director:    str(r.Director),
				Cast:        str(r.Cast),
				Country:     str(r.Country),
				ReleaseYear: release,
				Rating:      str(r.Rating),
				Duration:    str(r.Duration),
				ListedIn:    str(r.ListedIn),
				Description: str(r.Description),
			},
		})
	}
	l.raw = nil

	summary := fmt.Sprintf("%d rows read from %s", l.report.RowsRead, l.report.SourceKind)
	if l.report.SkippedTypes > 0 || l.report.Duplicates > 0 {
		summary += fmt.Sprintf(" (%d unknown type, %d duplicate id)", l.report.SkippedTypes, l.report.Duplicates)
	}
	return StepResult{Name: "Read", Summary: summary}
}

// runDates parses date_added and drops rows where it fails.
func (l *loader) runDates(ctx context.Context) StepResult {
	kept := l.rows[:0]
	for _, w := range l.rows {
		t, ok := ParseDate(w.dateText)
		if !ok {
			l.report.DroppedDates = append(l.report.DroppedDates, w.title.ShowID)
			continue
		}
		w.title.DateAdded = t
		w.title.YearAdded = t.Year()
		kept = append(kept, w)
	}
	l.rows = kept

	if n := len(l.report.DroppedDates); n > 0 {
		l.log.Warn().Int("rows", n).Msg("dropped rows with unparsable date_added")
		l.log.Debug().Strs("show_ids", l.report.DroppedDates).Msg("rows dropped for date_added")
	}
	return StepResult{
		Name:    "Dates",
		Summary: fmt.Sprintf("%d rows dated, %d dropped", len(l.rows), len(l.report.DroppedDates)),
	}
}

// runFill replaces missing categorical values with the Unknown sentinel.
func (l *loader) runFill(ctx context.Context) StepResult {
	total := 0
	for i := range l.rows {
		t := &l.rows[i].title
		for _, f := range []struct {
			name string
			val  *string
		}{
			{"country", &t.Country},
			{"rating", &t.Rating},
			{"director", &t.Director},
			{"cast", &t.Cast},
		} {
			if *f.val == "" {
				*f.val = catalog.Unknown
				l.report.Filled[f.name]++
				total++
			}
		}
	}
	return StepResult{Name: "Fill", Summary: fmt.Sprintf("%d missing values filled", total)}
}

// runDurations derives minutes for movies and seasons for TV shows.
func (l *loader) runDurations(ctx context.Context) StepResult {
	minutes, seasons := 0, 0
	for i := range l.rows {
		t := &l.rows[i].title
		d := l.src.Units.Parse(t.Duration)
		switch {
		case d.Kind == catalog.Minutes && t.Type == catalog.Movie:
			v := d.Value
			t.Minutes = &v
			minutes++
		case d.Kind == catalog.Seasons && t.Type == catalog.TVShow:
			v := d.Value
			t.Seasons = &v
			seasons++
		default:
			l.report.UnparsedDurations++
		}
	}
	return StepResult{
		Name:    "Durations",
		Summary: fmt.Sprintf("%d minutes, %d seasons, %d unparsed", minutes, seasons, l.report.UnparsedDurations),
	}
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
