package ingest

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/catalogdash/catalogdash/internal/database"
)

func TestReadCSVKeepsMissingAsNil(t *testing.T) {
	rows, err := ReadCSV(writeCSV(t, sampleCSV))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(rows))
	}
	if rows[0].Cast != nil {
		t.Errorf("expected nil cast for empty cell, got %q", *rows[0].Cast)
	}
	if rows[0].Director == nil || *rows[0].Director != "Kirsten Johnson" {
		t.Errorf("unexpected director %v", rows[0].Director)
	}
	if rows[1].ShowID != "s2" {
		t.Errorf("expected show_id s2, got %q", rows[1].ShowID)
	}
}

func TestImportThenLoadSnapshot(t *testing.T) {
	csvPath := writeCSV(t, sampleCSV)
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	n, err := Import(csvPath, dbPath)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 5 {
		t.Errorf("expected 5 rows written (duplicate skipped), got %d", n)
	}

	fromCSV, _ := loadSample(t, csvPath)
	fromDB, report, err := Load(context.Background(), Source{Path: dbPath}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Load snapshot: %v", err)
	}
	if report.SourceKind != KindSQLite {
		t.Errorf("expected sqlite source, got %q", report.SourceKind)
	}
	if got, want := strings.Join(ids(fromDB), ","), strings.Join(ids(fromCSV), ","); got != want {
		t.Fatalf("expected rows %s from snapshot, got %s", want, got)
	}
	for i := 0; i < fromCSV.Len(); i++ {
		a, b := fromCSV.Row(i), fromDB.Row(i)
		if a.Cast != b.Cast || a.Rating != b.Rating || !a.DateAdded.Equal(b.DateAdded) || a.ListedIn != b.ListedIn {
			t.Errorf("row %d differs: %+v vs %+v", i, a, b)
		}
	}

	db, err := database.Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()
	imp, err := db.GetLastImport()
	if err != nil || imp == nil {
		t.Fatalf("expected recorded import, got %v, %v", imp, err)
	}
	if imp.SourcePath != csvPath || imp.RowCount != 5 {
		t.Errorf("unexpected import record %+v", imp)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"September 25, 2021", "2021-09-25", true},
		{" August 4, 2017", "2017-08-04", true},
		{"2019-11-01", "2019-11-01", true},
		{"", "", false},
		{"   ", "", false},
		{"unknown", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseDate(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseDate(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && got.Format("2006-01-02") != tt.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tt.in, got.Format("2006-01-02"), tt.want)
		}
	}
}

func TestReadCSVPadsShortRows(t *testing.T) {
	csv := `show_id,type,title,director,cast,country,date_added,release_year,rating,duration,listed_in,description
s1,Movie,Short Row,Jane Doe,,Spain,"May 1, 2020",2020,PG,90 min
`
	rows, err := ReadCSV(writeCSV(t, csv))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].ListedIn != nil || rows[0].Description != nil {
		t.Errorf("expected trailing cells missing, got %v / %v", rows[0].ListedIn, rows[0].Description)
	}
	if rows[0].Duration == nil || *rows[0].Duration != "90 min" {
		t.Errorf("unexpected duration %v", rows[0].Duration)
	}
}

func TestReadCSVRejectsLongRows(t *testing.T) {
	csv := "show_id,type,country,date_added,duration,rating,director,cast,listed_in\n" +
		"s1,Movie,Spain,2020-05-01,90 min,PG,,,Dramas,extra\n"
	if _, err := ReadCSV(writeCSV(t, csv)); err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected error naming line 2, got %v", err)
	}
}

func TestReadCSVEmptyFile(t *testing.T) {
	if _, err := ReadCSV(writeCSV(t, "")); err == nil {
		t.Error("expected error for a file without a header")
	}
}
