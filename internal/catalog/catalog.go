// Package catalog holds the in-memory catalog table the dashboard reads from.
//
// A Table is built once by the loader and never mutated afterwards. Every
// aggregation works on a View, which is an ordered subset of a Table's rows.
package catalog

import (
	"strings"
	"time"
)

// Unknown replaces missing country, rating, director and cast values.
const Unknown = "Unknown"

// Category tags. All is the wildcard accepted by filters.
const (
	All    = "All"
	Movie  = "Movie"
	TVShow = "TV Show"
)

// Types lists the category tags in display order.
var Types = []string{Movie, TVShow}

// IsType reports whether s is one of the two known category tags.
func IsType(s string) bool {
	return s == Movie || s == TVShow
}

// Title is one cleaned catalog record.
type Title struct {
	ShowID      string
	Type        string
	Title       string
	Director    string
	Cast        string
	Country     string
	DateAdded   time.Time
	YearAdded   int
	ReleaseYear int
	Rating      string
	Duration    string
	ListedIn    string
	Description string

	// Minutes is set only for movies, Seasons only for TV shows.
	Minutes *int
	Seasons *int
}

// Field names a multi-valued, comma-separated column.
type Field int

const (
	FieldCountry Field = iota
	FieldDirector
	FieldCast
	FieldGenre
)

func (f Field) String() string {
	switch f {
	case FieldCountry:
		return "country"
	case FieldDirector:
		return "director"
	case FieldCast:
		return "cast"
	case FieldGenre:
		return "listed_in"
	default:
		return "unknown"
	}
}

// Raw returns the unsplit column text for f.
func (t Title) Raw(f Field) string {
	switch f {
	case FieldCountry:
		return t.Country
	case FieldDirector:
		return t.Director
	case FieldCast:
		return t.Cast
	case FieldGenre:
		return t.ListedIn
	default:
		return ""
	}
}

// Values splits the column f into its individual values.
func (t Title) Values(f Field) []string {
	return SplitValues(t.Raw(f))
}

// SplitValues splits a comma-separated list, trimming whitespace around each
// value and skipping empty ones.
func SplitValues(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
