// Package analytics holds the pure aggregation functions behind every chart.
//
// Every function reads a catalog.View and returns a freshly built result;
// nothing is cached and nothing is shared, so calls may run concurrently.
// An empty view always yields a valid result, with Empty set where the
// result type carries the marker.
package analytics

import (
	"fmt"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/catalogdash/catalogdash/internal/catalog"
)

// NoDataDate is reported when the table has no rows.
const NoDataDate = "N/A"

// Count is one labelled count.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Series is a named sequence of counts aligned with the buckets of its result.
type Series struct {
	Name   string `json:"name"`
	Counts []int  `json:"counts"`
}

// FilterByType selects rows of the given category, or every row for All.
func FilterByType(t *catalog.Table, tag string) catalog.View {
	all := t.All()
	if tag == catalog.All || tag == "" {
		return all
	}
	return all.Where(func(r catalog.Title) bool { return r.Type == tag })
}

// ExplodeCount splits field on commas and counts each value, skipping the
// Unknown sentinel. Results are ordered by count descending, then label. A
// positive topN truncates the result.
func ExplodeCount(v catalog.View, field catalog.Field, topN int) []Count {
	counts := map[string]int{}
	v.Each(func(r catalog.Title) {
		for _, val := range r.Values(field) {
			if val == catalog.Unknown {
				continue
			}
			counts[val]++
		}
	})
	out := sortedCounts(counts)
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

func sortedCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for label, n := range m {
		out = append(out, Count{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// MonthCount counts rows by the calendar month they were added, largest
// first. Ties keep calendar order.
func MonthCount(v catalog.View) []Count {
	var byMonth [12]int
	v.Each(func(r catalog.Title) {
		byMonth[r.DateAdded.Month()-1]++
	})
	out := make([]Count, 0, 12)
	for i, n := range byMonth {
		if n > 0 {
			out = append(out, Count{Label: time.Month(i + 1).String(), Count: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// Countries returns the distinct countries of the table, without the Unknown
// sentinel, in English collation order.
func Countries(v catalog.View) []string {
	seen := map[string]bool{}
	v.Each(func(r catalog.Title) {
		for _, c := range r.Values(catalog.FieldCountry) {
			if c != catalog.Unknown {
				seen[c] = true
			}
		}
	})
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	collate.New(language.English).SortStrings(out)
	return out
}

// DataDate returns the latest date_added as YYYY-MM-DD.
func DataDate(v catalog.View) string {
	var latest time.Time
	v.Each(func(r catalog.Title) {
		if r.DateAdded.After(latest) {
			latest = r.DateAdded
		}
	})
	if latest.IsZero() {
		return NoDataDate
	}
	return latest.Format("2006-01-02")
}

// KPI holds the three headline numbers.
type KPI struct {
	Total     int    `json:"total"`
	MoviePerc string `json:"movie_perc"`
	TVPerc    string `json:"tv_perc"`
}

// Summarize counts the rows matching tag. The category shares are computed
// over the whole table and only reported for All.
func Summarize(t *catalog.Table, tag string) KPI {
	k := KPI{Total: FilterByType(t, tag).Len(), MoviePerc: "-", TVPerc: "-"}
	if tag != catalog.All || t.Len() == 0 {
		return k
	}
	movies := FilterByType(t, catalog.Movie).Len()
	shows := FilterByType(t, catalog.TVShow).Len()
	k.MoviePerc = percent(movies, t.Len())
	k.TVPerc = percent(shows, t.Len())
	return k
}

func percent(n, total int) string {
	return fmt.Sprintf("%.1f%%", float64(n)/float64(total)*100)
}
