package analytics

import (
	"sort"
	"strconv"

	"github.com/catalogdash/catalogdash/internal/catalog"
)

// Comparison counts titles per year added for two countries.
type Comparison struct {
	Years  []string `json:"years"`
	Series []Series `json:"series"`
	Empty  bool     `json:"empty"`
}

// CountryComparison groups rows by (year added, country), keeping only
// c1 and c2. Years with no titles for either country are omitted. Empty is
// set when neither country has any title.
func CountryComparison(v catalog.View, c1, c2 string) Comparison {
	countries := []string{c1}
	if c2 != c1 {
		countries = append(countries, c2)
	}

	counts := map[string]map[int]int{}
	years := map[int]bool{}
	v.Each(func(r catalog.Title) {
		for _, c := range r.Values(catalog.FieldCountry) {
			if c != c1 && c != c2 {
				continue
			}
			if counts[c] == nil {
				counts[c] = map[int]int{}
			}
			counts[c][r.YearAdded]++
			years[r.YearAdded] = true
		}
	})

	if len(years) == 0 {
		return Comparison{Years: []string{}, Series: []Series{}, Empty: true}
	}

	sorted := make([]int, 0, len(years))
	for y := range years {
		sorted = append(sorted, y)
	}
	sort.Ints(sorted)

	out := Comparison{Years: make([]string, len(sorted))}
	for i, y := range sorted {
		out.Years[i] = strconv.Itoa(y)
	}
	for _, c := range countries {
		s := Series{Name: c, Counts: make([]int, len(sorted))}
		for i, y := range sorted {
			s.Counts[i] = counts[c][y]
		}
		out.Series = append(out.Series, s)
	}
	return out
}

// Stack is a two-dimensional count for a stacked bar chart.
type Stack struct {
	Categories []string `json:"categories"`
	Series     []Series `json:"series"`
	Empty      bool     `json:"empty"`
}

// RatingStack groups rows by (rating, type). Categories are ordered by total
// count ascending, ties by rating. One series per category tag present.
func RatingStack(v catalog.View) Stack {
	if v.Len() == 0 {
		return Stack{Categories: []string{}, Series: []Series{}, Empty: true}
	}

	totals := map[string]int{}
	byType := map[string]map[string]int{}
	v.Each(func(r catalog.Title) {
		totals[r.Rating]++
		if byType[r.Type] == nil {
			byType[r.Type] = map[string]int{}
		}
		byType[r.Type][r.Rating]++
	})

	ratings := make([]string, 0, len(totals))
	for rating := range totals {
		ratings = append(ratings, rating)
	}
	sort.Slice(ratings, func(i, j int) bool {
		if totals[ratings[i]] != totals[ratings[j]] {
			return totals[ratings[i]] < totals[ratings[j]]
		}
		return ratings[i] < ratings[j]
	})

	out := Stack{Categories: ratings}
	for _, typ := range catalog.Types {
		counts, ok := byType[typ]
		if !ok {
			continue
		}
		s := Series{Name: typ, Counts: make([]int, len(ratings))}
		for i, rating := range ratings {
			s.Counts[i] = counts[rating]
		}
		out.Series = append(out.Series, s)
	}
	return out
}
