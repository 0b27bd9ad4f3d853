package analytics

import (
	"fmt"

	"github.com/catalogdash/catalogdash/internal/catalog"
)

// Interval is a time bucket granularity.
type Interval string

const (
	Month   Interval = "M"
	Quarter Interval = "Q"
	Year    Interval = "Y"
)

// TotalSeries names the unsplit trend series.
const TotalSeries = "Total"

// ParseInterval accepts M, Q or Y.
func ParseInterval(s string) (Interval, error) {
	switch i := Interval(s); i {
	case Month, Quarter, Year:
		return i, nil
	default:
		return "", fmt.Errorf("unknown interval %q", s)
	}
}

// key maps a date to a sortable bucket index.
func (i Interval) key(r catalog.Title) int {
	y, m := r.DateAdded.Year(), int(r.DateAdded.Month())
	switch i {
	case Month:
		return y*12 + m - 1
	case Quarter:
		return y*4 + (m-1)/3
	default:
		return y
	}
}

func (i Interval) label(key int) string {
	switch i {
	case Month:
		return fmt.Sprintf("%04d-%02d", key/12, key%12+1)
	case Quarter:
		return fmt.Sprintf("%04d-Q%d", key/4, key%4+1)
	default:
		return fmt.Sprintf("%04d", key)
	}
}

// Trend is a time series of counts per bucket.
type Trend struct {
	Buckets []string `json:"buckets"`
	Series  []Series `json:"series"`
	Empty   bool     `json:"empty"`
}

// TrendCount buckets rows by date_added. Buckets run without gaps from the
// first to the last populated one. With split, there is one series per
// category present; otherwise a single Total series. With cumulative, each
// series is a running sum in chronological order.
func TrendCount(v catalog.View, interval Interval, split, cumulative bool) (Trend, error) {
	if _, err := ParseInterval(string(interval)); err != nil {
		return Trend{}, err
	}
	if v.Len() == 0 {
		return Trend{Buckets: []string{}, Series: []Series{}, Empty: true}, nil
	}

	lo, hi := 0, 0
	perSeries := map[string]map[int]int{}
	first := true
	v.Each(func(r catalog.Title) {
		k := interval.key(r)
		if first || k < lo {
			lo = k
		}
		if first || k > hi {
			hi = k
		}
		first = false

		name := TotalSeries
		if split {
			name = r.Type
		}
		if perSeries[name] == nil {
			perSeries[name] = map[int]int{}
		}
		perSeries[name][k]++
	})

	t := Trend{Buckets: make([]string, 0, hi-lo+1)}
	for k := lo; k <= hi; k++ {
		t.Buckets = append(t.Buckets, interval.label(k))
	}

	names := []string{TotalSeries}
	if split {
		names = catalog.Types
	}
	for _, name := range names {
		counts, ok := perSeries[name]
		if !ok {
			continue
		}
		s := Series{Name: name, Counts: make([]int, 0, hi-lo+1)}
		running := 0
		for k := lo; k <= hi; k++ {
			n := counts[k]
			if cumulative {
				running += n
				n = running
			}
			s.Counts = append(s.Counts, n)
		}
		t.Series = append(t.Series, s)
	}
	return t, nil
}
