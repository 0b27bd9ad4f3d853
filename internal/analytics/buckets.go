package analytics

import "github.com/catalogdash/catalogdash/internal/catalog"

// Duration bucket labels, in display order.
var DurationLabels = []string{"< 90 min", "90-119 min", "120-149 min", "150+ min"}

// Season bucket labels, in display order.
var SeasonLabels = []string{"1", "2", "3", "4", "5+"}

// Buckets is a fixed-order histogram.
type Buckets struct {
	Counts []Count `json:"counts"`
	Empty  bool    `json:"empty"`
}

func newBuckets(labels []string) Buckets {
	b := Buckets{Counts: make([]Count, len(labels)), Empty: true}
	for i, l := range labels {
		b.Counts[i].Label = l
	}
	return b
}

// DurationBuckets bins the minutes of movie rows into the four
// DurationLabels ranges: [0,90), [90,120), [120,150), [150,inf).
func DurationBuckets(v catalog.View) Buckets {
	b := newBuckets(DurationLabels)
	v.Each(func(r catalog.Title) {
		if r.Type != catalog.Movie || r.Minutes == nil {
			return
		}
		var i int
		switch m := *r.Minutes; {
		case m < 90:
			i = 0
		case m < 120:
			i = 1
		case m < 150:
			i = 2
		default:
			i = 3
		}
		b.Counts[i].Count++
		b.Empty = false
	})
	return b
}

// SeasonBuckets bins the season counts of TV show rows into 1, 2, 3, 4 and 5+.
func SeasonBuckets(v catalog.View) Buckets {
	b := newBuckets(SeasonLabels)
	v.Each(func(r catalog.Title) {
		if r.Type != catalog.TVShow || r.Seasons == nil {
			return
		}
		i := *r.Seasons - 1
		if i < 0 {
			return
		}
		if i > 4 {
			i = 4
		}
		b.Counts[i].Count++
		b.Empty = false
	})
	return b
}
