package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogdash/catalogdash/internal/catalog"
)

func TestDurationBucketsExample(t *testing.T) {
	table := catalog.NewTable([]catalog.Title{
		movie("a", day(2020, time.May, 1), 90),
		movie("b", day(2020, time.May, 2), 145),
	})
	got := DurationBuckets(table.All())

	assert.False(t, got.Empty)
	assert.Equal(t, []Count{
		{Label: "< 90 min", Count: 0},
		{Label: "90-119 min", Count: 1},
		{Label: "120-149 min", Count: 1},
		{Label: "150+ min", Count: 0},
	}, got.Counts)
}

func TestDurationBucketsBoundaries(t *testing.T) {
	var rows []catalog.Title
	for i, m := range []int{0, 89, 90, 119, 120, 149, 150, 312} {
		rows = append(rows, movie(string(rune('a'+i)), day(2020, time.May, 1), m))
	}
	got := DurationBuckets(catalog.NewTable(rows).All())
	for _, c := range got.Counts {
		assert.Equal(t, 2, c.Count, c.Label)
	}
}

func TestDurationBucketsAlwaysFour(t *testing.T) {
	got := DurationBuckets(FilterByType(sampleTable(), catalog.TVShow))
	require.Len(t, got.Counts, 4)
	assert.True(t, got.Empty)
	for i, c := range got.Counts {
		assert.Equal(t, DurationLabels[i], c.Label)
		assert.Zero(t, c.Count)
	}
}

func TestSeasonBuckets(t *testing.T) {
	table := catalog.NewTable([]catalog.Title{
		show("a", day(2020, time.May, 1), 1),
		show("b", day(2020, time.May, 1), 1),
		show("c", day(2020, time.May, 1), 4),
		show("d", day(2020, time.May, 1), 5),
		show("e", day(2020, time.May, 1), 17),
		movie("f", day(2020, time.May, 1), 100),
	})
	got := SeasonBuckets(table.All())

	assert.False(t, got.Empty)
	assert.Equal(t, []Count{
		{Label: "1", Count: 2},
		{Label: "2", Count: 0},
		{Label: "3", Count: 0},
		{Label: "4", Count: 1},
		{Label: "5+", Count: 2},
	}, got.Counts)
}

func TestSeasonBucketsEmpty(t *testing.T) {
	got := SeasonBuckets(catalog.NewTable(nil).All())
	assert.True(t, got.Empty)
	assert.Len(t, got.Counts, 5)
}
