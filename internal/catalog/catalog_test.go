package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitValues(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"India", []string{"India"}},
		{"United States, India", []string{"United States", "India"}},
		{" France ,Germany,,  ", []string{"France", "Germany"}},
	}
	for _, tt := range tests {
		got := SplitValues(tt.in)
		if len(tt.want) == 0 {
			assert.Empty(t, got, "input %q", tt.in)
			continue
		}
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestTitleValues(t *testing.T) {
	title := Title{
		Country:  "Japan, South Korea",
		Director: "A Director",
		Cast:     "One, Two, Three",
		ListedIn: "Dramas, International Movies",
	}
	assert.Equal(t, []string{"Japan", "South Korea"}, title.Values(FieldCountry))
	assert.Len(t, title.Values(FieldCast), 3)
	assert.Equal(t, "listed_in", FieldGenre.String())
	assert.Equal(t, "A Director", title.Raw(FieldDirector))
}

func TestTableViews(t *testing.T) {
	day := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []Title{
		{ShowID: "s1", Type: Movie, DateAdded: day},
		{ShowID: "s2", Type: TVShow, DateAdded: day},
		{ShowID: "s3", Type: Movie, DateAdded: day},
	}
	table := NewTable(rows)
	rows[0].ShowID = "mutated"

	require.Equal(t, 3, table.Len())
	assert.Equal(t, "s1", table.Row(0).ShowID, "table must not alias the input slice")

	movies := table.All().Where(func(t Title) bool { return t.Type == Movie })
	require.Equal(t, 2, movies.Len())
	assert.Equal(t, "s3", movies.Row(1).ShowID)

	var seen []string
	movies.Each(func(t Title) { seen = append(seen, t.ShowID) })
	assert.Equal(t, []string{"s1", "s3"}, seen)

	none := movies.Where(func(Title) bool { return false })
	assert.Equal(t, 0, none.Len())
}

func TestNilTableIsEmpty(t *testing.T) {
	var table *Table
	assert.Equal(t, 0, table.Len())
	assert.Equal(t, 0, table.All().Len())
}

func TestIsType(t *testing.T) {
	assert.True(t, IsType(Movie))
	assert.True(t, IsType("TV Show"))
	assert.False(t, IsType(All))
	assert.False(t, IsType("Documentary"))
}
