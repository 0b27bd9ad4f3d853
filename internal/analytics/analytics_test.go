package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogdash/catalogdash/internal/catalog"
)

func intp(n int) *int { return &n }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func movie(id string, added time.Time, minutes int) catalog.Title {
	return catalog.Title{
		ShowID: id, Type: catalog.Movie, DateAdded: added, YearAdded: added.Year(),
		Country: catalog.Unknown, Director: catalog.Unknown, Cast: catalog.Unknown, Rating: "PG",
		Minutes: intp(minutes),
	}
}

func show(id string, added time.Time, seasons int) catalog.Title {
	return catalog.Title{
		ShowID: id, Type: catalog.TVShow, DateAdded: added, YearAdded: added.Year(),
		Country: catalog.Unknown, Director: catalog.Unknown, Cast: catalog.Unknown, Rating: "TV-MA",
		Seasons: intp(seasons),
	}
}

func sampleTable() *catalog.Table {
	m1 := movie("s1", day(2019, time.January, 5), 95)
	m1.Country = "United States, India"
	m1.Director = "Rajiv Chilaka"
	m1.ListedIn = "Dramas, International Movies"
	m2 := movie("s2", day(2019, time.March, 1), 150)
	m2.Country = "India"
	m2.Director = "Rajiv Chilaka, Suhas Kadav"
	m2.ListedIn = "Dramas"
	m3 := movie("s3", day(2021, time.September, 25), 60)
	m3.Country = "United States"
	m3.Cast = "Unknown, Ama Qamata"
	m3.ListedIn = "Documentaries"
	s1 := show("s4", day(2020, time.January, 10), 2)
	s1.Country = "South Africa"
	s1.ListedIn = "International TV Shows, TV Dramas"
	s2 := show("s5", day(2021, time.September, 24), 7)
	s2.Country = "India"
	s2.Rating = "PG"
	return catalog.NewTable([]catalog.Title{m1, m2, m3, s1, s2})
}

func TestFilterByType(t *testing.T) {
	table := sampleTable()
	assert.Equal(t, 5, FilterByType(table, catalog.All).Len())
	assert.Equal(t, 3, FilterByType(table, catalog.Movie).Len())
	assert.Equal(t, 2, FilterByType(table, catalog.TVShow).Len())
	assert.Equal(t, 0, FilterByType(table, "Documentary").Len())
}

func TestExplodeCount(t *testing.T) {
	table := sampleTable()
	got := ExplodeCount(table.All(), catalog.FieldCountry, 0)
	want := []Count{
		{Label: "India", Count: 3},
		{Label: "United States", Count: 2},
		{Label: "South Africa", Count: 1},
	}
	assert.Equal(t, want, got)

	top := ExplodeCount(table.All(), catalog.FieldCountry, 2)
	assert.Len(t, top, 2)
}

func TestExplodeCountNeverReportsUnknown(t *testing.T) {
	table := sampleTable()
	for _, f := range []catalog.Field{catalog.FieldCountry, catalog.FieldDirector, catalog.FieldCast, catalog.FieldGenre} {
		for _, c := range ExplodeCount(table.All(), f, 0) {
			assert.NotEqual(t, catalog.Unknown, c.Label, "field %s", f)
		}
	}

	cast := ExplodeCount(table.All(), catalog.FieldCast, 0)
	require.Len(t, cast, 1)
	assert.Equal(t, "Ama Qamata", cast[0].Label)
}

func TestExplodeCountEmptyView(t *testing.T) {
	table := sampleTable()
	empty := FilterByType(table, "none")
	assert.Empty(t, ExplodeCount(empty, catalog.FieldGenre, 10))
}

func TestMonthCount(t *testing.T) {
	got := MonthCount(sampleTable().All())
	require.NotEmpty(t, got)
	assert.Equal(t, Count{Label: "January", Count: 2}, got[0])
	assert.Equal(t, Count{Label: "September", Count: 2}, got[1])
	assert.Equal(t, Count{Label: "March", Count: 1}, got[2])
}

func TestCountries(t *testing.T) {
	got := Countries(sampleTable().All())
	assert.Equal(t, []string{"India", "South Africa", "United States"}, got)
}

func TestDataDate(t *testing.T) {
	table := sampleTable()
	assert.Equal(t, "2021-09-25", DataDate(table.All()))
	assert.Equal(t, NoDataDate, DataDate(catalog.NewTable(nil).All()))
}

func TestSummarize(t *testing.T) {
	table := sampleTable()

	all := Summarize(table, catalog.All)
	assert.Equal(t, KPI{Total: 5, MoviePerc: "60.0%", TVPerc: "40.0%"}, all)

	movies := Summarize(table, catalog.Movie)
	assert.Equal(t, KPI{Total: 3, MoviePerc: "-", TVPerc: "-"}, movies)

	empty := Summarize(catalog.NewTable(nil), catalog.All)
	assert.Equal(t, KPI{Total: 0, MoviePerc: "-", TVPerc: "-"}, empty)
}
