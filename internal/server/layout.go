package server

import (
	"strconv"

	"github.com/catalogdash/catalogdash/internal/catalog"
	"github.com/catalogdash/catalogdash/internal/dashboard"
)

// Option is one choice of a control.
type Option struct {
	Label string
	Value string
}

// Control is a filter input placed on a card.
type Control struct {
	ID      string
	Label   string
	Kind    string // radio, select, number, range
	Options []Option
	Min     int
	Max     int
	Step    int
}

// Card is one chart panel with its help dialog.
type Card struct {
	Title       string
	Slot        dashboard.Slot
	Dialog      string
	DialogTitle string
	Help        string
	Controls    []Control
	Wide        bool
}

// OpenTrigger and CloseTrigger name the card's dialog triggers.
func (c Card) OpenTrigger() string  { return dashboard.OpenTrigger(c.Dialog) }
func (c Card) CloseTrigger() string { return dashboard.CloseTrigger(c.Dialog) }

// Row is a line of cards.
type Row []Card

func typeFilterControl() Control {
	return Control{
		ID: dashboard.CtlTypeFilter, Label: "Show", Kind: "select",
		Options: []Option{
			{"All titles", catalog.All},
			{"Movies", catalog.Movie},
			{"TV Shows", catalog.TVShow},
		},
	}
}

func countryControl(id, label string, countries []string) Control {
	opts := make([]Option, len(countries))
	for i, c := range countries {
		opts[i] = Option{Label: c, Value: c}
	}
	return Control{ID: id, Label: label, Kind: "select", Options: opts}
}

func sliderControl(id string) Control {
	var marks []Option
	for n := 5; n <= 30; n += 5 {
		marks = append(marks, Option{Label: strconv.Itoa(n), Value: strconv.Itoa(n)})
	}
	return Control{ID: id, Label: "How many?", Kind: "range", Options: marks, Min: 5, Max: 30, Step: 5}
}

// layout returns the card rows of the dashboard page. The country selectors
// are the only data-dependent part.
func layout(countries []string) []Row {
	return []Row{
		{{
			Title: "Production geography", Slot: dashboard.SlotMap, Dialog: "map", DialogTitle: "About the map",
			Help: "Number of titles available in the catalog by **country of production**. " +
				"Co-productions count once for every country involved.",
			Controls: []Control{{ID: dashboard.CtlMapType, Kind: "radio", Options: []Option{{"Area", "area"}, {"Bubbles", "bubble"}}}},
			Wide:     true,
		}},
		{{
			Title: "Titles added over time", Slot: dashboard.SlotTrend, Dialog: "trend", DialogTitle: "About trends",
			Help: "Line chart of titles added per *month*, *quarter* or *year*, optionally split into movies " +
				"and TV shows, either as counts or as a running total.",
			Controls: []Control{
				{ID: dashboard.CtlTrendInterval, Label: "Interval", Kind: "radio", Options: []Option{{"Month", "M"}, {"Quarter", "Q"}, {"Year", "Y"}}},
				{ID: dashboard.CtlTrendSplit, Label: "View", Kind: "radio", Options: []Option{{"Total", "total"}, {"Movies vs TV Shows", "split"}}},
				{ID: dashboard.CtlTrendAgg, Label: "Aggregation", Kind: "radio", Options: []Option{{"Count", "count"}, {"Cumulative", "cumsum"}}},
			},
			Wide: true,
		}},
		{
			{
				Title: "Additions by month", Slot: dashboard.SlotMonthPie, Dialog: "month", DialogTitle: "Months",
				Help: "Share of titles added in each calendar month.",
			},
			{
				Title: "Country comparison", Slot: dashboard.SlotCountryComparison, Dialog: "country", DialogTitle: "Country comparison",
				Help: "Titles added per year for two selected countries.",
				Controls: []Control{
					countryControl(dashboard.CtlCountry1, "Country 1", countries),
					countryControl(dashboard.CtlCountry2, "Country 2", countries),
				},
			},
		},
		{
			{
				Title: "Top genres", Slot: dashboard.SlotGenreBar, Dialog: "genre", DialogTitle: "About genres",
				Help: "Ranking of the most frequent genres.",
				Controls: []Control{{ID: dashboard.CtlGenreTopN, Kind: "select",
					Options: []Option{{"Top 10", "10"}, {"Top 15", "15"}, {"Top 20", "20"}}}},
			},
			{
				Title: "Genre breakdown", Slot: dashboard.SlotGenreHierarchy, Dialog: "hierarchy", DialogTitle: "Hierarchy",
				Help: "Alternative view of the genre distribution as a treemap or sunburst.",
				Controls: []Control{
					{ID: dashboard.CtlHierarchyType, Kind: "radio", Options: []Option{{"Treemap", "treemap"}, {"Sunburst", "sunburst"}}},
					{ID: dashboard.CtlHierarchyN, Kind: "number", Min: 5, Max: 50, Step: 5},
				},
			},
		},
		{
			{
				Title: "Movie length", Slot: dashboard.SlotDuration, Dialog: "duration", DialogTitle: "Duration",
				Help: "Movies grouped into length ranges: under 90, 90-119, 120-149 and 150+ minutes.",
			},
			{
				Title: "Number of seasons", Slot: dashboard.SlotSeasons, Dialog: "seasons", DialogTitle: "Seasons",
				Help: "How many seasons do TV shows usually have?",
			},
		},
		{{
			Title: "Top cast", Slot: dashboard.SlotCast, Dialog: "cast", DialogTitle: "Cast",
			Help:     "The most frequently credited actors and actresses.",
			Controls: []Control{sliderControl(dashboard.CtlCastN)},
			Wide:     true,
		}},
		{
			{
				Title: "Top directors", Slot: dashboard.SlotDirector, Dialog: "director", DialogTitle: "Directors",
				Help:     "The most active directors.",
				Controls: []Control{sliderControl(dashboard.CtlDirectorN)},
			},
			{
				Title: "Ratings", Slot: dashboard.SlotRating, Dialog: "rating", DialogTitle: "Ratings",
				Help: "Distribution of content ratings for movies and TV shows.",
			},
		},
	}
}
