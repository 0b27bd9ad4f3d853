package dashboard

import (
	"github.com/catalogdash/catalogdash/internal/analytics"
	"github.com/catalogdash/catalogdash/internal/catalog"
)

// Figure kinds understood by the front end.
const (
	KindText       = "text"
	KindChoropleth = "choropleth"
	KindScatterGeo = "scatter_geo"
	KindLine       = "line"
	KindPie        = "pie"
	KindBar        = "bar"
	KindTreemap    = "treemap"
	KindSunburst   = "sunburst"
)

// Series colors.
const (
	ColorRed   = "#E50914"
	ColorWhite = "#ffffff"
)

// NoDataMessage is shown in place of a chart whose input is empty.
const NoDataMessage = "No data for the selected filter"

// Point is one labelled value of a series.
type Point struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// FigureSeries is one trace of a figure.
type FigureSeries struct {
	Name   string  `json:"name,omitempty"`
	Color  string  `json:"color,omitempty"`
	Points []Point `json:"points"`
}

// Figure is the render-ready payload for one slot.
type Figure struct {
	Slot          Slot           `json:"slot"`
	Kind          string         `json:"kind"`
	Title         string         `json:"title,omitempty"`
	XAxis         string         `json:"x_axis,omitempty"`
	YAxis         string         `json:"y_axis,omitempty"`
	Orientation   string         `json:"orientation,omitempty"`
	Stacked       bool           `json:"stacked,omitempty"`
	Series        []FigureSeries `json:"series"`
	CategoryOrder []string       `json:"category_order,omitempty"`
	Text          string         `json:"text,omitempty"`
	Empty         bool           `json:"empty"`
	Message       string         `json:"message,omitempty"`
}

func textFigure(slot Slot, text string) Figure {
	return Figure{Slot: slot, Kind: KindText, Series: []FigureSeries{}, Text: text}
}

func emptyFigure(slot Slot, kind string) Figure {
	return Figure{Slot: slot, Kind: kind, Series: []FigureSeries{}, Empty: true, Message: NoDataMessage}
}

func countPoints(counts []analytics.Count) []Point {
	pts := make([]Point, len(counts))
	for i, c := range counts {
		pts[i] = Point{Label: c.Label, Value: c.Count}
	}
	return pts
}

func seriesPoints(labels []string, s analytics.Series) []Point {
	pts := make([]Point, len(labels))
	for i, l := range labels {
		pts[i] = Point{Label: l, Value: s.Counts[i]}
	}
	return pts
}

func seriesColor(name string) string {
	if name == catalog.TVShow {
		return ColorWhite
	}
	return ColorRed
}

// rankingFigure is a horizontal bar chart with the largest value on top.
func rankingFigure(slot Slot, counts []analytics.Count, color, yAxis string) Figure {
	if len(counts) == 0 {
		return emptyFigure(slot, KindBar)
	}
	order := make([]string, len(counts))
	for i, c := range counts {
		order[len(counts)-1-i] = c.Label
	}
	return Figure{
		Slot:          slot,
		Kind:          KindBar,
		XAxis:         "count",
		YAxis:         yAxis,
		Orientation:   "h",
		Series:        []FigureSeries{{Color: color, Points: countPoints(counts)}},
		CategoryOrder: order,
	}
}
