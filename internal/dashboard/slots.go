package dashboard

import (
	"strconv"

	"github.com/catalogdash/catalogdash/internal/analytics"
	"github.com/catalogdash/catalogdash/internal/catalog"
)

// Slot names a chart or text output.
type Slot string

const (
	SlotKPITotal          Slot = "kpi-total"
	SlotKPIMoviePerc      Slot = "kpi-movie-perc"
	SlotKPITVPerc         Slot = "kpi-tv-perc"
	SlotMap               Slot = "map-graph"
	SlotTrend             Slot = "trend-graph"
	SlotMonthPie          Slot = "month-pie-graph"
	SlotCountryComparison Slot = "country-comparison-graph"
	SlotGenreBar          Slot = "genre-bar-graph"
	SlotGenreHierarchy    Slot = "genre-hierarchy-graph"
	SlotDuration          Slot = "duration-hist"
	SlotSeasons           Slot = "seasons-bar"
	SlotDirector          Slot = "director-graph"
	SlotRating            Slot = "rating-graph"
	SlotCast              Slot = "cast-graph"
)

type renderFunc func(t *catalog.Table, c Controls) (Figure, error)

type binding struct {
	inputs []string
	render renderFunc
}

// slotOrder is the layout order of the slots.
var slotOrder = []Slot{
	SlotKPITotal, SlotKPIMoviePerc, SlotKPITVPerc,
	SlotMap, SlotTrend, SlotMonthPie, SlotCountryComparison,
	SlotGenreBar, SlotGenreHierarchy, SlotDuration, SlotSeasons,
	SlotCast, SlotDirector, SlotRating,
}

var bindings = map[Slot]binding{
	SlotKPITotal:          {inputs: []string{CtlTypeFilter}, render: renderKPITotal},
	SlotKPIMoviePerc:      {inputs: []string{CtlTypeFilter}, render: renderKPIMoviePerc},
	SlotKPITVPerc:         {inputs: []string{CtlTypeFilter}, render: renderKPITVPerc},
	SlotMap:               {inputs: []string{CtlTypeFilter, CtlMapType}, render: renderMap},
	SlotTrend:             {inputs: []string{CtlTypeFilter, CtlTrendInterval, CtlTrendSplit, CtlTrendAgg}, render: renderTrend},
	SlotMonthPie:          {inputs: []string{CtlTypeFilter}, render: renderMonthPie},
	SlotCountryComparison: {inputs: []string{CtlTypeFilter, CtlCountry1, CtlCountry2}, render: renderCountryComparison},
	SlotGenreBar:          {inputs: []string{CtlTypeFilter, CtlGenreTopN}, render: renderGenreBar},
	SlotGenreHierarchy:    {inputs: []string{CtlTypeFilter, CtlHierarchyType, CtlHierarchyN}, render: renderGenreHierarchy},
	SlotDuration:          {inputs: []string{CtlTypeFilter}, render: renderDuration},
	SlotSeasons:           {inputs: []string{CtlTypeFilter}, render: renderSeasons},
	SlotDirector:          {inputs: []string{CtlTypeFilter, CtlDirectorN}, render: renderDirector},
	SlotRating:            {inputs: []string{CtlTypeFilter}, render: renderRating},
	SlotCast:              {inputs: []string{CtlTypeFilter, CtlCastN}, render: renderCast},
}

// Slots returns every slot in layout order.
func Slots() []Slot {
	out := make([]Slot, len(slotOrder))
	copy(out, slotOrder)
	return out
}

// Inputs returns the control ids a slot reads.
func Inputs(slot Slot) []string {
	b, ok := bindings[slot]
	if !ok {
		return nil
	}
	out := make([]string, len(b.inputs))
	copy(out, b.inputs)
	return out
}

func renderKPITotal(t *catalog.Table, c Controls) (Figure, error) {
	k := analytics.Summarize(t, c.TypeFilter)
	f := textFigure(SlotKPITotal, strconv.Itoa(k.Total))
	f.Empty = t.Len() == 0
	return f, nil
}

func renderKPIMoviePerc(t *catalog.Table, c Controls) (Figure, error) {
	return textFigure(SlotKPIMoviePerc, analytics.Summarize(t, c.TypeFilter).MoviePerc), nil
}

func renderKPITVPerc(t *catalog.Table, c Controls) (Figure, error) {
	return textFigure(SlotKPITVPerc, analytics.Summarize(t, c.TypeFilter).TVPerc), nil
}

func renderMap(t *catalog.Table, c Controls) (Figure, error) {
	kind := KindChoropleth
	if c.MapType == "bubble" {
		kind = KindScatterGeo
	}
	counts := analytics.ExplodeCount(analytics.FilterByType(t, c.TypeFilter), catalog.FieldCountry, 0)
	if len(counts) == 0 {
		return emptyFigure(SlotMap, kind), nil
	}
	return Figure{
		Slot:   SlotMap,
		Kind:   kind,
		Series: []FigureSeries{{Name: "count", Color: ColorRed, Points: countPoints(counts)}},
	}, nil
}

func renderTrend(t *catalog.Table, c Controls) (Figure, error) {
	interval, err := analytics.ParseInterval(c.TrendInterval)
	if err != nil {
		return Figure{}, err
	}
	trend, err := analytics.TrendCount(analytics.FilterByType(t, c.TypeFilter),
		interval, c.TrendSplit == "split", c.TrendAgg == "cumsum")
	if err != nil {
		return Figure{}, err
	}
	if trend.Empty {
		return emptyFigure(SlotTrend, KindLine), nil
	}
	f := Figure{Slot: SlotTrend, Kind: KindLine, XAxis: "date_added", YAxis: "count"}
	for _, s := range trend.Series {
		f.Series = append(f.Series, FigureSeries{
			Name:   s.Name,
			Color:  seriesColor(s.Name),
			Points: seriesPoints(trend.Buckets, s),
		})
	}
	return f, nil
}

func renderMonthPie(t *catalog.Table, c Controls) (Figure, error) {
	counts := analytics.MonthCount(analytics.FilterByType(t, c.TypeFilter))
	if len(counts) == 0 {
		return emptyFigure(SlotMonthPie, KindPie), nil
	}
	return Figure{
		Slot:   SlotMonthPie,
		Kind:   KindPie,
		Series: []FigureSeries{{Points: countPoints(counts)}},
	}, nil
}

func renderCountryComparison(t *catalog.Table, c Controls) (Figure, error) {
	cmp := analytics.CountryComparison(analytics.FilterByType(t, c.TypeFilter), c.Country1, c.Country2)
	if cmp.Empty {
		f := emptyFigure(SlotCountryComparison, KindLine)
		f.Message = "No data"
		return f, nil
	}
	f := Figure{Slot: SlotCountryComparison, Kind: KindLine, XAxis: "year_added", YAxis: "count"}
	for _, s := range cmp.Series {
		f.Series = append(f.Series, FigureSeries{Name: s.Name, Points: seriesPoints(cmp.Years, s)})
	}
	return f, nil
}

func renderGenreBar(t *catalog.Table, c Controls) (Figure, error) {
	counts := analytics.ExplodeCount(analytics.FilterByType(t, c.TypeFilter), catalog.FieldGenre, c.GenreTopN)
	return rankingFigure(SlotGenreBar, counts, ColorRed, "genre"), nil
}

func renderGenreHierarchy(t *catalog.Table, c Controls) (Figure, error) {
	kind := KindTreemap
	if c.HierarchyType == "sunburst" {
		kind = KindSunburst
	}
	counts := analytics.ExplodeCount(analytics.FilterByType(t, c.TypeFilter), catalog.FieldGenre, c.HierarchyN)
	if len(counts) == 0 {
		return emptyFigure(SlotGenreHierarchy, kind), nil
	}
	return Figure{
		Slot:   SlotGenreHierarchy,
		Kind:   kind,
		Series: []FigureSeries{{Name: "genre", Color: ColorRed, Points: countPoints(counts)}},
	}, nil
}

func bucketFigure(slot Slot, b analytics.Buckets, color, xAxis, yAxis string) Figure {
	if b.Empty {
		return emptyFigure(slot, KindBar)
	}
	order := make([]string, len(b.Counts))
	for i, c := range b.Counts {
		order[i] = c.Label
	}
	return Figure{
		Slot:          slot,
		Kind:          KindBar,
		XAxis:         xAxis,
		YAxis:         yAxis,
		Series:        []FigureSeries{{Color: color, Points: countPoints(b.Counts)}},
		CategoryOrder: order,
	}
}

// The duration chart only applies when movies are selected.
func renderDuration(t *catalog.Table, c Controls) (Figure, error) {
	if c.TypeFilter != catalog.All && c.TypeFilter != catalog.Movie {
		return emptyFigure(SlotDuration, KindBar), nil
	}
	b := analytics.DurationBuckets(t.All())
	return bucketFigure(SlotDuration, b, ColorRed, "", "movies"), nil
}

// The seasons chart only applies when TV shows are selected.
func renderSeasons(t *catalog.Table, c Controls) (Figure, error) {
	if c.TypeFilter != catalog.All && c.TypeFilter != catalog.TVShow {
		return emptyFigure(SlotSeasons, KindBar), nil
	}
	b := analytics.SeasonBuckets(t.All())
	return bucketFigure(SlotSeasons, b, ColorWhite, "seasons", "count"), nil
}

func renderDirector(t *catalog.Table, c Controls) (Figure, error) {
	counts := analytics.ExplodeCount(analytics.FilterByType(t, c.TypeFilter), catalog.FieldDirector, c.DirectorN)
	return rankingFigure(SlotDirector, counts, ColorRed, "director"), nil
}

func renderCast(t *catalog.Table, c Controls) (Figure, error) {
	counts := analytics.ExplodeCount(analytics.FilterByType(t, c.TypeFilter), catalog.FieldCast, c.CastN)
	return rankingFigure(SlotCast, counts, ColorWhite, "actor"), nil
}

func renderRating(t *catalog.Table, c Controls) (Figure, error) {
	stack := analytics.RatingStack(analytics.FilterByType(t, c.TypeFilter))
	if stack.Empty {
		return emptyFigure(SlotRating, KindBar), nil
	}
	f := Figure{
		Slot:          SlotRating,
		Kind:          KindBar,
		XAxis:         "count",
		YAxis:         "rating",
		Orientation:   "h",
		Stacked:       true,
		CategoryOrder: stack.Categories,
	}
	for _, s := range stack.Series {
		f.Series = append(f.Series, FigureSeries{
			Name:   s.Name,
			Color:  seriesColor(s.Name),
			Points: seriesPoints(stack.Categories, s),
		})
	}
	return f, nil
}
