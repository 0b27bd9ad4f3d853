package dashboard

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/catalogdash/catalogdash/internal/catalog"
	domainerrors "github.com/catalogdash/catalogdash/internal/errors"
)

// Control ids.
const (
	CtlTypeFilter    = "type-filter"
	CtlMapType       = "map-type"
	CtlTrendInterval = "trend-interval"
	CtlTrendSplit    = "trend-split"
	CtlTrendAgg      = "trend-agg"
	CtlCountry1      = "country-1"
	CtlCountry2      = "country-2"
	CtlGenreTopN     = "genre-top-n"
	CtlHierarchyType = "hierarchy-type"
	CtlHierarchyN    = "hierarchy-n"
	CtlDirectorN     = "director-slider"
	CtlCastN         = "cast-slider"
)

// Controls is the current value of every filter control.
type Controls struct {
	TypeFilter    string `json:"type-filter" validate:"oneof=All Movie 'TV Show'"`
	MapType       string `json:"map-type" validate:"oneof=area bubble"`
	TrendInterval string `json:"trend-interval" validate:"oneof=M Q Y"`
	TrendSplit    string `json:"trend-split" validate:"oneof=total split"`
	TrendAgg      string `json:"trend-agg" validate:"oneof=count cumsum"`
	Country1      string `json:"country-1" validate:"required"`
	Country2      string `json:"country-2" validate:"required"`
	GenreTopN     int    `json:"genre-top-n" validate:"oneof=10 15 20"`
	HierarchyType string `json:"hierarchy-type" validate:"oneof=treemap sunburst"`
	HierarchyN    int    `json:"hierarchy-n" validate:"gte=5,lte=50,step=5"`
	DirectorN     int    `json:"director-slider" validate:"gte=5,lte=30,step=5"`
	CastN         int    `json:"cast-slider" validate:"gte=5,lte=30,step=5"`
}

// DefaultControls returns the initial control values of the layout.
func DefaultControls(country1, country2 string) Controls {
	return Controls{
		TypeFilter:    catalog.All,
		MapType:       "area",
		TrendInterval: "Y",
		TrendSplit:    "split",
		TrendAgg:      "count",
		Country1:      country1,
		Country2:      country2,
		GenreTopN:     10,
		HierarchyType: "treemap",
		HierarchyN:    20,
		DirectorN:     10,
		CastN:         10,
	}
}

type setter func(c *Controls, v string) error

func setString(field func(*Controls) *string) setter {
	return func(c *Controls, v string) error {
		*field(c) = v
		return nil
	}
}

func setInt(id string, field func(*Controls) *int) setter {
	return func(c *Controls, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return domainerrors.ValidationWithDetails("validation failed",
				map[string]string{id: "must be an integer"})
		}
		*field(c) = n
		return nil
	}
}

var setters = map[string]setter{
	CtlTypeFilter:    setString(func(c *Controls) *string { return &c.TypeFilter }),
	CtlMapType:       setString(func(c *Controls) *string { return &c.MapType }),
	CtlTrendInterval: setString(func(c *Controls) *string { return &c.TrendInterval }),
	CtlTrendSplit:    setString(func(c *Controls) *string { return &c.TrendSplit }),
	CtlTrendAgg:      setString(func(c *Controls) *string { return &c.TrendAgg }),
	CtlCountry1:      setString(func(c *Controls) *string { return &c.Country1 }),
	CtlCountry2:      setString(func(c *Controls) *string { return &c.Country2 }),
	CtlGenreTopN:     setInt(CtlGenreTopN, func(c *Controls) *int { return &c.GenreTopN }),
	CtlHierarchyType: setString(func(c *Controls) *string { return &c.HierarchyType }),
	CtlHierarchyN:    setInt(CtlHierarchyN, func(c *Controls) *int { return &c.HierarchyN }),
	CtlDirectorN:     setInt(CtlDirectorN, func(c *Controls) *int { return &c.DirectorN }),
	CtlCastN:         setInt(CtlCastN, func(c *Controls) *int { return &c.CastN }),
}

// IsControl reports whether id names a control.
func IsControl(id string) bool {
	_, ok := setters[id]
	return ok
}

// Set assigns a control from its string form. The result is not validated.
func (c *Controls) Set(id, value string) error {
	set, ok := setters[id]
	if !ok {
		return domainerrors.NotFoundf("unknown control %q", id)
	}
	return set(c, value)
}

// ControlsFromQuery overlays the control values found in q onto base.
// Parameters that are not control ids are ignored.
func ControlsFromQuery(q url.Values, base Controls) (Controls, error) {
	c := base
	for id := range setters {
		if !q.Has(id) {
			continue
		}
		if err := c.Set(id, q.Get(id)); err != nil {
			return base, err
		}
	}
	return c, nil
}

// ControlOptions lists the accepted values of the enumerated controls.
func ControlOptions() map[string][]string {
	return map[string][]string{
		CtlTypeFilter:    {catalog.All, catalog.Movie, catalog.TVShow},
		CtlMapType:       {"area", "bubble"},
		CtlTrendInterval: {"M", "Q", "Y"},
		CtlTrendSplit:    {"total", "split"},
		CtlTrendAgg:      {"count", "cumsum"},
		CtlGenreTopN:     {"10", "15", "20"},
		CtlHierarchyType: {"treemap", "sunburst"},
		CtlHierarchyN:    steps(5, 50, 5),
		CtlDirectorN:     steps(5, 30, 5),
		CtlCastN:         steps(5, 30, 5),
	}
}

func steps(lo, hi, step int) []string {
	var out []string
	for n := lo; n <= hi; n += step {
		out = append(out, strconv.Itoa(n))
	}
	return out
}

// Validator checks Controls and reports failures as domain validation errors
// keyed by control id.
type Validator struct {
	v *validator.Validate
}

// NewValidator creates a validator with the step rule registered.
func NewValidator() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// step=N: the integer value must be a multiple of N.
	_ = v.RegisterValidation("step", func(fl validator.FieldLevel) bool {
		n, err := strconv.ParseInt(fl.Param(), 10, 64)
		if err != nil || n <= 0 {
			return false
		}
		return fl.Field().Int()%n == 0
	})

	return &Validator{v: v}
}

// Validate returns nil or a *errors.Error with CodeValidation.
func (v *Validator) Validate(c Controls) error {
	err := v.v.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !domainerrors.As(err, &fieldErrs) {
		return err
	}
	details := make(map[string]string, len(fieldErrs))
	for _, e := range fieldErrs {
		details[e.Field()] = friendlyMessage(e)
	}
	return domainerrors.ValidationWithDetails("validation failed", details)
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "step":
		return fmt.Sprintf("must be a multiple of %s", e.Param())
	default:
		return "is invalid"
	}
}
