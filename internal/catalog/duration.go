package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// DurationKind tags the result of parsing a duration text.
type DurationKind int

const (
	Unparsed DurationKind = iota
	Minutes
	Seasons
)

func (k DurationKind) String() string {
	switch k {
	case Minutes:
		return "minutes"
	case Seasons:
		return "seasons"
	default:
		return "unparsed"
	}
}

// ParseDurationKind maps a unit table value ("minutes", "seasons") to its kind.
func ParseDurationKind(s string) (DurationKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "minutes":
		return Minutes, nil
	case "seasons":
		return Seasons, nil
	default:
		return Unparsed, fmt.Errorf("unknown duration kind %q", s)
	}
}

// Duration is Minutes(n), Seasons(n) or Unparsed.
type Duration struct {
	Kind  DurationKind
	Value int
}

// UnitTable maps lower-case unit tokens to the kind they denote.
type UnitTable map[string]DurationKind

// DefaultUnits recognises "90 min" and "2 Seasons" style strings.
func DefaultUnits() UnitTable {
	return UnitTable{
		"min":     Minutes,
		"mins":    Minutes,
		"minutes": Minutes,
		"season":  Seasons,
		"seasons": Seasons,
	}
}

// NewUnitTable builds a UnitTable from token -> kind name pairs.
func NewUnitTable(m map[string]string) (UnitTable, error) {
	if len(m) == 0 {
		return DefaultUnits(), nil
	}
	u := make(UnitTable, len(m))
	for token, kind := range m {
		k, err := ParseDurationKind(kind)
		if err != nil {
			return nil, fmt.Errorf("duration unit %q: %w", token, err)
		}
		u[strings.ToLower(strings.TrimSpace(token))] = k
	}
	return u, nil
}

// Parse reads a leading positive integer followed by a unit token. The unit
// is the first word after the number, matched case-insensitively. Anything
// else, including a zero count, is Unparsed.
func (u UnitTable) Parse(text string) Duration {
	text = strings.TrimSpace(text)
	end := strings.IndexFunc(text, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == 0 {
		return Duration{}
	}
	if end < 0 {
		// digits only, no unit
		return Duration{}
	}
	n, err := strconv.Atoi(text[:end])
	if err != nil || n == 0 {
		return Duration{}
	}
	words := strings.Fields(strings.ToLower(text[end:]))
	if len(words) == 0 {
		return Duration{}
	}
	unit := strings.TrimRightFunc(words[0], unicode.IsPunct)
	kind, ok := u[unit]
	if !ok {
		return Duration{}
	}
	return Duration{Kind: kind, Value: n}
}
