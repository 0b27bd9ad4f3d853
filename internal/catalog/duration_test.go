package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultUnitsParse(t *testing.T) {
	units := DefaultUnits()
	tests := []struct {
		in   string
		want Duration
	}{
		{"90 min", Duration{Kind: Minutes, Value: 90}},
		{"  145 min ", Duration{Kind: Minutes, Value: 145}},
		{"1 Season", Duration{Kind: Seasons, Value: 1}},
		{"12 Seasons", Duration{Kind: Seasons, Value: 12}},
		{"3 SEASONS", Duration{Kind: Seasons, Value: 3}},
		{"95min", Duration{Kind: Minutes, Value: 95}},
		{"", Duration{}},
		{"min", Duration{}},
		{"90", Duration{}},
		{"2 episodes", Duration{}},
		{"about 90 min", Duration{}},
		{"0 Seasons", Duration{}},
		{"0 min", Duration{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, units.Parse(tt.in), "input %q", tt.in)
	}
}

func TestNewUnitTable(t *testing.T) {
	units, err := NewUnitTable(map[string]string{"Minuten": "minutes", "staffel": "seasons"})
	require.NoError(t, err)

	assert.Equal(t, Duration{Kind: Minutes, Value: 100}, units.Parse("100 minuten"))
	assert.Equal(t, Duration{Kind: Seasons, Value: 2}, units.Parse("2 Staffel"))
	assert.Equal(t, Unparsed, units.Parse("100 min").Kind)
}

func TestNewUnitTableRejectsUnknownKind(t *testing.T) {
	_, err := NewUnitTable(map[string]string{"ep": "episodes"})
	assert.Error(t, err)
}

func TestNewUnitTableEmptyUsesDefaults(t *testing.T) {
	units, err := NewUnitTable(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultUnits(), units)
}

func TestDurationKindString(t *testing.T) {
	assert.Equal(t, "minutes", Minutes.String())
	assert.Equal(t, "seasons", Seasons.String())
	assert.Equal(t, "unparsed", Unparsed.String())
}
