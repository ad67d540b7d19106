package mathspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const axialJSON = `{
	"chapitre": "Symétrie axiale",
	"type_exercice": "trouver_valeur",
	"difficulte": "facile",
	"parametres": {
		"point_original": {"nom": "M", "x": 3, "y": 5},
		"axe_type": "vertical",
		"axe_valeur": 7
	},
	"figure": {"type": "symetrie", "points": ["M", "M'"]}
}`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(axialJSON))
	require.NoError(t, err)

	assert.Equal(t, "Symétrie axiale", s.Chapter)
	assert.Equal(t, "trouver_valeur", s.Kind)
	assert.True(t, s.IsGeometry())
	assert.Equal(t, []string{"M", "M'"}, s.Figure.Points)

	pt, ok := s.Params.Point("point_original")
	require.True(t, ok)
	assert.Equal(t, Point{Name: "M", X: 3, Y: 5, HasCoords: true}, pt)
	require.NoError(t, s.Validate())
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{"chapitre":`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Run("missing chapter", func(t *testing.T) {
		s := &Spec{}
		assert.Error(t, s.Validate())
	})

	t.Run("no figure", func(t *testing.T) {
		s := &Spec{Chapter: "Fractions", Params: Params{"point_a": "A"}}
		assert.NoError(t, s.Validate())
	})

	t.Run("undeclared point", func(t *testing.T) {
		s := &Spec{
			Chapter: "Symétrie centrale",
			Params:  Params{"point_a": "A", "centre": "O"},
			Figure:  &Figure{Points: []string{"A", "A'"}},
		}
		err := s.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "O (centre)")
	})
}

func TestParams_FirstPriority(t *testing.T) {
	p := Params{"point_initial": "C", "point_a": "B"}

	v, key, ok := p.First("point_original", "point_a", "point_initial")
	require.True(t, ok)
	assert.Equal(t, "B", v)
	assert.Equal(t, "point_a", key)

	_, _, ok = p.First("absent")
	assert.False(t, ok)
}

func TestParams_Number(t *testing.T) {
	p := Params{"a": "x", "b": "2,5", "c": 4.0}

	n, ok := p.Number("a", "b", "c")
	require.True(t, ok)
	assert.Equal(t, 2.5, n)

	_, ok = p.Number("a")
	assert.False(t, ok)
}

func TestParams_PointShapes(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want Point
		ok   bool
	}{
		{"name only", "M", Point{Name: "M"}, true},
		{"object xy", map[string]any{"nom": "A", "x": 1.0, "y": -2.0}, Point{Name: "A", X: 1, Y: -2, HasCoords: true}, true},
		{"object coords", map[string]any{"name": "B", "coords": []any{4.0, 6.0}}, Point{Name: "B", X: 4, Y: 6, HasCoords: true}, true},
		{"array", []any{2.0, 3.0}, Point{X: 2, Y: 3, HasCoords: true}, true},
		{"bad array", []any{2.0}, Point{}, false},
		{"number", 3.0, Point{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Params{"p": tt.v}.Point("p")
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "3", FormatNumber(3))
	assert.Equal(t, "-1.5", FormatNumber(-1.5))
	assert.Equal(t, "0", FormatNumber(0))
}
