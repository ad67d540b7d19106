package gabarit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/gabarit/internal/mathspec"
	"github.com/abhisek/gabarit/internal/templatecache"
)

func TestPrepare_AxialVertical(t *testing.T) {
	l := Load(Config{})
	spec := &mathspec.Spec{
		Chapter: "Symétrie axiale",
		Kind:    "trouver_valeur",
		Params: mathspec.Params{
			"point_original": map[string]any{"nom": "M", "x": 3.0, "y": 5.0},
			"axe_type":       "vertical",
			"axe_valeur":     7.0,
		},
	}

	values := l.PrepareInterpolationValues(spec)
	assert.Equal(t, "M", values["pointA"])
	assert.Equal(t, "M'", values["pointB"])
	assert.Equal(t, "3", values["coordA_x"])
	assert.Equal(t, "5", values["coordA_y"])
	assert.Equal(t, "l'axe vertical x = 7", values["axeDesc"])
	assert.NotContains(t, values, "coordB_x")

	tpl := "Point {pointA}({coordA_x},{coordA_y}). {axeDesc}. Trouve {pointB}."
	assert.Equal(t, "Point M(3,5). l'axe vertical x = 7. Trouve M'.", templatecache.Interpolate(tpl, values))

	solution := l.PrepareSolutionValues(spec)
	assert.Equal(t, "11", solution["coordB_x"])
	assert.Equal(t, "5", solution["coordB_y"])
	assert.ElementsMatch(t, []string{"coordB_x", "coordB_y"}, l.AnswerPlaceholders(spec))
}

func TestPrepare_AxialHorizontalAndDiagonal(t *testing.T) {
	l := Load(Config{})

	h := l.PrepareSolutionValues(&mathspec.Spec{
		Chapter: "symetrie axiale",
		Params:  mathspec.Params{"point_a": "A", "coord_a": []any{1.0, 2.0}, "type_axe": "Horizontal", "valeur_axe": 4.0},
	})
	assert.Equal(t, "A", h["pointA"])
	assert.Equal(t, "l'axe horizontal y = 4", h["axeDesc"])
	assert.Equal(t, "1", h["coordB_x"])
	assert.Equal(t, "6", h["coordB_y"])

	d := l.PrepareSolutionValues(&mathspec.Spec{
		Chapter: "Symétrie axiale",
		Params:  mathspec.Params{"point_a": map[string]any{"nom": "P", "x": 1.0, "y": 4.0}, "axis_type": "diagonale"},
	})
	assert.Equal(t, "la droite d'équation y = x", d["axeDesc"])
	assert.Equal(t, "4", d["coordB_x"])
	assert.Equal(t, "1", d["coordB_y"])
}

func TestPrepare_AxialFallbackPriority(t *testing.T) {
	l := Load(Config{})
	values := l.PrepareInterpolationValues(&mathspec.Spec{
		Chapter: "Symétrie axiale",
		Params: mathspec.Params{
			"point_initial":  "C",
			"point_a":        "B",
			"point_original": "A",
		},
	})
	assert.Equal(t, "A", values["pointA"])

	values = l.PrepareInterpolationValues(&mathspec.Spec{
		Chapter: "Symétrie axiale",
		Params:  mathspec.Params{"point_initial": "C", "point_a": "B"},
	})
	assert.Equal(t, "B", values["pointA"])
}

func TestPrepare_AxialDefaults(t *testing.T) {
	l := Load(Config{})
	values := l.PrepareInterpolationValues(&mathspec.Spec{Chapter: "Symétrie axiale"})

	assert.Equal(t, "M", values["pointA"])
	assert.Equal(t, "M'", values["pointB"])
	assert.Equal(t, "0", values["coordA_x"])
	assert.Equal(t, "0", values["coordA_y"])
	assert.Equal(t, "l'axe (d)", values["axeDesc"])
}

func TestPrepare_Central(t *testing.T) {
	l := Load(Config{})
	spec := &mathspec.Spec{
		Chapter: "Symétrie centrale",
		Params: mathspec.Params{
			"point_a":      map[string]any{"nom": "A", "x": 1.0, "y": 2.0},
			"centre":       "I",
			"coord_centre": []any{3.0, 3.0},
		},
	}

	values := l.PrepareInterpolationValues(spec)
	assert.Equal(t, "I", values["centre"])
	assert.Equal(t, "3", values["coordO_x"])
	assert.Equal(t, "A'", values["pointB"])

	solution := l.PrepareSolutionValues(spec)
	assert.Equal(t, "5", solution["coordB_x"])
	assert.Equal(t, "4", solution["coordB_y"])

	defaults := l.PrepareInterpolationValues(&mathspec.Spec{Chapter: "Symétrie centrale"})
	assert.Equal(t, "O", defaults["centre"])
	assert.Equal(t, "M", defaults["pointA"])
}

func TestPrepare_Translation(t *testing.T) {
	l := Load(Config{})
	spec := &mathspec.Spec{
		Chapter: "Translation",
		Params: mathspec.Params{
			"point_original": map[string]any{"nom": "B", "x": 2.0, "y": -1.0},
			"vecteur":        map[string]any{"x": 3.0, "y": 0.5},
		},
	}

	values := l.PrepareInterpolationValues(spec)
	assert.Equal(t, "le vecteur u de coordonnées (3 ; 0.5)", values["vecteurDesc"])

	solution := l.PrepareSolutionValues(spec)
	assert.Equal(t, "5", solution["coordB_x"])
	assert.Equal(t, "-0.5", solution["coordB_y"])
}

func TestPrepare_UnknownFamily(t *testing.T) {
	l := Load(Config{})
	values := l.PrepareInterpolationValues(&mathspec.Spec{Chapter: "Fractions"})
	assert.NotNil(t, values)
	assert.Empty(t, values)
	assert.Empty(t, l.AnswerPlaceholders(&mathspec.Spec{Chapter: "Fractions"}))
}
