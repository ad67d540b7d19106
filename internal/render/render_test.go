package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/gabarit/internal/mathspec"
	"github.com/abhisek/gabarit/internal/statement"
	"github.com/abhisek/gabarit/internal/templatecache"
	"github.com/abhisek/gabarit/internal/visibility"
)

func fixture() (*statement.Statement, *mathspec.Spec) {
	spec := &mathspec.Spec{
		Chapter: "Symétrie axiale",
		Figure: &mathspec.Figure{
			Points: []string{"M", "M'"},
			Shapes: []string{"axe", "M_image"},
		},
	}
	stmt := &statement.Statement{
		Style:    "concis",
		Source:   statement.SourceGabarit,
		CacheKey: "symetrie_axiale__trouver_valeur__facile__concis",
		Text:     "Trouve M'.",
		Solution: map[string]string{"coordB_x": "11", "pointA": "M"},
		Visibility: visibility.Decision{
			ElementsToHide:    []string{"M'", "M_image"},
			HideConstructions: true,
			HideAnnotations:   true,
			Kind:              visibility.KindFindValue,
		},
	}
	return stmt, spec
}

func TestSujet_MasksHiddenElements(t *testing.T) {
	stmt, spec := fixture()
	out := New(false, 0).Sujet(stmt, spec)

	assert.Contains(t, out, "Trouve M'.")
	assert.Contains(t, out, "Points : M, ?")
	assert.Contains(t, out, "Tracés : axe, ?")
	assert.NotContains(t, out, "M_image")
	assert.NotContains(t, out, "11")
	assert.NotContains(t, out, "\x1b[")
}

func TestCorrige_RevealsEverything(t *testing.T) {
	stmt, spec := fixture()
	out := New(false, 0).Corrige(stmt, spec)

	assert.Contains(t, out, "M' (masqué)")
	assert.Contains(t, out, "coordB_x : 11")
	assert.Less(t, strings.Index(out, "coordB_x"), strings.Index(out, "pointA"))
}

func TestDecision(t *testing.T) {
	out := New(false, 0).Decision(visibility.Decision{ElementsToHide: []string{}, Kind: visibility.KindVerifyProperty})
	assert.Contains(t, out, "verifier_propriete")
	assert.Contains(t, out, "Masqués : aucun")
	assert.Contains(t, out, "Masquer constructions : non")
}

func TestMetrics(t *testing.T) {
	out := New(false, 0).Metrics(templatecache.Metrics{Hits: 3, Misses: 1, TotalRequests: 4, HitRatePercent: 75, CacheSize: 2})
	assert.Contains(t, out, "4 (3 hits, 1 misses)")
	assert.Contains(t, out, "75.0 %")
}

func TestColor_EmitsStyles(t *testing.T) {
	stmt, spec := fixture()
	assert.Contains(t, New(true, 0).Sujet(stmt, spec), "\x1b[")
}
