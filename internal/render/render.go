// Package render draws statements, visibility decisions and cache
// metrics for the terminal.
package render

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/gabarit/internal/mathspec"
	"github.com/abhisek/gabarit/internal/statement"
	"github.com/abhisek/gabarit/internal/templatecache"
	"github.com/abhisek/gabarit/internal/visibility"
)

// maskedElement replaces a hidden element in the sujet view.
const maskedElement = "?"

// Renderer formats output. Width 0 means no wrapping.
type Renderer struct {
	st    styles
	width int
}

// New returns a Renderer. With color off the output carries no escape
// sequences.
func New(color bool, width int) *Renderer {
	st := plainStyles()
	if color {
		st = colorStyles()
	}
	return &Renderer{st: st, width: width}
}

func (r *Renderer) card(lines ...string) string {
	c := r.st.card
	if r.width > 0 {
		c = c.Width(r.width)
	}
	return c.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (r *Renderer) field(name, value string) string {
	return r.st.label.Render(name+" : ") + r.st.body.Render(value)
}

// Sujet is the student view: the statement and the figure elements, with
// the elements the decision hides masked.
func (r *Renderer) Sujet(stmt *statement.Statement, spec *mathspec.Spec) string {
	lines := []string{
		r.st.title.Render("Sujet"),
		r.st.dim.Render(fmt.Sprintf("%s · %s · %s", stmt.Style, stmt.Source, stmt.CacheKey)),
		"",
		r.st.body.Render(stmt.Text),
	}
	if fig := spec.Figure; fig != nil {
		lines = append(lines, "",
			r.field("Points", r.elements(fig.Points, stmt.Visibility, false)),
		)
		if len(fig.Shapes) > 0 {
			lines = append(lines, r.field("Tracés", r.elements(fig.Shapes, stmt.Visibility, false)))
		}
		if !stmt.Visibility.HideConstructions {
			lines = append(lines, r.st.dim.Render("constructions visibles"))
		}
		if !stmt.Visibility.HideAnnotations {
			lines = append(lines, r.st.dim.Render("annotations visibles"))
		}
	}
	if len(stmt.Unresolved) > 0 {
		lines = append(lines, "", r.st.warning.Render("Non résolus : "+strings.Join(stmt.Unresolved, ", ")))
	}
	return r.card(lines...)
}

// Corrige is the answer-key view: every element, hidden ones marked, plus
// the solution values.
func (r *Renderer) Corrige(stmt *statement.Statement, spec *mathspec.Spec) string {
	lines := []string{r.st.title.Render("Corrigé"), ""}
	if fig := spec.Figure; fig != nil {
		lines = append(lines, r.field("Points", r.elements(fig.Points, stmt.Visibility, true)))
		if len(fig.Shapes) > 0 {
			lines = append(lines, r.field("Tracés", r.elements(fig.Shapes, stmt.Visibility, true)))
		}
		lines = append(lines, "")
	}
	for _, k := range slices.Sorted(maps.Keys(stmt.Solution)) {
		lines = append(lines, r.field(k, r.st.answer.Render(stmt.Solution[k])))
	}
	return r.card(lines...)
}

func (r *Renderer) elements(names []string, d visibility.Decision, reveal bool) string {
	out := make([]string, len(names))
	for i, n := range names {
		switch {
		case !d.Hides(n):
			out[i] = r.st.shown.Render(n)
		case reveal:
			out[i] = r.st.hidden.Render(n) + r.st.dim.Render(" (masqué)")
		default:
			out[i] = r.st.hidden.Render(maskedElement)
		}
	}
	return strings.Join(out, ", ")
}

// Decision renders a visibility decision on its own.
func (r *Renderer) Decision(d visibility.Decision) string {
	hidden := "aucun"
	if len(d.ElementsToHide) > 0 {
		hidden = strings.Join(d.ElementsToHide, ", ")
	}
	return r.card(
		r.st.title.Render("Visibilité"),
		r.field("Type", string(d.Kind)),
		r.field("Masqués", hidden),
		r.field("Masquer constructions", yesNo(d.HideConstructions)),
		r.field("Masquer annotations", yesNo(d.HideAnnotations)),
	)
}

// Metrics renders the template cache counters.
func (r *Renderer) Metrics(m templatecache.Metrics) string {
	return r.card(
		r.st.title.Render("Cache de gabarits"),
		r.field("Entrées", fmt.Sprint(m.CacheSize)),
		r.field("Requêtes", fmt.Sprintf("%d (%d hits, %d misses)", m.TotalRequests, m.Hits, m.Misses)),
		r.field("Taux de hit", fmt.Sprintf("%.1f %%", m.HitRatePercent)),
		r.field("Tokens économisés", fmt.Sprint(m.EstimatedTokensSaved)),
		r.field("Coût économisé", fmt.Sprintf("$%.4f", m.EstimatedCostSaved)),
	)
}

func yesNo(b bool) string {
	if b {
		return "oui"
	}
	return "non"
}
