// Package style enumerates statement formulation styles, picks one for a
// new statement and builds the template cache key.
package style

import (
	"strings"

	"github.com/abhisek/gabarit/internal/textnorm"
)

// Style is one of the ten formulation styles. The set is closed.
type Style string

const (
	Concis              Style = "concis"
	AcademiqueClassique Style = "academique_classique"
	AcademiqueFormel    Style = "academique_formel"
	Narratif            Style = "narratif"
	Guide               Style = "guide"
	Defi                Style = "defi"
	Oral                Style = "oral"
	PasAPas             Style = "pas_a_pas"
	Inductif            Style = "inductif"
	QuestionReponse     Style = "question_reponse"
)

// Default is used whenever a style is missing or unknown.
const Default = AcademiqueClassique

// All returns every style in a stable order.
func All() []Style {
	return []Style{
		Concis,
		AcademiqueClassique,
		AcademiqueFormel,
		Narratif,
		Guide,
		Defi,
		Oral,
		PasAPas,
		Inductif,
		QuestionReponse,
	}
}

// Valid reports whether s is one of the ten styles.
func (s Style) Valid() bool {
	_, ok := directives[s]
	return ok
}

// Parse maps a user supplied label ("Pas à pas", "question-reponse") to a
// Style.
func Parse(label string) (Style, bool) {
	key := strings.NewReplacer("-", "_", "à", "a").Replace(textnorm.Key(label))
	s := Style(key)
	return s, s.Valid()
}

// BuildCacheKey returns the deterministic cache key for a formulation.
// The theme segment is only appended when theme is set, so keys built
// without it never change when new optional dimensions are added.
func BuildCacheKey(chapter, kind, difficulty string, s Style, theme string) string {
	parts := []string{
		textnorm.Key(chapter),
		textnorm.Key(kind),
		textnorm.Key(difficulty),
		textnorm.Key(string(s)),
	}
	key := strings.Join(parts, "__")
	if theme != "" {
		key += "__theme_" + textnorm.Key(theme)
	}
	return key
}
