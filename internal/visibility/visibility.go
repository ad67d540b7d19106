// Package visibility decides which elements of an exercise the student
// statement (sujet) must hide and the answer key (corrigé) reveals.
//
// Decide is pure and total: any input yields a Decision.
package visibility

import (
	"strings"

	"github.com/abhisek/gabarit/internal/mathspec"
	"github.com/abhisek/gabarit/internal/textnorm"
)

// Kind is the pedagogical kind of an exercise.
type Kind string

const (
	// KindFindValue: the student must produce an object or value not shown.
	KindFindValue Kind = "trouver_valeur"
	// KindVerifyProperty: the student judges a property of visible objects.
	KindVerifyProperty Kind = "verifier_propriete"
	// KindCompleteStructure: the student completes a partial structure.
	KindCompleteStructure Kind = "completer_structure"
	// KindNarratedProblem: context text followed by questions.
	KindNarratedProblem Kind = "probleme_narratif"
	// KindUnknown is used when nothing can be classified.
	KindUnknown Kind = "inconnu"
)

var kindAliases = map[string]Kind{
	"trouver_valeur":      KindFindValue,
	"find_value":          KindFindValue,
	"verifier_propriete":  KindVerifyProperty,
	"verify_property":     KindVerifyProperty,
	"completer_structure": KindCompleteStructure,
	"complete_structure":  KindCompleteStructure,
	"probleme_narratif":   KindNarratedProblem,
	"narrated_problem":    KindNarratedProblem,
}

// ParseKind recognizes the four pedagogical kinds, case and accent
// insensitive.
func ParseKind(s string) (Kind, bool) {
	k, ok := kindAliases[strings.ReplaceAll(textnorm.Key(s), "-", "_")]
	return k, ok
}

// Metadata is the geometric description the engine classifies on.
type Metadata struct {
	// Points is ordered; the object to find is listed last.
	Points     []string `json:"points"`
	Shapes     []string `json:"shapes,omitempty"`
	IsGeometry bool     `json:"is_geometry"`
	Properties []string `json:"properties,omitempty"`

	// Complete flags a structure the student has to finish.
	Complete bool `json:"complete,omitempty"`

	// AnswerField names a textual answer field, if the exercise has one.
	AnswerField string `json:"answer_field,omitempty"`
}

func (m Metadata) empty() bool {
	return len(m.Points) == 0 && len(m.Shapes) == 0 && len(m.Properties) == 0 &&
		!m.Complete && m.AnswerField == ""
}

// answerFieldKeys are the spec parameters holding a textual answer.
var answerFieldKeys = []string{"reponse", "champ_reponse", "answer"}

// MetadataFromSpec builds Metadata from a math spec.
func MetadataFromSpec(spec *mathspec.Spec) Metadata {
	var m Metadata
	if f := spec.Figure; f != nil {
		m.Points = f.Points
		m.Shapes = f.Shapes
		m.Properties = f.Properties
		m.Complete = f.ToComplete
		m.IsGeometry = len(f.Points) > 0
	}
	if _, key, ok := spec.Params.First(answerFieldKeys...); ok {
		m.AnswerField = key
	}
	return m
}

// Decision is what the figure renderer and the statement assembler must
// honor: ElementsToHide never appear in the sujet.
type Decision struct {
	ElementsToHide    []string `json:"elements_to_hide"`
	HideConstructions bool     `json:"hide_constructions"`
	HideAnnotations   bool     `json:"hide_annotations"`
	Kind              Kind     `json:"kind"`
}

// Hides reports whether name must be hidden from the sujet.
func (d Decision) Hides(name string) bool {
	for _, e := range d.ElementsToHide {
		if e == name {
			return true
		}
	}
	return false
}
