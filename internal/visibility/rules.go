package visibility

import "strings"

type rule func(meta Metadata) Decision

var rules = map[Kind]rule{
	KindFindValue:         findValue,
	KindVerifyProperty:    showAll(KindVerifyProperty),
	KindCompleteStructure: completeStructure,
	KindNarratedProblem:   showAll(KindNarratedProblem),
	KindUnknown:           showAll(KindUnknown),
}

// Decide returns the visibility decision for an exercise. An unrecognized
// kind is classified from meta; metadata without any evidence resolves to
// KindUnknown, which hides nothing.
func Decide(kind string, meta Metadata) Decision {
	k, ok := ParseKind(kind)
	if !ok {
		k = DetectKind(meta)
	}
	return rules[k](meta)
}

var verifyMarkers = []string{"symetriques_", "alignes_", "orthogonaux_"}

// DetectKind classifies an exercise from its declared properties.
func DetectKind(meta Metadata) Kind {
	if meta.empty() {
		return KindUnknown
	}

	hasTriangle := false
	for _, p := range meta.Properties {
		lp := strings.ToLower(p)
		for _, marker := range verifyMarkers {
			if strings.Contains(lp, marker) {
				return KindVerifyProperty
			}
		}
		if strings.Contains(lp, "triangle") {
			hasTriangle = true
		}
	}
	if hasTriangle && meta.Complete {
		return KindCompleteStructure
	}
	return KindFindValue
}

func findValue(meta Metadata) Decision {
	var hide hideSet
	if meta.IsGeometry && len(meta.Points) >= 2 {
		hide.add(meta.Points[len(meta.Points)-1])
	}
	hide.addShapesContaining(meta.Shapes, "image", "prime")
	if meta.AnswerField != "" {
		hide.add(meta.AnswerField)
	}
	return Decision{
		ElementsToHide:    hide.list(),
		HideConstructions: true,
		HideAnnotations:   true,
		Kind:              KindFindValue,
	}
}

func completeStructure(meta Metadata) Decision {
	var hide hideSet
	hide.addShapesContaining(meta.Shapes, "image", "complete", "prime")
	return Decision{
		ElementsToHide:    hide.list(),
		HideConstructions: true,
		HideAnnotations:   true,
		Kind:              KindCompleteStructure,
	}
}

// showAll hides nothing: the student needs every object visible.
func showAll(k Kind) rule {
	return func(Metadata) Decision {
		return Decision{ElementsToHide: []string{}, Kind: k}
	}
}

// hideSet keeps insertion order and drops duplicates.
type hideSet struct {
	names []string
	seen  map[string]bool
}

func (h *hideSet) add(name string) {
	if h.seen == nil {
		h.seen = make(map[string]bool)
	}
	if !h.seen[name] {
		h.seen[name] = true
		h.names = append(h.names, name)
	}
}

func (h *hideSet) addShapesContaining(shapes []string, markers ...string) {
	for _, s := range shapes {
		ls := strings.ToLower(s)
		for _, m := range markers {
			if strings.Contains(ls, m) {
				h.add(s)
				break
			}
		}
	}
}

func (h *hideSet) list() []string {
	if h.names == nil {
		return []string{}
	}
	return h.names
}
