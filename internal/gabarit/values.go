package gabarit

import (
	"fmt"
	"strings"

	"github.com/abhisek/gabarit/internal/mathspec"
	"github.com/abhisek/gabarit/internal/textnorm"
)

// Candidate parameter names, highest priority first. Upstream generators
// renamed these keys several times; every known spelling is listed.
var (
	keysPointA  = []string{"point_original", "point_a", "point_initial"}
	keysPointB  = []string{"point_image", "point_b", "point_symetrique"}
	keysCoordsA = []string{"coord_original", "coord_a", "coord_initial", "coordonnees_original"}
	keysAxeType = []string{"axe_type", "type_axe", "axis_type"}
	keysAxeVal  = []string{"axe_valeur", "valeur_axe", "axis_value", "axe_position"}
	keysAxeNom  = []string{"axe_nom", "nom_axe", "axis_name"}
	keysCentre  = []string{"centre", "point_centre", "center"}
	keysCoordsO = []string{"coord_centre", "coord_o", "coordonnees_centre"}
	keysVecteur = []string{"vecteur", "vector", "translation"}
	keysVecNom  = []string{"nom_vecteur", "vecteur_nom", "vector_name"}
)

const (
	defaultPointA = "M"
	defaultCentre = "O"
	defaultAxeNom = "(d)"
	defaultVecNom = "u"
)

// extraction separates what may appear in a sujet from the answers that
// only the corrigé may show.
type extraction struct {
	values  map[string]string
	answers map[string]string
}

type extractor func(p mathspec.Params) extraction

type family struct {
	key     string
	extract extractor
}

// families maps a normalized chapter family to its extractor. A chapter
// belongs to the first family whose key it contains.
var families = []family{
	{key: "symetrie_axiale", extract: axialValues},
	{key: "symetrie_centrale", extract: centralValues},
	{key: "translation", extract: translationValues},
}

func familyFor(chapter string) (family, bool) {
	k := textnorm.Key(chapter)
	for _, f := range families {
		if strings.Contains(k, f.key) {
			return f, true
		}
	}
	return family{}, false
}

func (l *Loader) extract(spec *mathspec.Spec) extraction {
	f, ok := familyFor(spec.Chapter)
	if !ok {
		l.log.Warn("no value extractor for chapter", "chapter", spec.Chapter)
		return extraction{values: map[string]string{}, answers: map[string]string{}}
	}
	params := spec.Params
	if params == nil {
		params = mathspec.Params{}
	}
	return f.extract(params)
}

// Prepare returns the sujet values and the answers from one extraction.
func (l *Loader) Prepare(spec *mathspec.Spec) (values, answers map[string]string) {
	ex := l.extract(spec)
	return ex.values, ex.answers
}

// PrepareInterpolationValues returns the values a sujet template may use.
// An unknown chapter family yields an empty map.
func (l *Loader) PrepareInterpolationValues(spec *mathspec.Spec) map[string]string {
	return l.extract(spec).values
}

// PrepareSolutionValues returns the sujet values plus the answers, for
// corrigé templates.
func (l *Loader) PrepareSolutionValues(spec *mathspec.Spec) map[string]string {
	ex := l.extract(spec)
	out := make(map[string]string, len(ex.values)+len(ex.answers))
	for k, v := range ex.values {
		out[k] = v
	}
	for k, v := range ex.answers {
		out[k] = v
	}
	return out
}

// AnswerPlaceholders names the placeholders that carry answers for spec.
// A sujet template must not reference any of them.
func (l *Loader) AnswerPlaceholders(spec *mathspec.Spec) []string {
	ex := l.extract(spec)
	out := make([]string, 0, len(ex.answers))
	for k := range ex.answers {
		out = append(out, k)
	}
	return out
}

// pointNames resolves the original point and its image. The image
// defaults to the original name primed.
func pointNames(p mathspec.Params) (a, b string) {
	a = defaultPointA
	if pt, ok := p.Point(keysPointA...); ok && pt.Name != "" {
		a = pt.Name
	}
	b = a + "'"
	if pt, ok := p.Point(keysPointB...); ok && pt.Name != "" {
		b = pt.Name
	}
	return a, b
}

// coordsOf reads coordinates embedded in the point parameter first, then
// the dedicated coordinate keys, then defaults to the origin.
func coordsOf(p mathspec.Params, pointKeys, coordKeys []string) (float64, float64) {
	if pt, ok := p.Point(pointKeys...); ok && pt.HasCoords {
		return pt.X, pt.Y
	}
	if x, y, ok := p.Coords(coordKeys...); ok {
		return x, y
	}
	return 0, 0
}

func putCoords(m map[string]string, prefix string, x, y float64) {
	m[prefix+"_x"] = mathspec.FormatNumber(x)
	m[prefix+"_y"] = mathspec.FormatNumber(y)
}

func axialValues(p mathspec.Params) extraction {
	a, b := pointNames(p)
	x, y := coordsOf(p, keysPointA, keysCoordsA)

	axeType, _ := p.String(keysAxeType...)
	axeType = textnorm.Key(axeType)
	axeVal, hasVal := p.Number(keysAxeVal...)
	axeNom, ok := p.String(keysAxeNom...)
	if !ok || axeNom == "" {
		axeNom = defaultAxeNom
	}

	values := map[string]string{
		"pointA":  a,
		"pointB":  b,
		"axeType": axeType,
		"axeNom":  axeNom,
	}
	putCoords(values, "coordA", x, y)
	if hasVal {
		values["axeValeur"] = mathspec.FormatNumber(axeVal)
	}

	answers := map[string]string{}
	switch {
	case axeType == "vertical" && hasVal:
		values["axeDesc"] = fmt.Sprintf("l'axe vertical x = %s", mathspec.FormatNumber(axeVal))
		putCoords(answers, "coordB", 2*axeVal-x, y)
	case axeType == "horizontal" && hasVal:
		values["axeDesc"] = fmt.Sprintf("l'axe horizontal y = %s", mathspec.FormatNumber(axeVal))
		putCoords(answers, "coordB", x, 2*axeVal-y)
	case axeType == "diagonale" || axeType == "diagonal" || axeType == "oblique":
		values["axeDesc"] = "la droite d'équation y = x"
		putCoords(answers, "coordB", y, x)
	default:
		values["axeDesc"] = "l'axe " + axeNom
	}
	return extraction{values: values, answers: answers}
}

func centralValues(p mathspec.Params) extraction {
	a, b := pointNames(p)
	x, y := coordsOf(p, keysPointA, keysCoordsA)

	centre := defaultCentre
	if pt, ok := p.Point(keysCentre...); ok && pt.Name != "" {
		centre = pt.Name
	}
	ox, oy := coordsOf(p, keysCentre, keysCoordsO)

	values := map[string]string{
		"pointA": a,
		"pointB": b,
		"centre": centre,
	}
	putCoords(values, "coordA", x, y)
	putCoords(values, "coordO", ox, oy)

	answers := map[string]string{}
	putCoords(answers, "coordB", 2*ox-x, 2*oy-y)
	return extraction{values: values, answers: answers}
}

func translationValues(p mathspec.Params) extraction {
	a, b := pointNames(p)
	x, y := coordsOf(p, keysPointA, keysCoordsA)
	vx, vy, _ := p.Coords(keysVecteur...)

	nom, ok := p.String(keysVecNom...)
	if !ok || nom == "" {
		nom = defaultVecNom
	}

	desc := fmt.Sprintf("le vecteur %s de coordonnées (%s ; %s)",
		nom, mathspec.FormatNumber(vx), mathspec.FormatNumber(vy))

	values := map[string]string{
		"pointA":      a,
		"pointB":      b,
		"vecteur":     nom,
		"vecteurDesc": desc,
	}
	putCoords(values, "coordA", x, y)
	putCoords(values, "vecteur", vx, vy)

	answers := map[string]string{}
	putCoords(answers, "coordB", x+vx, y+vy)
	return extraction{values: values, answers: answers}
}
