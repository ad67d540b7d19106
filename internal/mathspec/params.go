package mathspec

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Params is the loosely typed parameter bag of a Spec.
type Params map[string]any

// First returns the value of the first key present, in priority order,
// together with the key that matched. This is the single place where
// legacy key fallbacks are resolved.
func (p Params) First(keys ...string) (any, string, bool) {
	for _, k := range keys {
		if v, ok := p[k]; ok && v != nil {
			return v, k, true
		}
	}
	return nil, "", false
}

// String returns the first present key rendered as a string.
func (p Params) String(keys ...string) (string, bool) {
	v, _, ok := p.First(keys...)
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case float64, int, int64, json.Number:
		n, _ := toFloat(t)
		return FormatNumber(n), true
	}
	return "", false
}

// Number returns the first present key that holds a number.
func (p Params) Number(keys ...string) (float64, bool) {
	for _, k := range keys {
		if v, ok := p[k]; ok {
			if n, ok := toFloat(v); ok {
				return n, true
			}
		}
	}
	return 0, false
}

// Point describes a named point, optionally with coordinates.
type Point struct {
	Name      string
	X, Y      float64
	HasCoords bool
}

// Point decodes the first present key as a point. Accepted shapes:
// "M", {"nom":"M","x":3,"y":5}, {"name":"M","coords":[3,5]}, [3,5].
func (p Params) Point(keys ...string) (Point, bool) {
	v, _, ok := p.First(keys...)
	if !ok {
		return Point{}, false
	}
	return toPoint(v)
}

// Coords decodes the first present key as an (x, y) pair.
func (p Params) Coords(keys ...string) (x, y float64, ok bool) {
	for _, k := range keys {
		v, present := p[k]
		if !present {
			continue
		}
		if pt, ok := toPoint(v); ok && pt.HasCoords {
			return pt.X, pt.Y, true
		}
	}
	return 0, 0, false
}

func toPoint(v any) (Point, bool) {
	switch t := v.(type) {
	case string:
		return Point{Name: strings.TrimSpace(t)}, t != ""
	case []any:
		x, y, ok := pair(t)
		return Point{X: x, Y: y, HasCoords: ok}, ok
	case map[string]any:
		var pt Point
		for _, k := range []string{"nom", "name", "label"} {
			if s, ok := t[k].(string); ok {
				pt.Name = s
				break
			}
		}
		x, xok := toFloat(t["x"])
		y, yok := toFloat(t["y"])
		if xok && yok {
			pt.X, pt.Y, pt.HasCoords = x, y, true
		} else if arr, ok := firstArray(t, "coords", "coordonnees"); ok {
			pt.X, pt.Y, pt.HasCoords = pair(arr)
		}
		return pt, pt.Name != "" || pt.HasCoords
	}
	return Point{}, false
}

func firstArray(m map[string]any, keys ...string) ([]any, bool) {
	for _, k := range keys {
		if arr, ok := m[k].([]any); ok {
			return arr, true
		}
	}
	return nil, false
}

func pair(arr []any) (float64, float64, bool) {
	if len(arr) != 2 {
		return 0, 0, false
	}
	x, xok := toFloat(arr[0])
	y, yok := toFloat(arr[1])
	return x, y, xok && yok
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(t), ",", "."), 64)
		return f, err == nil
	}
	return 0, false
}

// FormatNumber renders n without trailing zeros ("3", "2.5").
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
