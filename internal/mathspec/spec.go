// Package mathspec defines the structured exercise specification produced
// upstream by the math spec generator. The core reads it, never writes it.
package mathspec

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Spec describes one exercise instance.
type Spec struct {
	// Chapter is the curriculum chapter, e.g. "Symétrie axiale".
	Chapter string `json:"chapitre"`

	// Kind is the pedagogical exercise kind, e.g. "trouver_valeur".
	Kind string `json:"type_exercice"`

	// Difficulty is a free-form level label ("facile", "moyen", ...).
	Difficulty string `json:"difficulte"`

	// Params holds the named values computed upstream (points,
	// coordinates, axis description, lengths...). Key names drift between
	// generator versions; read them through Params accessors.
	Params Params `json:"parametres"`

	// Figure is set for geometric exercises.
	Figure *Figure `json:"figure,omitempty"`

	// Theme is an optional context tag (sport, cuisine...).
	Theme string `json:"theme,omitempty"`
}

// Figure is the geometric description attached to a Spec.
type Figure struct {
	Type string `json:"type"`

	// Points is ordered. By convention the object the student must find
	// is listed last.
	Points []string `json:"points"`

	Lengths    map[string]float64 `json:"longueurs,omitempty"`
	Angles     map[string]float64 `json:"angles,omitempty"`
	Properties []string           `json:"proprietes,omitempty"`

	// Shapes names the drawn objects (segments, triangles, images...).
	Shapes []string `json:"formes,omitempty"`

	// ToComplete marks a structure the student has to finish drawing.
	ToComplete bool `json:"a_completer,omitempty"`
}

// IsGeometry reports whether the spec carries a figure with points.
func (s *Spec) IsGeometry() bool {
	return s.Figure != nil && len(s.Figure.Points) > 0
}

// Validate checks the fields the core relies on and the figure invariant:
// every point named by a point parameter must be declared in the figure.
func (s *Spec) Validate() error {
	if strings.TrimSpace(s.Chapter) == "" {
		return errors.New("chapitre is required")
	}
	if s.Figure == nil {
		return nil
	}

	declared := make(map[string]bool, len(s.Figure.Points))
	for _, p := range s.Figure.Points {
		declared[p] = true
	}

	var missing []string
	for key := range s.Params {
		if !isPointKey(key) {
			continue
		}
		pt, ok := s.Params.Point(key)
		if !ok || pt.Name == "" {
			continue
		}
		if !declared[pt.Name] {
			missing = append(missing, fmt.Sprintf("%s (%s)", pt.Name, key))
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("points not declared in figure: %s", strings.Join(missing, ", "))
	}
	return nil
}

func isPointKey(key string) bool {
	return strings.HasPrefix(key, "point_") || strings.HasPrefix(key, "centre")
}

// Parse decodes a Spec from JSON.
func Parse(data []byte) (*Spec, error) {
	var s Spec
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode spec: %w", err)
	}
	if s.Params == nil {
		s.Params = Params{}
	}
	return &s, nil
}

// ReadFile decodes a Spec from a JSON file.
func ReadFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec: %w", err)
	}
	return Parse(data)
}
