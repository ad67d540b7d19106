// Package statement assembles exercise sujets. A template is resolved from
// the gabarits first, then the template cache, then the generative
// fallback; it is interpolated with the values extracted from the spec and
// paired with the visibility decision for the figure.
package statement

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/gabarit/internal/mathspec"
	"github.com/abhisek/gabarit/internal/style"
	"github.com/abhisek/gabarit/internal/visibility"
)

var (
	// ErrNoTemplate means no gabarit or cached template exists and no
	// fallback is configured.
	ErrNoTemplate = errors.New("no statement template available")

	// ErrAnswerLeak means a template references an answer placeholder.
	ErrAnswerLeak = errors.New("template reveals the answer")
)

// LeakError carries the offending placeholders. It matches ErrAnswerLeak
// under errors.Is.
type LeakError struct {
	Source       Source
	Placeholders []string
}

func (e *LeakError) Error() string {
	return fmt.Sprintf("%s template reveals the answer through %v", e.Source, e.Placeholders)
}

func (e *LeakError) Is(target error) bool { return target == ErrAnswerLeak }

// Source says where a template came from.
type Source string

const (
	SourceGabarit  Source = "gabarit"
	SourceCache    Source = "cache"
	SourceFallback Source = "fallback"
)

// Statement is one generated sujet.
type Statement struct {
	ID       string      `json:"id"`
	CacheKey string      `json:"cache_key"`
	Style    style.Style `json:"style"`
	Source   Source      `json:"source"`
	Template string      `json:"template"`
	Text     string      `json:"text"`

	// Unresolved lists placeholders left verbatim in Text because the
	// spec did not provide a value.
	Unresolved []string `json:"unresolved,omitempty"`

	// Solution holds the sujet values plus the answers, for the corrigé.
	Solution map[string]string `json:"solution"`

	Visibility visibility.Decision `json:"visibility"`
}

// Options tunes one Generate call.
type Options struct {
	// Style forces a style. Empty picks one at random.
	Style style.Style

	// Theme overrides Spec.Theme in the cache key.
	Theme string

	// Exclude is added to the recently used styles when picking.
	Exclude []style.Style
}

// TemplateRequest is what a Fallback is asked to write.
type TemplateRequest struct {
	Spec      *mathspec.Spec
	Style     style.Style
	Directive string

	// Placeholders are the names the template may use, as {name}.
	Placeholders []string

	// Forbidden are answer placeholders the template must not use.
	Forbidden []string
}

// Fallback writes a template when neither a gabarit nor the cache has one.
type Fallback interface {
	GenerateTemplate(ctx context.Context, req TemplateRequest) (string, error)
}
