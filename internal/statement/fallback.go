package statement

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/gabarit/internal/llm"
	"github.com/abhisek/gabarit/internal/mathspec"
)

// TemplateSchema is the structured output asked from the model.
var TemplateSchema = &llm.Schema{
	Name:        "statement-template",
	Description: "A French exercise statement template with {placeholder} slots",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"template": map[string]any{
				"type":        "string",
				"description": "The statement in French, using only the listed {placeholders}",
			},
		},
		"required":             []any{"template"},
		"additionalProperties": false,
	},
}

const systemPrompt = `Tu rédiges des gabarits d'énoncés d'exercices de mathématiques pour le collège, en français.

Règles :
- Écris un seul énoncé, autonome, d'une à quatre phrases.
- Les valeurs numériques et les noms de points ne sont jamais écrits en clair : utilise uniquement les emplacements {nom} fournis.
- N'utilise jamais un emplacement de la liste « interdits » : ce sont les réponses attendues.
- Respecte la consigne de style.
- Réponds uniquement avec l'objet JSON demandé.`

// LLMConfig tunes an LLMFallback.
type LLMConfig struct {
	MaxTokens   int
	Temperature float64

	// Timeout bounds one template request including retries.
	Timeout time.Duration
}

func DefaultLLMConfig() LLMConfig {
	return LLMConfig{MaxTokens: 512, Temperature: 0.8, Timeout: 30 * time.Second}
}

// LLMFallback asks a text model for a template.
type LLMFallback struct {
	provider llm.Provider
	cfg      LLMConfig
}

func NewLLMFallback(p llm.Provider, cfg LLMConfig) *LLMFallback {
	return &LLMFallback{provider: p, cfg: cfg}
}

type templateOutput struct {
	Template string `json:"template"`
}

func (f *LLMFallback) GenerateTemplate(ctx context.Context, req TemplateRequest) (string, error) {
	ctx = llm.WithPurpose(ctx, "statement-template")
	if f.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.cfg.Timeout)
		defer cancel()
	}

	resp, err := f.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(req)}},
		Schema:      TemplateSchema,
		MaxTokens:   f.cfg.MaxTokens,
		Temperature: f.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("LLM generation failed: %w", err)
	}

	var out templateOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("parse LLM response: %w", err)
	}
	return out.Template, nil
}

func buildUserMessage(req TemplateRequest) string {
	var b strings.Builder
	spec := req.Spec

	fmt.Fprintf(&b, "Chapitre : %s\n", spec.Chapter)
	fmt.Fprintf(&b, "Type d'exercice : %s\n", spec.Kind)
	if spec.Difficulty != "" {
		fmt.Fprintf(&b, "Difficulté : %s\n", spec.Difficulty)
	}
	if spec.Theme != "" {
		fmt.Fprintf(&b, "Thème : %s\n", spec.Theme)
	}
	if spec.Figure != nil {
		fmt.Fprintf(&b, "Figure : %s\n", describeFigure(spec.Figure))
	}

	fmt.Fprintf(&b, "\nStyle : %s\n%s\n", req.Style, req.Directive)

	b.WriteString("\nEmplacements disponibles : ")
	b.WriteString(braced(req.Placeholders, "aucun"))
	b.WriteString("\nEmplacements interdits : ")
	b.WriteString(braced(req.Forbidden, "aucun"))
	return b.String()
}

func describeFigure(f *mathspec.Figure) string {
	parts := []string{f.Type}
	if len(f.Points) > 0 {
		parts = append(parts, "points "+strings.Join(f.Points, ", "))
	}
	if len(f.Properties) > 0 {
		parts = append(parts, "propriétés "+strings.Join(f.Properties, ", "))
	}
	return strings.Join(parts, " ; ")
}

func braced(names []string, empty string) string {
	if len(names) == 0 {
		return empty
	}
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = "{" + n + "}"
	}
	return strings.Join(out, ", ")
}
