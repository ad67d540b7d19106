// Package llm is the generative-text fallback used when neither a gabarit
// nor the template cache can supply a statement template. Every call is
// expensive; callers write successful results back to the cache.
package llm

import (
	"context"
	"encoding/json"
)

// Provider sends one request to a text model.
type Provider interface {
	// Generate returns the model output. When req.Schema is set the
	// Content is JSON validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the configured model identifier.
	ModelID() string
}

// Request is a single-turn or multi-turn prompt.
type Request struct {
	System      string
	Messages    []Message
	Schema      *Schema
	MaxTokens   int
	Temperature float64 // 0 leaves the provider default
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the sender of a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema asks the provider for structured JSON output.
type Schema struct {
	// Name is kebab-case, e.g. "statement-template".
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the model output.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage is the token count of one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
