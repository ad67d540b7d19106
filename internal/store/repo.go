package store

import (
	"context"
	"time"
)

// QueryOpts filters and pages event queries.
type QueryOpts struct {
	Limit   int   // 0 = unlimited
	After   int64 // id > After
	Purpose string
}

// LLMRequestEventData is what a provider decorator records per call.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLMRequestEventData.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// UsageByPurpose aggregates calls per purpose.
type UsageByPurpose struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// UsageByModel aggregates tokens per model for cost estimates.
type UsageByModel struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo stores LLM request events.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns nil, nil when id does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]UsageByPurpose, error)
	LLMUsageByModel(ctx context.Context) ([]UsageByModel, error)
}

// StatementEventData describes one generated statement.
type StatementEventData struct {
	StatementID string
	Chapter     string
	Kind        string
	Difficulty  string
	Style       string
	Source      string
	CacheKey    string
	Text        string
	Unresolved  int
}

// StatementEvent is a stored StatementEventData.
type StatementEvent struct {
	ID        int
	Timestamp time.Time
	StatementEventData
}

// StatementRepo stores the statement history.
type StatementRepo interface {
	AppendStatement(ctx context.Context, data StatementEventData) error

	// RecentStyles returns the styles of the last n statements for
	// (chapter, kind), newest first.
	RecentStyles(ctx context.Context, chapter, kind string, n int) ([]string, error)

	// RecentStatements returns the last n statement texts for
	// (chapter, kind), newest first.
	RecentStatements(ctx context.Context, chapter, kind string, n int) ([]StatementEvent, error)
}
