package domain

import (
	"context"
	"time"
)

// QueryRequest captures user intent originating from the CLI or an embedding
// consumer.
type QueryRequest struct {
	Context          context.Context
	Prompt           string
	ProviderOverride string
	ModelOverride    string

	// PlanMode asks for a structured CommandPlan; when false the legacy
	// single-line command string is returned instead.
	PlanMode   bool
	MaxRetries int

	Snapshot    *TerminalSnapshot
	SkipContext bool
	SkipCache   bool
	Execute     bool
	Debug       bool
}

// QueryResponse is the canonical response propagated back to the CLI.
type QueryResponse struct {
	Command         string
	Plan            *CommandPlan
	NaturalLanguage string
	Provider        Provider
	ModelUsed       string
	Attempts        int
	FromCache       bool
	ExecutionResult *ExecutionResult
}

// PlanRecord is one persisted history entry.
type PlanRecord struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Prompt    string    `json:"prompt"`
	Provider  string    `json:"provider"`
	Model     string    `json:"model"`
	PlanID    string    `json:"plan_id"`
	Command   string    `json:"command"`
	Args      []string  `json:"args"`
	Executed  bool      `json:"executed"`
	ExitCode  int       `json:"exit_code"`
}

// CacheEntry is one cached query result.
type CacheEntry struct {
	Key       string    `json:"key"`
	Prompt    string    `json:"prompt"`
	Provider  string    `json:"provider"`
	Command   string    `json:"command"`
	PlanJSON  string    `json:"plan_json,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// QueryService exposes the use-case boundary for handling a query.
type QueryService interface {
	Run(QueryRequest) (QueryResponse, error)
}
