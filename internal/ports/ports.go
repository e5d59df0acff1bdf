// Package ports defines the interfaces between the application core and its
// external adapters.
//
// The pipeline itself (encoding, extraction, plan validation, retry policy)
// lives in the application core; everything that touches the outside world —
// the HTTP transport, the filesystem context probe, the history database —
// hides behind one of these interfaces so the core stays testable with stubs.
package ports

import (
	"context"

	"github.com/mtakeda/plansh/internal/domain"
)

// Transport performs the HTTP POST for a provider request and returns the raw
// status and body. TLS, pooling, and timeouts are its concern alone; failures
// surface wrapped in domain.ErrUnavailable.
type Transport interface {
	PostJSON(ctx context.Context, url string, headers map[string]string, body []byte) (status int, respBody []byte, err error)
}

// ContextCollector gathers environmental context (cwd, files, git, shell) to
// enrich AI prompts.
type ContextCollector interface {
	Collect(ctx context.Context, cfg domain.Config) (domain.ContextInfo, error)
}

// PlanStore persists generated plans for the history command.
type PlanStore interface {
	Save(record domain.PlanRecord) error
	Records(limit int, search string) ([]domain.PlanRecord, error)
	Clear() error
}

// PlanCache memoizes query results keyed by a content hash.
type PlanCache interface {
	Get(key string) (domain.CacheEntry, bool, error)
	Set(entry domain.CacheEntry) error
	Clear() error
}

// PlanExecutor runs a validated CommandPlan and evaluates its expectations
// and failure signals against the captured output.
type PlanExecutor interface {
	Execute(ctx context.Context, plan domain.CommandPlan) (domain.ExecutionResult, error)
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
