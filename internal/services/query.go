// Package services contains the query orchestrator: credential validation,
// prompt assembly, the encode → transport → extract pipeline, the echo
// fallback, and the bounded plan-validation retry loop.
package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/mtakeda/plansh/assets"
	"github.com/mtakeda/plansh/internal/domain"
	contextcollector "github.com/mtakeda/plansh/internal/infrastructure/context"
	"github.com/mtakeda/plansh/internal/infrastructure/provider"
	"github.com/mtakeda/plansh/internal/infrastructure/term"
	"github.com/mtakeda/plansh/internal/ports"
)

// QueryService orchestrates the query lifecycle end-to-end. One request is in
// flight at a time; the only suspension point is the transport call.
type QueryService struct {
	Config           domain.Config
	Transport        ports.Transport
	ContextCollector ports.ContextCollector
	HistoryStore     ports.PlanStore
	CacheStore       ports.PlanCache
	Executor         ports.PlanExecutor
	Logger           ports.Logger

	// Sleep is the retry-delay hook, overridable in tests.
	Sleep func(time.Duration)
}

// ValidateConfig fails fast for key-requiring providers before any network
// call: a missing key is MissingAPIKey, a key shorter than the plausibility
// threshold is InvalidAPIKey.
func ValidateConfig(cfg domain.Config) error {
	if !cfg.Provider.RequiresAPIKey() {
		return nil
	}
	key := cfg.APIKeyFor(cfg.Provider)
	if key == "" {
		return fmt.Errorf("%w: provider %s needs a key", domain.ErrMissingAPIKey, cfg.Provider)
	}
	if len(key) < domain.MinAPIKeyLength {
		return fmt.Errorf("%w: key for %s is too short", domain.ErrInvalidAPIKey, cfg.Provider)
	}
	return nil
}

// Run processes a single natural-language query.
func (s *QueryService) Run(req domain.QueryRequest) (domain.QueryResponse, error) {
	if s.Transport == nil || s.Logger == nil {
		return domain.QueryResponse{}, errors.New("services.QueryService dependencies not satisfied")
	}

	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := s.effectiveConfig(req)
	if err != nil {
		return domain.QueryResponse{}, err
	}

	contextText := s.collectContext(ctx, cfg, req)
	snapshotText := term.Format(req.Snapshot)

	resp := domain.QueryResponse{
		NaturalLanguage: req.Prompt,
		Provider:        cfg.Provider,
		ModelUsed:       cfg.ModelFor(cfg.Provider),
	}

	if cached, ok := s.lookupCache(cfg, req); ok {
		return cached, nil
	}

	if req.PlanMode {
		plan, attempts, err := s.GeneratePlan(ctx, cfg, req.Prompt, contextText, snapshotText, req.MaxRetries)
		resp.Attempts = attempts
		if err != nil {
			return resp, err
		}
		resp.Plan = &plan
		resp.Command = plan.Command
	} else {
		text, err := s.Generate(ctx, cfg, req.Prompt, contextText, snapshotText, false)
		if err != nil {
			return resp, err
		}
		resp.Command = provider.CollapseLine(text)
		resp.Attempts = 1
	}

	s.storeCache(cfg, req, resp)
	s.recordHistory(cfg, req, resp)

	if req.Execute && resp.Plan != nil {
		s.executePlan(ctx, &resp)
	}

	return resp, nil
}

// Generate runs one query through encode → transport → extract. Its result is
// always "the text to act on": post-credential failures come back as a fixed
// message with a nil error. Only MissingAPIKey/InvalidAPIKey abort hard, and
// they do so before any network attempt. A Network/Unavailable failure on a
// non-echo provider is retried exactly once through echo; if that somehow
// fails too, the original error picks the message.
func (s *QueryService) Generate(ctx context.Context, cfg domain.Config, query, contextText, snapshotText string, planMode bool) (string, error) {
	if err := ValidateConfig(cfg); err != nil {
		return "", err
	}

	text, err := s.generateOnce(ctx, cfg, query, contextText, snapshotText, planMode)
	if err == nil {
		return text, nil
	}

	if errors.Is(err, domain.ErrUnavailable) && cfg.Provider != domain.ProviderEcho {
		s.Logger.Warn("provider unavailable, falling back to echo", map[string]interface{}{
			"provider": string(cfg.Provider),
			"error":    err.Error(),
		})
		fallback, fbErr := s.generateOnce(ctx, cfg.WithProvider(domain.ProviderEcho), query, contextText, snapshotText, planMode)
		if fbErr == nil {
			return fallback, nil
		}
	}

	return domain.FailureMessage(err), nil
}

func (s *QueryService) generateOnce(ctx context.Context, cfg domain.Config, query, contextText, snapshotText string, planMode bool) (string, error) {
	if cfg.Provider == domain.ProviderEcho {
		return echoCommand(query), nil
	}

	model := cfg.ModelFor(cfg.Provider)
	systemPrompt := buildSystemPrompt(cfg, contextText, snapshotText, planMode)
	body := provider.Encode(cfg.Provider, model, systemPrompt, query)

	s.Logger.Info("calling provider", map[string]interface{}{
		"provider": string(cfg.Provider),
		"model":    model,
	})

	status, respBody, err := s.Transport.PostJSON(ctx,
		provider.Endpoint(cfg, cfg.Provider, model),
		provider.Headers(cfg, cfg.Provider),
		body)
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", fmt.Errorf("%w: HTTP %d", domain.ErrUnavailable, status)
	}

	value, ok := provider.Extract(respBody, provider.ResponseField(cfg.Provider))
	if !ok {
		return "", fmt.Errorf("%w: field %q absent", domain.ErrBadResponse, provider.ResponseField(cfg.Provider))
	}
	return value, nil
}

// GeneratePlan wraps Generate in a bounded retry loop. Every attempt is a
// fresh model query: a validation failure re-prompts the model rather than
// re-parsing the same text. Exhausting the attempts yields ValidationFailed
// carrying the last reason.
func (s *QueryService) GeneratePlan(ctx context.Context, cfg domain.Config, query, contextText, snapshotText string, maxRetries int) (domain.CommandPlan, int, error) {
	if maxRetries <= 0 {
		maxRetries = cfg.MaxRetries()
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if attempt > 1 {
			s.sleep(retryDelay(cfg))
		}

		text, err := s.Generate(ctx, cfg, query, contextText, snapshotText, true)
		if err != nil {
			return domain.CommandPlan{}, attempt, err
		}

		plan, perr := provider.ParsePlan(text)
		if perr == nil {
			return plan, attempt, nil
		}
		lastErr = perr
		s.Logger.Warn("plan validation failed", map[string]interface{}{
			"attempt": attempt,
			"reason":  perr.Error(),
		})
	}

	return domain.CommandPlan{}, maxRetries,
		fmt.Errorf("%w after %d attempts: %v", domain.ErrValidationFailed, maxRetries, lastErr)
}

func (s *QueryService) effectiveConfig(req domain.QueryRequest) (domain.Config, error) {
	cfg := s.Config
	if req.ProviderOverride != "" {
		p, err := domain.ParseProvider(req.ProviderOverride)
		if err != nil {
			return domain.Config{}, err
		}
		cfg.Provider = p
	}
	if req.ModelOverride != "" {
		switch cfg.Provider {
		case domain.ProviderAnthropic:
			cfg.AnthropicModel = req.ModelOverride
		case domain.ProviderGemini:
			cfg.GeminiModel = req.ModelOverride
		case domain.ProviderOpenAI:
			cfg.OpenAIModel = req.ModelOverride
		case domain.ProviderOllama:
			cfg.OllamaModel = req.ModelOverride
		}
	}
	return cfg, nil
}

func (s *QueryService) collectContext(ctx context.Context, cfg domain.Config, req domain.QueryRequest) string {
	if req.SkipContext || !cfg.Context.Enabled || s.ContextCollector == nil {
		return ""
	}
	info, err := s.ContextCollector.Collect(ctx, cfg)
	if err != nil {
		s.Logger.Warn("context collection failed", map[string]interface{}{"error": err.Error()})
		return ""
	}
	return contextcollector.FormatContext(info)
}

func (s *QueryService) lookupCache(cfg domain.Config, req domain.QueryRequest) (domain.QueryResponse, bool) {
	if req.SkipCache || !cfg.Cache.Enabled || s.CacheStore == nil {
		return domain.QueryResponse{}, false
	}
	entry, found, err := s.CacheStore.Get(cacheKey(cfg, req))
	if err != nil || !found {
		return domain.QueryResponse{}, false
	}

	resp := domain.QueryResponse{
		NaturalLanguage: req.Prompt,
		Provider:        cfg.Provider,
		ModelUsed:       cfg.ModelFor(cfg.Provider),
		Command:         entry.Command,
		FromCache:       true,
	}
	if req.PlanMode {
		if entry.PlanJSON == "" {
			return domain.QueryResponse{}, false
		}
		plan, err := provider.ParsePlan(entry.PlanJSON)
		if err != nil {
			return domain.QueryResponse{}, false
		}
		resp.Plan = &plan
	}
	return resp, true
}

func (s *QueryService) storeCache(cfg domain.Config, req domain.QueryRequest, resp domain.QueryResponse) {
	if req.SkipCache || !cfg.Cache.Enabled || s.CacheStore == nil {
		return
	}
	entry := domain.CacheEntry{
		Key:       cacheKey(cfg, req),
		Prompt:    req.Prompt,
		Provider:  string(cfg.Provider),
		Command:   resp.Command,
		CreatedAt: time.Now(),
	}
	if resp.Plan != nil {
		if raw, err := json.Marshal(resp.Plan); err == nil {
			entry.PlanJSON = string(raw)
		}
	}
	if err := s.CacheStore.Set(entry); err != nil {
		s.Logger.Warn("cache write failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *QueryService) recordHistory(cfg domain.Config, req domain.QueryRequest, resp domain.QueryResponse) {
	if !cfg.History.Enabled || s.HistoryStore == nil {
		return
	}
	record := domain.PlanRecord{
		Timestamp: time.Now(),
		Prompt:    req.Prompt,
		Provider:  string(cfg.Provider),
		Model:     resp.ModelUsed,
		Command:   resp.Command,
	}
	if resp.Plan != nil {
		record.PlanID = resp.Plan.PlanID
		record.Args = resp.Plan.Args
	}
	if err := s.HistoryStore.Save(record); err != nil {
		s.Logger.Warn("history write failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *QueryService) executePlan(ctx context.Context, resp *domain.QueryResponse) {
	if s.Executor == nil {
		return
	}
	switch resp.Plan.ConfirmMode {
	case domain.ConfirmReject:
		resp.ExecutionResult = &domain.ExecutionResult{DryRunNotes: "plan marked reject, not executed"}
		return
	case domain.ConfirmPreview:
		resp.ExecutionResult = &domain.ExecutionResult{DryRunNotes: "plan marked preview, not executed"}
		return
	}

	result, err := s.Executor.Execute(ctx, *resp.Plan)
	if err != nil {
		s.Logger.Error("plan execution failed", err, map[string]interface{}{
			"command": resp.Plan.Command,
		})
	}
	resp.ExecutionResult = &result
}

func (s *QueryService) sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	if s.Sleep != nil {
		s.Sleep(d)
		return
	}
	time.Sleep(d)
}

func retryDelay(cfg domain.Config) time.Duration {
	delay := cfg.RetryDelay()
	if jitter := cfg.RetryJitter(); jitter > 0 {
		delay += time.Duration(rand.Int63n(int64(jitter)))
	}
	return delay
}

func buildSystemPrompt(cfg domain.Config, contextText, snapshotText string, planMode bool) string {
	base := assets.CommandPrompt
	if planMode {
		base = assets.PlanPrompt
	}

	parts := []string{strings.TrimSpace(base)}
	if cfg.PromptExtension != "" {
		parts = append(parts, strings.TrimSpace(cfg.PromptExtension))
	}
	if contextText != "" {
		parts = append(parts, "Current environment:\n"+contextText)
	}
	if snapshotText != "" {
		parts = append(parts, snapshotText)
	}
	return strings.Join(parts, "\n\n")
}

// echoCommand wraps the query as a literal echo invocation, single-quoting it
// so the result stays one argument even if the query contains quotes.
func echoCommand(query string) string {
	return "echo '" + strings.ReplaceAll(query, "'", `'\''`) + "'"
}

func cacheKey(cfg domain.Config, req domain.QueryRequest) string {
	mode := "command"
	if req.PlanMode {
		mode = "plan"
	}
	sum := sha256.Sum256([]byte(strings.Join([]string{
		string(cfg.Provider),
		cfg.ModelFor(cfg.Provider),
		mode,
		req.Prompt,
	}, "\x00")))
	return hex.EncodeToString(sum[:])
}

// Compile-time interface compliance check
var _ domain.QueryService = (*QueryService)(nil)
