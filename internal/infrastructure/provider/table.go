package provider

import (
	"fmt"

	"github.com/mtakeda/plansh/internal/domain"
)

// providerSpec bundles everything that differs between backends: where to
// POST, how to shape the body, which auth headers to send, and which response
// field carries the reply text.
type providerSpec struct {
	endpoint      func(cfg domain.Config, model string) string
	payload       func(model, systemPrompt, userQuery string) []byte
	headers       func(cfg domain.Config) map[string]string
	responseField string
}

var registry = map[domain.Provider]providerSpec{
	domain.ProviderAnthropic: {
		endpoint: func(domain.Config, string) string {
			return "https://api.anthropic.com/v1/messages"
		},
		payload: anthropicPayload,
		headers: func(cfg domain.Config) map[string]string {
			return map[string]string{
				"x-api-key":         cfg.AnthropicAPIKey,
				"anthropic-version": "2023-06-01",
			}
		},
		responseField: "text",
	},
	domain.ProviderGemini: {
		endpoint: func(_ domain.Config, model string) string {
			return fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent", model)
		},
		payload: geminiPayload,
		headers: func(cfg domain.Config) map[string]string {
			return map[string]string{"x-goog-api-key": cfg.GeminiAPIKey}
		},
		responseField: "text",
	},
	domain.ProviderOpenAI: {
		endpoint: func(cfg domain.Config, _ string) string {
			return cfg.BaseURLFor(domain.ProviderOpenAI) + "/v1/responses"
		},
		payload: openaiPayload,
		headers: func(cfg domain.Config) map[string]string {
			return map[string]string{"Authorization": "Bearer " + cfg.OpenAIAPIKey}
		},
		responseField: "output_text",
	},
	domain.ProviderOllama: {
		endpoint: func(cfg domain.Config, _ string) string {
			return cfg.BaseURLFor(domain.ProviderOllama) + "/api/generate"
		},
		payload: ollamaPayload,
		headers: func(domain.Config) map[string]string {
			return map[string]string{}
		},
		responseField: "response",
	},
}

// Endpoint returns the POST URL for a provider. The echo provider has none.
func Endpoint(cfg domain.Config, p domain.Provider, model string) string {
	spec, ok := registry[p]
	if !ok {
		return ""
	}
	return spec.endpoint(cfg, model)
}

// Headers returns the provider-specific auth headers. Content-Type is the
// transport's job.
func Headers(cfg domain.Config, p domain.Provider) map[string]string {
	spec, ok := registry[p]
	if !ok {
		return map[string]string{}
	}
	return spec.headers(cfg)
}

// ResponseField names the JSON key that carries the reply text.
func ResponseField(p domain.Provider) string {
	spec, ok := registry[p]
	if !ok {
		return ""
	}
	return spec.responseField
}
