// Package config resolves runtime configuration from the environment and the
// optional ~/.plansh/config.yaml preferences file.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/mtakeda/plansh/internal/domain"
)

// Environ is a point-in-time snapshot of the process environment, keyed by
// variable name. Resolving from a snapshot instead of os.Getenv keeps the
// resolver a pure function and trivially testable.
type Environ map[string]string

// SnapshotEnviron captures the current process environment.
func SnapshotEnviron() Environ {
	env := make(Environ)
	for _, kv := range os.Environ() {
		if i := strings.IndexByte(kv, '='); i > 0 {
			env[kv[:i]] = kv[i+1:]
		}
	}
	return env
}

// LoadDotenv loads a .env file from the working directory into the process
// environment when one exists. Missing files are not an error.
func LoadDotenv() {
	_ = godotenv.Load()
}

// Resolve builds a Config from an environment snapshot. When PLANSH_PROVIDER
// is unset the provider is auto-detected from available credentials, checking
// anthropic first, then openai, then gemini, and falling back to ollama when
// no key is present at all.
func Resolve(env Environ) domain.Config {
	cfg := domain.Config{
		AnthropicAPIKey: env["ANTHROPIC_API_KEY"],
		GeminiAPIKey:    env["GEMINI_API_KEY"],
		OpenAIAPIKey:    env["OPENAI_API_KEY"],

		AnthropicModel: env["PLANSH_ANTHROPIC_MODEL"],
		GeminiModel:    env["PLANSH_GEMINI_MODEL"],
		OpenAIModel:    env["PLANSH_OPENAI_MODEL"],
		OllamaModel:    env["PLANSH_OLLAMA_MODEL"],

		OpenAIBaseURL: env["PLANSH_OPENAI_BASE_URL"],
		OllamaBaseURL: env["PLANSH_OLLAMA_BASE_URL"],

		PromptExtension: env["PLANSH_PROMPT_EXTENSION"],
	}

	if raw := env["PLANSH_PROVIDER"]; raw != "" {
		if p, err := domain.ParseProvider(raw); err == nil {
			cfg.Provider = p
		}
	}
	if cfg.Provider == "" {
		cfg.Provider = detectProvider(cfg)
	}

	if raw := env["PLANSH_MAX_RETRIES"]; raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			cfg.Retry.MaxRetries = n
		}
	}
	if raw := env["PLANSH_RETRY_DELAY_MS"]; raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			cfg.Retry.DelayMS = n
		}
	}

	return cfg
}

// detectProvider picks the provider implied by the credentials on hand.
func detectProvider(cfg domain.Config) domain.Provider {
	switch {
	case cfg.AnthropicAPIKey != "":
		return domain.ProviderAnthropic
	case cfg.OpenAIAPIKey != "":
		return domain.ProviderOpenAI
	case cfg.GeminiAPIKey != "":
		return domain.ProviderGemini
	default:
		return domain.ProviderOllama
	}
}
