package domain

import "time"

// APIKeyFor returns the credential configured for a provider, empty when the
// provider does not use one.
func (c Config) APIKeyFor(p Provider) string {
	switch p {
	case ProviderAnthropic:
		return c.AnthropicAPIKey
	case ProviderGemini:
		return c.GeminiAPIKey
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	}
	return ""
}

// ModelFor returns the model identifier for a provider, falling back to the
// documented default when unset.
func (c Config) ModelFor(p Provider) string {
	switch p {
	case ProviderAnthropic:
		if c.AnthropicModel != "" {
			return c.AnthropicModel
		}
		return DefaultAnthropicModel
	case ProviderGemini:
		if c.GeminiModel != "" {
			return c.GeminiModel
		}
		return DefaultGeminiModel
	case ProviderOpenAI:
		if c.OpenAIModel != "" {
			return c.OpenAIModel
		}
		return DefaultOpenAIModel
	case ProviderOllama:
		if c.OllamaModel != "" {
			return c.OllamaModel
		}
		return DefaultOllamaModel
	}
	return ""
}

// BaseURLFor returns the endpoint base for providers with configurable hosts.
func (c Config) BaseURLFor(p Provider) string {
	switch p {
	case ProviderOpenAI:
		if c.OpenAIBaseURL != "" {
			return c.OpenAIBaseURL
		}
		return DefaultOpenAIBaseURL
	case ProviderOllama:
		if c.OllamaBaseURL != "" {
			return c.OllamaBaseURL
		}
		return DefaultOllamaBaseURL
	}
	return ""
}

// WithProvider returns a copy of the config with the active provider swapped.
// Used by the orchestrator to retry a failed network call through echo.
func (c Config) WithProvider(p Provider) Config {
	c.Provider = p
	return c
}

// MaxRetries returns the bounded retry count for plan generation.
func (c Config) MaxRetries() int {
	if c.Retry.MaxRetries <= 0 {
		return DefaultMaxRetries
	}
	return c.Retry.MaxRetries
}

// RetryDelay returns the configured inter-attempt delay.
func (c Config) RetryDelay() time.Duration {
	if c.Retry.DelayMS <= 0 {
		return 0
	}
	return time.Duration(c.Retry.DelayMS) * time.Millisecond
}

// RetryJitter returns the configured inter-attempt jitter bound.
func (c Config) RetryJitter() time.Duration {
	if c.Retry.JitterMS <= 0 {
		return 0
	}
	return time.Duration(c.Retry.JitterMS) * time.Millisecond
}

// MaxContextFiles returns the directory-listing cap for prompt context.
func (c Config) MaxContextFiles() int {
	if c.Context.MaxFiles <= 0 {
		return MaxContextFiles
	}
	return c.Context.MaxFiles
}

// CacheTTL parses the configured cache TTL, falling back to the default.
func (c Config) CacheTTL() time.Duration {
	if c.Cache.TTL == "" {
		return DefaultCacheTTL
	}
	ttl, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return DefaultCacheTTL
	}
	return ttl
}

// CacheMaxEntries returns the maximum number of cache entries.
func (c Config) CacheMaxEntries() int {
	if c.Cache.MaxEntries <= 0 {
		return DefaultMaxCacheEntries
	}
	return c.Cache.MaxEntries
}
