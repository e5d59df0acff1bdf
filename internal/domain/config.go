package domain

// Config is the fully resolved runtime configuration: the active provider,
// per-provider credentials and endpoints from the environment, plus the
// preferences mirrored in ~/.plansh/config.yaml. API keys are deliberately
// excluded from YAML round-trips.
type Config struct {
	Provider Provider `yaml:"provider"`

	AnthropicAPIKey string `yaml:"-"`
	GeminiAPIKey    string `yaml:"-"`
	OpenAIAPIKey    string `yaml:"-"`

	AnthropicModel string `yaml:"anthropic_model"`
	GeminiModel    string `yaml:"gemini_model"`
	OpenAIModel    string `yaml:"openai_model"`
	OllamaModel    string `yaml:"ollama_model"`

	OpenAIBaseURL string `yaml:"openai_base_url"`
	OllamaBaseURL string `yaml:"ollama_base_url"`

	// PromptExtension is appended verbatim to the base system prompt.
	PromptExtension string `yaml:"prompt_extension"`

	Retry   RetryPolicy     `yaml:"retry"`
	Context ContextSettings `yaml:"context"`
	History HistorySettings `yaml:"history"`
	Cache   CacheSettings   `yaml:"cache"`
}

// RetryPolicy bounds the plan-generation retry loop. Delay and jitter are
// policy, not hard-coded behavior.
type RetryPolicy struct {
	MaxRetries int `yaml:"max_retries"`
	DelayMS    int `yaml:"delay_ms"`
	JitterMS   int `yaml:"jitter_ms"`
}

// ContextSettings configures prompt context collection.
type ContextSettings struct {
	Enabled      bool `yaml:"enabled"`
	IncludeFiles bool `yaml:"include_files"`
	MaxFiles     int  `yaml:"max_files"`
	IncludeGit   bool `yaml:"include_git"`
}

// HistorySettings controls plan history persistence.
type HistorySettings struct {
	Enabled bool `yaml:"enabled"`
}

// CacheSettings controls the query → plan cache.
type CacheSettings struct {
	Enabled    bool   `yaml:"enabled"`
	TTL        string `yaml:"ttl"`
	MaxEntries int    `yaml:"max_entries"`
}
