package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Transport timing constants
const (
	// ConnectTimeout bounds the TCP dial of a provider request.
	ConnectTimeout = 5 * time.Second
	// RequestTimeout bounds the whole provider round trip.
	RequestTimeout = 15 * time.Second
)

// Credential constants
const (
	// MinAPIKeyLength is the shortest key accepted before any network call.
	// Anything shorter is treated as a paste accident, not a credential.
	MinAPIKeyLength = 10
)

// Generation constants
const (
	// DefaultMaxOutputTokens caps provider output size.
	DefaultMaxOutputTokens = 1024
	// DefaultTemperature keeps generation deterministic enough to re-prompt.
	DefaultTemperature = 0.1
	// DefaultMaxRetries bounds the plan-generation retry loop.
	DefaultMaxRetries = 3
)

// Prompt context limits
const (
	// MaxContextFiles is the number of directory entries shown to the model.
	MaxContextFiles = 10
	// MaxSnapshotRows is the number of trailing non-blank terminal rows
	// appended to the prompt.
	MaxSnapshotRows = 10
	// MaxSnapshotEvents is the number of recent OSC events appended.
	MaxSnapshotEvents = 5
	// SnapshotPayloadLimit caps an OSC payload before the ellipsis marker.
	SnapshotPayloadLimit = 100
)

// Default model identifiers and base URLs, one per real provider.
const (
	DefaultAnthropicModel = "claude-3-5-sonnet-20240620"
	DefaultGeminiModel    = "gemini-1.5-flash"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultOllamaModel    = "llama3"

	DefaultOpenAIBaseURL = "https://api.openai.com"
	DefaultOllamaBaseURL = "http://localhost:11434"
)

// History constants
const (
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = 20
	// DefaultHistorySearchLimit is the default number of search results to return
	DefaultHistorySearchLimit = 50
)

// Cache constants
const (
	// DefaultCacheTTL is how long a cached plan stays valid.
	DefaultCacheTTL = time.Hour
	// DefaultMaxCacheEntries is the maximum number of cache entries
	DefaultMaxCacheEntries = 100
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
