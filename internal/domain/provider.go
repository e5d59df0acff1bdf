// Package domain defines core business entities and value objects for plansh.
//
// The domain layer is independent of infrastructure concerns and represents
// pure business logic and data structures: the provider variants, the resolved
// configuration, the validated command plan, and the error taxonomy shared by
// every layer above.
package domain

import "fmt"

// Provider identifies which AI backend answers a query.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
	ProviderOpenAI    Provider = "openai"
	ProviderOllama    Provider = "ollama"

	// ProviderEcho is the no-network variant: it wraps the query in an echo
	// invocation. Used for offline testing and as the automatic fallback when
	// a real provider is unreachable.
	ProviderEcho Provider = "echo"
)

// Providers lists every supported variant in detection-priority order
// (echo last, it is never auto-detected).
func Providers() []Provider {
	return []Provider{ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOllama, ProviderEcho}
}

// ParseProvider converts a user-supplied string into a Provider.
func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case ProviderAnthropic, ProviderGemini, ProviderOpenAI, ProviderOllama, ProviderEcho:
		return Provider(s), nil
	}
	return "", fmt.Errorf("unknown provider %q", s)
}

// RequiresAPIKey reports whether the provider refuses to work without a key.
// echo never talks to the network and ollama is a local daemon; the hosted
// providers all authenticate per request.
func (p Provider) RequiresAPIKey() bool {
	switch p {
	case ProviderAnthropic, ProviderGemini, ProviderOpenAI:
		return true
	}
	return false
}
