package provider

import (
	"fmt"
	"strings"

	"github.com/mtakeda/plansh/internal/domain"
)

// Encode builds the provider-specific request body for a query. It never
// fails: all free-text inputs pass through escapeJSON, so the result is valid
// JSON for any byte string. The echo provider has no body.
func Encode(p domain.Provider, model, systemPrompt, userQuery string) []byte {
	spec, ok := registry[p]
	if !ok {
		return nil
	}
	return spec.payload(model, systemPrompt, userQuery)
}

func anthropicPayload(model, systemPrompt, userQuery string) []byte {
	var b strings.Builder
	b.WriteString(`{"model":"`)
	b.WriteString(escapeJSON(model))
	fmt.Fprintf(&b, `","max_tokens":%d,"temperature":%g,"system":"`,
		domain.DefaultMaxOutputTokens, domain.DefaultTemperature)
	b.WriteString(escapeJSON(systemPrompt))
	b.WriteString(`","messages":[{"role":"user","content":"`)
	b.WriteString(escapeJSON(userQuery))
	b.WriteString(`"}]}`)
	return []byte(b.String())
}

func geminiPayload(_, systemPrompt, userQuery string) []byte {
	var b strings.Builder
	b.WriteString(`{"system_instruction":{"parts":[{"text":"`)
	b.WriteString(escapeJSON(systemPrompt))
	b.WriteString(`"}]},"contents":[{"role":"user","parts":[{"text":"`)
	b.WriteString(escapeJSON(userQuery))
	fmt.Fprintf(&b, `"}]}],"generationConfig":{"maxOutputTokens":%d,"temperature":%g}}`,
		domain.DefaultMaxOutputTokens, domain.DefaultTemperature)
	return []byte(b.String())
}

func openaiPayload(model, systemPrompt, userQuery string) []byte {
	var b strings.Builder
	b.WriteString(`{"model":"`)
	b.WriteString(escapeJSON(model))
	b.WriteString(`","instructions":"`)
	b.WriteString(escapeJSON(systemPrompt))
	b.WriteString(`","input":"`)
	b.WriteString(escapeJSON(userQuery))
	fmt.Fprintf(&b, `","max_output_tokens":%d,"temperature":%g}`,
		domain.DefaultMaxOutputTokens, domain.DefaultTemperature)
	return []byte(b.String())
}

func ollamaPayload(model, systemPrompt, userQuery string) []byte {
	var b strings.Builder
	b.WriteString(`{"model":"`)
	b.WriteString(escapeJSON(model))
	b.WriteString(`","system":"`)
	b.WriteString(escapeJSON(systemPrompt))
	b.WriteString(`","prompt":"`)
	b.WriteString(escapeJSON(userQuery))
	fmt.Fprintf(&b, `","stream":false,"options":{"num_predict":%d,"temperature":%g}}`,
		domain.DefaultMaxOutputTokens, domain.DefaultTemperature)
	return []byte(b.String())
}
