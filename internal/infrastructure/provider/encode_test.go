package provider

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/mtakeda/plansh/internal/domain"
)

var hostileInputs = []string{
	"plain query",
	"with \"quotes\" and \\backslashes\\",
	"embedded\x00nul and \x1f control",
	"broken utf8 \xff\xc3\x28 here",
	"all escapes \n\r\t\b\f",
}

func TestEncodeProducesValidJSONForAllProviders(t *testing.T) {
	providers := []domain.Provider{
		domain.ProviderAnthropic,
		domain.ProviderGemini,
		domain.ProviderOpenAI,
		domain.ProviderOllama,
	}
	for _, p := range providers {
		for _, in := range hostileInputs {
			body := Encode(p, "test-model", in, in)
			if body == nil {
				t.Fatalf("Encode(%s) returned nil", p)
			}
			if !json.Valid(body) {
				t.Errorf("Encode(%s, %q) produced invalid JSON: %s", p, in, body)
			}
		}
	}
}

func TestEncodeAnthropicShape(t *testing.T) {
	body := Encode(domain.ProviderAnthropic, "claude-test", "be careful", "list files")

	var parsed struct {
		Model     string  `json:"model"`
		MaxTokens int     `json:"max_tokens"`
		Temp      float64 `json:"temperature"`
		System    string  `json:"system"`
		Messages  []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed.Model != "claude-test" {
		t.Errorf("model = %q", parsed.Model)
	}
	if parsed.MaxTokens != domain.DefaultMaxOutputTokens {
		t.Errorf("max_tokens = %d", parsed.MaxTokens)
	}
	if parsed.System != "be careful" {
		t.Errorf("system = %q", parsed.System)
	}
	if len(parsed.Messages) != 1 || parsed.Messages[0].Content != "list files" {
		t.Errorf("messages = %+v", parsed.Messages)
	}
}

func TestEncodeGeminiShape(t *testing.T) {
	body := Encode(domain.ProviderGemini, "gemini-test", "sys", "query")

	var parsed struct {
		SystemInstruction struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"system_instruction"`
		Contents []struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
		GenerationConfig struct {
			MaxOutputTokens int `json:"maxOutputTokens"`
		} `json:"generationConfig"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed.SystemInstruction.Parts[0].Text != "sys" {
		t.Errorf("system_instruction = %+v", parsed.SystemInstruction)
	}
	if parsed.Contents[0].Parts[0].Text != "query" {
		t.Errorf("contents = %+v", parsed.Contents)
	}
	if parsed.GenerationConfig.MaxOutputTokens != domain.DefaultMaxOutputTokens {
		t.Errorf("maxOutputTokens = %d", parsed.GenerationConfig.MaxOutputTokens)
	}
}

func TestEncodeOpenAIShape(t *testing.T) {
	body := Encode(domain.ProviderOpenAI, "gpt-test", "sys", "query")

	var parsed struct {
		Model        string `json:"model"`
		Instructions string `json:"instructions"`
		Input        string `json:"input"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed.Model != "gpt-test" || parsed.Instructions != "sys" || parsed.Input != "query" {
		t.Errorf("parsed = %+v", parsed)
	}
}

func TestEncodeOllamaShape(t *testing.T) {
	body := Encode(domain.ProviderOllama, "llama-test", "sys", "query")

	var parsed struct {
		Model  string `json:"model"`
		System string `json:"system"`
		Prompt string `json:"prompt"`
		Stream bool   `json:"stream"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed.Model != "llama-test" || parsed.System != "sys" || parsed.Prompt != "query" {
		t.Errorf("parsed = %+v", parsed)
	}
	if parsed.Stream {
		t.Error("stream should be false")
	}
}

func TestEncodeEchoHasNoBody(t *testing.T) {
	if body := Encode(domain.ProviderEcho, "", "sys", "query"); body != nil {
		t.Fatalf("Encode(echo) = %s, want nil", body)
	}
}

func TestEndpointPerProvider(t *testing.T) {
	cfg := domain.Config{}
	if got := Endpoint(cfg, domain.ProviderAnthropic, "m"); got != "https://api.anthropic.com/v1/messages" {
		t.Errorf("anthropic endpoint = %q", got)
	}
	if got := Endpoint(cfg, domain.ProviderGemini, "gemini-1.5-flash"); !strings.Contains(got, "models/gemini-1.5-flash:generateContent") {
		t.Errorf("gemini endpoint = %q", got)
	}
	if got := Endpoint(cfg, domain.ProviderOpenAI, "m"); got != domain.DefaultOpenAIBaseURL+"/v1/responses" {
		t.Errorf("openai endpoint = %q", got)
	}

	cfg.OllamaBaseURL = "http://10.0.0.2:11434"
	if got := Endpoint(cfg, domain.ProviderOllama, "m"); got != "http://10.0.0.2:11434/api/generate" {
		t.Errorf("ollama endpoint = %q", got)
	}
}

func TestResponseFieldPerProvider(t *testing.T) {
	cases := map[domain.Provider]string{
		domain.ProviderAnthropic: "text",
		domain.ProviderGemini:    "text",
		domain.ProviderOpenAI:    "output_text",
		domain.ProviderOllama:    "response",
	}
	for p, want := range cases {
		if got := ResponseField(p); got != want {
			t.Errorf("ResponseField(%s) = %q, want %q", p, got, want)
		}
	}
}

func TestHeadersCarryCredentials(t *testing.T) {
	cfg := domain.Config{
		AnthropicAPIKey: "sk-ant-12345",
		GeminiAPIKey:    "gm-12345678",
		OpenAIAPIKey:    "sk-oa-12345",
	}
	if got := Headers(cfg, domain.ProviderAnthropic)["x-api-key"]; got != "sk-ant-12345" {
		t.Errorf("anthropic x-api-key = %q", got)
	}
	if got := Headers(cfg, domain.ProviderAnthropic)["anthropic-version"]; got == "" {
		t.Error("anthropic-version header missing")
	}
	if got := Headers(cfg, domain.ProviderGemini)["x-goog-api-key"]; got != "gm-12345678" {
		t.Errorf("gemini key header = %q", got)
	}
	if got := Headers(cfg, domain.ProviderOpenAI)["Authorization"]; got != "Bearer sk-oa-12345" {
		t.Errorf("openai auth header = %q", got)
	}
	if got := Headers(cfg, domain.ProviderOllama); len(got) != 0 {
		t.Errorf("ollama headers = %v, want none", got)
	}
}
