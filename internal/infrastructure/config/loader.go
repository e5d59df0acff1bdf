package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mtakeda/plansh/internal/domain"
)

// FileLoader reads the YAML preferences file at ~/.plansh/config.yaml
// (overridable via PLANSH_CONFIG). Preferences never carry credentials;
// those come only from the environment.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a loader. An empty path means the default location.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load reads the preferences file and merges it under the env-resolved
// config: environment values win, file values fill the gaps. A missing file
// is created with commented-out defaults so users have something to edit.
func (l *FileLoader) Load(base domain.Config) (domain.Config, error) {
	path := l.resolvePath()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return base, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := writeDefault(path, defaultPreferences()); err != nil {
				return base, err
			}
			return hydrateDefaults(mergeConfig(base, defaultPreferences())), nil
		}
		return base, err
	}

	var file domain.Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return base, err
	}
	return hydrateDefaults(mergeConfig(base, file)), nil
}

// Path returns the preferences file location the loader resolves to.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("PLANSH_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(userHomeDir(), ".plansh", "config.yaml")
}

// mergeConfig overlays file preferences under the env-resolved base: any
// field the environment already set stays, everything else comes from the
// file. API keys are never read from the file.
func mergeConfig(base, file domain.Config) domain.Config {
	// The no-credential ollama fallback from auto-detection is a guess, not a
	// choice; an explicit provider in the file overrides it.
	if file.Provider != "" && (base.Provider == "" || base.Provider == domain.ProviderOllama) {
		base.Provider = file.Provider
	}
	if base.AnthropicModel == "" {
		base.AnthropicModel = file.AnthropicModel
	}
	if base.GeminiModel == "" {
		base.GeminiModel = file.GeminiModel
	}
	if base.OpenAIModel == "" {
		base.OpenAIModel = file.OpenAIModel
	}
	if base.OllamaModel == "" {
		base.OllamaModel = file.OllamaModel
	}
	if base.OpenAIBaseURL == "" {
		base.OpenAIBaseURL = file.OpenAIBaseURL
	}
	if base.OllamaBaseURL == "" {
		base.OllamaBaseURL = file.OllamaBaseURL
	}
	if base.PromptExtension == "" {
		base.PromptExtension = file.PromptExtension
	}
	if base.Retry.MaxRetries == 0 {
		base.Retry.MaxRetries = file.Retry.MaxRetries
	}
	if base.Retry.DelayMS == 0 {
		base.Retry.DelayMS = file.Retry.DelayMS
	}
	if base.Retry.JitterMS == 0 {
		base.Retry.JitterMS = file.Retry.JitterMS
	}
	base.Context = file.Context
	base.History = file.History
	base.Cache = file.Cache
	return base
}

func writeDefault(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

func defaultPreferences() domain.Config {
	return domain.Config{
		Retry: domain.RetryPolicy{
			MaxRetries: domain.DefaultMaxRetries,
		},
		Context: domain.ContextSettings{
			Enabled:      true,
			IncludeFiles: true,
			MaxFiles:     domain.MaxContextFiles,
			IncludeGit:   true,
		},
		History: domain.HistorySettings{Enabled: true},
		Cache: domain.CacheSettings{
			Enabled:    true,
			TTL:        domain.DefaultCacheTTL.String(),
			MaxEntries: domain.DefaultMaxCacheEntries,
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.Provider == "" {
		cfg.Provider = domain.ProviderOllama
	}
	if cfg.Retry.MaxRetries == 0 {
		cfg.Retry.MaxRetries = domain.DefaultMaxRetries
	}
	if cfg.Context.MaxFiles == 0 {
		cfg.Context.MaxFiles = domain.MaxContextFiles
	}
	if cfg.Cache.TTL == "" {
		cfg.Cache.TTL = domain.DefaultCacheTTL.String()
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = domain.DefaultMaxCacheEntries
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
