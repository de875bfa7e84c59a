package llm

import (
	"fmt"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter",
	// "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional; any OpenAI-compatible endpoint.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.0-flash-001"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults. The mock provider
// is selected until a real provider is configured.
func DefaultConfig() Config {
	return Config{
		Provider: "mock",
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.0-flash-001",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment lookups, falling back to
// defaults for unset values. ORBITREST_-prefixed keys win over the
// vendors' conventional names (ANTHROPIC_API_KEY and friends). When no
// provider is named, the first one with a key is chosen.
func ConfigFromEnv(getenv func(string) string) Config {
	cfg := DefaultConfig()

	first := func(keys ...string) string {
		for _, k := range keys {
			if v := getenv(k); v != "" {
				return v
			}
		}
		return ""
	}

	cfg.Anthropic.APIKey = first("ORBITREST_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	cfg.OpenAI.APIKey = first("ORBITREST_OPENAI_API_KEY", "OPENAI_API_KEY")
	cfg.Gemini.APIKey = first("ORBITREST_GEMINI_API_KEY", "GEMINI_API_KEY")
	cfg.OpenRouter.APIKey = first("ORBITREST_OPENROUTER_API_KEY", "OPENROUTER_API_KEY")

	if m := getenv("ORBITREST_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}
	if m := getenv("ORBITREST_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := getenv("ORBITREST_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}
	if m := getenv("ORBITREST_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}
	if m := getenv("ORBITREST_OPENROUTER_MODEL"); m != "" {
		cfg.OpenRouter.Model = m
	}

	switch p := getenv("ORBITREST_LLM_PROVIDER"); {
	case p != "":
		cfg.Provider = p
	case cfg.Anthropic.APIKey != "":
		cfg.Provider = "anthropic"
	case cfg.OpenAI.APIKey != "":
		cfg.Provider = "openai"
	case cfg.Gemini.APIKey != "":
		cfg.Provider = "gemini"
	case cfg.OpenRouter.APIKey != "":
		cfg.Provider = "openrouter"
	}

	return cfg
}

// Validate checks that the selected provider has its API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("ORBITREST_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("ORBITREST_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("ORBITREST_GEMINI_API_KEY is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("ORBITREST_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
