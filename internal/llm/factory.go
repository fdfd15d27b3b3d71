package llm

import (
	"os"

	"docgaps/internal/config"
)

// NewGenerator selects the backend once at startup: the HTTP provider
// when a base URL is configured, otherwise the Unavailable fallback.
func NewGenerator(cfg config.LLM) Generator {
	if cfg.BaseURL == "" || cfg.Model == "" {
		return Unavailable{}
	}

	apiKey := "sk-local" // Ollama accepts any non-empty key
	if cfg.APIKeyEnv != "" {
		if v := os.Getenv(cfg.APIKeyEnv); v != "" {
			apiKey = v
		}
	}

	return NewOpenAIProvider(cfg.BaseURL, cfg.Model, apiKey, cfg.Timeout)
}
