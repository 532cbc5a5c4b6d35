package config

import (
	"github.com/gdscwm/gemini-ai-study-planner/pkg/config"
)

// Config stores environment configuration for the planner service.
type Config struct {
	Port           string
	LLMProvider    string
	LLMModel       string
	LLMAPIKey      string
	LLMAPIURL      string
	SearchProvider string
	SearchAPIKey   string
	SearchAPIURL   string
	SearchLimit    int
	MaxSessions    int
}

// LoadConfig loads the planner configuration from environment variables.
func LoadConfig() Config {
	return Config{
		Port:           config.GetEnv("PORT", "8080"),
		LLMProvider:    config.GetEnv("LLM_PROVIDER", "gemini"),
		LLMModel:       config.GetEnv("LLM_MODEL", ""),
		LLMAPIKey:      config.GetEnv("LLM_API_KEY", config.GetEnv("GEMINI_API_KEY", "")),
		LLMAPIURL:      config.GetEnv("LLM_API_URL", ""),
		SearchProvider: config.GetEnv("SEARCH_PROVIDER", "duckduckgo"),
		SearchAPIKey:   config.GetEnv("SEARCH_API_KEY", ""),
		SearchAPIURL:   config.GetEnv("SEARCH_API_URL", ""),
		SearchLimit:    config.GetEnvInt("PLANNER_SEARCH_LIMIT", 6),
		MaxSessions:    config.GetEnvInt("PLANNER_MAX_SESSIONS", 1000),
	}
}
