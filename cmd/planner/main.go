package main

import (
	"github.com/gdscwm/gemini-ai-study-planner/internal/chat"
	plannerconfig "github.com/gdscwm/gemini-ai-study-planner/internal/config"
	"github.com/gdscwm/gemini-ai-study-planner/pkg/config"
	"github.com/gdscwm/gemini-ai-study-planner/pkg/llm"
	"github.com/gdscwm/gemini-ai-study-planner/pkg/logging"
	"github.com/gdscwm/gemini-ai-study-planner/pkg/monitoring"
	"github.com/gdscwm/gemini-ai-study-planner/pkg/search"
	"github.com/gdscwm/gemini-ai-study-planner/pkg/server"
	"github.com/gdscwm/gemini-ai-study-planner/pkg/version"
)

func main() {
	logger := logging.NewLoggerWithService("planner")

	config.LoadEnv(logger)

	logger.Info("Starting Planner (AI study assistant API)")

	cfg := plannerconfig.LoadConfig()

	healthChecker := monitoring.NewHealthChecker("planner", version.Version)
	metricsCollector := monitoring.NewMetricsCollector("planner", version.Version, version.GitCommit)

	healthChecker.AddCheck("config", monitoring.ConfigurationHealthCheck(map[string]string{
		"LLM_API_KEY": cfg.LLMAPIKey,
	}))

	// A provider failure degrades the service instead of crashing it: every
	// chat call then answers with the fixed not-configured message.
	llmProvider, err := llm.NewProvider(llm.Config{
		Provider: cfg.LLMProvider,
		Model:    cfg.LLMModel,
		APIKey:   cfg.LLMAPIKey,
		APIURL:   cfg.LLMAPIURL,
	})
	if err != nil {
		logger.WithError(err).Warn("Failed to initialize LLM provider")
		llmProvider = nil
	}

	searchProvider, err := search.NewProvider(search.Config{
		Provider: cfg.SearchProvider,
		APIKey:   cfg.SearchAPIKey,
		APIURL:   cfg.SearchAPIURL,
	})
	if err != nil {
		logger.WithError(err).Warn("Failed to initialize search provider")
		searchProvider = nil
	}

	searcher := chat.NewWebSearcher(searchProvider, logger)
	searcher.SetLimit(cfg.SearchLimit)
	composer := chat.NewComposer(searcher, logger)
	sessions := chat.NewSessionStore(llmProvider, cfg.MaxSessions)
	chatHandler := chat.NewChatHandler(sessions, composer, logger)

	router := server.SetupServiceRouter(logger, "planner", healthChecker, metricsCollector)
	apiGroup := router.Group("/api")
	chat.RegisterRoutes(apiGroup, chatHandler)

	serverConfig := server.DefaultConfig("planner", cfg.Port)
	if err := server.Start(serverConfig, router, logger); err != nil {
		logger.WithError(err).Fatal("Server startup failed")
	}
}
