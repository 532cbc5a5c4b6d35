package chat

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chatRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "planner",
			Name:      "chat_requests_total",
			Help:      "Total chat requests",
		},
		[]string{"outcome"}, // "ok", "not_configured", "search_unavailable", "model_failure"
	)

	searchQueriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "planner",
			Name:      "search_queries_total",
			Help:      "Total web search queries",
		},
	)

	llmDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "planner",
			Name:      "llm_duration_seconds",
			Help:      "Duration of LLM API calls in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~50s
		},
	)
)
