package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	agentRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hoopsight_agent_runs_total",
			Help: "Total number of agent runs by agent and outcome.",
		},
		[]string{"agent", "outcome"},
	)
	agentDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hoopsight_agent_duration_seconds",
			Help:    "End-to-end agent answer latency in seconds.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"agent"},
	)
	modelRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hoopsight_model_requests_total",
			Help: "Total number of model API calls by HTTP status.",
		},
		[]string{"model", "status"},
	)
	modelRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hoopsight_model_request_duration_seconds",
			Help:    "Model API call latency in seconds.",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"model"},
	)
	sqlExecutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hoopsight_sql_executions_total",
			Help: "Total number of SQL executions by origin and outcome.",
		},
		[]string{"source", "outcome"},
	)
	semanticMatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hoopsight_semantic_matches_total",
			Help: "Total number of semantic pattern matches by pattern name.",
		},
		[]string{"pattern"},
	)
)

func init() {
	prometheus.MustRegister(
		agentRunsTotal,
		agentDurationSeconds,
		modelRequestsTotal,
		modelRequestDurationSeconds,
		sqlExecutionsTotal,
		semanticMatchesTotal,
	)
}

func ObserveAgentRun(agent string, failed bool, elapsed time.Duration) {
	outcome := "ok"
	if failed {
		outcome = "error"
	}
	agentRunsTotal.WithLabelValues(agent, outcome).Inc()
	agentDurationSeconds.WithLabelValues(agent).Observe(elapsed.Seconds())
}

func ObserveModelRequest(model string, status int, elapsed time.Duration) {
	modelRequestsTotal.WithLabelValues(model, strconv.Itoa(status)).Inc()
	modelRequestDurationSeconds.WithLabelValues(model).Observe(elapsed.Seconds())
}

func ObserveSQLExecution(source string, failed bool) {
	outcome := "ok"
	if failed {
		outcome = "error"
	}
	sqlExecutionsTotal.WithLabelValues(source, outcome).Inc()
}

func ObserveSemanticMatch(pattern string) {
	semanticMatchesTotal.WithLabelValues(pattern).Inc()
}
