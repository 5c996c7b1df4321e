// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ClassificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_classifications_total",
			Help: "Total number of intent classifications by resulting domain",
		},
		[]string{"domain"},
	)

	UnclassifiedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "engine_unclassified_total",
			Help: "Total number of utterances with no intent match",
		},
	)

	ClarificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_clarifications_total",
			Help: "Total number of classifications requiring user clarification",
		},
		[]string{"intent_id"},
	)

	WorkflowMatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_workflow_matches_total",
			Help: "Total number of multi-step workflow matches by pattern id",
		},
		[]string{"pattern_id"},
	)

	ClassificationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "engine_classification_duration_seconds",
			Help:    "Duration of a single classification call in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
		},
	)

	PromptBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_prompt_builds_total",
			Help: "Total number of prompt build attempts by outcome",
		},
		[]string{"outcome"},
	)

	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)
)
