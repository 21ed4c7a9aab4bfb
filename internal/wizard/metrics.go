package wizard

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// transitionsTotal counts step transitions.
	//
	// Labels:
	//   - direction: "next" or "previous"
	//   - outcome: "advanced", "invalid", "noop", "busy"
	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "wizard_transitions_total",
		Help: "The total number of wizard step transition attempts",
	}, []string{"direction", "outcome"})

	// submissionsTotal counts terminal-step submissions by outcome:
	// "created", "rejected", "invalid" or "error".
	submissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "wizard_submissions_total",
		Help: "The total number of wizard submissions",
	}, []string{"outcome"})

	// submissionSeconds tracks the duration of creation endpoint calls.
	submissionSeconds = promauto.NewHistogram(prometheus.HistogramOpts{ //nolint:gochecknoglobals
		Name:    "wizard_submission_duration_seconds",
		Help:    "Duration of wizard submissions",
		Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
	})
)
