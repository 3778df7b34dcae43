package fsm

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric outcome constants.
const (
	outcomeApplied  = "applied"
	outcomeRejected = "rejected"
)

// Metric definitions with appropriate labels.
var (
	// transitionsTotal tracks accepted transitions by machine, source state,
	// destination state, and command.
	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fsm_transitions_total",
		Help: "Total number of accepted transitions by machine, from_state, to_state, and command",
	}, []string{"machine", "from_state", "to_state", "command"})

	// rejectionsTotal tracks rejected commands by machine, current state,
	// and command.
	rejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fsm_rejections_total",
		Help: "Total number of rejected commands by machine, state, and command",
	}, []string{"machine", "state", "command"})

	// dispatchDuration tracks single-command dispatch time.
	dispatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fsm_dispatch_duration_seconds",
		Help:    "Duration of command dispatch by machine and outcome",
		Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"machine", "outcome"})
)

// sanitizeCommand keeps command label cardinality bounded for unnamed commands.
func sanitizeCommand(command string) string {
	if command == "" {
		return "unknown"
	}

	return command
}
