package actor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for monitoring actor behavior and performance.
// All metrics with labels support multi-tenancy via "subsystem" and "actor" labels.

// durationBuckets covers everything from sub-millisecond dispatches to
// multi-minute stalls.
var durationBuckets = []float64{ //nolint:gochecknoglobals
	0.001, // 1ms
	0.01,  // 10ms
	0.1,   // 100ms
	1,     // 1s
	10,    // 10s
	60,    // 1m
	300,   // 5m
}

var (
	// actorStarted counts the total number of actors started (global counter).
	actorStarted = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "actor_started",
		Help: "The total number of actors started",
	})

	// actorStopped counts the total number of actors stopped (global counter).
	actorStopped = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "actor_stopped",
		Help: "The total number of actors stopped",
	})

	// aliveActors tracks the number of currently running actors.
	aliveActors = promauto.NewGaugeVec(prometheus.GaugeOpts{ //nolint:gochecknoglobals
		Name: "actor_alive_actors",
		Help: "The total number of actors alive",
	}, []string{"subsystem", "actor"})

	// actorPanic counts the number of workers terminated by a panic.
	actorPanic = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "actor_panic",
		Help: "The total number of actor workers terminated by a panic",
	}, []string{"subsystem", "actor"})

	// inboxDepthGauge tracks the number of requests waiting to be processed.
	inboxDepthGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{ //nolint:gochecknoglobals
		Name: "actor_inbox_depth",
		Help: "The number of requests queued in the inbox",
	}, []string{"subsystem", "actor"})

	// outboxDepthGauge tracks the number of responses waiting to be polled.
	outboxDepthGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{ //nolint:gochecknoglobals
		Name: "actor_outbox_depth",
		Help: "The number of responses queued in the outbox",
	}, []string{"subsystem", "actor"})

	// submitCount counts the total number of requests submitted to actors.
	submitCount = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "actor_submit_count",
		Help: "The total number of requests submitted",
	}, []string{"subsystem", "actor"})

	// submitTime measures the time spent waiting to submit a request to an actor's inbox.
	submitTime = promauto.NewHistogramVec(prometheus.HistogramOpts{ //nolint:gochecknoglobals
		Name:    "actor_submit_time",
		Help:    "The time spent waiting for a request to be enqueued",
		Buckets: durationBuckets,
	}, []string{"subsystem", "actor"})

	// receiveTime measures the time spent waiting for a direct reply.
	receiveTime = promauto.NewHistogramVec(prometheus.HistogramOpts{ //nolint:gochecknoglobals
		Name:    "actor_receive_time",
		Help:    "The time spent waiting for a reply to a call",
		Buckets: durationBuckets,
	}, []string{"subsystem", "actor"})

	// processedMessages counts the total number of requests successfully processed.
	processedMessages = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "actor_processed_messages",
		Help: "The total number of requests processed",
	}, []string{"subsystem", "actor"})

	// processingTime measures the time spent by the processor handling each request.
	processingTime = promauto.NewHistogramVec(prometheus.HistogramOpts{ //nolint:gochecknoglobals
		Name:    "actor_processing_time",
		Help:    "The time spent processing a request",
		Buckets: durationBuckets,
	}, []string{"subsystem", "actor"})
)
