package delivery_events

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PublishedEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_events_published_total",
			Help: "Total number of delivery status events sent to Kafka",
		},
		[]string{"status", "result"},
	)

	PublishDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "delivery_events_publish_duration_seconds",
			Help:    "Duration of delivery status event publishing including retries",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)
)
