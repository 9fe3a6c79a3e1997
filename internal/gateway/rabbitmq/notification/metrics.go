package notification

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var NotificationsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notifications_published_total",
		Help: "Total number of customer notifications sent to RabbitMQ",
	},
	[]string{"result"},
)
