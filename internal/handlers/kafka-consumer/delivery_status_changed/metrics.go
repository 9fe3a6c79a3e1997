package delivery_status_changed

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultSettled = "settled"
	resultSkipped = "skipped"
	resultFailed  = "failed"
	resultRetry   = "retry"
)

var SettlementsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "delivery_settlements_total",
		Help: "Total number of delivery status events handled by the settlement worker",
	},
	[]string{"result"},
)
