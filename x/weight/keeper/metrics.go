package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes weight registry counters.
type Metrics struct {
	HarvestsTotal   prometheus.Counter
	FeesDistributed prometheus.Counter
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// DefaultMetrics returns the process-wide weight metrics, registering them
// on first use.
func DefaultMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			HarvestsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "stakeclaim",
				Subsystem: "weight",
				Name:      "harvests_total",
				Help:      "Number of global reward harvests that paid out.",
			}),
			FeesDistributed: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "stakeclaim",
				Subsystem: "weight",
				Name:      "fees_distributed_base_units",
				Help:      "Hub fees folded into the global accumulator, in base units.",
			}),
		}
	})
	return metrics
}
