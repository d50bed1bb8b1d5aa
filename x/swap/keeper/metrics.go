package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the swap engine
type Metrics struct {
	SwapsTotal             *prometheus.CounterVec
	InternalTransfersTotal prometheus.Counter
	PoolsTotal             prometheus.Gauge
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// NewMetrics creates and registers swap metrics (singleton pattern)
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "stakeclaim",
					Subsystem: "swap",
					Name:      "swaps_total",
					Help:      "Total number of swaps by route and status",
				},
				[]string{"route", "status"},
			),
			InternalTransfersTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "stakeclaim",
					Subsystem: "swap",
					Name:      "internal_transfers_total",
					Help:      "Total number of cross-pool position migrations",
				},
			),
			PoolsTotal: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "stakeclaim",
					Subsystem: "swap",
					Name:      "pools_total",
					Help:      "Number of initialized pools",
				},
			),
		}
	})
	return metrics
}
