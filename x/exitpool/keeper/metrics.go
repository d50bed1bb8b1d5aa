package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes exit-liquidity counters.
type Metrics struct {
	StakesTotal   prometheus.Counter
	UnstakesTotal prometheus.Counter
	ClaimsTotal   prometheus.Counter
	FeesAccrued   prometheus.Counter
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// DefaultMetrics returns the process-wide exit-liquidity metrics,
// registering them on first use.
func DefaultMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			StakesTotal: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "stakeclaim",
				Subsystem: "exitpool",
				Name:      "stakes_total",
				Help:      "Number of exit-liquidity deposits.",
			}),
			UnstakesTotal: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "stakeclaim",
				Subsystem: "exitpool",
				Name:      "unstakes_total",
				Help:      "Number of exit-liquidity withdrawals.",
			}),
			ClaimsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "stakeclaim",
				Subsystem: "exitpool",
				Name:      "reward_claims_total",
				Help:      "Number of exit reward claims.",
			}),
			FeesAccrued: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "stakeclaim",
				Subsystem: "exitpool",
				Name:      "fees_accrued_base_units",
				Help:      "Hub fees folded into the exit accumulator, in base units.",
			}),
		}
	})
	return metrics
}
