package keeper

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes staking counters.
type Metrics struct {
	StakesTotal       prometheus.Counter
	UnstakesTotal     prometheus.Counter
	MigrationsTotal   prometheus.Counter
	ClaimsTotal       prometheus.Counter
	OwnerChangesTotal prometheus.Counter
	FeesAccrued       prometheus.Counter
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// DefaultMetrics returns the process-wide staking metrics, registering them
// on first use.
func DefaultMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			StakesTotal: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "stakeclaim",
				Subsystem: "stake",
				Name:      "stakes_total",
				Help:      "Number of stake deposits.",
			}),
			UnstakesTotal: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "stakeclaim",
				Subsystem: "stake",
				Name:      "unstakes_total",
				Help:      "Number of stake withdrawals.",
			}),
			MigrationsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "stakeclaim",
				Subsystem: "stake",
				Name:      "migrations_total",
				Help:      "Number of cross-asset stake migrations, batches included.",
			}),
			ClaimsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "stakeclaim",
				Subsystem: "stake",
				Name:      "reward_claims_total",
				Help:      "Number of reward claims.",
			}),
			OwnerChangesTotal: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "stakeclaim",
				Subsystem: "stake",
				Name:      "owner_changes_total",
				Help:      "Number of asset ownership transfers.",
			}),
			FeesAccrued: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "stakeclaim",
				Subsystem: "stake",
				Name:      "fees_accrued_base_units",
				Help:      "Hub fees folded into staker accumulators, in base units.",
			}),
		}
	})
	return metrics
}
