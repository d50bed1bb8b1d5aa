package types

// ModuleName is the weight registry module name and error codespace.
const ModuleName = "weight"

// FeeAccount holds globally distributed fees until holders harvest.
const FeeAccount = "weight_fees"

// StorePrefix namespaces all weight keys in the shared KV store.
var StorePrefix = []byte(ModuleName + "/")

var (
	// WeightKeyPrefix prefixes per-account weight records.
	WeightKeyPrefix = []byte{0x01}
	// TotalWeightKey stores the registry-wide weight sum.
	TotalWeightKey = []byte{0x02}
	// AccPerWeightKey stores the global reward accumulator.
	AccPerWeightKey = []byte{0x03}
	// RewardDebtKeyPrefix prefixes per-account debt snapshots.
	RewardDebtKeyPrefix = []byte{0x04}
)

// WeightKey returns the store key for an account's weight.
func WeightKey(addr string) []byte {
	return append(WeightKeyPrefix, addr...)
}

// RewardDebtKey returns the store key for an account's reward debt.
func RewardDebtKey(addr string) []byte {
	return append(RewardDebtKeyPrefix, addr...)
}
