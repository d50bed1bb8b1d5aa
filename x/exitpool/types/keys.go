package types

import "cosmossdk.io/math"

const (
	// ModuleName is the exit-liquidity module name and error codespace.
	ModuleName = "exitpool"

	// EngineName identifies this engine on privileged cross-engine calls.
	EngineName = "exitpool"

	// FeeCollectorAccount holds harvested exit-leg fees until providers claim.
	FeeCollectorAccount = "exit_rewards"

	// DefaultWeightMultiplierBps is the global-weight premium of exit
	// liquidity over plain asset stake, in basis points.
	DefaultWeightMultiplierBps = 15_000
)

// RewardScale is the fixed-point scale of the per-share accumulator.
var RewardScale = math.NewInt(1_000_000_000_000)

// StorePrefix namespaces all exit-liquidity keys in the shared KV store.
var StorePrefix = []byte(ModuleName + "/")

var (
	// SharesKeyPrefix prefixes per-account share records.
	SharesKeyPrefix = []byte{0x01}
	// TotalSharesKey stores the outstanding share total.
	TotalSharesKey = []byte{0x02}
	// AccPerShareKey stores the exit fee accumulator.
	AccPerShareKey = []byte{0x03}
	// RewardDebtKeyPrefix prefixes per-account debt snapshots.
	RewardDebtKeyPrefix = []byte{0x04}
	// RegisteredWeightKeyPrefix prefixes the global weight currently
	// registered per account, so multiplier truncation never drifts.
	RegisteredWeightKeyPrefix = []byte{0x05}
)

// SharesKey returns the store key for an account's exit shares.
func SharesKey(addr string) []byte {
	return append(SharesKeyPrefix, addr...)
}

// RewardDebtKey returns the store key for an account's reward debt.
func RewardDebtKey(addr string) []byte {
	return append(RewardDebtKeyPrefix, addr...)
}

// RegisteredWeightKey returns the store key for an account's registered
// global weight.
func RegisteredWeightKey(addr string) []byte {
	return append(RegisteredWeightKeyPrefix, addr...)
}
