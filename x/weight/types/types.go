package types

import "cosmossdk.io/math"

// RewardScale is the fixed-point scale of the global reward accumulator.
var RewardScale = math.NewInt(1_000_000_000_000)

// Entry is a read-model row describing one account's registered weight.
type Entry struct {
	Address string   `json:"address"`
	Weight  math.Int `json:"weight"`
	Pending math.Int `json:"pending"`
}
