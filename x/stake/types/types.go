package types

import "cosmossdk.io/math"

// OwnershipRecord is the cached claim over an asset. Owner is the account
// holding the largest share position; OwnerShares is the size of that
// position at the last time ownership was evaluated.
type OwnershipRecord struct {
	Owner       string   `json:"owner"`
	OwnerShares math.Int `json:"owner_shares"`
}

// Position is a read-model row describing one account's stake in one asset.
type Position struct {
	AssetID          uint64   `json:"asset_id"`
	Address          string   `json:"address"`
	Shares           math.Int `json:"shares"`
	EffectiveBalance math.Int `json:"effective_balance"`
	IsOwner          bool     `json:"is_owner"`
}
