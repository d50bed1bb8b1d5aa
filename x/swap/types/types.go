package types

import (
	"context"

	"cosmossdk.io/math"
)

// Pool holds the constant-product reserves for one asset against the hub
// token, plus the staked subset: the portion of the asset reserve backed by
// staker shares. Invariant: StakedSubset <= AssetReserve.
type Pool struct {
	AssetID      uint64   `json:"asset_id"`
	Denom        string   `json:"denom"`
	HubReserve   math.Int `json:"hub_reserve"`
	AssetReserve math.Int `json:"asset_reserve"`
	StakedSubset math.Int `json:"staked_subset"`
}

// Validate checks the pool's structural invariants.
func (p Pool) Validate() error {
	if p.Denom == "" {
		return ErrInvalidAmount.Wrap("pool denom cannot be empty")
	}
	if !p.HubReserve.IsPositive() || !p.AssetReserve.IsPositive() {
		return ErrInvalidAmount.Wrapf(
			"pool %d reserves must be positive: hub %s, asset %s",
			p.AssetID, p.HubReserve, p.AssetReserve)
	}
	if p.StakedSubset.IsNegative() || p.StakedSubset.GT(p.AssetReserve) {
		return ErrInvariantViolation.Wrapf(
			"pool %d staked subset %s outside [0, %s]",
			p.AssetID, p.StakedSubset, p.AssetReserve)
	}
	return nil
}

// ExitPool is the singleton hub/exit-asset reserve pair used as the
// protocol's off-ramp. Both sides are real deposits; there is no staked
// subset.
type ExitPool struct {
	HubReserve  math.Int `json:"hub_reserve"`
	ExitReserve math.Int `json:"exit_reserve"`
}

// Route identifies which of the seven supported swap paths a trade takes.
type Route string

const (
	RouteAssetToHub   Route = "asset_to_hub"
	RouteHubToAsset   Route = "hub_to_asset"
	RouteExitToHub    Route = "exit_to_hub"
	RouteHubToExit    Route = "hub_to_exit"
	RouteAssetToAsset Route = "asset_to_asset"
	RouteAssetToExit  Route = "asset_to_exit"
	RouteExitToAsset  Route = "exit_to_asset"
)

// LedgerKeeper is the expected interface of the token ledger.
type LedgerKeeper interface {
	SendCoins(ctx context.Context, from, to, denom string, amount math.Int) error
	GetBalance(ctx context.Context, addr, denom string) math.Int
}

// FeeRouter receives hub-denominated trading fees for an asset pool's
// stakers. CreditAssetFee returns false when no shares exist to credit, in
// which case the fee is retained in the pool's hub reserve instead.
type FeeRouter interface {
	CreditAssetFee(ctx context.Context, assetID uint64, amount math.Int) (bool, error)
	Collector() string
}

// ExitFeeRouter receives hub-denominated trading fees from exit-pool legs
// for the exit-liquidity stakers.
type ExitFeeRouter interface {
	CreditExitFee(ctx context.Context, amount math.Int) (bool, error)
	Collector() string
}
