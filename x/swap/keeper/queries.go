package keeper

import (
	"context"

	"cosmossdk.io/math"

	"github.com/stakeclaim/stakeclaim/x/swap/types"
)

// GetPrice returns the spot price of the asset in hub terms:
// hubReserve / assetReserve.
func (k *Keeper) GetPrice(ctx context.Context, assetID uint64) (math.LegacyDec, error) {
	pool, err := k.GetPool(ctx, assetID)
	if err != nil {
		return math.LegacyZeroDec(), err
	}
	if pool.AssetReserve.IsZero() {
		return math.LegacyZeroDec(), types.ErrInsufficientReserve.Wrapf("asset %d reserve is empty", assetID)
	}
	return math.LegacyNewDecFromInt(pool.HubReserve).Quo(math.LegacyNewDecFromInt(pool.AssetReserve)), nil
}

// GetReserves returns a pool's hub and asset reserves.
func (k *Keeper) GetReserves(ctx context.Context, assetID uint64) (hub, asset math.Int, err error) {
	pool, err := k.GetPool(ctx, assetID)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	return pool.HubReserve, pool.AssetReserve, nil
}

// GetStakedSubset returns the staked portion of a pool's asset reserve.
func (k *Keeper) GetStakedSubset(ctx context.Context, assetID uint64) (math.Int, error) {
	pool, err := k.GetPool(ctx, assetID)
	if err != nil {
		return math.ZeroInt(), err
	}
	return pool.StakedSubset, nil
}

// GetExitLiquidityReserves returns the exit pool's hub and exit reserves.
func (k *Keeper) GetExitLiquidityReserves(ctx context.Context) (hub, exit math.Int, err error) {
	pool, err := k.GetExitPool(ctx)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	return pool.HubReserve, pool.ExitReserve, nil
}
