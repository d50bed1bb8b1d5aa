package keeper

import (
	"context"
	"encoding/binary"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"

	"github.com/stakeclaim/stakeclaim/x/shared/events"
	"github.com/stakeclaim/stakeclaim/x/shared/state"
	"github.com/stakeclaim/stakeclaim/x/swap/types"
)

// InitializePool creates the constant-product pool for an asset. One-time:
// fails with ErrPoolExists when the asset ID or denom is already bound.
// The seed funds are pulled from the caller's account.
func (k *Keeper) InitializePool(ctx context.Context, from string, assetID uint64, denom string, hubAmount, assetAmount math.Int) error {
	if denom == "" {
		return types.ErrInvalidAmount.Wrap("asset denom cannot be empty")
	}
	if denom == k.params.HubDenom || denom == k.params.ExitDenom {
		return types.ErrInvalidAmount.Wrapf("denom %s is reserved", denom)
	}
	if !hubAmount.IsPositive() || !assetAmount.IsPositive() {
		return types.ErrZeroAmount.Wrap("seed amounts must be positive")
	}

	store := k.getStore(ctx)
	if store.Has(types.PoolKey(assetID)) {
		return types.ErrPoolExists.Wrapf("asset %d", assetID)
	}
	if store.Has(types.PoolByDenomKey(denom)) {
		return types.ErrPoolExists.Wrapf("denom %s already has a pool", denom)
	}

	// Pull seed funds before recording the pool.
	if err := k.ledger.SendCoins(ctx, from, k.moduleAddr, k.params.HubDenom, hubAmount); err != nil {
		return err
	}
	if err := k.ledger.SendCoins(ctx, from, k.moduleAddr, denom, assetAmount); err != nil {
		return err
	}

	pool := &types.Pool{
		AssetID:      assetID,
		Denom:        denom,
		HubReserve:   hubAmount,
		AssetReserve: assetAmount,
		StakedSubset: math.ZeroInt(),
	}
	if err := pool.Validate(); err != nil {
		return err
	}
	k.setPool(ctx, pool)

	idBz := make([]byte, 8)
	binary.BigEndian.PutUint64(idBz, assetID)
	store.Set(types.PoolByDenomKey(denom), idBz)
	k.setPoolCount(ctx, k.PoolCount(ctx)+1)

	state.Events(ctx).EmitEvent(events.NewEvent(
		types.EventTypePoolInitialized,
		events.NewAttribute(types.AttributeKeyAssetID, fmt.Sprintf("%d", assetID)),
		events.NewAttribute(types.AttributeKeyDenom, denom),
		events.NewAttribute(types.AttributeKeyAmount, assetAmount.String()),
	))
	k.metrics.PoolsTotal.Inc()
	k.logger.Info("pool initialized",
		"asset_id", assetID, "denom", denom,
		"hub_reserve", hubAmount.String(), "asset_reserve", assetAmount.String())
	return nil
}

// GetPool retrieves a pool by asset ID. Returns ErrPoolNotFound when the
// asset has no pool.
func (k *Keeper) GetPool(ctx context.Context, assetID uint64) (*types.Pool, error) {
	bz := k.getStore(ctx).Get(types.PoolKey(assetID))
	if bz == nil {
		return nil, types.ErrPoolNotFound.Wrapf("asset %d", assetID)
	}
	var pool types.Pool
	state.MustUnmarshal(bz, &pool)
	return &pool, nil
}

// GetPoolByDenom resolves a token denom to its pool.
func (k *Keeper) GetPoolByDenom(ctx context.Context, denom string) (*types.Pool, error) {
	bz := k.getStore(ctx).Get(types.PoolByDenomKey(denom))
	if bz == nil {
		return nil, types.ErrPoolNotFound.Wrapf("denom %s", denom)
	}
	return k.GetPool(ctx, binary.BigEndian.Uint64(bz))
}

// setPool saves a pool record to the store
func (k *Keeper) setPool(ctx context.Context, pool *types.Pool) {
	k.getStore(ctx).Set(types.PoolKey(pool.AssetID), state.MustMarshal(pool))
}

// PoolCount returns the number of initialized pools.
func (k *Keeper) PoolCount(ctx context.Context) uint64 {
	bz := k.getStore(ctx).Get(types.PoolCountKey)
	if bz == nil {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

func (k *Keeper) setPoolCount(ctx context.Context, count uint64) {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, count)
	k.getStore(ctx).Set(types.PoolCountKey, bz)
}

// IteratePools iterates over all pools in asset-ID order.
func (k *Keeper) IteratePools(ctx context.Context, cb func(pool types.Pool) (stop bool)) {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, types.PoolKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		state.MustUnmarshal(iterator.Value(), &pool)
		if cb(pool) {
			break
		}
	}
}

// GetAllPools returns all pools.
func (k *Keeper) GetAllPools(ctx context.Context) []types.Pool {
	pools := make([]types.Pool, 0, k.PoolCount(ctx))
	k.IteratePools(ctx, func(pool types.Pool) bool {
		pools = append(pools, pool)
		return false
	})
	return pools
}
