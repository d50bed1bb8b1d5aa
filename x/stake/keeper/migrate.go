package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"

	"github.com/stakeclaim/stakeclaim/x/shared/events"
	"github.com/stakeclaim/stakeclaim/x/shared/state"
	"github.com/stakeclaim/stakeclaim/x/stake/types"
)

// SwapStake migrates a share position between assets without any token
// leaving pool custody. The source shares are burned, their token value is
// traded through the pools by the swap keeper's internal transfer, and the
// proceeds are re-staked in the destination. Returns the destination shares
// minted.
func (k *Keeper) SwapStake(ctx context.Context, staker string, fromAssetID, toAssetID uint64, shares math.Int) (math.Int, error) {
	if staker == "" {
		return math.ZeroInt(), types.ErrInvalidAddress
	}
	if fromAssetID == toAssetID {
		return math.ZeroInt(), types.ErrSameAsset
	}
	if !shares.IsPositive() {
		return math.ZeroInt(), types.ErrZeroAmount
	}
	held := k.SharesOf(ctx, fromAssetID, staker)
	if held.LT(shares) {
		return math.ZeroInt(), types.ErrInsufficientShares.Wrapf("have %s, migrating %s", held, shares)
	}
	// Destination pool must exist before anything is burned.
	if _, err := k.swap.GetStakedSubset(ctx, toAssetID); err != nil {
		return math.ZeroInt(), err
	}

	subsetFrom, err := k.swap.GetStakedSubset(ctx, fromAssetID)
	if err != nil {
		return math.ZeroInt(), err
	}
	totalFrom := k.TotalShares(ctx, fromAssetID)
	amountIn := shares.Mul(subsetFrom).Quo(totalFrom)
	if !amountIn.IsPositive() {
		return math.ZeroInt(), types.ErrDustPosition.Wrapf("%s shares of asset %d are worth no tokens", shares, fromAssetID)
	}

	if _, err := k.harvestAsset(ctx, fromAssetID, staker); err != nil {
		return math.ZeroInt(), err
	}
	if _, err := k.harvestAsset(ctx, toAssetID, staker); err != nil {
		return math.ZeroInt(), err
	}
	if _, err := k.weight.Harvest(ctx, staker); err != nil {
		return math.ZeroInt(), err
	}

	k.setShares(ctx, fromAssetID, staker, held.Sub(shares))
	k.setTotalShares(ctx, fromAssetID, totalFrom.Sub(shares))
	k.resetDebt(ctx, fromAssetID, staker)

	amountOut, err := k.swap.InternalTransfer(ctx, types.EngineName, fromAssetID, toAssetID, amountIn)
	if err != nil {
		return math.ZeroInt(), err
	}

	minted, err := k.mintMigrated(ctx, staker, toAssetID, amountOut)
	if err != nil {
		return math.ZeroInt(), err
	}

	if rec := k.OwnerOf(ctx, fromAssetID); rec != nil && rec.Owner == staker {
		k.rescanOwner(ctx, fromAssetID, staker)
	}

	if err := k.weight.RemoveWeight(ctx, types.EngineName, staker, shares); err != nil {
		return math.ZeroInt(), err
	}
	if err := k.weight.AddWeight(ctx, types.EngineName, staker, minted); err != nil {
		return math.ZeroInt(), err
	}

	state.Events(ctx).EmitEvent(events.NewEvent(
		types.EventTypeMigrate,
		events.NewAttribute(types.AttributeKeyFromAssetID, fmt.Sprintf("%d", fromAssetID)),
		events.NewAttribute(types.AttributeKeyToAssetID, fmt.Sprintf("%d", toAssetID)),
		events.NewAttribute(types.AttributeKeyStaker, staker),
		events.NewAttribute(types.AttributeKeySharesBurned, shares.String()),
		events.NewAttribute(types.AttributeKeySharesMinted, minted.String()),
	))
	k.metrics.MigrationsTotal.Inc()
	k.logger.Info("migrated stake",
		"from_asset_id", fromAssetID, "to_asset_id", toAssetID,
		"staker", staker, "shares_burned", shares, "shares_minted", minted)

	return minted, nil
}

// BatchSwapStake liquidates the caller's entire position in every source
// asset and re-stakes the combined proceeds into the destination. Sources
// the caller holds no shares in abort the whole batch.
func (k *Keeper) BatchSwapStake(ctx context.Context, staker string, fromAssetIDs []uint64, toAssetID uint64) (math.Int, error) {
	if staker == "" {
		return math.ZeroInt(), types.ErrInvalidAddress
	}
	if len(fromAssetIDs) == 0 {
		return math.ZeroInt(), types.ErrEmptyBatch
	}
	for _, id := range fromAssetIDs {
		if id == toAssetID {
			return math.ZeroInt(), types.ErrSameAsset.Wrapf("asset %d is the destination", id)
		}
	}
	if _, err := k.swap.GetStakedSubset(ctx, toAssetID); err != nil {
		return math.ZeroInt(), err
	}

	if _, err := k.harvestAsset(ctx, toAssetID, staker); err != nil {
		return math.ZeroInt(), err
	}
	if _, err := k.weight.Harvest(ctx, staker); err != nil {
		return math.ZeroInt(), err
	}

	totalOut := math.ZeroInt()
	burned := math.ZeroInt()
	for _, fromAssetID := range fromAssetIDs {
		held := k.SharesOf(ctx, fromAssetID, staker)
		if !held.IsPositive() {
			return math.ZeroInt(), types.ErrNoSharesInSource.Wrapf("asset %d", fromAssetID)
		}
		subset, err := k.swap.GetStakedSubset(ctx, fromAssetID)
		if err != nil {
			return math.ZeroInt(), err
		}
		totalFrom := k.TotalShares(ctx, fromAssetID)
		amountIn := held.Mul(subset).Quo(totalFrom)

		if _, err := k.harvestAsset(ctx, fromAssetID, staker); err != nil {
			return math.ZeroInt(), err
		}
		k.setShares(ctx, fromAssetID, staker, math.ZeroInt())
		k.setTotalShares(ctx, fromAssetID, totalFrom.Sub(held))
		k.resetDebt(ctx, fromAssetID, staker)
		burned = burned.Add(held)

		if amountIn.IsPositive() {
			out, err := k.swap.InternalTransfer(ctx, types.EngineName, fromAssetID, toAssetID, amountIn)
			if err != nil {
				return math.ZeroInt(), err
			}
			totalOut = totalOut.Add(out)
		}

		if rec := k.OwnerOf(ctx, fromAssetID); rec != nil && rec.Owner == staker {
			k.rescanOwner(ctx, fromAssetID, staker)
		}
	}

	minted := math.ZeroInt()
	if totalOut.IsPositive() {
		var err error
		minted, err = k.mintMigrated(ctx, staker, toAssetID, totalOut)
		if err != nil {
			return math.ZeroInt(), err
		}
	}

	if err := k.weight.RemoveWeight(ctx, types.EngineName, staker, burned); err != nil {
		return math.ZeroInt(), err
	}
	if minted.IsPositive() {
		if err := k.weight.AddWeight(ctx, types.EngineName, staker, minted); err != nil {
			return math.ZeroInt(), err
		}
	}

	state.Events(ctx).EmitEvent(events.NewEvent(
		types.EventTypeBatchMigrate,
		events.NewAttribute(types.AttributeKeyToAssetID, fmt.Sprintf("%d", toAssetID)),
		events.NewAttribute(types.AttributeKeySourceCount, fmt.Sprintf("%d", len(fromAssetIDs))),
		events.NewAttribute(types.AttributeKeyStaker, staker),
		events.NewAttribute(types.AttributeKeySharesBurned, burned.String()),
		events.NewAttribute(types.AttributeKeySharesMinted, minted.String()),
	))
	k.metrics.MigrationsTotal.Inc()
	k.logger.Info("batch migrated stake",
		"to_asset_id", toAssetID, "sources", len(fromAssetIDs),
		"staker", staker, "shares_burned", burned, "shares_minted", minted)

	return minted, nil
}

// mintMigrated stakes already-transferred pool tokens for the staker.
// Shares are priced against the destination subset after the transfer
// landed, so the migrated amount is part of the pricing base.
func (k *Keeper) mintMigrated(ctx context.Context, staker string, assetID uint64, amount math.Int) (math.Int, error) {
	subsetPost, err := k.swap.GetStakedSubset(ctx, assetID)
	if err != nil {
		return math.ZeroInt(), err
	}
	total := k.TotalShares(ctx, assetID)
	minted := amount
	if total.IsPositive() && subsetPost.IsPositive() {
		minted = amount.Mul(total).Quo(subsetPost)
	}
	if !minted.IsPositive() {
		return math.ZeroInt(), types.ErrDustPosition.Wrapf("migrated %s mints no shares", amount)
	}

	newShares := k.SharesOf(ctx, assetID, staker).Add(minted)
	k.setShares(ctx, assetID, staker, newShares)
	k.setTotalShares(ctx, assetID, total.Add(minted))
	k.resetDebt(ctx, assetID, staker)
	k.updateOwnerOnGain(ctx, assetID, staker, newShares)
	return minted, nil
}
