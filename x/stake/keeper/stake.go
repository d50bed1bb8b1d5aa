package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"

	"github.com/stakeclaim/stakeclaim/x/shared/events"
	"github.com/stakeclaim/stakeclaim/x/shared/state"
	"github.com/stakeclaim/stakeclaim/x/stake/types"
)

// Stake deposits amount of the asset's token into the pool's staked subset
// and mints shares against the subset as it stood before the deposit.
// Returns the shares minted.
func (k *Keeper) Stake(ctx context.Context, staker string, assetID uint64, amount math.Int) (math.Int, error) {
	if staker == "" {
		return math.ZeroInt(), types.ErrInvalidAddress
	}
	if !amount.IsPositive() {
		return math.ZeroInt(), types.ErrZeroAmount
	}

	subsetBefore, err := k.swap.GetStakedSubset(ctx, assetID)
	if err != nil {
		return math.ZeroInt(), err
	}

	total := k.TotalShares(ctx, assetID)
	minted := amount
	if total.IsPositive() && subsetBefore.IsPositive() {
		minted = amount.Mul(total).Quo(subsetBefore)
	}
	if !minted.IsPositive() {
		return math.ZeroInt(), types.ErrDustPosition.Wrapf("depositing %s mints no shares", amount)
	}

	// Settle rewards against the current share count before it changes.
	if _, err := k.harvestAsset(ctx, assetID, staker); err != nil {
		return math.ZeroInt(), err
	}
	if _, err := k.weight.Harvest(ctx, staker); err != nil {
		return math.ZeroInt(), err
	}

	if err := k.swap.AddToReserve(ctx, types.EngineName, assetID, amount, staker); err != nil {
		return math.ZeroInt(), err
	}

	newShares := k.SharesOf(ctx, assetID, staker).Add(minted)
	k.setShares(ctx, assetID, staker, newShares)
	k.setTotalShares(ctx, assetID, total.Add(minted))
	k.resetDebt(ctx, assetID, staker)

	k.updateOwnerOnGain(ctx, assetID, staker, newShares)

	if err := k.weight.AddWeight(ctx, types.EngineName, staker, minted); err != nil {
		return math.ZeroInt(), err
	}

	state.Events(ctx).EmitEvent(events.NewEvent(
		types.EventTypeStake,
		events.NewAttribute(types.AttributeKeyAssetID, fmt.Sprintf("%d", assetID)),
		events.NewAttribute(types.AttributeKeyStaker, staker),
		events.NewAttribute(types.AttributeKeyAmount, amount.String()),
		events.NewAttribute(types.AttributeKeySharesMinted, minted.String()),
	))
	k.metrics.StakesTotal.Inc()
	k.logger.Info("staked", "asset_id", assetID, "staker", staker, "amount", amount, "shares", minted)

	return minted, nil
}

// Unstake burns shares and pays out the proportional slice of the staked
// subset. When the caller was the asset owner the ownership cache is rebuilt
// by a full rescan.
func (k *Keeper) Unstake(ctx context.Context, staker string, assetID uint64, shares math.Int) (math.Int, error) {
	if staker == "" {
		return math.ZeroInt(), types.ErrInvalidAddress
	}
	if !shares.IsPositive() {
		return math.ZeroInt(), types.ErrZeroAmount
	}
	held := k.SharesOf(ctx, assetID, staker)
	if held.LT(shares) {
		return math.ZeroInt(), types.ErrInsufficientShares.Wrapf("have %s, burning %s", held, shares)
	}

	subset, err := k.swap.GetStakedSubset(ctx, assetID)
	if err != nil {
		return math.ZeroInt(), err
	}
	total := k.TotalShares(ctx, assetID)
	amountOut := shares.Mul(subset).Quo(total)

	if _, err := k.harvestAsset(ctx, assetID, staker); err != nil {
		return math.ZeroInt(), err
	}
	if _, err := k.weight.Harvest(ctx, staker); err != nil {
		return math.ZeroInt(), err
	}

	newShares := held.Sub(shares)
	k.setShares(ctx, assetID, staker, newShares)
	k.setTotalShares(ctx, assetID, total.Sub(shares))
	k.resetDebt(ctx, assetID, staker)

	// A fully eroded position can be worth zero tokens; the shares still burn.
	if amountOut.IsPositive() {
		if err := k.swap.RemoveFromReserve(ctx, types.EngineName, assetID, amountOut, staker); err != nil {
			return math.ZeroInt(), err
		}
	}

	if rec := k.OwnerOf(ctx, assetID); rec != nil && rec.Owner == staker {
		k.rescanOwner(ctx, assetID, staker)
	}

	if err := k.weight.RemoveWeight(ctx, types.EngineName, staker, shares); err != nil {
		return math.ZeroInt(), err
	}

	state.Events(ctx).EmitEvent(events.NewEvent(
		types.EventTypeUnstake,
		events.NewAttribute(types.AttributeKeyAssetID, fmt.Sprintf("%d", assetID)),
		events.NewAttribute(types.AttributeKeyStaker, staker),
		events.NewAttribute(types.AttributeKeySharesBurned, shares.String()),
		events.NewAttribute(types.AttributeKeyAmount, amountOut.String()),
	))
	k.metrics.UnstakesTotal.Inc()
	k.logger.Info("unstaked", "asset_id", assetID, "staker", staker, "shares", shares, "amount", amountOut)

	return amountOut, nil
}
