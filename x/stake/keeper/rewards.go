package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"

	"github.com/stakeclaim/stakeclaim/x/shared/events"
	"github.com/stakeclaim/stakeclaim/x/shared/state"
	"github.com/stakeclaim/stakeclaim/x/stake/types"
)

// ClaimRewards pays the caller's pending per-asset fee share plus whatever
// the global weight registry has accrued for them. Returns both amounts.
func (k *Keeper) ClaimRewards(ctx context.Context, staker string, assetID uint64) (assetReward, globalReward math.Int, err error) {
	if staker == "" {
		return math.ZeroInt(), math.ZeroInt(), types.ErrInvalidAddress
	}
	assetReward, err = k.harvestAsset(ctx, assetID, staker)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	globalReward, err = k.weight.Harvest(ctx, staker)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}

	state.Events(ctx).EmitEvent(events.NewEvent(
		types.EventTypeRewardsClaim,
		events.NewAttribute(types.AttributeKeyAssetID, fmt.Sprintf("%d", assetID)),
		events.NewAttribute(types.AttributeKeyStaker, staker),
		events.NewAttribute(types.AttributeKeyAssetReward, assetReward.String()),
		events.NewAttribute(types.AttributeKeyGlobalReward, globalReward.String()),
	))
	k.metrics.ClaimsTotal.Inc()
	return assetReward, globalReward, nil
}

// CreditAssetFee folds a hub-denominated trading fee into the asset's
// per-share accumulator. Part of the swap module's FeeRouter contract: a
// false return tells the swap keeper no staker can receive the fee, so it
// keeps the amount in the pool instead of transferring it here.
func (k *Keeper) CreditAssetFee(ctx context.Context, assetID uint64, amount math.Int) (bool, error) {
	if !amount.IsPositive() {
		return false, nil
	}
	total := k.TotalShares(ctx, assetID)
	if !total.IsPositive() {
		return false, nil
	}

	acc := k.accPerShare(ctx, assetID)
	k.setAccPerShare(ctx, assetID, acc.Add(amount.Mul(types.RewardScale).Quo(total)))

	state.Events(ctx).EmitEvent(events.NewEvent(
		types.EventTypeFeeAccrued,
		events.NewAttribute(types.AttributeKeyAssetID, fmt.Sprintf("%d", assetID)),
		events.NewAttribute(types.AttributeKeyFee, amount.String()),
	))
	if amount.IsInt64() {
		k.metrics.FeesAccrued.Add(float64(amount.Int64()))
	}
	return true, nil
}

// PendingRewards returns the unharvested per-asset reward of a position
// without paying it.
func (k *Keeper) PendingRewards(ctx context.Context, assetID uint64, addr string) math.Int {
	shares := k.SharesOf(ctx, assetID, addr)
	return pendingOf(shares, k.accPerShare(ctx, assetID), k.rewardDebt(ctx, assetID, addr))
}
