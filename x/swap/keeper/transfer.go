package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"

	"github.com/stakeclaim/stakeclaim/x/shared/events"
	"github.com/stakeclaim/stakeclaim/x/shared/state"
	"github.com/stakeclaim/stakeclaim/x/swap/types"
)

// InternalTransfer migrates staked value between two pools as pure reserve
// bookkeeping: no token custody changes. The amount is first removed from
// BOTH the source reserve and staked subset (the tokens leave the staked
// set), then sold into the source pool and the hub proceeds bought from the
// destination pool with ordinary trade math and fees; the output is added
// to BOTH the destination reserve and staked subset. Privileged: staking
// engine only.
func (k *Keeper) InternalTransfer(ctx context.Context, authority string, fromAssetID, toAssetID uint64, amountIn math.Int) (math.Int, error) {
	if err := k.requireAuthorized(authority); err != nil {
		return math.ZeroInt(), err
	}
	if !amountIn.IsPositive() {
		return math.ZeroInt(), types.ErrZeroAmount.Wrap("transfer amount must be positive")
	}
	if fromAssetID == toAssetID {
		return math.ZeroInt(), types.ErrSameToken.Wrapf("asset %d", fromAssetID)
	}

	fromPool, err := k.GetPool(ctx, fromAssetID)
	if err != nil {
		return math.ZeroInt(), err
	}
	toPool, err := k.GetPool(ctx, toAssetID)
	if err != nil {
		return math.ZeroInt(), err
	}
	if amountIn.GT(fromPool.StakedSubset) {
		return math.ZeroInt(), types.ErrInsufficientReserve.Wrapf(
			"transfer %s exceeds staked subset %s of asset %d",
			amountIn, fromPool.StakedSubset, fromAssetID)
	}

	// The staked tokens leave the staked set before the sell leg.
	fromPool.AssetReserve = fromPool.AssetReserve.Sub(amountIn)
	fromPool.StakedSubset = fromPool.StakedSubset.Sub(amountIn)
	if !fromPool.AssetReserve.IsPositive() {
		return math.ZeroInt(), types.ErrInsufficientReserve.Wrapf(
			"transfer would drain reserve of asset %d", fromAssetID)
	}

	hubMid, fromFee, err := k.applyAssetSell(fromPool, amountIn)
	if err != nil {
		return math.ZeroInt(), err
	}
	amountOut, toFee, err := k.applyAssetBuy(toPool, hubMid)
	if err != nil {
		return math.ZeroInt(), err
	}

	// The bought tokens enter the destination staked set.
	toPool.AssetReserve = toPool.AssetReserve.Add(amountOut)
	toPool.StakedSubset = toPool.StakedSubset.Add(amountOut)

	if err := k.creditAssetPoolFee(ctx, fromPool, fromFee); err != nil {
		return math.ZeroInt(), err
	}
	if err := k.creditAssetPoolFee(ctx, toPool, toFee); err != nil {
		return math.ZeroInt(), err
	}

	k.setPool(ctx, fromPool)
	k.setPool(ctx, toPool)

	state.Events(ctx).EmitEvent(events.NewEvent(
		types.EventTypeInternalTransfer,
		events.NewAttribute(types.AttributeKeyFromAssetID, fmt.Sprintf("%d", fromAssetID)),
		events.NewAttribute(types.AttributeKeyToAssetID, fmt.Sprintf("%d", toAssetID)),
		events.NewAttribute(types.AttributeKeyAmountIn, amountIn.String()),
		events.NewAttribute(types.AttributeKeyAmountOut, amountOut.String()),
	))
	k.metrics.InternalTransfersTotal.Inc()
	return amountOut, nil
}
