package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"

	"github.com/stakeclaim/stakeclaim/x/shared/events"
	"github.com/stakeclaim/stakeclaim/x/shared/state"
	"github.com/stakeclaim/stakeclaim/x/swap/types"
)

// AddToReserve credits a stake deposit: reserve and staked subset move
// together 1:1, and the tokens are pulled from the staker into the reserve
// account. Privileged: staking engine only.
func (k *Keeper) AddToReserve(ctx context.Context, authority string, assetID uint64, amount math.Int, from string) error {
	if err := k.requireAuthorized(authority); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return types.ErrZeroAmount.Wrap("reserve credit must be positive")
	}
	pool, err := k.GetPool(ctx, assetID)
	if err != nil {
		return err
	}

	if err := k.ledger.SendCoins(ctx, from, k.moduleAddr, pool.Denom, amount); err != nil {
		return err
	}

	pool.AssetReserve = pool.AssetReserve.Add(amount)
	pool.StakedSubset = pool.StakedSubset.Add(amount)
	k.setPool(ctx, pool)

	state.Events(ctx).EmitEvent(events.NewEvent(
		types.EventTypeReserveAdded,
		events.NewAttribute(types.AttributeKeyAssetID, fmt.Sprintf("%d", assetID)),
		events.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
	return nil
}

// RemoveFromReserve debits a stake withdrawal: reserve and staked subset
// move together 1:1, and the tokens are paid from the reserve account to
// the recipient. Fails with ErrInsufficientReserve when the amount exceeds
// either the reserve or the staked subset. Privileged: staking engine only.
func (k *Keeper) RemoveFromReserve(ctx context.Context, authority string, assetID uint64, amount math.Int, to string) error {
	if err := k.requireAuthorized(authority); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return types.ErrZeroAmount.Wrap("reserve debit must be positive")
	}
	pool, err := k.GetPool(ctx, assetID)
	if err != nil {
		return err
	}
	if amount.GT(pool.AssetReserve) {
		return types.ErrInsufficientReserve.Wrapf(
			"debit %s exceeds reserve %s of asset %d", amount, pool.AssetReserve, assetID)
	}
	if amount.GT(pool.StakedSubset) {
		return types.ErrInsufficientReserve.Wrapf(
			"debit %s exceeds staked subset %s of asset %d", amount, pool.StakedSubset, assetID)
	}

	pool.AssetReserve = pool.AssetReserve.Sub(amount)
	pool.StakedSubset = pool.StakedSubset.Sub(amount)
	k.setPool(ctx, pool)

	if err := k.ledger.SendCoins(ctx, k.moduleAddr, to, pool.Denom, amount); err != nil {
		return err
	}

	state.Events(ctx).EmitEvent(events.NewEvent(
		types.EventTypeReserveRemoved,
		events.NewAttribute(types.AttributeKeyAssetID, fmt.Sprintf("%d", assetID)),
		events.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
	return nil
}
