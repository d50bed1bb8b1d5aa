package keeper

import (
	"context"

	"cosmossdk.io/math"

	"github.com/stakeclaim/stakeclaim/x/shared/events"
	"github.com/stakeclaim/stakeclaim/x/shared/state"
	"github.com/stakeclaim/stakeclaim/x/weight/types"
)

// AddWeight registers additional weight for an account. The account's
// pending global reward is harvested first so the new weight cannot claim
// fees distributed before it existed.
func (k *Keeper) AddWeight(ctx context.Context, authority, addr string, delta math.Int) error {
	if err := k.requireAuthorized(authority); err != nil {
		return err
	}
	if addr == "" {
		return types.ErrInvalidAddress
	}
	if !delta.IsPositive() {
		return types.ErrZeroDelta
	}

	if _, err := k.Harvest(ctx, addr); err != nil {
		return err
	}

	weight := k.WeightOf(ctx, addr).Add(delta)
	k.setWeight(ctx, addr, weight)
	k.setTotalWeight(ctx, k.TotalWeight(ctx).Add(delta))
	k.resetDebt(ctx, addr)

	state.Events(ctx).EmitEvent(events.NewEvent(
		types.EventTypeWeightAdded,
		events.NewAttribute(types.AttributeKeyEngine, authority),
		events.NewAttribute(types.AttributeKeyAddress, addr),
		events.NewAttribute(types.AttributeKeyDelta, delta.String()),
		events.NewAttribute(types.AttributeKeyWeight, weight.String()),
	))
	return nil
}

// RemoveWeight deregisters weight for an account, harvesting first.
func (k *Keeper) RemoveWeight(ctx context.Context, authority, addr string, delta math.Int) error {
	if err := k.requireAuthorized(authority); err != nil {
		return err
	}
	if addr == "" {
		return types.ErrInvalidAddress
	}
	if !delta.IsPositive() {
		return types.ErrZeroDelta
	}
	weight := k.WeightOf(ctx, addr)
	if weight.LT(delta) {
		return types.ErrInsufficientWeight.Wrapf("have %s, removing %s", weight, delta)
	}

	if _, err := k.Harvest(ctx, addr); err != nil {
		return err
	}

	weight = weight.Sub(delta)
	k.setWeight(ctx, addr, weight)
	k.setTotalWeight(ctx, k.TotalWeight(ctx).Sub(delta))
	k.resetDebt(ctx, addr)

	state.Events(ctx).EmitEvent(events.NewEvent(
		types.EventTypeWeightRemoved,
		events.NewAttribute(types.AttributeKeyEngine, authority),
		events.NewAttribute(types.AttributeKeyAddress, addr),
		events.NewAttribute(types.AttributeKeyDelta, delta.String()),
		events.NewAttribute(types.AttributeKeyWeight, weight.String()),
	))
	return nil
}

// Harvest pays an account's pending global reward and resets its debt
// snapshot. Safe to call with no weight registered.
func (k *Keeper) Harvest(ctx context.Context, addr string) (math.Int, error) {
	if addr == "" {
		return math.ZeroInt(), types.ErrInvalidAddress
	}
	weight := k.WeightOf(ctx, addr)
	acc := k.accPerWeight(ctx)
	pending := pendingOf(weight, acc, k.rewardDebt(ctx, addr))
	if pending.IsPositive() {
		if err := k.ledger.SendCoins(ctx, k.feeAddr, addr, k.hubDenom, pending); err != nil {
			return math.ZeroInt(), err
		}
		state.Events(ctx).EmitEvent(events.NewEvent(
			types.EventTypeHarvest,
			events.NewAttribute(types.AttributeKeyAddress, addr),
			events.NewAttribute(types.AttributeKeyReward, pending.String()),
		))
		k.metrics.HarvestsTotal.Inc()
	}
	k.setRewardDebt(ctx, addr, weight.Mul(acc).Quo(types.RewardScale))
	return pending, nil
}

// DistributeFee pulls a hub-denominated fee from payer and folds it into
// the global accumulator. With no weight registered anywhere the fee is
// still collected and sits in the fee account unclaimed.
func (k *Keeper) DistributeFee(ctx context.Context, payer string, amount math.Int) error {
	if !amount.IsPositive() {
		return types.ErrZeroDelta.Wrap("fee must be positive")
	}
	if err := k.ledger.SendCoins(ctx, payer, k.feeAddr, k.hubDenom, amount); err != nil {
		return err
	}

	total := k.TotalWeight(ctx)
	if total.IsPositive() {
		acc := k.accPerWeight(ctx)
		k.setAccPerWeight(ctx, acc.Add(amount.Mul(types.RewardScale).Quo(total)))
	}

	state.Events(ctx).EmitEvent(events.NewEvent(
		types.EventTypeFeeDistributed,
		events.NewAttribute(types.AttributeKeyPayer, payer),
		events.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
	if amount.IsInt64() {
		k.metrics.FeesDistributed.Add(float64(amount.Int64()))
	}
	k.logger.Info("fee distributed", "payer", payer, "amount", amount)
	return nil
}

// PendingGlobalRewards returns the unharvested global reward of an account
// without paying it.
func (k *Keeper) PendingGlobalRewards(ctx context.Context, addr string) math.Int {
	return pendingOf(k.WeightOf(ctx, addr), k.accPerWeight(ctx), k.rewardDebt(ctx, addr))
}

func (k *Keeper) resetDebt(ctx context.Context, addr string) {
	weight := k.WeightOf(ctx, addr)
	acc := k.accPerWeight(ctx)
	k.setRewardDebt(ctx, addr, weight.Mul(acc).Quo(types.RewardScale))
}

func pendingOf(weight, acc, debt math.Int) math.Int {
	pending := weight.Mul(acc).Quo(types.RewardScale).Sub(debt)
	if pending.IsNegative() {
		return math.ZeroInt()
	}
	return pending
}
