package keeper

import (
	"context"

	"cosmossdk.io/math"

	"github.com/stakeclaim/stakeclaim/x/exitpool/types"
	"github.com/stakeclaim/stakeclaim/x/shared/events"
	"github.com/stakeclaim/stakeclaim/x/shared/state"
)

// Stake deposits exit liquidity. The provider names the exit-token amount;
// the matching hub amount is taken at the pool's live ratio, 1:1 when the
// pool is being bootstrapped. Shares are priced against the exit reserve as
// it stood before the deposit. Returns the shares minted and the hub amount
// pulled alongside the exit tokens.
func (k *Keeper) Stake(ctx context.Context, provider string, exitAmount math.Int) (minted, hubAmount math.Int, err error) {
	if provider == "" {
		return math.ZeroInt(), math.ZeroInt(), types.ErrInvalidAddress
	}
	if !exitAmount.IsPositive() {
		return math.ZeroInt(), math.ZeroInt(), types.ErrZeroAmount
	}

	if !k.swap.ExitPoolInitialized(ctx) {
		hubAmount = exitAmount
		minted = exitAmount

		if _, err := k.harvest(ctx, provider); err != nil {
			return math.ZeroInt(), math.ZeroInt(), err
		}
		if _, err := k.weight.Harvest(ctx, provider); err != nil {
			return math.ZeroInt(), math.ZeroInt(), err
		}
		if err := k.swap.BootstrapExitPool(ctx, types.EngineName, provider, hubAmount, exitAmount); err != nil {
			return math.ZeroInt(), math.ZeroInt(), err
		}
	} else {
		hubReserve, exitReserve, err := k.swap.GetExitLiquidityReserves(ctx)
		if err != nil {
			return math.ZeroInt(), math.ZeroInt(), err
		}
		hubAmount = exitAmount.Mul(hubReserve).Quo(exitReserve)

		total := k.TotalShares(ctx)
		minted = exitAmount
		if total.IsPositive() && exitReserve.IsPositive() {
			minted = exitAmount.Mul(total).Quo(exitReserve)
		}
		if !minted.IsPositive() {
			return math.ZeroInt(), math.ZeroInt(), types.ErrDustPosition.Wrapf("depositing %s mints no shares", exitAmount)
		}

		if _, err := k.harvest(ctx, provider); err != nil {
			return math.ZeroInt(), math.ZeroInt(), err
		}
		if _, err := k.weight.Harvest(ctx, provider); err != nil {
			return math.ZeroInt(), math.ZeroInt(), err
		}
		if err := k.swap.AddExitLiquidity(ctx, types.EngineName, provider, hubAmount, exitAmount); err != nil {
			return math.ZeroInt(), math.ZeroInt(), err
		}
	}

	k.setShares(ctx, provider, k.SharesOf(ctx, provider).Add(minted))
	k.setTotalShares(ctx, k.TotalShares(ctx).Add(minted))
	k.resetDebt(ctx, provider)

	if err := k.syncWeight(ctx, provider); err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}

	state.Events(ctx).EmitEvent(events.NewEvent(
		types.EventTypeStake,
		events.NewAttribute(types.AttributeKeyProvider, provider),
		events.NewAttribute(types.AttributeKeyExitAmount, exitAmount.String()),
		events.NewAttribute(types.AttributeKeyHubAmount, hubAmount.String()),
		events.NewAttribute(types.AttributeKeySharesMinted, minted.String()),
	))
	k.metrics.StakesTotal.Inc()
	k.logger.Info("exit liquidity staked",
		"provider", provider, "exit_amount", exitAmount, "hub_amount", hubAmount, "shares", minted)

	return minted, hubAmount, nil
}

// Unstake burns exit shares and withdraws the proportional slice of both
// reserves to the provider. Returns the hub and exit amounts paid out.
func (k *Keeper) Unstake(ctx context.Context, provider string, shares math.Int) (hubOut, exitOut math.Int, err error) {
	if provider == "" {
		return math.ZeroInt(), math.ZeroInt(), types.ErrInvalidAddress
	}
	if !shares.IsPositive() {
		return math.ZeroInt(), math.ZeroInt(), types.ErrZeroAmount
	}
	held := k.SharesOf(ctx, provider)
	if held.LT(shares) {
		return math.ZeroInt(), math.ZeroInt(), types.ErrInsufficientShares.Wrapf("have %s, burning %s", held, shares)
	}

	hubReserve, exitReserve, err := k.swap.GetExitLiquidityReserves(ctx)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	total := k.TotalShares(ctx)
	hubOut = shares.Mul(hubReserve).Quo(total)
	exitOut = shares.Mul(exitReserve).Quo(total)

	if _, err := k.harvest(ctx, provider); err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	if _, err := k.weight.Harvest(ctx, provider); err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}

	k.setShares(ctx, provider, held.Sub(shares))
	k.setTotalShares(ctx, total.Sub(shares))
	k.resetDebt(ctx, provider)

	if err := k.swap.RemoveExitLiquidity(ctx, types.EngineName, provider, hubOut, exitOut); err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}

	if err := k.syncWeight(ctx, provider); err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}

	state.Events(ctx).EmitEvent(events.NewEvent(
		types.EventTypeUnstake,
		events.NewAttribute(types.AttributeKeyProvider, provider),
		events.NewAttribute(types.AttributeKeySharesBurned, shares.String()),
		events.NewAttribute(types.AttributeKeyHubAmount, hubOut.String()),
		events.NewAttribute(types.AttributeKeyExitAmount, exitOut.String()),
	))
	k.metrics.UnstakesTotal.Inc()
	k.logger.Info("exit liquidity unstaked",
		"provider", provider, "shares", shares, "hub_amount", hubOut, "exit_amount", exitOut)

	return hubOut, exitOut, nil
}

// ClaimRewards pays the provider's pending exit-fee share plus whatever the
// global weight registry has accrued for them.
func (k *Keeper) ClaimRewards(ctx context.Context, provider string) (exitReward, globalReward math.Int, err error) {
	if provider == "" {
		return math.ZeroInt(), math.ZeroInt(), types.ErrInvalidAddress
	}
	exitReward, err = k.harvest(ctx, provider)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	globalReward, err = k.weight.Harvest(ctx, provider)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}

	state.Events(ctx).EmitEvent(events.NewEvent(
		types.EventTypeRewardsClaim,
		events.NewAttribute(types.AttributeKeyProvider, provider),
		events.NewAttribute(types.AttributeKeyExitReward, exitReward.String()),
		events.NewAttribute(types.AttributeKeyGlobalReward, globalReward.String()),
	))
	k.metrics.ClaimsTotal.Inc()
	return exitReward, globalReward, nil
}

// CreditExitFee folds a hub-denominated exit-leg fee into the per-share
// accumulator. Part of the swap module's ExitFeeRouter contract: a false
// return tells the swap keeper no provider can receive the fee, so it keeps
// the amount in the exit pool instead of transferring it here.
func (k *Keeper) CreditExitFee(ctx context.Context, amount math.Int) (bool, error) {
	if !amount.IsPositive() {
		return false, nil
	}
	total := k.TotalShares(ctx)
	if !total.IsPositive() {
		return false, nil
	}

	acc := k.accPerShare(ctx)
	k.setAccPerShare(ctx, acc.Add(amount.Mul(types.RewardScale).Quo(total)))

	state.Events(ctx).EmitEvent(events.NewEvent(
		types.EventTypeFeeAccrued,
		events.NewAttribute(types.AttributeKeyFee, amount.String()),
	))
	if amount.IsInt64() {
		k.metrics.FeesAccrued.Add(float64(amount.Int64()))
	}
	return true, nil
}

// PendingRewards returns the unharvested exit-fee reward of a provider
// without paying it.
func (k *Keeper) PendingRewards(ctx context.Context, addr string) math.Int {
	return pendingOf(k.SharesOf(ctx, addr), k.accPerShare(ctx), k.rewardDebt(ctx, addr))
}
