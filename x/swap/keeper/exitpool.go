package keeper

import (
	"context"

	"cosmossdk.io/math"

	"github.com/stakeclaim/stakeclaim/x/shared/events"
	"github.com/stakeclaim/stakeclaim/x/shared/state"
	"github.com/stakeclaim/stakeclaim/x/swap/types"
)

// GetExitPool returns the singleton exit pool. Returns
// ErrExitPoolNotInitialized before the first exit-liquidity stake.
func (k *Keeper) GetExitPool(ctx context.Context) (*types.ExitPool, error) {
	bz := k.getStore(ctx).Get(types.ExitPoolKey)
	if bz == nil {
		return nil, types.ErrExitPoolNotInitialized
	}
	var pool types.ExitPool
	state.MustUnmarshal(bz, &pool)
	return &pool, nil
}

// ExitPoolInitialized reports whether the exit pool has been bootstrapped.
func (k *Keeper) ExitPoolInitialized(ctx context.Context) bool {
	return k.getStore(ctx).Has(types.ExitPoolKey)
}

func (k *Keeper) setExitPool(ctx context.Context, pool *types.ExitPool) {
	k.getStore(ctx).Set(types.ExitPoolKey, state.MustMarshal(pool))
}

// BootstrapExitPool seeds the singleton exit pool with the first deposit.
// Privileged: exit-liquidity engine only. Funds are pulled from the staker.
func (k *Keeper) BootstrapExitPool(ctx context.Context, authority, from string, hubAmount, exitAmount math.Int) error {
	if err := k.requireAuthorized(authority); err != nil {
		return err
	}
	if k.ExitPoolInitialized(ctx) {
		return types.ErrExitPoolExists
	}
	if !hubAmount.IsPositive() || !exitAmount.IsPositive() {
		return types.ErrZeroAmount.Wrap("bootstrap amounts must be positive")
	}

	if err := k.ledger.SendCoins(ctx, from, k.moduleAddr, k.params.HubDenom, hubAmount); err != nil {
		return err
	}
	if err := k.ledger.SendCoins(ctx, from, k.moduleAddr, k.params.ExitDenom, exitAmount); err != nil {
		return err
	}

	k.setExitPool(ctx, &types.ExitPool{HubReserve: hubAmount, ExitReserve: exitAmount})
	k.emitExitPoolEvent(ctx, hubAmount, exitAmount)
	k.logger.Info("exit pool bootstrapped",
		"hub_reserve", hubAmount.String(), "exit_reserve", exitAmount.String())
	return nil
}

// AddExitLiquidity deposits both sides into the exit pool 1:1 with the
// staker's transfer. Privileged: exit-liquidity engine only.
func (k *Keeper) AddExitLiquidity(ctx context.Context, authority, from string, hubAmount, exitAmount math.Int) error {
	if err := k.requireAuthorized(authority); err != nil {
		return err
	}
	if hubAmount.IsNegative() || exitAmount.IsNegative() {
		return types.ErrInvalidAmount.Wrap("liquidity amounts cannot be negative")
	}
	pool, err := k.GetExitPool(ctx)
	if err != nil {
		return err
	}

	if err := k.ledger.SendCoins(ctx, from, k.moduleAddr, k.params.HubDenom, hubAmount); err != nil {
		return err
	}
	if err := k.ledger.SendCoins(ctx, from, k.moduleAddr, k.params.ExitDenom, exitAmount); err != nil {
		return err
	}

	pool.HubReserve = pool.HubReserve.Add(hubAmount)
	pool.ExitReserve = pool.ExitReserve.Add(exitAmount)
	k.setExitPool(ctx, pool)
	k.emitExitPoolEvent(ctx, pool.HubReserve, pool.ExitReserve)
	return nil
}

// RemoveExitLiquidity withdraws both sides from the exit pool to the
// recipient. Privileged: exit-liquidity engine only. Fails with
// ErrInsufficientReserve when either side is overdrawn.
func (k *Keeper) RemoveExitLiquidity(ctx context.Context, authority, to string, hubAmount, exitAmount math.Int) error {
	if err := k.requireAuthorized(authority); err != nil {
		return err
	}
	if hubAmount.IsNegative() || exitAmount.IsNegative() {
		return types.ErrInvalidAmount.Wrap("liquidity amounts cannot be negative")
	}
	pool, err := k.GetExitPool(ctx)
	if err != nil {
		return err
	}
	if hubAmount.GT(pool.HubReserve) || exitAmount.GT(pool.ExitReserve) {
		return types.ErrInsufficientReserve.Wrapf(
			"withdrawal %s/%s exceeds exit reserves %s/%s",
			hubAmount, exitAmount, pool.HubReserve, pool.ExitReserve)
	}

	pool.HubReserve = pool.HubReserve.Sub(hubAmount)
	pool.ExitReserve = pool.ExitReserve.Sub(exitAmount)
	k.setExitPool(ctx, pool)

	if err := k.ledger.SendCoins(ctx, k.moduleAddr, to, k.params.HubDenom, hubAmount); err != nil {
		return err
	}
	if err := k.ledger.SendCoins(ctx, k.moduleAddr, to, k.params.ExitDenom, exitAmount); err != nil {
		return err
	}
	k.emitExitPoolEvent(ctx, pool.HubReserve, pool.ExitReserve)
	return nil
}

func (k *Keeper) emitExitPoolEvent(ctx context.Context, hubReserve, exitReserve math.Int) {
	state.Events(ctx).EmitEvent(events.NewEvent(
		types.EventTypeExitPoolUpdated,
		events.NewAttribute("hub_reserve", hubReserve.String()),
		events.NewAttribute("exit_reserve", exitReserve.String()),
	))
}
