package types

import (
	"context"

	"cosmossdk.io/math"
)

// LedgerKeeper is the balance-book surface the exit-liquidity keeper needs
// to pay out harvested fees.
type LedgerKeeper interface {
	SendCoins(ctx context.Context, from, to, denom string, amount math.Int) error
	GetBalance(ctx context.Context, addr, denom string) math.Int
}

// SwapKeeper is the exit-pool surface the exit-liquidity keeper drives. All
// mutating calls are gated on the engine's registered authority.
type SwapKeeper interface {
	BootstrapExitPool(ctx context.Context, authority, from string, hubAmount, exitAmount math.Int) error
	AddExitLiquidity(ctx context.Context, authority, from string, hubAmount, exitAmount math.Int) error
	RemoveExitLiquidity(ctx context.Context, authority, to string, hubAmount, exitAmount math.Int) error
	GetExitLiquidityReserves(ctx context.Context) (hub, exit math.Int, err error)
	ExitPoolInitialized(ctx context.Context) bool
}

// WeightKeeper tracks cross-asset reward weight for providers.
type WeightKeeper interface {
	AddWeight(ctx context.Context, authority, addr string, delta math.Int) error
	RemoveWeight(ctx context.Context, authority, addr string, delta math.Int) error
	Harvest(ctx context.Context, addr string) (math.Int, error)
}
