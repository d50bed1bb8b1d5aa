package types

import (
	"context"

	"cosmossdk.io/math"
)

// LedgerKeeper is the balance-book surface the staking keeper needs to pay
// out harvested fees.
type LedgerKeeper interface {
	SendCoins(ctx context.Context, from, to, denom string, amount math.Int) error
	GetBalance(ctx context.Context, addr, denom string) math.Int
}

// SwapKeeper is the pool surface the staking keeper drives. All mutating
// calls are gated on the engine's registered authority.
type SwapKeeper interface {
	AddToReserve(ctx context.Context, authority string, assetID uint64, amount math.Int, from string) error
	RemoveFromReserve(ctx context.Context, authority string, assetID uint64, amount math.Int, to string) error
	InternalTransfer(ctx context.Context, authority string, fromAssetID, toAssetID uint64, amountIn math.Int) (math.Int, error)
	GetStakedSubset(ctx context.Context, assetID uint64) (math.Int, error)
}

// WeightKeeper tracks cross-asset reward weight for stakers.
type WeightKeeper interface {
	AddWeight(ctx context.Context, authority, addr string, delta math.Int) error
	RemoveWeight(ctx context.Context, authority, addr string, delta math.Int) error
	Harvest(ctx context.Context, addr string) (math.Int, error)
}
