package types

import (
	"context"

	"cosmossdk.io/math"
)

// LedgerKeeper is the balance-book surface the weight keeper needs to
// collect and pay out globally distributed fees.
type LedgerKeeper interface {
	SendCoins(ctx context.Context, from, to, denom string, amount math.Int) error
	GetBalance(ctx context.Context, addr, denom string) math.Int
}
