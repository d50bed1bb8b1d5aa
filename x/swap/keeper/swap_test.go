package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/stakeclaim/stakeclaim/testutil"
	exittypes "github.com/stakeclaim/stakeclaim/x/exitpool/types"
	"github.com/stakeclaim/stakeclaim/x/swap/types"
)

const (
	denomA = "uasseta"
	denomB = "uassetb"
	trader = "trader"
)

// Fee reference for a balanced 1,000,000 / 1,000,000 pool at 30 bps:
// swapping 10,000 in either direction nets 9,843 out, with 29 or 30 units
// of hub fee retained when no stakers exist.

func TestSwapAssetToHub(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreatePool(t, 1, denomA, 1_000_000, 1_000_000)
	f.Fund(t, trader, denomA, 10_000)

	out, err := f.Swap.SwapExact(f.Ctx, trader, denomA, f.Params.HubDenom, math.NewInt(10_000), math.ZeroInt())
	require.NoError(t, err)
	require.Equal(t, int64(9_843), out.Int64())

	require.Equal(t, int64(0), f.Balance(trader, denomA))
	require.Equal(t, int64(9_843), f.Balance(trader, f.Params.HubDenom))

	hub, asset, err := f.Swap.GetReserves(f.Ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(1_010_000), asset.Int64())
	// Gross output 9,872 left the hub reserve; the 29-unit fee came back
	// because the pool has no stakers to credit.
	require.Equal(t, int64(990_157), hub.Int64())
}

func TestSwapHubToAsset(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreatePool(t, 1, denomA, 1_000_000, 1_000_000)
	f.FundHub(t, trader, 10_000)

	out, err := f.Swap.SwapExact(f.Ctx, trader, f.Params.HubDenom, denomA, math.NewInt(10_000), math.ZeroInt())
	require.NoError(t, err)
	require.Equal(t, int64(9_843), out.Int64())

	hub, asset, err := f.Swap.GetReserves(f.Ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(1_010_000), hub.Int64())
	require.Equal(t, int64(990_157), asset.Int64())
}

func TestSwapAssetToAsset(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreatePool(t, 1, denomA, 1_000_000, 1_000_000)
	f.CreatePool(t, 2, denomB, 1_000_000, 1_000_000)
	f.Fund(t, trader, denomA, 10_000)

	out, err := f.Swap.SwapExact(f.Ctx, trader, denomA, denomB, math.NewInt(10_000), math.ZeroInt())
	require.NoError(t, err)
	// Two legs, each charged twice, so the round trip loses roughly 1.2%.
	require.True(t, out.Int64() > 9_600 && out.Int64() < 9_843, "out = %d", out.Int64())
	require.Equal(t, out.Int64(), f.Balance(trader, denomB))

	// No hub enters or leaves custody on a cross-asset trade: hub moved
	// between the two pools plus retained fees stays fully accounted.
	hubA, _, err := f.Swap.GetReserves(f.Ctx, 1)
	require.NoError(t, err)
	hubB, _, err := f.Swap.GetReserves(f.Ctx, 2)
	require.NoError(t, err)
	require.Equal(t, int64(2_000_000), hubA.Int64()+hubB.Int64())
}

func TestSwapExitRoutes(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreatePool(t, 1, denomA, 1_000_000, 1_000_000)

	// Bootstrap exit liquidity through the exit engine's authority.
	lp := "lp"
	f.FundHub(t, lp, 1_000_000)
	f.Fund(t, lp, f.Params.ExitDenom, 1_000_000)
	require.NoError(t, f.Swap.BootstrapExitPool(f.Ctx, exittypes.EngineName, lp, math.NewInt(1_000_000), math.NewInt(1_000_000)))

	f.FundHub(t, trader, 10_000)
	out, err := f.Swap.SwapExact(f.Ctx, trader, f.Params.HubDenom, f.Params.ExitDenom, math.NewInt(10_000), math.ZeroInt())
	require.NoError(t, err)
	require.Equal(t, int64(9_843), out.Int64())

	// Exit asset all the way into a pool asset crosses both pool kinds.
	out, err = f.Swap.SwapExact(f.Ctx, trader, f.Params.ExitDenom, denomA, out, math.ZeroInt())
	require.NoError(t, err)
	require.True(t, out.IsPositive())
	require.Equal(t, out.Int64(), f.Balance(trader, denomA))
}

func TestSwapSlippageLeavesReservesUntouched(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreatePool(t, 1, denomA, 1_000_000, 1_000_000)
	f.Fund(t, trader, denomA, 10_000)

	_, err := f.Swap.SwapExact(f.Ctx, trader, denomA, f.Params.HubDenom, math.NewInt(10_000), math.NewInt(9_844))
	require.ErrorIs(t, err, types.ErrSlippage)

	hub, asset, err := f.Swap.GetReserves(f.Ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(1_000_000), hub.Int64())
	require.Equal(t, int64(1_000_000), asset.Int64())
	require.Equal(t, int64(10_000), f.Balance(trader, denomA))
}

func TestSwapValidation(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreatePool(t, 1, denomA, 1_000_000, 1_000_000)

	testCases := []struct {
		name     string
		tokenIn  string
		tokenOut string
		amountIn math.Int
		expErr   error
	}{
		{"zero amount", denomA, f.Params.HubDenom, math.ZeroInt(), types.ErrZeroAmount},
		{"negative amount", denomA, f.Params.HubDenom, math.NewInt(-5), types.ErrZeroAmount},
		{"same token", denomA, denomA, math.NewInt(100), types.ErrSameToken},
		{"unknown denom", "unope", f.Params.HubDenom, math.NewInt(100), types.ErrInvalidRoute},
		{"exit pool not initialized", f.Params.HubDenom, f.Params.ExitDenom, math.NewInt(100), types.ErrInvalidRoute},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.Swap.SwapExact(f.Ctx, trader, tc.tokenIn, tc.tokenOut, tc.amountIn, math.ZeroInt())
			require.ErrorIs(t, err, tc.expErr)
		})
	}
}

func TestSwapInsufficientFundsLeavesReservesUntouched(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreatePool(t, 1, denomA, 1_000_000, 1_000_000)
	f.Fund(t, trader, denomA, 100)

	_, err := f.Swap.SwapExact(f.Ctx, trader, denomA, f.Params.HubDenom, math.NewInt(10_000), math.ZeroInt())
	require.Error(t, err)

	hub, asset, err := f.Swap.GetReserves(f.Ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(1_000_000), hub.Int64())
	require.Equal(t, int64(1_000_000), asset.Int64())
}

func TestSwapConstantProductNonDecreasing(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreatePool(t, 1, denomA, 1_000_000, 1_000_000)
	f.Fund(t, trader, denomA, 500_000)
	f.FundHub(t, trader, 500_000)

	k := math.NewInt(1_000_000).Mul(math.NewInt(1_000_000))
	for i := 0; i < 20; i++ {
		in := math.NewInt(int64(1_000 * (i + 1)))
		_, err := f.Swap.SwapExact(f.Ctx, trader, denomA, f.Params.HubDenom, in, math.ZeroInt())
		require.NoError(t, err)
		_, err = f.Swap.SwapExact(f.Ctx, trader, f.Params.HubDenom, denomA, in, math.ZeroInt())
		require.NoError(t, err)

		hub, asset, err := f.Swap.GetReserves(f.Ctx, 1)
		require.NoError(t, err)
		next := hub.Mul(asset)
		require.True(t, next.GTE(k), "product decreased at step %d", i)
		k = next
	}
}
