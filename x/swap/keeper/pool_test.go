package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/stakeclaim/stakeclaim/testutil"
	ledgertypes "github.com/stakeclaim/stakeclaim/x/ledger/types"
	"github.com/stakeclaim/stakeclaim/x/swap/types"
)

func TestInitializePool(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreatePool(t, 1, denomA, 500, 7_500_000)

	pool, err := f.Swap.GetPool(f.Ctx, 1)
	require.NoError(t, err)
	require.Equal(t, denomA, pool.Denom)
	require.Equal(t, int64(500), pool.HubReserve.Int64())
	require.Equal(t, int64(7_500_000), pool.AssetReserve.Int64())
	require.True(t, pool.StakedSubset.IsZero())

	byDenom, err := f.Swap.GetPoolByDenom(f.Ctx, denomA)
	require.NoError(t, err)
	require.Equal(t, pool.AssetID, byDenom.AssetID)

	require.Equal(t, uint64(1), f.Swap.PoolCount(f.Ctx))

	reserves := ledgertypes.ModuleAddress(types.ReserveAccount)
	require.Equal(t, int64(500), f.Balance(reserves, f.Params.HubDenom))
	require.Equal(t, int64(7_500_000), f.Balance(reserves, denomA))
}

func TestInitializePoolRejectsDuplicates(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreatePool(t, 1, denomA, 1_000, 1_000)

	creator := "dup-creator"
	f.FundHub(t, creator, 10_000)
	f.Fund(t, creator, denomA, 10_000)
	f.Fund(t, creator, denomB, 10_000)

	err := f.Swap.InitializePool(f.Ctx, creator, 1, denomB, math.NewInt(1_000), math.NewInt(1_000))
	require.ErrorIs(t, err, types.ErrPoolExists)

	err = f.Swap.InitializePool(f.Ctx, creator, 2, denomA, math.NewInt(1_000), math.NewInt(1_000))
	require.ErrorIs(t, err, types.ErrPoolExists)
}

func TestInitializePoolValidation(t *testing.T) {
	f := testutil.NewFixture(t)
	creator := "creator"
	f.FundHub(t, creator, 10_000)
	f.Fund(t, creator, denomA, 10_000)

	testCases := []struct {
		name   string
		denom  string
		hub    math.Int
		asset  math.Int
		expErr error
	}{
		{"empty denom", "", math.NewInt(100), math.NewInt(100), types.ErrInvalidAmount},
		{"hub denom reserved", f.Params.HubDenom, math.NewInt(100), math.NewInt(100), types.ErrInvalidAmount},
		{"exit denom reserved", f.Params.ExitDenom, math.NewInt(100), math.NewInt(100), types.ErrInvalidAmount},
		{"zero hub seed", denomA, math.ZeroInt(), math.NewInt(100), types.ErrZeroAmount},
		{"zero asset seed", denomA, math.NewInt(100), math.ZeroInt(), types.ErrZeroAmount},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := f.Swap.InitializePool(f.Ctx, creator, 9, tc.denom, tc.hub, tc.asset)
			require.ErrorIs(t, err, tc.expErr)
		})
	}
}

func TestGetAllPools(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreatePool(t, 3, "uthree", 1_000, 1_000)
	f.CreatePool(t, 1, "uone", 1_000, 1_000)
	f.CreatePool(t, 2, "utwo", 1_000, 1_000)

	pools := f.Swap.GetAllPools(f.Ctx)
	require.Len(t, pools, 3)
	// Big-endian keys iterate in ascending asset-ID order.
	require.Equal(t, uint64(1), pools[0].AssetID)
	require.Equal(t, uint64(2), pools[1].AssetID)
	require.Equal(t, uint64(3), pools[2].AssetID)
}

func TestGetPoolNotFound(t *testing.T) {
	f := testutil.NewFixture(t)
	_, err := f.Swap.GetPool(f.Ctx, 42)
	require.ErrorIs(t, err, types.ErrPoolNotFound)
	_, err = f.Swap.GetPoolByDenom(f.Ctx, "unknown")
	require.ErrorIs(t, err, types.ErrPoolNotFound)
}
