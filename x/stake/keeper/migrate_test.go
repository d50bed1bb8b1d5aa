package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/stakeclaim/stakeclaim/testutil"
	"github.com/stakeclaim/stakeclaim/x/stake/types"
)

func setupTwoPools(t *testing.T) *testutil.Fixture {
	f := testutil.NewFixture(t)
	f.CreatePool(t, 1, denomA, 1_000_000, 1_000_000)
	f.CreatePool(t, 2, denomB, 1_000_000, 1_000_000)
	return f
}

func TestSwapStakeMigratesPosition(t *testing.T) {
	f := setupTwoPools(t)
	f.Fund(t, alice, denomA, 100_000)
	_, err := f.Stake.Stake(f.Ctx, alice, 1, math.NewInt(100_000))
	require.NoError(t, err)

	aliceTokensBefore := f.Balance(alice, denomA) + f.Balance(alice, denomB)

	minted, err := f.Stake.SwapStake(f.Ctx, alice, 1, 2, math.NewInt(100_000))
	require.NoError(t, err)
	require.True(t, minted.IsPositive())
	// Two trade legs at 30 bps each cost a few percent.
	require.True(t, minted.LT(math.NewInt(100_000)))

	// Zero custody change: alice touched no tokens.
	require.Equal(t, aliceTokensBefore, f.Balance(alice, denomA)+f.Balance(alice, denomB))

	// Source position gone, destination holds the minted shares.
	require.Equal(t, int64(0), f.Stake.SharesOf(f.Ctx, 1, alice).Int64())
	require.Equal(t, minted.Int64(), f.Stake.SharesOf(f.Ctx, 2, alice).Int64())
	require.Equal(t, int64(0), f.Stake.TotalShares(f.Ctx, 1).Int64())

	// Ownership follows the position: the emptied source record is gone,
	// the destination is owned.
	require.Nil(t, f.Stake.OwnerOf(f.Ctx, 1))
	require.Equal(t, alice, f.Stake.OwnerOf(f.Ctx, 2).Owner)

	// Weight re-registered at the new share count.
	require.Equal(t, minted.Int64(), f.Weight.WeightOf(f.Ctx, alice).Int64())
}

func TestSwapStakePartialKeepsSourceOwnership(t *testing.T) {
	f := setupTwoPools(t)
	f.Fund(t, alice, denomA, 100_000)
	f.Fund(t, bob, denomA, 10_000)
	_, err := f.Stake.Stake(f.Ctx, alice, 1, math.NewInt(100_000))
	require.NoError(t, err)
	_, err = f.Stake.Stake(f.Ctx, bob, 1, math.NewInt(10_000))
	require.NoError(t, err)

	_, err = f.Stake.SwapStake(f.Ctx, alice, 1, 2, math.NewInt(40_000))
	require.NoError(t, err)

	// 60,000 still beats bob's 10,000 after the rescan.
	require.Equal(t, alice, f.Stake.OwnerOf(f.Ctx, 1).Owner)
	require.Equal(t, int64(60_000), f.Stake.SharesOf(f.Ctx, 1, alice).Int64())
}

func TestSwapStakeValidation(t *testing.T) {
	f := setupTwoPools(t)
	f.Fund(t, alice, denomA, 1_000)
	_, err := f.Stake.Stake(f.Ctx, alice, 1, math.NewInt(1_000))
	require.NoError(t, err)

	_, err = f.Stake.SwapStake(f.Ctx, alice, 1, 1, math.NewInt(500))
	require.ErrorIs(t, err, types.ErrSameAsset)
	_, err = f.Stake.SwapStake(f.Ctx, alice, 1, 2, math.NewInt(1_001))
	require.ErrorIs(t, err, types.ErrInsufficientShares)
	_, err = f.Stake.SwapStake(f.Ctx, alice, 1, 2, math.ZeroInt())
	require.ErrorIs(t, err, types.ErrZeroAmount)
}

func TestBatchSwapStakeConsolidates(t *testing.T) {
	f := setupTwoPools(t)
	f.CreatePool(t, 3, "uassetc", 1_000_000, 1_000_000)

	f.Fund(t, alice, denomA, 50_000)
	f.Fund(t, alice, denomB, 30_000)
	_, err := f.Stake.Stake(f.Ctx, alice, 1, math.NewInt(50_000))
	require.NoError(t, err)
	_, err = f.Stake.Stake(f.Ctx, alice, 2, math.NewInt(30_000))
	require.NoError(t, err)

	minted, err := f.Stake.BatchSwapStake(f.Ctx, alice, []uint64{1, 2}, 3)
	require.NoError(t, err)
	require.True(t, minted.IsPositive())

	require.Equal(t, int64(0), f.Stake.SharesOf(f.Ctx, 1, alice).Int64())
	require.Equal(t, int64(0), f.Stake.SharesOf(f.Ctx, 2, alice).Int64())
	require.Equal(t, minted.Int64(), f.Stake.SharesOf(f.Ctx, 3, alice).Int64())
	require.Equal(t, alice, f.Stake.OwnerOf(f.Ctx, 3).Owner)
	require.Equal(t, minted.Int64(), f.Weight.WeightOf(f.Ctx, alice).Int64())
}

func TestBatchSwapStakeValidation(t *testing.T) {
	f := setupTwoPools(t)
	f.Fund(t, alice, denomA, 1_000)
	_, err := f.Stake.Stake(f.Ctx, alice, 1, math.NewInt(1_000))
	require.NoError(t, err)

	_, err = f.Stake.BatchSwapStake(f.Ctx, alice, nil, 2)
	require.ErrorIs(t, err, types.ErrEmptyBatch)
	_, err = f.Stake.BatchSwapStake(f.Ctx, alice, []uint64{1, 2}, 2)
	require.ErrorIs(t, err, types.ErrSameAsset)
	// Bob holds nothing in asset 1; the whole batch aborts.
	_, err = f.Stake.BatchSwapStake(f.Ctx, bob, []uint64{1}, 2)
	require.ErrorIs(t, err, types.ErrNoSharesInSource)
}
