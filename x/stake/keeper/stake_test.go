package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/stakeclaim/stakeclaim/testutil"
	"github.com/stakeclaim/stakeclaim/x/stake/types"
	swaptypes "github.com/stakeclaim/stakeclaim/x/swap/types"
)

const (
	denomA = "uasseta"
	denomB = "uassetb"
	alice  = "alice"
	bob    = "bob"
)

func setupPool(t *testing.T) *testutil.Fixture {
	f := testutil.NewFixture(t)
	f.CreatePool(t, 1, denomA, 1_000_000, 1_000_000)
	return f
}

func TestStakeMintsSharesAndTakesOwnership(t *testing.T) {
	f := setupPool(t)
	f.Fund(t, alice, denomA, 10_000)

	minted, err := f.Stake.Stake(f.Ctx, alice, 1, math.NewInt(10_000))
	require.NoError(t, err)
	// First staker mints 1:1 against an empty subset.
	require.Equal(t, int64(10_000), minted.Int64())
	require.Equal(t, int64(10_000), f.Stake.SharesOf(f.Ctx, 1, alice).Int64())
	require.Equal(t, int64(10_000), f.Stake.TotalShares(f.Ctx, 1).Int64())
	require.Equal(t, int64(0), f.Balance(alice, denomA))

	subset, err := f.Swap.GetStakedSubset(f.Ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(10_000), subset.Int64())

	rec := f.Stake.OwnerOf(f.Ctx, 1)
	require.NotNil(t, rec)
	require.Equal(t, alice, rec.Owner)
	require.Equal(t, int64(10_000), rec.OwnerShares.Int64())

	// Global weight tracks shares 1:1 for plain staking.
	require.Equal(t, int64(10_000), f.Weight.WeightOf(f.Ctx, alice).Int64())
}

func TestStakeProportionalMint(t *testing.T) {
	f := setupPool(t)
	f.Fund(t, alice, denomA, 10_000)
	f.Fund(t, bob, denomA, 5_000)

	_, err := f.Stake.Stake(f.Ctx, alice, 1, math.NewInt(10_000))
	require.NoError(t, err)

	// Subset unchanged by the deposit itself, so bob mints pro rata.
	minted, err := f.Stake.Stake(f.Ctx, bob, 1, math.NewInt(5_000))
	require.NoError(t, err)
	require.Equal(t, int64(5_000), minted.Int64())

	// Alice keeps ownership: 5,000 does not beat 10,000.
	rec := f.Stake.OwnerOf(f.Ctx, 1)
	require.Equal(t, alice, rec.Owner)
}

func TestOwnershipStrictlyGreaterTakesOver(t *testing.T) {
	f := setupPool(t)
	f.Fund(t, alice, denomA, 10_000)
	f.Fund(t, bob, denomA, 20_001)

	_, err := f.Stake.Stake(f.Ctx, alice, 1, math.NewInt(10_000))
	require.NoError(t, err)

	// Matching the incumbent exactly is not enough.
	_, err = f.Stake.Stake(f.Ctx, bob, 1, math.NewInt(10_000))
	require.NoError(t, err)
	require.Equal(t, alice, f.Stake.OwnerOf(f.Ctx, 1).Owner)

	// One more share flips it.
	_, err = f.Stake.Stake(f.Ctx, bob, 1, math.NewInt(1))
	require.NoError(t, err)
	require.Equal(t, bob, f.Stake.OwnerOf(f.Ctx, 1).Owner)
}

func TestUnstakePaysProportionalAndRescansOwner(t *testing.T) {
	f := setupPool(t)
	f.Fund(t, alice, denomA, 10_000)
	f.Fund(t, bob, denomA, 4_000)

	_, err := f.Stake.Stake(f.Ctx, alice, 1, math.NewInt(10_000))
	require.NoError(t, err)
	_, err = f.Stake.Stake(f.Ctx, bob, 1, math.NewInt(4_000))
	require.NoError(t, err)

	// Alice drops below bob; the rescan hands ownership over.
	out, err := f.Stake.Unstake(f.Ctx, alice, 1, math.NewInt(8_000))
	require.NoError(t, err)
	require.Equal(t, int64(8_000), out.Int64())
	require.Equal(t, int64(8_000), f.Balance(alice, denomA))
	require.Equal(t, bob, f.Stake.OwnerOf(f.Ctx, 1).Owner)

	// Non-owner exits never trigger a rescan; bob stays owner after alice
	// leaves entirely and the record empties with the last staker.
	_, err = f.Stake.Unstake(f.Ctx, alice, 1, math.NewInt(2_000))
	require.NoError(t, err)
	require.Equal(t, bob, f.Stake.OwnerOf(f.Ctx, 1).Owner)

	_, err = f.Stake.Unstake(f.Ctx, bob, 1, math.NewInt(4_000))
	require.NoError(t, err)
	require.Nil(t, f.Stake.OwnerOf(f.Ctx, 1))
	require.Equal(t, int64(0), f.Stake.TotalShares(f.Ctx, 1).Int64())
	require.Equal(t, int64(0), f.Weight.WeightOf(f.Ctx, bob).Int64())
}

func TestUnstakeValidation(t *testing.T) {
	f := setupPool(t)
	f.Fund(t, alice, denomA, 1_000)
	_, err := f.Stake.Stake(f.Ctx, alice, 1, math.NewInt(1_000))
	require.NoError(t, err)

	_, err = f.Stake.Unstake(f.Ctx, alice, 1, math.NewInt(1_001))
	require.ErrorIs(t, err, types.ErrInsufficientShares)
	_, err = f.Stake.Unstake(f.Ctx, alice, 1, math.ZeroInt())
	require.ErrorIs(t, err, types.ErrZeroAmount)
	_, err = f.Stake.Unstake(f.Ctx, "", 1, math.NewInt(1))
	require.ErrorIs(t, err, types.ErrInvalidAddress)
	_, err = f.Stake.Stake(f.Ctx, alice, 99, math.NewInt(1))
	require.ErrorIs(t, err, swaptypes.ErrPoolNotFound)
}

func TestEffectiveBalanceAppreciatesWithTrades(t *testing.T) {
	f := setupPool(t)
	f.Fund(t, alice, denomA, 100_000)
	_, err := f.Stake.Stake(f.Ctx, alice, 1, math.NewInt(100_000))
	require.NoError(t, err)

	before, err := f.Stake.EffectiveBalance(f.Ctx, 1, alice)
	require.NoError(t, err)
	require.Equal(t, int64(100_000), before.Int64())

	// A hub-to-asset buy shrinks the reserve and the subset with it; an
	// asset sell grows both. Run a sell: staked value appreciates.
	f.Fund(t, "trader", denomA, 50_000)
	_, err = f.Swap.SwapExact(f.Ctx, "trader", denomA, f.Params.HubDenom, math.NewInt(50_000), math.ZeroInt())
	require.NoError(t, err)

	after, err := f.Stake.EffectiveBalance(f.Ctx, 1, alice)
	require.NoError(t, err)
	require.True(t, after.GT(before), "effective balance %s should exceed %s", after, before)

	// Share counts never move on trades.
	require.Equal(t, int64(100_000), f.Stake.SharesOf(f.Ctx, 1, alice).Int64())
}
