// Package property checks engine invariants over randomized operation
// sequences.
package property

import (
	"fmt"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/stakeclaim/stakeclaim/app"
	"github.com/stakeclaim/stakeclaim/testutil"
	ledgertypes "github.com/stakeclaim/stakeclaim/x/ledger/types"
)

const (
	hubDenom = "uhub"
	creator  = "creator"
)

// engineModel drives randomized operations through the app dispatcher, the
// layer that guarantees atomicity, and checks structural invariants after
// every step.
type engineModel struct {
	a *app.App

	assetIDs []uint64
	denoms   map[uint64]string
	stakers  []string

	// hubSupply is the total hub ever minted; trading and fee routing move
	// hub around but never create it.
	hubSupply math.Int
}

func newEngineModel(t *testing.T) *engineModel {
	m := &engineModel{
		denoms:    map[uint64]string{},
		stakers:   []string{"staker-0", "staker-1", "staker-2"},
		hubSupply: math.ZeroInt(),
	}

	cfg := app.DefaultConfig()
	cfg.Genesis = append(cfg.Genesis, app.GenesisBalance{
		Address: creator, Denom: cfg.HubDenom, Amount: math.NewInt(10_000),
	})
	for _, staker := range m.stakers {
		cfg.Genesis = append(cfg.Genesis, app.GenesisBalance{
			Address: staker, Denom: cfg.HubDenom, Amount: math.NewInt(5_000_000),
		})
	}
	m.hubSupply = math.NewInt(10_000 + 3*5_000_000)

	a, err := app.New(cfg, log.NewNopLogger())
	require.NoError(t, err)
	m.a = a

	for i := uint64(1); i <= 3; i++ {
		denom := fmt.Sprintf("uasset%d", i)
		rec, err := a.LaunchAsset(creator, denom, denom)
		require.NoError(t, err)
		m.assetIDs = append(m.assetIDs, rec.AssetID)
		m.denoms[rec.AssetID] = denom
		for _, staker := range m.stakers {
			require.NoError(t, a.Fund(staker, denom, math.NewInt(5_000_000)))
		}
	}
	return m
}

func (m *engineModel) pickAsset(t *rapid.T, label string) uint64 {
	return rapid.SampledFrom(m.assetIDs).Draw(t, label)
}

func (m *engineModel) pickStaker(t *rapid.T) string {
	return rapid.SampledFrom(m.stakers).Draw(t, "staker")
}

// checkInvariants verifies the cross-engine structural invariants.
func (m *engineModel) checkInvariants(t *rapid.T) {
	a := m.a
	for _, id := range m.assetIDs {
		pool, err := a.GetPoolInfo(id)
		require.NoError(t, err)

		// Reserves never go negative and the staked subset never exceeds
		// the asset reserve it lives inside.
		require.False(t, pool.HubReserve.IsNegative(), "asset %d hub reserve negative", id)
		require.False(t, pool.AssetReserve.IsNegative(), "asset %d reserve negative", id)
		require.False(t, pool.StakedSubset.IsNegative(), "asset %d subset negative", id)
		require.True(t, pool.StakedSubset.LTE(pool.AssetReserve),
			"asset %d subset %s exceeds reserve %s", id, pool.StakedSubset, pool.AssetReserve)

		// Every recorded position is live, and the cached owner holds the
		// largest one.
		positions, err := a.GetPositions(id)
		require.NoError(t, err)
		owner := a.GetOwner(id)
		if owner == nil {
			require.Len(t, positions, 0)
			continue
		}
		ownerShares := a.GetSharesOf(id, owner.Owner)
		require.True(t, ownerShares.IsPositive())
		for _, pos := range positions {
			require.True(t, pos.Shares.IsPositive())
			require.True(t, pos.Shares.LTE(ownerShares),
				"asset %d: %s holds %s over owner %s's %s",
				id, pos.Address, pos.Shares, owner.Owner, ownerShares)
		}
	}

	// Hub moves between accounts but is never created or destroyed.
	holders := append([]string{creator}, m.stakers...)
	for _, acct := range []string{"swap_reserves", "stake_rewards", "exit_rewards", "weight_fees"} {
		holders = append(holders, ledgertypes.ModuleAddress(acct))
	}
	total := math.ZeroInt()
	for _, addr := range holders {
		bal := a.GetBalance(addr, hubDenom)
		require.False(t, bal.IsNegative(), "%s hub balance negative", addr)
		total = total.Add(bal)
	}
	require.Equal(t, m.hubSupply.String(), total.String(), "hub supply not conserved")
}

func TestEngineInvariantsUnderRandomOps(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		m := newEngineModel(t)
		a := m.a

		rt.Repeat(map[string]func(*rapid.T){
			"": m.checkInvariants,
			"swap": func(rt *rapid.T) {
				staker := m.pickStaker(rt)
				from := m.pickAsset(rt, "from")
				to := m.pickAsset(rt, "to")
				amount := rapid.Int64Range(1, 200_000).Draw(rt, "amount")
				tokenIn, tokenOut := m.denoms[from], m.denoms[to]
				if rapid.Bool().Draw(rt, "viaHub") {
					tokenOut = hubDenom
				}
				if tokenIn == tokenOut {
					return
				}
				_, _ = a.Swap(staker, tokenIn, tokenOut, math.NewInt(amount), math.ZeroInt())
			},
			"stake": func(rt *rapid.T) {
				staker := m.pickStaker(rt)
				id := m.pickAsset(rt, "asset")
				amount := rapid.Int64Range(1, 500_000).Draw(rt, "amount")
				_, _ = a.Stake(staker, id, math.NewInt(amount))
			},
			"unstake": func(rt *rapid.T) {
				staker := m.pickStaker(rt)
				id := m.pickAsset(rt, "asset")
				held := a.GetSharesOf(id, staker)
				if !held.IsPositive() {
					return
				}
				shares := rapid.Int64Range(1, held.Int64()).Draw(rt, "shares")
				_, _ = a.Unstake(staker, id, math.NewInt(shares))
			},
			"migrate": func(rt *rapid.T) {
				staker := m.pickStaker(rt)
				from := m.pickAsset(rt, "from")
				to := m.pickAsset(rt, "to")
				held := a.GetSharesOf(from, staker)
				if from == to || !held.IsPositive() {
					return
				}
				shares := rapid.Int64Range(1, held.Int64()).Draw(rt, "shares")
				_, _ = a.SwapStake(staker, from, to, math.NewInt(shares))
			},
			"batchMigrate": func(rt *rapid.T) {
				staker := m.pickStaker(rt)
				to := m.pickAsset(rt, "to")
				var sources []uint64
				for _, id := range m.assetIDs {
					if id != to {
						sources = append(sources, id)
					}
				}
				_, _ = a.BatchSwapStake(staker, sources, to)
			},
			"claim": func(rt *rapid.T) {
				staker := m.pickStaker(rt)
				id := m.pickAsset(rt, "asset")
				_, _, _ = a.ClaimRewards(staker, id)
			},
		})
	})
}

// TestShareSumMatchesTotal checks that the per-staker share ledger always
// sums to the recorded total across random deposits and withdrawals.
func TestShareSumMatchesTotal(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f := testutil.NewFixture(t)
		f.CreatePool(t, 1, "uasseta", 1_000_000, 1_000_000)
		stakers := []string{"staker-0", "staker-1", "staker-2"}
		for _, staker := range stakers {
			f.Fund(t, staker, "uasseta", 5_000_000)
		}

		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			staker := rapid.SampledFrom(stakers).Draw(rt, "staker")
			held := f.Stake.SharesOf(f.Ctx, 1, staker)
			if held.IsPositive() && rapid.Bool().Draw(rt, "withdraw") {
				shares := rapid.Int64Range(1, held.Int64()).Draw(rt, "shares")
				_, err := f.Stake.Unstake(f.Ctx, staker, 1, math.NewInt(shares))
				require.NoError(rt, err)
			} else {
				amount := rapid.Int64Range(1, 300_000).Draw(rt, "amount")
				_, err := f.Stake.Stake(f.Ctx, staker, 1, math.NewInt(amount))
				require.NoError(rt, err)
			}

			sum := math.ZeroInt()
			for _, s := range stakers {
				sum = sum.Add(f.Stake.SharesOf(f.Ctx, 1, s))
			}
			require.Equal(rt, f.Stake.TotalShares(f.Ctx, 1).String(), sum.String())
		}
	})
}

// TestMigrationRoundTripLossBounded checks that migrating a position away
// and back never grows it: two migrations pay four fee legs, so the
// effective balance can only shrink.
func TestMigrationRoundTripLossBounded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f := testutil.NewFixture(t)
		f.CreatePool(t, 1, "uasseta", 1_000_000, 1_000_000)
		f.CreatePool(t, 2, "uassetb", 1_000_000, 1_000_000)
		f.Fund(t, "staker", "uasseta", 2_000_000)

		amount := math.NewInt(rapid.Int64Range(10_000, 1_000_000).Draw(rt, "amount"))
		minted, err := f.Stake.Stake(f.Ctx, "staker", 1, amount)
		require.NoError(rt, err)
		before, err := f.Stake.EffectiveBalance(f.Ctx, 1, "staker")
		require.NoError(rt, err)

		mintedB, err := f.Stake.SwapStake(f.Ctx, "staker", 1, 2, minted)
		if err != nil {
			return
		}
		if _, err := f.Stake.SwapStake(f.Ctx, "staker", 2, 1, mintedB); err != nil {
			return
		}

		after, err := f.Stake.EffectiveBalance(f.Ctx, 1, "staker")
		require.NoError(rt, err)
		require.True(rt, after.LTE(before),
			"round-trip migration grew the position: %s -> %s", before, after)
	})
}

// TestConstantProductNeverDecreases checks that trading fees keep the pool
// product monotone.
func TestConstantProductNeverDecreases(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f := testutil.NewFixture(t)
		f.CreatePool(t, 1, "uasseta", 1_000_000, 1_000_000)
		f.Fund(t, "trader", "uasseta", 10_000_000)
		f.FundHub(t, "trader", 10_000_000)

		pool, err := f.Swap.GetPool(f.Ctx, 1)
		require.NoError(rt, err)
		k := pool.HubReserve.Mul(pool.AssetReserve)

		steps := rapid.IntRange(1, 30).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			amount := math.NewInt(rapid.Int64Range(1, 100_000).Draw(rt, "amount"))
			if rapid.Bool().Draw(rt, "sellAsset") {
				_, _ = f.Swap.SwapExact(f.Ctx, "trader", "uasseta", hubDenom, amount, math.ZeroInt())
			} else {
				_, _ = f.Swap.SwapExact(f.Ctx, "trader", hubDenom, "uasseta", amount, math.ZeroInt())
			}

			pool, err = f.Swap.GetPool(f.Ctx, 1)
			require.NoError(rt, err)
			next := pool.HubReserve.Mul(pool.AssetReserve)
			require.True(rt, next.GTE(k), "product decreased: %s -> %s", k, next)
			k = next
		}
	})
}

// TestRoundTripNeverProfits checks that selling the output of a swap
// straight back never returns more than went in.
func TestRoundTripNeverProfits(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f := testutil.NewFixture(t)
		f.CreatePool(t, 1, "uasseta", 1_000_000, 1_000_000)
		f.Fund(t, "trader", "uasseta", 10_000_000)

		amountIn := math.NewInt(rapid.Int64Range(1, 500_000).Draw(rt, "amountIn"))
		hubOut, err := f.Swap.SwapExact(f.Ctx, "trader", "uasseta", hubDenom, amountIn, math.ZeroInt())
		if err != nil {
			return
		}
		assetBack, err := f.Swap.SwapExact(f.Ctx, "trader", hubDenom, "uasseta", hubOut, math.ZeroInt())
		if err != nil {
			return
		}
		require.True(rt, assetBack.LTE(amountIn),
			"round trip returned %s for %s in", assetBack, amountIn)
	})
}

// TestStakeUnstakeRoundTrip checks that an immediate unstake of freshly
// minted shares returns at most the deposit, within integer truncation.
func TestStakeUnstakeRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f := testutil.NewFixture(t)
		f.CreatePool(t, 1, "uasseta", 1_000_000, 1_000_000)

		// A pre-existing position makes the share price non-trivial.
		f.Fund(t, "anchor", "uasseta", 1_000_000)
		seed := rapid.Int64Range(1, 900_000).Draw(rt, "seed")
		_, err := f.Stake.Stake(f.Ctx, "anchor", 1, math.NewInt(seed))
		require.NoError(rt, err)

		f.Fund(t, "staker", "uasseta", 1_000_000)
		amount := math.NewInt(rapid.Int64Range(1, 1_000_000).Draw(rt, "amount"))
		minted, err := f.Stake.Stake(f.Ctx, "staker", 1, amount)
		if err != nil {
			return
		}
		out, err := f.Stake.Unstake(f.Ctx, "staker", 1, minted)
		require.NoError(rt, err)
		require.True(rt, out.LTE(amount), "unstake returned %s for %s staked", out, amount)
	})
}
