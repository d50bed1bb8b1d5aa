package keeper

import (
	"context"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"

	"github.com/stakeclaim/stakeclaim/x/exitpool/types"
	ledgertypes "github.com/stakeclaim/stakeclaim/x/ledger/types"
	"github.com/stakeclaim/stakeclaim/x/shared/state"
)

// Keeper owns the exit-liquidity share ledger and its fee accumulator.
// Reserve custody stays with the swap keeper's singleton exit pool; this
// keeper only moves tokens through it.
type Keeper struct {
	ledger        types.LedgerKeeper
	swap          types.SwapKeeper
	weight        types.WeightKeeper
	hubDenom      string
	multiplierBps int64
	logger        log.Logger
	metrics       *Metrics

	collectorAddr string
}

// NewKeeper builds an exit-liquidity keeper. The weight keeper is wired
// after construction because the engines reference each other.
func NewKeeper(ledger types.LedgerKeeper, swap types.SwapKeeper, hubDenom string, logger log.Logger) *Keeper {
	return &Keeper{
		ledger:        ledger,
		swap:          swap,
		hubDenom:      hubDenom,
		multiplierBps: types.DefaultWeightMultiplierBps,
		logger:        logger.With("module", "x/"+types.ModuleName),
		metrics:       DefaultMetrics(),
		collectorAddr: ledgertypes.ModuleAddress(types.FeeCollectorAccount),
	}
}

// SetWeightKeeper binds the global weight registry. Must be called before
// any exit-liquidity operation runs.
func (k *Keeper) SetWeightKeeper(weight types.WeightKeeper) {
	k.weight = weight
}

// Collector returns the address exit-leg fees are parked at until providers
// claim. Part of the swap module's ExitFeeRouter contract.
func (k *Keeper) Collector() string {
	return k.collectorAddr
}

func (k *Keeper) getStore(ctx context.Context) storetypes.KVStore {
	return prefix.NewStore(state.KV(ctx), types.StorePrefix)
}

// SharesOf returns an account's exit shares, zero if none.
func (k *Keeper) SharesOf(ctx context.Context, addr string) math.Int {
	return k.getInt(ctx, types.SharesKey(addr))
}

// TotalShares returns the outstanding exit shares.
func (k *Keeper) TotalShares(ctx context.Context) math.Int {
	return k.getInt(ctx, types.TotalSharesKey)
}

func (k *Keeper) setShares(ctx context.Context, addr string, shares math.Int) {
	k.setInt(ctx, types.SharesKey(addr), shares)
}

func (k *Keeper) setTotalShares(ctx context.Context, total math.Int) {
	k.setInt(ctx, types.TotalSharesKey, total)
}

func (k *Keeper) accPerShare(ctx context.Context) math.Int {
	return k.getInt(ctx, types.AccPerShareKey)
}

func (k *Keeper) setAccPerShare(ctx context.Context, acc math.Int) {
	k.setInt(ctx, types.AccPerShareKey, acc)
}

func (k *Keeper) rewardDebt(ctx context.Context, addr string) math.Int {
	return k.getInt(ctx, types.RewardDebtKey(addr))
}

func (k *Keeper) setRewardDebt(ctx context.Context, addr string, debt math.Int) {
	k.setInt(ctx, types.RewardDebtKey(addr), debt)
}

func (k *Keeper) registeredWeight(ctx context.Context, addr string) math.Int {
	return k.getInt(ctx, types.RegisteredWeightKey(addr))
}

func (k *Keeper) setRegisteredWeight(ctx context.Context, addr string, w math.Int) {
	k.setInt(ctx, types.RegisteredWeightKey(addr), w)
}

// syncWeight reconciles the account's registered global weight with its
// current share count scaled by the multiplier. Computing the target from
// the absolute position keeps per-delta truncation from accumulating.
func (k *Keeper) syncWeight(ctx context.Context, addr string) error {
	target := k.SharesOf(ctx, addr).MulRaw(k.multiplierBps).QuoRaw(10_000)
	current := k.registeredWeight(ctx, addr)
	switch {
	case target.GT(current):
		if err := k.weight.AddWeight(ctx, types.EngineName, addr, target.Sub(current)); err != nil {
			return err
		}
	case target.LT(current):
		if err := k.weight.RemoveWeight(ctx, types.EngineName, addr, current.Sub(target)); err != nil {
			return err
		}
	}
	k.setRegisteredWeight(ctx, addr, target)
	return nil
}

func (k *Keeper) getInt(ctx context.Context, key []byte) math.Int {
	bz := k.getStore(ctx).Get(key)
	if bz == nil {
		return math.ZeroInt()
	}
	var v math.Int
	if err := v.Unmarshal(bz); err != nil {
		panic(err)
	}
	return v
}

func (k *Keeper) setInt(ctx context.Context, key []byte, v math.Int) {
	store := k.getStore(ctx)
	if v.IsZero() {
		store.Delete(key)
		return
	}
	bz, err := v.Marshal()
	if err != nil {
		panic(err)
	}
	store.Set(key, bz)
}

func pendingOf(shares, acc, debt math.Int) math.Int {
	pending := shares.Mul(acc).Quo(types.RewardScale).Sub(debt)
	if pending.IsNegative() {
		return math.ZeroInt()
	}
	return pending
}

// harvest pays an account's pending exit-fee reward and resets its debt
// snapshot. Must run before any change to the account's shares.
func (k *Keeper) harvest(ctx context.Context, addr string) (math.Int, error) {
	shares := k.SharesOf(ctx, addr)
	acc := k.accPerShare(ctx)
	pending := pendingOf(shares, acc, k.rewardDebt(ctx, addr))
	if pending.IsPositive() {
		if err := k.ledger.SendCoins(ctx, k.collectorAddr, addr, k.hubDenom, pending); err != nil {
			return math.ZeroInt(), err
		}
	}
	k.setRewardDebt(ctx, addr, shares.Mul(acc).Quo(types.RewardScale))
	return pending, nil
}

func (k *Keeper) resetDebt(ctx context.Context, addr string) {
	shares := k.SharesOf(ctx, addr)
	acc := k.accPerShare(ctx)
	k.setRewardDebt(ctx, addr, shares.Mul(acc).Quo(types.RewardScale))
}
