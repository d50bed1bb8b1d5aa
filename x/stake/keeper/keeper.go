package keeper

import (
	"context"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"

	ledgertypes "github.com/stakeclaim/stakeclaim/x/ledger/types"
	"github.com/stakeclaim/stakeclaim/x/shared/state"
	"github.com/stakeclaim/stakeclaim/x/stake/types"
)

// Keeper owns the share ledger, the per-asset ownership cache and the
// per-asset fee accumulators. Pool token custody stays with the swap keeper;
// this keeper only moves tokens through it.
type Keeper struct {
	ledger   types.LedgerKeeper
	swap     types.SwapKeeper
	weight   types.WeightKeeper
	hubDenom string
	logger   log.Logger
	metrics  *Metrics

	collectorAddr string
}

// NewKeeper builds a staking keeper. The weight keeper is wired after
// construction because the two reference each other.
func NewKeeper(ledger types.LedgerKeeper, swap types.SwapKeeper, hubDenom string, logger log.Logger) *Keeper {
	return &Keeper{
		ledger:        ledger,
		swap:          swap,
		hubDenom:      hubDenom,
		logger:        logger.With("module", "x/"+types.ModuleName),
		metrics:       DefaultMetrics(),
		collectorAddr: ledgertypes.ModuleAddress(types.FeeCollectorAccount),
	}
}

// SetWeightKeeper binds the global weight registry. Must be called before
// any stake operation runs.
func (k *Keeper) SetWeightKeeper(weight types.WeightKeeper) {
	k.weight = weight
}

// Collector returns the address fees are parked at until stakers claim.
// Part of the swap module's FeeRouter contract.
func (k *Keeper) Collector() string {
	return k.collectorAddr
}

func (k *Keeper) getStore(ctx context.Context) storetypes.KVStore {
	return prefix.NewStore(state.KV(ctx), types.StorePrefix)
}

// SharesOf returns an account's shares in an asset, zero if none.
func (k *Keeper) SharesOf(ctx context.Context, assetID uint64, addr string) math.Int {
	return k.getInt(ctx, types.SharesKey(assetID, addr))
}

// TotalShares returns the outstanding shares of an asset, zero if none.
func (k *Keeper) TotalShares(ctx context.Context, assetID uint64) math.Int {
	return k.getInt(ctx, types.TotalSharesKey(assetID))
}

func (k *Keeper) setShares(ctx context.Context, assetID uint64, addr string, shares math.Int) {
	k.setInt(ctx, types.SharesKey(assetID, addr), shares)
}

func (k *Keeper) setTotalShares(ctx context.Context, assetID uint64, total math.Int) {
	k.setInt(ctx, types.TotalSharesKey(assetID), total)
}

func (k *Keeper) accPerShare(ctx context.Context, assetID uint64) math.Int {
	return k.getInt(ctx, types.AccPerShareKey(assetID))
}

func (k *Keeper) setAccPerShare(ctx context.Context, assetID uint64, acc math.Int) {
	k.setInt(ctx, types.AccPerShareKey(assetID), acc)
}

func (k *Keeper) rewardDebt(ctx context.Context, assetID uint64, addr string) math.Int {
	return k.getInt(ctx, types.RewardDebtKey(assetID, addr))
}

func (k *Keeper) setRewardDebt(ctx context.Context, assetID uint64, addr string, debt math.Int) {
	k.setInt(ctx, types.RewardDebtKey(assetID, addr), debt)
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

// pendingOf computes the unharvested per-asset reward of a position.
// Clamped at zero: the debt snapshot can only exceed the accrual through
// truncation, never by more than a unit.
func pendingOf(shares, acc, debt math.Int) math.Int {
	pending := shares.Mul(acc).Quo(types.RewardScale).Sub(debt)
	if pending.IsNegative() {
		return math.ZeroInt()
	}
	return pending
}

// harvestAsset pays an account's pending per-asset reward and resets its
// debt snapshot. Must run before any change to the account's shares.
func (k *Keeper) harvestAsset(ctx context.Context, assetID uint64, addr string) (math.Int, error) {
	shares := k.SharesOf(ctx, assetID, addr)
	acc := k.accPerShare(ctx, assetID)
	pending := pendingOf(shares, acc, k.rewardDebt(ctx, assetID, addr))
	if pending.IsPositive() {
		if err := k.ledger.SendCoins(ctx, k.collectorAddr, addr, k.hubDenom, pending); err != nil {
			return math.ZeroInt(), err
		}
	}
	k.setRewardDebt(ctx, assetID, addr, shares.Mul(acc).Quo(types.RewardScale))
	return pending, nil
}

// resetDebt re-snapshots an account's debt after its shares changed.
func (k *Keeper) resetDebt(ctx context.Context, assetID uint64, addr string) {
	shares := k.SharesOf(ctx, assetID, addr)
	acc := k.accPerShare(ctx, assetID)
	k.setRewardDebt(ctx, assetID, addr, shares.Mul(acc).Quo(types.RewardScale))
}
