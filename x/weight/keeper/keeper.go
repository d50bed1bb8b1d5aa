package keeper

import (
	"context"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"

	ledgertypes "github.com/stakeclaim/stakeclaim/x/ledger/types"
	"github.com/stakeclaim/stakeclaim/x/shared/state"
	"github.com/stakeclaim/stakeclaim/x/weight/types"
)

// Keeper tracks reward weight across every staking engine and runs one
// global fee accumulator over the total. Weight is abstract: each engine
// reports its own unit, scaled before it gets here.
type Keeper struct {
	ledger   types.LedgerKeeper
	hubDenom string
	logger   log.Logger
	metrics  *Metrics

	feeAddr string

	// Engines allowed to mutate weight. Populated during the wiring phase
	// and fixed afterwards.
	authorizedEngines map[string]bool
}

// NewKeeper builds a weight keeper with no authorized engines. Engines are
// registered during app wiring.
func NewKeeper(ledger types.LedgerKeeper, hubDenom string, logger log.Logger) *Keeper {
	return &Keeper{
		ledger:            ledger,
		hubDenom:          hubDenom,
		logger:            logger.With("module", "x/"+types.ModuleName),
		metrics:           DefaultMetrics(),
		feeAddr:           ledgertypes.ModuleAddress(types.FeeAccount),
		authorizedEngines: make(map[string]bool),
	}
}

// RegisterEngine authorizes an engine name for weight mutation. Wiring-phase
// only.
func (k *Keeper) RegisterEngine(name string) {
	k.authorizedEngines[name] = true
}

// FeeAddress returns the address distributed fees are parked at.
func (k *Keeper) FeeAddress() string {
	return k.feeAddr
}

func (k *Keeper) requireAuthorized(authority string) error {
	if !k.authorizedEngines[authority] {
		return types.ErrUnauthorized.Wrapf("engine %q is not registered", authority)
	}
	return nil
}

func (k *Keeper) getStore(ctx context.Context) storetypes.KVStore {
	return prefix.NewStore(state.KV(ctx), types.StorePrefix)
}

// WeightOf returns an account's registered weight, zero if none.
func (k *Keeper) WeightOf(ctx context.Context, addr string) math.Int {
	return k.getInt(ctx, types.WeightKey(addr))
}

// TotalWeight returns the registry-wide weight sum.
func (k *Keeper) TotalWeight(ctx context.Context) math.Int {
	return k.getInt(ctx, types.TotalWeightKey)
}

func (k *Keeper) setWeight(ctx context.Context, addr string, w math.Int) {
	k.setInt(ctx, types.WeightKey(addr), w)
}

func (k *Keeper) setTotalWeight(ctx context.Context, total math.Int) {
	k.setInt(ctx, types.TotalWeightKey, total)
}

func (k *Keeper) accPerWeight(ctx context.Context) math.Int {
	return k.getInt(ctx, types.AccPerWeightKey)
}

func (k *Keeper) setAccPerWeight(ctx context.Context, acc math.Int) {
	k.setInt(ctx, types.AccPerWeightKey, acc)
}

func (k *Keeper) rewardDebt(ctx context.Context, addr string) math.Int {
	return k.getInt(ctx, types.RewardDebtKey(addr))
}

func (k *Keeper) setRewardDebt(ctx context.Context, addr string, debt math.Int) {
	k.setInt(ctx, types.RewardDebtKey(addr), debt)
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
