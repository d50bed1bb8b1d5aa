// Package app wires the engines together and serializes every state
// mutation behind a single store branch, so each public operation is atomic
// across all engines.
package app

import (
	"context"
	"sync"
	"sync/atomic"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"

	exitkeeper "github.com/stakeclaim/stakeclaim/x/exitpool/keeper"
	exittypes "github.com/stakeclaim/stakeclaim/x/exitpool/types"
	ledgerkeeper "github.com/stakeclaim/stakeclaim/x/ledger/keeper"
	"github.com/stakeclaim/stakeclaim/x/shared/events"
	"github.com/stakeclaim/stakeclaim/x/shared/state"
	stakekeeper "github.com/stakeclaim/stakeclaim/x/stake/keeper"
	staketypes "github.com/stakeclaim/stakeclaim/x/stake/types"
	swapkeeper "github.com/stakeclaim/stakeclaim/x/swap/keeper"
	weightkeeper "github.com/stakeclaim/stakeclaim/x/weight/keeper"
)

// App is the engine hub. Mutations are strictly serialized: run admits one
// operation at a time, branches the store, and commits only on success. A
// dispatch while another operation is in flight is rejected rather than
// queued; resubmission is the caller's responsibility. Reads go through
// view under the read lock.
type App struct {
	cfg    Config
	logger log.Logger

	// mu fences branch commits against concurrent reads; inFlight is the
	// operation admission gate.
	mu       sync.RWMutex
	inFlight atomic.Bool
	root     storetypes.KVStore

	LedgerKeeper ledgerkeeper.Keeper
	SwapKeeper   *swapkeeper.Keeper
	StakeKeeper  *stakekeeper.Keeper
	ExitKeeper   *exitkeeper.Keeper
	WeightKeeper *weightkeeper.Keeper
}

// New builds and wires the engine stack, then applies genesis funding.
// Construction is two-phase: keepers first, reverse edges second, because
// swap and the staking engines reference each other.
func New(cfg Config, logger log.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ledger := ledgerkeeper.NewKeeper(logger)
	swap, err := swapkeeper.NewKeeper(ledger, cfg.SwapParams(), logger)
	if err != nil {
		return nil, err
	}
	stake := stakekeeper.NewKeeper(ledger, swap, cfg.HubDenom, logger)
	exit := exitkeeper.NewKeeper(ledger, swap, cfg.HubDenom, logger)
	weight := weightkeeper.NewKeeper(ledger, cfg.HubDenom, logger)

	// Wiring phase: fee routers and engine authorizations.
	swap.SetFeeRouters(stake, exit)
	swap.RegisterEngine(staketypes.EngineName)
	swap.RegisterEngine(exittypes.EngineName)
	stake.SetWeightKeeper(weight)
	exit.SetWeightKeeper(weight)
	weight.RegisterEngine(staketypes.EngineName)
	weight.RegisterEngine(exittypes.EngineName)

	a := &App{
		cfg:    cfg,
		logger: logger.With("component", "app"),
		root:   state.NewRootStore(),

		LedgerKeeper: ledger,
		SwapKeeper:   swap,
		StakeKeeper:  stake,
		ExitKeeper:   exit,
		WeightKeeper: weight,
	}
	if err := a.applyGenesis(); err != nil {
		return nil, err
	}
	return a, nil
}

// Config returns the engine configuration.
func (a *App) Config() Config {
	return a.cfg
}

// run executes fn on a branch of the root store and commits the branch only
// when fn succeeds. Any error discards every buffered write, including
// rewards harvested along the way.
func (a *App) run(fn func(ctx context.Context) error) error {
	if !a.inFlight.CompareAndSwap(false, true) {
		return ErrReentrantCall
	}
	defer a.inFlight.Store(false)

	branch := state.Branch(a.root)
	ctx := state.WithLogger(
		state.WithEvents(
			state.WithKV(context.Background(), branch),
			events.NewManager()),
		a.logger)

	if err := fn(ctx); err != nil {
		return err
	}

	a.mu.Lock()
	branch.Write()
	a.mu.Unlock()
	return nil
}

// view executes fn read-only against the committed store.
func (a *App) view(fn func(ctx context.Context) error) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	ctx := state.WithLogger(
		state.WithEvents(
			state.WithKV(context.Background(), a.root),
			events.NewManager()),
		a.logger)
	return fn(ctx)
}
