// Package testutil wires the full engine stack against a fresh in-memory
// store for keeper and integration tests.
package testutil

import (
	"context"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	exitkeeper "github.com/stakeclaim/stakeclaim/x/exitpool/keeper"
	exittypes "github.com/stakeclaim/stakeclaim/x/exitpool/types"
	ledgerkeeper "github.com/stakeclaim/stakeclaim/x/ledger/keeper"
	"github.com/stakeclaim/stakeclaim/x/shared/events"
	"github.com/stakeclaim/stakeclaim/x/shared/state"
	stakekeeper "github.com/stakeclaim/stakeclaim/x/stake/keeper"
	staketypes "github.com/stakeclaim/stakeclaim/x/stake/types"
	swapkeeper "github.com/stakeclaim/stakeclaim/x/swap/keeper"
	swaptypes "github.com/stakeclaim/stakeclaim/x/swap/types"
	weightkeeper "github.com/stakeclaim/stakeclaim/x/weight/keeper"
)

// Fixture is a fully wired engine stack over a fresh MemDB.
type Fixture struct {
	Ctx    context.Context
	Events *events.Manager

	Params swaptypes.Params
	Ledger ledgerkeeper.Keeper
	Swap   *swapkeeper.Keeper
	Stake  *stakekeeper.Keeper
	Exit   *exitkeeper.Keeper
	Weight *weightkeeper.Keeper
}

// NewFixture builds the stack the same way the app wires it: keepers first,
// reverse edges and engine registrations second.
func NewFixture(t *testing.T) *Fixture {
	t.Helper()

	logger := log.NewNopLogger()
	params := swaptypes.DefaultParams()

	ledger := ledgerkeeper.NewKeeper(logger)
	swap, err := swapkeeper.NewKeeper(ledger, params, logger)
	require.NoError(t, err)
	stake := stakekeeper.NewKeeper(ledger, swap, params.HubDenom, logger)
	exit := exitkeeper.NewKeeper(ledger, swap, params.HubDenom, logger)
	weight := weightkeeper.NewKeeper(ledger, params.HubDenom, logger)

	swap.SetFeeRouters(stake, exit)
	swap.RegisterEngine(staketypes.EngineName)
	swap.RegisterEngine(exittypes.EngineName)
	stake.SetWeightKeeper(weight)
	exit.SetWeightKeeper(weight)
	weight.RegisterEngine(staketypes.EngineName)
	weight.RegisterEngine(exittypes.EngineName)

	em := events.NewManager()
	ctx := state.WithLogger(state.WithEvents(state.WithKV(context.Background(), state.NewRootStore()), em), logger)

	return &Fixture{
		Ctx:    ctx,
		Events: em,
		Params: params,
		Ledger: ledger,
		Swap:   swap,
		Stake:  stake,
		Exit:   exit,
		Weight: weight,
	}
}

// Fund mints denom to addr.
func (f *Fixture) Fund(t *testing.T, addr, denom string, amount int64) {
	t.Helper()
	require.NoError(t, f.Ledger.MintCoins(f.Ctx, addr, denom, math.NewInt(amount)))
}

// FundHub mints the hub token to addr.
func (f *Fixture) FundHub(t *testing.T, addr string, amount int64) {
	f.Fund(t, addr, f.Params.HubDenom, amount)
}

// CreatePool funds a creator and initializes an asset pool with the given
// seed reserves.
func (f *Fixture) CreatePool(t *testing.T, assetID uint64, denom string, hubSeed, assetSeed int64) {
	t.Helper()
	creator := "pool-creator"
	f.FundHub(t, creator, hubSeed)
	f.Fund(t, creator, denom, assetSeed)
	require.NoError(t, f.Swap.InitializePool(f.Ctx, creator, assetID, denom, math.NewInt(hubSeed), math.NewInt(assetSeed)))
}

// Balance returns addr's balance of denom as int64.
func (f *Fixture) Balance(addr, denom string) int64 {
	return f.Ledger.GetBalance(f.Ctx, addr, denom).Int64()
}
