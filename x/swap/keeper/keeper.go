// Package keeper implements the swap engine: per-asset constant-product
// pools sharing one hub token, the singleton exit pool, and the privileged
// reserve primitives the staking engines are built on.
package keeper

import (
	"context"

	"cosmossdk.io/log"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"

	ledgertypes "github.com/stakeclaim/stakeclaim/x/ledger/types"
	"github.com/stakeclaim/stakeclaim/x/shared/state"
	"github.com/stakeclaim/stakeclaim/x/swap/types"
)

// Keeper of the swap engine store
type Keeper struct {
	ledger  types.LedgerKeeper
	params  types.Params
	logger  log.Logger
	metrics *Metrics

	// moduleAddr holds all pool-backed token balances.
	moduleAddr string

	// authorizedEngines are the staking engines allowed to call the
	// privileged reserve entry points. Populated during the wiring phase
	// and fixed afterwards.
	authorizedEngines map[string]bool

	// Reverse edges to the staking engines, bound after construction to
	// break the circular dependency (see app wiring).
	assetFees types.FeeRouter
	exitFees  types.ExitFeeRouter
}

// NewKeeper creates a new swap Keeper instance. The fee routers are bound
// later via SetFeeRouters; until then trading fees stay in pool reserves.
func NewKeeper(ledger types.LedgerKeeper, params types.Params, logger log.Logger) (*Keeper, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Keeper{
		ledger:            ledger,
		params:            params,
		logger:            logger.With("module", "x/swap"),
		metrics:           NewMetrics(),
		moduleAddr:        ledgertypes.ModuleAddress(types.ReserveAccount),
		authorizedEngines: make(map[string]bool),
	}, nil
}

// Params returns the engine's fixed configuration.
func (k *Keeper) Params() types.Params {
	return k.params
}

// ModuleAddress returns the reserve-holding module account address.
func (k *Keeper) ModuleAddress() string {
	return k.moduleAddr
}

// SetFeeRouters binds the staking-engine fee callbacks. Called exactly once
// during the wiring phase, after both staking engines exist.
func (k *Keeper) SetFeeRouters(assetFees types.FeeRouter, exitFees types.ExitFeeRouter) {
	k.assetFees = assetFees
	k.exitFees = exitFees
}

// RegisterEngine authorizes an engine name for the privileged reserve entry
// points. Wiring-phase only.
func (k *Keeper) RegisterEngine(name string) {
	k.authorizedEngines[name] = true
}

// requireAuthorized fails closed for callers not registered during wiring.
func (k *Keeper) requireAuthorized(authority string) error {
	if !k.authorizedEngines[authority] {
		return types.ErrUnauthorized.Wrapf("engine %q is not registered", authority)
	}
	return nil
}

// getStore returns the KVStore namespaced for the swap module
func (k *Keeper) getStore(ctx context.Context) storetypes.KVStore {
	return prefix.NewStore(state.KV(ctx), types.StorePrefix)
}
