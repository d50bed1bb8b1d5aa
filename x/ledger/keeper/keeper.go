// Package keeper implements the token ledger backing every engine: plain
// account balances keyed by address and denom, with module accounts holding
// pool reserves and reward pots.
package keeper

import (
	"context"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"

	"github.com/stakeclaim/stakeclaim/x/ledger/types"
	"github.com/stakeclaim/stakeclaim/x/shared/events"
	"github.com/stakeclaim/stakeclaim/x/shared/state"
)

// Keeper of the ledger store
type Keeper struct {
	logger log.Logger
}

// NewKeeper creates a new ledger Keeper instance
func NewKeeper(logger log.Logger) Keeper {
	return Keeper{logger: logger.With("module", "x/ledger")}
}

// getStore returns the KVStore namespaced for the ledger module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	return prefix.NewStore(state.KV(ctx), types.StorePrefix)
}

// GetBalance returns the balance of denom held by addr. Missing records
// read as zero.
func (k Keeper) GetBalance(ctx context.Context, addr, denom string) math.Int {
	store := k.getStore(ctx)
	bz := store.Get(types.BalanceKey(addr, denom))
	if bz == nil {
		return math.ZeroInt()
	}
	amount := math.ZeroInt()
	if err := amount.Unmarshal(bz); err != nil {
		panic(err)
	}
	return amount
}

// setBalance writes a balance record, deleting it when zero.
func (k Keeper) setBalance(ctx context.Context, addr, denom string, amount math.Int) {
	store := k.getStore(ctx)
	key := types.BalanceKey(addr, denom)
	if amount.IsZero() {
		store.Delete(key)
		return
	}
	bz, err := amount.Marshal()
	if err != nil {
		panic(err)
	}
	store.Set(key, bz)
}

// SendCoins moves amount of denom from one account to another.
// Returns ErrInsufficientFunds when the sender balance is too small.
func (k Keeper) SendCoins(ctx context.Context, from, to, denom string, amount math.Int) error {
	if err := validateTransfer(from, to, denom, amount); err != nil {
		return err
	}
	if amount.IsZero() {
		return nil
	}

	fromBalance := k.GetBalance(ctx, from, denom)
	if fromBalance.LT(amount) {
		return types.ErrInsufficientFunds.Wrapf(
			"account %s holds %s%s, needs %s", from, fromBalance, denom, amount)
	}

	k.setBalance(ctx, from, denom, fromBalance.Sub(amount))
	k.setBalance(ctx, to, denom, k.GetBalance(ctx, to, denom).Add(amount))

	state.Events(ctx).EmitEvent(events.NewEvent(
		types.EventTypeTransfer,
		events.NewAttribute(types.AttributeKeyFrom, from),
		events.NewAttribute(types.AttributeKeyTo, to),
		events.NewAttribute(types.AttributeKeyDenom, denom),
		events.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
	return nil
}

// MintCoins creates amount of denom and credits it to addr. Used only by
// genesis funding and test fixtures; the engines themselves never mint.
func (k Keeper) MintCoins(ctx context.Context, addr, denom string, amount math.Int) error {
	if addr == "" {
		return types.ErrInvalidAddress.Wrap("mint recipient cannot be empty")
	}
	if denom == "" {
		return types.ErrInvalidDenom.Wrap("denom cannot be empty")
	}
	if amount.IsNegative() {
		return types.ErrInvalidAmount.Wrapf("cannot mint negative amount %s", amount)
	}
	if amount.IsZero() {
		return nil
	}

	k.setBalance(ctx, addr, denom, k.GetBalance(ctx, addr, denom).Add(amount))

	state.Events(ctx).EmitEvent(events.NewEvent(
		types.EventTypeMint,
		events.NewAttribute(types.AttributeKeyTo, addr),
		events.NewAttribute(types.AttributeKeyDenom, denom),
		events.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
	return nil
}

// BurnCoins destroys amount of denom held by addr.
func (k Keeper) BurnCoins(ctx context.Context, addr, denom string, amount math.Int) error {
	if err := validateTransfer(addr, addr, denom, amount); err != nil {
		return err
	}
	if amount.IsZero() {
		return nil
	}

	balance := k.GetBalance(ctx, addr, denom)
	if balance.LT(amount) {
		return types.ErrInsufficientFunds.Wrapf(
			"account %s holds %s%s, cannot burn %s", addr, balance, denom, amount)
	}
	k.setBalance(ctx, addr, denom, balance.Sub(amount))

	state.Events(ctx).EmitEvent(events.NewEvent(
		types.EventTypeBurn,
		events.NewAttribute(types.AttributeKeyFrom, addr),
		events.NewAttribute(types.AttributeKeyDenom, denom),
		events.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
	return nil
}

func validateTransfer(from, to, denom string, amount math.Int) error {
	if from == "" || to == "" {
		return types.ErrInvalidAddress.Wrap("address cannot be empty")
	}
	if denom == "" {
		return types.ErrInvalidDenom.Wrap("denom cannot be empty")
	}
	if amount.IsNegative() {
		return types.ErrInvalidAmount.Wrapf("amount cannot be negative: %s", amount)
	}
	return nil
}
