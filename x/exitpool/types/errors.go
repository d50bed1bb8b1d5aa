package types

import "cosmossdk.io/errors"

var (
	// ErrZeroAmount is returned when an exit-liquidity operation would move
	// nothing.
	ErrZeroAmount = errors.Register(ModuleName, 2, "amount must be positive")
	// ErrInsufficientShares is returned when an account burns more exit
	// shares than it holds.
	ErrInsufficientShares = errors.Register(ModuleName, 3, "insufficient exit shares")
	// ErrInvalidAddress is returned for an empty provider address.
	ErrInvalidAddress = errors.Register(ModuleName, 4, "invalid address")
	// ErrDustPosition is returned when a deposit is too small to mint a
	// single share.
	ErrDustPosition = errors.Register(ModuleName, 5, "deposit too small")
)
