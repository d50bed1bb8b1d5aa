package types

import "cosmossdk.io/errors"

var (
	// ErrUnauthorized is returned when a caller is not a registered engine.
	ErrUnauthorized = errors.Register(ModuleName, 2, "unauthorized")
	// ErrZeroDelta is returned for a non-positive weight change.
	ErrZeroDelta = errors.Register(ModuleName, 3, "weight delta must be positive")
	// ErrInsufficientWeight is returned when a removal exceeds an account's
	// registered weight.
	ErrInsufficientWeight = errors.Register(ModuleName, 4, "insufficient weight")
	// ErrInvalidAddress is returned for an empty account address.
	ErrInvalidAddress = errors.Register(ModuleName, 5, "invalid address")
)
