package types

import (
	"cosmossdk.io/errors"
)

// Swap engine sentinel errors
var (
	ErrPoolExists             = errors.Register(ModuleName, 1, "pool already initialized")
	ErrPoolNotFound           = errors.Register(ModuleName, 2, "pool not found")
	ErrZeroAmount             = errors.Register(ModuleName, 3, "amount cannot be zero")
	ErrSameToken              = errors.Register(ModuleName, 4, "cannot swap same token")
	ErrInvalidRoute           = errors.Register(ModuleName, 5, "unsupported swap route")
	ErrSlippage               = errors.Register(ModuleName, 6, "output amount below declared minimum")
	ErrInsufficientReserve    = errors.Register(ModuleName, 7, "amount exceeds pool reserve")
	ErrUnauthorized           = errors.Register(ModuleName, 8, "caller not authorized for privileged entry point")
	ErrInvalidAmount          = errors.Register(ModuleName, 9, "invalid amount")
	ErrExitPoolNotInitialized = errors.Register(ModuleName, 10, "exit pool not initialized")
	ErrExitPoolExists         = errors.Register(ModuleName, 11, "exit pool already initialized")
	ErrInvariantViolation     = errors.Register(ModuleName, 12, "pool invariant violated")
)
