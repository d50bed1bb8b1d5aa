package types

import (
	"cosmossdk.io/errors"
)

// Ledger module sentinel errors
var (
	ErrInvalidAddress    = errors.Register(ModuleName, 1, "invalid address")
	ErrInvalidDenom      = errors.Register(ModuleName, 2, "invalid denomination")
	ErrInvalidAmount     = errors.Register(ModuleName, 3, "invalid amount")
	ErrInsufficientFunds = errors.Register(ModuleName, 4, "insufficient funds")
)
