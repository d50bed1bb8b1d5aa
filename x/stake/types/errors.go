package types

import "cosmossdk.io/errors"

var (
	// ErrZeroAmount is returned when a stake operation would move nothing.
	ErrZeroAmount = errors.Register(ModuleName, 2, "amount must be positive")
	// ErrInsufficientShares is returned when an account burns more shares
	// than it holds.
	ErrInsufficientShares = errors.Register(ModuleName, 3, "insufficient shares")
	// ErrSameAsset is returned when a migration names the same source and
	// destination asset.
	ErrSameAsset = errors.Register(ModuleName, 4, "source and destination asset are identical")
	// ErrNoSharesInSource is returned when a batch migration names a source
	// asset the caller holds no shares in.
	ErrNoSharesInSource = errors.Register(ModuleName, 5, "no shares in source asset")
	// ErrEmptyBatch is returned when a batch migration lists no sources.
	ErrEmptyBatch = errors.Register(ModuleName, 6, "batch migration requires at least one source asset")
	// ErrDustPosition is returned when a position is too small to mint or
	// migrate a single share.
	ErrDustPosition = errors.Register(ModuleName, 7, "position too small")
	// ErrInvalidAddress is returned for an empty staker address.
	ErrInvalidAddress = errors.Register(ModuleName, 8, "invalid address")
)
