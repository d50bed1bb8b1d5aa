package app

import "cosmossdk.io/errors"

const errCodespace = "app"

var (
	// ErrReentrantCall is returned when an operation is dispatched while
	// another is in flight, including from inside the running operation
	// itself. The caller resubmits; the engine never queues.
	ErrReentrantCall = errors.Register(errCodespace, 2, "engine operation already in flight")
	// ErrMaxAssets is returned when a launch would exceed the asset cap.
	ErrMaxAssets = errors.Register(errCodespace, 3, "maximum asset count reached")
	// ErrAssetExists is returned when a launch reuses a registered symbol.
	ErrAssetExists = errors.Register(errCodespace, 4, "asset already registered")
	// ErrAssetNotFound is returned for lookups of unregistered assets.
	ErrAssetNotFound = errors.Register(errCodespace, 5, "asset not registered")
	// ErrInvalidArgument is returned for malformed launch input.
	ErrInvalidArgument = errors.Register(errCodespace, 6, "invalid argument")
)
