// Package state carries the KV store, event manager and logger through
// context.Context, and provides the branch/commit machinery that makes every
// engine operation atomic.
package state

import (
	"context"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"

	"github.com/stakeclaim/stakeclaim/x/shared/events"
)

type contextKey int

const (
	kvContextKey contextKey = iota
	eventsContextKey
	loggerContextKey
)

// WithKV returns a context carrying the given KV store.
func WithKV(ctx context.Context, kv storetypes.KVStore) context.Context {
	return context.WithValue(ctx, kvContextKey, kv)
}

// KV returns the KV store carried by the context. Operations are always
// dispatched with a store attached; a missing store is a programmer error.
func KV(ctx context.Context) storetypes.KVStore {
	kv, ok := ctx.Value(kvContextKey).(storetypes.KVStore)
	if !ok {
		panic("state: no KV store in context")
	}
	return kv
}

// WithEvents returns a context carrying the given event manager.
func WithEvents(ctx context.Context, em *events.Manager) context.Context {
	return context.WithValue(ctx, eventsContextKey, em)
}

// Events returns the event manager carried by the context. A fresh manager
// is returned when none is attached, so emission is always safe.
func Events(ctx context.Context) *events.Manager {
	em, ok := ctx.Value(eventsContextKey).(*events.Manager)
	if !ok {
		return events.NewManager()
	}
	return em
}

// WithLogger returns a context carrying the given logger.
func WithLogger(ctx context.Context, logger log.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

// Logger returns the logger carried by the context, or a no-op logger.
func Logger(ctx context.Context) log.Logger {
	logger, ok := ctx.Value(loggerContextKey).(log.Logger)
	if !ok {
		return log.NewNopLogger()
	}
	return logger
}
