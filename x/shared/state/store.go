package state

import (
	"encoding/json"

	"cosmossdk.io/store/cachekv"
	"cosmossdk.io/store/dbadapter"
	storetypes "cosmossdk.io/store/types"
	dbm "github.com/cosmos/cosmos-db"
)

// NewRootStore returns a fresh in-memory root KV store. All engine state
// lives under module prefixes of this single store, so one branch covers
// every cross-engine operation.
func NewRootStore() storetypes.KVStore {
	return dbadapter.Store{DB: dbm.NewMemDB()}
}

// Branch returns a cache layer over parent. Writes are buffered until
// Write() is called on the returned store; discarding the branch discards
// all buffered writes.
func Branch(parent storetypes.KVStore) storetypes.CacheKVStore {
	return cachekv.NewStore(parent)
}

// MustMarshal JSON-encodes a record for storage. Records are plain structs
// of strings, integers and math.Int; encoding cannot fail.
func MustMarshal(v interface{}) []byte {
	bz, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return bz
}

// MustUnmarshal decodes a stored record written by MustMarshal.
func MustUnmarshal(bz []byte, v interface{}) {
	if err := json.Unmarshal(bz, v); err != nil {
		panic(err)
	}
}
