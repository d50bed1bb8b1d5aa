package types

import (
	"encoding/binary"
)

// ModuleName is the swap module name and error codespace.
const ModuleName = "swap"

// ReserveAccount is the module account holding all pool-backed tokens.
const ReserveAccount = "swap_reserves"

// StorePrefix namespaces all swap keys in the shared KV store.
var StorePrefix = []byte(ModuleName + "/")

var (
	// PoolKeyPrefix prefixes pool records keyed by asset ID.
	PoolKeyPrefix = []byte{0x01}
	// PoolByDenomKeyPrefix indexes asset IDs by token denom.
	PoolByDenomKeyPrefix = []byte{0x02}
	// PoolCountKey stores the number of initialized pools.
	PoolCountKey = []byte{0x03}
	// ExitPoolKey stores the singleton exit pool record.
	ExitPoolKey = []byte{0x04}
)

// PoolKey returns the store key for a pool record.
func PoolKey(assetID uint64) []byte {
	key := make([]byte, len(PoolKeyPrefix)+8)
	copy(key, PoolKeyPrefix)
	binary.BigEndian.PutUint64(key[len(PoolKeyPrefix):], assetID)
	return key
}

// PoolByDenomKey returns the index key mapping a denom to its asset ID.
func PoolByDenomKey(denom string) []byte {
	key := make([]byte, 0, len(PoolByDenomKeyPrefix)+len(denom))
	key = append(key, PoolByDenomKeyPrefix...)
	key = append(key, denom...)
	return key
}
