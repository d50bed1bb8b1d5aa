package types

import (
	"encoding/binary"

	"cosmossdk.io/math"
)

const (
	// ModuleName is the staking module name and error codespace.
	ModuleName = "stake"

	// EngineName identifies this engine on privileged cross-engine calls.
	EngineName = "stake"

	// FeeCollectorAccount holds harvested trading fees until stakers claim.
	FeeCollectorAccount = "stake_rewards"
)

// RewardScale is the fixed-point scale of the per-share accumulator.
var RewardScale = math.NewInt(1_000_000_000_000)

// StorePrefix namespaces all staking keys in the shared KV store.
var StorePrefix = []byte(ModuleName + "/")

var (
	// SharesKeyPrefix prefixes share records: shares/<assetID>/<addr>.
	SharesKeyPrefix = []byte{0x01}
	// TotalSharesKeyPrefix prefixes per-asset share totals.
	TotalSharesKeyPrefix = []byte{0x02}
	// OwnerKeyPrefix prefixes per-asset ownership records.
	OwnerKeyPrefix = []byte{0x03}
	// AccPerShareKeyPrefix prefixes per-asset reward accumulators.
	AccPerShareKeyPrefix = []byte{0x04}
	// RewardDebtKeyPrefix prefixes per-asset, per-account debt snapshots.
	RewardDebtKeyPrefix = []byte{0x05}
)

func assetKey(prefix []byte, assetID uint64) []byte {
	key := make([]byte, len(prefix)+8)
	copy(key, prefix)
	binary.BigEndian.PutUint64(key[len(prefix):], assetID)
	return key
}

func assetAddrKey(prefix []byte, assetID uint64, addr string) []byte {
	key := assetKey(prefix, assetID)
	return append(key, addr...)
}

// SharesKey returns the store key for an account's shares of an asset.
func SharesKey(assetID uint64, addr string) []byte {
	return assetAddrKey(SharesKeyPrefix, assetID, addr)
}

// SharesByAssetPrefix returns the iteration prefix for all share records of
// an asset. The account address is the key remainder.
func SharesByAssetPrefix(assetID uint64) []byte {
	return assetKey(SharesKeyPrefix, assetID)
}

// AddrFromSharesKey extracts the account address from a full shares key.
func AddrFromSharesKey(key []byte) string {
	return string(key[len(SharesKeyPrefix)+8:])
}

// TotalSharesKey returns the store key for an asset's total shares.
func TotalSharesKey(assetID uint64) []byte {
	return assetKey(TotalSharesKeyPrefix, assetID)
}

// OwnerKey returns the store key for an asset's ownership record.
func OwnerKey(assetID uint64) []byte {
	return assetKey(OwnerKeyPrefix, assetID)
}

// AccPerShareKey returns the store key for an asset's reward accumulator.
func AccPerShareKey(assetID uint64) []byte {
	return assetKey(AccPerShareKeyPrefix, assetID)
}

// RewardDebtKey returns the store key for an account's reward debt.
func RewardDebtKey(assetID uint64, addr string) []byte {
	return assetAddrKey(RewardDebtKeyPrefix, assetID, addr)
}
