package types

const (
	// ModuleName is the ledger module name and error codespace.
	ModuleName = "ledger"

	// moduleAddressPrefix marks addresses owned by engine modules rather
	// than external accounts.
	moduleAddressPrefix = "module/"
)

// StorePrefix namespaces all ledger keys in the shared KV store.
var StorePrefix = []byte(ModuleName + "/")

// BalanceKeyPrefix prefixes balance records: bal/<addr>/<denom>.
var BalanceKeyPrefix = []byte{0x01}

// BalanceKey returns the store key for an account's balance of denom.
func BalanceKey(addr, denom string) []byte {
	key := make([]byte, 0, len(BalanceKeyPrefix)+len(addr)+1+len(denom))
	key = append(key, BalanceKeyPrefix...)
	key = append(key, addr...)
	key = append(key, '/')
	key = append(key, denom...)
	return key
}

// BalancesByAddrPrefix returns the iteration prefix for all balances of addr.
func BalancesByAddrPrefix(addr string) []byte {
	key := make([]byte, 0, len(BalanceKeyPrefix)+len(addr)+1)
	key = append(key, BalanceKeyPrefix...)
	key = append(key, addr...)
	key = append(key, '/')
	return key
}

// ModuleAddress returns the reserved address owned by a module account.
func ModuleAddress(name string) string {
	return moduleAddressPrefix + name
}
