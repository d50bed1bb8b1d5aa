package types

// Swap engine event types and attribute keys
const (
	EventTypePoolInitialized  = "swap_pool_initialized"
	EventTypeSwap             = "swap_executed"
	EventTypeInternalTransfer = "swap_internal_transfer"
	EventTypeReserveAdded     = "swap_reserve_added"
	EventTypeReserveRemoved   = "swap_reserve_removed"
	EventTypeExitPoolUpdated  = "swap_exit_pool_updated"

	AttributeKeyAssetID     = "asset_id"
	AttributeKeyFromAssetID = "from_asset_id"
	AttributeKeyToAssetID   = "to_asset_id"
	AttributeKeyDenom       = "denom"
	AttributeKeyTrader      = "trader"
	AttributeKeyRoute       = "route"
	AttributeKeyTokenIn     = "token_in"
	AttributeKeyTokenOut    = "token_out"
	AttributeKeyAmountIn    = "amount_in"
	AttributeKeyAmountOut   = "amount_out"
	AttributeKeyFee         = "fee"
	AttributeKeyAmount      = "amount"
)
