package types

// Weight registry event types.
const (
	EventTypeWeightAdded    = "weight_added"
	EventTypeWeightRemoved  = "weight_removed"
	EventTypeHarvest        = "weight_harvest"
	EventTypeFeeDistributed = "weight_fee_distributed"
)

// Weight registry event attribute keys.
const (
	AttributeKeyAddress = "address"
	AttributeKeyEngine  = "engine"
	AttributeKeyDelta   = "delta"
	AttributeKeyWeight  = "weight"
	AttributeKeyReward  = "reward"
	AttributeKeyPayer   = "payer"
	AttributeKeyAmount  = "amount"
)
