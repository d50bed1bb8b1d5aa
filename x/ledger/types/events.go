package types

// Ledger event types and attribute keys
const (
	EventTypeTransfer = "ledger_transfer"
	EventTypeMint     = "ledger_mint"
	EventTypeBurn     = "ledger_burn"

	AttributeKeyFrom   = "from"
	AttributeKeyTo     = "to"
	AttributeKeyDenom  = "denom"
	AttributeKeyAmount = "amount"
)
