package types

// Exit-liquidity event types.
const (
	EventTypeStake        = "exit_liquidity_deposit"
	EventTypeUnstake      = "exit_liquidity_withdraw"
	EventTypeRewardsClaim = "exit_rewards_claimed"
	EventTypeFeeAccrued   = "exit_fee_accrued"
)

// Exit-liquidity event attribute keys.
const (
	AttributeKeyProvider     = "provider"
	AttributeKeyExitAmount   = "exit_amount"
	AttributeKeyHubAmount    = "hub_amount"
	AttributeKeySharesMinted = "shares_minted"
	AttributeKeySharesBurned = "shares_burned"
	AttributeKeyExitReward   = "exit_reward"
	AttributeKeyGlobalReward = "global_reward"
	AttributeKeyFee          = "fee"
)
