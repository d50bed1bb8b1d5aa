package types

// Staking event types.
const (
	EventTypeStake        = "stake_deposit"
	EventTypeUnstake      = "stake_withdraw"
	EventTypeMigrate      = "stake_migrate"
	EventTypeBatchMigrate = "stake_batch_migrate"
	EventTypeRewardsClaim = "stake_rewards_claimed"
	EventTypeOwnerChanged = "stake_owner_changed"
	EventTypeFeeAccrued   = "stake_fee_accrued"
)

// Staking event attribute keys.
const (
	AttributeKeyAssetID       = "asset_id"
	AttributeKeyFromAssetID   = "from_asset_id"
	AttributeKeyToAssetID     = "to_asset_id"
	AttributeKeySourceCount   = "source_count"
	AttributeKeyStaker        = "staker"
	AttributeKeyAmount        = "amount"
	AttributeKeyShares        = "shares"
	AttributeKeySharesBurned  = "shares_burned"
	AttributeKeySharesMinted  = "shares_minted"
	AttributeKeyOwner         = "owner"
	AttributeKeyPreviousOwner = "previous_owner"
	AttributeKeyAssetReward   = "asset_reward"
	AttributeKeyGlobalReward  = "global_reward"
	AttributeKeyFee           = "fee"
)
