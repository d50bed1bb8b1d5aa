package app

import (
	"context"
	"time"

	"cosmossdk.io/math"
)

// Swap trades amountIn of tokenIn for tokenOut, failing when the output is
// below minOut.
func (a *App) Swap(trader, tokenIn, tokenOut string, amountIn, minOut math.Int) (math.Int, error) {
	var out math.Int
	err := a.run(func(ctx context.Context) error {
		var err error
		out, err = a.SwapKeeper.SwapExact(ctx, trader, tokenIn, tokenOut, amountIn, minOut)
		return err
	})
	return out, err
}

// Stake deposits amount into an asset's staked subset for the staker.
// Returns the shares minted.
func (a *App) Stake(staker string, assetID uint64, amount math.Int) (math.Int, error) {
	var minted math.Int
	err := a.run(func(ctx context.Context) error {
		var err error
		minted, err = a.StakeKeeper.Stake(ctx, staker, assetID, amount)
		return err
	})
	return minted, err
}

// Unstake burns shares and withdraws the proportional tokens.
func (a *App) Unstake(staker string, assetID uint64, shares math.Int) (math.Int, error) {
	var out math.Int
	err := a.run(func(ctx context.Context) error {
		var err error
		out, err = a.StakeKeeper.Unstake(ctx, staker, assetID, shares)
		return err
	})
	return out, err
}

// SwapStake migrates a share position between assets atomically: any
// failure along the way, including in the buy leg, rolls back the burns and
// every harvested reward.
func (a *App) SwapStake(staker string, fromAssetID, toAssetID uint64, shares math.Int) (math.Int, error) {
	var minted math.Int
	err := a.run(func(ctx context.Context) error {
		var err error
		minted, err = a.StakeKeeper.SwapStake(ctx, staker, fromAssetID, toAssetID, shares)
		return err
	})
	return minted, err
}

// BatchSwapStake consolidates whole positions from every source asset into
// the destination in one atomic operation.
func (a *App) BatchSwapStake(staker string, fromAssetIDs []uint64, toAssetID uint64) (math.Int, error) {
	var minted math.Int
	err := a.run(func(ctx context.Context) error {
		var err error
		minted, err = a.StakeKeeper.BatchSwapStake(ctx, staker, fromAssetIDs, toAssetID)
		return err
	})
	return minted, err
}

// ClaimRewards pays the staker's pending per-asset and global rewards.
func (a *App) ClaimRewards(staker string, assetID uint64) (assetReward, globalReward math.Int, err error) {
	err = a.run(func(ctx context.Context) error {
		var err error
		assetReward, globalReward, err = a.StakeKeeper.ClaimRewards(ctx, staker, assetID)
		return err
	})
	return assetReward, globalReward, err
}

// StakeExitLiquidity deposits dual-sided exit liquidity.
func (a *App) StakeExitLiquidity(provider string, exitAmount math.Int) (minted, hubAmount math.Int, err error) {
	err = a.run(func(ctx context.Context) error {
		var err error
		minted, hubAmount, err = a.ExitKeeper.Stake(ctx, provider, exitAmount)
		return err
	})
	return minted, hubAmount, err
}

// UnstakeExitLiquidity burns exit shares and withdraws both sides.
func (a *App) UnstakeExitLiquidity(provider string, shares math.Int) (hubOut, exitOut math.Int, err error) {
	err = a.run(func(ctx context.Context) error {
		var err error
		hubOut, exitOut, err = a.ExitKeeper.Unstake(ctx, provider, shares)
		return err
	})
	return hubOut, exitOut, err
}

// ClaimExitRewards pays the provider's pending exit and global rewards.
func (a *App) ClaimExitRewards(provider string) (exitReward, globalReward math.Int, err error) {
	err = a.run(func(ctx context.Context) error {
		var err error
		exitReward, globalReward, err = a.ExitKeeper.ClaimRewards(ctx, provider)
		return err
	})
	return exitReward, globalReward, err
}

// LaunchAsset runs the full asset-creation sequence atomically: mint the
// fixed supply to the creator, open the pool at the configured seed ratio,
// record the asset, auto-stake the creator's initial position, and
// distribute the creation fee to the global weight registry. The creator
// pays the creation fee in hub tokens; the auto-stake makes them the
// initial owner.
func (a *App) LaunchAsset(creator, denom, name string) (*AssetRecord, error) {
	if creator == "" || denom == "" {
		return nil, ErrInvalidArgument.Wrap("creator and denom are required")
	}

	var rec AssetRecord
	err := a.run(func(ctx context.Context) error {
		if a.assetCount(ctx) >= a.cfg.MaxAssets {
			return ErrMaxAssets.Wrapf("cap %d", a.cfg.MaxAssets)
		}
		if _, err := a.assetByDenom(ctx, denom); err == nil {
			return ErrAssetExists.Wrapf("denom %s", denom)
		}

		launch := a.cfg.Launch
		assetID := a.nextAssetID(ctx)

		// Fixed-supply issuance to the creator; seed and auto-stake are
		// pulled back out of it by the steps below.
		if err := a.LedgerKeeper.MintCoins(ctx, creator, denom, launch.TotalSupply); err != nil {
			return err
		}
		if err := a.SwapKeeper.InitializePool(ctx, creator, assetID, denom, launch.SeedHub, launch.SeedAsset); err != nil {
			return err
		}

		rec = AssetRecord{
			AssetID:  assetID,
			Denom:    denom,
			Name:     name,
			Creator:  creator,
			Launched: time.Now().UTC(),
		}
		a.registerAsset(ctx, rec)

		if launch.AutoStake.IsPositive() {
			if _, err := a.StakeKeeper.Stake(ctx, creator, assetID, launch.AutoStake); err != nil {
				return err
			}
		}
		if launch.CreationFee.IsPositive() {
			if err := a.WeightKeeper.DistributeFee(ctx, creator, launch.CreationFee); err != nil {
				return err
			}
		}

		a.logger.Info("asset launched",
			"asset_id", assetID, "denom", denom, "creator", creator)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// DistributeGlobalFee pulls a hub fee from payer into the global weight
// registry.
func (a *App) DistributeGlobalFee(payer string, amount math.Int) error {
	return a.run(func(ctx context.Context) error {
		return a.WeightKeeper.DistributeFee(ctx, payer, amount)
	})
}

// Fund mints tokens to an address. Administrative; mirrors genesis funding.
func (a *App) Fund(addr, denom string, amount math.Int) error {
	return a.run(func(ctx context.Context) error {
		return a.LedgerKeeper.MintCoins(ctx, addr, denom, amount)
	})
}
