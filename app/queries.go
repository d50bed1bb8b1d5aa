package app

import (
	"context"

	"cosmossdk.io/math"

	staketypes "github.com/stakeclaim/stakeclaim/x/stake/types"
)

// PoolInfo is the read model for one asset pool.
type PoolInfo struct {
	AssetID      uint64         `json:"asset_id"`
	Denom        string         `json:"denom"`
	Name         string         `json:"name,omitempty"`
	HubReserve   math.Int       `json:"hub_reserve"`
	AssetReserve math.Int       `json:"asset_reserve"`
	StakedSubset math.Int       `json:"staked_subset"`
	Price        math.LegacyDec `json:"price"`
	Owner        string         `json:"owner,omitempty"`
}

// ExitPoolInfo is the read model for the singleton exit pool.
type ExitPoolInfo struct {
	Initialized bool     `json:"initialized"`
	HubReserve  math.Int `json:"hub_reserve"`
	ExitReserve math.Int `json:"exit_reserve"`
	TotalShares math.Int `json:"total_shares"`
}

// GetAsset returns the registry record for an asset ID.
func (a *App) GetAsset(assetID uint64) (*AssetRecord, error) {
	var rec *AssetRecord
	err := a.view(func(ctx context.Context) error {
		var err error
		rec, err = a.assetByID(ctx, assetID)
		return err
	})
	return rec, err
}

// ListAssets returns every registered asset.
func (a *App) ListAssets() []AssetRecord {
	var records []AssetRecord
	_ = a.view(func(ctx context.Context) error {
		records = a.listAssets(ctx)
		return nil
	})
	return records
}

// GetPoolInfo returns the combined pool, price, and ownership view of an
// asset.
func (a *App) GetPoolInfo(assetID uint64) (*PoolInfo, error) {
	var info *PoolInfo
	err := a.view(func(ctx context.Context) error {
		pool, err := a.SwapKeeper.GetPool(ctx, assetID)
		if err != nil {
			return err
		}
		price, err := a.SwapKeeper.GetPrice(ctx, assetID)
		if err != nil {
			return err
		}
		info = &PoolInfo{
			AssetID:      pool.AssetID,
			Denom:        pool.Denom,
			HubReserve:   pool.HubReserve,
			AssetReserve: pool.AssetReserve,
			StakedSubset: pool.StakedSubset,
			Price:        price,
		}
		if rec, err := a.assetByID(ctx, assetID); err == nil {
			info.Name = rec.Name
		}
		if owner := a.StakeKeeper.OwnerOf(ctx, assetID); owner != nil {
			info.Owner = owner.Owner
		}
		return nil
	})
	return info, err
}

// ListPools returns the pool view of every initialized pool.
func (a *App) ListPools() []PoolInfo {
	var infos []PoolInfo
	_ = a.view(func(ctx context.Context) error {
		for _, pool := range a.SwapKeeper.GetAllPools(ctx) {
			info := PoolInfo{
				AssetID:      pool.AssetID,
				Denom:        pool.Denom,
				HubReserve:   pool.HubReserve,
				AssetReserve: pool.AssetReserve,
				StakedSubset: pool.StakedSubset,
			}
			if pool.AssetReserve.IsPositive() {
				info.Price = math.LegacyNewDecFromInt(pool.HubReserve).QuoInt(pool.AssetReserve)
			} else {
				info.Price = math.LegacyZeroDec()
			}
			if rec, err := a.assetByID(ctx, pool.AssetID); err == nil {
				info.Name = rec.Name
			}
			if owner := a.StakeKeeper.OwnerOf(ctx, pool.AssetID); owner != nil {
				info.Owner = owner.Owner
			}
			infos = append(infos, info)
		}
		return nil
	})
	return infos
}

// GetExitPoolInfo returns the exit pool view. An uninitialized pool reports
// zero reserves rather than an error.
func (a *App) GetExitPoolInfo() ExitPoolInfo {
	info := ExitPoolInfo{
		HubReserve:  math.ZeroInt(),
		ExitReserve: math.ZeroInt(),
		TotalShares: math.ZeroInt(),
	}
	_ = a.view(func(ctx context.Context) error {
		if !a.SwapKeeper.ExitPoolInitialized(ctx) {
			return nil
		}
		hub, exit, err := a.SwapKeeper.GetExitLiquidityReserves(ctx)
		if err != nil {
			return err
		}
		info.Initialized = true
		info.HubReserve = hub
		info.ExitReserve = exit
		info.TotalShares = a.ExitKeeper.TotalShares(ctx)
		return nil
	})
	return info
}

// GetBalance returns an account's balance of a denom.
func (a *App) GetBalance(addr, denom string) math.Int {
	balance := math.ZeroInt()
	_ = a.view(func(ctx context.Context) error {
		balance = a.LedgerKeeper.GetBalance(ctx, addr, denom)
		return nil
	})
	return balance
}

// GetOwner returns the current ownership record of an asset, nil when the
// asset has no stakers.
func (a *App) GetOwner(assetID uint64) *staketypes.OwnershipRecord {
	var rec *staketypes.OwnershipRecord
	_ = a.view(func(ctx context.Context) error {
		rec = a.StakeKeeper.OwnerOf(ctx, assetID)
		return nil
	})
	return rec
}

// GetSharesOf returns an account's shares in an asset.
func (a *App) GetSharesOf(assetID uint64, addr string) math.Int {
	shares := math.ZeroInt()
	_ = a.view(func(ctx context.Context) error {
		shares = a.StakeKeeper.SharesOf(ctx, assetID, addr)
		return nil
	})
	return shares
}

// GetEffectiveBalance returns the token value of an account's shares.
func (a *App) GetEffectiveBalance(assetID uint64, addr string) (math.Int, error) {
	balance := math.ZeroInt()
	err := a.view(func(ctx context.Context) error {
		var err error
		balance, err = a.StakeKeeper.EffectiveBalance(ctx, assetID, addr)
		return err
	})
	return balance, err
}

// GetPositions returns every staking position in an asset.
func (a *App) GetPositions(assetID uint64) ([]staketypes.Position, error) {
	var positions []staketypes.Position
	err := a.view(func(ctx context.Context) error {
		var err error
		positions, err = a.StakeKeeper.Positions(ctx, assetID)
		return err
	})
	return positions, err
}

// GetPendingRewards returns an account's unclaimed per-asset and global
// rewards.
func (a *App) GetPendingRewards(assetID uint64, addr string) (assetReward, globalReward math.Int) {
	assetReward, globalReward = math.ZeroInt(), math.ZeroInt()
	_ = a.view(func(ctx context.Context) error {
		assetReward = a.StakeKeeper.PendingRewards(ctx, assetID, addr)
		globalReward = a.WeightKeeper.PendingGlobalRewards(ctx, addr)
		return nil
	})
	return assetReward, globalReward
}

// GetExitPosition returns a provider's exit shares and pending reward.
func (a *App) GetExitPosition(addr string) (shares, pending math.Int) {
	shares, pending = math.ZeroInt(), math.ZeroInt()
	_ = a.view(func(ctx context.Context) error {
		shares = a.ExitKeeper.SharesOf(ctx, addr)
		pending = a.ExitKeeper.PendingRewards(ctx, addr)
		return nil
	})
	return shares, pending
}

// GetWeight returns an account's global weight and the registry total.
func (a *App) GetWeight(addr string) (weight, total math.Int) {
	weight, total = math.ZeroInt(), math.ZeroInt()
	_ = a.view(func(ctx context.Context) error {
		weight = a.WeightKeeper.WeightOf(ctx, addr)
		total = a.WeightKeeper.TotalWeight(ctx)
		return nil
	})
	return weight, total
}

// GetPrice returns the hub price of one asset unit.
func (a *App) GetPrice(assetID uint64) (math.LegacyDec, error) {
	price := math.LegacyZeroDec()
	err := a.view(func(ctx context.Context) error {
		var err error
		price, err = a.SwapKeeper.GetPrice(ctx, assetID)
		return err
	})
	return price, err
}
