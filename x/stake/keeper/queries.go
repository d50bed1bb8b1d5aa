package keeper

import (
	"context"

	"cosmossdk.io/math"

	"github.com/stakeclaim/stakeclaim/x/stake/types"
)

// EffectiveBalance returns the token value of an account's shares: the
// proportional slice of the pool's staked subset they redeem for today.
func (k *Keeper) EffectiveBalance(ctx context.Context, assetID uint64, addr string) (math.Int, error) {
	shares := k.SharesOf(ctx, assetID, addr)
	if !shares.IsPositive() {
		return math.ZeroInt(), nil
	}
	subset, err := k.swap.GetStakedSubset(ctx, assetID)
	if err != nil {
		return math.ZeroInt(), err
	}
	total := k.TotalShares(ctx, assetID)
	return shares.Mul(subset).Quo(total), nil
}

// Positions returns every position in an asset as a read model, in address
// order.
func (k *Keeper) Positions(ctx context.Context, assetID uint64) ([]types.Position, error) {
	subset, err := k.swap.GetStakedSubset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	total := k.TotalShares(ctx, assetID)
	rec := k.OwnerOf(ctx, assetID)

	var positions []types.Position
	k.IterateShares(ctx, assetID, func(addr string, shares math.Int) bool {
		effective := math.ZeroInt()
		if total.IsPositive() {
			effective = shares.Mul(subset).Quo(total)
		}
		positions = append(positions, types.Position{
			AssetID:          assetID,
			Address:          addr,
			Shares:           shares,
			EffectiveBalance: effective,
			IsOwner:          rec != nil && rec.Owner == addr,
		})
		return false
	})
	return positions, nil
}
