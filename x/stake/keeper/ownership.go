package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"

	"github.com/stakeclaim/stakeclaim/x/shared/events"
	"github.com/stakeclaim/stakeclaim/x/shared/state"
	"github.com/stakeclaim/stakeclaim/x/stake/types"
)

// OwnerOf returns the cached ownership record for an asset, or nil when the
// asset has no stakers.
func (k *Keeper) OwnerOf(ctx context.Context, assetID uint64) *types.OwnershipRecord {
	bz := k.getStore(ctx).Get(types.OwnerKey(assetID))
	if bz == nil {
		return nil
	}
	var rec types.OwnershipRecord
	state.MustUnmarshal(bz, &rec)
	return &rec
}

func (k *Keeper) setOwner(ctx context.Context, assetID uint64, rec types.OwnershipRecord) {
	k.getStore(ctx).Set(types.OwnerKey(assetID), state.MustMarshal(rec))
}

func (k *Keeper) deleteOwner(ctx context.Context, assetID uint64) {
	k.getStore(ctx).Delete(types.OwnerKey(assetID))
}

// updateOwnerOnGain re-evaluates ownership after an account's position grew.
// A challenger takes over only on a strictly larger position; ties keep the
// incumbent. The incumbent's cached size is refreshed when it grew itself.
func (k *Keeper) updateOwnerOnGain(ctx context.Context, assetID uint64, addr string, shares math.Int) {
	rec := k.OwnerOf(ctx, assetID)
	switch {
	case rec == nil:
		k.setOwner(ctx, assetID, types.OwnershipRecord{Owner: addr, OwnerShares: shares})
		k.emitOwnerChanged(ctx, assetID, "", addr)
	case rec.Owner == addr:
		rec.OwnerShares = shares
		k.setOwner(ctx, assetID, *rec)
	case shares.GT(rec.OwnerShares):
		prev := rec.Owner
		k.setOwner(ctx, assetID, types.OwnershipRecord{Owner: addr, OwnerShares: shares})
		k.emitOwnerChanged(ctx, assetID, prev, addr)
	}
}

// rescanOwner rebuilds the ownership record by scanning every position of
// the asset. Called only when the current owner reduced its stake, so the
// cached record can no longer be trusted.
func (k *Keeper) rescanOwner(ctx context.Context, assetID uint64, prevOwner string) {
	var (
		best       string
		bestShares = math.ZeroInt()
	)
	k.IterateShares(ctx, assetID, func(addr string, shares math.Int) bool {
		if shares.GT(bestShares) {
			best = addr
			bestShares = shares
		}
		return false
	})
	if best == "" {
		k.deleteOwner(ctx, assetID)
		if prevOwner != "" {
			k.emitOwnerChanged(ctx, assetID, prevOwner, "")
		}
		return
	}
	k.setOwner(ctx, assetID, types.OwnershipRecord{Owner: best, OwnerShares: bestShares})
	if best != prevOwner {
		k.emitOwnerChanged(ctx, assetID, prevOwner, best)
	}
}

// IterateShares walks every position of an asset in address order. The
// callback returns true to stop early.
func (k *Keeper) IterateShares(ctx context.Context, assetID uint64, fn func(addr string, shares math.Int) bool) {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, types.SharesByAssetPrefix(assetID))
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var shares math.Int
		if err := shares.Unmarshal(iterator.Value()); err != nil {
			panic(err)
		}
		if fn(types.AddrFromSharesKey(iterator.Key()), shares) {
			break
		}
	}
}

func (k *Keeper) emitOwnerChanged(ctx context.Context, assetID uint64, prev, next string) {
	state.Events(ctx).EmitEvent(events.NewEvent(
		types.EventTypeOwnerChanged,
		events.NewAttribute(types.AttributeKeyAssetID, fmt.Sprintf("%d", assetID)),
		events.NewAttribute(types.AttributeKeyPreviousOwner, prev),
		events.NewAttribute(types.AttributeKeyOwner, next),
	))
	k.metrics.OwnerChangesTotal.Inc()
	k.logger.Info("asset owner changed", "asset_id", assetID, "previous", prev, "owner", next)
}
