package app

import (
	"context"
	"encoding/binary"
	"time"

	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"

	"github.com/stakeclaim/stakeclaim/x/shared/state"
)

// AssetRecord is the registry entry written at launch, binding the asset ID
// to its token reference.
type AssetRecord struct {
	AssetID  uint64    `json:"asset_id"`
	Denom    string    `json:"denom"`
	Name     string    `json:"name"`
	Creator  string    `json:"creator"`
	Launched time.Time `json:"launched"`
}

var (
	registryPrefix   = []byte("registry/")
	assetKeyPrefix   = []byte{0x01}
	assetDenomPrefix = []byte{0x02}
	assetCountKey    = []byte{0x03}
	nextAssetIDKey   = []byte{0x04}
)

func (a *App) registryStore(ctx context.Context) storetypes.KVStore {
	return prefix.NewStore(state.KV(ctx), registryPrefix)
}

func assetKey(id uint64) []byte {
	key := make([]byte, 9)
	key[0] = assetKeyPrefix[0]
	binary.BigEndian.PutUint64(key[1:], id)
	return key
}

func (a *App) registerAsset(ctx context.Context, rec AssetRecord) {
	store := a.registryStore(ctx)
	store.Set(assetKey(rec.AssetID), state.MustMarshal(rec))

	idBz := make([]byte, 8)
	binary.BigEndian.PutUint64(idBz, rec.AssetID)
	store.Set(append(assetDenomPrefix, rec.Denom...), idBz)

	countBz := make([]byte, 8)
	binary.BigEndian.PutUint64(countBz, a.assetCount(ctx)+1)
	store.Set(assetCountKey, countBz)
}

func (a *App) assetCount(ctx context.Context) uint64 {
	bz := a.registryStore(ctx).Get(assetCountKey)
	if bz == nil {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

// nextAssetID allocates a monotonically increasing asset ID, starting at 1.
func (a *App) nextAssetID(ctx context.Context) uint64 {
	store := a.registryStore(ctx)
	next := uint64(1)
	if bz := store.Get(nextAssetIDKey); bz != nil {
		next = binary.BigEndian.Uint64(bz)
	}
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, next+1)
	store.Set(nextAssetIDKey, bz)
	return next
}

func (a *App) assetByID(ctx context.Context, id uint64) (*AssetRecord, error) {
	bz := a.registryStore(ctx).Get(assetKey(id))
	if bz == nil {
		return nil, ErrAssetNotFound.Wrapf("asset %d", id)
	}
	var rec AssetRecord
	state.MustUnmarshal(bz, &rec)
	return &rec, nil
}

func (a *App) assetByDenom(ctx context.Context, denom string) (*AssetRecord, error) {
	bz := a.registryStore(ctx).Get(append(assetDenomPrefix, denom...))
	if bz == nil {
		return nil, ErrAssetNotFound.Wrapf("denom %s", denom)
	}
	return a.assetByID(ctx, binary.BigEndian.Uint64(bz))
}

// listAssets returns every registered asset in ID order.
func (a *App) listAssets(ctx context.Context) []AssetRecord {
	store := a.registryStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, assetKeyPrefix)
	defer iterator.Close()

	var records []AssetRecord
	for ; iterator.Valid(); iterator.Next() {
		var rec AssetRecord
		state.MustUnmarshal(iterator.Value(), &rec)
		records = append(records, rec)
	}
	return records
}
