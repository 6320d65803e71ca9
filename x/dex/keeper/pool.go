package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/dexchain/dexchain/x/dex/types"
)

// GetPoolCount returns the number of pools created so far
func (k Keeper) GetPoolCount(ctx context.Context) uint64 {
	store := k.getStore(ctx)
	bz := store.Get(types.PoolCountKey)
	if bz == nil {
		return 0
	}
	return sdk.BigEndianToUint64(bz)
}

// SetPoolCount stores the pool counter
func (k Keeper) SetPoolCount(ctx context.Context, count uint64) {
	store := k.getStore(ctx)
	store.Set(types.PoolCountKey, sdk.Uint64ToBigEndian(count))
}

// GetPool returns a pool by ID
func (k Keeper) GetPool(ctx context.Context, poolID uint64) (types.Pool, error) {
	store := k.getStore(ctx)
	bz := store.Get(types.PoolKey(poolID))
	if bz == nil {
		return types.Pool{}, types.ErrPairNotFound.Wrapf("pool %d", poolID)
	}

	var pool types.Pool
	if err := json.Unmarshal(bz, &pool); err != nil {
		return types.Pool{}, fmt.Errorf("GetPool: unmarshal pool %d: %w", poolID, err)
	}
	return pool, nil
}

// SetPool stores a pool record
func (k Keeper) SetPool(ctx context.Context, pool types.Pool) error {
	bz, err := json.Marshal(pool)
	if err != nil {
		return fmt.Errorf("SetPool: marshal pool %d: %w", pool.Id, err)
	}
	store := k.getStore(ctx)
	store.Set(types.PoolKey(pool.Id), bz)
	return nil
}

// GetPoolByTokens returns the pool holding the given pair, in either denom order
func (k Keeper) GetPoolByTokens(ctx context.Context, tokenA, tokenB string) (types.Pool, error) {
	store := k.getStore(ctx)
	bz := store.Get(types.PairIndexKey(tokenA, tokenB))
	if bz == nil {
		return types.Pool{}, types.ErrPairNotFound.Wrapf("no pool for %s/%s", tokenA, tokenB)
	}
	return k.GetPool(ctx, sdk.BigEndianToUint64(bz))
}

// HasPool reports whether a pool exists for the pair
func (k Keeper) HasPool(ctx context.Context, tokenA, tokenB string) bool {
	store := k.getStore(ctx)
	return store.Has(types.PairIndexKey(tokenA, tokenB))
}

// CreatePair registers a new empty pool for a token pair. Denoms are stored
// in canonical order regardless of argument order. At most one pool exists
// per pair.
func (k Keeper) CreatePair(ctx context.Context, tokenA, tokenB string) (types.Pool, error) {
	if tokenA == "" || tokenB == "" {
		return types.Pool{}, types.ErrZeroAddress.Wrap("token denom cannot be empty")
	}
	if tokenA == tokenB {
		return types.Pool{}, types.ErrIdenticalAddresses.Wrapf("identical denoms %s", tokenA)
	}
	if err := sdk.ValidateDenom(tokenA); err != nil {
		return types.Pool{}, types.ErrInvalidPair.Wrapf("invalid denom %q: %v", tokenA, err)
	}
	if err := sdk.ValidateDenom(tokenB); err != nil {
		return types.Pool{}, types.ErrInvalidPair.Wrapf("invalid denom %q: %v", tokenB, err)
	}
	if k.HasPool(ctx, tokenA, tokenB) {
		return types.Pool{}, types.ErrPairExists.Wrapf("pool for %s/%s already exists", tokenA, tokenB)
	}

	token0, token1 := types.SortDenoms(tokenA, tokenB)
	poolID := k.GetPoolCount(ctx) + 1
	pool := *types.NewPool(poolID, token0, token1)

	if err := k.SetPool(ctx, pool); err != nil {
		return types.Pool{}, err
	}
	k.SetPoolCount(ctx, poolID)

	store := k.getStore(ctx)
	store.Set(types.PairIndexKey(token0, token1), sdk.Uint64ToBigEndian(poolID))

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePairCreated,
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
			sdk.NewAttribute(types.AttributeKeyToken0, token0),
			sdk.NewAttribute(types.AttributeKeyToken1, token1),
		),
	)
	k.Logger(ctx).Info("created pool", "pool_id", poolID, "token0", token0, "token1", token1)

	m := GetMetrics()
	m.PoolsTotal.Set(float64(poolID))
	m.PoolCreationRate.Inc()

	return pool, nil
}

// IteratePools calls fn for every pool, stopping early when fn returns true
func (k Keeper) IteratePools(ctx context.Context, fn func(pool types.Pool) bool) error {
	store := k.getStore(ctx)
	iterator := store.Iterator(types.PoolKeyPrefix, storetypes.PrefixEndBytes(types.PoolKeyPrefix))
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := json.Unmarshal(iterator.Value(), &pool); err != nil {
			return fmt.Errorf("IteratePools: unmarshal: %w", err)
		}
		if fn(pool) {
			break
		}
	}
	return nil
}

// GetAllPools returns every pool in the store
func (k Keeper) GetAllPools(ctx context.Context) ([]types.Pool, error) {
	var pools []types.Pool
	err := k.IteratePools(ctx, func(pool types.Pool) bool {
		pools = append(pools, pool)
		return false
	})
	return pools, err
}

// PoolBalance returns the pool account's current bank balance of denom
func (k Keeper) PoolBalance(ctx context.Context, poolID uint64, denom string) sdk.Coin {
	return k.bankKeeper.GetBalance(ctx, types.PoolAddress(poolID), denom)
}
