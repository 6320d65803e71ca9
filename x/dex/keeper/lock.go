package keeper

import (
	"context"
	"strconv"

	"github.com/dexchain/dexchain/x/dex/types"
)

// withPoolLock runs fn while holding the pool's reentrancy lock. A nested
// call against the same pool fails with ErrLocked. The lock is released even
// when fn panics, so a failed transaction never leaves the pool locked.
func (k Keeper) withPoolLock(ctx context.Context, poolID uint64, fn func() error) error {
	if err := k.acquirePoolLock(ctx, poolID); err != nil {
		return err
	}
	defer k.releasePoolLock(ctx, poolID)

	return fn()
}

func (k Keeper) acquirePoolLock(ctx context.Context, poolID uint64) error {
	store := k.getStore(ctx)
	key := types.LockKey(poolID)

	if store.Has(key) {
		GetMetrics().ReentrancyRejections.WithLabelValues(strconv.FormatUint(poolID, 10)).Inc()
		return types.ErrLocked.Wrapf("pool %d is locked", poolID)
	}
	store.Set(key, []byte{0x01})
	return nil
}

func (k Keeper) releasePoolLock(ctx context.Context, poolID uint64) {
	store := k.getStore(ctx)
	store.Delete(types.LockKey(poolID))
}
