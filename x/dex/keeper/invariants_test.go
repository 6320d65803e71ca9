package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	keepertest "github.com/dexchain/dexchain/testutil/keeper"
	"github.com/dexchain/dexchain/x/dex/keeper"
	"github.com/dexchain/dexchain/x/dex/types"
)

// TestInvariants_Healthy tests that a populated pool passes all invariants
func TestInvariants_Healthy(t *testing.T) {
	k, bk, ctx := keepertest.DexKeeper(t)
	addLiquidity(t, k, bk, ctx, "uatom", "uusd", 1000, 4000)
	addLiquidity(t, k, bk, ctx, "uatom", "uosmo", 2000, 2000)

	msg, broken := keeper.AllInvariants(*k)(ctx)
	require.False(t, broken, msg)
}

// TestInvariants_Empty tests that a fresh keeper passes all invariants
func TestInvariants_Empty(t *testing.T) {
	k, _, ctx := keepertest.DexKeeper(t)

	msg, broken := keeper.AllInvariants(*k)(ctx)
	require.False(t, broken, msg)
}

// TestPoolBackingInvariant_Broken tests detection of reserves without backing
func TestPoolBackingInvariant_Broken(t *testing.T) {
	k, bk, ctx := keepertest.DexKeeper(t)
	poolID := addLiquidity(t, k, bk, ctx, "uatom", "uusd", 1000, 4000)

	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	pool.Reserve0 = pool.Reserve0.AddRaw(1)
	require.NoError(t, k.SetPool(ctx, pool))

	_, broken := keeper.PoolBackingInvariant(*k)(ctx)
	require.True(t, broken)
}

// TestShareSupplyInvariant_Broken tests detection of drifted share supply
func TestShareSupplyInvariant_Broken(t *testing.T) {
	k, bk, ctx := keepertest.DexKeeper(t)
	poolID := addLiquidity(t, k, bk, ctx, "uatom", "uusd", 1000, 4000)

	pool, err := k.GetPool(ctx, poolID)
	require.NoError(t, err)
	pool.TotalShares = pool.TotalShares.AddRaw(1)
	require.NoError(t, k.SetPool(ctx, pool))

	_, broken := keeper.ShareSupplyInvariant(*k)(ctx)
	require.True(t, broken)
}

// TestPoolStateInvariant_Broken tests detection of a pool id past the counter
func TestPoolStateInvariant_Broken(t *testing.T) {
	k, bk, ctx := keepertest.DexKeeper(t)
	addLiquidity(t, k, bk, ctx, "uatom", "uusd", 1000, 4000)

	k.SetPoolCount(ctx, 0)

	_, broken := keeper.PoolStateInvariant(*k)(ctx)
	require.True(t, broken)
}

// TestUnlockedPoolsInvariant_Broken tests detection of a lock left behind
func TestUnlockedPoolsInvariant_Broken(t *testing.T) {
	k, bk, ctx := keepertest.DexKeeper(t)
	poolID := addLiquidity(t, k, bk, ctx, "uatom", "uusd", 1000, 4000)

	ctx.KVStore(k.StoreKey()).Set(types.LockKey(poolID), []byte{0x01})

	_, broken := keeper.UnlockedPoolsInvariant(*k)(ctx)
	require.True(t, broken)
}
