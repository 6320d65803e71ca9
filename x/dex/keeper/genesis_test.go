package keeper_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/dexchain/dexchain/testutil/keeper"
	"github.com/dexchain/dexchain/x/dex/types"
)

// TestGenesis_RoundTrip tests export/import preserves pools, shares and
// allowances
func TestGenesis_RoundTrip(t *testing.T) {
	k, bk, ctx := keepertest.DexKeeper(t)
	poolID := fundPool(t, k, bk, ctx, 1000, 4000)
	require.NoError(t, k.TransferShares(ctx, poolID, provider, trader, sdkmath.NewInt(400)))
	require.NoError(t, k.ApproveShares(ctx, poolID, provider, spender, sdkmath.NewInt(250)))

	exported, err := k.ExportGenesis(ctx)
	require.NoError(t, err)
	require.NoError(t, exported.Validate())
	require.Equal(t, uint64(1), exported.PoolCount)
	require.Len(t, exported.Pools, 1)
	require.Len(t, exported.Shares, 3)
	require.Len(t, exported.Allowances, 1)

	// Import into a fresh keeper and compare observable state
	k2, _, ctx2 := keepertest.DexKeeper(t)
	require.NoError(t, k2.InitGenesis(ctx2, *exported))

	pool, err := k2.GetPool(ctx2, poolID)
	require.NoError(t, err)
	require.Equal(t, exported.Pools[0], pool)

	byTokens, err := k2.GetPoolByTokens(ctx2, "uusd", "uatom")
	require.NoError(t, err)
	require.Equal(t, pool.Id, byTokens.Id)

	require.Equal(t, sdkmath.NewInt(600), k2.GetShares(ctx2, poolID, provider))
	require.Equal(t, sdkmath.NewInt(400), k2.GetShares(ctx2, poolID, trader))
	require.Equal(t, sdkmath.NewInt(1000), k2.GetShares(ctx2, poolID, types.LockedSharesAddress))
	require.Equal(t, sdkmath.NewInt(250), k2.GetAllowance(ctx2, poolID, provider, spender))
}

// TestInitGenesis_RejectsInvalid tests import refuses an inconsistent state
func TestInitGenesis_RejectsInvalid(t *testing.T) {
	k, _, ctx := keepertest.DexKeeper(t)

	pool := types.NewPool(1, "uatom", "uusd")
	pool.TotalShares = sdkmath.NewInt(2000)
	gs := types.GenesisState{
		Params:    types.DefaultParams(),
		PoolCount: 1,
		Pools:     []types.Pool{*pool},
		// No share positions backing the recorded supply
	}
	require.Error(t, k.InitGenesis(ctx, gs))
}

// TestExportGenesis_Empty tests a fresh keeper exports the default shape
func TestExportGenesis_Empty(t *testing.T) {
	k, _, ctx := keepertest.DexKeeper(t)

	exported, err := k.ExportGenesis(ctx)
	require.NoError(t, err)
	require.NoError(t, exported.Validate())
	require.Equal(t, uint64(0), exported.PoolCount)
	require.Empty(t, exported.Pools)
	require.Empty(t, exported.Shares)
}
