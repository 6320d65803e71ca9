package types_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/dexchain/dexchain/x/dex/types"
)

func populatedGenesis() *types.GenesisState {
	pool := types.NewPool(1, "uatom", "uusd")
	pool.Reserve0 = math.NewInt(1000)
	pool.Reserve1 = math.NewInt(4000)
	pool.TotalShares = math.NewInt(2000)

	return &types.GenesisState{
		Params:    types.DefaultParams(),
		PoolCount: 1,
		Pools:     []types.Pool{*pool},
		Shares: []types.SharePosition{
			{PoolId: 1, Address: testAddr("locked"), Shares: math.NewInt(1000)},
			{PoolId: 1, Address: testAddr("provider"), Shares: math.NewInt(1000)},
		},
		Allowances: []types.ShareAllowance{
			{PoolId: 1, Owner: testAddr("provider"), Spender: testAddr("spender"), Amount: math.NewInt(250)},
		},
	}
}

// TestDefaultGenesis_Valid tests the empty default state passes
func TestDefaultGenesis_Valid(t *testing.T) {
	require.NoError(t, types.DefaultGenesis().Validate())
}

// TestGenesisValidate_Populated tests a consistent populated state passes
func TestGenesisValidate_Populated(t *testing.T) {
	require.NoError(t, populatedGenesis().Validate())
}

// TestGenesisValidate_DuplicatePool tests duplicate pool ids are rejected
func TestGenesisValidate_DuplicatePool(t *testing.T) {
	gs := populatedGenesis()
	dup := gs.Pools[0]
	dup.Token0, dup.Token1 = "uosmo", "uusd"
	gs.Pools = append(gs.Pools, dup)
	require.Error(t, gs.Validate())
}

// TestGenesisValidate_DuplicatePair tests two pools for one pair are rejected
func TestGenesisValidate_DuplicatePair(t *testing.T) {
	gs := populatedGenesis()
	dup := gs.Pools[0]
	dup.Id = 2
	dup.TotalShares = math.ZeroInt()
	gs.PoolCount = 2
	gs.Pools = append(gs.Pools, dup)
	require.Error(t, gs.Validate())
}

// TestGenesisValidate_PoolIdOutOfRange tests ids past the counter are rejected
func TestGenesisValidate_PoolIdOutOfRange(t *testing.T) {
	gs := populatedGenesis()
	gs.PoolCount = 0
	require.Error(t, gs.Validate())
}

// TestGenesisValidate_ShareSupplyMismatch tests position sums must equal the
// pool's recorded supply
func TestGenesisValidate_ShareSupplyMismatch(t *testing.T) {
	gs := populatedGenesis()
	gs.Shares = gs.Shares[:1]
	require.Error(t, gs.Validate())
}

// TestGenesisValidate_OrphanShares tests positions must reference known pools
func TestGenesisValidate_OrphanShares(t *testing.T) {
	gs := populatedGenesis()
	gs.Shares[0].PoolId = 99
	require.Error(t, gs.Validate())
}

// TestGenesisValidate_OrphanAllowance tests allowances must reference known pools
func TestGenesisValidate_OrphanAllowance(t *testing.T) {
	gs := populatedGenesis()
	gs.Allowances[0].PoolId = 99
	require.Error(t, gs.Validate())
}

// TestGenesisValidate_BadParams tests parameter validation is enforced
func TestGenesisValidate_BadParams(t *testing.T) {
	gs := populatedGenesis()
	gs.Params.SwapFeePermille = 1000
	require.ErrorIs(t, gs.Validate(), types.ErrInvalidFee)
}
