package keeper

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/dexchain/dexchain/x/dex/types"
)

// InitGenesis initializes the dex module state from a genesis state
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("InitGenesis: invalid genesis state: %w", err)
	}

	if err := k.SetParams(ctx, genState.Params); err != nil {
		return fmt.Errorf("InitGenesis: params: %w", err)
	}
	k.SetPoolCount(ctx, genState.PoolCount)

	store := k.getStore(ctx)
	for _, pool := range genState.Pools {
		if err := k.SetPool(ctx, pool); err != nil {
			return fmt.Errorf("InitGenesis: pool %d: %w", pool.Id, err)
		}
		store.Set(types.PairIndexKey(pool.Token0, pool.Token1), sdk.Uint64ToBigEndian(pool.Id))
	}

	for _, position := range genState.Shares {
		holder, err := sdk.AccAddressFromBech32(position.Address)
		if err != nil {
			return fmt.Errorf("InitGenesis: share holder %q: %w", position.Address, err)
		}
		if err := k.setShares(ctx, position.PoolId, holder, position.Shares); err != nil {
			return fmt.Errorf("InitGenesis: shares: %w", err)
		}
	}

	for _, allowance := range genState.Allowances {
		owner, err := sdk.AccAddressFromBech32(allowance.Owner)
		if err != nil {
			return fmt.Errorf("InitGenesis: allowance owner %q: %w", allowance.Owner, err)
		}
		spender, err := sdk.AccAddressFromBech32(allowance.Spender)
		if err != nil {
			return fmt.Errorf("InitGenesis: allowance spender %q: %w", allowance.Spender, err)
		}
		if err := k.ApproveShares(ctx, allowance.PoolId, owner, spender, allowance.Amount); err != nil {
			return fmt.Errorf("InitGenesis: allowance: %w", err)
		}
	}
	return nil
}

// ExportGenesis exports the dex module state for a genesis file
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("ExportGenesis: params: %w", err)
	}

	pools, err := k.GetAllPools(ctx)
	if err != nil {
		return nil, fmt.Errorf("ExportGenesis: pools: %w", err)
	}

	genState := &types.GenesisState{
		Params:    params,
		PoolCount: k.GetPoolCount(ctx),
		Pools:     pools,
	}

	for _, pool := range pools {
		k.IterateShares(ctx, pool.Id, func(holder sdk.AccAddress, shares sdkmath.Int) bool {
			genState.Shares = append(genState.Shares, types.SharePosition{
				PoolId:  pool.Id,
				Address: holder.String(),
				Shares:  shares,
			})
			return false
		})
		k.IterateAllowances(ctx, pool.Id, func(owner, spender sdk.AccAddress, amount sdkmath.Int) bool {
			genState.Allowances = append(genState.Allowances, types.ShareAllowance{
				PoolId:  pool.Id,
				Owner:   owner.String(),
				Spender: spender.String(),
				Amount:  amount,
			})
			return false
		})
	}
	return genState, nil
}
