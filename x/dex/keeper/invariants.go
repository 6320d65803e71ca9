package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/dexchain/dexchain/x/dex/types"
)

// RegisterInvariants registers all dex invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "pool-backing", PoolBackingInvariant(k))
	ir.RegisterRoute(types.ModuleName, "share-supply", ShareSupplyInvariant(k))
	ir.RegisterRoute(types.ModuleName, "pool-state", PoolStateInvariant(k))
	ir.RegisterRoute(types.ModuleName, "unlocked-pools", UnlockedPoolsInvariant(k))
}

// AllInvariants runs all invariants of the dex module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := PoolBackingInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		res, stop = ShareSupplyInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		res, stop = PoolStateInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		return UnlockedPoolsInvariant(k)(ctx)
	}
}

// PoolBackingInvariant checks that every pool account holds at least the
// reserves the pool believes it has
func PoolBackingInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "pool-backing", err.Error()), true
		}
		for _, pool := range pools {
			balance0 := k.PoolBalance(ctx, pool.Id, pool.Token0)
			balance1 := k.PoolBalance(ctx, pool.Id, pool.Token1)

			if balance0.Amount.LT(pool.Reserve0) {
				count++
				msg += fmt.Sprintf("pool %d: balance for %s (%s) < reserve (%s)\n",
					pool.Id, pool.Token0, balance0.Amount, pool.Reserve0)
			}
			if balance1.Amount.LT(pool.Reserve1) {
				count++
				msg += fmt.Sprintf("pool %d: balance for %s (%s) < reserve (%s)\n",
					pool.Id, pool.Token1, balance1.Amount, pool.Reserve1)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "pool-backing",
			fmt.Sprintf("found %d pools with reserve > balance\n%s", count, msg),
		), broken
	}
}

// ShareSupplyInvariant checks that each pool's recorded share supply equals
// the sum of all share positions in that pool
func ShareSupplyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "share-supply", err.Error()), true
		}
		for _, pool := range pools {
			sum := math.ZeroInt()
			k.IterateShares(ctx, pool.Id, func(_ sdk.AccAddress, shares math.Int) bool {
				sum = sum.Add(shares)
				return false
			})
			if !sum.Equal(pool.TotalShares) {
				count++
				msg += fmt.Sprintf("pool %d: sum of positions (%s) != total shares (%s)\n",
					pool.Id, sum, pool.TotalShares)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "share-supply",
			fmt.Sprintf("found %d pools with inconsistent share supply\n%s", count, msg),
		), broken
	}
}

// PoolStateInvariant checks structural validity of every pool record
func PoolStateInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "pool-state", err.Error()), true
		}
		poolCount := k.GetPoolCount(ctx)
		for _, pool := range pools {
			if err := pool.Validate(); err != nil {
				count++
				msg += fmt.Sprintf("pool %d: %v\n", pool.Id, err)
			}
			if pool.Id == 0 || pool.Id > poolCount {
				count++
				msg += fmt.Sprintf("pool %d: id out of range (count %d)\n", pool.Id, poolCount)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "pool-state",
			fmt.Sprintf("found %d invalid pools\n%s", count, msg),
		), broken
	}
}

// UnlockedPoolsInvariant checks that no pool is left locked between
// transactions. A lock surviving its transaction would brick the pool.
func UnlockedPoolsInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		store := k.getStore(ctx)
		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "unlocked-pools", err.Error()), true
		}
		for _, pool := range pools {
			if store.Has(types.LockKey(pool.Id)) {
				count++
				msg += fmt.Sprintf("pool %d: reentrancy lock still held\n", pool.Id)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "unlocked-pools",
			fmt.Sprintf("found %d locked pools\n%s", count, msg),
		), broken
	}
}
