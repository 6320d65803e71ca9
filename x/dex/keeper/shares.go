package keeper

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	dexmath "github.com/dexchain/dexchain/x/dex/math"
	"github.com/dexchain/dexchain/x/dex/types"
)

// LP shares are tracked in the module store rather than as bank coins. Each
// position is a bare math.Int keyed by pool id and holder address.

// GetShares returns holder's LP share balance in the pool
func (k Keeper) GetShares(ctx context.Context, poolID uint64, holder sdk.AccAddress) sdkmath.Int {
	store := k.getStore(ctx)
	bz := store.Get(types.SharesKey(poolID, holder))
	if bz == nil {
		return sdkmath.ZeroInt()
	}

	var shares sdkmath.Int
	if err := shares.Unmarshal(bz); err != nil {
		return sdkmath.ZeroInt()
	}
	return shares
}

func (k Keeper) setShares(ctx context.Context, poolID uint64, holder sdk.AccAddress, shares sdkmath.Int) error {
	store := k.getStore(ctx)
	key := types.SharesKey(poolID, holder)

	if shares.IsZero() {
		store.Delete(key)
		return nil
	}

	bz, err := shares.Marshal()
	if err != nil {
		return fmt.Errorf("setShares: marshal: %w", err)
	}
	store.Set(key, bz)
	return nil
}

// mintShares credits newly minted LP shares to holder and grows the pool's
// total supply. The caller persists the pool.
func (k Keeper) mintShares(ctx context.Context, pool *types.Pool, holder sdk.AccAddress, shares sdkmath.Int) error {
	balance, err := dexmath.SafeAdd(k.GetShares(ctx, pool.Id, holder), shares)
	if err != nil {
		return err
	}
	total, err := dexmath.SafeAdd(pool.TotalShares, shares)
	if err != nil {
		return err
	}
	if err := k.setShares(ctx, pool.Id, holder, balance); err != nil {
		return err
	}
	pool.TotalShares = total
	return nil
}

// burnShares debits LP shares from holder and shrinks the pool's total
// supply. The caller persists the pool.
func (k Keeper) burnShares(ctx context.Context, pool *types.Pool, holder sdk.AccAddress, shares sdkmath.Int) error {
	balance, err := dexmath.SafeSub(k.GetShares(ctx, pool.Id, holder), shares)
	if err != nil {
		return types.ErrInsufficientLiquidityBurned.Wrapf("holder %s has fewer than %s shares", holder, shares)
	}
	total, err := dexmath.SafeSub(pool.TotalShares, shares)
	if err != nil {
		return err
	}
	if err := k.setShares(ctx, pool.Id, holder, balance); err != nil {
		return err
	}
	pool.TotalShares = total
	return nil
}

// TransferShares moves LP shares between holders without touching reserves
func (k Keeper) TransferShares(ctx context.Context, poolID uint64, from, to sdk.AccAddress, shares sdkmath.Int) error {
	if !shares.IsPositive() {
		return types.ErrInsufficientAmount.Wrap("share amount must be positive")
	}
	if to.Empty() {
		return types.ErrZeroAddress.Wrap("recipient cannot be empty")
	}

	fromBalance, err := dexmath.SafeSub(k.GetShares(ctx, poolID, from), shares)
	if err != nil {
		return types.ErrInsufficientAmount.Wrapf("holder %s has fewer than %s shares", from, shares)
	}
	toBalance, err := dexmath.SafeAdd(k.GetShares(ctx, poolID, to), shares)
	if err != nil {
		return err
	}
	if err := k.setShares(ctx, poolID, from, fromBalance); err != nil {
		return err
	}
	return k.setShares(ctx, poolID, to, toBalance)
}

// GetAllowance returns the LP shares spender may move out of owner's position
func (k Keeper) GetAllowance(ctx context.Context, poolID uint64, owner, spender sdk.AccAddress) sdkmath.Int {
	store := k.getStore(ctx)
	bz := store.Get(types.AllowanceKey(poolID, owner, spender))
	if bz == nil {
		return sdkmath.ZeroInt()
	}

	var allowance sdkmath.Int
	if err := allowance.Unmarshal(bz); err != nil {
		return sdkmath.ZeroInt()
	}
	return allowance
}

// ApproveShares sets spender's allowance over owner's LP shares, replacing
// any previous value
func (k Keeper) ApproveShares(ctx context.Context, poolID uint64, owner, spender sdk.AccAddress, shares sdkmath.Int) error {
	if shares.IsNil() || shares.IsNegative() {
		return types.ErrInsufficientAmount.Wrap("allowance cannot be negative")
	}
	if spender.Empty() {
		return types.ErrZeroAddress.Wrap("spender cannot be empty")
	}

	store := k.getStore(ctx)
	key := types.AllowanceKey(poolID, owner, spender)
	if shares.IsZero() {
		store.Delete(key)
		return nil
	}

	bz, err := shares.Marshal()
	if err != nil {
		return fmt.Errorf("ApproveShares: marshal: %w", err)
	}
	store.Set(key, bz)
	return nil
}

// TransferSharesFrom moves LP shares from owner to recipient on behalf of
// spender, consuming allowance
func (k Keeper) TransferSharesFrom(ctx context.Context, poolID uint64, spender, owner, to sdk.AccAddress, shares sdkmath.Int) error {
	if !shares.IsPositive() {
		return types.ErrInsufficientAmount.Wrap("share amount must be positive")
	}

	allowance := k.GetAllowance(ctx, poolID, owner, spender)
	remaining, err := dexmath.SafeSub(allowance, shares)
	if err != nil {
		return types.ErrUnauthorized.Wrapf("spender %s allowance %s below %s", spender, allowance, shares)
	}
	if err := k.TransferShares(ctx, poolID, owner, to, shares); err != nil {
		return err
	}
	return k.ApproveShares(ctx, poolID, owner, spender, remaining)
}

// IterateAllowances calls fn for every allowance in a pool, stopping early
// when fn returns true. Owner and spender are recovered from the
// length-prefixed key segments.
func (k Keeper) IterateAllowances(ctx context.Context, poolID uint64, fn func(owner, spender sdk.AccAddress, amount sdkmath.Int) bool) {
	store := k.getStore(ctx)
	prefix := types.AllowancePoolPrefix(poolID)
	iterator := store.Iterator(prefix, storetypes.PrefixEndBytes(prefix))
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		rest := iterator.Key()[len(prefix):]
		ownerLen := int(rest[0])
		owner := sdk.AccAddress(rest[1 : 1+ownerLen])
		spenderLen := int(rest[1+ownerLen])
		spender := sdk.AccAddress(rest[2+ownerLen : 2+ownerLen+spenderLen])

		var amount sdkmath.Int
		if err := amount.Unmarshal(iterator.Value()); err != nil {
			continue
		}
		if fn(owner, spender, amount) {
			break
		}
	}
}

// IterateShares calls fn for every share position in a pool, stopping early
// when fn returns true
func (k Keeper) IterateShares(ctx context.Context, poolID uint64, fn func(holder sdk.AccAddress, shares sdkmath.Int) bool) {
	store := k.getStore(ctx)
	prefix := types.SharesPoolPrefix(poolID)
	iterator := store.Iterator(prefix, storetypes.PrefixEndBytes(prefix))
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		holder := sdk.AccAddress(iterator.Key()[len(prefix):])
		var shares sdkmath.Int
		if err := shares.Unmarshal(iterator.Value()); err != nil {
			continue
		}
		if fn(holder, shares) {
			break
		}
	}
}
