package keeper

import (
	"context"
	"fmt"
	"math/big"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	dexmath "github.com/dexchain/dexchain/x/dex/math"
	"github.com/dexchain/dexchain/x/dex/types"
)

// PricePrecision scales the spot price and cumulative price accumulators so
// they stay in integer arithmetic.
var PricePrecision = sdkmath.NewIntWithDecimal(1, 18)

// Mint credits LP shares for tokens already transferred to the pool account.
// Deposits are inferred from the difference between the pool's bank balances
// and its recorded reserves. The first mint burns the minimum liquidity to a
// dead position; follow-up mints price the deposit at the worse of the two
// per-token ratios.
func (k Keeper) Mint(ctx context.Context, poolID uint64, to sdk.AccAddress) (sdkmath.Int, error) {
	var minted sdkmath.Int
	err := k.withPoolLock(ctx, poolID, func() error {
		pool, err := k.GetPool(ctx, poolID)
		if err != nil {
			return err
		}
		if to.Empty() {
			return types.ErrZeroAddress.Wrap("mint recipient cannot be empty")
		}

		balance0 := k.PoolBalance(ctx, poolID, pool.Token0).Amount
		balance1 := k.PoolBalance(ctx, poolID, pool.Token1).Amount
		amount0, err := dexmath.SafeSub(balance0, pool.Reserve0)
		if err != nil {
			return err
		}
		amount1, err := dexmath.SafeSub(balance1, pool.Reserve1)
		if err != nil {
			return err
		}

		if pool.TotalShares.IsZero() {
			minted, err = dexmath.CalculateInitialLiquidity(amount0, amount1)
			if err != nil {
				return err
			}
			lockForever := sdkmath.NewInt(dexmath.MinimumLiquidityShares)
			if err := k.mintShares(ctx, &pool, types.LockedSharesAddress, lockForever); err != nil {
				return err
			}
		} else {
			minted, err = dexmath.CalculateProportionalLiquidity(amount0, amount1, pool.Reserve0, pool.Reserve1, pool.TotalShares)
			if err != nil {
				return err
			}
		}
		if !minted.IsPositive() {
			return types.ErrInsufficientLiquidityMinted
		}

		if err := k.mintShares(ctx, &pool, to, minted); err != nil {
			return err
		}
		if err := k.updateReserves(ctx, &pool, balance0, balance1); err != nil {
			return err
		}
		pool.KLast, err = dexmath.SafeMul(pool.Reserve0, pool.Reserve1)
		if err != nil {
			return err
		}
		if err := k.SetPool(ctx, pool); err != nil {
			return err
		}

		sdkCtx := sdk.UnwrapSDKContext(ctx)
		sdkCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeLiquidityAdded,
				sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
				sdk.NewAttribute(types.AttributeKeyProvider, to.String()),
				sdk.NewAttribute(types.AttributeKeyAmount0, amount0.String()),
				sdk.NewAttribute(types.AttributeKeyAmount1, amount1.String()),
				sdk.NewAttribute(types.AttributeKeyLiquidity, minted.String()),
			),
		)
		k.recordLiquidityMetrics(pool, amount0, amount1, true)
		return nil
	})
	if err != nil {
		return sdkmath.Int{}, err
	}
	return minted, nil
}

// Burn redeems the LP shares held by the pool account for a pro-rata cut of
// both reserves, paying the tokens out to the recipient. Callers transfer
// shares to the pool account first.
func (k Keeper) Burn(ctx context.Context, poolID uint64, to sdk.AccAddress) (sdkmath.Int, sdkmath.Int, error) {
	var amount0, amount1 sdkmath.Int
	err := k.withPoolLock(ctx, poolID, func() error {
		pool, err := k.GetPool(ctx, poolID)
		if err != nil {
			return err
		}
		if to.Empty() {
			return types.ErrZeroAddress.Wrap("burn recipient cannot be empty")
		}

		poolAddr := types.PoolAddress(poolID)
		liquidity := k.GetShares(ctx, poolID, poolAddr)

		amount0, amount1, err = dexmath.CalculateBurnAmounts(liquidity, pool.Reserve0, pool.Reserve1, pool.TotalShares)
		if err != nil {
			return err
		}
		if !amount0.IsPositive() || !amount1.IsPositive() {
			return types.ErrInsufficientLiquidityBurned
		}

		if err := k.burnShares(ctx, &pool, poolAddr, liquidity); err != nil {
			return err
		}

		payout := sdk.NewCoins(
			sdk.NewCoin(pool.Token0, amount0),
			sdk.NewCoin(pool.Token1, amount1),
		)
		if err := k.bankKeeper.SendCoins(ctx, poolAddr, to, payout); err != nil {
			return types.ErrTransferFailed.Wrapf("burn payout: %v", err)
		}

		balance0 := k.PoolBalance(ctx, poolID, pool.Token0).Amount
		balance1 := k.PoolBalance(ctx, poolID, pool.Token1).Amount
		if err := k.updateReserves(ctx, &pool, balance0, balance1); err != nil {
			return err
		}
		pool.KLast, err = dexmath.SafeMul(pool.Reserve0, pool.Reserve1)
		if err != nil {
			return err
		}
		if err := k.SetPool(ctx, pool); err != nil {
			return err
		}

		sdkCtx := sdk.UnwrapSDKContext(ctx)
		sdkCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeLiquidityRemoved,
				sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
				sdk.NewAttribute(types.AttributeKeyProvider, to.String()),
				sdk.NewAttribute(types.AttributeKeyAmount0, amount0.String()),
				sdk.NewAttribute(types.AttributeKeyAmount1, amount1.String()),
				sdk.NewAttribute(types.AttributeKeyLiquidity, liquidity.String()),
			),
		)
		k.recordLiquidityMetrics(pool, amount0, amount1, false)
		return nil
	})
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	return amount0, amount1, nil
}

// Swap pays out the requested amounts optimistically, then verifies that
// enough input arrived by checking the fee-adjusted constant product against
// the pre-swap reserves. Inputs are whatever the pool received beyond the
// reserves it is owed after the payout.
func (k Keeper) Swap(ctx context.Context, poolID uint64, sender sdk.AccAddress, amount0Out, amount1Out sdkmath.Int, to sdk.AccAddress) error {
	return k.withPoolLock(ctx, poolID, func() error {
		pool, err := k.GetPool(ctx, poolID)
		if err != nil {
			return err
		}
		if amount0Out.IsNil() || amount1Out.IsNil() || amount0Out.IsNegative() || amount1Out.IsNegative() {
			return types.ErrInsufficientOutputAmount.Wrap("output amounts cannot be negative")
		}
		if !amount0Out.IsPositive() && !amount1Out.IsPositive() {
			return types.ErrInsufficientOutputAmount
		}
		if amount0Out.GTE(pool.Reserve0) || amount1Out.GTE(pool.Reserve1) {
			return types.ErrInsufficientLiquidity.Wrap("output exceeds reserves")
		}

		poolAddr := types.PoolAddress(poolID)
		if to.Empty() {
			return types.ErrZeroAddress.Wrap("swap recipient cannot be empty")
		}
		if to.Equals(poolAddr) {
			return types.ErrInvalidPair.Wrap("swap recipient cannot be the pool itself")
		}

		var payout sdk.Coins
		if amount0Out.IsPositive() {
			payout = payout.Add(sdk.NewCoin(pool.Token0, amount0Out))
		}
		if amount1Out.IsPositive() {
			payout = payout.Add(sdk.NewCoin(pool.Token1, amount1Out))
		}
		if err := k.bankKeeper.SendCoins(ctx, poolAddr, to, payout); err != nil {
			return types.ErrTransferFailed.Wrapf("swap payout: %v", err)
		}

		balance0 := k.PoolBalance(ctx, poolID, pool.Token0).Amount
		balance1 := k.PoolBalance(ctx, poolID, pool.Token1).Amount

		amount0In := swapInputAmount(balance0, pool.Reserve0, amount0Out)
		amount1In := swapInputAmount(balance1, pool.Reserve1, amount1Out)
		if !amount0In.IsPositive() && !amount1In.IsPositive() {
			return types.ErrInsufficientInputAmount
		}

		params, err := k.GetParams(ctx)
		if err != nil {
			return err
		}
		if err := checkSwapInvariant(pool, balance0, balance1, amount0In, amount1In, params.SwapFeePermille); err != nil {
			return err
		}

		if err := k.updateReserves(ctx, &pool, balance0, balance1); err != nil {
			return err
		}
		if err := k.SetPool(ctx, pool); err != nil {
			return err
		}

		sdkCtx := sdk.UnwrapSDKContext(ctx)
		sdkCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeSwap,
				sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", poolID)),
				sdk.NewAttribute(types.AttributeKeySender, sender.String()),
				sdk.NewAttribute(types.AttributeKeyTo, to.String()),
				sdk.NewAttribute(types.AttributeKeyAmount0In, amount0In.String()),
				sdk.NewAttribute(types.AttributeKeyAmount1In, amount1In.String()),
				sdk.NewAttribute(types.AttributeKeyAmount0Out, amount0Out.String()),
				sdk.NewAttribute(types.AttributeKeyAmount1Out, amount1Out.String()),
			),
		)
		return nil
	})
}

// swapInputAmount infers how much of one token flowed into the pool during a
// swap: the excess of the observed balance over the reserve the pool is owed
// after paying the output.
func swapInputAmount(balance, reserve, amountOut sdkmath.Int) sdkmath.Int {
	owed := reserve.Sub(amountOut)
	if balance.GT(owed) {
		return balance.Sub(owed)
	}
	return sdkmath.ZeroInt()
}

// checkSwapInvariant verifies the fee-adjusted constant product:
//
//	(b0*1000 - in0*fee)(b1*1000 - in1*fee) >= r0*r1*1000^2
//
// with fee in permille. Scaling both sides by 1000 charges the fee on the
// input without leaving integer arithmetic.
func checkSwapInvariant(pool types.Pool, balance0, balance1, amount0In, amount1In sdkmath.Int, feePermille uint64) error {
	scale := sdkmath.NewInt(dexmath.FeeDenominator)
	fee := sdkmath.NewIntFromUint64(feePermille)

	adjusted0, err := feeAdjustedBalance(balance0, amount0In, scale, fee)
	if err != nil {
		return err
	}
	adjusted1, err := feeAdjustedBalance(balance1, amount1In, scale, fee)
	if err != nil {
		return err
	}

	required, err := dexmath.SafeMul(pool.Reserve0, pool.Reserve1)
	if err != nil {
		return err
	}
	required, err = dexmath.SafeMul(required, scale)
	if err != nil {
		return err
	}
	required, err = dexmath.SafeMul(required, scale)
	if err != nil {
		return err
	}

	product, err := dexmath.SafeMul(adjusted0, adjusted1)
	if err != nil {
		return err
	}
	if product.LT(required) {
		return types.ErrKInvariantViolated.Wrapf(
			"adjusted product %s below required %s", product, required)
	}
	return nil
}

// feeAdjustedBalance computes balance*scale - amountIn*fee with checked
// arithmetic.
func feeAdjustedBalance(balance, amountIn, scale, fee sdkmath.Int) (sdkmath.Int, error) {
	scaled, err := dexmath.SafeMul(balance, scale)
	if err != nil {
		return sdkmath.Int{}, err
	}
	charged, err := dexmath.SafeMul(amountIn, fee)
	if err != nil {
		return sdkmath.Int{}, err
	}
	return dexmath.SafeSub(scaled, charged)
}

// Skim transfers any excess of the pool's bank balances over its recorded
// reserves to the recipient, restoring balance/reserve agreement without
// touching the reserves.
func (k Keeper) Skim(ctx context.Context, poolID uint64, to sdk.AccAddress) error {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return err
	}
	if to.Empty() {
		return types.ErrZeroAddress.Wrap("skim recipient cannot be empty")
	}

	balance0 := k.PoolBalance(ctx, poolID, pool.Token0).Amount
	balance1 := k.PoolBalance(ctx, poolID, pool.Token1).Amount
	excess0, err := dexmath.SafeSub(balance0, pool.Reserve0)
	if err != nil {
		return err
	}
	excess1, err := dexmath.SafeSub(balance1, pool.Reserve1)
	if err != nil {
		return err
	}

	var excess sdk.Coins
	if excess0.IsPositive() {
		excess = excess.Add(sdk.NewCoin(pool.Token0, excess0))
	}
	if excess1.IsPositive() {
		excess = excess.Add(sdk.NewCoin(pool.Token1, excess1))
	}
	if excess.IsZero() {
		return nil
	}
	if err := k.bankKeeper.SendCoins(ctx, types.PoolAddress(poolID), to, excess); err != nil {
		return types.ErrTransferFailed.Wrapf("skim payout: %v", err)
	}
	return nil
}

// Sync force-updates the recorded reserves to the pool's actual bank
// balances. The counterpart to Skim for when the reserves should follow the
// balances instead.
func (k Keeper) Sync(ctx context.Context, poolID uint64) error {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return err
	}

	balance0 := k.PoolBalance(ctx, poolID, pool.Token0).Amount
	balance1 := k.PoolBalance(ctx, poolID, pool.Token1).Amount
	if err := k.updateReserves(ctx, &pool, balance0, balance1); err != nil {
		return err
	}
	return k.SetPool(ctx, pool)
}

// GetTotalShares returns the pool's outstanding LP share supply
func (k Keeper) GetTotalShares(ctx context.Context, poolID uint64) (sdkmath.Int, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return sdkmath.Int{}, err
	}
	return pool.TotalShares, nil
}

// GetPrice0 returns the spot price of token0 in units of token1, scaled by
// PricePrecision
func (k Keeper) GetPrice0(ctx context.Context, poolID uint64) (sdkmath.Int, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if !pool.Reserve0.IsPositive() {
		return sdkmath.Int{}, types.ErrInsufficientLiquidity.Wrapf("pool %d has no %s reserve", poolID, pool.Token0)
	}
	return dexmath.SafeMulDiv(pool.Reserve1, PricePrecision, pool.Reserve0)
}

// GetPrice1 returns the spot price of token1 in units of token0, scaled by
// PricePrecision
func (k Keeper) GetPrice1(ctx context.Context, poolID uint64) (sdkmath.Int, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if !pool.Reserve1.IsPositive() {
		return sdkmath.Int{}, types.ErrInsufficientLiquidity.Wrapf("pool %d has no %s reserve", poolID, pool.Token1)
	}
	return dexmath.SafeMulDiv(pool.Reserve0, PricePrecision, pool.Reserve1)
}

// updateReserves sets the pool's reserves to the given balances, rolling the
// cumulative price accumulators forward over the time elapsed since the last
// update. Emits a sync event with the new reserves.
func (k Keeper) updateReserves(ctx context.Context, pool *types.Pool, balance0, balance1 sdkmath.Int) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	blockTime := uint64(sdkCtx.BlockTime().Unix())

	if blockTime > pool.BlockTimestampLast && pool.Reserve0.IsPositive() && pool.Reserve1.IsPositive() {
		elapsed := sdkmath.NewIntFromUint64(blockTime - pool.BlockTimestampLast)

		price0, err := dexmath.SafeMulDiv(pool.Reserve1, PricePrecision, pool.Reserve0)
		if err != nil {
			return err
		}
		price1, err := dexmath.SafeMulDiv(pool.Reserve0, PricePrecision, pool.Reserve1)
		if err != nil {
			return err
		}
		accrued0, err := dexmath.SafeMul(price0, elapsed)
		if err != nil {
			return err
		}
		accrued1, err := dexmath.SafeMul(price1, elapsed)
		if err != nil {
			return err
		}
		pool.Price0CumulativeLast, err = dexmath.SafeAdd(pool.Price0CumulativeLast, accrued0)
		if err != nil {
			return err
		}
		pool.Price1CumulativeLast, err = dexmath.SafeAdd(pool.Price1CumulativeLast, accrued1)
		if err != nil {
			return err
		}
	}

	pool.Reserve0 = balance0
	pool.Reserve1 = balance1
	pool.BlockTimestampLast = blockTime

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSync,
			sdk.NewAttribute(types.AttributeKeyPoolID, fmt.Sprintf("%d", pool.Id)),
			sdk.NewAttribute(types.AttributeKeyReserve0, balance0.String()),
			sdk.NewAttribute(types.AttributeKeyReserve1, balance1.String()),
		),
	)
	return nil
}

func (k Keeper) recordLiquidityMetrics(pool types.Pool, amount0, amount1 sdkmath.Int, added bool) {
	m := GetMetrics()
	poolLabel := fmt.Sprintf("%d", pool.Id)

	counter := m.LiquidityAdded
	if !added {
		counter = m.LiquidityRemoved
	}
	counter.WithLabelValues(poolLabel, pool.Token0).Add(approxFloat(amount0))
	counter.WithLabelValues(poolLabel, pool.Token1).Add(approxFloat(amount1))

	m.PoolReserves.WithLabelValues(poolLabel, pool.Token0).Set(approxFloat(pool.Reserve0))
	m.PoolReserves.WithLabelValues(poolLabel, pool.Token1).Set(approxFloat(pool.Reserve1))
	m.ShareSupply.WithLabelValues(poolLabel).Set(approxFloat(pool.TotalShares))
}

// approxFloat converts an amount for metric export. Precision loss is fine
// here; metrics are observational only.
func approxFloat(v sdkmath.Int) float64 {
	f, _ := new(big.Float).SetInt(v.BigInt()).Float64()
	return f
}
