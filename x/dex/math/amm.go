package dexmath

import (
	sdkmath "cosmossdk.io/math"

	"github.com/dexchain/dexchain/x/dex/types"
)

const (
	// FeeDenominator is the base for permille fee calculations
	FeeDenominator = 1000

	// MinimumLiquidityShares is burned to a dead position on first mint so a
	// pool's share supply can never return to zero
	MinimumLiquidityShares = 1000
)

// Quote returns the amount of token B equivalent in value to amountA at the
// current reserve ratio: amountA * reserveB / reserveA.
func Quote(amountA, reserveA, reserveB sdkmath.Int) (sdkmath.Int, error) {
	if !amountA.IsPositive() {
		return sdkmath.Int{}, types.ErrInsufficientAmount
	}
	if !reserveA.IsPositive() || !reserveB.IsPositive() {
		return sdkmath.Int{}, types.ErrInsufficientLiquidity
	}
	return SafeMulDiv(amountA, reserveB, reserveA)
}

// GetAmountOut returns the maximum output for a given input against a single
// pool, after deducting the swap fee from the input:
//
//	out = in*fee*reserveOut / (reserveIn*1000 + in*fee)
//
// feeNumerator is the portion of the input that trades, e.g. 997 for a 0.3%
// fee. Rounds down, favoring the pool.
func GetAmountOut(amountIn, reserveIn, reserveOut sdkmath.Int, feeNumerator uint64) (sdkmath.Int, error) {
	if !amountIn.IsPositive() {
		return sdkmath.Int{}, types.ErrInsufficientInputAmount
	}
	if !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return sdkmath.Int{}, types.ErrInsufficientLiquidity
	}
	if feeNumerator == 0 || feeNumerator > FeeDenominator {
		return sdkmath.Int{}, types.ErrInvalidFee
	}

	amountInWithFee, err := SafeMul(amountIn, sdkmath.NewIntFromUint64(feeNumerator))
	if err != nil {
		return sdkmath.Int{}, err
	}
	numerator, err := SafeMul(amountInWithFee, reserveOut)
	if err != nil {
		return sdkmath.Int{}, err
	}
	scaledReserve, err := SafeMul(reserveIn, sdkmath.NewInt(FeeDenominator))
	if err != nil {
		return sdkmath.Int{}, err
	}
	denominator, err := SafeAdd(scaledReserve, amountInWithFee)
	if err != nil {
		return sdkmath.Int{}, err
	}
	return SafeDiv(numerator, denominator)
}

// GetAmountIn returns the minimum input required to receive a given output
// from a single pool:
//
//	in = reserveIn*out*1000 / ((reserveOut - out)*fee) + 1
//
// Rounds up, favoring the pool.
func GetAmountIn(amountOut, reserveIn, reserveOut sdkmath.Int, feeNumerator uint64) (sdkmath.Int, error) {
	if !amountOut.IsPositive() {
		return sdkmath.Int{}, types.ErrInsufficientOutputAmount
	}
	if !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return sdkmath.Int{}, types.ErrInsufficientLiquidity
	}
	if reserveOut.LTE(amountOut) {
		return sdkmath.Int{}, types.ErrInsufficientLiquidity.Wrapf("output %s exceeds reserve %s", amountOut, reserveOut)
	}
	if feeNumerator == 0 || feeNumerator > FeeDenominator {
		return sdkmath.Int{}, types.ErrInvalidFee
	}

	scaledIn, err := SafeMul(reserveIn, amountOut)
	if err != nil {
		return sdkmath.Int{}, err
	}
	numerator, err := SafeMul(scaledIn, sdkmath.NewInt(FeeDenominator))
	if err != nil {
		return sdkmath.Int{}, err
	}
	remaining, err := SafeSub(reserveOut, amountOut)
	if err != nil {
		return sdkmath.Int{}, err
	}
	denominator, err := SafeMul(remaining, sdkmath.NewIntFromUint64(feeNumerator))
	if err != nil {
		return sdkmath.Int{}, err
	}
	quotient, err := SafeDiv(numerator, denominator)
	if err != nil {
		return sdkmath.Int{}, err
	}
	return SafeAdd(quotient, sdkmath.OneInt())
}

// CalculateInitialLiquidity returns the shares minted for the first deposit
// into a pool: sqrt(amount0 * amount1) minus the permanently locked minimum.
func CalculateInitialLiquidity(amount0, amount1 sdkmath.Int) (sdkmath.Int, error) {
	product, err := SafeMul(amount0, amount1)
	if err != nil {
		return sdkmath.Int{}, err
	}
	root, err := Sqrt(product)
	if err != nil {
		return sdkmath.Int{}, err
	}
	minimum := sdkmath.NewInt(MinimumLiquidityShares)
	if root.LTE(minimum) {
		return sdkmath.Int{}, types.ErrInsufficientLiquidityMinted.Wrapf("initial deposit too small: sqrt %s", root)
	}
	return root.Sub(minimum), nil
}

// CalculateProportionalLiquidity returns the shares minted for a follow-up
// deposit: the lesser of the two per-token proportional claims, so unbalanced
// deposits are priced at the worse ratio.
func CalculateProportionalLiquidity(amount0, amount1, reserve0, reserve1, totalShares sdkmath.Int) (sdkmath.Int, error) {
	shares0, err := SafeMulDiv(amount0, totalShares, reserve0)
	if err != nil {
		return sdkmath.Int{}, err
	}
	shares1, err := SafeMulDiv(amount1, totalShares, reserve1)
	if err != nil {
		return sdkmath.Int{}, err
	}
	return sdkmath.MinInt(shares0, shares1), nil
}

// CalculateBurnAmounts returns the pro-rata share of each reserve redeemed by
// burning liquidity shares. Both amounts round down.
func CalculateBurnAmounts(liquidity, reserve0, reserve1, totalShares sdkmath.Int) (sdkmath.Int, sdkmath.Int, error) {
	if !totalShares.IsPositive() {
		return sdkmath.Int{}, sdkmath.Int{}, types.ErrInsufficientLiquidity
	}
	amount0, err := SafeMulDiv(liquidity, reserve0, totalShares)
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	amount1, err := SafeMulDiv(liquidity, reserve1, totalShares)
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	return amount0, amount1, nil
}
