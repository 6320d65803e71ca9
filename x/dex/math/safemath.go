// Package dexmath provides overflow-checked integer arithmetic and the
// constant-product pricing formulas used by the dex module. All amounts are
// bounded to 256 bits so results stay representable on chain.
package dexmath

import (
	"math/big"

	sdkmath "cosmossdk.io/math"

	"github.com/dexchain/dexchain/x/dex/types"
)

var maxValue = new(big.Int).Exp(big.NewInt(2), big.NewInt(256), nil)

func checkRange(result *big.Int) (sdkmath.Int, error) {
	if result.Cmp(maxValue) >= 0 {
		return sdkmath.Int{}, types.ErrOverflow.Wrap("result exceeds maximum value")
	}
	return sdkmath.NewIntFromBigInt(result), nil
}

// SafeAdd adds two math.Int values with overflow checking
func SafeAdd(a, b sdkmath.Int) (sdkmath.Int, error) {
	result := new(big.Int).Add(a.BigInt(), b.BigInt())
	return checkRange(result)
}

// SafeSub subtracts two math.Int values with underflow checking
func SafeSub(a, b sdkmath.Int) (sdkmath.Int, error) {
	if a.LT(b) {
		return sdkmath.Int{}, types.ErrUnderflow.Wrapf("cannot subtract %s from %s", b.String(), a.String())
	}
	result := new(big.Int).Sub(a.BigInt(), b.BigInt())
	return sdkmath.NewIntFromBigInt(result), nil
}

// SafeMul multiplies two math.Int values with overflow checking
func SafeMul(a, b sdkmath.Int) (sdkmath.Int, error) {
	if a.IsZero() || b.IsZero() {
		return sdkmath.ZeroInt(), nil
	}
	result := new(big.Int).Mul(a.BigInt(), b.BigInt())
	return checkRange(result)
}

// SafeDiv divides two math.Int values with division by zero checking.
// The quotient truncates toward zero.
func SafeDiv(a, b sdkmath.Int) (sdkmath.Int, error) {
	if b.IsZero() {
		return sdkmath.Int{}, types.ErrDivisionByZero
	}
	result := new(big.Int).Quo(a.BigInt(), b.BigInt())
	return sdkmath.NewIntFromBigInt(result), nil
}

// SafeMulDiv performs (a * b) / c with overflow protection on the
// intermediate product. Used throughout the pricing formulas.
func SafeMulDiv(a, b, c sdkmath.Int) (sdkmath.Int, error) {
	if c.IsZero() {
		return sdkmath.Int{}, types.ErrDivisionByZero
	}

	intermediate := new(big.Int).Mul(a.BigInt(), b.BigInt())
	if intermediate.Cmp(maxValue) >= 0 {
		return sdkmath.Int{}, types.ErrOverflow.Wrap("multiplication step exceeds maximum value")
	}

	result := new(big.Int).Quo(intermediate, c.BigInt())
	return sdkmath.NewIntFromBigInt(result), nil
}

// Sqrt returns the integer square root of a, rounded down.
func Sqrt(a sdkmath.Int) (sdkmath.Int, error) {
	if a.IsNegative() {
		return sdkmath.Int{}, types.ErrUnderflow.Wrap("square root of negative value")
	}
	result := new(big.Int).Sqrt(a.BigInt())
	return sdkmath.NewIntFromBigInt(result), nil
}
