package types_test

import (
	"testing"

	errorsmod "cosmossdk.io/errors"
	"github.com/stretchr/testify/require"

	"github.com/dexchain/dexchain/x/dex/types"
)

// TestErrorCodes_Stable pins the registered ABCI code of every module error.
// Clients match on these codes, so they must never change.
func TestErrorCodes_Stable(t *testing.T) {
	cases := []struct {
		err  *errorsmod.Error
		code uint32
	}{
		{types.ErrInsufficientLiquidity, 1},
		{types.ErrInsufficientInputAmount, 2},
		{types.ErrInsufficientOutputAmount, 3},
		{types.ErrInvalidPair, 4},
		{types.ErrPairExists, 5},
		{types.ErrPairNotFound, 6},
		{types.ErrZeroAddress, 7},
		{types.ErrIdenticalAddresses, 8},
		{types.ErrInsufficientAmount, 9},
		{types.ErrTransferFailed, 10},
		{types.ErrDeadlineExpired, 11},
		{types.ErrExcessiveSlippage, 12},
		{types.ErrOverflow, 13},
		{types.ErrUnderflow, 14},
		{types.ErrDivisionByZero, 15},
		{types.ErrUnauthorized, 16},
		{types.ErrInvalidPath, 17},
		{types.ErrKInvariantViolated, 18},
		{types.ErrInsufficientLiquidityMinted, 19},
		{types.ErrInsufficientLiquidityBurned, 20},
		{types.ErrLocked, 21},
		{types.ErrInvalidFee, 22},
	}

	for _, tc := range cases {
		require.Equal(t, tc.code, tc.err.ABCICode(), "error %v", tc.err)
		require.Equal(t, types.ModuleName, tc.err.Codespace())
	}
}

// TestErrorWrap_PreservesIdentity tests wrapped errors still match their
// sentinel via errors.Is
func TestErrorWrap_PreservesIdentity(t *testing.T) {
	wrapped := types.ErrLocked.Wrapf("pool %d is locked", 7)
	require.ErrorIs(t, wrapped, types.ErrLocked)
	require.NotErrorIs(t, wrapped, types.ErrPairNotFound)
}
