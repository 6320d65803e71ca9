package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"cosmossdk.io/math"
)

// Message type names
const (
	TypeMsgAddLiquidity             = "add_liquidity"
	TypeMsgRemoveLiquidity          = "remove_liquidity"
	TypeMsgSwapExactTokensForTokens = "swap_exact_tokens_for_tokens"
	TypeMsgSwapTokensForExactTokens = "swap_tokens_for_exact_tokens"
)

// Ensure all message types implement the sdk.Msg interface
var (
	_ sdk.Msg = &MsgAddLiquidity{}
	_ sdk.Msg = &MsgRemoveLiquidity{}
	_ sdk.Msg = &MsgSwapExactTokensForTokens{}
	_ sdk.Msg = &MsgSwapTokensForExactTokens{}
)

func validateAddresses(addrs ...string) error {
	for _, a := range addrs {
		if a == "" {
			return ErrZeroAddress.Wrap("address cannot be empty")
		}
		if _, err := sdk.AccAddressFromBech32(a); err != nil {
			return ErrZeroAddress.Wrapf("invalid address %q: %v", a, err)
		}
	}
	return nil
}

func validatePair(tokenA, tokenB string) error {
	if tokenA == "" || tokenB == "" {
		return ErrZeroAddress.Wrap("token denom cannot be empty")
	}
	if err := sdk.ValidateDenom(tokenA); err != nil {
		return ErrInvalidPair.Wrapf("invalid denom %q: %v", tokenA, err)
	}
	if err := sdk.ValidateDenom(tokenB); err != nil {
		return ErrInvalidPair.Wrapf("invalid denom %q: %v", tokenB, err)
	}
	if tokenA == tokenB {
		return ErrIdenticalAddresses.Wrapf("identical denoms %s", tokenA)
	}
	return nil
}

func validatePositive(name string, amount math.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return ErrInsufficientAmount.Wrapf("%s must be positive", name)
	}
	return nil
}

func validatePath(path []string) error {
	if len(path) < 2 {
		return ErrInvalidPath.Wrapf("path needs at least 2 tokens, got %d", len(path))
	}
	for i, denom := range path {
		if err := sdk.ValidateDenom(denom); err != nil {
			return ErrInvalidPath.Wrapf("invalid denom at position %d: %v", i, err)
		}
		if i > 0 && path[i-1] == denom {
			return ErrInvalidPath.Wrapf("consecutive identical denoms at position %d", i)
		}
	}
	return nil
}
