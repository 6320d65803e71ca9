package types

import (
	"context"

	"cosmossdk.io/math"
)

// MsgServer defines the message server interface
type MsgServer interface {
	AddLiquidity(context.Context, *MsgAddLiquidity) (*MsgAddLiquidityResponse, error)
	RemoveLiquidity(context.Context, *MsgRemoveLiquidity) (*MsgRemoveLiquidityResponse, error)
	SwapExactTokensForTokens(context.Context, *MsgSwapExactTokensForTokens) (*MsgSwapExactTokensForTokensResponse, error)
	SwapTokensForExactTokens(context.Context, *MsgSwapTokensForExactTokens) (*MsgSwapTokensForExactTokensResponse, error)
}

// Response types

// MsgAddLiquidityResponse defines the response for AddLiquidity
type MsgAddLiquidityResponse struct {
	PoolId  uint64   `json:"pool_id"`
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
	Shares  math.Int `json:"shares"`
}

// MsgRemoveLiquidityResponse defines the response for RemoveLiquidity
type MsgRemoveLiquidityResponse struct {
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
}

// MsgSwapExactTokensForTokensResponse defines the response for SwapExactTokensForTokens
type MsgSwapExactTokensForTokensResponse struct {
	Amounts []math.Int `json:"amounts"`
}

// MsgSwapTokensForExactTokensResponse defines the response for SwapTokensForExactTokens
type MsgSwapTokensForExactTokensResponse struct {
	Amounts []math.Int `json:"amounts"`
}
