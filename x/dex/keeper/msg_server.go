package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/dexchain/dexchain/x/dex/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the dex MsgServer interface
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// AddLiquidity handles a ratio-matched deposit into a pool
func (ms msgServer) AddLiquidity(goCtx context.Context, msg *types.MsgAddLiquidity) (*types.MsgAddLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("AddLiquidity: validate: %w", err)
	}

	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, fmt.Errorf("AddLiquidity: invalid sender address: %w", err)
	}
	to, err := sdk.AccAddressFromBech32(msg.To)
	if err != nil {
		return nil, fmt.Errorf("AddLiquidity: invalid recipient address: %w", err)
	}

	poolID, amountA, amountB, liquidity, err := ms.Keeper.AddLiquidity(
		goCtx, sender, msg.TokenA, msg.TokenB,
		msg.AmountADesired, msg.AmountBDesired, msg.AmountAMin, msg.AmountBMin,
		to, msg.Deadline,
	)
	if err != nil {
		return nil, fmt.Errorf("AddLiquidity: %w", err)
	}

	return &types.MsgAddLiquidityResponse{
		PoolId:  poolID,
		AmountA: amountA,
		AmountB: amountB,
		Shares:  liquidity,
	}, nil
}

// RemoveLiquidity handles a pro-rata withdrawal from a pool
func (ms msgServer) RemoveLiquidity(goCtx context.Context, msg *types.MsgRemoveLiquidity) (*types.MsgRemoveLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: validate: %w", err)
	}

	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: invalid sender address: %w", err)
	}
	to, err := sdk.AccAddressFromBech32(msg.To)
	if err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: invalid recipient address: %w", err)
	}

	amountA, amountB, err := ms.Keeper.RemoveLiquidity(
		goCtx, sender, msg.TokenA, msg.TokenB,
		msg.Liquidity, msg.AmountAMin, msg.AmountBMin,
		to, msg.Deadline,
	)
	if err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: %w", err)
	}

	return &types.MsgRemoveLiquidityResponse{
		AmountA: amountA,
		AmountB: amountB,
	}, nil
}

// SwapExactTokensForTokens handles an exact-input multi-hop swap
func (ms msgServer) SwapExactTokensForTokens(goCtx context.Context, msg *types.MsgSwapExactTokensForTokens) (*types.MsgSwapExactTokensForTokensResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("SwapExactTokensForTokens: validate: %w", err)
	}

	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, fmt.Errorf("SwapExactTokensForTokens: invalid sender address: %w", err)
	}
	to, err := sdk.AccAddressFromBech32(msg.To)
	if err != nil {
		return nil, fmt.Errorf("SwapExactTokensForTokens: invalid recipient address: %w", err)
	}

	amounts, err := ms.Keeper.SwapExactTokensForTokens(
		goCtx, sender, msg.AmountIn, msg.AmountOutMin, msg.Path, to, msg.Deadline,
	)
	if err != nil {
		return nil, fmt.Errorf("SwapExactTokensForTokens: %w", err)
	}

	return &types.MsgSwapExactTokensForTokensResponse{Amounts: amounts}, nil
}

// SwapTokensForExactTokens handles an exact-output multi-hop swap
func (ms msgServer) SwapTokensForExactTokens(goCtx context.Context, msg *types.MsgSwapTokensForExactTokens) (*types.MsgSwapTokensForExactTokensResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("SwapTokensForExactTokens: validate: %w", err)
	}

	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, fmt.Errorf("SwapTokensForExactTokens: invalid sender address: %w", err)
	}
	to, err := sdk.AccAddressFromBech32(msg.To)
	if err != nil {
		return nil, fmt.Errorf("SwapTokensForExactTokens: invalid recipient address: %w", err)
	}

	amounts, err := ms.Keeper.SwapTokensForExactTokens(
		goCtx, sender, msg.AmountOut, msg.AmountInMax, msg.Path, to, msg.Deadline,
	)
	if err != nil {
		return nil, fmt.Errorf("SwapTokensForExactTokens: %w", err)
	}

	return &types.MsgSwapTokensForExactTokensResponse{Amounts: amounts}, nil
}
