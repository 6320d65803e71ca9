package keeper

import (
	"context"
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	dexmath "github.com/dexchain/dexchain/x/dex/math"
	"github.com/dexchain/dexchain/x/dex/types"
)

// The router composes pool operations into user-facing flows: ratio-matched
// deposits, pro-rata withdrawals, and multi-hop swaps quoted across a denom
// path. It moves tokens with the bank keeper and leaves all invariant
// enforcement to the pool engine.

// ensureDeadline fails with ErrDeadlineExpired when the block time is
// strictly past the unix-seconds deadline. A deadline equal to the block
// time is still valid.
func ensureDeadline(ctx context.Context, deadline uint64) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := uint64(sdkCtx.BlockTime().Unix())
	if now > deadline {
		return types.ErrDeadlineExpired.Wrapf("deadline %d passed at %d", deadline, now)
	}
	return nil
}

// AddLiquidity deposits a pair of tokens at the pool's current ratio and
// mints LP shares to the recipient. The pool is created on first use. The
// desired amounts cap the deposit; the min amounts bound how far the actual
// deposit may fall below them when matching the ratio.
func (k Keeper) AddLiquidity(
	ctx context.Context,
	sender sdk.AccAddress,
	tokenA, tokenB string,
	amountADesired, amountBDesired, amountAMin, amountBMin sdkmath.Int,
	to sdk.AccAddress,
	deadline uint64,
) (poolID uint64, amountA, amountB, liquidity sdkmath.Int, err error) {
	if err = ensureDeadline(ctx, deadline); err != nil {
		return 0, sdkmath.Int{}, sdkmath.Int{}, sdkmath.Int{}, err
	}

	pool, err := k.GetPoolByTokens(ctx, tokenA, tokenB)
	if err != nil {
		pool, err = k.CreatePair(ctx, tokenA, tokenB)
		if err != nil {
			return 0, sdkmath.Int{}, sdkmath.Int{}, sdkmath.Int{}, err
		}
	}

	reserveA, reserveB := pool.OrderedReserves(tokenA)
	amountA, amountB, err = matchDepositRatio(reserveA, reserveB, amountADesired, amountBDesired, amountAMin, amountBMin)
	if err != nil {
		return 0, sdkmath.Int{}, sdkmath.Int{}, sdkmath.Int{}, err
	}

	deposit := sdk.NewCoins(
		sdk.NewCoin(tokenA, amountA),
		sdk.NewCoin(tokenB, amountB),
	)
	if err = k.bankKeeper.SendCoins(ctx, sender, types.PoolAddress(pool.Id), deposit); err != nil {
		return 0, sdkmath.Int{}, sdkmath.Int{}, sdkmath.Int{}, types.ErrTransferFailed.Wrapf("deposit: %v", err)
	}

	liquidity, err = k.Mint(ctx, pool.Id, to)
	if err != nil {
		return 0, sdkmath.Int{}, sdkmath.Int{}, sdkmath.Int{}, err
	}
	return pool.Id, amountA, amountB, liquidity, nil
}

// matchDepositRatio resolves the actual deposit amounts. An empty pool takes
// both desired amounts as-is; otherwise one side is quoted against the
// current ratio and checked against its minimum.
func matchDepositRatio(reserveA, reserveB, amountADesired, amountBDesired, amountAMin, amountBMin sdkmath.Int) (sdkmath.Int, sdkmath.Int, error) {
	if reserveA.IsZero() && reserveB.IsZero() {
		return amountADesired, amountBDesired, nil
	}

	amountBOptimal, err := dexmath.Quote(amountADesired, reserveA, reserveB)
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	if amountBOptimal.LTE(amountBDesired) {
		if amountBOptimal.LT(amountBMin) {
			return sdkmath.Int{}, sdkmath.Int{}, types.ErrInsufficientAmount.Wrapf(
				"quoted amount B %s below minimum %s", amountBOptimal, amountBMin)
		}
		return amountADesired, amountBOptimal, nil
	}

	amountAOptimal, err := dexmath.Quote(amountBDesired, reserveB, reserveA)
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	if amountAOptimal.GT(amountADesired) {
		return sdkmath.Int{}, sdkmath.Int{}, types.ErrInsufficientAmount.Wrapf(
			"quoted amount A %s above desired %s", amountAOptimal, amountADesired)
	}
	if amountAOptimal.LT(amountAMin) {
		return sdkmath.Int{}, sdkmath.Int{}, types.ErrInsufficientAmount.Wrapf(
			"quoted amount A %s below minimum %s", amountAOptimal, amountAMin)
	}
	return amountAOptimal, amountBDesired, nil
}

// RemoveLiquidity burns the sender's LP shares and pays out both tokens
// pro-rata, enforcing per-token minimums
func (k Keeper) RemoveLiquidity(
	ctx context.Context,
	sender sdk.AccAddress,
	tokenA, tokenB string,
	liquidity, amountAMin, amountBMin sdkmath.Int,
	to sdk.AccAddress,
	deadline uint64,
) (amountA, amountB sdkmath.Int, err error) {
	if err = ensureDeadline(ctx, deadline); err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}

	pool, err := k.GetPoolByTokens(ctx, tokenA, tokenB)
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}

	if err = k.TransferShares(ctx, pool.Id, sender, types.PoolAddress(pool.Id), liquidity); err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	amount0, amount1, err := k.Burn(ctx, pool.Id, to)
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}

	amountA, amountB = amount0, amount1
	if tokenA != pool.Token0 {
		amountA, amountB = amount1, amount0
	}
	if amountA.LT(amountAMin) {
		return sdkmath.Int{}, sdkmath.Int{}, types.ErrInsufficientAmount.Wrapf(
			"withdrawn amount A %s below minimum %s", amountA, amountAMin)
	}
	if amountB.LT(amountBMin) {
		return sdkmath.Int{}, sdkmath.Int{}, types.ErrInsufficientAmount.Wrapf(
			"withdrawn amount B %s below minimum %s", amountB, amountBMin)
	}
	return amountA, amountB, nil
}

// GetReserves returns the reserves of the pair's pool in (tokenA, tokenB)
// request order
func (k Keeper) GetReserves(ctx context.Context, tokenA, tokenB string) (sdkmath.Int, sdkmath.Int, error) {
	pool, err := k.GetPoolByTokens(ctx, tokenA, tokenB)
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	reserveA, reserveB := pool.OrderedReserves(tokenA)
	return reserveA, reserveB, nil
}

func (k Keeper) validatePath(ctx context.Context, path []string) error {
	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	if len(path) < 2 {
		return types.ErrInvalidPath.Wrapf("path needs at least 2 tokens, got %d", len(path))
	}
	if uint64(len(path)-1) > params.MaxSwapHops {
		return types.ErrInvalidPath.Wrapf("path has %d hops, maximum is %d", len(path)-1, params.MaxSwapHops)
	}
	return nil
}

// GetAmountsOut quotes a path forward: amounts[0] is amountIn and each
// following entry is the output of one hop
func (k Keeper) GetAmountsOut(ctx context.Context, amountIn sdkmath.Int, path []string) ([]sdkmath.Int, error) {
	if err := k.validatePath(ctx, path); err != nil {
		return nil, err
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	amounts := make([]sdkmath.Int, len(path))
	amounts[0] = amountIn
	for i := 0; i < len(path)-1; i++ {
		reserveIn, reserveOut, err := k.GetReserves(ctx, path[i], path[i+1])
		if err != nil {
			return nil, err
		}
		amounts[i+1], err = dexmath.GetAmountOut(amounts[i], reserveIn, reserveOut, params.FeeNumerator())
		if err != nil {
			return nil, err
		}
	}
	return amounts, nil
}

// GetAmountsIn quotes a path backward: amounts[len-1] is amountOut and each
// preceding entry is the input one hop needs
func (k Keeper) GetAmountsIn(ctx context.Context, amountOut sdkmath.Int, path []string) ([]sdkmath.Int, error) {
	if err := k.validatePath(ctx, path); err != nil {
		return nil, err
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	amounts := make([]sdkmath.Int, len(path))
	amounts[len(path)-1] = amountOut
	for i := len(path) - 1; i > 0; i-- {
		reserveIn, reserveOut, err := k.GetReserves(ctx, path[i-1], path[i])
		if err != nil {
			return nil, err
		}
		amounts[i-1], err = dexmath.GetAmountIn(amounts[i], reserveIn, reserveOut, params.FeeNumerator())
		if err != nil {
			return nil, err
		}
	}
	return amounts, nil
}

// SwapExactTokensForTokens trades a fixed input along a path for as much
// output as the pools give, failing when the result lands below amountOutMin
func (k Keeper) SwapExactTokensForTokens(
	ctx context.Context,
	sender sdk.AccAddress,
	amountIn, amountOutMin sdkmath.Int,
	path []string,
	to sdk.AccAddress,
	deadline uint64,
) ([]sdkmath.Int, error) {
	if err := ensureDeadline(ctx, deadline); err != nil {
		return nil, err
	}

	amounts, err := k.GetAmountsOut(ctx, amountIn, path)
	if err != nil {
		return nil, err
	}
	if amounts[len(amounts)-1].LT(amountOutMin) {
		return nil, types.ErrInsufficientOutputAmount.Wrapf(
			"output %s below minimum %s", amounts[len(amounts)-1], amountOutMin)
	}
	return amounts, k.executeSwapPath(ctx, sender, path, amounts, to)
}

// SwapTokensForExactTokens trades as little input as the pools allow along a
// path for a fixed output, failing when the required input exceeds
// amountInMax
func (k Keeper) SwapTokensForExactTokens(
	ctx context.Context,
	sender sdk.AccAddress,
	amountOut, amountInMax sdkmath.Int,
	path []string,
	to sdk.AccAddress,
	deadline uint64,
) ([]sdkmath.Int, error) {
	if err := ensureDeadline(ctx, deadline); err != nil {
		return nil, err
	}

	amounts, err := k.GetAmountsIn(ctx, amountOut, path)
	if err != nil {
		return nil, err
	}
	if amounts[0].GT(amountInMax) {
		return nil, types.ErrExcessiveSlippage.Wrapf(
			"required input %s above maximum %s", amounts[0], amountInMax)
	}
	return amounts, k.executeSwapPath(ctx, sender, path, amounts, to)
}

// executeSwapPath moves the input into the first pool, then swaps hop by
// hop. Intermediate outputs go directly to the next pool's account so no hop
// needs a round trip through the sender.
func (k Keeper) executeSwapPath(ctx context.Context, sender sdk.AccAddress, path []string, amounts []sdkmath.Int, to sdk.AccAddress) error {
	start := time.Now()

	firstPool, err := k.GetPoolByTokens(ctx, path[0], path[1])
	if err != nil {
		return err
	}
	input := sdk.NewCoins(sdk.NewCoin(path[0], amounts[0]))
	if err := k.bankKeeper.SendCoins(ctx, sender, types.PoolAddress(firstPool.Id), input); err != nil {
		return types.ErrTransferFailed.Wrapf("swap input: %v", err)
	}

	for i := 0; i < len(path)-1; i++ {
		pool, err := k.GetPoolByTokens(ctx, path[i], path[i+1])
		if err != nil {
			return err
		}

		amountOut := amounts[i+1]
		amount0Out, amount1Out := sdkmath.ZeroInt(), amountOut
		if path[i+1] == pool.Token0 {
			amount0Out, amount1Out = amountOut, sdkmath.ZeroInt()
		}

		recipient := to
		if i < len(path)-2 {
			nextPool, err := k.GetPoolByTokens(ctx, path[i+1], path[i+2])
			if err != nil {
				return err
			}
			recipient = types.PoolAddress(nextPool.Id)
		}

		if err := k.Swap(ctx, pool.Id, sender, amount0Out, amount1Out, recipient); err != nil {
			k.recordSwapMetrics(pool, path[i], path[i+1], amounts[i], "failed", start)
			return err
		}
		k.recordSwapMetrics(pool, path[i], path[i+1], amounts[i], "success", start)
	}
	return nil
}

func (k Keeper) recordSwapMetrics(pool types.Pool, tokenIn, tokenOut string, amountIn sdkmath.Int, status string, start time.Time) {
	m := GetMetrics()
	poolLabel := fmt.Sprintf("%d", pool.Id)
	m.SwapsTotal.WithLabelValues(poolLabel, tokenIn, tokenOut, status).Inc()
	m.SwapVolume.WithLabelValues(poolLabel, tokenIn).Add(approxFloat(amountIn))
	m.SwapLatency.Observe(time.Since(start).Seconds())
}
