package keeper_test

import (
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	"github.com/stretchr/testify/require"

	keepertest "github.com/dexchain/dexchain/testutil/keeper"
	"github.com/dexchain/dexchain/x/dex/keeper"
	"github.com/dexchain/dexchain/x/dex/types"
)

// farDeadline is safely past the fixture's genesis block time
var farDeadline = uint64(keepertest.GenesisTime.Add(time.Hour).Unix())

func addLiquidity(t *testing.T, k *keeper.Keeper, bk bankkeeper.BaseKeeper, ctx sdk.Context, tokenA, tokenB string, amountA, amountB int64) uint64 {
	funds := sdk.NewCoins(
		sdk.NewCoin(tokenA, sdkmath.NewInt(amountA)),
		sdk.NewCoin(tokenB, sdkmath.NewInt(amountB)),
	)
	keepertest.FundAccount(t, ctx, bk, provider, funds)

	poolID, _, _, _, err := k.AddLiquidity(
		ctx, provider, tokenA, tokenB,
		sdkmath.NewInt(amountA), sdkmath.NewInt(amountB),
		sdkmath.ZeroInt(), sdkmath.ZeroInt(),
		provider, farDeadline,
	)
	require.NoError(t, err)
	return poolID
}

// TestAddLiquidity_CreatesPool tests the first deposit creates the pool and
// takes both desired amounts
func TestAddLiquidity_CreatesPool(t *testing.T) {
	k, bk, ctx := keepertest.DexKeeper(t)

	funds := sdk.NewCoins(
		sdk.NewCoin("uatom", sdkmath.NewInt(1000)),
		sdk.NewCoin("uusd", sdkmath.NewInt(4000)),
	)
	keepertest.FundAccount(t, ctx, bk, provider, funds)

	poolID, amountA, amountB, liquidity, err := k.AddLiquidity(
		ctx, provider, "uatom", "uusd",
		sdkmath.NewInt(1000), sdkmath.NewInt(4000),
		sdkmath.ZeroInt(), sdkmath.ZeroInt(),
		provider, farDeadline,
	)
	require.NoError(t, err)
	require.Equal(t, uint64(1), poolID)
	require.Equal(t, sdkmath.NewInt(1000), amountA)
	require.Equal(t, sdkmath.NewInt(4000), amountB)
	require.Equal(t, sdkmath.NewInt(1000), liquidity)
	require.Equal(t, sdkmath.NewInt(1000), k.GetShares(ctx, poolID, provider))
}

// TestAddLiquidity_MatchesRatio tests a follow-up deposit is trimmed to the
// pool ratio
func TestAddLiquidity_MatchesRatio(t *testing.T) {
	k, bk, ctx := keepertest.DexKeeper(t)
	poolID := addLiquidity(t, k, bk, ctx, "uatom", "uusd", 1000, 4000)

	// Offer too much uusd for the 1:4 ratio; only 2000 should be taken
	funds := sdk.NewCoins(
		sdk.NewCoin("uatom", sdkmath.NewInt(500)),
		sdk.NewCoin("uusd", sdkmath.NewInt(3000)),
	)
	keepertest.FundAccount(t, ctx, bk, trader, funds)

	_, amountA, amountB, _, err := k.AddLiquidity(
		ctx, trader, "uatom", "uusd",
		sdkmath.NewInt(500), sdkmath.NewInt(3000),
		sdkmath.ZeroInt(), sdkmath.ZeroInt(),
		trader, farDeadline,
	)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(500), amountA)
	require.Equal(t, sdkmath.NewInt(2000), amountB)

	// The untaken uusd stays with the depositor
	require.Equal(t, sdkmath.NewInt(1000), bk.GetBalance(ctx, trader, "uusd").Amount)
	_ = poolID
}

// TestAddLiquidity_MinimumViolated tests the ratio-matched amount must meet
// its minimum
func TestAddLiquidity_MinimumViolated(t *testing.T) {
	k, bk, ctx := keepertest.DexKeeper(t)
	addLiquidity(t, k, bk, ctx, "uatom", "uusd", 1000, 4000)

	funds := sdk.NewCoins(
		sdk.NewCoin("uatom", sdkmath.NewInt(500)),
		sdk.NewCoin("uusd", sdkmath.NewInt(3000)),
	)
	keepertest.FundAccount(t, ctx, bk, trader, funds)

	// Ratio matching would take only 2000 uusd, below the stated minimum
	_, _, _, _, err := k.AddLiquidity(
		ctx, trader, "uatom", "uusd",
		sdkmath.NewInt(500), sdkmath.NewInt(3000),
		sdkmath.ZeroInt(), sdkmath.NewInt(2500),
		trader, farDeadline,
	)
	require.ErrorIs(t, err, types.ErrInsufficientAmount)
}

// TestAddLiquidity_DeadlineExpired tests the strict deadline check
func TestAddLiquidity_DeadlineExpired(t *testing.T) {
	k, bk, ctx := keepertest.DexKeeper(t)

	// Block time 101, deadline 100
	ctx = ctx.WithBlockTime(time.Unix(101, 0))
	_, _, _, _, err := k.AddLiquidity(
		ctx, provider, "uatom", "uusd",
		sdkmath.NewInt(1000), sdkmath.NewInt(4000),
		sdkmath.ZeroInt(), sdkmath.ZeroInt(),
		provider, 100,
	)
	require.ErrorIs(t, err, types.ErrDeadlineExpired)
	_ = bk
}

// TestAddLiquidity_DeadlineExact tests a deadline equal to block time passes
func TestAddLiquidity_DeadlineExact(t *testing.T) {
	k, bk, ctx := keepertest.DexKeeper(t)

	funds := sdk.NewCoins(
		sdk.NewCoin("uatom", sdkmath.NewInt(1000)),
		sdk.NewCoin("uusd", sdkmath.NewInt(4000)),
	)
	keepertest.FundAccount(t, ctx, bk, provider, funds)

	deadline := uint64(keepertest.GenesisTime.Unix())
	_, _, _, _, err := k.AddLiquidity(
		ctx, provider, "uatom", "uusd",
		sdkmath.NewInt(1000), sdkmath.NewInt(4000),
		sdkmath.ZeroInt(), sdkmath.ZeroInt(),
		provider, deadline,
	)
	require.NoError(t, err)
}

// TestRemoveLiquidity_Valid tests withdrawal pays both tokens pro-rata
func TestRemoveLiquidity_Valid(t *testing.T) {
	k, bk, ctx := keepertest.DexKeeper(t)
	poolID := addLiquidity(t, k, bk, ctx, "uatom", "uusd", 1000, 4000)

	amountA, amountB, err := k.RemoveLiquidity(
		ctx, provider, "uatom", "uusd",
		sdkmath.NewInt(500), sdkmath.ZeroInt(), sdkmath.ZeroInt(),
		provider, farDeadline,
	)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(250), amountA)
	require.Equal(t, sdkmath.NewInt(1000), amountB)

	require.Equal(t, sdkmath.NewInt(500), k.GetShares(ctx, poolID, provider))
}

// TestRemoveLiquidity_MinimumViolated tests per-token withdrawal minimums
func TestRemoveLiquidity_MinimumViolated(t *testing.T) {
	k, bk, ctx := keepertest.DexKeeper(t)
	addLiquidity(t, k, bk, ctx, "uatom", "uusd", 1000, 4000)

	_, _, err := k.RemoveLiquidity(
		ctx, provider, "uatom", "uusd",
		sdkmath.NewInt(500), sdkmath.NewInt(300), sdkmath.ZeroInt(),
		provider, farDeadline,
	)
	require.ErrorIs(t, err, types.ErrInsufficientAmount)
}

// TestRemoveLiquidity_MoreThanOwned tests burning more shares than held
func TestRemoveLiquidity_MoreThanOwned(t *testing.T) {
	k, bk, ctx := keepertest.DexKeeper(t)
	addLiquidity(t, k, bk, ctx, "uatom", "uusd", 1000, 4000)

	_, _, err := k.RemoveLiquidity(
		ctx, provider, "uatom", "uusd",
		sdkmath.NewInt(5000), sdkmath.ZeroInt(), sdkmath.ZeroInt(),
		provider, farDeadline,
	)
	require.ErrorIs(t, err, types.ErrInsufficientAmount)
}

// TestRemoveLiquidity_UnknownPair tests withdrawal from a missing pool
func TestRemoveLiquidity_UnknownPair(t *testing.T) {
	k, _, ctx := keepertest.DexKeeper(t)

	_, _, err := k.RemoveLiquidity(
		ctx, provider, "uatom", "uusd",
		sdkmath.NewInt(500), sdkmath.ZeroInt(), sdkmath.ZeroInt(),
		provider, farDeadline,
	)
	require.ErrorIs(t, err, types.ErrPairNotFound)
}

// TestGetAmountsOut_TwoHops tests forward quoting across two pools
func TestGetAmountsOut_TwoHops(t *testing.T) {
	k, bk, ctx := keepertest.DexKeeper(t)
	addLiquidity(t, k, bk, ctx, "uatom", "uusd", 1000000, 1000000)
	addLiquidity(t, k, bk, ctx, "uusd", "uosmo", 1000000, 1000000)

	amounts, err := k.GetAmountsOut(ctx, sdkmath.NewInt(1000), []string{"uatom", "uusd", "uosmo"})
	require.NoError(t, err)
	require.Len(t, amounts, 3)
	require.Equal(t, sdkmath.NewInt(1000), amounts[0])
	require.True(t, amounts[1].LT(amounts[0]))
	require.True(t, amounts[2].LT(amounts[1]))
}

// TestGetAmountsIn_TwoHops tests backward quoting across two pools
func TestGetAmountsIn_TwoHops(t *testing.T) {
	k, bk, ctx := keepertest.DexKeeper(t)
	addLiquidity(t, k, bk, ctx, "uatom", "uusd", 1000000, 1000000)
	addLiquidity(t, k, bk, ctx, "uusd", "uosmo", 1000000, 1000000)

	amounts, err := k.GetAmountsIn(ctx, sdkmath.NewInt(1000), []string{"uatom", "uusd", "uosmo"})
	require.NoError(t, err)
	require.Len(t, amounts, 3)
	require.Equal(t, sdkmath.NewInt(1000), amounts[2])
	require.True(t, amounts[1].GT(amounts[2]))
	require.True(t, amounts[0].GT(amounts[1]))
}

// TestGetAmountsOut_TooManyHops tests the hop cap from params
func TestGetAmountsOut_TooManyHops(t *testing.T) {
	k, _, ctx := keepertest.DexKeeper(t)

	path := []string{"d0", "d1", "d2", "d3", "d4", "d5", "d6"}
	_, err := k.GetAmountsOut(ctx, sdkmath.NewInt(1000), path)
	require.ErrorIs(t, err, types.ErrInvalidPath)
}

// TestGetAmountsOut_ShortPath tests single-token paths are rejected
func TestGetAmountsOut_ShortPath(t *testing.T) {
	k, _, ctx := keepertest.DexKeeper(t)

	_, err := k.GetAmountsOut(ctx, sdkmath.NewInt(1000), []string{"uatom"})
	require.ErrorIs(t, err, types.ErrInvalidPath)
}

// TestSwapExactTokensForTokens_SingleHop tests the basic exact-in flow
func TestSwapExactTokensForTokens_SingleHop(t *testing.T) {
	k, bk, ctx := keepertest.DexKeeper(t)
	addLiquidity(t, k, bk, ctx, "uatom", "uusd", 1000000, 1000000)

	payment := sdk.NewCoins(sdk.NewCoin("uatom", sdkmath.NewInt(1000)))
	keepertest.FundAccount(t, ctx, bk, trader, payment)

	amounts, err := k.SwapExactTokensForTokens(
		ctx, trader, sdkmath.NewInt(1000), sdkmath.NewInt(990),
		[]string{"uatom", "uusd"}, trader, farDeadline,
	)
	require.NoError(t, err)
	require.Len(t, amounts, 2)
	require.Equal(t, amounts[1], bk.GetBalance(ctx, trader, "uusd").Amount)
	require.True(t, bk.GetBalance(ctx, trader, "uatom").Amount.IsZero())
}

// TestSwapExactTokensForTokens_TwoHops tests intermediate output lands in
// the second pool, final output with the recipient
func TestSwapExactTokensForTokens_TwoHops(t *testing.T) {
	k, bk, ctx := keepertest.DexKeeper(t)
	addLiquidity(t, k, bk, ctx, "uatom", "uusd", 1000000, 1000000)
	addLiquidity(t, k, bk, ctx, "uusd", "uosmo", 1000000, 1000000)

	payment := sdk.NewCoins(sdk.NewCoin("uatom", sdkmath.NewInt(1000)))
	keepertest.FundAccount(t, ctx, bk, trader, payment)

	amounts, err := k.SwapExactTokensForTokens(
		ctx, trader, sdkmath.NewInt(1000), sdkmath.OneInt(),
		[]string{"uatom", "uusd", "uosmo"}, trader, farDeadline,
	)
	require.NoError(t, err)
	require.Equal(t, amounts[2], bk.GetBalance(ctx, trader, "uosmo").Amount)

	// Trader never touches the intermediate token
	require.True(t, bk.GetBalance(ctx, trader, "uusd").Amount.IsZero())
}

// TestSwapExactTokensForTokens_Slippage tests the output floor
func TestSwapExactTokensForTokens_Slippage(t *testing.T) {
	k, bk, ctx := keepertest.DexKeeper(t)
	addLiquidity(t, k, bk, ctx, "uatom", "uusd", 1000000, 1000000)

	payment := sdk.NewCoins(sdk.NewCoin("uatom", sdkmath.NewInt(1000)))
	keepertest.FundAccount(t, ctx, bk, trader, payment)

	_, err := k.SwapExactTokensForTokens(
		ctx, trader, sdkmath.NewInt(1000), sdkmath.NewInt(1000),
		[]string{"uatom", "uusd"}, trader, farDeadline,
	)
	require.ErrorIs(t, err, types.ErrInsufficientOutputAmount)
}

// TestSwapTokensForExactTokens_SingleHop tests the basic exact-out flow
func TestSwapTokensForExactTokens_SingleHop(t *testing.T) {
	k, bk, ctx := keepertest.DexKeeper(t)
	addLiquidity(t, k, bk, ctx, "uatom", "uusd", 1000000, 1000000)

	budget := sdk.NewCoins(sdk.NewCoin("uatom", sdkmath.NewInt(2000)))
	keepertest.FundAccount(t, ctx, bk, trader, budget)

	amounts, err := k.SwapTokensForExactTokens(
		ctx, trader, sdkmath.NewInt(1000), sdkmath.NewInt(2000),
		[]string{"uatom", "uusd"}, trader, farDeadline,
	)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(1000), bk.GetBalance(ctx, trader, "uusd").Amount)

	// Only the quoted input leaves the budget
	spent := sdkmath.NewInt(2000).Sub(bk.GetBalance(ctx, trader, "uatom").Amount)
	require.Equal(t, amounts[0], spent)
}

// TestSwapTokensForExactTokens_InputCap tests the input ceiling
func TestSwapTokensForExactTokens_InputCap(t *testing.T) {
	k, bk, ctx := keepertest.DexKeeper(t)
	addLiquidity(t, k, bk, ctx, "uatom", "uusd", 1000000, 1000000)

	_, err := k.SwapTokensForExactTokens(
		ctx, trader, sdkmath.NewInt(1000), sdkmath.NewInt(500),
		[]string{"uatom", "uusd"}, trader, farDeadline,
	)
	require.ErrorIs(t, err, types.ErrExcessiveSlippage)
}

// TestSwapExactTokensForTokens_UnknownPair tests routing over a missing pool
func TestSwapExactTokensForTokens_UnknownPair(t *testing.T) {
	k, bk, ctx := keepertest.DexKeeper(t)
	addLiquidity(t, k, bk, ctx, "uatom", "uusd", 1000000, 1000000)

	_, err := k.SwapExactTokensForTokens(
		ctx, trader, sdkmath.NewInt(1000), sdkmath.OneInt(),
		[]string{"uatom", "uosmo"}, trader, farDeadline,
	)
	require.ErrorIs(t, err, types.ErrPairNotFound)
}

// TestGetReserves_RequestOrder tests reserves come back in request order
func TestGetReserves_RequestOrder(t *testing.T) {
	k, bk, ctx := keepertest.DexKeeper(t)
	addLiquidity(t, k, bk, ctx, "uatom", "uusd", 1000, 4000)

	rA, rB, err := k.GetReserves(ctx, "uusd", "uatom")
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(4000), rA)
	require.Equal(t, sdkmath.NewInt(1000), rB)
}
