package types

// Event types emitted by the dex module
const (
	EventTypeLiquidityAdded   = "liquidity_added"
	EventTypeLiquidityRemoved = "liquidity_removed"
	EventTypeSwap             = "swap"
	EventTypeSync             = "sync"
	EventTypePairCreated      = "pair_created"
)

// Event attribute keys
const (
	AttributeKeyPoolID     = "pool_id"
	AttributeKeyPool       = "pool"
	AttributeKeyProvider   = "provider"
	AttributeKeySender     = "sender"
	AttributeKeyTo         = "to"
	AttributeKeyToken0     = "token0"
	AttributeKeyToken1     = "token1"
	AttributeKeyAmount0    = "amount0"
	AttributeKeyAmount1    = "amount1"
	AttributeKeyAmount0In  = "amount0_in"
	AttributeKeyAmount1In  = "amount1_in"
	AttributeKeyAmount0Out = "amount0_out"
	AttributeKeyAmount1Out = "amount1_out"
	AttributeKeyLiquidity  = "liquidity"
	AttributeKeyReserve0   = "reserve0"
	AttributeKeyReserve1   = "reserve1"
)
