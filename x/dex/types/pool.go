package types

import (
	"cosmossdk.io/math"
)

// Pool holds the state of one trading pair: the believed reserves of both
// tokens, the cumulative price accumulators, the k value recorded after the
// last liquidity event, and the LP share supply of the embedded share ledger.
// Token0 < Token1 in canonical denom order, fixed at creation.
//
// Reserves are only ever written through the keeper's reserve-update routine;
// everything else treats them as read-only.
type Pool struct {
	Id                   uint64   `json:"id"`
	Token0               string   `json:"token0"`
	Token1               string   `json:"token1"`
	Reserve0             math.Int `json:"reserve0"`
	Reserve1             math.Int `json:"reserve1"`
	BlockTimestampLast   uint64   `json:"block_timestamp_last"`
	Price0CumulativeLast math.Int `json:"price0_cumulative_last"`
	Price1CumulativeLast math.Int `json:"price1_cumulative_last"`
	KLast                math.Int `json:"k_last"`
	TotalShares          math.Int `json:"total_shares"`
}

// NewPool returns a zeroed pool for the given pair. The caller is expected to
// have validated and canonically ordered the denoms already.
func NewPool(id uint64, token0, token1 string) *Pool {
	return &Pool{
		Id:                   id,
		Token0:               token0,
		Token1:               token1,
		Reserve0:             math.ZeroInt(),
		Reserve1:             math.ZeroInt(),
		BlockTimestampLast:   0,
		Price0CumulativeLast: math.ZeroInt(),
		Price1CumulativeLast: math.ZeroInt(),
		KLast:                math.ZeroInt(),
		TotalShares:          math.ZeroInt(),
	}
}

// Validate checks internal consistency of a pool record.
func (p Pool) Validate() error {
	if p.Token0 == "" || p.Token1 == "" {
		return ErrZeroAddress.Wrap("pool token denom cannot be empty")
	}
	if p.Token0 == p.Token1 {
		return ErrIdenticalAddresses.Wrapf("pool %d has identical tokens %s", p.Id, p.Token0)
	}
	if p.Token0 > p.Token1 {
		return ErrInvalidPair.Wrapf("pool %d tokens not in canonical order: %s > %s", p.Id, p.Token0, p.Token1)
	}
	if p.Reserve0.IsNil() || p.Reserve0.IsNegative() {
		return ErrInvalidPair.Wrapf("pool %d has invalid reserve0", p.Id)
	}
	if p.Reserve1.IsNil() || p.Reserve1.IsNegative() {
		return ErrInvalidPair.Wrapf("pool %d has invalid reserve1", p.Id)
	}
	if p.TotalShares.IsNil() || p.TotalShares.IsNegative() {
		return ErrInvalidPair.Wrapf("pool %d has invalid share supply", p.Id)
	}
	return nil
}

// OrderedReserves returns the reserves in (denomA, denomB) request order.
func (p Pool) OrderedReserves(denomA string) (math.Int, math.Int) {
	if denomA == p.Token0 {
		return p.Reserve0, p.Reserve1
	}
	return p.Reserve1, p.Reserve0
}
