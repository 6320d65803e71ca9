package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// SharePosition is a single LP share balance, exported for genesis.
type SharePosition struct {
	PoolId  uint64   `json:"pool_id"`
	Address string   `json:"address"`
	Shares  math.Int `json:"shares"`
}

// ShareAllowance is a single LP share allowance, exported for genesis.
type ShareAllowance struct {
	PoolId  uint64   `json:"pool_id"`
	Owner   string   `json:"owner"`
	Spender string   `json:"spender"`
	Amount  math.Int `json:"amount"`
}

// GenesisState defines the dex module's genesis state.
type GenesisState struct {
	Params     Params           `json:"params"`
	PoolCount  uint64           `json:"pool_count"`
	Pools      []Pool           `json:"pools"`
	Shares     []SharePosition  `json:"shares"`
	Allowances []ShareAllowance `json:"allowances"`
}

// DefaultGenesis returns the default genesis state for the dex module.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:     DefaultParams(),
		PoolCount:  0,
		Pools:      []Pool{},
		Shares:     []SharePosition{},
		Allowances: []ShareAllowance{},
	}
}

// Validate ensures the genesis state is well-formed.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}

	poolIDs := make(map[uint64]struct{}, len(gs.Pools))
	pairs := make(map[string]struct{}, len(gs.Pools))
	supply := make(map[uint64]math.Int, len(gs.Pools))

	for _, pool := range gs.Pools {
		if err := pool.Validate(); err != nil {
			return err
		}
		if pool.Id == 0 || pool.Id > gs.PoolCount {
			return fmt.Errorf("pool id %d outside counter range %d", pool.Id, gs.PoolCount)
		}
		if _, ok := poolIDs[pool.Id]; ok {
			return fmt.Errorf("duplicate pool id %d", pool.Id)
		}
		poolIDs[pool.Id] = struct{}{}

		pairKey := pool.Token0 + "/" + pool.Token1
		if _, ok := pairs[pairKey]; ok {
			return fmt.Errorf("duplicate pool for pair %s", pairKey)
		}
		pairs[pairKey] = struct{}{}
		supply[pool.Id] = math.ZeroInt()
	}

	for _, pos := range gs.Shares {
		if _, ok := poolIDs[pos.PoolId]; !ok {
			return fmt.Errorf("share position references unknown pool %d", pos.PoolId)
		}
		if pos.Shares.IsNil() || !pos.Shares.IsPositive() {
			return fmt.Errorf("share position for %s in pool %d must be positive", pos.Address, pos.PoolId)
		}
		supply[pos.PoolId] = supply[pos.PoolId].Add(pos.Shares)
	}

	for _, pool := range gs.Pools {
		if !supply[pool.Id].Equal(pool.TotalShares) {
			return fmt.Errorf(
				"pool %d share supply mismatch: positions sum to %s, pool records %s",
				pool.Id, supply[pool.Id], pool.TotalShares,
			)
		}
	}

	for _, allowance := range gs.Allowances {
		if _, ok := poolIDs[allowance.PoolId]; !ok {
			return fmt.Errorf("allowance references unknown pool %d", allowance.PoolId)
		}
		if allowance.Amount.IsNil() || !allowance.Amount.IsPositive() {
			return fmt.Errorf("allowance %s -> %s in pool %d must be positive", allowance.Owner, allowance.Spender, allowance.PoolId)
		}
	}

	return nil
}
