package types

import (
	"fmt"
)

const (
	// DefaultSwapFeePermille is the 0.3% trading fee the constant-product
	// formulas are built around (997/1000 scaling).
	DefaultSwapFeePermille = 3

	// DefaultMaxSwapHops bounds the number of pools a single routed trade may
	// touch. Keeps path quoting and execution gas-bounded.
	DefaultMaxSwapHops = 5
)

// Params defines the parameters for the dex module.
type Params struct {
	// SwapFeePermille is the per-trade fee in thousandths taken on the input
	// side of every swap.
	SwapFeePermille uint64 `json:"swap_fee_permille"`
	// MaxSwapHops is the maximum number of pools in a multi-hop swap path.
	MaxSwapHops uint64 `json:"max_swap_hops"`
}

// DefaultParams returns the default dex parameters.
func DefaultParams() Params {
	return Params{
		SwapFeePermille: DefaultSwapFeePermille,
		MaxSwapHops:     DefaultMaxSwapHops,
	}
}

// Validate validates the parameter set.
func (p Params) Validate() error {
	if p.SwapFeePermille >= 1000 {
		return ErrInvalidFee.Wrapf("swap fee %d permille must be below 1000", p.SwapFeePermille)
	}
	if p.MaxSwapHops < 1 {
		return fmt.Errorf("max swap hops must be at least 1, got %d", p.MaxSwapHops)
	}
	return nil
}

// FeeNumerator returns the input-scaling numerator used by the swap formulas,
// e.g. 997 for the default 0.3% fee.
func (p Params) FeeNumerator() uint64 {
	return 1000 - p.SwapFeePermille
}
