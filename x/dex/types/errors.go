package types

import (
	"cosmossdk.io/errors"
)

// DEX module sentinel errors. The numeric codes are part of the external
// interface (observers match on codespace/code pairs) and must not change.
var (
	ErrInsufficientLiquidity       = errors.Register(ModuleName, 1, "insufficient liquidity in pool")
	ErrInsufficientInputAmount     = errors.Register(ModuleName, 2, "insufficient input amount")
	ErrInsufficientOutputAmount    = errors.Register(ModuleName, 3, "insufficient output amount")
	ErrInvalidPair                 = errors.Register(ModuleName, 4, "invalid token pair")
	ErrPairExists                  = errors.Register(ModuleName, 5, "pair already exists")
	ErrPairNotFound                = errors.Register(ModuleName, 6, "pair not found")
	ErrZeroAddress                 = errors.Register(ModuleName, 7, "zero address")
	ErrIdenticalAddresses          = errors.Register(ModuleName, 8, "identical addresses")
	ErrInsufficientAmount          = errors.Register(ModuleName, 9, "insufficient amount")
	ErrTransferFailed              = errors.Register(ModuleName, 10, "transfer failed")
	ErrDeadlineExpired             = errors.Register(ModuleName, 11, "deadline expired")
	ErrExcessiveSlippage           = errors.Register(ModuleName, 12, "excessive slippage")
	ErrOverflow                    = errors.Register(ModuleName, 13, "arithmetic overflow")
	ErrUnderflow                   = errors.Register(ModuleName, 14, "arithmetic underflow")
	ErrDivisionByZero              = errors.Register(ModuleName, 15, "division by zero")
	ErrUnauthorized                = errors.Register(ModuleName, 16, "unauthorized")
	ErrInvalidPath                 = errors.Register(ModuleName, 17, "invalid swap path")
	ErrKInvariantViolated          = errors.Register(ModuleName, 18, "k invariant violated")
	ErrInsufficientLiquidityMinted = errors.Register(ModuleName, 19, "insufficient liquidity minted")
	ErrInsufficientLiquidityBurned = errors.Register(ModuleName, 20, "insufficient liquidity burned")
	ErrLocked                      = errors.Register(ModuleName, 21, "reentrancy lock held")
	ErrInvalidFee                  = errors.Register(ModuleName, 22, "invalid fee")
)
