package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BankKeeper is the token-ledger boundary the dex depends on. Every asset a
// pool trades, including the coins backing the pool reserves, lives in this
// ledger; the dex only ever moves and reads balances through it. A failed
// call aborts the whole operation.
type BankKeeper interface {
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
	SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error
}
