package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"cosmossdk.io/math"
	"github.com/cosmos/gogoproto/proto"
)

// MsgRemoveLiquidity defines a message to burn pool shares and withdraw both tokens
type MsgRemoveLiquidity struct {
	Sender     string   `json:"sender"`
	TokenA     string   `json:"token_a"`
	TokenB     string   `json:"token_b"`
	Liquidity  math.Int `json:"liquidity"`
	AmountAMin math.Int `json:"amount_a_min"`
	AmountBMin math.Int `json:"amount_b_min"`
	To         string   `json:"to"`
	Deadline   uint64   `json:"deadline"`
}

// NewMsgRemoveLiquidity creates a new MsgRemoveLiquidity instance
func NewMsgRemoveLiquidity(sender, tokenA, tokenB string, liquidity, amountAMin, amountBMin math.Int, to string, deadline uint64) *MsgRemoveLiquidity {
	return &MsgRemoveLiquidity{
		Sender:     sender,
		TokenA:     tokenA,
		TokenB:     tokenB,
		Liquidity:  liquidity,
		AmountAMin: amountAMin,
		AmountBMin: amountBMin,
		To:         to,
		Deadline:   deadline,
	}
}

func (msg *MsgRemoveLiquidity) Reset()         { *msg = MsgRemoveLiquidity{} }
func (msg *MsgRemoveLiquidity) String() string { return proto.CompactTextString(msg) }
func (*MsgRemoveLiquidity) ProtoMessage()      {}

// Route implements the sdk.Msg interface
func (msg MsgRemoveLiquidity) Route() string {
	return RouterKey
}

// Type implements the sdk.Msg interface
func (msg MsgRemoveLiquidity) Type() string {
	return TypeMsgRemoveLiquidity
}

// GetSigners implements the sdk.Msg interface
func (msg MsgRemoveLiquidity) GetSigners() []sdk.AccAddress {
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{sender}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgRemoveLiquidity) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgRemoveLiquidity) ValidateBasic() error {
	if err := validateAddresses(msg.Sender, msg.To); err != nil {
		return err
	}
	if err := validatePair(msg.TokenA, msg.TokenB); err != nil {
		return err
	}
	if err := validatePositive("liquidity", msg.Liquidity); err != nil {
		return err
	}
	if msg.AmountAMin.IsNil() || msg.AmountAMin.IsNegative() {
		return ErrInsufficientAmount.Wrap("minimum amount A cannot be negative")
	}
	if msg.AmountBMin.IsNil() || msg.AmountBMin.IsNegative() {
		return ErrInsufficientAmount.Wrap("minimum amount B cannot be negative")
	}
	return nil
}
