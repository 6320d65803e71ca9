package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"cosmossdk.io/math"
	"github.com/cosmos/gogoproto/proto"
)

// MsgAddLiquidity defines a message to deposit a pair of tokens into a pool
type MsgAddLiquidity struct {
	Sender         string   `json:"sender"`
	TokenA         string   `json:"token_a"`
	TokenB         string   `json:"token_b"`
	AmountADesired math.Int `json:"amount_a_desired"`
	AmountBDesired math.Int `json:"amount_b_desired"`
	AmountAMin     math.Int `json:"amount_a_min"`
	AmountBMin     math.Int `json:"amount_b_min"`
	To             string   `json:"to"`
	Deadline       uint64   `json:"deadline"`
}

// NewMsgAddLiquidity creates a new MsgAddLiquidity instance
func NewMsgAddLiquidity(sender, tokenA, tokenB string, amountADesired, amountBDesired, amountAMin, amountBMin math.Int, to string, deadline uint64) *MsgAddLiquidity {
	return &MsgAddLiquidity{
		Sender:         sender,
		TokenA:         tokenA,
		TokenB:         tokenB,
		AmountADesired: amountADesired,
		AmountBDesired: amountBDesired,
		AmountAMin:     amountAMin,
		AmountBMin:     amountBMin,
		To:             to,
		Deadline:       deadline,
	}
}

func (msg *MsgAddLiquidity) Reset()         { *msg = MsgAddLiquidity{} }
func (msg *MsgAddLiquidity) String() string { return proto.CompactTextString(msg) }
func (*MsgAddLiquidity) ProtoMessage()      {}

// Route implements the sdk.Msg interface
func (msg MsgAddLiquidity) Route() string {
	return RouterKey
}

// Type implements the sdk.Msg interface
func (msg MsgAddLiquidity) Type() string {
	return TypeMsgAddLiquidity
}

// GetSigners implements the sdk.Msg interface
func (msg MsgAddLiquidity) GetSigners() []sdk.AccAddress {
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{sender}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgAddLiquidity) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgAddLiquidity) ValidateBasic() error {
	if err := validateAddresses(msg.Sender, msg.To); err != nil {
		return err
	}
	if err := validatePair(msg.TokenA, msg.TokenB); err != nil {
		return err
	}
	if err := validatePositive("desired amount A", msg.AmountADesired); err != nil {
		return err
	}
	if err := validatePositive("desired amount B", msg.AmountBDesired); err != nil {
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
