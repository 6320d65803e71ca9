package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"cosmossdk.io/math"
	"github.com/cosmos/gogoproto/proto"
)

// MsgSwapExactTokensForTokens defines a message to swap a fixed input amount
// along a path of token denoms for as much output as possible
type MsgSwapExactTokensForTokens struct {
	Sender       string   `json:"sender"`
	AmountIn     math.Int `json:"amount_in"`
	AmountOutMin math.Int `json:"amount_out_min"`
	Path         []string `json:"path"`
	To           string   `json:"to"`
	Deadline     uint64   `json:"deadline"`
}

// NewMsgSwapExactTokensForTokens creates a new MsgSwapExactTokensForTokens instance
func NewMsgSwapExactTokensForTokens(sender string, amountIn, amountOutMin math.Int, path []string, to string, deadline uint64) *MsgSwapExactTokensForTokens {
	return &MsgSwapExactTokensForTokens{
		Sender:       sender,
		AmountIn:     amountIn,
		AmountOutMin: amountOutMin,
		Path:         path,
		To:           to,
		Deadline:     deadline,
	}
}

func (msg *MsgSwapExactTokensForTokens) Reset()         { *msg = MsgSwapExactTokensForTokens{} }
func (msg *MsgSwapExactTokensForTokens) String() string { return proto.CompactTextString(msg) }
func (*MsgSwapExactTokensForTokens) ProtoMessage()      {}

// Route implements the sdk.Msg interface
func (msg MsgSwapExactTokensForTokens) Route() string {
	return RouterKey
}

// Type implements the sdk.Msg interface
func (msg MsgSwapExactTokensForTokens) Type() string {
	return TypeMsgSwapExactTokensForTokens
}

// GetSigners implements the sdk.Msg interface
func (msg MsgSwapExactTokensForTokens) GetSigners() []sdk.AccAddress {
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{sender}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgSwapExactTokensForTokens) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgSwapExactTokensForTokens) ValidateBasic() error {
	if err := validateAddresses(msg.Sender, msg.To); err != nil {
		return err
	}
	if err := validatePath(msg.Path); err != nil {
		return err
	}
	if msg.AmountIn.IsNil() || !msg.AmountIn.IsPositive() {
		return ErrInsufficientInputAmount.Wrap("input amount must be positive")
	}
	if msg.AmountOutMin.IsNil() || msg.AmountOutMin.IsNegative() {
		return ErrInsufficientOutputAmount.Wrap("minimum output amount cannot be negative")
	}
	return nil
}

// MsgSwapTokensForExactTokens defines a message to swap as little input as
// possible along a path of token denoms for a fixed output amount
type MsgSwapTokensForExactTokens struct {
	Sender      string   `json:"sender"`
	AmountOut   math.Int `json:"amount_out"`
	AmountInMax math.Int `json:"amount_in_max"`
	Path        []string `json:"path"`
	To          string   `json:"to"`
	Deadline    uint64   `json:"deadline"`
}

// NewMsgSwapTokensForExactTokens creates a new MsgSwapTokensForExactTokens instance
func NewMsgSwapTokensForExactTokens(sender string, amountOut, amountInMax math.Int, path []string, to string, deadline uint64) *MsgSwapTokensForExactTokens {
	return &MsgSwapTokensForExactTokens{
		Sender:      sender,
		AmountOut:   amountOut,
		AmountInMax: amountInMax,
		Path:        path,
		To:          to,
		Deadline:    deadline,
	}
}

func (msg *MsgSwapTokensForExactTokens) Reset()         { *msg = MsgSwapTokensForExactTokens{} }
func (msg *MsgSwapTokensForExactTokens) String() string { return proto.CompactTextString(msg) }
func (*MsgSwapTokensForExactTokens) ProtoMessage()      {}

// Route implements the sdk.Msg interface
func (msg MsgSwapTokensForExactTokens) Route() string {
	return RouterKey
}

// Type implements the sdk.Msg interface
func (msg MsgSwapTokensForExactTokens) Type() string {
	return TypeMsgSwapTokensForExactTokens
}

// GetSigners implements the sdk.Msg interface
func (msg MsgSwapTokensForExactTokens) GetSigners() []sdk.AccAddress {
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{sender}
}

// GetSignBytes implements the sdk.Msg interface
func (msg MsgSwapTokensForExactTokens) GetSignBytes() []byte {
	bz := ModuleCdc.MustMarshalJSON(&msg)
	return sdk.MustSortJSON(bz)
}

// ValidateBasic implements the sdk.Msg interface
func (msg MsgSwapTokensForExactTokens) ValidateBasic() error {
	if err := validateAddresses(msg.Sender, msg.To); err != nil {
		return err
	}
	if err := validatePath(msg.Path); err != nil {
		return err
	}
	if msg.AmountOut.IsNil() || !msg.AmountOut.IsPositive() {
		return ErrInsufficientOutputAmount.Wrap("output amount must be positive")
	}
	if msg.AmountInMax.IsNil() || !msg.AmountInMax.IsPositive() {
		return ErrInsufficientInputAmount.Wrap("maximum input amount must be positive")
	}
	return nil
}
