// Package token defines the message set spoken by contract tokens.
//
// A contract token keeps its balances in its own storage and exposes a
// uniform protocol to move them: transfer, delegated transfer, send with an
// attached payload, mint and burn, plus a balance query. This package only
// encodes and decodes that protocol. It does not implement a token contract,
// the payloads are meant to be embedded in execute or instantiate
// instructions addressed to one.
//
// Documentation Last Review: 05.02.2026
package token

import (
	"github.com/duet-dlt/duet/amount"
	"github.com/duet-dlt/duet/serde"
	"github.com/duet-dlt/duet/serde/registry"
	"golang.org/x/xerrors"
)

var msgFormats = registry.NewSimpleRegistry()

var initFormats = registry.NewSimpleRegistry()

var respFormats = registry.NewSimpleRegistry()

// RegisterMsgFormat registers the engine for the provided format.
func RegisterMsgFormat(f serde.Format, e serde.FormatEngine) {
	msgFormats.Register(f, e)
}

// RegisterInitFormat registers the engine for the provided format.
func RegisterInitFormat(f serde.Format, e serde.FormatEngine) {
	initFormats.Register(f, e)
}

// RegisterResponseFormat registers the engine for the provided format.
func RegisterResponseFormat(f serde.Format, e serde.FormatEngine) {
	respFormats.Register(f, e)
}

// Transfer moves tokens from the caller balance to the recipient.
//
// - implements serde.Message
type Transfer struct {
	Recipient string
	Amount    amount.Amount
}

// Serialize implements serde.Message.
func (t Transfer) Serialize(ctx serde.Context) ([]byte, error) {
	return encodeMsg(ctx, t)
}

// Send moves tokens to a contract and notifies it with the attached payload,
// so that the receiving contract can react to the deposit.
//
// - implements serde.Message
type Send struct {
	Contract string
	Amount   amount.Amount
	Msg      []byte
}

// Serialize implements serde.Message.
func (s Send) Serialize(ctx serde.Context) ([]byte, error) {
	return encodeMsg(ctx, s)
}

// TransferFrom moves tokens between two holders using an allowance granted to
// the caller.
//
// - implements serde.Message
type TransferFrom struct {
	Owner     string
	Recipient string
	Amount    amount.Amount
}

// Serialize implements serde.Message.
func (t TransferFrom) Serialize(ctx serde.Context) ([]byte, error) {
	return encodeMsg(ctx, t)
}

// Mint creates new tokens for the recipient. Only the configured minter is
// allowed to execute it.
//
// - implements serde.Message
type Mint struct {
	Recipient string
	Amount    amount.Amount
}

// Serialize implements serde.Message.
func (m Mint) Serialize(ctx serde.Context) ([]byte, error) {
	return encodeMsg(ctx, m)
}

// Burn destroys tokens from the caller balance.
//
// - implements serde.Message
type Burn struct {
	Amount amount.Amount
}

// Serialize implements serde.Message.
func (b Burn) Serialize(ctx serde.Context) ([]byte, error) {
	return encodeMsg(ctx, b)
}

// BalanceQuery asks a token contract for the balance of a holder.
//
// - implements serde.Message
type BalanceQuery struct {
	Address string
}

// Serialize implements serde.Message.
func (q BalanceQuery) Serialize(ctx serde.Context) ([]byte, error) {
	return encodeMsg(ctx, q)
}

func encodeMsg(ctx serde.Context, msg serde.Message) ([]byte, error) {
	format := msgFormats.Get(ctx.GetFormat())

	data, err := format.Encode(ctx, msg)
	if err != nil {
		return nil, xerrors.Errorf("failed to encode message: %v", err)
	}

	return data, nil
}

// InitialBalance credits a holder when the token is instantiated.
type InitialBalance struct {
	Address string
	Amount  amount.Amount
}

// Minter configures who can mint new tokens, with an optional supply cap.
type Minter struct {
	Minter string
	Cap    *amount.Amount
}

// Init is the initialization payload of a new token contract.
//
// - implements serde.Message
type Init struct {
	Name            string
	Symbol          string
	Decimals        uint8
	InitialBalances []InitialBalance
	Mint            *Minter
}

// Serialize implements serde.Message.
func (i Init) Serialize(ctx serde.Context) ([]byte, error) {
	format := initFormats.Get(ctx.GetFormat())

	data, err := format.Encode(ctx, i)
	if err != nil {
		return nil, xerrors.Errorf("failed to encode init: %v", err)
	}

	return data, nil
}

// BalanceResponse is the answer of a token contract to a balance query.
//
// - implements serde.Message
type BalanceResponse struct {
	Balance amount.Amount
}

// Serialize implements serde.Message.
func (r BalanceResponse) Serialize(ctx serde.Context) ([]byte, error) {
	format := respFormats.Get(ctx.GetFormat())

	data, err := format.Encode(ctx, r)
	if err != nil {
		return nil, xerrors.Errorf("failed to encode response: %v", err)
	}

	return data, nil
}

// MsgFactory is a factory to deserialize transfer, send, delegated transfer,
// mint, burn and balance query messages.
//
// - implements serde.Factory
type MsgFactory struct{}

// Deserialize implements serde.Factory. It returns the message of the data if
// appropriate, otherwise an error.
func (MsgFactory) Deserialize(ctx serde.Context, data []byte) (serde.Message, error) {
	format := msgFormats.Get(ctx.GetFormat())

	msg, err := format.Decode(ctx, data)
	if err != nil {
		return nil, xerrors.Errorf("failed to decode message: %v", err)
	}

	return msg, nil
}

// InitFactory is a factory to deserialize initialization payloads.
//
// - implements serde.Factory
type InitFactory struct{}

// Deserialize implements serde.Factory. It returns the init message of the
// data if appropriate, otherwise an error.
func (InitFactory) Deserialize(ctx serde.Context, data []byte) (serde.Message, error) {
	format := initFormats.Get(ctx.GetFormat())

	msg, err := format.Decode(ctx, data)
	if err != nil {
		return nil, xerrors.Errorf("failed to decode init: %v", err)
	}

	return msg, nil
}

// ResponseFactory is a factory to deserialize balance responses.
//
// - implements serde.Factory
type ResponseFactory struct{}

// Deserialize implements serde.Factory. It returns the balance response of
// the data if appropriate, otherwise an error.
func (f ResponseFactory) Deserialize(ctx serde.Context, data []byte) (serde.Message, error) {
	format := respFormats.Get(ctx.GetFormat())

	msg, err := format.Decode(ctx, data)
	if err != nil {
		return nil, xerrors.Errorf("failed to decode response: %v", err)
	}

	return msg, nil
}

// ResponseOf deserializes the balance response and returns it with its
// concrete type.
func (f ResponseFactory) ResponseOf(ctx serde.Context, data []byte) (BalanceResponse, error) {
	msg, err := f.Deserialize(ctx, data)
	if err != nil {
		return BalanceResponse{}, err
	}

	resp, ok := msg.(BalanceResponse)
	if !ok {
		return BalanceResponse{}, xerrors.Errorf("invalid response of type '%T'", msg)
	}

	return resp, nil
}
