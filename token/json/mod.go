// Package json implements the JSON format for the token messages.
//
// The execute and query messages use an envelope with one field per variant,
// named in snake case, so that the variant is carried by the single key
// present in the object. This is the shape token contracts expect on the
// wire.
package json

import (
	"github.com/duet-dlt/duet/amount"
	"github.com/duet-dlt/duet/serde"
	"github.com/duet-dlt/duet/token"
	"golang.org/x/xerrors"
)

func init() {
	token.RegisterMsgFormat(serde.FormatJSON, msgFormat{})
	token.RegisterInitFormat(serde.FormatJSON, initFormat{})
	token.RegisterResponseFormat(serde.FormatJSON, respFormat{})
}

// TransferJSON is the JSON message of a transfer.
type TransferJSON struct {
	Recipient string        `json:"recipient"`
	Amount    amount.Amount `json:"amount"`
}

// SendJSON is the JSON message of a send.
type SendJSON struct {
	Contract string        `json:"contract"`
	Amount   amount.Amount `json:"amount"`
	Msg      []byte        `json:"msg"`
}

// TransferFromJSON is the JSON message of a delegated transfer.
type TransferFromJSON struct {
	Owner     string        `json:"owner"`
	Recipient string        `json:"recipient"`
	Amount    amount.Amount `json:"amount"`
}

// MintJSON is the JSON message of a mint.
type MintJSON struct {
	Recipient string        `json:"recipient"`
	Amount    amount.Amount `json:"amount"`
}

// BurnJSON is the JSON message of a burn.
type BurnJSON struct {
	Amount amount.Amount `json:"amount"`
}

// BalanceQueryJSON is the JSON message of a balance query.
type BalanceQueryJSON struct {
	Address string `json:"address"`
}

// MsgJSON is the envelope of the token messages. Exactly one field is set.
type MsgJSON struct {
	Transfer     *TransferJSON     `json:"transfer,omitempty"`
	Send         *SendJSON         `json:"send,omitempty"`
	TransferFrom *TransferFromJSON `json:"transfer_from,omitempty"`
	Mint         *MintJSON         `json:"mint,omitempty"`
	Burn         *BurnJSON         `json:"burn,omitempty"`
	Balance      *BalanceQueryJSON `json:"balance,omitempty"`
}

// msgFormat is the engine to encode and decode token messages in JSON
// format.
//
// - implements serde.FormatEngine
type msgFormat struct{}

// Encode implements serde.FormatEngine. It returns the serialized data of the
// message in JSON format.
func (msgFormat) Encode(ctx serde.Context, msg serde.Message) ([]byte, error) {
	var m MsgJSON

	switch in := msg.(type) {
	case token.Transfer:
		m.Transfer = &TransferJSON{
			Recipient: in.Recipient,
			Amount:    in.Amount,
		}
	case token.Send:
		m.Send = &SendJSON{
			Contract: in.Contract,
			Amount:   in.Amount,
			Msg:      in.Msg,
		}
	case token.TransferFrom:
		m.TransferFrom = &TransferFromJSON{
			Owner:     in.Owner,
			Recipient: in.Recipient,
			Amount:    in.Amount,
		}
	case token.Mint:
		m.Mint = &MintJSON{
			Recipient: in.Recipient,
			Amount:    in.Amount,
		}
	case token.Burn:
		m.Burn = &BurnJSON{
			Amount: in.Amount,
		}
	case token.BalanceQuery:
		m.Balance = &BalanceQueryJSON{
			Address: in.Address,
		}
	default:
		return nil, xerrors.Errorf("unsupported message of type '%T'", msg)
	}

	data, err := ctx.Marshal(m)
	if err != nil {
		return nil, xerrors.Errorf("failed to marshal: %v", err)
	}

	return data, nil
}

// Decode implements serde.FormatEngine. It populates the message from the
// JSON data if appropriate, otherwise it returns an error.
func (msgFormat) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	m := MsgJSON{}

	err := ctx.Unmarshal(data, &m)
	if err != nil {
		return nil, xerrors.Errorf("failed to unmarshal: %v", err)
	}

	switch {
	case m.Transfer != nil:
		return token.Transfer{
			Recipient: m.Transfer.Recipient,
			Amount:    m.Transfer.Amount,
		}, nil
	case m.Send != nil:
		return token.Send{
			Contract: m.Send.Contract,
			Amount:   m.Send.Amount,
			Msg:      m.Send.Msg,
		}, nil
	case m.TransferFrom != nil:
		return token.TransferFrom{
			Owner:     m.TransferFrom.Owner,
			Recipient: m.TransferFrom.Recipient,
			Amount:    m.TransferFrom.Amount,
		}, nil
	case m.Mint != nil:
		return token.Mint{
			Recipient: m.Mint.Recipient,
			Amount:    m.Mint.Amount,
		}, nil
	case m.Burn != nil:
		return token.Burn{
			Amount: m.Burn.Amount,
		}, nil
	case m.Balance != nil:
		return token.BalanceQuery{
			Address: m.Balance.Address,
		}, nil
	}

	return nil, xerrors.New("message is empty")
}

// InitialBalanceJSON is the JSON value of an initial balance entry.
type InitialBalanceJSON struct {
	Address string        `json:"address"`
	Amount  amount.Amount `json:"amount"`
}

// MinterJSON is the JSON value of the minter configuration.
type MinterJSON struct {
	Minter string         `json:"minter"`
	Cap    *amount.Amount `json:"cap,omitempty"`
}

// InitJSON is the JSON message of a token initialization payload.
type InitJSON struct {
	Name            string               `json:"name"`
	Symbol          string               `json:"symbol"`
	Decimals        uint8                `json:"decimals"`
	InitialBalances []InitialBalanceJSON `json:"initial_balances"`
	Mint            *MinterJSON          `json:"mint,omitempty"`
}

// initFormat is the engine to encode and decode initialization payloads in
// JSON format.
//
// - implements serde.FormatEngine
type initFormat struct{}

// Encode implements serde.FormatEngine. It returns the serialized data of the
// init message in JSON format.
func (initFormat) Encode(ctx serde.Context, msg serde.Message) ([]byte, error) {
	in, ok := msg.(token.Init)
	if !ok {
		return nil, xerrors.Errorf("unsupported message of type '%T'", msg)
	}

	balances := make([]InitialBalanceJSON, len(in.InitialBalances))
	for i, bal := range in.InitialBalances {
		balances[i] = InitialBalanceJSON{
			Address: bal.Address,
			Amount:  bal.Amount,
		}
	}

	m := InitJSON{
		Name:            in.Name,
		Symbol:          in.Symbol,
		Decimals:        in.Decimals,
		InitialBalances: balances,
	}

	if in.Mint != nil {
		m.Mint = &MinterJSON{
			Minter: in.Mint.Minter,
			Cap:    in.Mint.Cap,
		}
	}

	data, err := ctx.Marshal(m)
	if err != nil {
		return nil, xerrors.Errorf("failed to marshal: %v", err)
	}

	return data, nil
}

// Decode implements serde.FormatEngine. It populates the init message from
// the JSON data if appropriate, otherwise it returns an error.
func (initFormat) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	m := InitJSON{}

	err := ctx.Unmarshal(data, &m)
	if err != nil {
		return nil, xerrors.Errorf("failed to unmarshal: %v", err)
	}

	balances := make([]token.InitialBalance, len(m.InitialBalances))
	for i, bal := range m.InitialBalances {
		balances[i] = token.InitialBalance{
			Address: bal.Address,
			Amount:  bal.Amount,
		}
	}

	init := token.Init{
		Name:            m.Name,
		Symbol:          m.Symbol,
		Decimals:        m.Decimals,
		InitialBalances: balances,
	}

	if m.Mint != nil {
		init.Mint = &token.Minter{
			Minter: m.Mint.Minter,
			Cap:    m.Mint.Cap,
		}
	}

	return init, nil
}

// ResponseJSON is the JSON message of a balance response.
type ResponseJSON struct {
	Balance amount.Amount `json:"balance"`
}

// respFormat is the engine to encode and decode balance responses in JSON
// format.
//
// - implements serde.FormatEngine
type respFormat struct{}

// Encode implements serde.FormatEngine. It returns the serialized data of the
// balance response in JSON format.
func (respFormat) Encode(ctx serde.Context, msg serde.Message) ([]byte, error) {
	resp, ok := msg.(token.BalanceResponse)
	if !ok {
		return nil, xerrors.Errorf("unsupported message of type '%T'", msg)
	}

	data, err := ctx.Marshal(ResponseJSON{Balance: resp.Balance})
	if err != nil {
		return nil, xerrors.Errorf("failed to marshal: %v", err)
	}

	return data, nil
}

// Decode implements serde.FormatEngine. It populates the balance response
// from the JSON data if appropriate, otherwise it returns an error.
func (respFormat) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	m := ResponseJSON{}

	err := ctx.Unmarshal(data, &m)
	if err != nil {
		return nil, xerrors.Errorf("failed to unmarshal: %v", err)
	}

	return token.BalanceResponse{Balance: m.Balance}, nil
}
