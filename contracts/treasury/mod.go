// Package treasury implements a native contract taking custody of assets of
// any kind.
//
// Accounts deposit native coins by attaching them to the message, and
// contract tokens by granting an allowance that the treasury pulls in. The
// balances are tracked per owner as asset lists, with an aggregated reserve
// per asset. The treasury can also provision brand new tokens on behalf of
// its users, on either backend, and records the identifiers once the
// platform reports them.
//
// Documentation Last Review: 05.02.2026
package treasury

import (
	"github.com/duet-dlt/duet/asset"
	"github.com/duet-dlt/duet/factory"
	"github.com/duet-dlt/duet/serde"
	"github.com/duet-dlt/duet/serde/registry"
	"github.com/duet-dlt/duet/token"
	"golang.org/x/xerrors"
)

// ContractName is the name to register the treasury under.
const ContractName = "duet.Treasury"

// InitKey is the key of the token init factory in the serialization context.
type InitKey struct{}

var msgFormats = registry.NewSimpleRegistry()

// RegisterMsgFormat registers the engine for the provided format.
func RegisterMsgFormat(f serde.Format, e serde.FormatEngine) {
	msgFormats.Register(f, e)
}

// Deposit credits the sender with the asset. A native deposit must come with
// the exact funds attached. A token deposit pulls the tokens in with a
// transfer from the sender, which requires a prior allowance on the token
// contract.
//
// - implements serde.Message
type Deposit struct {
	Asset asset.AssetUnchecked
}

// Serialize implements serde.Message.
func (d Deposit) Serialize(ctx serde.Context) ([]byte, error) {
	return encodeMsg(ctx, d)
}

// Withdraw debits the sender and transfers the assets back to its account.
//
// - implements serde.Message
type Withdraw struct {
	Assets asset.ListUnchecked
}

// Serialize implements serde.Message.
func (w Withdraw) Serialize(ctx serde.Context) ([]byte, error) {
	return encodeMsg(ctx, w)
}

// ContractToken describes the contract backend of a token creation.
type ContractToken struct {
	CodeID uint64
	Label  string
	Admin  string
	Init   token.Init
}

// CreateToken provisions a brand new token. Exactly one backend must be set.
//
// - implements serde.Message
type CreateToken struct {
	Native   *factory.NativeSpec
	Contract *ContractToken
}

// Serialize implements serde.Message.
func (ct CreateToken) Serialize(ctx serde.Context) ([]byte, error) {
	return encodeMsg(ctx, ct)
}

// Balances reports the assets currently credited to an owner.
//
// - implements serde.Message
type Balances struct {
	Owner string
}

// Serialize implements serde.Message.
func (b Balances) Serialize(ctx serde.Context) ([]byte, error) {
	return encodeMsg(ctx, b)
}

func encodeMsg(ctx serde.Context, msg serde.Message) ([]byte, error) {
	format := msgFormats.Get(ctx.GetFormat())

	data, err := format.Encode(ctx, msg)
	if err != nil {
		return nil, xerrors.Errorf("failed to encode message: %v", err)
	}

	return data, nil
}

// MsgFactory is a factory to deserialize treasury messages.
//
// - implements serde.Factory
type MsgFactory struct{}

// Deserialize implements serde.Factory. It populates the message from the
// data if appropriate, otherwise it returns an error.
func (f MsgFactory) Deserialize(ctx serde.Context, data []byte) (serde.Message, error) {
	format := msgFormats.Get(ctx.GetFormat())

	msg, err := format.Decode(ctx, data)
	if err != nil {
		return nil, xerrors.Errorf("failed to decode message: %v", err)
	}

	return msg, nil
}
