// Package json implements the JSON format for the treasury messages.
//
// The messages share a single envelope with one field per command, so that
// the command is carried by the single key present in the object. The init
// payload of a contract token is embedded verbatim and decoded with the
// factory found in the serialization context.
package json

import (
	"encoding/json"

	"github.com/duet-dlt/duet/asset"
	assetjson "github.com/duet-dlt/duet/asset/json"
	"github.com/duet-dlt/duet/contracts/treasury"
	"github.com/duet-dlt/duet/factory"
	"github.com/duet-dlt/duet/serde"
	"github.com/duet-dlt/duet/token"
	"golang.org/x/xerrors"
)

func init() {
	treasury.RegisterMsgFormat(serde.FormatJSON, msgFormat{})
}

// DepositJSON is the JSON message of a deposit.
type DepositJSON struct {
	Asset assetjson.AssetJSON `json:"asset"`
}

// WithdrawJSON is the JSON message of a withdrawal.
type WithdrawJSON struct {
	Assets []assetjson.AssetJSON `json:"assets"`
}

// NativeTokenJSON is the JSON spec of a token backed by a ledger denom.
type NativeTokenJSON struct {
	Subdenom string `json:"subdenom"`
}

// ContractTokenJSON is the JSON spec of a token backed by a dedicated
// contract.
type ContractTokenJSON struct {
	CodeID uint64          `json:"code_id"`
	Label  string          `json:"label"`
	Admin  string          `json:"admin,omitempty"`
	Init   json.RawMessage `json:"init"`
}

// CreateTokenJSON is the JSON message of a token creation. Exactly one spec
// is set.
type CreateTokenJSON struct {
	Native   *NativeTokenJSON   `json:"native,omitempty"`
	Contract *ContractTokenJSON `json:"contract,omitempty"`
}

// BalancesJSON is the JSON message of a balances query.
type BalancesJSON struct {
	Owner string `json:"owner"`
}

// MsgJSON is the JSON envelope of the treasury messages. Exactly one field
// is set.
type MsgJSON struct {
	Deposit     *DepositJSON     `json:"deposit,omitempty"`
	Withdraw    *WithdrawJSON    `json:"withdraw,omitempty"`
	CreateToken *CreateTokenJSON `json:"create_token,omitempty"`
	Balances    *BalancesJSON    `json:"balances,omitempty"`
}

// msgFormat is the engine to encode and decode treasury messages in JSON
// format.
//
// - implements serde.FormatEngine
type msgFormat struct{}

// Encode implements serde.FormatEngine. It returns the serialized data of
// the message in JSON format.
func (f msgFormat) Encode(ctx serde.Context, msg serde.Message) ([]byte, error) {
	var m MsgJSON

	switch in := msg.(type) {
	case treasury.Deposit:
		d := DepositJSON{Asset: assetjson.FromAssetUnchecked(in.Asset)}

		m.Deposit = &d

	case treasury.Withdraw:
		w := WithdrawJSON{Assets: make([]assetjson.AssetJSON, len(in.Assets))}

		for i, u := range in.Assets {
			w.Assets[i] = assetjson.FromAssetUnchecked(u)
		}

		m.Withdraw = &w

	case treasury.CreateToken:
		ct, err := f.encodeCreate(ctx, in)
		if err != nil {
			return nil, err
		}

		m.CreateToken = &ct

	case treasury.Balances:
		b := BalancesJSON{Owner: in.Owner}

		m.Balances = &b

	default:
		return nil, xerrors.Errorf("unsupported message of type '%T'", msg)
	}

	data, err := ctx.Marshal(m)
	if err != nil {
		return nil, xerrors.Errorf("failed to marshal: %v", err)
	}

	return data, nil
}

func (f msgFormat) encodeCreate(ctx serde.Context, in treasury.CreateToken) (CreateTokenJSON, error) {
	switch {
	case in.Native != nil:
		native := NativeTokenJSON{Subdenom: in.Native.Subdenom}

		return CreateTokenJSON{Native: &native}, nil

	case in.Contract != nil:
		data, err := in.Contract.Init.Serialize(ctx)
		if err != nil {
			return CreateTokenJSON{}, xerrors.Errorf("failed to serialize init: %v", err)
		}

		contract := ContractTokenJSON{
			CodeID: in.Contract.CodeID,
			Label:  in.Contract.Label,
			Admin:  in.Contract.Admin,
			Init:   data,
		}

		return CreateTokenJSON{Contract: &contract}, nil
	}

	return CreateTokenJSON{}, xerrors.New("token spec is empty")
}

// Decode implements serde.FormatEngine. It populates the message from the
// JSON data if appropriate, otherwise it returns an error.
func (f msgFormat) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	m := MsgJSON{}

	err := ctx.Unmarshal(data, &m)
	if err != nil {
		return nil, xerrors.Errorf("failed to unmarshal: %v", err)
	}

	switch {
	case m.Deposit != nil:
		a, err := assetjson.ToAssetUnchecked(m.Deposit.Asset)
		if err != nil {
			return nil, xerrors.Errorf("failed to decode asset: %v", err)
		}

		return treasury.Deposit{Asset: a}, nil

	case m.Withdraw != nil:
		assets := make(asset.ListUnchecked, len(m.Withdraw.Assets))

		for i, entry := range m.Withdraw.Assets {
			a, err := assetjson.ToAssetUnchecked(entry)
			if err != nil {
				return nil, xerrors.Errorf("failed to decode asset: %v", err)
			}

			assets[i] = a
		}

		return treasury.Withdraw{Assets: assets}, nil

	case m.CreateToken != nil:
		return f.decodeCreate(ctx, *m.CreateToken)

	case m.Balances != nil:
		return treasury.Balances{Owner: m.Balances.Owner}, nil
	}

	return nil, xerrors.New("message is empty")
}

func (f msgFormat) decodeCreate(ctx serde.Context, m CreateTokenJSON) (serde.Message, error) {
	switch {
	case m.Native != nil:
		spec := factory.NativeSpec{Subdenom: m.Native.Subdenom}

		return treasury.CreateToken{Native: &spec}, nil

	case m.Contract != nil:
		fac := ctx.GetFactory(treasury.InitKey{})

		initFac, ok := fac.(token.InitFactory)
		if !ok {
			return nil, xerrors.Errorf("invalid init factory of type '%T'", fac)
		}

		msg, err := initFac.Deserialize(ctx, m.Contract.Init)
		if err != nil {
			return nil, err
		}

		ini, ok := msg.(token.Init)
		if !ok {
			return nil, xerrors.Errorf("invalid init of type '%T'", msg)
		}

		contract := treasury.ContractToken{
			CodeID: m.Contract.CodeID,
			Label:  m.Contract.Label,
			Admin:  m.Contract.Admin,
			Init:   ini,
		}

		return treasury.CreateToken{Contract: &contract}, nil
	}

	return nil, xerrors.New("token spec is empty")
}
