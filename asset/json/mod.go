// Package json implements the JSON format for the asset values.
//
// An info is an envelope with one field per kind, so that the kind is
// carried by the single key present in the object. An asset pairs the info
// with its amount, and a list is a plain array of assets.
package json

import (
	"github.com/duet-dlt/duet/amount"
	"github.com/duet-dlt/duet/asset"
	"github.com/duet-dlt/duet/chain"
	"github.com/duet-dlt/duet/serde"
	"golang.org/x/xerrors"
)

func init() {
	asset.RegisterInfoFormat(serde.FormatJSON, infoFormat{})
	asset.RegisterAssetFormat(serde.FormatJSON, assetFormat{})
	asset.RegisterListFormat(serde.FormatJSON, listFormat{})
}

// InfoJSON is the JSON message of an asset info. Exactly one field is set.
type InfoJSON struct {
	Native   *string `json:"native,omitempty"`
	Contract *string `json:"contract,omitempty"`
}

// AssetJSON is the JSON message of an asset.
type AssetJSON struct {
	Info   InfoJSON      `json:"info"`
	Amount amount.Amount `json:"amount"`
}

// FromInfo returns the wire value of the info.
func FromInfo(info asset.Info) InfoJSON {
	payload := info.String()

	if info.IsNative() {
		return InfoJSON{Native: &payload}
	}

	return InfoJSON{Contract: &payload}
}

// ToInfo returns the info of the wire value. The contract address is taken
// as is, a value coming from an untrusted source goes through
// ToInfoUnchecked instead.
func ToInfo(m InfoJSON) (asset.Info, error) {
	switch {
	case m.Native != nil:
		return asset.NewNativeInfo(*m.Native), nil
	case m.Contract != nil:
		return asset.NewContractInfo(chain.AddressUnchecked(*m.Contract)), nil
	}

	return asset.Info{}, xerrors.New("info is empty")
}

// ToInfoUnchecked returns the unchecked info of the wire value.
func ToInfoUnchecked(m InfoJSON) (asset.InfoUnchecked, error) {
	switch {
	case m.Native != nil:
		return asset.NewNativeInfoUnchecked(*m.Native), nil
	case m.Contract != nil:
		return asset.NewContractInfoUnchecked(*m.Contract), nil
	}

	return asset.InfoUnchecked{}, xerrors.New("info is empty")
}

// FromInfoUnchecked returns the wire value of the unchecked info.
func FromInfoUnchecked(u asset.InfoUnchecked) InfoJSON {
	payload := u.String()

	if u.GetKind() == asset.KindNative {
		return InfoJSON{Native: &payload}
	}

	return InfoJSON{Contract: &payload}
}

// FromAsset returns the wire value of the asset.
func FromAsset(a asset.Asset) AssetJSON {
	return AssetJSON{Info: FromInfo(a.Info), Amount: a.Amount}
}

// ToAsset returns the asset of the wire value.
func ToAsset(m AssetJSON) (asset.Asset, error) {
	info, err := ToInfo(m.Info)
	if err != nil {
		return asset.Asset{}, err
	}

	return asset.New(info, m.Amount), nil
}

// ToAssetUnchecked returns the unchecked asset of the wire value.
func ToAssetUnchecked(m AssetJSON) (asset.AssetUnchecked, error) {
	info, err := ToInfoUnchecked(m.Info)
	if err != nil {
		return asset.AssetUnchecked{}, err
	}

	return asset.AssetUnchecked{Info: info, Amount: m.Amount}, nil
}

// FromAssetUnchecked returns the wire value of the unchecked asset.
func FromAssetUnchecked(u asset.AssetUnchecked) AssetJSON {
	return AssetJSON{Info: FromInfoUnchecked(u.Info), Amount: u.Amount}
}

// infoFormat is the engine to encode and decode infos in JSON format.
//
// - implements serde.FormatEngine
type infoFormat struct{}

// Encode implements serde.FormatEngine. It returns the serialized data of
// the info in JSON format.
func (infoFormat) Encode(ctx serde.Context, msg serde.Message) ([]byte, error) {
	info, ok := msg.(asset.Info)
	if !ok {
		return nil, xerrors.Errorf("unsupported message of type '%T'", msg)
	}

	data, err := ctx.Marshal(FromInfo(info))
	if err != nil {
		return nil, xerrors.Errorf("failed to marshal: %v", err)
	}

	return data, nil
}

// Decode implements serde.FormatEngine. It populates the info from the JSON
// data if appropriate, otherwise it returns an error.
func (infoFormat) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	m := InfoJSON{}

	err := ctx.Unmarshal(data, &m)
	if err != nil {
		return nil, xerrors.Errorf("failed to unmarshal: %v", err)
	}

	info, err := ToInfo(m)
	if err != nil {
		return nil, err
	}

	return info, nil
}

// assetFormat is the engine to encode and decode assets in JSON format.
//
// - implements serde.FormatEngine
type assetFormat struct{}

// Encode implements serde.FormatEngine. It returns the serialized data of
// the asset in JSON format.
func (assetFormat) Encode(ctx serde.Context, msg serde.Message) ([]byte, error) {
	a, ok := msg.(asset.Asset)
	if !ok {
		return nil, xerrors.Errorf("unsupported message of type '%T'", msg)
	}

	data, err := ctx.Marshal(FromAsset(a))
	if err != nil {
		return nil, xerrors.Errorf("failed to marshal: %v", err)
	}

	return data, nil
}

// Decode implements serde.FormatEngine. It populates the asset from the
// JSON data if appropriate, otherwise it returns an error.
func (assetFormat) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	m := AssetJSON{}

	err := ctx.Unmarshal(data, &m)
	if err != nil {
		return nil, xerrors.Errorf("failed to unmarshal: %v", err)
	}

	a, err := ToAsset(m)
	if err != nil {
		return nil, err
	}

	return a, nil
}

// listFormat is the engine to encode and decode lists in JSON format.
//
// - implements serde.FormatEngine
type listFormat struct{}

// Encode implements serde.FormatEngine. It returns the serialized data of
// the list in JSON format.
func (listFormat) Encode(ctx serde.Context, msg serde.Message) ([]byte, error) {
	list, ok := msg.(asset.List)
	if !ok {
		return nil, xerrors.Errorf("unsupported message of type '%T'", msg)
	}

	items := list.Assets()

	m := make([]AssetJSON, len(items))
	for i, item := range items {
		m[i] = FromAsset(item)
	}

	data, err := ctx.Marshal(m)
	if err != nil {
		return nil, xerrors.Errorf("failed to marshal: %v", err)
	}

	return data, nil
}

// Decode implements serde.FormatEngine. It populates the list from the JSON
// data if appropriate, otherwise it returns an error.
func (listFormat) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	m := []AssetJSON{}

	err := ctx.Unmarshal(data, &m)
	if err != nil {
		return nil, xerrors.Errorf("failed to unmarshal: %v", err)
	}

	assets := make([]asset.Asset, len(m))
	for i, item := range m {
		a, err := ToAsset(item)
		if err != nil {
			return nil, xerrors.Errorf("failed to decode asset: %v", err)
		}

		assets[i] = a
	}

	list, err := asset.NewList(assets...)
	if err != nil {
		return nil, xerrors.Errorf("failed to create list: %v", err)
	}

	return list, nil
}
