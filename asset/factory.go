package asset

import (
	"github.com/duet-dlt/duet/serde"
	"golang.org/x/xerrors"
)

// InfoFactory is a factory to deserialize infos.
//
// - implements serde.Factory
type InfoFactory struct{}

// Deserialize implements serde.Factory. It populates the info from the data
// if appropriate, otherwise it returns an error.
func (f InfoFactory) Deserialize(ctx serde.Context, data []byte) (serde.Message, error) {
	format := infoFormats.Get(ctx.GetFormat())

	msg, err := format.Decode(ctx, data)
	if err != nil {
		return nil, xerrors.Errorf("failed to decode info: %v", err)
	}

	return msg, nil
}

// InfoOf returns the info decoded from the data.
func (f InfoFactory) InfoOf(ctx serde.Context, data []byte) (Info, error) {
	msg, err := f.Deserialize(ctx, data)
	if err != nil {
		return Info{}, err
	}

	info, ok := msg.(Info)
	if !ok {
		return Info{}, xerrors.Errorf("invalid info of type '%T'", msg)
	}

	return info, nil
}

// AssetFactory is a factory to deserialize assets.
//
// - implements serde.Factory
type AssetFactory struct{}

// Deserialize implements serde.Factory. It populates the asset from the data
// if appropriate, otherwise it returns an error.
func (f AssetFactory) Deserialize(ctx serde.Context, data []byte) (serde.Message, error) {
	format := assetFormats.Get(ctx.GetFormat())

	msg, err := format.Decode(ctx, data)
	if err != nil {
		return nil, xerrors.Errorf("failed to decode asset: %v", err)
	}

	return msg, nil
}

// AssetOf returns the asset decoded from the data.
func (f AssetFactory) AssetOf(ctx serde.Context, data []byte) (Asset, error) {
	msg, err := f.Deserialize(ctx, data)
	if err != nil {
		return Asset{}, err
	}

	a, ok := msg.(Asset)
	if !ok {
		return Asset{}, xerrors.Errorf("invalid asset of type '%T'", msg)
	}

	return a, nil
}

// ListFactory is a factory to deserialize lists.
//
// - implements serde.Factory
type ListFactory struct{}

// Deserialize implements serde.Factory. It populates the list from the data
// if appropriate, otherwise it returns an error.
func (f ListFactory) Deserialize(ctx serde.Context, data []byte) (serde.Message, error) {
	format := listFormats.Get(ctx.GetFormat())

	msg, err := format.Decode(ctx, data)
	if err != nil {
		return nil, xerrors.Errorf("failed to decode list: %v", err)
	}

	return msg, nil
}

// ListOf returns the list decoded from the data.
func (f ListFactory) ListOf(ctx serde.Context, data []byte) (List, error) {
	msg, err := f.Deserialize(ctx, data)
	if err != nil {
		return List{}, err
	}

	list, ok := msg.(List)
	if !ok {
		return List{}, xerrors.Errorf("invalid list of type '%T'", msg)
	}

	return list, nil
}
