package asset

import (
	"fmt"

	"github.com/duet-dlt/duet/amount"
	"github.com/duet-dlt/duet/chain"
	"github.com/duet-dlt/duet/serde"
	"github.com/duet-dlt/duet/token"
	"golang.org/x/xerrors"
)

// Asset is an amount of a given asset kind.
//
// - implements serde.Message
type Asset struct {
	Info   Info
	Amount amount.Amount
}

// New creates an asset from an info and an amount.
func New(info Info, value amount.Amount) Asset {
	return Asset{Info: info, Amount: value}
}

// NewNative creates an asset of a native denomination.
func NewNative(denom string, value amount.Amount) Asset {
	return New(NewNativeInfo(denom), value)
}

// NewContract creates an asset of a contract token.
func NewContract(addr chain.Address, value amount.Amount) Asset {
	return New(NewContractInfo(addr), value)
}

// FromCoin creates an asset from a ledger coin.
func FromCoin(coin chain.Coin) Asset {
	return NewNative(coin.Denom, coin.Amount)
}

// Coin returns the asset as a ledger coin. Only a native asset can be
// represented as a coin.
func (a Asset) Coin() (chain.Coin, error) {
	if !a.Info.IsNative() {
		return chain.Coin{}, xerrors.Errorf("asset '%s': %w", a.Info, ErrNotNative)
	}

	return chain.NewCoin(a.Info.GetDenom(), a.Amount), nil
}

// TransferMsg builds the instruction moving the asset amount from the
// calling contract to the recipient. A native asset moves through the
// ledger, a contract token moves through a message to its contract.
func (a Asset) TransferMsg(ctx serde.Context, recipient string) (chain.Instruction, error) {
	if a.Info.IsNative() {
		coin := chain.NewCoin(a.Info.GetDenom(), a.Amount)

		return chain.Transfer{To: recipient, Coins: []chain.Coin{coin}}, nil
	}

	data, err := token.Transfer{Recipient: recipient, Amount: a.Amount}.Serialize(ctx)
	if err != nil {
		return nil, xerrors.Errorf("failed to serialize transfer: %v", err)
	}

	return chain.Execute{Contract: a.Info.GetContract(), Payload: data}, nil
}

// SendMsg builds the instruction moving the asset amount to the target
// contract along with an encoded payload, so that the target can react to
// the deposit in the same call. Only a contract token can be sent this way.
func (a Asset) SendMsg(ctx serde.Context, target string, payload []byte) (chain.Instruction, error) {
	if a.Info.IsNative() {
		return nil, xerrors.Errorf("asset '%s': %w", a.Info, ErrNotContractToken)
	}

	data, err := token.Send{Contract: target, Amount: a.Amount, Msg: payload}.Serialize(ctx)
	if err != nil {
		return nil, xerrors.Errorf("failed to serialize send: %v", err)
	}

	return chain.Execute{Contract: a.Info.GetContract(), Payload: data}, nil
}

// TransferFromMsg builds the instruction pulling the asset amount from the
// owner to the recipient, using an allowance the owner has granted to the
// calling contract. Only a contract token supports delegated transfers.
func (a Asset) TransferFromMsg(ctx serde.Context, owner, recipient string) (chain.Instruction, error) {
	if a.Info.IsNative() {
		return nil, xerrors.Errorf("asset '%s': %w", a.Info, ErrNotContractToken)
	}

	msg := token.TransferFrom{Owner: owner, Recipient: recipient, Amount: a.Amount}

	data, err := msg.Serialize(ctx)
	if err != nil {
		return nil, xerrors.Errorf("failed to serialize transfer from: %v", err)
	}

	return chain.Execute{Contract: a.Info.GetContract(), Payload: data}, nil
}

// MintMsg builds the instruction minting the asset amount to the minter's
// account. The minter must administer the denomination, or be configured as
// the minter of the token contract.
func (a Asset) MintMsg(ctx serde.Context, minter chain.Address) (chain.Instruction, error) {
	if a.Info.IsNative() {
		coin := chain.NewCoin(a.Info.GetDenom(), a.Amount)

		return chain.MintCoins{Sender: minter, Coin: coin}, nil
	}

	data, err := token.Mint{Recipient: minter.String(), Amount: a.Amount}.Serialize(ctx)
	if err != nil {
		return nil, xerrors.Errorf("failed to serialize mint: %v", err)
	}

	return chain.Execute{Contract: a.Info.GetContract(), Payload: data}, nil
}

// BurnMsg builds the instruction burning the asset amount. A native amount
// is debited from the holder, a contract token is debited from the calling
// contract's own balance.
func (a Asset) BurnMsg(ctx serde.Context, holder chain.Address) (chain.Instruction, error) {
	if a.Info.IsNative() {
		coin := chain.NewCoin(a.Info.GetDenom(), a.Amount)

		return chain.BurnCoins{Sender: holder, Coin: coin}, nil
	}

	data, err := token.Burn{Amount: a.Amount}.Serialize(ctx)
	if err != nil {
		return nil, xerrors.Errorf("failed to serialize burn: %v", err)
	}

	return chain.Execute{Contract: a.Info.GetContract(), Payload: data}, nil
}

// Unchecked returns the unchecked mirror of the asset.
func (a Asset) Unchecked() AssetUnchecked {
	return AssetUnchecked{Info: a.Info.Unchecked(), Amount: a.Amount}
}

// String implements fmt.Stringer. It returns the info and the amount
// separated by a colon.
func (a Asset) String() string {
	return fmt.Sprintf("%s:%s", a.Info, a.Amount)
}

// Serialize implements serde.Message. It returns the serialized data of the
// asset.
func (a Asset) Serialize(ctx serde.Context) ([]byte, error) {
	format := assetFormats.Get(ctx.GetFormat())

	data, err := format.Encode(ctx, a)
	if err != nil {
		return nil, xerrors.Errorf("failed to encode asset: %v", err)
	}

	return data, nil
}

// AssetUnchecked is the untrusted mirror of an asset. The amount itself is
// not subject to validation, only the info is.
type AssetUnchecked struct {
	Info   InfoUnchecked
	Amount amount.Amount
}

// Check bridges the unchecked asset into a checked one.
func (u AssetUnchecked) Check(val chain.AddressValidator) (Asset, error) {
	info, err := u.Info.Check(val)
	if err != nil {
		return Asset{}, xerrors.Errorf("failed to check info: %w", err)
	}

	return Asset{Info: info, Amount: u.Amount}, nil
}
