package asset

import (
	"github.com/duet-dlt/duet/amount"
	"github.com/duet-dlt/duet/chain"
	"github.com/duet-dlt/duet/serde"
	"golang.org/x/xerrors"
)

// Kind is the discriminant of an asset info. Its byte value doubles as the
// leading byte of the storage key, so that the keys of one kind always sort
// as a contiguous block.
type Kind byte

const (
	// KindContract identifies a token tracked by a contract. It uses the
	// minimum byte value so contract keys sort first.
	KindContract Kind = 0x00

	// KindNative identifies a denomination tracked by the chain ledger. It
	// uses the maximum byte value so native keys sort last.
	KindNative Kind = 0xff
)

// Info identifies a token kind. It is either a native denomination or the
// address of a token contract. A native denom is expected to be non-empty,
// and a contract address is only ever produced by an address validator, so
// that two infos are interchangeable if and only if they are equal.
//
// - implements serde.Message
type Info struct {
	kind     Kind
	denom    string
	contract chain.Address
}

// NewNativeInfo creates the info of a native denomination.
func NewNativeInfo(denom string) Info {
	return Info{kind: KindNative, denom: denom}
}

// NewContractInfo creates the info of a contract token.
func NewContractInfo(addr chain.Address) Info {
	return Info{kind: KindContract, contract: addr}
}

// GetKind returns the kind of the info.
func (i Info) GetKind() Kind {
	return i.kind
}

// IsNative returns true if the info is a native denomination.
func (i Info) IsNative() bool {
	return i.kind == KindNative
}

// GetDenom returns the denomination, or an empty string for a contract
// token.
func (i Info) GetDenom() string {
	return i.denom
}

// GetContract returns the token contract address, or an empty address for a
// native denomination.
func (i Info) GetContract() chain.Address {
	return i.contract
}

// WithAmount creates an asset of this info with the given amount.
func (i Info) WithAmount(value amount.Amount) Asset {
	return Asset{Info: i, Amount: value}
}

// QueryBalance returns the live balance of the holder for this asset kind.
// The query error, if any, is returned as is.
func (i Info) QueryBalance(qry chain.Querier, holder chain.Address) (amount.Amount, error) {
	if i.kind == KindNative {
		return qry.NativeBalance(holder, i.denom)
	}

	return qry.TokenBalance(i.contract, holder)
}

// Unchecked returns the unchecked mirror of the info.
func (i Info) Unchecked() InfoUnchecked {
	return InfoUnchecked{kind: i.kind, value: i.String()}
}

// String implements fmt.Stringer. It returns the denomination or the
// contract address.
func (i Info) String() string {
	if i.kind == KindNative {
		return i.denom
	}

	return i.contract.String()
}

// Serialize implements serde.Message. It returns the serialized data of the
// info.
func (i Info) Serialize(ctx serde.Context) ([]byte, error) {
	format := infoFormats.Get(ctx.GetFormat())

	data, err := format.Encode(ctx, i)
	if err != nil {
		return nil, xerrors.Errorf("failed to encode info: %v", err)
	}

	return data, nil
}

// InfoUnchecked is the untrusted mirror of an info. The payload is a raw
// string that has not been through validation.
type InfoUnchecked struct {
	kind  Kind
	value string
}

// NewNativeInfoUnchecked creates the unchecked info of a native
// denomination.
func NewNativeInfoUnchecked(denom string) InfoUnchecked {
	return InfoUnchecked{kind: KindNative, value: denom}
}

// NewContractInfoUnchecked creates the unchecked info of a contract token
// from a raw address string.
func NewContractInfoUnchecked(addr string) InfoUnchecked {
	return InfoUnchecked{kind: KindContract, value: addr}
}

// GetKind returns the kind of the info.
func (u InfoUnchecked) GetKind() Kind {
	return u.kind
}

// String implements fmt.Stringer. It returns the raw payload.
func (u InfoUnchecked) String() string {
	return u.value
}

// Check bridges the unchecked info into a checked one. A contract address is
// resolved through the validator, a native denomination is passed through
// unchanged.
func (u InfoUnchecked) Check(val chain.AddressValidator) (Info, error) {
	if u.kind == KindNative {
		return NewNativeInfo(u.value), nil
	}

	addr, err := val.Validate(u.value)
	if err != nil {
		return Info{}, xerrors.Errorf("failed to check contract address: %w", err)
	}

	return NewContractInfo(addr), nil
}
