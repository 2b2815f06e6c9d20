// Package amount implements the quantity type used to count fungible assets.
//
// An amount is an unsigned 128-bit integer. The arithmetic operations are
// checked so that an overflow, or an underflow, is always reported to the
// caller instead of wrapping around silently. Amounts are integers end to
// end, decimal representations only appear at display boundaries through
// Scaled and ParseScaled.
package amount

import (
	"encoding/json"
	"math/big"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"
	"lukechampine.com/uint128"
)

// ErrOverflow is returned when the result of an addition does not fit in 128
// bits.
var ErrOverflow = xerrors.New("arithmetic overflow")

// ErrUnderflow is returned when the result of a subtraction would be
// negative.
var ErrUnderflow = xerrors.New("arithmetic underflow")

// Amount is an unsigned 128-bit quantity of an asset. The zero value is the
// amount zero. Amounts are immutable and can be compared with ==.
type Amount struct {
	v uint128.Uint128
}

// New creates an amount from an unsigned integer.
func New(value uint64) Amount {
	return Amount{v: uint128.From64(value)}
}

// FromBig creates an amount from a big integer. It returns an error if the
// integer is negative or does not fit in 128 bits.
func FromBig(i *big.Int) (Amount, error) {
	if i.Sign() < 0 {
		return Amount{}, xerrors.Errorf("amount '%s' is negative", i)
	}

	if i.BitLen() > 128 {
		return Amount{}, xerrors.Errorf("amount '%s': %w", i, ErrOverflow)
	}

	return Amount{v: uint128.FromBig(i)}, nil
}

// Parse creates an amount from its base 10 representation. Only digits are
// accepted, in particular no sign and no decimal separator.
func Parse(str string) (Amount, error) {
	if str == "" {
		return Amount{}, xerrors.New("amount is empty")
	}

	for _, r := range str {
		if r < '0' || r > '9' {
			return Amount{}, xerrors.Errorf("invalid amount '%s'", str)
		}
	}

	i, ok := new(big.Int).SetString(str, 10)
	if !ok {
		return Amount{}, xerrors.Errorf("invalid amount '%s'", str)
	}

	return FromBig(i)
}

// Add returns a + b, or ErrOverflow if the sum does not fit in 128 bits.
func (a Amount) Add(b Amount) (Amount, error) {
	sum := a.v.AddWrap(b.v)
	if sum.Cmp(a.v) < 0 {
		return Amount{}, ErrOverflow
	}

	return Amount{v: sum}, nil
}

// Sub returns a - b, or ErrUnderflow if b is bigger than a.
func (a Amount) Sub(b Amount) (Amount, error) {
	if a.v.Cmp(b.v) < 0 {
		return Amount{}, ErrUnderflow
	}

	return Amount{v: a.v.SubWrap(b.v)}, nil
}

// Cmp compares a and b and returns -1, 0 or 1 when a is respectively smaller
// than, equal to, or bigger than b.
func (a Amount) Cmp(b Amount) int {
	return a.v.Cmp(b.v)
}

// IsZero returns true when the amount is zero.
func (a Amount) IsZero() bool {
	return a.v.IsZero()
}

// Big returns the amount as a newly allocated big integer.
func (a Amount) Big() *big.Int {
	return a.v.Big()
}

// String implements fmt.Stringer. It returns the base 10 representation of
// the amount.
func (a Amount) String() string {
	return a.v.String()
}

// Scaled returns the decimal representation of the amount for a given number
// of decimal places, for display purposes.
func (a Amount) Scaled(decimals int32) decimal.Decimal {
	return decimal.NewFromBigInt(a.Big(), -decimals)
}

// ParseScaled creates an amount from a decimal representation at a given
// number of decimal places. It returns an error if the value carries more
// precision than the scale can hold.
func ParseScaled(str string, decimals int32) (Amount, error) {
	d, err := decimal.NewFromString(str)
	if err != nil {
		return Amount{}, xerrors.Errorf("invalid decimal '%s': %v", str, err)
	}

	shifted := d.Shift(decimals)
	if !shifted.Equal(shifted.Truncate(0)) {
		return Amount{}, xerrors.Errorf(
			"'%s' has more than %d decimal places", str, decimals)
	}

	return FromBig(shifted.BigInt())
}

// MarshalJSON implements json.Marshaler. The amount is encoded as a base 10
// string, as the platform encodes coin amounts.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var str string

	err := json.Unmarshal(data, &str)
	if err != nil {
		return xerrors.Errorf("failed to unmarshal string: %v", err)
	}

	parsed, err := Parse(str)
	if err != nil {
		return xerrors.Errorf("failed to parse amount: %v", err)
	}

	*a = parsed

	return nil
}
