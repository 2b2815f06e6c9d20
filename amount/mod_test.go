package amount

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	a := New(69420)

	require.Equal(t, "69420", a.String())
	require.False(t, a.IsZero())
	require.True(t, Amount{}.IsZero())
}

func TestFromBig(t *testing.T) {
	a, err := FromBig(big.NewInt(88888))
	require.NoError(t, err)
	require.Equal(t, New(88888), a)

	_, err = FromBig(big.NewInt(-5))
	require.EqualError(t, err, "amount '-5' is negative")

	huge := new(big.Int).Lsh(big.NewInt(1), 129)

	_, err = FromBig(huge)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestParse(t *testing.T) {
	a, err := Parse("340282366920938463463374607431768211455")
	require.NoError(t, err)
	require.Equal(t, "340282366920938463463374607431768211455", a.String())

	_, err = Parse("")
	require.EqualError(t, err, "amount is empty")

	_, err = Parse("12a")
	require.EqualError(t, err, "invalid amount '12a'")

	_, err = Parse("-3")
	require.EqualError(t, err, "invalid amount '-3'")

	_, err = Parse("340282366920938463463374607431768211456")
	require.ErrorIs(t, err, ErrOverflow)
}

func TestAmount_Add(t *testing.T) {
	sum, err := New(69420).Add(New(1))
	require.NoError(t, err)
	require.Equal(t, New(69421), sum)

	max, err := Parse("340282366920938463463374607431768211455")
	require.NoError(t, err)

	_, err = max.Add(New(1))
	require.ErrorIs(t, err, ErrOverflow)
}

func TestAmount_Sub(t *testing.T) {
	diff, err := New(69420).Sub(New(420))
	require.NoError(t, err)
	require.Equal(t, New(69000), diff)

	diff, err = New(5).Sub(New(5))
	require.NoError(t, err)
	require.True(t, diff.IsZero())

	_, err = New(5).Sub(New(6))
	require.ErrorIs(t, err, ErrUnderflow)
}

func TestAmount_Cmp(t *testing.T) {
	require.Equal(t, -1, New(1).Cmp(New(2)))
	require.Equal(t, 0, New(2).Cmp(New(2)))
	require.Equal(t, 1, New(3).Cmp(New(2)))
	require.True(t, New(7) == New(7))
}

func TestAmount_Big(t *testing.T) {
	a := New(123)

	i := a.Big()
	i.SetInt64(999)

	require.Equal(t, "123", a.String())
}

func TestAmount_Scaled(t *testing.T) {
	require.Equal(t, "0.06942", New(69420).Scaled(6).String())
	require.Equal(t, "69420", New(69420).Scaled(0).String())
}

func TestParseScaled(t *testing.T) {
	a, err := ParseScaled("0.06942", 6)
	require.NoError(t, err)
	require.Equal(t, New(69420), a)

	a, err = ParseScaled("69.42", 2)
	require.NoError(t, err)
	require.Equal(t, New(6942), a)

	_, err = ParseScaled("1.234", 2)
	require.EqualError(t, err, "'1.234' has more than 2 decimal places")

	_, err = ParseScaled("abc", 2)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid decimal 'abc'")

	_, err = ParseScaled("-1", 2)
	require.EqualError(t, err, "amount '-100' is negative")
}

func TestAmount_MarshalJSON(t *testing.T) {
	data, err := New(69420).MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"69420"`, string(data))
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	var a Amount

	err := a.UnmarshalJSON([]byte(`"88888"`))
	require.NoError(t, err)
	require.Equal(t, New(88888), a)

	err = a.UnmarshalJSON([]byte(`123`))
	require.EqualError(t, err, "failed to unmarshal string: json: "+
		"cannot unmarshal number into Go value of type string")

	err = a.UnmarshalJSON([]byte(`"12a"`))
	require.EqualError(t, err, "failed to parse amount: invalid amount '12a'")
}
