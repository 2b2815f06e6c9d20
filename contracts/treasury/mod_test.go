package treasury

import (
	"testing"

	"github.com/duet-dlt/duet/amount"
	"github.com/duet-dlt/duet/asset"
	"github.com/duet-dlt/duet/factory"
	"github.com/duet-dlt/duet/internal/testing/fake"
	"github.com/duet-dlt/duet/token"
	"github.com/stretchr/testify/require"
)

func init() {
	RegisterMsgFormat(fake.GoodFormat, fake.Format{Msg: Deposit{}})
	RegisterMsgFormat(fake.BadFormat, fake.NewBadFormat())
}

func TestDeposit_Serialize(t *testing.T) {
	msg := Deposit{Asset: asset.NewNative("uusd", amount.New(100)).Unchecked()}

	data, err := msg.Serialize(fake.NewContext())
	require.NoError(t, err)
	require.Equal(t, "fake format", string(data))

	_, err = msg.Serialize(fake.NewBadContext())
	require.EqualError(t, err, fake.Err("failed to encode message"))
}

func TestWithdraw_Serialize(t *testing.T) {
	list, err := asset.NewList(asset.NewNative("uusd", amount.New(5)))
	require.NoError(t, err)

	msg := Withdraw{Assets: list.Unchecked()}

	data, err := msg.Serialize(fake.NewContext())
	require.NoError(t, err)
	require.Equal(t, "fake format", string(data))

	_, err = msg.Serialize(fake.NewBadContext())
	require.EqualError(t, err, fake.Err("failed to encode message"))
}

func TestCreateToken_Serialize(t *testing.T) {
	msg := CreateToken{Native: &factory.NativeSpec{Subdenom: "umint"}}

	data, err := msg.Serialize(fake.NewContext())
	require.NoError(t, err)
	require.Equal(t, "fake format", string(data))

	msg = CreateToken{Contract: &ContractToken{
		CodeID: 77,
		Label:  "mock token",
		Init:   token.Init{Name: "Mock Token", Symbol: "MOCK", Decimals: 6},
	}}

	_, err = msg.Serialize(fake.NewBadContext())
	require.EqualError(t, err, fake.Err("failed to encode message"))
}

func TestBalances_Serialize(t *testing.T) {
	msg := Balances{Owner: "alice"}

	data, err := msg.Serialize(fake.NewContext())
	require.NoError(t, err)
	require.Equal(t, "fake format", string(data))

	_, err = msg.Serialize(fake.NewBadContext())
	require.EqualError(t, err, fake.Err("failed to encode message"))
}

func TestMsgFactory_Deserialize(t *testing.T) {
	fac := MsgFactory{}

	msg, err := fac.Deserialize(fake.NewContext(), nil)
	require.NoError(t, err)
	require.Equal(t, Deposit{}, msg)

	_, err = fac.Deserialize(fake.NewBadContext(), nil)
	require.EqualError(t, err, fake.Err("failed to decode message"))
}
