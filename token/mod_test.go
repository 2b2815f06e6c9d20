package token

import (
	"testing"

	"github.com/duet-dlt/duet/amount"
	"github.com/duet-dlt/duet/internal/testing/fake"
	"github.com/stretchr/testify/require"
)

func init() {
	RegisterMsgFormat(fake.GoodFormat, fake.Format{Msg: Transfer{}})
	RegisterMsgFormat(fake.BadFormat, fake.NewBadFormat())
	RegisterInitFormat(fake.GoodFormat, fake.Format{Msg: Init{}})
	RegisterInitFormat(fake.BadFormat, fake.NewBadFormat())
	RegisterResponseFormat(fake.GoodFormat, fake.Format{Msg: BalanceResponse{}})
	RegisterResponseFormat(fake.BadFormat, fake.NewBadFormat())
	RegisterResponseFormat(fake.MsgFormat, fake.Format{Msg: fake.Message{}})
}

func TestTransfer_Serialize(t *testing.T) {
	msg := Transfer{Recipient: "alice", Amount: amount.New(88888)}

	data, err := msg.Serialize(fake.NewContext())
	require.NoError(t, err)
	require.Equal(t, "fake format", string(data))

	_, err = msg.Serialize(fake.NewBadContext())
	require.EqualError(t, err, fake.Err("failed to encode message"))
}

func TestSend_Serialize(t *testing.T) {
	msg := Send{Contract: "pool", Amount: amount.New(5), Msg: []byte("{}")}

	data, err := msg.Serialize(fake.NewContext())
	require.NoError(t, err)
	require.Equal(t, "fake format", string(data))

	_, err = msg.Serialize(fake.NewBadContext())
	require.EqualError(t, err, fake.Err("failed to encode message"))
}

func TestTransferFrom_Serialize(t *testing.T) {
	msg := TransferFrom{Owner: "alice", Recipient: "bob", Amount: amount.New(1)}

	data, err := msg.Serialize(fake.NewContext())
	require.NoError(t, err)
	require.Equal(t, "fake format", string(data))

	_, err = msg.Serialize(fake.NewBadContext())
	require.EqualError(t, err, fake.Err("failed to encode message"))
}

func TestMint_Serialize(t *testing.T) {
	msg := Mint{Recipient: "alice", Amount: amount.New(42)}

	data, err := msg.Serialize(fake.NewContext())
	require.NoError(t, err)
	require.Equal(t, "fake format", string(data))

	_, err = msg.Serialize(fake.NewBadContext())
	require.EqualError(t, err, fake.Err("failed to encode message"))
}

func TestBurn_Serialize(t *testing.T) {
	msg := Burn{Amount: amount.New(42)}

	data, err := msg.Serialize(fake.NewContext())
	require.NoError(t, err)
	require.Equal(t, "fake format", string(data))

	_, err = msg.Serialize(fake.NewBadContext())
	require.EqualError(t, err, fake.Err("failed to encode message"))
}

func TestBalanceQuery_Serialize(t *testing.T) {
	msg := BalanceQuery{Address: "alice"}

	data, err := msg.Serialize(fake.NewContext())
	require.NoError(t, err)
	require.Equal(t, "fake format", string(data))

	_, err = msg.Serialize(fake.NewBadContext())
	require.EqualError(t, err, fake.Err("failed to encode message"))
}

func TestInit_Serialize(t *testing.T) {
	supply := amount.New(1000000)

	msg := Init{
		Name:     "Mock Token",
		Symbol:   "MOCK",
		Decimals: 6,
		InitialBalances: []InitialBalance{
			{Address: "alice", Amount: amount.New(500)},
		},
		Mint: &Minter{Minter: "dao", Cap: &supply},
	}

	data, err := msg.Serialize(fake.NewContext())
	require.NoError(t, err)
	require.Equal(t, "fake format", string(data))

	_, err = msg.Serialize(fake.NewBadContext())
	require.EqualError(t, err, fake.Err("failed to encode init"))
}

func TestBalanceResponse_Serialize(t *testing.T) {
	msg := BalanceResponse{Balance: amount.New(69420)}

	data, err := msg.Serialize(fake.NewContext())
	require.NoError(t, err)
	require.Equal(t, "fake format", string(data))

	_, err = msg.Serialize(fake.NewBadContext())
	require.EqualError(t, err, fake.Err("failed to encode response"))
}

func TestMsgFactory_Deserialize(t *testing.T) {
	fac := MsgFactory{}

	msg, err := fac.Deserialize(fake.NewContext(), nil)
	require.NoError(t, err)
	require.Equal(t, Transfer{}, msg)

	_, err = fac.Deserialize(fake.NewBadContext(), nil)
	require.EqualError(t, err, fake.Err("failed to decode message"))
}

func TestInitFactory_Deserialize(t *testing.T) {
	fac := InitFactory{}

	msg, err := fac.Deserialize(fake.NewContext(), nil)
	require.NoError(t, err)
	require.Equal(t, Init{}, msg)

	_, err = fac.Deserialize(fake.NewBadContext(), nil)
	require.EqualError(t, err, fake.Err("failed to decode init"))
}

func TestResponseFactory_Deserialize(t *testing.T) {
	fac := ResponseFactory{}

	msg, err := fac.Deserialize(fake.NewContext(), nil)
	require.NoError(t, err)
	require.Equal(t, BalanceResponse{}, msg)

	_, err = fac.Deserialize(fake.NewBadContext(), nil)
	require.EqualError(t, err, fake.Err("failed to decode response"))
}

func TestResponseFactory_ResponseOf(t *testing.T) {
	fac := ResponseFactory{}

	resp, err := fac.ResponseOf(fake.NewContext(), nil)
	require.NoError(t, err)
	require.Equal(t, BalanceResponse{}, resp)

	_, err = fac.ResponseOf(fake.NewBadContext(), nil)
	require.EqualError(t, err, fake.Err("failed to decode response"))

	_, err = fac.ResponseOf(fake.NewContextWithFormat(fake.MsgFormat), nil)
	require.EqualError(t, err, "invalid response of type 'fake.Message'")
}
