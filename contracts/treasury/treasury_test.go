package treasury

import (
	"testing"

	"github.com/duet-dlt/duet/amount"
	"github.com/duet-dlt/duet/asset"
	_ "github.com/duet-dlt/duet/asset/json"
	"github.com/duet-dlt/duet/chain"
	"github.com/duet-dlt/duet/core/execution"
	"github.com/duet-dlt/duet/core/execution/native"
	"github.com/duet-dlt/duet/core/store"
	"github.com/duet-dlt/duet/core/store/prefixed"
	"github.com/duet-dlt/duet/factory"
	"github.com/duet-dlt/duet/internal/testing/fake"
	"github.com/duet-dlt/duet/serde"
	"github.com/duet-dlt/duet/token"
	_ "github.com/duet-dlt/duet/token/json"
	"github.com/stretchr/testify/require"
)

func init() {
	RegisterMsgFormat(formatWithdraw, fake.Format{Msg: Withdraw{}})
	RegisterMsgFormat(formatCreate, fake.Format{Msg: CreateToken{}})
	RegisterMsgFormat(formatBalances, fake.Format{Msg: Balances{}})
	RegisterMsgFormat(fake.MsgFormat, fake.Format{Msg: fake.Message{}})

	asset.RegisterInfoFormat(fake.BadFormat, fake.NewBadFormat())
	asset.RegisterListFormat(fake.BadFormat, fake.NewBadFormat())
	token.RegisterInitFormat(fake.BadFormat, fake.NewBadFormat())
}

func TestRegisterContract(t *testing.T) {
	RegisterContract(native.NewRegistry(), makeContract(fake.NewContext()))
}

func TestContract_Execute(t *testing.T) {
	contract := makeContract(fake.NewBadContext())

	_, err := contract.Execute(fake.NewSnapshot(), makeExecCtx(), nil)
	require.EqualError(t, err, fake.Err("failed to decode message"))

	contract = makeContract(fake.NewContext())
	contract.cmd = fakeCmd{err: fake.GetError()}

	_, err = contract.Execute(fake.NewSnapshot(), makeExecCtx(), nil)
	require.EqualError(t, err, fake.Err("failed to deposit"))

	contract = makeContract(fake.NewContextWithFormat(formatWithdraw))
	contract.cmd = fakeCmd{err: fake.GetError()}

	_, err = contract.Execute(fake.NewSnapshot(), makeExecCtx(), nil)
	require.EqualError(t, err, fake.Err("failed to withdraw"))

	contract = makeContract(fake.NewContextWithFormat(formatCreate))
	contract.cmd = fakeCmd{err: fake.GetError()}

	_, err = contract.Execute(fake.NewSnapshot(), makeExecCtx(), nil)
	require.EqualError(t, err, fake.Err("failed to create token"))

	contract = makeContract(fake.NewContextWithFormat(formatBalances))
	contract.cmd = fakeCmd{err: fake.GetError()}

	_, err = contract.Execute(fake.NewSnapshot(), makeExecCtx(), nil)
	require.EqualError(t, err, fake.Err("failed to query balances"))

	contract = makeContract(fake.NewContextWithFormat(fake.MsgFormat))

	_, err = contract.Execute(fake.NewSnapshot(), makeExecCtx(), nil)
	require.EqualError(t, err, "unsupported message of type 'fake.Message'")

	contract = makeContract(fake.NewContext())
	contract.cmd = fakeCmd{}

	res, err := contract.Execute(fake.NewSnapshot(), makeExecCtx(), nil)
	require.NoError(t, err)
	require.Equal(t, execution.Response{}, res)
}

func TestContract_Reply(t *testing.T) {
	contract := makeContract(fake.NewContextWithFormat(serde.FormatJSON))

	snap := fake.NewSnapshot()

	provisioner := factory.NewProvisioner(selfAddr, chain.NewRuleValidator(3, 64))

	_, err := provisioner.Request(snap, factory.NativeSpec{Subdenom: "umint"}, KeyMintedDenom)
	require.NoError(t, err)

	res, err := contract.Reply(snap, makeDenomReply("factory/treasury_1/umint"))
	require.NoError(t, err)
	require.Empty(t, res.Submissions)
	require.Equal(t, []chain.Attribute{
		{Key: "action", Value: "token_provisioned"},
		{Key: "asset", Value: "factory/treasury_1/umint"},
	}, res.Attributes)

	info, err := factory.LoadInfo(contract.context, snap, KeyMintedDenom)
	require.NoError(t, err)
	require.Equal(t, asset.NewNativeInfo("factory/treasury_1/umint"), info)

	data, err := asset.NewMap(nameAssets).Load(snap, info)
	require.NoError(t, err)
	require.Equal(t, `{"native":"factory/treasury_1/umint"}`, string(data))

	_, err = contract.Reply(snap, chain.NewFailedReply(factory.TagCreateDenom, "out of gas"))
	require.EqualError(t, err, "failed to resolve token: provisioning failed: out of gas")
	require.ErrorIs(t, err, factory.ErrProvisioningFailed)

	contract = makeContract(fake.NewBadContext())

	snap = fake.NewSnapshot()

	_, err = provisioner.Request(snap, factory.NativeSpec{Subdenom: "umint"}, KeyMintedDenom)
	require.NoError(t, err)

	_, err = contract.Reply(snap, makeDenomReply("factory/treasury_1/umint"))
	require.EqualError(t, err,
		fake.Err("failed to resolve token: failed to serialize info: failed to encode info"))
}

func TestCommand_Deposit(t *testing.T) {
	contract := makeContract(fake.NewContextWithFormat(serde.FormatJSON))

	cmd := treasuryCommand{Contract: &contract}

	bad := asset.AssetUnchecked{Info: asset.NewContractInfoUnchecked("x"), Amount: amount.New(1)}

	_, err := cmd.deposit(fake.NewSnapshot(), makeExecCtx(), Deposit{Asset: bad})
	require.EqualError(t, err, "failed to check asset: failed to check info: "+
		"failed to check contract address: address 'x' is too short: invalid address")

	uusd := asset.NewNative("uusd", amount.New(100)).Unchecked()

	_, err = cmd.deposit(fake.NewSnapshot(), makeExecCtx(), Deposit{Asset: uusd})
	require.EqualError(t, err, "failed to check funds: must deposit exactly one coin; received 0")

	_, err = cmd.deposit(fake.NewSnapshot(),
		makeExecCtx(chain.NewCoin("uatom", amount.New(100))), Deposit{Asset: uusd})
	require.EqualError(t, err, "failed to check funds: expected uusd deposit, received uatom")

	_, err = cmd.deposit(fake.NewSnapshot(),
		makeExecCtx(chain.NewCoin("uusd", amount.New(50))), Deposit{Asset: uusd})
	require.EqualError(t, err, "funds of '50' do not match the deposit of '100'")

	snap := fake.NewSnapshot()

	res, err := cmd.deposit(snap,
		makeExecCtx(chain.NewCoin("uusd", amount.New(100))), Deposit{Asset: uusd})
	require.NoError(t, err)
	require.Empty(t, res.Submissions)
	require.Equal(t, []chain.Attribute{
		{Key: "action", Value: "deposit"},
		{Key: "asset", Value: "uusd:100"},
	}, res.Attributes)

	stored, err := prefixed.NewReadable(prefixBalances, snap).Get([]byte("alice_1"))
	require.NoError(t, err)
	require.Equal(t, `[{"info":{"native":"uusd"},"amount":"100"}]`, string(stored))

	reserve, err := asset.NewMap(nameReserves).Load(snap, asset.NewNativeInfo("uusd"))
	require.NoError(t, err)
	require.Equal(t, `"100"`, string(reserve))

	_, err = cmd.deposit(snap, makeExecCtx(chain.NewCoin("uusd", amount.New(50))),
		Deposit{Asset: asset.NewNative("uusd", amount.New(50)).Unchecked()})
	require.NoError(t, err)

	stored, err = prefixed.NewReadable(prefixBalances, snap).Get([]byte("alice_1"))
	require.NoError(t, err)
	require.Equal(t, `[{"info":{"native":"uusd"},"amount":"150"}]`, string(stored))

	reserve, err = asset.NewMap(nameReserves).Load(snap, asset.NewNativeInfo("uusd"))
	require.NoError(t, err)
	require.Equal(t, `"150"`, string(reserve))

	mock := asset.NewContract(tokenAddr, amount.New(25)).Unchecked()

	_, err = cmd.deposit(fake.NewSnapshot(),
		makeExecCtx(chain.NewCoin("uusd", amount.New(1))), Deposit{Asset: mock})
	require.EqualError(t, err, "unexpected funds attached to a token deposit")

	snap = fake.NewSnapshot()

	res, err = cmd.deposit(snap, makeExecCtx(), Deposit{Asset: mock})
	require.NoError(t, err)
	require.Equal(t, []chain.Submission{
		chain.Submit(chain.Execute{
			Contract: tokenAddr,
			Payload: []byte(`{"transfer_from":` +
				`{"owner":"alice_1","recipient":"treasury_1","amount":"25"}}`),
		}),
	}, res.Submissions)

	stored, err = prefixed.NewReadable(prefixBalances, snap).Get([]byte("alice_1"))
	require.NoError(t, err)
	require.Equal(t, `[{"info":{"contract":"mock_token"},"amount":"25"}]`, string(stored))

	_, err = cmd.deposit(fake.NewBadSnapshot(),
		makeExecCtx(chain.NewCoin("uusd", amount.New(100))), Deposit{Asset: uusd})
	require.EqualError(t, err, fake.Err("failed to read balances"))

	snap = fake.NewSnapshot()
	snap.ErrWrite = fake.GetError()

	_, err = cmd.deposit(snap,
		makeExecCtx(chain.NewCoin("uusd", amount.New(100))), Deposit{Asset: uusd})
	require.EqualError(t, err, fake.Err("failed to write balances"))

	badContract := makeContract(fake.NewBadContext())
	badCmd := treasuryCommand{Contract: &badContract}

	_, err = badCmd.deposit(fake.NewSnapshot(),
		makeExecCtx(chain.NewCoin("uusd", amount.New(100))), Deposit{Asset: uusd})
	require.EqualError(t, err, fake.Err("failed to serialize balances: failed to encode list"))
}

func TestCommand_Withdraw(t *testing.T) {
	contract := makeContract(fake.NewContextWithFormat(serde.FormatJSON))

	cmd := treasuryCommand{Contract: &contract}

	bad := asset.ListUnchecked{{Info: asset.NewContractInfoUnchecked("x"), Amount: amount.New(1)}}

	_, err := cmd.withdraw(fake.NewSnapshot(), makeExecCtx(), Withdraw{Assets: bad})
	require.EqualError(t, err, "failed to check assets: failed to check 'x': "+
		"failed to check contract address: address 'x' is too short: invalid address")

	uusd := mustList(t, asset.NewNative("uusd", amount.New(40)))

	_, err = cmd.withdraw(fake.NewSnapshot(), makeExecCtx(), Withdraw{Assets: uusd.Unchecked()})
	require.EqualError(t, err,
		"failed to debit: failed to deduct 'uusd:40': asset 'uusd': asset not found")
	require.ErrorIs(t, err, asset.ErrNotFound)

	snap := fake.NewSnapshot()

	_, err = cmd.deposit(snap, makeExecCtx(chain.NewCoin("uusd", amount.New(100))),
		Deposit{Asset: asset.NewNative("uusd", amount.New(100)).Unchecked()})
	require.NoError(t, err)

	over := mustList(t, asset.NewNative("uusd", amount.New(150)))

	_, err = cmd.withdraw(snap, makeExecCtx(), Withdraw{Assets: over.Unchecked()})
	require.EqualError(t, err,
		"failed to debit: failed to deduct 'uusd:150': failed to deduct amount: arithmetic underflow")
	require.ErrorIs(t, err, amount.ErrUnderflow)

	res, err := cmd.withdraw(snap, makeExecCtx(), Withdraw{Assets: uusd.Unchecked()})
	require.NoError(t, err)
	require.Equal(t, []chain.Submission{
		chain.Submit(chain.Transfer{
			To:    "alice_1",
			Coins: []chain.Coin{chain.NewCoin("uusd", amount.New(40))},
		}),
	}, res.Submissions)
	require.Equal(t, []chain.Attribute{
		{Key: "action", Value: "withdraw"},
		{Key: "assets", Value: "uusd:40"},
	}, res.Attributes)

	stored, err := prefixed.NewReadable(prefixBalances, snap).Get([]byte("alice_1"))
	require.NoError(t, err)
	require.Equal(t, `[{"info":{"native":"uusd"},"amount":"60"}]`, string(stored))

	reserve, err := asset.NewMap(nameReserves).Load(snap, asset.NewNativeInfo("uusd"))
	require.NoError(t, err)
	require.Equal(t, `"60"`, string(reserve))

	rest := mustList(t, asset.NewNative("uusd", amount.New(60)))

	_, err = cmd.withdraw(snap, makeExecCtx(), Withdraw{Assets: rest.Unchecked()})
	require.NoError(t, err)
	require.Equal(t, 0, snap.Len())

	snap = fake.NewSnapshot()

	_, err = cmd.deposit(snap, makeExecCtx(),
		Deposit{Asset: asset.NewContract(tokenAddr, amount.New(25)).Unchecked()})
	require.NoError(t, err)

	tok := mustList(t, asset.NewContract(tokenAddr, amount.New(10)))

	res, err = cmd.withdraw(snap, makeExecCtx(), Withdraw{Assets: tok.Unchecked()})
	require.NoError(t, err)
	require.Equal(t, []chain.Submission{
		chain.Submit(chain.Execute{
			Contract: tokenAddr,
			Payload:  []byte(`{"transfer":{"recipient":"alice_1","amount":"10"}}`),
		}),
	}, res.Submissions)

	stored, err = prefixed.NewReadable(prefixBalances, snap).Get([]byte("alice_1"))
	require.NoError(t, err)
	require.Equal(t, `[{"info":{"contract":"mock_token"},"amount":"15"}]`, string(stored))

	_, err = cmd.withdraw(fake.NewBadSnapshot(), makeExecCtx(), Withdraw{Assets: uusd.Unchecked()})
	require.EqualError(t, err, fake.Err("failed to read balances"))
}

func TestCommand_CreateToken(t *testing.T) {
	contract := makeContract(fake.NewContextWithFormat(serde.FormatJSON))

	cmd := treasuryCommand{Contract: &contract}

	_, err := cmd.createToken(fake.NewSnapshot(), CreateToken{})
	require.EqualError(t, err, "token spec is empty")

	res, err := cmd.createToken(fake.NewSnapshot(),
		CreateToken{Native: &factory.NativeSpec{Subdenom: "umint"}})
	require.NoError(t, err)
	require.Equal(t, []chain.Submission{
		chain.SubmitForReply(chain.CreateDenom{
			Sender:   selfAddr,
			Subdenom: "umint",
		}, factory.TagCreateDenom),
	}, res.Submissions)
	require.Equal(t, []chain.Attribute{
		{Key: "action", Value: "create_token"},
	}, res.Attributes)

	ct := &ContractToken{
		CodeID: 77,
		Label:  "mock token",
		Admin:  "treasury_1",
		Init:   token.Init{Name: "Mock Token", Symbol: "MOCK", Decimals: 6},
	}

	res, err = cmd.createToken(fake.NewSnapshot(), CreateToken{Contract: ct})
	require.NoError(t, err)
	require.Equal(t, []chain.Submission{
		chain.SubmitForReply(chain.Instantiate{
			CodeID: 77,
			Label:  "mock token",
			Admin:  "treasury_1",
			Payload: []byte(`{"name":"Mock Token","symbol":"MOCK",` +
				`"decimals":6,"initial_balances":[]}`),
		}, factory.TagInstantiateToken),
	}, res.Submissions)

	badContract := makeContract(fake.NewBadContext())
	badCmd := treasuryCommand{Contract: &badContract}

	_, err = badCmd.createToken(fake.NewSnapshot(), CreateToken{Contract: ct})
	require.EqualError(t, err, fake.Err("failed to serialize init: failed to encode init"))

	_, err = cmd.createToken(fake.NewBadSnapshot(),
		CreateToken{Native: &factory.NativeSpec{Subdenom: "umint"}})
	require.EqualError(t, err, fake.Err("failed to request token: failed to save pending key"))
}

func TestCommand_Balances(t *testing.T) {
	contract := makeContract(fake.NewContextWithFormat(serde.FormatJSON))

	cmd := treasuryCommand{Contract: &contract}

	_, err := cmd.balances(fake.NewSnapshot(), Balances{Owner: "x"})
	require.EqualError(t, err, "failed to check owner: address 'x' is too short: invalid address")

	snap := fake.NewSnapshot()

	res, err := cmd.balances(snap, Balances{Owner: "alice_1"})
	require.NoError(t, err)
	require.Equal(t, []chain.Attribute{
		{Key: "action", Value: "balances"},
		{Key: "owner", Value: "alice_1"},
		{Key: "balances", Value: ""},
	}, res.Attributes)

	_, err = cmd.deposit(snap, makeExecCtx(chain.NewCoin("uusd", amount.New(100))),
		Deposit{Asset: asset.NewNative("uusd", amount.New(100)).Unchecked()})
	require.NoError(t, err)

	_, err = cmd.deposit(snap, makeExecCtx(),
		Deposit{Asset: asset.NewContract(tokenAddr, amount.New(25)).Unchecked()})
	require.NoError(t, err)

	res, err = cmd.balances(snap, Balances{Owner: "alice_1"})
	require.NoError(t, err)
	require.Equal(t, []chain.Attribute{
		{Key: "action", Value: "balances"},
		{Key: "owner", Value: "alice_1"},
		{Key: "balances", Value: "uusd:100,mock_token:25"},
	}, res.Attributes)

	dirty := fake.NewSnapshot()

	err = prefixed.NewSnapshot(prefixBalances, dirty).Set([]byte("alice_1"), []byte(`[{"amount":"1"}]`))
	require.NoError(t, err)

	_, err = cmd.balances(dirty, Balances{Owner: "alice_1"})
	require.EqualError(t, err,
		"failed to restore balances: failed to decode list: failed to decode asset: info is empty")

	_, err = cmd.balances(fake.NewBadSnapshot(), Balances{Owner: "alice_1"})
	require.EqualError(t, err, fake.Err("failed to read balances"))
}

// -----------------------------------------------------------------------------
// Utility functions

const (
	formatWithdraw = serde.Format("TreasuryWithdraw")
	formatCreate   = serde.Format("TreasuryCreate")
	formatBalances = serde.Format("TreasuryBalances")
)

var (
	selfAddr  = chain.AddressUnchecked("treasury_1")
	aliceAddr = chain.AddressUnchecked("alice_1")
	tokenAddr = chain.AddressUnchecked("mock_token")
)

func makeContract(ctx serde.Context) Contract {
	return NewContract(selfAddr, chain.NewRuleValidator(3, 64), ctx)
}

func makeExecCtx(funds ...chain.Coin) execution.Context {
	return execution.Context{Self: selfAddr, Sender: aliceAddr, Funds: funds}
}

func makeDenomReply(denom string) chain.Reply {
	return chain.NewReply(factory.TagCreateDenom, chain.Result{
		Events: []chain.Event{chain.NewEvent("create_denom",
			chain.Attribute{Key: "new_token_denom", Value: denom})},
	})
}

func mustList(t *testing.T, assets ...asset.Asset) asset.List {
	t.Helper()

	list, err := asset.NewList(assets...)
	require.NoError(t, err)

	return list
}

type fakeCmd struct {
	err error
}

func (c fakeCmd) deposit(snap store.Snapshot, ctx execution.Context,
	dep Deposit) (execution.Response, error) {

	return execution.Response{}, c.err
}

func (c fakeCmd) withdraw(snap store.Snapshot, ctx execution.Context,
	wit Withdraw) (execution.Response, error) {

	return execution.Response{}, c.err
}

func (c fakeCmd) createToken(snap store.Snapshot, ct CreateToken) (execution.Response, error) {
	return execution.Response{}, c.err
}

func (c fakeCmd) balances(snap store.Snapshot, b Balances) (execution.Response, error) {
	return execution.Response{}, c.err
}
