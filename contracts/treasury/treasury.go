package treasury

import (
	"github.com/duet-dlt/duet"
	"github.com/duet-dlt/duet/amount"
	"github.com/duet-dlt/duet/asset"
	"github.com/duet-dlt/duet/chain"
	"github.com/duet-dlt/duet/core/execution"
	"github.com/duet-dlt/duet/core/execution/native"
	"github.com/duet-dlt/duet/core/store"
	"github.com/duet-dlt/duet/core/store/prefixed"
	"github.com/duet-dlt/duet/factory"
	"github.com/duet-dlt/duet/serde"
	"github.com/duet-dlt/duet/token"
	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
)

// Storage layout of the treasury. Balances are serialized asset lists keyed
// by owner, reserves and provisioned assets are keyed by the canonical asset
// key.
const (
	prefixBalances = "treasury:balances"
	nameReserves   = "treasury:reserves"
	nameAssets     = "treasury:assets"

	// KeyMintedDenom is the storage key a provisioned ledger denom resolves
	// into.
	KeyMintedDenom = "treasury:minted"

	// KeyTokenAddress is the storage key a provisioned token contract
	// resolves into.
	KeyTokenAddress = "treasury:token"
)

// commands defines the internal commands of the treasury. The interface
// helps in testing the contract.
type commands interface {
	deposit(snap store.Snapshot, ctx execution.Context, dep Deposit) (execution.Response, error)
	withdraw(snap store.Snapshot, ctx execution.Context, wit Withdraw) (execution.Response, error)
	createToken(snap store.Snapshot, ct CreateToken) (execution.Response, error)
	balances(snap store.Snapshot, b Balances) (execution.Response, error)
}

// RegisterContract registers the treasury to the given registry.
func RegisterContract(reg *native.Registry, c Contract) {
	reg.Set(ContractName, c)
}

// Contract is the treasury contract.
//
// - implements execution.Contract
type Contract struct {
	self    chain.Address
	val     chain.AddressValidator
	context serde.Context
	cmd     commands
	logger  zerolog.Logger
}

// NewContract creates a treasury deployed at the given address. The
// serialization context decides the wire format of the messages and of the
// stored values.
func NewContract(self chain.Address, val chain.AddressValidator, ctx serde.Context) Contract {
	contract := Contract{
		self:    self,
		val:     val,
		context: serde.WithFactory(ctx, InitKey{}, token.InitFactory{}),
		logger:  duet.Logger.With().Str("contract", ContractName).Logger(),
	}

	contract.cmd = treasuryCommand{Contract: &contract}

	return contract
}

// Execute implements execution.Contract. It runs the command matching the
// message.
func (c Contract) Execute(snap store.Snapshot, ctx execution.Context,
	msg []byte) (execution.Response, error) {

	m, err := MsgFactory{}.Deserialize(c.context, msg)
	if err != nil {
		return execution.Response{}, err
	}

	switch in := m.(type) {
	case Deposit:
		res, err := c.cmd.deposit(snap, ctx, in)
		if err != nil {
			return execution.Response{}, xerrors.Errorf("failed to deposit: %w", err)
		}

		return res, nil

	case Withdraw:
		res, err := c.cmd.withdraw(snap, ctx, in)
		if err != nil {
			return execution.Response{}, xerrors.Errorf("failed to withdraw: %w", err)
		}

		return res, nil

	case CreateToken:
		res, err := c.cmd.createToken(snap, in)
		if err != nil {
			return execution.Response{}, xerrors.Errorf("failed to create token: %w", err)
		}

		return res, nil

	case Balances:
		res, err := c.cmd.balances(snap, in)
		if err != nil {
			return execution.Response{}, xerrors.Errorf("failed to query balances: %w", err)
		}

		return res, nil

	default:
		return execution.Response{}, xerrors.Errorf("unsupported message of type '%T'", m)
	}
}

// Reply implements execution.Contract. It resolves a pending token
// provisioning and records the new asset.
func (c Contract) Reply(snap store.Snapshot, reply chain.Reply) (execution.Response, error) {
	provisioner := factory.NewProvisioner(c.self, c.val)

	info, err := provisioner.Resolve(c.context, snap, reply)
	if err != nil {
		return execution.Response{}, xerrors.Errorf("failed to resolve token: %w", err)
	}

	data, err := info.Serialize(c.context)
	if err != nil {
		return execution.Response{}, xerrors.Errorf("failed to serialize info: %v", err)
	}

	err = asset.NewMap(nameAssets).Save(snap, info, data)
	if err != nil {
		return execution.Response{}, xerrors.Errorf("failed to record asset: %v", err)
	}

	res := execution.Response{
		Attributes: []chain.Attribute{
			{Key: "action", Value: "token_provisioned"},
			{Key: "asset", Value: info.String()},
		},
	}

	return res, nil
}

// treasuryCommand implements the commands of the treasury contract.
//
// - implements treasury.commands
type treasuryCommand struct {
	*Contract
}

// deposit implements commands. It credits the sender with the asset after
// verifying how it is funded.
func (c treasuryCommand) deposit(snap store.Snapshot, ctx execution.Context,
	dep Deposit) (execution.Response, error) {

	a, err := dep.Asset.Check(c.val)
	if err != nil {
		return execution.Response{}, xerrors.Errorf("failed to check asset: %w", err)
	}

	res := execution.Response{}

	if a.Info.IsNative() {
		paid, err := chain.ExactFund(ctx.Funds, a.Info.GetDenom())
		if err != nil {
			return execution.Response{}, xerrors.Errorf("failed to check funds: %w", err)
		}

		if paid != a.Amount {
			return execution.Response{}, xerrors.Errorf(
				"funds of '%s' do not match the deposit of '%s'", paid, a.Amount)
		}
	} else {
		if len(ctx.Funds) > 0 {
			return execution.Response{}, xerrors.New(
				"unexpected funds attached to a token deposit")
		}

		// The transfer executes before any further instruction, so the whole
		// deposit fails if the sender did not grant the allowance.
		pull, err := a.TransferFromMsg(c.context, ctx.Sender.String(), c.self.String())
		if err != nil {
			return execution.Response{}, xerrors.Errorf("failed to build pull message: %v", err)
		}

		res.Submissions = append(res.Submissions, chain.Submit(pull))
	}

	balance, err := c.loadBalances(snap, ctx.Sender)
	if err != nil {
		return execution.Response{}, err
	}

	err = balance.Add(a)
	if err != nil {
		return execution.Response{}, xerrors.Errorf("failed to credit '%s': %w", a, err)
	}

	err = c.saveBalances(snap, ctx.Sender, balance)
	if err != nil {
		return execution.Response{}, err
	}

	err = c.addReserve(snap, a)
	if err != nil {
		return execution.Response{}, err
	}

	c.logger.Info().
		Str("owner", ctx.Sender.String()).
		Str("asset", a.String()).
		Msg("deposit")

	res.Attributes = append(res.Attributes,
		chain.Attribute{Key: "action", Value: "deposit"},
		chain.Attribute{Key: "asset", Value: a.String()},
	)

	return res, nil
}

// withdraw implements commands. It debits the sender and transfers the
// assets back to its account.
func (c treasuryCommand) withdraw(snap store.Snapshot, ctx execution.Context,
	wit Withdraw) (execution.Response, error) {

	list, err := wit.Assets.Check(c.val)
	if err != nil {
		return execution.Response{}, xerrors.Errorf("failed to check assets: %w", err)
	}

	balance, err := c.loadBalances(snap, ctx.Sender)
	if err != nil {
		return execution.Response{}, err
	}

	err = balance.DeductMany(list)
	if err != nil {
		return execution.Response{}, xerrors.Errorf("failed to debit: %w", err)
	}

	err = c.saveBalances(snap, ctx.Sender, balance)
	if err != nil {
		return execution.Response{}, err
	}

	for _, a := range list.Assets() {
		err = c.subReserve(snap, a)
		if err != nil {
			return execution.Response{}, err
		}
	}

	msgs, err := list.TransferMsgs(c.context, ctx.Sender.String())
	if err != nil {
		return execution.Response{}, xerrors.Errorf("failed to build transfers: %v", err)
	}

	res := execution.Response{}

	for _, msg := range msgs {
		res.Submissions = append(res.Submissions, chain.Submit(msg))
	}

	c.logger.Info().
		Str("owner", ctx.Sender.String()).
		Str("assets", list.String()).
		Msg("withdraw")

	res.Attributes = append(res.Attributes,
		chain.Attribute{Key: "action", Value: "withdraw"},
		chain.Attribute{Key: "assets", Value: list.String()},
	)

	return res, nil
}

// createToken implements commands. It requests the provisioning of a brand
// new token on the backend of the spec.
func (c treasuryCommand) createToken(snap store.Snapshot,
	ct CreateToken) (execution.Response, error) {

	var spec factory.Spec
	var key string

	switch {
	case ct.Native != nil:
		spec = *ct.Native
		key = KeyMintedDenom

	case ct.Contract != nil:
		data, err := ct.Contract.Init.Serialize(c.context)
		if err != nil {
			return execution.Response{}, xerrors.Errorf("failed to serialize init: %v", err)
		}

		spec = factory.ContractSpec{
			CodeID: ct.Contract.CodeID,
			Label:  ct.Contract.Label,
			Admin:  ct.Contract.Admin,
			Init:   data,
		}
		key = KeyTokenAddress

	default:
		return execution.Response{}, xerrors.New("token spec is empty")
	}

	provisioner := factory.NewProvisioner(c.self, c.val)

	sub, err := provisioner.Request(snap, spec, key)
	if err != nil {
		return execution.Response{}, xerrors.Errorf("failed to request token: %v", err)
	}

	res := execution.Response{
		Submissions: []chain.Submission{sub},
		Attributes: []chain.Attribute{
			{Key: "action", Value: "create_token"},
		},
	}

	return res, nil
}

// balances implements commands. It reports the assets credited to the owner
// as an attribute.
func (c treasuryCommand) balances(snap store.Snapshot,
	b Balances) (execution.Response, error) {

	owner, err := c.val.Validate(b.Owner)
	if err != nil {
		return execution.Response{}, xerrors.Errorf("failed to check owner: %w", err)
	}

	balance, err := c.loadBalances(snap, owner)
	if err != nil {
		return execution.Response{}, err
	}

	res := execution.Response{
		Attributes: []chain.Attribute{
			{Key: "action", Value: "balances"},
			{Key: "owner", Value: owner.String()},
			{Key: "balances", Value: balance.String()},
		},
	}

	return res, nil
}

// loadBalances returns the asset list credited to the owner, or an empty
// list.
func (c Contract) loadBalances(snap store.Snapshot, owner chain.Address) (asset.List, error) {
	data, err := prefixed.NewReadable(prefixBalances, snap).Get([]byte(owner.String()))
	if err != nil {
		return asset.List{}, xerrors.Errorf("failed to read balances: %v", err)
	}

	if len(data) == 0 {
		return asset.List{}, nil
	}

	list, err := asset.ListFactory{}.ListOf(c.context, data)
	if err != nil {
		return asset.List{}, xerrors.Errorf("failed to restore balances: %v", err)
	}

	return list, nil
}

// saveBalances persists the asset list of the owner, removing the entry when
// the list is empty.
func (c Contract) saveBalances(snap store.Snapshot, owner chain.Address, list asset.List) error {
	balances := prefixed.NewSnapshot(prefixBalances, snap)
	key := []byte(owner.String())

	if list.Len() == 0 {
		err := balances.Delete(key)
		if err != nil {
			return xerrors.Errorf("failed to delete balances: %v", err)
		}

		return nil
	}

	data, err := list.Serialize(c.context)
	if err != nil {
		return xerrors.Errorf("failed to serialize balances: %v", err)
	}

	err = balances.Set(key, data)
	if err != nil {
		return xerrors.Errorf("failed to write balances: %v", err)
	}

	return nil
}

// loadReserve returns the aggregated amount held for the asset kind.
func (c Contract) loadReserve(snap store.Snapshot, info asset.Info) (amount.Amount, error) {
	data, err := asset.NewMap(nameReserves).Load(snap, info)
	if err != nil {
		return amount.Amount{}, xerrors.Errorf("failed to read reserve: %v", err)
	}

	if len(data) == 0 {
		return amount.Amount{}, nil
	}

	var value amount.Amount

	err = c.context.Unmarshal(data, &value)
	if err != nil {
		return amount.Amount{}, xerrors.Errorf("failed to restore reserve: %v", err)
	}

	return value, nil
}

// saveReserve persists the aggregated amount held for the asset kind,
// removing the entry when it reaches zero.
func (c Contract) saveReserve(snap store.Snapshot, info asset.Info, value amount.Amount) error {
	reserves := asset.NewMap(nameReserves)

	if value.IsZero() {
		err := reserves.Delete(snap, info)
		if err != nil {
			return xerrors.Errorf("failed to delete reserve: %v", err)
		}

		return nil
	}

	data, err := c.context.Marshal(value)
	if err != nil {
		return xerrors.Errorf("failed to serialize reserve: %v", err)
	}

	err = reserves.Save(snap, info, data)
	if err != nil {
		return xerrors.Errorf("failed to write reserve: %v", err)
	}

	return nil
}

func (c Contract) addReserve(snap store.Snapshot, a asset.Asset) error {
	current, err := c.loadReserve(snap, a.Info)
	if err != nil {
		return err
	}

	total, err := current.Add(a.Amount)
	if err != nil {
		return xerrors.Errorf("failed to add reserve: %w", err)
	}

	return c.saveReserve(snap, a.Info, total)
}

func (c Contract) subReserve(snap store.Snapshot, a asset.Asset) error {
	current, err := c.loadReserve(snap, a.Info)
	if err != nil {
		return err
	}

	total, err := current.Sub(a.Amount)
	if err != nil {
		return xerrors.Errorf("failed to deduct reserve: %w", err)
	}

	return c.saveReserve(snap, a.Info, total)
}
