package fake

import (
	"github.com/duet-dlt/duet/amount"
	"github.com/duet-dlt/duet/chain"
)

// Validator is a fake address validator that accepts any input.
//
// - implements chain.AddressValidator
type Validator struct {
	err  error
	Call *Call
}

// NewBadValidator returns a validator always returning the fake error.
func NewBadValidator() Validator {
	return Validator{err: fakeErr}
}

// NewValidatorWithCalls returns a validator that records the raw addresses it
// is given.
func NewValidatorWithCalls(c *Call) Validator {
	return Validator{Call: c}
}

// Validate implements chain.AddressValidator.
func (v Validator) Validate(raw string) (chain.Address, error) {
	v.Call.Add(raw)

	if v.err != nil {
		return chain.Address{}, v.err
	}

	return chain.AddressUnchecked(raw), nil
}

// Querier is a fake balance querier returning configured amounts. Native
// balances are keyed by denom and token balances by the contract address.
//
// - implements chain.Querier
type Querier struct {
	Natives map[string]amount.Amount
	Tokens  map[string]amount.Amount
	err     error
}

// NewQuerier returns a new empty querier.
func NewQuerier() *Querier {
	return &Querier{
		Natives: make(map[string]amount.Amount),
		Tokens:  make(map[string]amount.Amount),
	}
}

// NewBadQuerier returns a querier always returning the fake error.
func NewBadQuerier() *Querier {
	return &Querier{err: fakeErr}
}

// NativeBalance implements chain.Querier.
func (q *Querier) NativeBalance(holder chain.Address, denom string) (amount.Amount, error) {
	return q.Natives[denom], q.err
}

// TokenBalance implements chain.Querier.
func (q *Querier) TokenBalance(contract, holder chain.Address) (amount.Amount, error) {
	return q.Tokens[contract.String()], q.err
}
