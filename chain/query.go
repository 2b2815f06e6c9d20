package chain

import "github.com/duet-dlt/duet/amount"

// Querier provides read access to the balances tracked by the ledger and by
// the token contracts. The host provides the implementation.
type Querier interface {
	// NativeBalance returns the ledger balance of the holder for the denom.
	NativeBalance(holder Address, denom string) (amount.Amount, error)

	// TokenBalance returns the balance of the holder in the books of the
	// token contract.
	TokenBalance(contract, holder Address) (amount.Amount, error)
}
