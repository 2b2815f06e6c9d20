package chain

import (
	"github.com/duet-dlt/duet/amount"
	"golang.org/x/xerrors"
)

// Coin is an amount of a ledger denom.
type Coin struct {
	Denom  string        `json:"denom"`
	Amount amount.Amount `json:"amount"`
}

// NewCoin creates a coin of the given denom.
func NewCoin(denom string, value amount.Amount) Coin {
	return Coin{
		Denom:  denom,
		Amount: value,
	}
}

// String implements fmt.Stringer. It returns the platform notation of the
// coin, the amount followed by the denom.
func (c Coin) String() string {
	return c.Amount.String() + c.Denom
}

// FundAmount returns the total amount of the given denom inside the funds.
func FundAmount(funds []Coin, denom string) (amount.Amount, error) {
	var total amount.Amount

	for _, coin := range funds {
		if coin.Denom != denom {
			continue
		}

		sum, err := total.Add(coin.Amount)
		if err != nil {
			return amount.Amount{}, xerrors.Errorf("failed to sum funds: %w", err)
		}

		total = sum
	}

	return total, nil
}

// ExactFund returns the amount of the unique coin of the funds after checking
// that it matches the denom and is not zero.
func ExactFund(funds []Coin, denom string) (amount.Amount, error) {
	if len(funds) != 1 {
		return amount.Amount{}, xerrors.Errorf(
			"must deposit exactly one coin; received %d", len(funds))
	}

	coin := funds[0]

	if coin.Denom != denom {
		return amount.Amount{}, xerrors.Errorf(
			"expected %s deposit, received %s", denom, coin.Denom)
	}

	if coin.Amount.IsZero() {
		return amount.Amount{}, xerrors.New("deposit amount must be non-zero")
	}

	return coin.Amount, nil
}
