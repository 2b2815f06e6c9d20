package asset

import (
	"strings"

	"github.com/duet-dlt/duet/chain"
	"github.com/duet-dlt/duet/serde"
	"golang.org/x/xerrors"
)

// List is an ordered collection of assets where no two elements share the
// same info. Adding an asset that is already present merges into the
// existing element, and elements brought to a zero amount are dropped. The
// order is the insertion order of the first occurrence of each info.
//
// - implements serde.Message
type List struct {
	items []Asset
}

// NewList creates a list by folding the assets in order, merging the
// duplicates with checked additions.
func NewList(assets ...Asset) (List, error) {
	list := List{}

	for _, a := range assets {
		err := list.Add(a)
		if err != nil {
			return List{}, xerrors.Errorf("failed to add '%s': %w", a, err)
		}
	}

	return list, nil
}

// Len returns the number of assets in the list.
func (l List) Len() int {
	return len(l.items)
}

// Assets returns a copy of the assets in list order.
func (l List) Assets() []Asset {
	items := make([]Asset, len(l.items))
	copy(items, l.items)

	return items
}

// Find returns the asset with the given info, or false if the list does not
// contain it.
func (l List) Find(info Info) (Asset, bool) {
	for _, item := range l.items {
		if item.Info == info {
			return item, true
		}
	}

	return Asset{}, false
}

// Add merges the asset into the list. The amount is added to the existing
// element with the same info, or the asset is appended when the info is new.
// The list is left untouched when the addition overflows.
func (l *List) Add(a Asset) error {
	for i, item := range l.items {
		if item.Info == a.Info {
			sum, err := item.Amount.Add(a.Amount)
			if err != nil {
				return xerrors.Errorf("failed to add amount: %w", err)
			}

			l.items[i].Amount = sum
			l.Purge()

			return nil
		}
	}

	l.items = append(l.items, a)
	l.Purge()

	return nil
}

// AddMany merges every asset of the other list, left to right, stopping at
// the first failure.
func (l *List) AddMany(other List) error {
	for _, item := range other.items {
		err := l.Add(item)
		if err != nil {
			return xerrors.Errorf("failed to add '%s': %w", item, err)
		}
	}

	return nil
}

// Deduct subtracts the asset amount from the element with the same info. The
// list is left untouched when the element is missing or its amount is too
// small.
func (l *List) Deduct(a Asset) error {
	for i, item := range l.items {
		if item.Info == a.Info {
			diff, err := item.Amount.Sub(a.Amount)
			if err != nil {
				return xerrors.Errorf("failed to deduct amount: %w", err)
			}

			l.items[i].Amount = diff
			l.Purge()

			return nil
		}
	}

	return xerrors.Errorf("asset '%s': %w", a.Info, ErrNotFound)
}

// DeductMany subtracts every asset of the other list, left to right,
// stopping at the first failure.
func (l *List) DeductMany(other List) error {
	for _, item := range other.items {
		err := l.Deduct(item)
		if err != nil {
			return xerrors.Errorf("failed to deduct '%s': %w", item, err)
		}
	}

	return nil
}

// Apply runs the function on every element in list order. It does not purge,
// a caller zeroing amounts follows up with Purge.
func (l *List) Apply(fn func(*Asset)) {
	for i := range l.items {
		fn(&l.items[i])
	}
}

// Purge drops the elements with a zero amount. It has no effect on the
// others.
func (l *List) Purge() {
	items := l.items[:0]

	for _, item := range l.items {
		if !item.Amount.IsZero() {
			items = append(items, item)
		}
	}

	l.items = items
}

// NativeCoins projects the native elements into ledger coins, in list order.
// Contract tokens are skipped.
func (l List) NativeCoins() []chain.Coin {
	coins := []chain.Coin{}

	for _, item := range l.items {
		if item.Info.IsNative() {
			coins = append(coins, chain.NewCoin(item.Info.GetDenom(), item.Amount))
		}
	}

	return coins
}

// TransferMsgs builds one transfer instruction per element, in list order.
func (l List) TransferMsgs(ctx serde.Context, recipient string) ([]chain.Instruction, error) {
	msgs := make([]chain.Instruction, 0, len(l.items))

	for _, item := range l.items {
		msg, err := item.TransferMsg(ctx, recipient)
		if err != nil {
			return nil, xerrors.Errorf("failed to build transfer of '%s': %v", item, err)
		}

		msgs = append(msgs, msg)
	}

	return msgs, nil
}

// QueryBalances returns a new list holding the live balances of the holder
// for every asset kind of this list, in the same order.
func (l List) QueryBalances(qry chain.Querier, holder chain.Address) (List, error) {
	infos := make([]Info, 0, len(l.items))

	for _, item := range l.items {
		infos = append(infos, item.Info)
	}

	return QueryInfoBalances(qry, holder, infos...)
}

// QueryInfoBalances returns a list holding the live balances of the holder
// for each of the given asset kinds, in the given order. Zero balances are
// purged like any other zero amount.
func QueryInfoBalances(qry chain.Querier, holder chain.Address, infos ...Info) (List, error) {
	list := List{}

	for _, info := range infos {
		bal, err := info.QueryBalance(qry, holder)
		if err != nil {
			return List{}, xerrors.Errorf("failed to query '%s': %v", info, err)
		}

		err = list.Add(New(info, bal))
		if err != nil {
			return List{}, xerrors.Errorf("failed to add '%s': %w", info, err)
		}
	}

	return list, nil
}

// Unchecked returns the unchecked mirror of the list.
func (l List) Unchecked() ListUnchecked {
	items := make(ListUnchecked, 0, len(l.items))

	for _, item := range l.items {
		items = append(items, item.Unchecked())
	}

	return items
}

// String implements fmt.Stringer. It returns the assets separated by
// commas.
func (l List) String() string {
	parts := make([]string, 0, len(l.items))

	for _, item := range l.items {
		parts = append(parts, item.String())
	}

	return strings.Join(parts, ",")
}

// Serialize implements serde.Message. It returns the serialized data of the
// list.
func (l List) Serialize(ctx serde.Context) ([]byte, error) {
	format := listFormats.Get(ctx.GetFormat())

	data, err := format.Encode(ctx, l)
	if err != nil {
		return nil, xerrors.Errorf("failed to encode list: %v", err)
	}

	return data, nil
}

// ListUnchecked is the untrusted mirror of a list. It is a raw sequence that
// may carry duplicates, which get merged when the list is checked.
type ListUnchecked []AssetUnchecked

// Check bridges the unchecked list into a checked one by checking every
// element and folding it in with the merge addition.
func (u ListUnchecked) Check(val chain.AddressValidator) (List, error) {
	list := List{}

	for _, item := range u {
		info, err := item.Info.Check(val)
		if err != nil {
			return List{}, xerrors.Errorf("failed to check '%s': %w", item.Info, err)
		}

		a := New(info, item.Amount)

		err = list.Add(a)
		if err != nil {
			return List{}, xerrors.Errorf("failed to add '%s': %w", a, err)
		}
	}

	return list, nil
}
