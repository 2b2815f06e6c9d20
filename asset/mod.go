// Package asset defines the value model of the fungible assets handled by the
// module.
//
// An asset is either a denomination tracked by the chain ledger, or a token
// tracked by a dedicated contract. Both representations are unified behind
// the Info type, which pairs with an amount to form an Asset, and with other
// assets to form a List that merges duplicates and keeps its arithmetic
// checked.
//
// Values coming from untrusted input are represented by the unchecked mirror
// types and must go through Check before they can be used, so that a contract
// address is always validated exactly once, at the boundary.
//
// Documentation Last Review: 05.02.2026
//
package asset

import (
	"github.com/duet-dlt/duet/serde"
	"github.com/duet-dlt/duet/serde/registry"
	"golang.org/x/xerrors"
)

var infoFormats = registry.NewSimpleRegistry()

var assetFormats = registry.NewSimpleRegistry()

var listFormats = registry.NewSimpleRegistry()

// RegisterInfoFormat registers the engine for the provided format.
func RegisterInfoFormat(f serde.Format, e serde.FormatEngine) {
	infoFormats.Register(f, e)
}

// RegisterAssetFormat registers the engine for the provided format.
func RegisterAssetFormat(f serde.Format, e serde.FormatEngine) {
	assetFormats.Register(f, e)
}

// RegisterListFormat registers the engine for the provided format.
func RegisterListFormat(f serde.Format, e serde.FormatEngine) {
	listFormats.Register(f, e)
}

// ErrNotNative is returned when a ledger operation is requested on an asset
// that is not a native denomination.
var ErrNotNative = xerrors.New("not a native token")

// ErrNotContractToken is returned when a token contract operation is
// requested on an asset that is not tracked by a contract.
var ErrNotContractToken = xerrors.New("not a contract token")

// ErrNotFound is returned when a list operation targets an asset that is not
// present in the list.
var ErrNotFound = xerrors.New("asset not found")

// ErrMalformedKey is returned when a storage key does not decode to an asset
// info.
var ErrMalformedKey = xerrors.New("malformed key")
