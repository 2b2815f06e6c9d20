// Package chain models the surface of the platform hosting the contracts.
//
// The platform executes contract code, routes the instructions a contract
// returns, and delivers a reply when a contract asked to be notified of an
// instruction outcome. This package defines the types exchanged over that
// surface: addresses, coins, instructions, submissions and replies. It makes
// no assumption about the platform implementation so that the asset
// abstraction can run against any host honouring these semantics.
//
// Documentation Last Review: 05.02.2026
package chain

import (
	"unicode"

	"golang.org/x/xerrors"
)

// ErrInvalidAddress is returned when a raw address is rejected by a
// validator.
var ErrInvalidAddress = xerrors.New("invalid address")

// Address is a platform address that went through validation. The zero value
// is the empty address. Apart from the explicit escape hatch
// AddressUnchecked, only a validator produces addresses.
type Address struct {
	value string
}

// AddressUnchecked promotes a raw string to an address without any
// validation. It is meant for tests and for literals known to be valid, never
// for input coming from the wire.
func AddressUnchecked(value string) Address {
	return Address{value: value}
}

// String implements fmt.Stringer. It returns the textual form of the
// address.
func (a Address) String() string {
	return a.value
}

// Empty returns true if the address holds no value.
func (a Address) Empty() bool {
	return a.value == ""
}

// AddressValidator is the interface to implement to promote raw strings to
// validated addresses. The host provides the implementation matching its
// address scheme.
type AddressValidator interface {
	// Validate checks the raw address and returns its validated form.
	Validate(raw string) (Address, error)
}

// ValidatorFunc is an adapter to use a plain function as an address
// validator.
//
// - implements chain.AddressValidator
type ValidatorFunc func(raw string) (Address, error)

// Validate implements chain.AddressValidator. It calls the wrapped function.
func (f ValidatorFunc) Validate(raw string) (Address, error) {
	return f(raw)
}

// RuleValidator is a syntactic address validator for hosts without a
// dedicated address scheme. It accepts length-bounded strings of lowercase
// letters, digits and underscores.
//
// - implements chain.AddressValidator
type RuleValidator struct {
	minLen int
	maxLen int
}

// NewRuleValidator creates a validator enforcing the given length bounds.
func NewRuleValidator(minLen, maxLen int) RuleValidator {
	return RuleValidator{minLen: minLen, maxLen: maxLen}
}

// Validate implements chain.AddressValidator. It checks the length bounds and
// the character set of the raw address.
func (v RuleValidator) Validate(raw string) (Address, error) {
	if len(raw) < v.minLen {
		return Address{}, xerrors.Errorf("address '%s' is too short: %w",
			raw, ErrInvalidAddress)
	}

	if len(raw) > v.maxLen {
		return Address{}, xerrors.Errorf("address '%s' is too long: %w",
			raw, ErrInvalidAddress)
	}

	for _, r := range raw {
		if r == '_' || unicode.IsDigit(r) {
			continue
		}

		if !unicode.IsLetter(r) || unicode.IsUpper(r) {
			return Address{}, xerrors.Errorf(
				"address '%s' contains illegal characters: %w",
				raw, ErrInvalidAddress)
		}
	}

	return Address{value: raw}, nil
}
