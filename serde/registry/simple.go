// This file contains the implementation of a format registry.
//
// Documentation Last Review: 02.02.2026

package registry

import (
	"github.com/duet-dlt/duet/serde"
	"golang.org/x/xerrors"
)

// SimpleRegistry is a map-backed implementation of the Registry interface.
// Looking up an unknown format resolves to an empty engine, so that a caller
// can serialize without checking the format existence and still get a
// meaningful error.
//
// - implements registry.Registry
type SimpleRegistry struct {
	store map[serde.Format]serde.FormatEngine
}

// NewSimpleRegistry returns a new empty registry.
func NewSimpleRegistry() *SimpleRegistry {
	return &SimpleRegistry{
		store: make(map[serde.Format]serde.FormatEngine),
	}
}

// Register implements registry.Registry. It registers the engine for the
// given format, overwriting a previous registration.
func (r *SimpleRegistry) Register(name serde.Format, f serde.FormatEngine) {
	r.store[name] = f
}

// Get implements registry.Registry. It returns the engine registered for the
// format, or an empty engine when the format is unknown.
func (r *SimpleRegistry) Get(name serde.Format) serde.FormatEngine {
	engine, found := r.store[name]
	if !found {
		return emptyFormat{name: name}
	}

	return engine
}

// emptyFormat is the fallback format engine. Both operations return an error
// carrying the unknown format name.
//
// - implements serde.FormatEngine
type emptyFormat struct {
	name serde.Format
}

// Encode implements serde.FormatEngine. It always returns an error.
func (f emptyFormat) Encode(serde.Context, serde.Message) ([]byte, error) {
	return nil, xerrors.Errorf("format '%s' is not implemented", f.name)
}

// Decode implements serde.FormatEngine. It always returns an error.
func (f emptyFormat) Decode(serde.Context, []byte) (serde.Message, error) {
	return nil, xerrors.Errorf("format '%s' is not implemented", f.name)
}
