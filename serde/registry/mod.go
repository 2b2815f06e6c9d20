// Package registry defines the format registry mechanism.
//
// It also provides a default implementation that always resolves to a format
// engine, falling back to an empty engine that only returns errors when the
// format is unknown.
//
// Documentation Last Review: 02.02.2026
package registry

import (
	"github.com/duet-dlt/duet/serde"
)

// Registry is an interface to register and look up the format engines of one
// message type.
type Registry interface {
	// Register associates the engine with the format name.
	Register(serde.Format, serde.FormatEngine)

	// Get returns the engine associated with the format.
	Get(serde.Format) serde.FormatEngine
}
