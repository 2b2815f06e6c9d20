// Package serde defines the serialization and deserialization mechanisms of
// the module.
//
// The serialization works through contexts. A context is created from an
// engine that dictates the format, then the context is passed to every
// serialization request so that a message can know how to encode itself. A
// message implementation registers a format engine for each format it
// supports, and the format definitions live in their own subpackage so that
// the wire shapes stay independent of the data models.
//
// Deserialization works the same way through factories. A factory uses the
// context to decode raw data into the message implementation, and the context
// can carry additional factories when a message embeds types that are not
// known statically.
package serde

// Message is the interface that a data model should implement to be
// serialized.
type Message interface {
	// Serialize serializes the object by complying to the context format.
	Serialize(ctx Context) ([]byte, error)
}

// Factory is an interface to instantiate a data model from raw data.
type Factory interface {
	// Deserialize takes the raw data and the context to instantiate the
	// message.
	Deserialize(ctx Context, data []byte) (Message, error)
}

// Format is the identifier type of a format implementation.
type Format string

// FormatJSON is the JSON format.
const FormatJSON Format = "JSON"

// FormatEngine is the interface that a format implementation must implement
// for a given data model.
type FormatEngine interface {
	// Encode marshals the message according to the format definition.
	Encode(ctx Context, message Message) ([]byte, error)

	// Decode unmarshals a message according to the format definition.
	Decode(ctx Context, data []byte) (Message, error)
}
