// This file contains the definition of the serialization context that is
// passed to every request so that a message knows which format to comply to,
// and which factories are available to decode embedded types.

package serde

// ContextEngine is the interface of the underlying marshaler of a context. It
// ties a format name to the primitives to read and write raw messages.
type ContextEngine interface {
	// GetFormat returns the format name of the engine.
	GetFormat() Format

	// Marshal returns the raw data of the message in the engine format.
	Marshal(message interface{}) ([]byte, error)

	// Unmarshal populates the message from raw data in the engine format.
	Unmarshal(data []byte, message interface{}) error
}

// Context is passed to the serialization and deserialization requests. It
// carries the format engine and the factories needed to decode embedded
// types.
type Context struct {
	ContextEngine

	factories map[interface{}]Factory
}

// NewContext returns a new context without any factory.
func NewContext(engine ContextEngine) Context {
	return Context{
		ContextEngine: engine,
		factories:     make(map[interface{}]Factory),
	}
}

// GetFactory returns the factory registered with the key, or nil.
func (ctx Context) GetFactory(key interface{}) Factory {
	return ctx.factories[key]
}

// WithFactory returns a child context holding the factory under the key. The
// factories of the parent are carried over and the parent itself is left
// untouched.
func WithFactory(ctx Context, key interface{}, f Factory) Context {
	factories := make(map[interface{}]Factory, len(ctx.factories)+1)

	for key, value := range ctx.factories {
		factories[key] = value
	}

	factories[key] = f

	ctx.factories = factories

	return ctx
}
