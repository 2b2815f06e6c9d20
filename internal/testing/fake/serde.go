package fake

import (
	"encoding/json"

	"github.com/duet-dlt/duet/serde"
)

// GoodFormat is the format used by the contexts returned by NewContext.
const GoodFormat = serde.Format("FakeFormat")

// BadFormat is a format always producing errors when the bad format engine is
// registered for it.
const BadFormat = serde.Format("BadFormat")

// MsgFormat is a format producing a plain fake message, so that type
// assertions on the decoded message can be tested.
const MsgFormat = serde.Format("MsgFormat")

// Format is a fake format engine. It returns a fixed buffer when encoding,
// and the configured message when decoding.
//
// - implements serde.FormatEngine
type Format struct {
	err  error
	Msg  serde.Message
	Call *Call
}

// NewBadFormat returns a format engine always returning the fake error.
func NewBadFormat() Format {
	return Format{err: fakeErr}
}

// Encode implements serde.FormatEngine.
func (f Format) Encode(ctx serde.Context, m serde.Message) ([]byte, error) {
	f.Call.Add(ctx, m)

	return []byte("fake format"), f.err
}

// Decode implements serde.FormatEngine.
func (f Format) Decode(ctx serde.Context, data []byte) (serde.Message, error) {
	f.Call.Add(ctx, data)

	return f.Msg, f.err
}

// Message is a fake serde message.
//
// - implements serde.Message
type Message struct{}

// Serialize implements serde.Message.
func (m Message) Serialize(ctx serde.Context) ([]byte, error) {
	return []byte(`{}`), nil
}

// MessageFactory is a fake serde factory.
//
// - implements serde.Factory
type MessageFactory struct {
	err error
}

// NewBadMessageFactory returns a factory always returning the fake error.
func NewBadMessageFactory() MessageFactory {
	return MessageFactory{err: fakeErr}
}

// Deserialize implements serde.Factory.
func (f MessageFactory) Deserialize(ctx serde.Context, data []byte) (serde.Message, error) {
	return Message{}, f.err
}

// ContextEngine is a fake context engine using the JSON encoding under the
// hood. It fails to marshal and unmarshal when using the bad format, after an
// optional delay.
//
// - implements serde.ContextEngine
type ContextEngine struct {
	Count  *Counter
	format serde.Format
}

// NewContext returns a context using the good format.
func NewContext() serde.Context {
	return serde.NewContext(ContextEngine{format: GoodFormat})
}

// NewContextWithFormat returns a context using the given format, so that real
// format engines can be exercised through the fake engine.
func NewContextWithFormat(f serde.Format) serde.Context {
	return serde.NewContext(ContextEngine{format: f})
}

// NewBadContext returns a context using the bad format, so that the bad
// format engine answers when it is registered, and so that marshaling fails
// when an engine is invoked directly.
func NewBadContext() serde.Context {
	return serde.NewContext(ContextEngine{format: BadFormat})
}

// NewBadContextWithDelay returns a bad context that starts failing only
// after the given number of marshalings.
func NewBadContextWithDelay(delay int) serde.Context {
	return serde.NewContext(ContextEngine{
		Count:  NewCounter(delay),
		format: BadFormat,
	})
}

// GetFormat implements serde.ContextEngine.
func (ctx ContextEngine) GetFormat() serde.Format {
	return ctx.format
}

// Marshal implements serde.ContextEngine.
func (ctx ContextEngine) Marshal(m interface{}) ([]byte, error) {
	data, err := json.Marshal(m)

	if ctx.format == BadFormat && ctx.Count.Done() {
		return data, fakeErr
	}

	ctx.Count.Decrease()

	return data, err
}

// Unmarshal implements serde.ContextEngine.
func (ctx ContextEngine) Unmarshal(data []byte, m interface{}) error {
	if ctx.format == BadFormat && ctx.Count.Done() {
		return fakeErr
	}

	ctx.Count.Decrease()

	return json.Unmarshal(data, m)
}
