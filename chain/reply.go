package chain

import "golang.org/x/xerrors"

// Attribute is a key/value pair attached to an event.
type Attribute struct {
	Key   string
	Value string
}

// Event is a structured record emitted by the platform while executing an
// instruction.
type Event struct {
	Name       string
	Attributes []Attribute
}

// NewEvent creates an event from its name and attributes.
func NewEvent(name string, attrs ...Attribute) Event {
	return Event{
		Name:       name,
		Attributes: attrs,
	}
}

// GetAttribute returns the value of the first attribute with the given key,
// or false if none carries it.
func (e Event) GetAttribute(key string) (string, bool) {
	for _, attr := range e.Attributes {
		if attr.Key == key {
			return attr.Value, true
		}
	}

	return "", false
}

// Result is the outcome of an instruction successfully executed by the
// platform.
type Result struct {
	Events []Event
	Data   []byte
}

// GetEvent returns the first event with the given name, or false if none
// carries it.
func (r Result) GetEvent(name string) (Event, bool) {
	for _, event := range r.Events {
		if event.Name == name {
			return event, true
		}
	}

	return Event{}, false
}

// Reply is the callback delivered by the platform for a submission that asked
// to be notified. Either the result is set, or the error message reported by
// the platform.
type Reply struct {
	Tag    Tag
	Result *Result
	Err    string
}

// NewReply creates a successful reply.
func NewReply(tag Tag, res Result) Reply {
	return Reply{
		Tag:    tag,
		Result: &res,
	}
}

// NewFailedReply creates a reply carrying a platform error message.
func NewFailedReply(tag Tag, msg string) Reply {
	return Reply{
		Tag: tag,
		Err: msg,
	}
}

// Unwrap returns the result of the reply, or the error reported by the
// platform.
func (r Reply) Unwrap() (Result, error) {
	if r.Result != nil {
		return *r.Result, nil
	}

	if r.Err == "" {
		return Result{}, xerrors.New("reply carries no result")
	}

	return Result{}, xerrors.New(r.Err)
}
