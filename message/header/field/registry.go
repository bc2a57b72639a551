package field

import "strings"

// Constructor builds an empty Value ready to have ParseValue called on it.
type Constructor func() Value

// Registry maps field names to the Value type used for their bodies. Names
// compare case-insensitively. Names with no registered constructor get
// TextValue, so every field always carries some structured value.
//
// A Registry is not safe for concurrent Register calls; register custom
// types during setup and share the Registry read-only after that.
type Registry struct {
	ctors map[string]Constructor
}

// NewRegistry returns a Registry pre-populated with the standard field
// types:
//
//	From, Sender                          mailbox list
//	To, Cc, Bcc, Reply-to                 address list
//	Date, Resent-date                     date
//	Content-type, Content-disposition     parameterized value
//	Content-transfer-encoding             token
//	Message-id, In-reply-to, References   message identifiers
//
// Everything else defaults to text.
func NewRegistry() *Registry {
	r := &Registry{ctors: make(map[string]Constructor, 16)}

	mailboxes := func() Value { return &MailboxListValue{} }
	addresses := func() Value { return &AddressListValue{} }
	date := func() Value { return &DateValue{} }
	params := func() Value { return &ParameterizedValue{} }
	token := func() Value { return &TokenValue{} }
	msgid := func() Value { return &MessageIDValue{} }

	r.Register("From", mailboxes)
	r.Register("Sender", mailboxes)
	r.Register("To", addresses)
	r.Register("Cc", addresses)
	r.Register("Bcc", addresses)
	r.Register("Reply-to", addresses)
	r.Register("Date", date)
	r.Register("Resent-date", date)
	r.Register("Content-type", params)
	r.Register("Content-disposition", params)
	r.Register("Content-transfer-encoding", token)
	r.Register("Message-id", msgid)
	r.Register("In-reply-to", msgid)
	r.Register("References", msgid)

	return r
}

// DefaultRegistry is the Registry used when fields are built without naming
// one.
var DefaultRegistry = NewRegistry()

// Register associates a constructor with a field name, replacing any
// previous association.
func (r *Registry) Register(name string, ctor Constructor) {
	r.ctors[strings.ToLower(name)] = ctor
}

// Constructor returns the constructor registered for the given name, or the
// TextValue constructor when the name has none.
func (r *Registry) Constructor(name string) Constructor {
	if ctor, found := r.ctors[strings.ToLower(name)]; found {
		return ctor
	}
	return func() Value { return &TextValue{} }
}

// Value builds the structured value for the named field from the given
// body. A body the registered type cannot make sense of falls back to text,
// so the caller always gets a usable value; nothing about a single
// malformed field should stop a whole header from parsing.
func (r *Registry) Value(name, body string) Value {
	v := r.Constructor(name)()
	if err := v.ParseValue(body); err != nil {
		tv := &TextValue{}
		_ = tv.ParseValue(body)
		return tv
	}
	return v
}
