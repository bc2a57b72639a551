// Package field provides a low-level interface for managing single header
// fields: the raw original bytes, the decoded name/body pair, and a
// structured value typed by field name through a Registry.
package field

import (
	"fmt"

	"github.com/zostay/go-mime/component"
	"github.com/zostay/go-mime/message/header/text"
)

// Base holds the decoded logical name and body of a header field. The body
// is native UTF-8 with encoded words already decoded.
type Base struct {
	name string
	body string
}

// Name returns the name of the header field.
func (f *Base) Name() string {
	return f.name
}

// SetName updates the name of the header field.
func (f *Base) SetName(name string) {
	f.name = name
}

// Body returns the decoded body of the header field as a string.
func (f *Base) Body() string {
	return f.body
}

// SetBody updates the body of the header field.
func (f *Base) SetBody(body string) {
	f.body = body
}

// String returns the complete header field as a string, re-encoding the
// body if it carries anything that is not 7-bit safe.
func (f *Base) String() string {
	return fmt.Sprintf("%s: %s", f.name, text.Encode(text.FromString(f.body)))
}

// Bytes returns the complete header field as a slice of bytes.
func (f *Base) Bytes() []byte {
	return []byte(f.String())
}

// Field manages a single header field. Every Field contains decoded name
// and body values in the embedded Base. A parsed Field also keeps the
// original bytes in Raw, and output prefers Raw when present, so an
// untouched field round-trips exactly. Every Field carries a structured
// Value typed by its name; use Field.Value to get at it and SetValue to
// replace body and value together.
//
// SetName and SetBody update Base, reparse the structured value, and clear
// Raw, so an edited field is generated fresh.
//
// A Field parsed out of a document also records where it sat in the input
// through the embedded component.Region.
type Field struct {
	component.Region
	Base
	raw   *Raw
	value Value
	reg   *Registry
}

// New constructs a new field with no original value, building the
// structured value through the default Registry.
func New(name, body string) *Field {
	return NewWith(DefaultRegistry, name, body)
}

// NewWith constructs a new field with no original value, building the
// structured value through the given Registry.
func NewWith(reg *Registry, name, body string) *Field {
	return &Field{
		Base:  Base{name, body},
		value: reg.Value(name, body),
		reg:   reg,
	}
}

// registry returns the Registry this field parses values through.
func (f *Field) registry() *Registry {
	if f.reg == nil {
		return DefaultRegistry
	}
	return f.reg
}

// Raw returns the original bytes of the field, or nil if the field was
// constructed rather than parsed, or has been modified since parsing.
func (f *Field) Raw() *Raw {
	return f.raw
}

// String returns the original field when it is still intact and the
// re-encoded Base otherwise.
func (f *Field) String() string {
	if f.raw != nil {
		return f.raw.String()
	}
	return f.Base.String()
}

// Bytes returns the field as bytes, preferring the original when intact.
func (f *Field) Bytes() []byte {
	if f.raw != nil {
		return f.raw.Bytes()
	}
	return f.Base.Bytes()
}

// Name returns the decoded field name.
func (f *Field) Name() string {
	return f.Base.Name()
}

// Body returns the decoded field body.
func (f *Field) Body() string {
	return f.Base.Body()
}

// Value returns the structured value of the field body.
func (f *Field) Value() Value {
	return f.value
}

// SetName renames the field. The original bytes are dropped, the structured
// value is reparsed under the new name (a renamed field may change type),
// and the field no longer reports a parse location.
func (f *Field) SetName(n string) {
	f.raw = nil
	f.ClearParsed()
	f.Base.SetName(n)
	f.value = f.registry().Value(n, f.body)
}

// SetBody replaces the field body. The original bytes are dropped, the
// structured value is reparsed, and the field no longer reports a parse
// location.
func (f *Field) SetBody(b string) {
	f.raw = nil
	f.ClearParsed()
	f.Base.SetBody(b)
	f.value = f.registry().Value(f.name, b)
}

// SetValue replaces the structured value and regenerates the body from it.
// The original bytes are dropped and the field no longer reports a parse
// location.
func (f *Field) SetValue(v Value) {
	f.raw = nil
	f.ClearParsed()
	f.value = v
	f.Base.SetBody(v.String())
}

// SetRaw replaces the original bytes with new ones, for callers that need
// exact control of field output. The bytes are not validated against the
// decoded name and body.
func (f *Field) SetRaw(o []byte) {
	ix := indexColon(o)
	f.raw = &Raw{o, ix}
}

// ChildComponents returns nil; a field is a leaf of the document tree.
func (f *Field) ChildComponents() []component.Component {
	return nil
}

func indexColon(o []byte) int {
	for i, c := range o {
		if c == ':' {
			return i
		}
	}
	return len(o)
}
