package param

import (
	"errors"
	"fmt"
	"mime"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/zostay/go-mime/message/header/text"
)

// Names of parameters with dedicated accessors.
const (
	// Charset is the name of the charset parameter that may be present in
	// the Content-type header.
	Charset = "charset"

	// Boundary is the name of the boundary parameter that may be present in
	// the Content-type header.
	Boundary = "boundary"

	// Filename is the name of the filename parameter that may be present in
	// the Content-disposition header.
	Filename = "filename"
)

// Errors returned by the typed parameter accessors.
var (
	// ErrNoSuchParameter is returned when a parameter is requested by name
	// and the value carries no parameter with that name.
	ErrNoSuchParameter = errors.New("no such parameter")

	// ErrTypeMismatch is returned when a parameter exists but cannot be
	// converted to the requested type.
	ErrTypeMismatch = errors.New("parameter does not convert to requested type")
)

// Parameter is a single name/value pair attached to a parameterized field.
// The value is held in the RFC 2047 text model so parameters survive 8-bit
// content; the string accessors below decode on demand.
type Parameter struct {
	Name  string
	Value text.Text
}

// Value represents a parsed parameterized header field body, such as is used
// in the Content-type and Content-disposition headers. Parameters keep their
// insertion order for generation; lookup by name is case-insensitive. A
// Value is immutable: use Modify to derive a changed copy.
type Value struct {
	v  string
	ps []Parameter
}

// Parse takes a header field body and parses it as a Value. The underlying
// grammar tolerates most of what mime.ParseMediaType tolerates; parameters
// appear in the order they appear in the input.
func Parse(v string) (*Value, error) {
	mt, ps, err := mime.ParseMediaType(v)
	if err != nil {
		return nil, fmt.Errorf("unparseable parameterized field body: %w", err)
	}

	ordered := make([]Parameter, 0, len(ps))
	for _, name := range parameterOrder(v, ps) {
		ordered = append(ordered, Parameter{
			Name:  name,
			Value: text.FromString(ps[name]),
		})
	}

	return &Value{v: mt, ps: ordered}, nil
}

// parameterOrder recovers the order in which the named parameters appear in
// the original body. Parameters that cannot be located (RFC 2231 splits and
// such) follow in lexical order.
func parameterOrder(raw string, ps map[string]string) []string {
	type at struct {
		name string
		pos  int
	}

	lraw := strings.ToLower(raw)
	ats := make([]at, 0, len(ps))
	for name := range ps {
		ats = append(ats, at{name, paramPos(lraw, name)})
	}

	// insertion sort; parameter lists are tiny
	for i := 1; i < len(ats); i++ {
		for j := i; j > 0; j-- {
			a, b := ats[j-1], ats[j]
			if a.pos < b.pos || (a.pos == b.pos && a.name <= b.name) {
				break
			}
			ats[j-1], ats[j] = b, a
		}
	}

	names := make([]string, len(ats))
	for i, a := range ats {
		names[i] = a.name
	}
	return names
}

// paramPos locates the named attribute at a token boundary outside any
// quoted string, returning its byte position in lraw or -1. A bare substring
// match is not enough: "name=" occurs inside "filename=", and a quoted value
// may contain anything that looks like a parameter.
func paramPos(lraw, name string) int {
	for from := 0; ; {
		ix := strings.Index(lraw[from:], name)
		if ix < 0 {
			return -1
		}
		pos := from + ix
		from = pos + 1

		// the name must be followed by = or an RFC 2231 * marker
		end := pos + len(name)
		if end >= len(lraw) || (lraw[end] != '=' && lraw[end] != '*') {
			continue
		}

		// and preceded by a parameter separator
		if pos > 0 {
			switch lraw[pos-1] {
			case ';', ' ', '\t':
			default:
				continue
			}
		}

		if inQuotedString(lraw[:pos]) {
			continue
		}

		return pos
	}
}

// inQuotedString reports whether a quoted string opened somewhere in s is
// still open at its end.
func inQuotedString(s string) bool {
	open := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if open {
				i++
			}
		case '"':
			open = !open
		}
	}
	return open
}

// New creates a new parameterized header field body with no parameters.
func New(v string) *Value {
	return &Value{v: v}
}

// NewWithParams creates a new parameterized header field body with the given
// parameters, kept in the given order.
func NewWithParams(v string, ps ...Parameter) *Value {
	return &Value{v: v, ps: ps}
}

// Modifier is a modification to apply to a Value via Modify.
type Modifier func(*Value)

// Change is a Modifier that replaces the primary value.
func Change(value string) Modifier {
	return func(pv *Value) {
		pv.v = value
	}
}

// Set is a Modifier that sets the named parameter, replacing an existing
// parameter in place or appending a new one.
func Set(name, value string) Modifier {
	return func(pv *Value) {
		for i := range pv.ps {
			if strings.EqualFold(pv.ps[i].Name, name) {
				pv.ps[i].Value = text.FromString(value)
				return
			}
		}
		pv.ps = append(pv.ps, Parameter{Name: name, Value: text.FromString(value)})
	}
}

// Delete is a Modifier that removes the named parameter.
func Delete(name string) Modifier {
	return func(pv *Value) {
		for i := range pv.ps {
			if strings.EqualFold(pv.ps[i].Name, name) {
				pv.ps = append(pv.ps[:i], pv.ps[i+1:]...)
				return
			}
		}
	}
}

// Modify clones a Value, applies the given modifications, and returns the
// new Value:
//
//	v, _ := param.Parse("multipart/mixed; boundary=abc123")
//	nv := param.Modify(v, param.Change("multipart/alternative"),
//		param.Set("charset", "utf-8"))
func Modify(pv *Value, changes ...Modifier) *Value {
	c := pv.Clone()
	for _, change := range changes {
		change(c)
	}
	return c
}

// Value returns the primary value, the part before the first semicolon.
func (pv *Value) Value() string {
	return pv.v
}

// Presentation is a synonym for Value for use with Content-disposition,
// where the primary value is "inline" or "attachment".
func (pv *Value) Presentation() string {
	return pv.v
}

// MediaType is a synonym for Value for use with Content-type, where the
// primary value is something like "text/html" or "multipart/mixed".
func (pv *Value) MediaType() string {
	return pv.v
}

// Type returns the part of the media type before the slash, or an empty
// string when there is no slash.
func (pv *Value) Type() string {
	if ix := strings.IndexRune(pv.v, '/'); ix >= 0 {
		return pv.v[:ix]
	}
	return ""
}

// Subtype returns the part of the media type after the slash, or an empty
// string when there is no slash.
func (pv *Value) Subtype() string {
	if ix := strings.IndexRune(pv.v, '/'); ix >= 0 {
		return pv.v[ix+1:]
	}
	return ""
}

// Parameters returns the parameters as a map of decoded strings. The map is
// a copy; mutating it does not affect the Value.
func (pv *Value) Parameters() map[string]string {
	ps := make(map[string]string, len(pv.ps))
	for _, p := range pv.ps {
		ps[p.Name] = p.Value.String()
	}
	return ps
}

// ParameterList returns the parameters in order. The returned slice must not
// be modified.
func (pv *Value) ParameterList() []Parameter {
	return pv.ps
}

// find locates the named parameter.
func (pv *Value) find(name string) (Parameter, bool) {
	for _, p := range pv.ps {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Parameter{}, false
}

// Parameter returns the decoded string value of the named parameter or an
// empty string when the parameter is absent. Use GetParameter when absence
// matters.
func (pv *Value) Parameter(name string) string {
	p, found := pv.find(name)
	if !found {
		return ""
	}
	return p.Value.String()
}

// GetParameter returns the decoded string value of the named parameter. It
// fails with ErrNoSuchParameter when the parameter is absent.
func (pv *Value) GetParameter(name string) (string, error) {
	p, found := pv.find(name)
	if !found {
		return "", fmt.Errorf("%w: %q", ErrNoSuchParameter, name)
	}
	return p.Value.String(), nil
}

// GetParameterText returns the named parameter in the RFC 2047 text model.
// It fails with ErrNoSuchParameter when the parameter is absent.
func (pv *Value) GetParameterText(name string) (text.Text, error) {
	p, found := pv.find(name)
	if !found {
		return text.Text{}, fmt.Errorf("%w: %q", ErrNoSuchParameter, name)
	}
	return p.Value, nil
}

// GetParameterInt converts the named parameter to an integer. It fails with
// ErrNoSuchParameter when absent and ErrTypeMismatch when the value does not
// parse as an integer.
func (pv *Value) GetParameterInt(name string) (int, error) {
	s, err := pv.GetParameter(name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer: %w", ErrTypeMismatch, name, err)
	}
	return n, nil
}

// GetParameterTime converts the named parameter to a time. Parameters such
// as creation-date on Content-disposition carry RFC 2822 dates, but this
// accepts the wide range of formats dateparse can make sense of. It fails
// with ErrNoSuchParameter when absent and ErrTypeMismatch when the value
// does not parse as a date.
func (pv *Value) GetParameterTime(name string) (time.Time, error) {
	s, err := pv.GetParameter(name)
	if err != nil {
		return time.Time{}, err
	}
	t, err := dateparse.ParseAny(strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a date: %w", ErrTypeMismatch, name, err)
	}
	return t, nil
}

// Filename returns the value of the "filename" parameter, for use with
// Content-disposition. Empty when absent.
func (pv *Value) Filename() string {
	return pv.Parameter(Filename)
}

// Charset returns the value of the "charset" parameter, for use with
// Content-type. Empty when absent.
func (pv *Value) Charset() string {
	return pv.Parameter(Charset)
}

// Boundary returns the value of the "boundary" parameter, for use with
// Content-type. Empty when absent.
func (pv *Value) Boundary() string {
	return pv.Parameter(Boundary)
}

// tspecials are the characters that force a parameter value into a quoted
// string per RFC 2045 §5.1.
const tspecials = "()<>@,;:\\\"/[]?="

// needsQuoting reports whether a parameter value must be rendered quoted.
func needsQuoting(v string) bool {
	if v == "" {
		return true
	}
	for _, c := range v {
		if c <= ' ' || c >= 0x7f || strings.ContainsRune(tspecials, c) {
			return true
		}
	}
	return false
}

// String returns the serialized body including the primary value and all
// parameters in order. Parameter values carrying 8-bit content are rendered
// as RFC 2047 encoded words.
func (pv *Value) String() string {
	var out strings.Builder
	out.WriteString(pv.v)

	for _, p := range pv.ps {
		out.WriteString("; ")
		out.WriteString(p.Name)
		out.WriteByte('=')

		v := text.Encode(p.Value)
		if needsQuoting(v) {
			out.WriteByte('"')
			for _, c := range v {
				if c == '"' || c == '\\' {
					out.WriteByte('\\')
				}
				out.WriteRune(c)
			}
			out.WriteByte('"')
		} else {
			out.WriteString(v)
		}
	}

	return out.String()
}

// Bytes returns the serialized body as a slice of bytes.
func (pv *Value) Bytes() []byte {
	return []byte(pv.String())
}

// Clone returns a deep copy of the Value.
func (pv *Value) Clone() *Value {
	c := &Value{v: pv.v, ps: make([]Parameter, len(pv.ps))}
	copy(c.ps, pv.ps)
	return c
}
