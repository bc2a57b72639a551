package header

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/zostay/go-mime/component"
	"github.com/zostay/go-mime/message/header/field"
)

// ErrIndexOutOfRange is returned by index-based field operations when the
// index given does not refer to a field.
var ErrIndexOutOfRange = errors.New("header field index out of range")

// Base performs the storage and low-level manipulation of a list of header
// fields. It preserves the order fields were parsed or inserted in, permits
// duplicate field names, and remembers where in the original input it was
// parsed from. Rendering applies the configured FoldEncoding to each field.
type Base struct {
	component.Region
	lbr    Break
	vf     *field.FoldEncoding
	fields []*field.Field
	reg    *field.Registry
}

// initBase initializes the Break and fields values lazily.
func (h *Base) initBase() {
	if h.lbr == "" {
		h.lbr = LF
	}
	if h.fields == nil {
		h.fields = make([]*field.Field, 0, 10)
	}
}

// FoldEncoding returns the folding policy used by this header during
// rendering.
func (h *Base) FoldEncoding() *field.FoldEncoding {
	if h.vf == nil {
		h.vf = field.DefaultFoldEncoding
	}
	return h.vf
}

// SetFoldEncoding changes the folding policy used by this header during
// rendering.
func (h *Base) SetFoldEncoding(vf *field.FoldEncoding) {
	h.vf = vf
}

// Registry returns the field type registry used when fields are added to
// this header.
func (h *Base) Registry() *field.Registry {
	if h.reg == nil {
		h.reg = field.DefaultRegistry
	}
	return h.reg
}

// SetRegistry changes the field type registry used when fields are added to
// this header. Existing fields are not reparsed.
func (h *Base) SetRegistry(reg *field.Registry) {
	h.reg = reg
}

// Break returns the line break used to separate header fields and terminate
// the header.
func (h *Base) Break() Break {
	if h.lbr == "" {
		h.lbr = LF
	}
	return h.lbr
}

// SetBreak changes the line break to use with this header.
func (h *Base) SetBreak(lbr Break) {
	h.lbr = lbr
}

// GetField returns the nth field or nil if the index is out of range.
func (h *Base) GetField(n int) *field.Field {
	if n < 0 || n >= len(h.fields) {
		return nil
	}
	return h.fields[n]
}

// Len returns the number of header fields in the header.
func (h *Base) Len() int {
	return len(h.fields)
}

// GetFieldNamed returns the nth (0-indexed) field with the given name or nil
// if no such header field is set.
func (h *Base) GetFieldNamed(name string, n int) *field.Field {
	for _, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			if n == 0 {
				return f
			}
			n--
		}
	}
	return nil
}

// GetAllFieldsNamed returns all the fields with the given name or nil if no
// fields are set with that name.
func (h *Base) GetAllFieldsNamed(name string) []*field.Field {
	var fs []*field.Field
	for _, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			fs = append(fs, f)
		}
	}
	return fs
}

// GetIndexesNamed returns the indexes of fields with the given name.
func (h *Base) GetIndexesNamed(name string) []int {
	var is []int
	for i, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			is = append(is, i)
		}
	}
	return is
}

// ListFields returns all the fields in the header.
func (h *Base) ListFields() []*field.Field {
	fs := make([]*field.Field, len(h.fields))
	copy(fs, h.fields)
	return fs
}

// ChildComponents returns the header's fields as components of the document
// tree.
func (h *Base) ChildComponents() []component.Component {
	cs := make([]component.Component, len(h.fields))
	for i, f := range h.fields {
		cs[i] = f
	}
	return cs
}

// WriteTo writes the header to the given writer, folding each field
// according to the FoldEncoding and terminating the header with an empty
// line. It returns the number of bytes written.
func (h *Base) WriteTo(w io.Writer) (int64, error) {
	total := int64(0)
	for _, f := range h.fields {
		n, err := h.FoldEncoding().Fold(w, f.Bytes(), field.Break(h.Break().Bytes()))
		total += n
		if err != nil {
			return total, err
		}
	}

	n, err := w.Write(h.Break().Bytes())
	total += int64(n)
	return total, err
}

// Bytes returns the header as a slice of bytes.
func (h *Base) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = h.WriteTo(&buf)
	return buf.Bytes()
}

// String returns the header as a string.
func (h *Base) String() string {
	return string(h.Bytes())
}

// InsertBeforeField inserts a new field with the given name and body values
// into the header at the given index.
func (h *Base) InsertBeforeField(
	n int,
	name,
	body string,
) {
	h.initBase()

	// cap the range of n to 0..len(h.fields)
	if n < 0 {
		n = 0
	}
	if n > len(h.fields) {
		n = len(h.fields)
	}

	f := field.NewWith(h.Registry(), name, body)

	// make room for the new field
	h.fields = append(h.fields, nil)

	// move existing fields out of the way
	copy(h.fields[n+1:], h.fields[n:])

	h.fields[n] = f
}

// ClearFields removes all fields from the header.
func (h *Base) ClearFields() {
	h.initBase()
	h.fields = h.fields[:0]
}

// DeleteField removes the nth field from the header. Fails with
// ErrIndexOutOfRange if the given index is out of range.
func (h *Base) DeleteField(n int) error {
	h.initBase()

	if n < 0 || n >= len(h.fields) {
		return ErrIndexOutOfRange
	}

	copy(h.fields[n:], h.fields[n+1:])
	h.fields = h.fields[:len(h.fields)-1]

	return nil
}

// Clone returns a deep copy of the Base. Cloned fields drop their raw
// original bytes only if modified afterward; the copies here start out
// identical to the originals.
func (h *Base) Clone() *Base {
	fields := make([]*field.Field, len(h.fields))
	for i, f := range h.fields {
		fc := *f
		fields[i] = &fc
	}
	c := &Base{
		Region: h.Region,
		lbr:    h.lbr,
		vf:     h.vf,
		fields: fields,
		reg:    h.reg,
	}
	return c
}
