package content

import (
	"bytes"
	"io"
	"strings"

	"github.com/zostay/go-mime/encoding"
)

// Memory is a Handler holding its content in a byte slice. It may be
// extracted any number of times and Close is a no-op, though extraction
// after Close still fails with ErrClosed for consistency with other
// handlers.
type Memory struct {
	data   []byte
	enc    string
	closed bool
}

// NewMemory builds a Memory handler from bytes stored in the named transfer
// encoding. Use encoding.Binary (or any of the as-is names) for unencoded
// bytes.
func NewMemory(data []byte, enc string) *Memory {
	return &Memory{data: data, enc: enc}
}

// NewString builds a Memory handler from an unencoded string.
func NewString(s string) *Memory {
	return &Memory{data: []byte(s), enc: encoding.Binary}
}

// Encoding returns the transfer encoding the stored bytes are in.
func (m *Memory) Encoding() string {
	return m.enc
}

// Length returns the stored byte count.
func (m *Memory) Length() int64 {
	return int64(len(m.data))
}

// IsEmpty reports whether there are no stored bytes.
func (m *Memory) IsEmpty() bool {
	return len(m.data) == 0
}

// Extract writes the decoded content to w.
func (m *Memory) Extract(w io.Writer, opts ...Option) (int64, error) {
	if m.closed {
		return 0, ErrClosed
	}
	s := newSettings(opts)
	return decodeTo(w, s.monitor(bytes.NewReader(m.data), m.Length()), m.enc)
}

// ExtractRaw writes the stored content to w without decoding.
func (m *Memory) ExtractRaw(w io.Writer, opts ...Option) (int64, error) {
	if m.closed {
		return 0, ErrClosed
	}
	s := newSettings(opts)
	return io.Copy(w, s.monitor(bytes.NewReader(m.data), m.Length()))
}

// Generate writes the content re-encoded into the named transfer encoding.
// When the target matches the stored encoding the bytes pass through
// untouched.
func (m *Memory) Generate(w io.Writer, enc string, opts ...Option) (int64, error) {
	if m.closed {
		return 0, ErrClosed
	}
	if sameEncoding(m.enc, enc) {
		return m.ExtractRaw(w, opts...)
	}

	s := newSettings(opts)
	pr, pw := io.Pipe()
	go func() {
		_, err := decodeTo(pw, bytes.NewReader(m.data), m.enc)
		pw.CloseWithError(err)
	}()
	return encodeTo(w, s.monitor(pr, -1), enc, s.encOpts)
}

// Close marks the handler closed. The buffer is released to the garbage
// collector.
func (m *Memory) Close() error {
	m.closed = true
	m.data = nil
	return nil
}

// sameEncoding reports whether two encoding names denote the same stored
// representation. All the as-is names count as one encoding.
func sameEncoding(a, b string) bool {
	return canonicalEncoding(a) == canonicalEncoding(b)
}

func canonicalEncoding(e string) string {
	e = strings.ToLower(e)
	switch e {
	case encoding.None, encoding.Bit7, encoding.Bit8, encoding.Binary:
		return encoding.Binary
	case "uuencode":
		return encoding.UUEncode
	}
	return e
}
