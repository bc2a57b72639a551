// Package content abstracts where a body's bytes live and what transfer
// encoding they are stored in. A Handler owns its data: memory handlers own
// a buffer, stream handlers adopt a reader and take responsibility for
// closing it. All handlers expose the same extraction surface, so code that
// consumes a body never cares which kind it got.
package content

import (
	"errors"
	"io"

	"github.com/zostay/go-mime/encoding"
	"github.com/zostay/go-mime/stream"
)

// Errors returned by content handlers.
var (
	// ErrConsumed is returned when extracting from a one-shot stream handler
	// a second time. Wrap the source in something seekable if you need
	// repeated extraction.
	ErrConsumed = errors.New("content stream already consumed")

	// ErrClosed is returned when extracting from a handler after Close.
	ErrClosed = errors.New("content handler is closed")
)

// Handler is a source of body content. The stored bytes may be transfer
// encoded; Encoding names the encoding they are stored in ("base64",
// "quoted-printable", or "binary"/"7bit"/"8bit" for as-is data).
//
// Extract writes the decoded bytes. ExtractRaw writes the stored bytes
// untouched. Generate writes the bytes re-encoded into the named target
// encoding, which is what document generation uses.
//
// Close releases whatever the handler owns. Extraction after Close fails
// with ErrClosed.
type Handler interface {
	io.Closer

	// Encoding returns the name of the transfer encoding the stored bytes
	// are in.
	Encoding() string

	// Length returns the count of stored (still encoded) bytes, or -1 when
	// it cannot be known without consuming the source.
	Length() int64

	// IsEmpty reports whether there is no content at all.
	IsEmpty() bool

	// Extract writes the decoded content to w.
	Extract(w io.Writer, opts ...Option) (int64, error)

	// ExtractRaw writes the stored content to w without decoding.
	ExtractRaw(w io.Writer, opts ...Option) (int64, error)

	// Generate writes the content re-encoded in the named transfer encoding
	// to w.
	Generate(w io.Writer, enc string, opts ...Option) (int64, error)
}

// Option adjusts a single extraction.
type Option func(*settings)

type settings struct {
	observer stream.Observer
	encOpts  []encoding.Option
}

// WithObserver attaches a progress observer to the extraction. The observer
// sees raw byte counts as they are read from the handler's source.
func WithObserver(obs stream.Observer) Option {
	return func(s *settings) {
		s.observer = obs
	}
}

// WithEncodingOptions passes codec options through to the encoder used by
// Generate, such as encoding.WithMaxLineLength.
func WithEncodingOptions(opts ...encoding.Option) Option {
	return func(s *settings) {
		s.encOpts = append(s.encOpts, opts...)
	}
}

func newSettings(opts []Option) *settings {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// monitor wraps r with the observer when one is set.
func (s *settings) monitor(r io.Reader, predicted int64) io.Reader {
	if s.observer == nil {
		return r
	}
	return stream.NewMonitorReader(r, s.observer, predicted)
}

// decodeTo copies from r to w, decoding the named transfer encoding. An
// unknown encoding is treated as as-is rather than failing: tolerating a
// bogus Content-transfer-encoding beats refusing to extract anything.
func decodeTo(w io.Writer, r io.Reader, enc string) (int64, error) {
	codec, err := encoding.New(enc)
	if err != nil {
		codec, _ = encoding.New(encoding.Binary)
	}
	return codec.Decode(w, r)
}

// encodeTo copies from r to w, encoding into the named transfer encoding.
func encodeTo(w io.Writer, r io.Reader, enc string, opts []encoding.Option) (int64, error) {
	codec, err := encoding.New(enc, opts...)
	if err != nil {
		return 0, err
	}
	return codec.Encode(w, r)
}
