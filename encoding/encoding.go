// Package encoding implements the content-transfer-encodings used to make
// message bodies safe for transport: base64, quoted-printable, the as-is
// encodings (7bit, 8bit, binary), and uuencode.
//
// Codecs are produced by a name-keyed registry so that the encoding named in
// a Content-transfer-encoding header can be turned directly into a codec.
// Every codec streams: it never holds more than a bounded working buffer in
// memory regardless of input size, and a codec instance carries no state
// between calls, so the same instance may be reused with fresh streams.
package encoding

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Names of the encodings registered by default.
const (
	None            = ""                 // bytes are left as-is
	Bit7            = "7bit"             // bytes are left as-is
	Bit8            = "8bit"             // bytes are left as-is
	Binary          = "binary"           // bytes are left as-is
	QuotedPrintable = "quoted-printable" // RFC 2045 §6.7
	Base64          = "base64"           // RFC 2045 §6.8
	UUEncode        = "x-uuencode"       // classic uuencode with begin/end framing
)

// Property names recognized by codec options.
const (
	PropMaxLineLength = "maxlinelength"
	PropFilename      = "filename"
	PropMode          = "mode"
)

// ErrUnknownEncoding is returned by New when no codec is registered under the
// requested name.
var ErrUnknownEncoding = errors.New("no codec registered for encoding")

// Codec encodes and decodes a content-transfer-encoding over streams.
type Codec interface {
	// Encode reads binary data from src, writes its encoded form to dst, and
	// returns the number of bytes written to dst.
	Encode(dst io.Writer, src io.Reader) (int64, error)

	// Decode reads encoded data from src, writes the recovered binary data
	// to dst, and returns the number of bytes written to dst. Decoders are
	// tolerant of transport damage where possible (stray line breaks,
	// missing base64 padding, truncated escapes) and at minimum round-trip
	// anything the matching Encode produced.
	Decode(dst io.Writer, src io.Reader) (int64, error)

	// Properties returns the configuration keys this codec recognizes.
	// Unset properties take documented defaults.
	Properties() []string
}

// config collects the option values shared by the codec constructors.
type config struct {
	maxLineLength int
	filename      string
	mode          int
}

// Option configures a codec produced by New.
type Option func(*config)

// WithMaxLineLength sets the maximum encoded output line length for codecs
// that wrap their output in lines.
func WithMaxLineLength(n int) Option {
	return func(c *config) { c.maxLineLength = n }
}

// WithFilename sets the filename recorded by codecs that frame their output,
// such as uuencode.
func WithFilename(fn string) Option {
	return func(c *config) { c.filename = fn }
}

// WithMode sets the unix file mode recorded by uuencode framing.
func WithMode(mode int) Option {
	return func(c *config) { c.mode = mode }
}

// Factory constructs a codec from the given options.
type Factory func(opts ...Option) Codec

// registry is the process-wide name→codec table. Custom encodings must be
// registered before concurrent use begins.
var registry = map[string]Factory{
	None:            newAsIsCodec,
	Bit7:            newAsIsCodec,
	Bit8:            newAsIsCodec,
	Binary:          newAsIsCodec,
	Base64:          newBase64Codec,
	QuotedPrintable: newQuotedPrintableCodec,
	UUEncode:        newUUCodec,
	"uuencode":      newUUCodec,
}

// Register adds or replaces the codec factory for the given encoding name.
// Names are case-insensitive.
func Register(name string, f Factory) {
	registry[strings.ToLower(name)] = f
}

// New returns a codec for the named encoding or ErrUnknownEncoding. Names
// are case-insensitive, matching how they appear in transfer encoding
// headers.
func New(name string, opts ...Option) (Codec, error) {
	f, known := registry[strings.ToLower(name)]
	if !known {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return f(opts...), nil
}

// Names returns the registered encoding names, sorted.
func Names() []string {
	ns := make([]string, 0, len(registry))
	for n := range registry {
		ns = append(ns, n)
	}
	sort.Strings(ns)
	return ns
}

// countingWriter tracks how many bytes pass through to the underlying
// writer, so codecs can report bytes written.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
