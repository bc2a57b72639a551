// Package charset provides streaming conversion between named character
// encodings, built on golang.org/x/text. Encodings are looked up by their
// IANA/MIME names through ianaindex, which covers pretty much any character
// set likely to turn up in the wild wild world of email. It does make
// compiled binaries considerably larger; that is the price of reading
// other people's mail.
//
// A Converter validates both names at construction time, so an unsupported
// conversion pair fails before any bytes move. The streaming filters returned
// by NewWriter and NewReader buffer partial multi-byte sequences across
// calls, so splitting input at arbitrary points never corrupts a character.
// The writer must be closed to flush that buffer: dropping it unclosed before
// the underlying stream is finished risks losing the last buffered bytes.
// This is a usage contract, not a bug.
package charset

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	_ "golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// ErrUnsupported is returned when no conversion backend exists for a named
// character encoding.
var ErrUnsupported = errors.New("charset conversion not supported")

// lookup resolves a charset name to an encoding or fails with
// ErrUnsupported.
func lookup(name string) (encoding.Encoding, error) {
	e, err := ianaindex.MIME.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrUnsupported, name, err)
	}
	if e == nil {
		// ianaindex returns a nil encoding without error for names it knows
		// but has no implementation for
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, name)
	}
	return e, nil
}

// Supported reports whether the named charset has a conversion backend.
func Supported(name string) bool {
	_, err := lookup(name)
	return err == nil
}

// Converter transcodes bytes from a source character encoding to a
// destination encoding. A Converter is stateless and may be shared; the
// streams it produces are not.
type Converter struct {
	from, to encoding.Encoding
	fromName string
	toName   string
}

// NewConverter resolves both charset names and returns a Converter, or fails
// with ErrUnsupported if either end of the pair has no backend.
func NewConverter(from, to string) (*Converter, error) {
	fe, err := lookup(from)
	if err != nil {
		return nil, err
	}
	te, err := lookup(to)
	if err != nil {
		return nil, err
	}
	return &Converter{from: fe, to: te, fromName: from, toName: to}, nil
}

// From returns the source charset name.
func (c *Converter) From() string { return c.fromName }

// To returns the destination charset name.
func (c *Converter) To() string { return c.toName }

// transformer chains the source decoder and destination encoder through
// UTF-8.
func (c *Converter) transformer() transform.Transformer {
	return transform.Chain(c.from.NewDecoder(), c.to.NewEncoder())
}

// NewWriter returns a writer that transcodes everything written to it and
// forwards the result to w. Partial multi-byte sequences are buffered across
// Write calls. Close must be called to flush the final buffered bytes; it
// does not close w.
func (c *Converter) NewWriter(w io.Writer) io.WriteCloser {
	return transform.NewWriter(w, c.transformer())
}

// NewReader returns a reader that transcodes everything read through it.
func (c *Converter) NewReader(r io.Reader) io.Reader {
	return transform.NewReader(r, c.transformer())
}

// Bytes converts a complete byte slice.
func (c *Converter) Bytes(b []byte) ([]byte, error) {
	out, _, err := transform.Bytes(c.transformer(), b)
	return out, err
}

// Decode converts bytes in the named charset to a native UTF-8 string.
func Decode(name string, b []byte) (string, error) {
	e, err := lookup(name)
	if err != nil {
		return "", err
	}
	db, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(db), nil
}

// Encode converts a native UTF-8 string to bytes in the named charset.
func Encode(name, s string) ([]byte, error) {
	e, err := lookup(name)
	if err != nil {
		return nil, err
	}
	return e.NewEncoder().Bytes([]byte(s))
}
