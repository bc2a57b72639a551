package header

import (
	"bytes"
	"errors"

	"github.com/zostay/go-mime/message/header/field"
)

// ParseOption is a setting that adjusts how Parse builds a header.
type ParseOption func(*parseSettings)

type parseSettings struct {
	offset int64
	reg    *field.Registry
}

// WithOffset records the position of the header within a larger document, so
// that the header and its fields report absolute positions through their
// component methods. The default is zero, the start of the input.
func WithOffset(offset int64) ParseOption {
	return func(s *parseSettings) {
		s.offset = offset
	}
}

// WithRegistry selects the field type registry used to build structured
// values for the parsed fields. The default registry is used otherwise.
func WithRegistry(reg *field.Registry) ParseOption {
	return func(s *parseSettings) {
		s.reg = reg
	}
}

// Parse will parse the given slice of bytes into a header using the given
// line break. It will assume the entire input given represents the header to
// be parsed.
//
// The parsed header will have field.DoNotFoldEncoding. This allows the code
// to round-trip without modifying the original. Use SetFoldEncoding() if
// this is something you would like to change.
//
// Junk lines before the first field are skipped and reported through a
// *field.BadStartError returned alongside the otherwise usable header.
func Parse(m []byte, lb Break, opts ...ParseOption) (*Header, error) {
	settings := parseSettings{}
	for _, opt := range opts {
		opt(&settings)
	}

	lines, err := field.ParseLines(m, lb.Bytes())

	var badStartErr *field.BadStartError // recoverable
	var finalErr error
	if errors.As(err, &badStartErr) {
		finalErr = badStartErr
	} else if err != nil {
		return nil, err
	}

	fields := make([]*field.Field, len(lines))
	cursor := 0
	for i, line := range lines {
		fields[i] = field.Parse(line, lb.Bytes(), settings.reg)

		// lines appear in input order, so each one is found at or after the
		// cursor; junk skipped by ParseLines just moves the cursor forward
		if at := bytes.Index(m[cursor:], line); at >= 0 {
			start := cursor + at
			fields[i].SetParsed(settings.offset+int64(start), int64(len(line)))
			cursor = start + len(line)
		}
	}

	h := &Header{
		Base: Base{
			lbr:    lb,
			vf:     field.DoNotFoldEncoding,
			fields: fields,
			reg:    settings.reg,
		},
	}
	h.SetParsed(settings.offset, int64(len(m)))

	return h, finalErr
}
