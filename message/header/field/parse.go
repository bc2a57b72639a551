package field

import (
	"bytes"

	"github.com/zostay/go-mime/message/header/text"
)

// BadStartError is returned when the header begins with junk text that does
// not appear to be a header. This text is preserved in the error object so
// the caller can recover it.
type BadStartError struct {
	BadStart []byte // the text skipped at the start of header
}

// Error returns the error message.
func (err *BadStartError) Error() string {
	return "header starts with text that does not appear to be a header"
}

// Line represents the unparsed content for a complete header field line.
type Line []byte

// Lines represents the unparsed content for zero or more header field
// lines.
type Lines []Line

// ParseLines splits the given input into lines according to the rules we
// use to determine how to break header fields up inside a header. The input
// bytes are expected to include only the header; all of it is parsed as if
// it belongs to the header. It returns the input as Lines, ready to feed
// into Parse.
//
// This does not follow RFC 5322 precisely. It accepts input the
// specification would reject, as part of the effort this library makes to
// be liberal in what it accepts and strict in what it generates.
//
// If the first line (or lines) of input start with spaces or contain no
// colons, those lines are skipped in the Lines returned, and a
// BadStartError is returned alongside the lines.
//
// From then on, a new field starts on any line that does not begin with a
// space and contains a colon. Any other line is a continuation of the field
// before it. (Space here means space or tab; everything else is a
// non-space, in keeping with RFC 5322.)
func ParseLines(m, lb []byte) (Lines, error) {
	h := make(Lines, 0, len(m)/80)
	var err *BadStartError
	for _, line := range bytes.SplitAfter(m, lb) {
		if len(line) == 0 {
			break
		}
		if line[0] == '\t' || line[0] == ' ' || !bytes.Contains(line, []byte(":")) {
			// Start with a continuation? Weird, uh...
			if len(h) == 0 {
				if err != nil {
					err.BadStart = append(err.BadStart, line...)
				} else {
					err = &BadStartError{line}
				}
				continue
			}

			h[len(h)-1] = append(h[len(h)-1], line...)
		} else {
			h = append(h, line)
		}
	}

	if err != nil {
		return h, err
	}
	return h, nil
}

// Parse takes a single header field line, including any folded continuation
// lines, and constructs a Field: the original bytes are preserved in Raw,
// the name and body are unfolded and decoded into Base, and the structured
// value is built through the given Registry (the default Registry when reg
// is nil). The caller is responsible for recording the field's location via
// SetParsed when the source offset is known.
func Parse(f Line, lb []byte, reg *Registry) *Field {
	rawField := bytes.TrimRight(f, string(lb))

	off := 1
	ix := bytes.Index(rawField, []byte{':'})
	if ix < 0 {
		ix = len(rawField)
		off = 0
	}

	// unfold is not affected by choices made when folding, so the default
	// policy works for any input
	name := string(DefaultFoldEncoding.Unfold(rawField[:ix]))
	wireBody := bytes.TrimSpace(DefaultFoldEncoding.Unfold(rawField[ix+off:]))
	body := text.Decode(wireBody).String()

	if reg == nil {
		reg = DefaultRegistry
	}

	return &Field{
		Base:  Base{name, body},
		raw:   &Raw{rawField, ix},
		value: reg.Value(name, string(wireBody)),
		reg:   reg,
	}
}
