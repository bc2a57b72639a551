package field

import (
	"bytes"
	"errors"
	"io"
	"strings"
)

// Defaults used by DefaultFoldEncoding.
const (
	DefaultFoldIndent          = " "  // indent placed before folded lines
	DefaultPreferredFoldLength = 78   // output lines are preferably shorter than this
	DefaultForcedFoldLength    = 998  // output lines are forcibly broken at this length

	DoNotFold = -1 // we prefer not to fold at all
)

var (
	// DefaultFoldEncoding is a FoldEncoding with the recommended settings:
	// lines fold at 78 columns where a space allows it and are forced apart
	// at the RFC 5322 hard maximum of 998.
	DefaultFoldEncoding = &FoldEncoding{
		DefaultFoldIndent,
		DefaultPreferredFoldLength,
		DefaultForcedFoldLength,
	}

	// DoNotFoldEncoding is a FoldEncoding that performs no folding. Parsed
	// headers use it by default so output round-trips the original bytes.
	DoNotFoldEncoding = &FoldEncoding{
		DefaultFoldIndent,
		DoNotFold,
		DoNotFold,
	}
)

// Errors returned by NewFoldEncoding.
var (
	// ErrFoldIndentSpace is returned when the fold indent contains anything
	// besides spaces and tabs.
	ErrFoldIndentSpace = errors.New("fold indent may only contain spaces and tabs")

	// ErrFoldIndentTooShort is returned when the fold indent is empty.
	ErrFoldIndentTooShort = errors.New("fold indent must contain at least one space or tab")

	// ErrFoldIndentTooLong is returned when the fold indent is as long as or
	// longer than the preferred fold length.
	ErrFoldIndentTooLong = errors.New("fold indent must be shorter than the preferred fold length")

	// ErrFoldLengthTooLong is returned when the preferred fold length
	// exceeds the forced fold length.
	ErrFoldLengthTooLong = errors.New("preferred fold length must be no longer than the forced fold length")

	// ErrFoldLengthTooShort is returned when a fold length is too short to
	// fold anything at all.
	ErrFoldLengthTooShort = errors.New("preferred fold length and forced fold length cannot be too short")

	// ErrDoNotFold is returned when only one of the two fold lengths is set
	// to DoNotFold.
	ErrDoNotFold = errors.New("preferred fold length and forced fold length must both be -1 if either are -1")
)

// Break is the line break in use while folding, as bytes.
type Break []byte

// FoldEncoding is the line folding policy applied to header fields during
// generation. Folding only breaks lines at whitespace, which means it never
// breaks inside an RFC 2047 encoded word: encoded words contain no spaces
// and are always shorter than any legal fold length.
type FoldEncoding struct {
	foldIndent          string
	preferredFoldLength int
	forcedFoldLength    int
}

// NewFoldEncoding creates a FoldEncoding with the given settings. The
// foldIndent must be one or more space or tab characters and shorter than
// preferredFoldLength. The preferredFoldLength must not exceed
// forcedFoldLength. To disable folding, set both lengths to DoNotFold.
//
// Nothing here prevents folding before the colon of an extremely long field
// name; the fold lengths are simply assumed to be wider than any field name
// in use.
func NewFoldEncoding(
	foldIndent string,
	preferredFoldLength,
	forcedFoldLength int,
) (*FoldEncoding, error) {
	if ix := strings.IndexFunc(foldIndent, isNonSpace); ix >= 0 {
		return nil, ErrFoldIndentSpace
	}

	if len(foldIndent) < 1 {
		return nil, ErrFoldIndentTooShort
	}

	if (preferredFoldLength == DoNotFold) != (forcedFoldLength == DoNotFold) {
		return nil, ErrDoNotFold
	}

	if preferredFoldLength != DoNotFold {
		if len(foldIndent) >= preferredFoldLength {
			return nil, ErrFoldIndentTooLong
		}

		if preferredFoldLength > forcedFoldLength {
			return nil, ErrFoldLengthTooLong
		}

		if preferredFoldLength < 3 || forcedFoldLength < 3 {
			return nil, ErrFoldLengthTooShort
		}
	}

	return &FoldEncoding{foldIndent, preferredFoldLength, forcedFoldLength}, nil
}

// Unfold removes the line breaks from a folded header line, yielding the
// logical field content.
func (vf *FoldEncoding) Unfold(f []byte) []byte {
	uf := make([]byte, 0, len(f))
	for _, b := range f {
		if !isCRLF(rune(b)) {
			uf = append(uf, b)
		}
	}
	return uf
}

func isCRLF(c rune) bool     { return c == '\r' || c == '\n' }
func isSpace(c rune) bool    { return c == ' ' || c == '\t' }
func isNonSpace(c rune) bool { return !isSpace(c) }

// Fold writes the given field content to out, folded according to the
// policy: every folded line is indented, breaks happen at whitespace where
// possible, and lines longer than the forced fold length are broken
// regardless. Returns the number of bytes written.
func (vf *FoldEncoding) Fold(out io.Writer, f []byte, lb Break) (int64, error) {
	total := int64(0)
	continuingLine := false
	writeFold := func(f []byte, end int) ([]byte, error) {
		// only indent if there's no space already present at the break
		if continuingLine && !isSpace(rune(f[0])) {
			n, err := out.Write([]byte(vf.foldIndent))
			total += int64(n)
			if err != nil {
				return nil, err
			}
		}
		n, err := out.Write(f[:end])
		total += int64(n)
		if err != nil {
			return nil, err
		}

		n, err = out.Write(lb)
		total += int64(n)
		if err != nil {
			return nil, err
		}

		f = f[end:]
		continuingLine = true

		return bytes.TrimLeft(f, " \t"), nil
	}

	if vf.preferredFoldLength == DoNotFold || len(f) < vf.preferredFoldLength {
		_, err := writeFold(f, len(f))
		return total, err
	}

	lines := bytes.Split(f, lb)
	for _, line := range lines {
	FoldingSingle:
		for len(line) > 0 {
			var err error

			// do we need to fold this line at all?
			if len(line) <= vf.preferredFoldLength-len(lb) {
				line, err = writeFold(line, len(line))
				if err != nil {
					return total, err
				}
				continue FoldingSingle
			}

			var firstChar int
			if continuingLine {
				// past the first line, the first non-space is the first char
				firstChar = bytes.IndexFunc(line, isNonSpace)
			} else {
				// on the first line, the first non-space after the colon is
				// the first char
				colon := bytes.IndexRune(line, ':')
				firstChar = bytes.IndexFunc(line[colon+1:], isNonSpace)
				if firstChar >= 0 {
					firstChar += colon + 1
				}
			}
			if firstChar < 0 {
				firstChar = 0
			}

			// best case, there's a space to break at before the preferred
			// fold length; a field name or leading token may swallow the
			// whole preferred window, in which case there's nothing to
			// search
			if end := vf.preferredFoldLength - len(lb); firstChar < end {
				if ix := bytes.LastIndexFunc(line[firstChar:end], isSpace); ix >= 0 {
					line, err = writeFold(line, ix+firstChar)
					if err != nil {
						return total, err
					}
					continue FoldingSingle
				}
			}

			// barring that, break at the first space past the mark, if it
			// comes before the forced fold length
			if ix := bytes.IndexFunc(line[firstChar:], isSpace); ix >= 0 && ix+firstChar < vf.forcedFoldLength-len(lb) {
				line, err = writeFold(line, ix+firstChar)
				if err != nil {
					return total, err
				}
				continue FoldingSingle
			}

			// a really long line with no space gets broken by force
			if len(line) > vf.forcedFoldLength-len(lb) {
				line, err = writeFold(line, vf.forcedFoldLength-len(lb))
				if err != nil {
					return total, err
				}
				continue FoldingSingle
			}

			// longer than we prefer, but we aren't forced to break it
			line, err = writeFold(line, len(line))
			if err != nil {
				return total, err
			}
		}
	}

	return total, nil
}
