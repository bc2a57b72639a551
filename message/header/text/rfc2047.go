package text

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/zostay/go-mime/encoding"
)

// maxEncodedWordLen is the RFC 2047 limit on a single encoded word,
// delimiters included. The encoder splits longer content into multiple
// words; folding never happens inside a word.
const maxEncodedWordLen = 75

// Encoding type letters used inside encoded words.
const (
	bEncoding = 'B' // base64
	qEncoding = 'Q' // quoted-printable variant
)

// Decode tokenizes a header field body into plain runs and encoded words,
// returning the result as a Text. Plain runs become us-ascii words. An
// ill-formed encoded-word token is passed through verbatim as a plain word
// rather than failing the decode. Linear whitespace between two adjacent
// encoded words is transparent per RFC 2047 §6.2 and is dropped.
//
// The input is expected to be unfolded already; header parsing removes the
// line breaks before field bodies get here.
func Decode(b []byte) Text {
	var (
		words       []Word
		lit         []byte
		lastEncoded bool
	)

	flushLit := func() {
		if len(lit) > 0 {
			// literal runs are usually pure ASCII; raw 8-bit content gets
			// labeled by FromString instead of being called us-ascii
			words = append(words, FromString(string(lit)).words...)
			lit = nil
		}
	}

	pos := 0
	for pos < len(b) {
		ix := bytes.Index(b[pos:], []byte("=?"))
		if ix < 0 {
			lit = append(lit, b[pos:]...)
			break
		}

		w, consumed, ok := decodeWord(b[pos+ix:])
		if !ok {
			// not actually an encoded word, keep the marker as literal text
			lit = append(lit, b[pos:pos+ix+2]...)
			pos += ix + 2
			continue
		}

		run := b[pos : pos+ix]
		if lastEncoded && len(lit) == 0 && len(bytes.TrimLeft(run, " \t")) == 0 {
			// whitespace between two adjacent encoded words separates
			// without meaning; any literal bytes already accumulated mean
			// the words are not adjacent, and everything stays
		} else {
			lit = append(lit, run...)
		}
		flushLit()

		words = append(words, w)
		lastEncoded = true
		pos += ix + consumed
	}
	flushLit()

	return Text{words: words}
}

// decodeWord attempts to parse one encoded word at the start of b. It
// returns the decoded word, the number of bytes consumed, and whether the
// token was well-formed.
func decodeWord(b []byte) (Word, int, bool) {
	// =?charset?e?payload?=
	if !bytes.HasPrefix(b, []byte("=?")) {
		return Word{}, 0, false
	}

	csEnd := bytes.IndexByte(b[2:], '?')
	if csEnd <= 0 {
		return Word{}, 0, false
	}
	cs := b[2 : 2+csEnd]
	if bytes.ContainsAny(cs, " \t") {
		return Word{}, 0, false
	}
	// strip an RFC 2231 language suffix like *en if present
	if star := bytes.IndexByte(cs, '*'); star > 0 {
		cs = cs[:star]
	}

	rest := b[2+csEnd+1:]
	if len(rest) < 2 || rest[1] != '?' {
		return Word{}, 0, false
	}
	enc := rest[0]

	payEnd := bytes.Index(rest[2:], []byte("?="))
	if payEnd < 0 {
		return Word{}, 0, false
	}
	payload := rest[2 : 2+payEnd]
	if bytes.ContainsAny(payload, " \t") {
		return Word{}, 0, false
	}

	consumed := 2 + csEnd + 1 + 2 + payEnd + 2

	var content []byte
	switch enc {
	case 'B', 'b':
		codec, err := encoding.New(encoding.Base64)
		if err != nil {
			return Word{}, 0, false
		}
		buf := &bytes.Buffer{}
		if _, err := codec.Decode(buf, bytes.NewReader(payload)); err != nil {
			return Word{}, 0, false
		}
		content = buf.Bytes()
	case 'Q', 'q':
		codec, err := encoding.New(encoding.QuotedPrintable)
		if err != nil {
			return Word{}, 0, false
		}
		// in Q encoding an underscore stands for space
		qp := bytes.ReplaceAll(payload, []byte{'_'}, []byte{' '})
		buf := &bytes.Buffer{}
		if _, err := codec.Decode(buf, bytes.NewReader(qp)); err != nil {
			return Word{}, 0, false
		}
		content = buf.Bytes()
	default:
		return Word{}, 0, false
	}

	return Word{Charset: string(cs), Content: content}, consumed, true
}

// Encode renders the text as a header-safe byte sequence. Words that are
// pure 7-bit and contain no encoded-word marker pass through literally.
// Everything else becomes one or more encoded words, choosing base64 or
// quoted-printable per word by whichever comes out shorter, split so no
// encoded word exceeds the RFC 2047 length limit, and joined by folding
// whitespace that decoders drop.
func Encode(t Text) string {
	var (
		out         strings.Builder
		lastEncoded bool
	)

	for _, w := range t.words {
		if w.isASCII() && !bytes.Contains(w.Content, []byte("=?")) {
			out.Write(w.Content)
			lastEncoded = false
			continue
		}

		for _, chunk := range splitWord(w) {
			if lastEncoded {
				out.WriteByte(' ')
			}
			out.WriteString(encodeWord(chunk))
			lastEncoded = true
		}
	}

	return out.String()
}

// splitWord breaks a word into chunks small enough that each encodes within
// the length limit. Chunk boundaries back off to UTF-8 rune boundaries when
// the charset is UTF-8 so no character is split across encoded words.
func splitWord(w Word) []Word {
	overhead := len(w.Charset) + 7 // =? ?X? ?=
	maxPayload := maxEncodedWordLen - overhead

	best := qLen(w.Content)
	if b := b64Len(len(w.Content)); b < best {
		best = b
	}
	if best <= maxPayload {
		return []Word{w}
	}

	// the most conservative expansion is quoted-printable's 3x; base64's
	// 4/3 always fits where this does
	maxBytes := maxPayload / 3
	if maxBytes < 1 {
		maxBytes = 1
	}

	utf := strings.EqualFold(w.Charset, UTF8) || strings.EqualFold(w.Charset, "utf8")

	var chunks []Word
	content := w.Content
	for len(content) > 0 {
		n := maxBytes
		if n > len(content) {
			n = len(content)
		}
		if utf {
			for n > 1 && n < len(content) && content[n]&0xc0 == 0x80 {
				n--
			}
		}
		chunks = append(chunks, Word{Charset: w.Charset, Content: content[:n]})
		content = content[n:]
	}
	return chunks
}

// b64Len returns the base64-encoded length of n bytes.
func b64Len(n int) int {
	return (n + 2) / 3 * 4
}

// qLen returns the Q-encoded length of the given bytes.
func qLen(b []byte) int {
	n := 0
	for _, c := range b {
		if qSafe(c) || c == ' ' {
			n++
		} else {
			n += 3
		}
	}
	return n
}

// qSafe reports whether a byte may appear bare in Q encoding.
func qSafe(c byte) bool {
	return c > ' ' && c < 0x7f && c != '=' && c != '?' && c != '_'
}

// encodeWord renders a single encoded word, picking the shorter of base64
// and quoted-printable.
func encodeWord(w Word) string {
	if qLen(w.Content) <= b64Len(len(w.Content)) {
		return fmt.Sprintf("=?%s?%c?%s?=", w.Charset, qEncoding, qEncode(w.Content))
	}

	codec, _ := encoding.New(encoding.Base64, encoding.WithMaxLineLength(0))
	buf := &bytes.Buffer{}
	_, _ = codec.Encode(buf, bytes.NewReader(w.Content))
	return fmt.Sprintf("=?%s?%c?%s?=", w.Charset, bEncoding, buf.String())
}

// qEncode renders bytes in the RFC 2047 Q variant of quoted-printable.
func qEncode(b []byte) string {
	var out strings.Builder
	for _, c := range b {
		switch {
		case c == ' ':
			out.WriteByte('_')
		case qSafe(c):
			out.WriteByte(c)
		default:
			fmt.Fprintf(&out, "=%02X", c)
		}
	}
	return out.String()
}
