// Package text models the RFC 2047 view of a header field body: an ordered
// sequence of words, each a maximal run of characters expressible in one
// character set. This is what lets 8-bit text ride inside 7-bit-safe header
// fields and come back out again.
package text

import (
	"strings"
	"unicode/utf8"

	"github.com/zostay/go-mime/charset"
)

// Charset names used for words built from plain runs.
const (
	ASCII = "us-ascii"
	UTF8  = "UTF-8"
)

// Word is a run of text in a single character set. Content holds the raw
// bytes in that charset, not UTF-8 (unless the charset is UTF-8).
type Word struct {
	Charset string
	Content []byte
}

// NewWord builds a word from a charset name and raw bytes in that charset.
func NewWord(charset string, content []byte) Word {
	return Word{Charset: charset, Content: content}
}

// isASCII reports whether the word's content is pure 7-bit.
func (w Word) isASCII() bool {
	for _, c := range w.Content {
		if c >= 0x80 {
			return false
		}
	}
	return true
}

// Text is an ordered sequence of words. Concatenating the words' decoded
// content reconstructs the logical string. Adjacent words may share a
// charset; they are not merged automatically.
type Text struct {
	words []Word
}

// New builds a Text from the given words.
func New(words ...Word) Text {
	return Text{words: words}
}

// FromString breaks a native UTF-8 string into words: maximal ASCII runs
// become us-ascii words and maximal non-ASCII runs become UTF-8 words.
// Invalid UTF-8 bytes land in UTF-8 words as replacement characters.
func FromString(s string) Text {
	var (
		words []Word
		run   []byte
		ascii = true
	)

	flush := func() {
		if len(run) == 0 {
			return
		}
		cs := ASCII
		if !ascii {
			cs = UTF8
		}
		words = append(words, Word{Charset: cs, Content: run})
		run = nil
	}

	for _, r := range s {
		ra := r < utf8.RuneSelf
		if ra != ascii {
			flush()
			ascii = ra
		}
		run = utf8.AppendRune(run, r)
	}
	flush()

	return Text{words: words}
}

// Words returns the words of the text in order. The returned slice must not
// be modified.
func (t Text) Words() []Word {
	return t.words
}

// Len returns the number of words.
func (t Text) Len() int {
	return len(t.words)
}

// Append returns a Text with the given words added at the end.
func (t Text) Append(words ...Word) Text {
	ws := make([]Word, 0, len(t.words)+len(words))
	ws = append(ws, t.words...)
	ws = append(ws, words...)
	return Text{words: ws}
}

// ConvertedText decodes every word and transcodes the whole into the target
// charset, returning the result as a string of bytes in that charset. It
// fails with charset.ErrUnsupported if any word's charset or the target has
// no conversion backend.
func (t Text) ConvertedText(target string) (string, error) {
	var out strings.Builder
	for _, w := range t.words {
		s, err := charset.Decode(w.Charset, w.Content)
		if err != nil {
			return "", err
		}
		if strings.EqualFold(target, UTF8) {
			out.WriteString(s)
			continue
		}
		b, err := charset.Encode(target, s)
		if err != nil {
			return "", err
		}
		out.Write(b)
	}
	return out.String(), nil
}

// String renders the text as native UTF-8, substituting words whose charset
// has no backend with their raw content. Use ConvertedText to be strict.
func (t Text) String() string {
	var out strings.Builder
	for _, w := range t.words {
		s, err := charset.Decode(w.Charset, w.Content)
		if err != nil {
			out.Write(w.Content)
			continue
		}
		out.WriteString(s)
	}
	return out.String()
}
