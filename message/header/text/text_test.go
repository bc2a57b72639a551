package text_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mime/message/header/text"
)

func TestFromString(t *testing.T) {
	t.Parallel()

	ws := text.FromString("plain ascii").Words()
	require.Len(t, ws, 1)
	assert.Equal(t, text.ASCII, ws[0].Charset)
	assert.Equal(t, "plain ascii", string(ws[0].Content))

	// runs alternate between ascii and UTF-8
	ws = text.FromString("café break").Words()
	require.Len(t, ws, 3)
	assert.Equal(t, text.ASCII, ws[0].Charset)
	assert.Equal(t, "caf", string(ws[0].Content))
	assert.Equal(t, text.UTF8, ws[1].Charset)
	assert.Equal(t, "é", string(ws[1].Content))
	assert.Equal(t, text.ASCII, ws[2].Charset)
	assert.Equal(t, " break", string(ws[2].Content))
}

func TestText_Append(t *testing.T) {
	t.Parallel()

	tx := text.New(text.NewWord(text.ASCII, []byte("one ")))
	assert.Equal(t, 1, tx.Len())

	tx = tx.Append(text.NewWord(text.UTF8, []byte("twó")))
	assert.Equal(t, 2, tx.Len())
	assert.Equal(t, "one twó", tx.String())
}

func TestText_ConvertedText(t *testing.T) {
	t.Parallel()

	tx := text.New(
		text.NewWord("ISO-8859-1", []byte{'c', 'a', 'f', 0xe9}),
		text.NewWord(text.ASCII, []byte("!")),
	)

	s, err := tx.ConvertedText(text.UTF8)
	assert.NoError(t, err)
	assert.Equal(t, "café!", s)

	b, err := text.FromString("café").ConvertedText("ISO-8859-1")
	assert.NoError(t, err)
	assert.Equal(t, string([]byte{'c', 'a', 'f', 0xe9}), b)

	_, err = text.New(text.NewWord("x-no-such-charset", []byte("x"))).
		ConvertedText(text.UTF8)
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tx := text.Decode([]byte("=?UTF-8?B?SGVsbG8=?="))
	require.Equal(t, 1, tx.Len())
	assert.Equal(t, "UTF-8", tx.Words()[0].Charset)
	assert.Equal(t, "Hello", tx.String())

	tx = text.Decode([]byte("Hello =?UTF-8?Q?W=C3=B6rld?="))
	assert.Equal(t, "Hello Wörld", tx.String())

	// in Q encoding an underscore stands for a space
	tx = text.Decode([]byte("=?UTF-8?Q?hello_world?="))
	assert.Equal(t, "hello world", tx.String())
}

func TestDecode_AdjacentWords(t *testing.T) {
	t.Parallel()

	// whitespace between two encoded words carries no meaning
	tx := text.Decode([]byte("=?UTF-8?B?YQ==?= =?UTF-8?B?Yg==?="))
	assert.Equal(t, 2, tx.Len())
	assert.Equal(t, "ab", tx.String())
}

func TestDecode_IllFormed(t *testing.T) {
	t.Parallel()

	// a bare =? that never becomes an encoded word stays literal
	tx := text.Decode([]byte("price =? 100"))
	assert.Equal(t, "price =? 100", tx.String())

	// an unterminated encoded word stays literal too
	tx = text.Decode([]byte("=?UTF-8?B?dHJ1bmNhdGVk"))
	assert.Equal(t, "=?UTF-8?B?dHJ1bmNhdGVk", tx.String())

	// an ill-formed marker between two encoded words survives, whitespace
	// and all, since the words are not adjacent
	tx = text.Decode([]byte("=?UTF-8?B?Zg==?==? =?UTF-8?B?Zw==?="))
	assert.Equal(t, "f=? g", tx.String())
}

func TestEncode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "plain ascii", text.Encode(text.FromString("plain ascii")))

	assert.Equal(t, "caf=?UTF-8?B?w6k=?=",
		text.Encode(text.FromString("café")))
}

func TestEncode_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		"plain",
		"café",
		"Hello Wörld",
		"こんにちは",
		"a =? b",
	} {
		enc := text.Encode(text.FromString(s))
		assert.Equal(t, s, text.Decode([]byte(enc)).String(), enc)
	}
}

func TestEncode_SplitsLongWords(t *testing.T) {
	t.Parallel()

	var in string
	for i := 0; i < 60; i++ {
		in += "é"
	}

	enc := text.Encode(text.FromString(in))

	for _, seg := range strings.Split(enc, " ") {
		assert.LessOrEqual(t, len(seg), 75, seg)
	}
	assert.Equal(t, in, text.Decode([]byte(enc)).String())
}
