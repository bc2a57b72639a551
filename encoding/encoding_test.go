package encoding_test

import (
	"bytes"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mime/encoding"
)

// encode and decode are helpers that run a codec over strings and return the
// output alongside the reported byte count.
func encode(t *testing.T, c encoding.Codec, in string) (string, int64) {
	t.Helper()
	buf := &bytes.Buffer{}
	n, err := c.Encode(buf, strings.NewReader(in))
	require.NoError(t, err)
	return buf.String(), n
}

func decode(t *testing.T, c encoding.Codec, in string) (string, int64) {
	t.Helper()
	buf := &bytes.Buffer{}
	n, err := c.Decode(buf, strings.NewReader(in))
	require.NoError(t, err)
	return buf.String(), n
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, name := range []string{
		encoding.None,
		encoding.Bit7,
		encoding.Bit8,
		encoding.Binary,
		encoding.Base64,
		encoding.QuotedPrintable,
		encoding.UUEncode,
	} {
		c, err := encoding.New(name)
		assert.NoError(t, err, name)
		assert.NotNil(t, c, name)
	}

	// names are matched the way headers write them, case-insensitively
	c, err := encoding.New("BASE64")
	assert.NoError(t, err)
	assert.NotNil(t, c)

	c, err = encoding.New("Quoted-Printable")
	assert.NoError(t, err)
	assert.NotNil(t, c)

	_, err = encoding.New("rot13")
	assert.ErrorIs(t, err, encoding.ErrUnknownEncoding)
}

func TestNames(t *testing.T) {
	t.Parallel()

	ns := encoding.Names()
	assert.Contains(t, ns, encoding.Base64)
	assert.Contains(t, ns, encoding.QuotedPrintable)
	assert.Contains(t, ns, encoding.Bit7)
	assert.Contains(t, ns, encoding.UUEncode)
	assert.True(t, sort.StringsAreSorted(ns))
}

func TestAsIs(t *testing.T) {
	t.Parallel()

	const in = "raw bytes \x00\xff pass straight through\r\n"

	for _, name := range []string{
		encoding.None, encoding.Bit7, encoding.Bit8, encoding.Binary,
	} {
		c, err := encoding.New(name)
		require.NoError(t, err)

		out, n := encode(t, c, in)
		assert.Equal(t, in, out)
		assert.Equal(t, int64(len(in)), n)

		out, n = decode(t, c, in)
		assert.Equal(t, in, out)
		assert.Equal(t, int64(len(in)), n)

		assert.Empty(t, c.Properties())
	}
}

func TestBase64_Encode(t *testing.T) {
	t.Parallel()

	c, err := encoding.New(encoding.Base64)
	require.NoError(t, err)

	out, n := encode(t, c, "hello world\n")
	assert.Equal(t, "aGVsbG8gd29ybGQK\r\n", out)
	assert.Equal(t, int64(len(out)), n)
}

func TestBase64_EncodeLineLength(t *testing.T) {
	t.Parallel()

	c, err := encoding.New(encoding.Base64, encoding.WithMaxLineLength(10))
	require.NoError(t, err)

	out, _ := encode(t, c, "abcdefghijklmnopqrstuvwxyz")
	assert.Equal(t,
		"YWJjZGVmZ2\r\nhpamtsbW5v\r\ncHFyc3R1dn\r\nd4eXo=\r\n", out)
}

func TestBase64_Decode(t *testing.T) {
	t.Parallel()

	c, err := encoding.New(encoding.Base64)
	require.NoError(t, err)

	out, n := decode(t, c, "aGVsbG8gd29ybGQK\r\n")
	assert.Equal(t, "hello world\n", out)
	assert.Equal(t, int64(len(out)), n)

	// line breaks, whitespace, and transport junk are skipped
	out, _ = decode(t, c, "aGVs\r\n bG8g\n\td29y bGQK")
	assert.Equal(t, "hello world\n", out)

	// a final quantum short of padding still decodes
	out, _ = decode(t, c, "eXo")
	assert.Equal(t, "yz", out)

	assert.Contains(t, c.Properties(), encoding.PropMaxLineLength)
}

func TestQuotedPrintable(t *testing.T) {
	t.Parallel()

	c, err := encoding.New(encoding.QuotedPrintable)
	require.NoError(t, err)

	out, n := encode(t, c, "h\xc3\xa9llo")
	assert.Equal(t, "h=C3=A9llo", out)
	assert.Equal(t, int64(len(out)), n)

	out, _ = decode(t, c, "h=C3=A9llo")
	assert.Equal(t, "h\xc3\xa9llo", out)

	// soft line breaks disappear on decode
	out, _ = decode(t, c, "foo=\r\nbar")
	assert.Equal(t, "foobar", out)
}

func TestUUEncode(t *testing.T) {
	t.Parallel()

	c, err := encoding.New(encoding.UUEncode)
	require.NoError(t, err)

	out, n := encode(t, c, "hello")
	assert.Equal(t, "begin 644 data\r\n%:&5L;&\\`\r\n`\r\nend\r\n", out)
	assert.Equal(t, int64(len(out)), n)

	back, _ := decode(t, c, out)
	assert.Equal(t, "hello", back)

	// framing lines are optional on decode
	back, _ = decode(t, c, "%:&5L;&\\`\r\n")
	assert.Equal(t, "hello", back)
}

func TestUUEncode_Framing(t *testing.T) {
	t.Parallel()

	c, err := encoding.New(encoding.UUEncode,
		encoding.WithFilename("report.dat"), encoding.WithMode(0o600))
	require.NoError(t, err)

	out, _ := encode(t, c, "x")
	assert.True(t, strings.HasPrefix(out, "begin 600 report.dat\r\n"))
	assert.True(t, strings.HasSuffix(out, "`\r\nend\r\n"))

	assert.Contains(t, c.Properties(), encoding.PropFilename)
	assert.Contains(t, c.Properties(), encoding.PropMode)
}

func TestUUEncode_RoundTripLong(t *testing.T) {
	t.Parallel()

	// longer than one 45-byte line, not a multiple of three
	in := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 3)
	in = in[:100]

	c, err := encoding.New(encoding.UUEncode)
	require.NoError(t, err)

	out, _ := encode(t, c, in)
	back, _ := decode(t, c, out)
	assert.Equal(t, in, back)
}

func TestRegister(t *testing.T) {
	t.Parallel()

	encoding.Register("x-identity", func(...encoding.Option) encoding.Codec {
		c, _ := encoding.New(encoding.Binary)
		return c
	})

	c, err := encoding.New("X-Identity")
	require.NoError(t, err)

	out, _ := encode(t, c, "unchanged")
	assert.Equal(t, "unchanged", out)
}
