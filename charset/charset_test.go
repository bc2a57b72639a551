package charset_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mime/charset"
)

func TestSupported(t *testing.T) {
	t.Parallel()

	assert.True(t, charset.Supported("UTF-8"))
	assert.True(t, charset.Supported("ISO-8859-1"))
	assert.True(t, charset.Supported("iso-8859-1"))
	assert.False(t, charset.Supported("x-no-such-charset"))
}

func TestDecode(t *testing.T) {
	t.Parallel()

	s, err := charset.Decode("ISO-8859-1", []byte{'c', 'a', 'f', 0xe9})
	assert.NoError(t, err)
	assert.Equal(t, "café", s)

	s, err = charset.Decode("UTF-8", []byte("café"))
	assert.NoError(t, err)
	assert.Equal(t, "café", s)

	_, err = charset.Decode("x-no-such-charset", []byte("whatever"))
	assert.ErrorIs(t, err, charset.ErrUnsupported)
}

func TestEncode(t *testing.T) {
	t.Parallel()

	b, err := charset.Encode("ISO-8859-1", "café")
	assert.NoError(t, err)
	assert.Equal(t, []byte{'c', 'a', 'f', 0xe9}, b)

	_, err = charset.Encode("x-no-such-charset", "whatever")
	assert.ErrorIs(t, err, charset.ErrUnsupported)
}

func TestNewConverter(t *testing.T) {
	t.Parallel()

	c, err := charset.NewConverter("ISO-8859-1", "UTF-8")
	require.NoError(t, err)
	assert.Equal(t, "ISO-8859-1", c.From())
	assert.Equal(t, "UTF-8", c.To())

	_, err = charset.NewConverter("x-no-such-charset", "UTF-8")
	assert.ErrorIs(t, err, charset.ErrUnsupported)

	_, err = charset.NewConverter("UTF-8", "x-no-such-charset")
	assert.ErrorIs(t, err, charset.ErrUnsupported)
}

func TestConverter_Bytes(t *testing.T) {
	t.Parallel()

	c, err := charset.NewConverter("ISO-8859-1", "UTF-8")
	require.NoError(t, err)

	out, err := c.Bytes([]byte{'n', 'a', 0xef, 'v', 'e'})
	assert.NoError(t, err)
	assert.Equal(t, []byte("naïve"), out)
}

func TestConverter_NewReader(t *testing.T) {
	t.Parallel()

	c, err := charset.NewConverter("ISO-8859-1", "UTF-8")
	require.NoError(t, err)

	r := c.NewReader(bytes.NewReader([]byte{'c', 'a', 'f', 0xe9}))
	out, err := io.ReadAll(r)
	assert.NoError(t, err)
	assert.Equal(t, "café", string(out))
}

func TestConverter_NewWriter(t *testing.T) {
	t.Parallel()

	c, err := charset.NewConverter("UTF-8", "ISO-8859-1")
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	w := c.NewWriter(buf)

	// the multi-byte é is split across writes; the writer buffers the
	// partial sequence instead of corrupting it
	e := []byte("é")
	_, err = w.Write([]byte("caf"))
	require.NoError(t, err)
	_, err = w.Write(e[:1])
	require.NoError(t, err)
	_, err = w.Write(e[1:])
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Equal(t, []byte{'c', 'a', 'f', 0xe9}, buf.Bytes())
}

func TestConverter_Shared(t *testing.T) {
	t.Parallel()

	// one converter, independent streams
	c, err := charset.NewConverter("ISO-8859-1", "UTF-8")
	require.NoError(t, err)

	r1 := c.NewReader(strings.NewReader("plain"))
	r2 := c.NewReader(bytes.NewReader([]byte{0xe9}))

	out1, err := io.ReadAll(r1)
	assert.NoError(t, err)
	out2, err := io.ReadAll(r2)
	assert.NoError(t, err)

	assert.Equal(t, "plain", string(out1))
	assert.Equal(t, "é", string(out2))
}
