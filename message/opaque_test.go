package message_test

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mime/content"
	"github.com/zostay/go-mime/encoding"
	"github.com/zostay/go-mime/message"
)

func TestOpaque(t *testing.T) {
	t.Parallel()

	buf, expect, err := makeSimple()
	assert.NoError(t, err)

	m := buf.Opaque()

	assert.Equal(t, &m.Header, m.GetHeader())

	ps := m.GetParts()
	assert.Nil(t, ps)

	r := m.GetReader()
	assert.NotNil(t, r)

	assert.False(t, m.IsMultipart())
	assert.False(t, m.IsEncoded())

	out := &bytes.Buffer{}
	n, err := m.WriteTo(out)
	assert.Equal(t, int64(len(expect)), n)
	assert.NoError(t, err)
	assert.Equal(t, expect, out.String())
}

func makeSimpleWithEncoding() (*message.Buffer, string, string, error) {
	buf := &message.Buffer{}

	buf.SetSubject("test simple")
	buf.SetTransferEncoding("quoted-printable")
	buf.SetMediaType("text/plain")

	const (
		expect = `Subject: test simple
Content-transfer-encoding: quoted-printable
Content-type: text/plain

`
		encoded = "I =E2=9D=A4 MIME!\r\n"
		decoded = "I ❤ MIME!\n"
	)

	_, err := fmt.Fprint(buf, decoded)

	return buf, expect + encoded, expect + decoded, err
}

func TestOpaque_TransferEncodingEncoded(t *testing.T) {
	t.Parallel()

	buf, expectEnc, _, err := makeSimpleWithEncoding()
	assert.NoError(t, err)

	m := buf.Opaque()

	assert.False(t, m.IsMultipart())
	assert.False(t, m.IsEncoded())

	// the body is stored decoded, so writing the message encodes it
	out := &bytes.Buffer{}
	n, err := m.WriteTo(out)
	assert.Equal(t, int64(len(expectEnc)), n)
	assert.NoError(t, err)
	assert.Equal(t, expectEnc, out.String())
}

func TestOpaque_TransferEncodingDecoded(t *testing.T) {
	t.Parallel()

	buf, _, expectDec, err := makeSimpleWithEncoding()
	assert.NoError(t, err)

	// This is actually wrong since the data created by makeSimpleWithEncoding
	// is not encoded. However, we just want to test that no encoding is
	// performed if we call OpaqueAlreadyEncoded.
	m := buf.OpaqueAlreadyEncoded()

	assert.False(t, m.IsMultipart())
	assert.True(t, m.IsEncoded())

	out := &bytes.Buffer{}
	n, err := m.WriteTo(out)
	assert.Equal(t, int64(len(expectDec)), n)
	assert.NoError(t, err)
	assert.Equal(t, expectDec, out.String())
}

func TestOpaque_GetReader(t *testing.T) {
	t.Parallel()

	buf, _, err := makeSimple()
	require.NoError(t, err)

	m := buf.Opaque()
	r := m.GetReader()
	require.NotNil(t, r)

	body, err := io.ReadAll(r)
	assert.NoError(t, err)
	assert.Equal(t, "This is a simple message.\n", string(body))

	empty := &message.Opaque{}
	assert.Nil(t, empty.GetReader())
}

func TestOpaque_GetReaderUntouched(t *testing.T) {
	t.Parallel()

	// a one-shot stream body: obtaining a reader without reading from it
	// must leave the stream intact for WriteTo
	m := &message.Opaque{
		Body: content.NewStream(
			io.NopCloser(strings.NewReader("one-shot body")),
			encoding.None, -1),
	}
	m.SetMediaType("text/plain")

	r := m.GetReader()
	require.NotNil(t, r)

	buf := &bytes.Buffer{}
	_, err := m.WriteTo(buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "one-shot body")
}

func TestOpaque_Close(t *testing.T) {
	t.Parallel()

	buf, _, err := makeSimple()
	require.NoError(t, err)

	m := buf.Opaque()
	assert.NoError(t, m.Close())

	empty := &message.Opaque{}
	assert.NoError(t, empty.Close())
}

func TestAttachmentFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fn := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(fn, []byte("hello attachment\n"), 0o644))

	m, err := message.AttachmentFile(fn, "text/plain", encoding.Base64)
	require.NoError(t, err)
	defer func() { _ = m.Close() }()

	mt, err := m.GetMediaType()
	assert.NoError(t, err)
	assert.Equal(t, "text/plain", mt)

	p, err := m.GetPresentation()
	assert.NoError(t, err)
	assert.Equal(t, "attachment", p)

	gfn, err := m.GetFilename()
	assert.NoError(t, err)
	assert.Equal(t, "notes.txt", gfn)

	cte, err := m.GetTransferEncoding()
	assert.NoError(t, err)
	assert.Equal(t, encoding.Base64, cte)

	out := &bytes.Buffer{}
	_, err = m.WriteTo(out)
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "aGVsbG8gYXR0YWNobWVudAo=")
	assert.False(t, strings.Contains(out.String(), "hello attachment"))
}

func TestAttachmentFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := message.AttachmentFile("no-such-file", "text/plain", encoding.None)
	assert.Error(t, err)
}
