package message_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mime/content"
	"github.com/zostay/go-mime/encoding"
	"github.com/zostay/go-mime/message"
)

func TestMultipart(t *testing.T) {
	t.Parallel()

	buf, expect, err := makeMultipart()
	assert.NoError(t, err)

	m, err := buf.Multipart()
	assert.NoError(t, err)

	assert.Equal(t, &m.Header, m.GetHeader())

	ps := m.GetParts()
	assert.Len(t, ps, 1)

	assert.Nil(t, m.GetReader())
	assert.True(t, m.IsMultipart())
	assert.False(t, m.IsEncoded())

	out := &bytes.Buffer{}
	n, err := m.WriteTo(out)
	assert.Equal(t, int64(len(expect)), n)
	assert.NoError(t, err)
	assert.Equal(t, expect, out.String())
}

func TestMultipart_StreamPart(t *testing.T) {
	t.Parallel()

	// a part backed by a one-shot stream must survive the emptiness check
	// in WriteTo and still have all its bytes when its turn comes
	part := &message.Opaque{
		Body: content.NewStream(
			io.NopCloser(strings.NewReader("attached bytes")),
			encoding.None, -1),
	}
	part.SetMediaType("application/octet-stream")

	mm := message.MultipartMixed(part)
	require.NoError(t, mm.SetBoundary("b"))

	out := &bytes.Buffer{}
	_, err := mm.WriteTo(out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "attached bytes")
}

func TestMultipart_NoBoundary(t *testing.T) {
	t.Parallel()

	m := &message.Multipart{}
	m.SetMediaType("multipart/mixed")

	_, err := m.WriteTo(&bytes.Buffer{})
	assert.ErrorIs(t, err, message.ErrNoBoundary)
}

func TestMultipartAlternative(t *testing.T) {
	t.Parallel()

	m := message.MultipartAlternative(makePart(), makePart())
	mt, err := m.GetMediaType()
	require.NoError(t, err)
	assert.Equal(t, "multipart/alternative", mt)
	assert.Len(t, m.GetParts(), 2)
}

func TestMultipartMixed(t *testing.T) {
	t.Parallel()

	m := message.MultipartMixed(makePart())
	mt, err := m.GetMediaType()
	require.NoError(t, err)
	assert.Equal(t, "multipart/mixed", mt)
	assert.Len(t, m.GetParts(), 1)
}

func TestMultipart_ChildComponents(t *testing.T) {
	t.Parallel()

	m := message.MultipartMixed(makePart(), makePart())
	cs := m.ChildComponents()

	// the header plus both parts
	assert.Len(t, cs, 3)
	assert.Equal(t, m.GetHeader(), cs[0])
}

func TestMultipart_Close(t *testing.T) {
	t.Parallel()

	m := message.MultipartMixed(makePart(), makePart())
	assert.NoError(t, m.Close())
}
