package header_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mime/message/header"
	"github.com/zostay/go-mime/message/header/param"
	"github.com/zostay/go-mime/message/header/text"
)

const basicHeader = "" +
	"From: \"J. Smith\" <js@example.com>\r\n" +
	"To: one@example.com, two@example.com\r\n" +
	"Subject: Linux =?UTF-8?B?ZMOp?=\r\n" +
	"Date: Sat, 31 Jan 2015 03:23:09 +0000\r\n" +
	"Message-ID: <abc123@example.com>\r\n" +
	"Comments: first\r\n" +
	"Comments: second\r\n" +
	"Keywords: alpha, beta\r\n" +
	"Keywords: gamma\r\n" +
	"Content-type: text/plain; charset=latin1\r\n" +
	"Content-transfer-encoding: 8BIT\r\n"

func parseBasic(t *testing.T) *header.Header {
	t.Helper()
	h, err := header.Parse([]byte(basicHeader), header.CRLF)
	require.NoError(t, err)
	return h
}

func TestHeader_Get(t *testing.T) {
	t.Parallel()

	h := parseBasic(t)

	s, err := h.Get("subject")
	assert.NoError(t, err)
	assert.Equal(t, "Linux dé", s)

	_, err = h.Get("X-Nonesuch")
	assert.ErrorIs(t, err, header.ErrNoSuchField)

	c, err := h.Get("Comments")
	assert.ErrorIs(t, err, header.ErrManyFields)
	assert.Equal(t, "first", c)
}

func TestHeader_GetAll(t *testing.T) {
	t.Parallel()

	h := parseBasic(t)

	cs, err := h.GetAll("Comments")
	assert.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, cs)

	_, err = h.GetAll("X-Nonesuch")
	assert.ErrorIs(t, err, header.ErrNoSuchField)
}

func TestHeader_GetSubjectText(t *testing.T) {
	t.Parallel()

	h := parseBasic(t)

	txt, err := h.GetSubjectText()
	assert.NoError(t, err)
	require.Equal(t, 2, txt.Len())
	assert.Equal(t, text.ASCII, txt.Words()[0].Charset)
	assert.Equal(t, "UTF-8", txt.Words()[1].Charset)
	assert.Equal(t, []byte("dé"), txt.Words()[1].Content)
}

func TestHeader_Addresses(t *testing.T) {
	t.Parallel()

	h := parseBasic(t)

	to, err := h.GetTo()
	assert.NoError(t, err)
	assert.Len(t, to, 2)

	from, err := h.GetFrom()
	assert.NoError(t, err)
	require.Len(t, from, 1)

	_, err = h.GetCc()
	assert.ErrorIs(t, err, header.ErrNoSuchField)

	require.NoError(t, h.SetCc("three@example.com"))
	cc, err := h.GetCc()
	assert.NoError(t, err)
	assert.Len(t, cc, 1)

	assert.ErrorIs(t, h.SetCc(42), header.ErrWrongAddressType)
}

func TestHeader_Date(t *testing.T) {
	t.Parallel()

	h := parseBasic(t)

	d, err := h.GetDate()
	assert.NoError(t, err)
	assert.Equal(t, 2015, d.Year())

	when := time.Date(2022, time.March, 4, 5, 6, 7, 0, time.UTC)
	h.SetDate(when)
	d, err = h.GetDate()
	assert.NoError(t, err)
	assert.Equal(t, when.Unix(), d.Unix())
}

func TestHeader_ContentType(t *testing.T) {
	t.Parallel()

	h := parseBasic(t)

	mt, err := h.GetMediaType()
	assert.NoError(t, err)
	assert.Equal(t, "text/plain", mt)

	cs, err := h.GetCharset()
	assert.NoError(t, err)
	assert.Equal(t, "latin1", cs)

	_, err = h.GetBoundary()
	assert.ErrorIs(t, err, header.ErrNoSuchFieldParameter)

	// changing the media type preserves the parameters
	h.SetMediaType("text/html")
	ct, err := h.GetContentType()
	assert.NoError(t, err)
	assert.Equal(t, "text/html", ct.MediaType())
	assert.Equal(t, "latin1", ct.Charset())
}

func TestHeader_ContentDisposition(t *testing.T) {
	t.Parallel()

	h := &header.Header{}
	h.SetContentDisposition(param.NewWithParams("attachment",
		param.Parameter{Name: param.Filename, Value: text.FromString("report.pdf")}))

	p, err := h.GetPresentation()
	assert.NoError(t, err)
	assert.Equal(t, "attachment", p)

	fn, err := h.GetFilename()
	assert.NoError(t, err)
	assert.Equal(t, "report.pdf", fn)
}

func TestHeader_Keywords(t *testing.T) {
	t.Parallel()

	h := parseBasic(t)

	ks, err := h.GetKeywords()
	assert.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, ks)

	h.SetKeywords("one", "two")
	ks, err = h.GetKeywords()
	assert.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, ks)
}

func TestHeader_MessageIDs(t *testing.T) {
	t.Parallel()

	h := parseBasic(t)

	id, err := h.GetMessageID()
	assert.NoError(t, err)
	assert.Equal(t, "abc123@example.com", id)

	h.SetReferences("abc123@example.com", "def456@example.com")
	refs, err := h.GetReferences()
	assert.NoError(t, err)
	assert.Equal(t, []string{"abc123@example.com", "def456@example.com"}, refs)

	b, err := h.Get(header.References)
	assert.NoError(t, err)
	assert.Equal(t, "<abc123@example.com> <def456@example.com>", b)
}

func TestHeader_TransferEncoding(t *testing.T) {
	t.Parallel()

	h := parseBasic(t)

	cte, err := h.GetTransferEncoding()
	assert.NoError(t, err)
	assert.Equal(t, "8bit", cte)
}

func TestHeader_SetAndRender(t *testing.T) {
	t.Parallel()

	h := &header.Header{}
	h.SetBreak(header.CRLF)
	h.SetSubject("Hello")
	h.Set("Comments", "none")
	h.Set("Comments", "one")

	assert.Equal(t, 2, h.Len())
	assert.Equal(t, "Subject: Hello\r\nComments: one\r\n\r\n", h.String())
}

func TestHeader_Clone(t *testing.T) {
	t.Parallel()

	h := parseBasic(t)
	c := h.Clone()
	c.SetSubject("changed")

	s, err := h.GetSubject()
	assert.NoError(t, err)
	assert.Equal(t, "Linux dé", s)

	s, err = c.GetSubject()
	assert.NoError(t, err)
	assert.Equal(t, "changed", s)
}
