package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mime/message/header/field"
)

func TestParseLines(t *testing.T) {
	t.Parallel()

	const header = "Subject: foo\r\nReceived: here\r\n by there\r\nTo: x@example.com\r\n"
	lines, err := field.ParseLines([]byte(header), []byte("\r\n"))
	assert.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, field.Line("Subject: foo\r\n"), lines[0])
	assert.Equal(t, field.Line("Received: here\r\n by there\r\n"), lines[1])
	assert.Equal(t, field.Line("To: x@example.com\r\n"), lines[2])
}

func TestParseLines_BadStart(t *testing.T) {
	t.Parallel()

	const header = "this is junk\r\nSubject: ok\r\n"
	lines, err := field.ParseLines([]byte(header), []byte("\r\n"))

	var badStart *field.BadStartError
	require.ErrorAs(t, err, &badStart)
	assert.Equal(t, []byte("this is junk\r\n"), badStart.BadStart)

	require.Len(t, lines, 1)
	assert.Equal(t, field.Line("Subject: ok\r\n"), lines[0])
}

func TestParse_NoColon(t *testing.T) {
	t.Parallel()

	f := field.Parse(field.Line("Junky\r\n"), []byte("\r\n"), nil)
	assert.Equal(t, "Junky", f.Name())
	assert.Equal(t, "", f.Body())
	assert.Equal(t, "Junky", f.String())
}

func TestParse_TypedValues(t *testing.T) {
	t.Parallel()

	f := field.Parse(field.Line("To: One <one@example.com>, two@example.com\r\n"), []byte("\r\n"), nil)
	av, isAddrList := f.Value().(*field.AddressListValue)
	require.True(t, isAddrList)
	assert.Len(t, av.Addresses, 2)

	f = field.Parse(field.Line("Content-type: text/plain; charset=latin1\r\n"), []byte("\r\n"), nil)
	pv, isParams := f.Value().(*field.ParameterizedValue)
	require.True(t, isParams)
	assert.Equal(t, "text/plain", pv.Params.MediaType())
	assert.Equal(t, "latin1", pv.Params.Charset())
}
