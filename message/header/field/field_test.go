package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mime/component"
	"github.com/zostay/go-mime/message/header/field"
)

func TestNew(t *testing.T) {
	t.Parallel()

	f := field.New("Subject", "Hello")
	assert.Equal(t, "Subject", f.Name())
	assert.Equal(t, "Hello", f.Body())
	assert.Equal(t, "Subject: Hello", f.String())
	assert.Nil(t, f.Raw())
	assert.IsType(t, &field.TextValue{}, f.Value())
	assert.Equal(t, component.Unparsed, f.ParsedOffset())
	assert.Nil(t, f.ChildComponents())
}

func TestNew_EncodesUnsafeBody(t *testing.T) {
	t.Parallel()

	f := field.New("Subject", "Hello dé")
	assert.Equal(t, "Subject: Hello d=?UTF-8?B?w6k=?=", f.String())
}

func TestField_Parse(t *testing.T) {
	t.Parallel()

	f := field.Parse(field.Line("Subject: =?UTF-8?B?ZMOp?=\r\n"), []byte("\r\n"), nil)
	require.NotNil(t, f)
	assert.Equal(t, "Subject", f.Name())
	assert.Equal(t, "dé", f.Body())

	// output prefers the original bytes
	assert.Equal(t, "Subject: =?UTF-8?B?ZMOp?=", f.String())
	require.NotNil(t, f.Raw())
	assert.Equal(t, "Subject", f.Raw().Name())
}

func TestField_ParseFolded(t *testing.T) {
	t.Parallel()

	f := field.Parse(field.Line("Subject: foo\r\n bar\r\n"), []byte("\r\n"), nil)
	assert.Equal(t, "foo bar", f.Body())
	assert.Equal(t, "Subject: foo\r\n bar", f.String())
}

func TestField_SetBody(t *testing.T) {
	t.Parallel()

	f := field.Parse(field.Line("Subject: original\r\n"), []byte("\r\n"), nil)
	f.SetParsed(0, 19)
	require.Equal(t, int64(0), f.ParsedOffset())

	f.SetBody("changed")
	assert.Nil(t, f.Raw())
	assert.Equal(t, "Subject: changed", f.String())
	assert.Equal(t, component.Unparsed, f.ParsedOffset())
}

func TestField_SetNameRetypes(t *testing.T) {
	t.Parallel()

	f := field.New("X-When", "Sat, 31 Jan 2015 03:23:09 +0000")
	assert.IsType(t, &field.TextValue{}, f.Value())

	f.SetName("Date")
	require.IsType(t, &field.DateValue{}, f.Value())
	dv := f.Value().(*field.DateValue)
	assert.Equal(t, 2015, dv.Time.Year())
}

func TestField_SetValue(t *testing.T) {
	t.Parallel()

	f := field.New("Content-transfer-encoding", "7bit")
	f.SetValue(&field.TokenValue{Token: "base64"})
	assert.Equal(t, "base64", f.Body())
	assert.Equal(t, "Content-transfer-encoding: base64", f.String())
}

func TestField_SetRaw(t *testing.T) {
	t.Parallel()

	f := field.New("Subject", "whatever")
	f.SetRaw([]byte("Subject:   odd   spacing"))
	assert.Equal(t, "Subject:   odd   spacing", f.String())

	// decoded view is untouched by SetRaw
	assert.Equal(t, "whatever", f.Body())
}
