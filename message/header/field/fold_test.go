package field_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mime/message/header/field"
)

func TestNewFoldEncoding(t *testing.T) {
	t.Parallel()

	_, err := field.NewFoldEncoding("x", 78, 998)
	assert.ErrorIs(t, err, field.ErrFoldIndentSpace)

	_, err = field.NewFoldEncoding("", 78, 998)
	assert.ErrorIs(t, err, field.ErrFoldIndentTooShort)

	_, err = field.NewFoldEncoding(strings.Repeat(" ", 80), 78, 998)
	assert.ErrorIs(t, err, field.ErrFoldIndentTooLong)

	_, err = field.NewFoldEncoding(" ", 998, 78)
	assert.ErrorIs(t, err, field.ErrFoldLengthTooLong)

	_, err = field.NewFoldEncoding(" ", 2, 2)
	assert.ErrorIs(t, err, field.ErrFoldLengthTooShort)

	_, err = field.NewFoldEncoding(" ", field.DoNotFold, 998)
	assert.ErrorIs(t, err, field.ErrDoNotFold)

	vf, err := field.NewFoldEncoding(" ", 78, 998)
	assert.NoError(t, err)
	assert.NotNil(t, vf)
}

func TestFoldEncoding_Unfold(t *testing.T) {
	t.Parallel()

	uf := field.DefaultFoldEncoding.Unfold([]byte("Subject: one\r\n two"))
	assert.Equal(t, []byte("Subject: one two"), uf)
}

func TestFoldEncoding_Fold(t *testing.T) {
	t.Parallel()

	vf, err := field.NewFoldEncoding(" ", 20, 30)
	require.NoError(t, err)

	buf := &strings.Builder{}
	n, err := vf.Fold(buf, []byte("Subject: one two three four five six"), field.Break("\r\n"))
	assert.NoError(t, err)
	assert.Equal(t, "Subject: one two\r\n three four five\r\n six\r\n", buf.String())
	assert.Equal(t, int64(buf.Len()), n)
}

func TestFoldEncoding_FoldShortLine(t *testing.T) {
	t.Parallel()

	buf := &strings.Builder{}
	_, err := field.DefaultFoldEncoding.Fold(buf, []byte("Subject: short"), field.Break("\r\n"))
	assert.NoError(t, err)
	assert.Equal(t, "Subject: short\r\n", buf.String())
}

func TestFoldEncoding_DoNotFold(t *testing.T) {
	t.Parallel()

	long := "Subject: " + strings.Repeat("word ", 40)
	buf := &strings.Builder{}
	_, err := field.DoNotFoldEncoding.Fold(buf, []byte(long), field.Break("\r\n"))
	assert.NoError(t, err)
	assert.Equal(t, long+"\r\n", buf.String())
}

func TestFoldEncoding_FoldLongFieldName(t *testing.T) {
	t.Parallel()

	// the name alone overruns the preferred fold length; there is nowhere
	// to fold, so the line comes through whole
	name := "X-" + strings.Repeat("Long", 25)
	in := name + ": v"
	buf := &strings.Builder{}
	n, err := field.DefaultFoldEncoding.Fold(buf, []byte(in), field.Break("\r\n"))
	assert.NoError(t, err)
	assert.Equal(t, in+"\r\n", buf.String())
	assert.Equal(t, int64(buf.Len()), n)

	// with spaces in the value, the fold lands after the first one past
	// the mark
	in = name + ": one two"
	buf = &strings.Builder{}
	_, err = field.DefaultFoldEncoding.Fold(buf, []byte(in), field.Break("\r\n"))
	assert.NoError(t, err)
	assert.Equal(t, name+": one\r\n two\r\n", buf.String())
}

func TestFoldEncoding_ForcedFold(t *testing.T) {
	t.Parallel()

	vf, err := field.NewFoldEncoding(" ", 10, 12)
	require.NoError(t, err)

	// no space anywhere, so the line gets broken by force
	buf := &strings.Builder{}
	_, err = vf.Fold(buf, []byte("X:aaaaaaaaaaaaaaaaaaaa"), field.Break("\r\n"))
	assert.NoError(t, err)
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\r\n"), "\r\n") {
		assert.LessOrEqual(t, len(line), 12)
	}
	assert.Equal(t, 20, strings.Count(buf.String(), "a"))
}
