package changes_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mime/tools/pm/changes"
)

func TestExtractSection(t *testing.T) {
	t.Parallel()

	fn := filepath.Join(t.TempDir(), "Changes.md")
	require.NoError(t, os.WriteFile(fn, []byte(cleanLog), 0o644))

	r, err := changes.ExtractSection(fn, "v1.2.0")
	require.NoError(t, err)

	section, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t,
		" * Added a thing.\n * Fixed another thing\n   with a continuation.\n",
		string(section))

	_, err = changes.ExtractSection(fn, "v9.9.9")
	assert.Error(t, err)

	_, err = changes.ExtractSection(filepath.Join(t.TempDir(), "nope"), "v1.2.0")
	assert.Error(t, err)
}
