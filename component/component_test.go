package component_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-mime/component"
)

func TestRegion(t *testing.T) {
	t.Parallel()

	var r component.Region
	assert.Equal(t, component.Unparsed, r.ParsedOffset())
	assert.Equal(t, component.Unparsed, r.ParsedLength())

	r.SetParsed(10, 42)
	assert.Equal(t, int64(10), r.ParsedOffset())
	assert.Equal(t, int64(42), r.ParsedLength())

	// zero is a legal recorded range, distinct from unparsed
	r.SetParsed(0, 0)
	assert.Equal(t, int64(0), r.ParsedOffset())
	assert.Equal(t, int64(0), r.ParsedLength())

	r.ClearParsed()
	assert.Equal(t, component.Unparsed, r.ParsedOffset())
	assert.Equal(t, component.Unparsed, r.ParsedLength())
}
