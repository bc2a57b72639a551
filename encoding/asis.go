package encoding

import (
	"io"
)

// asisBufferSize is the working buffer used when copying as-is data.
const asisBufferSize = 16_384

// asisCodec passes bytes through unchanged. It backs the 7bit, 8bit, and
// binary transfer encodings, which describe the data rather than transform
// it.
type asisCodec struct{}

func newAsIsCodec(...Option) Codec {
	return asisCodec{}
}

// Encode copies src to dst unchanged.
func (asisCodec) Encode(dst io.Writer, src io.Reader) (int64, error) {
	return io.CopyBuffer(dst, src, make([]byte, asisBufferSize))
}

// Decode copies src to dst unchanged.
func (asisCodec) Decode(dst io.Writer, src io.Reader) (int64, error) {
	return io.CopyBuffer(dst, src, make([]byte, asisBufferSize))
}

// Properties returns no keys; the as-is encodings have nothing to configure.
func (asisCodec) Properties() []string {
	return nil
}
