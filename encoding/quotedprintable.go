package encoding

import (
	"io"
	"mime/quotedprintable"
)

const qpBufferSize = 16_384

// qpCodec implements the quoted-printable content-transfer-encoding on top
// of mime/quotedprintable. The reader half is already tolerant of truncated
// escape sequences and soft line break damage; bytes are recovered rather
// than dropped.
type qpCodec struct{}

func newQuotedPrintableCodec(...Option) Codec {
	return qpCodec{}
}

// Encode reads binary data from src and writes quoted-printable to dst.
func (qpCodec) Encode(dst io.Writer, src io.Reader) (int64, error) {
	cw := &countingWriter{w: dst}
	qpw := quotedprintable.NewWriter(cw)
	if _, err := io.CopyBuffer(qpw, src, make([]byte, qpBufferSize)); err != nil {
		return cw.n, err
	}
	if err := qpw.Close(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

// Decode reads quoted-printable from src and writes the recovered binary
// data to dst.
func (qpCodec) Decode(dst io.Writer, src io.Reader) (int64, error) {
	return io.CopyBuffer(dst, quotedprintable.NewReader(src), make([]byte, qpBufferSize))
}

// Properties returns no keys; mime/quotedprintable fixes the line length at
// the RFC 2045 maximum of 76.
func (qpCodec) Properties() []string {
	return nil
}
