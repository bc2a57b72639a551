package encoding

import (
	"encoding/base64"
	"io"
)

const (
	defaultBase64LineLength = 76

	// base64ChunkSize is the working buffer for encoding. It is a multiple
	// of 3 so chunks encode without internal padding.
	base64ChunkSize = 16_384
)

var defaultBase64LineBreak = []byte{'\r', '\n'}

// base64Codec implements the base64 content-transfer-encoding. Encoded
// output is wrapped in lines of at most the configured length. Decoding
// ignores line breaks and any other byte outside the base64 alphabet and
// tolerates missing final padding.
type base64Codec struct {
	lineLength int
}

func newBase64Codec(opts ...Option) Codec {
	c := config{maxLineLength: defaultBase64LineLength}
	for _, opt := range opts {
		opt(&c)
	}
	return &base64Codec{lineLength: c.maxLineLength}
}

// Properties returns the configuration keys base64 recognizes.
func (*base64Codec) Properties() []string {
	return []string{PropMaxLineLength}
}

// lineWriter wraps encoded output in lines of a fixed length.
type lineWriter struct {
	every int
	acc   int
	lbr   []byte
	w     io.Writer
}

func (lw *lineWriter) Write(b []byte) (int, error) {
	written := 0
	for len(b) > 0 {
		room := lw.every - lw.acc
		if room > len(b) {
			room = len(b)
		}

		n, err := lw.w.Write(b[:room])
		written += n
		if err != nil {
			return written, err
		}

		lw.acc += room
		b = b[room:]

		if lw.acc == lw.every {
			if _, err := lw.w.Write(lw.lbr); err != nil {
				return written, err
			}
			lw.acc = 0
		}
	}
	return written, nil
}

// finish terminates a partial final line.
func (lw *lineWriter) finish() error {
	if lw.acc > 0 {
		lw.acc = 0
		_, err := lw.w.Write(lw.lbr)
		return err
	}
	return nil
}

// Encode reads binary data from src and writes line-wrapped base64 to dst.
func (c *base64Codec) Encode(dst io.Writer, src io.Reader) (int64, error) {
	cw := &countingWriter{w: dst}

	var w io.Writer = cw
	var lw *lineWriter
	if c.lineLength > 0 {
		lw = &lineWriter{every: c.lineLength, lbr: defaultBase64LineBreak, w: cw}
		w = lw
	}

	enc := base64.NewEncoder(base64.StdEncoding, w)
	if _, err := io.CopyBuffer(enc, src, make([]byte, base64ChunkSize)); err != nil {
		return cw.n, err
	}
	if err := enc.Close(); err != nil {
		return cw.n, err
	}
	if lw != nil {
		if err := lw.finish(); err != nil {
			return cw.n, err
		}
	}

	return cw.n, nil
}

// base64Index maps base64 alphabet bytes to their 6-bit values, with 0xff for
// everything else (which decoding skips) and 0xfe for the padding character.
var base64Index = func() [256]byte {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	var ix [256]byte
	for i := range ix {
		ix[i] = 0xff
	}
	for i := 0; i < len(alphabet); i++ {
		ix[alphabet[i]] = byte(i)
	}
	ix['='] = 0xfe
	return ix
}()

// Decode reads base64 from src and writes the recovered binary data to dst.
// Bytes outside the base64 alphabet (line breaks, whitespace, transport
// junk) are skipped, and a final quantum short of padding is decoded as far
// as it goes rather than rejected.
func (c *base64Codec) Decode(dst io.Writer, src io.Reader) (int64, error) {
	var (
		written int64
		quantum [4]byte
		nq      int
		in      = make([]byte, base64ChunkSize)
		out     = make([]byte, 0, (base64ChunkSize/4)*3+3)
	)

	flushQuantum := func() {
		// decode a complete or final partial quantum into out
		var b [3]byte
		b[0] = quantum[0]<<2 | quantum[1]>>4
		b[1] = quantum[1]<<4 | quantum[2]>>2
		b[2] = quantum[2]<<6 | quantum[3]
		switch nq {
		case 4:
			out = append(out, b[0], b[1], b[2])
		case 3:
			out = append(out, b[0], b[1])
		case 2:
			out = append(out, b[0])
		}
		quantum = [4]byte{}
		nq = 0
	}

	for {
		n, err := src.Read(in)

		out = out[:0]
		ended := false
		for i := 0; i < n; i++ {
			v := base64Index[in[i]]
			if v == 0xff {
				continue // not base64, skip it
			}
			if v == 0xfe {
				ended = true // padding marks the end of data
				break
			}
			quantum[nq] = v
			nq++
			if nq == 4 {
				flushQuantum()
			}
		}

		atEOF := err == io.EOF
		if ended || atEOF {
			if nq > 1 {
				flushQuantum() // missing padding, decode what we have
			}
			nq = 0
		}

		if len(out) > 0 {
			wn, werr := dst.Write(out)
			written += int64(wn)
			if werr != nil {
				return written, werr
			}
		}

		if ended || atEOF {
			return written, nil
		}
		if err != nil {
			return written, err
		}
	}
}
