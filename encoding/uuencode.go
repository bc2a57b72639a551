package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

const (
	// uuLineBytes is the number of binary bytes encoded per uuencoded line,
	// the classic maximum.
	uuLineBytes = 45

	defaultUUMode     = 0o644
	defaultUUFilename = "data"
)

// uuCodec implements classic uuencode with begin/end framing. The filename
// and mode recorded on the begin line are configurable; decoding skips the
// framing lines if present and tolerates their absence.
type uuCodec struct {
	filename string
	mode     int
}

func newUUCodec(opts ...Option) Codec {
	c := config{filename: defaultUUFilename, mode: defaultUUMode}
	for _, opt := range opts {
		opt(&c)
	}
	return &uuCodec{filename: c.filename, mode: c.mode}
}

// Properties returns the configuration keys uuencode recognizes.
func (*uuCodec) Properties() []string {
	return []string{PropFilename, PropMode}
}

// uuByte encodes one 6-bit value. Zero is written as a backtick rather than
// a space, the variant most transports preserve intact.
func uuByte(v byte) byte {
	if v == 0 {
		return '`'
	}
	return v + 0x20
}

// uuValue decodes one uuencoded character to its 6-bit value.
func uuValue(c byte) byte {
	return (c - 0x20) & 0x3f
}

// encodeLine appends one uuencoded line for the given binary bytes.
func uuEncodeLine(out []byte, b []byte) []byte {
	out = append(out, uuByte(byte(len(b))))
	for i := 0; i < len(b); i += 3 {
		var g [3]byte
		copy(g[:], b[i:])
		out = append(out,
			uuByte(g[0]>>2),
			uuByte((g[0]<<4|g[1]>>4)&0x3f),
			uuByte((g[1]<<2|g[2]>>6)&0x3f),
			uuByte(g[2]&0x3f),
		)
	}
	return append(out, '\r', '\n')
}

// Encode reads binary data from src and writes uuencoded data, framed by
// begin and end lines, to dst.
func (c *uuCodec) Encode(dst io.Writer, src io.Reader) (int64, error) {
	cw := &countingWriter{w: dst}

	if _, err := fmt.Fprintf(cw, "begin %03o %s\r\n", c.mode, c.filename); err != nil {
		return cw.n, err
	}

	in := make([]byte, uuLineBytes)
	out := make([]byte, 0, uuLineBytes*4/3+8)
	for {
		n, err := io.ReadFull(src, in)
		if n > 0 {
			out = uuEncodeLine(out[:0], in[:n])
			if _, werr := cw.Write(out); werr != nil {
				return cw.n, werr
			}
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return cw.n, err
		}
	}

	if _, err := io.WriteString(cw, "`\r\nend\r\n"); err != nil {
		return cw.n, err
	}

	return cw.n, nil
}

// Decode reads uuencoded data from src and writes the recovered binary data
// to dst. The begin and end framing lines are skipped when present, and a
// missing end line terminates decode at end of input rather than failing.
func (c *uuCodec) Decode(dst io.Writer, src io.Reader) (int64, error) {
	var written int64

	sc := bufio.NewScanner(src)
	out := make([]byte, 0, uuLineBytes)
	for sc.Scan() {
		line := bytes.TrimRight(sc.Bytes(), "\r")
		if len(line) == 0 {
			continue
		}
		if bytes.HasPrefix(line, []byte("begin ")) {
			continue
		}
		if bytes.Equal(line, []byte("end")) {
			break
		}

		length := int(uuValue(line[0]))
		if length == 0 {
			continue // the terminating zero-length line
		}

		out = out[:0]
		data := line[1:]
		for len(out) < length && len(data) >= 4 {
			out = append(out,
				uuValue(data[0])<<2|uuValue(data[1])>>4,
				uuValue(data[1])<<4|uuValue(data[2])>>2,
				uuValue(data[2])<<6|uuValue(data[3]),
			)
			data = data[4:]
		}
		if length > len(out) {
			length = len(out) // truncated line, keep what decoded
		}

		n, err := dst.Write(out[:length])
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	if err := sc.Err(); err != nil {
		return written, err
	}

	return written, nil
}
