package stream

import (
	"bytes"
	"io"
)

// filterWriter carries the machinery shared by the filter writers: the next
// writer in the chain and an optional closer pass-through.
type filterWriter struct {
	w io.Writer
}

// flushNext flushes the next writer in the chain if it is a Flusher.
func (f *filterWriter) flushNext() error {
	if fl, isFlusher := f.w.(Flusher); isFlusher {
		return fl.Flush()
	}
	return nil
}

// closeNext closes the next writer in the chain if it is a Closer.
func (f *filterWriter) closeNext() error {
	if c, isCloser := f.w.(io.Closer); isCloser {
		return c.Close()
	}
	return nil
}

// LFToCRLFWriter rewrites bare LF line endings as CRLF on the way to the next
// writer. CRLF pairs already present pass through unchanged. It holds no
// carry state beyond the previous byte, so Flush never loses data.
type LFToCRLFWriter struct {
	filterWriter
	prev byte
}

// NewLFToCRLFWriter wraps w in an LF-to-CRLF filter.
func NewLFToCRLFWriter(w io.Writer) *LFToCRLFWriter {
	return &LFToCRLFWriter{filterWriter: filterWriter{w}}
}

// Write rewrites the given bytes into an internal buffer and forwards them.
// It reports len(p) on success, as required of an io.Writer, even though the
// forwarded byte count differs.
func (w *LFToCRLFWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	buf := make([]byte, 0, len(p)+bytes.Count(p, []byte{'\n'}))
	prev := w.prev
	for _, c := range p {
		switch c {
		case '\r':
			buf = append(buf, '\r', '\n')
		case '\n':
			if prev != '\r' {
				buf = append(buf, '\r', '\n')
			}
		default:
			buf = append(buf, c)
		}
		prev = c
	}
	w.prev = prev

	if _, err := w.w.Write(buf); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Flush flushes the next writer in the chain.
func (w *LFToCRLFWriter) Flush() error { return w.flushNext() }

// Close flushes and closes the next writer in the chain.
func (w *LFToCRLFWriter) Close() error { return w.closeNext() }

// CRLFToLFWriter rewrites CRLF pairs as bare LF on the way to the next
// writer. A trailing CR at the end of a Write is held back until the next
// Write shows whether an LF follows; Flush or Close writes it out.
type CRLFToLFWriter struct {
	filterWriter
	heldCR bool
}

// NewCRLFToLFWriter wraps w in a CRLF-to-LF filter.
func NewCRLFToLFWriter(w io.Writer) *CRLFToLFWriter {
	return &CRLFToLFWriter{filterWriter: filterWriter{w}}
}

// Write rewrites the given bytes and forwards them.
func (w *CRLFToLFWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	buf := make([]byte, 0, len(p)+1)
	if w.heldCR {
		if p[0] != '\n' {
			buf = append(buf, '\r')
		}
		w.heldCR = false
	}

	for i, c := range p {
		if c == '\r' {
			if i == len(p)-1 {
				// can't tell yet whether an LF follows
				w.heldCR = true
				break
			}
			if p[i+1] == '\n' {
				continue // drop the CR, the LF survives below
			}
			buf = append(buf, '\r')
			continue
		}
		buf = append(buf, c)
	}

	if _, err := w.w.Write(buf); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Flush writes out a held CR, if any, and flushes the next writer.
func (w *CRLFToLFWriter) Flush() error {
	if w.heldCR {
		w.heldCR = false
		if _, err := w.w.Write([]byte{'\r'}); err != nil {
			return err
		}
	}
	return w.flushNext()
}

// Close flushes held state and closes the next writer in the chain.
func (w *CRLFToLFWriter) Close() error {
	if err := w.Flush(); err != nil {
		return err
	}
	return w.closeNext()
}

// DotStuffWriter doubles any dot that begins a line ("\n." becomes "\n..",
// and a dot at the very start of the stream is doubled too), as required when
// sending message content over protocols that use a lone dot as terminator.
type DotStuffWriter struct {
	filterWriter
	prev    byte
	started bool
}

// NewDotStuffWriter wraps w in a dot-stuffing filter.
func NewDotStuffWriter(w io.Writer) *DotStuffWriter {
	return &DotStuffWriter{filterWriter: filterWriter{w}}
}

// Write rewrites the given bytes and forwards them.
func (w *DotStuffWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	buf := make([]byte, 0, len(p)+2)
	for _, c := range p {
		atLineStart := !w.started || w.prev == '\n'
		if c == '.' && atLineStart {
			buf = append(buf, '.', '.')
		} else {
			buf = append(buf, c)
		}
		w.prev = c
		w.started = true
	}

	if _, err := w.w.Write(buf); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Flush flushes the next writer in the chain.
func (w *DotStuffWriter) Flush() error { return w.flushNext() }

// Close flushes and closes the next writer in the chain.
func (w *DotStuffWriter) Close() error { return w.closeNext() }

// DotUnstuffReader reverses dot-stuffing on read: a ".." following a line
// break, or at the very start of the stream, is collapsed back to ".".
type DotUnstuffReader struct {
	r     io.Reader
	prev2 byte
	prev1 byte
}

// NewDotUnstuffReader wraps r in a dot-unstuffing filter.
func NewDotUnstuffReader(r io.Reader) *DotUnstuffReader {
	// the stream starts at a line start, same as the stuffing side
	return &DotUnstuffReader{r: r, prev1: '\n'}
}

// Read reads from the underlying stream and collapses stuffed dots in place.
// The returned count may be smaller than the bytes read underneath.
func (r *DotUnstuffReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)

	w := 0
	for i := 0; i < n; i++ {
		c := p[i]
		if c == '.' && r.prev2 == '\n' && r.prev1 == '.' {
			// drop the stuffed dot
			r.prev2 = 0
			r.prev1 = '.'
			continue
		}
		p[w] = c
		w++
		r.prev2 = r.prev1
		r.prev1 = c
	}

	return w, err
}

// StopSequenceReader reads from the underlying stream until the given byte
// sequence is seen, then reports EOF. The stop sequence itself is consumed
// from the underlying stream but not returned. Bytes that merely share a
// prefix with the stop sequence are held back internally until disambiguated,
// so Read may return 0, nil while matching is in progress.
type StopSequenceReader struct {
	r       io.Reader
	seq     []byte
	out     []byte // disambiguated bytes awaiting the caller
	matched int
	done    bool
}

// NewStopSequenceReader wraps r so that reading stops before seq.
func NewStopSequenceReader(r io.Reader, seq []byte) *StopSequenceReader {
	return &StopSequenceReader{r: r, seq: seq}
}

// feed runs the matcher over one input byte, appending released bytes to the
// internal output buffer. It returns true when the full sequence has matched.
func (r *StopSequenceReader) feed(c byte) bool {
	for {
		if c == r.seq[r.matched] {
			r.matched++
			if r.matched == len(r.seq) {
				return true
			}
			return false
		}

		if r.matched == 0 {
			r.out = append(r.out, c)
			return false
		}

		// false start: release the first held byte and rescan the rest of
		// the held prefix plus the current byte
		r.out = append(r.out, r.seq[0])
		held := r.matched - 1
		r.matched = 0
		for i := 0; i < held; i++ {
			if r.feed(r.seq[i+1]) {
				return true
			}
		}
	}
}

// Read implements io.Reader.
func (r *StopSequenceReader) Read(p []byte) (int, error) {
	if len(r.seq) == 0 {
		return r.r.Read(p)
	}

	if len(r.out) == 0 && !r.done {
		chunk := make([]byte, len(p))
		n, err := r.r.Read(chunk)
		for i := 0; i < n; i++ {
			if r.feed(chunk[i]) {
				r.done = true
				break
			}
		}
		if err == io.EOF && !r.done && r.matched > 0 {
			// input ended mid-match; the held bytes belong to the caller
			r.out = append(r.out, r.seq[:r.matched]...)
			r.matched = 0
		}
		if err == io.EOF {
			r.done = true
		} else if err != nil {
			return 0, err
		}
	}

	n := copy(p, r.out)
	r.out = r.out[n:]
	if n == 0 && r.done {
		return 0, io.EOF
	}
	return n, nil
}
