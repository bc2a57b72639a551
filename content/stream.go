package content

import (
	"io"

	"github.com/zostay/go-mime/ref"
)

// source is the adopted reader a Stream handler owns, with an optional
// close behavior run when the last handle is released.
type source struct {
	r io.Reader
}

// Stream is a Handler that reads its content from an adopted reader instead
// of holding it in memory, so arbitrarily large bodies never need to be
// buffered.
//
// Ownership is explicit: the handler holds a strong handle on the adopted
// reader and Close releases it, closing the reader (when it is a Closer)
// once the last strong handle is gone. Clone shares the underlying reader
// with a second handle; the reader stays open until both handlers are
// closed.
//
// A Stream over a plain reader is one-shot: after an extraction consumes
// it, further extraction fails with ErrConsumed. When the adopted reader is
// an io.Seeker, the handler instead rewinds to the start before each
// extraction and may be extracted repeatedly.
type Stream struct {
	src      *ref.Strong[source]
	enc      string
	length   int64
	consumed bool
}

// NewStream builds a Stream handler adopting r, whose bytes are stored in
// the named transfer encoding. The handler takes over responsibility for
// closing r. The length is the stored byte count when known, or -1.
func NewStream(r io.Reader, enc string, length int64) *Stream {
	src := ref.NewWithFinalizer(&source{r: r}, func(s *source) {
		if c, isCloser := s.r.(io.Closer); isCloser {
			_ = c.Close()
		}
	})
	return &Stream{src: src, enc: enc, length: length}
}

// Encoding returns the transfer encoding the stored bytes are in.
func (h *Stream) Encoding() string {
	return h.enc
}

// Length returns the stored byte count, or -1 when unknown.
func (h *Stream) Length() int64 {
	return h.length
}

// IsEmpty reports whether the handler is known to be empty. A stream of
// unknown length reports false.
func (h *Stream) IsEmpty() bool {
	return h.length == 0
}

// reader prepares the adopted reader for one extraction.
func (h *Stream) reader() (io.Reader, error) {
	src := h.src.Get()
	if src == nil {
		return nil, ErrClosed
	}

	if s, isSeeker := src.r.(io.Seeker); isSeeker {
		if _, err := s.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		return src.r, nil
	}

	if h.consumed {
		return nil, ErrConsumed
	}
	h.consumed = true
	return src.r, nil
}

// Extract writes the decoded content to w.
func (h *Stream) Extract(w io.Writer, opts ...Option) (int64, error) {
	r, err := h.reader()
	if err != nil {
		return 0, err
	}
	s := newSettings(opts)
	return decodeTo(w, s.monitor(r, h.length), h.enc)
}

// ExtractRaw writes the stored content to w without decoding.
func (h *Stream) ExtractRaw(w io.Writer, opts ...Option) (int64, error) {
	r, err := h.reader()
	if err != nil {
		return 0, err
	}
	s := newSettings(opts)
	return io.Copy(w, s.monitor(r, h.length))
}

// Generate writes the content re-encoded into the named transfer encoding.
// When the target matches the stored encoding the bytes pass through
// untouched.
func (h *Stream) Generate(w io.Writer, enc string, opts ...Option) (int64, error) {
	if sameEncoding(h.enc, enc) {
		return h.ExtractRaw(w, opts...)
	}

	r, err := h.reader()
	if err != nil {
		return 0, err
	}
	s := newSettings(opts)

	pr, pw := io.Pipe()
	go func() {
		_, err := decodeTo(pw, r, h.enc)
		pw.CloseWithError(err)
	}()
	return encodeTo(w, s.monitor(pr, -1), enc, s.encOpts)
}

// Clone returns a second handler sharing the adopted reader. Both handlers
// see the same stream position; the reader closes only when the last of
// them is closed.
func (h *Stream) Clone() *Stream {
	return &Stream{
		src:    h.src.Clone(),
		enc:    h.enc,
		length: h.length,
	}
}

// Weak returns a non-owning handle on the adopted reader. It observes the
// source without keeping it open and reports destruction after all strong
// handles release.
func (h *Stream) Weak() *ref.Weak[source] {
	return h.src.Weak()
}

// Close releases this handler's hold on the adopted reader, closing it if
// this was the last handle.
func (h *Stream) Close() error {
	h.src.Release()
	return nil
}

var (
	_ Handler = &Stream{}
	_ Handler = &Memory{}
)
