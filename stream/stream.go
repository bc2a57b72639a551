// Package stream supplies the byte-stream plumbing underneath parsing,
// generation, and content extraction. The stream contract itself is the
// standard library's io.Reader and io.Writer; this package adds what the
// standard library leaves to convention:
//
// * ownership adapters that make borrow-versus-adopt explicit at each
// construction site (Close is a no-op on borrowed streams and closes adopted
// ones),
//
// * filter decorators that transform bytes in flight (newline normalization,
// SMTP dot-stuffing, stop sequences), composable by wrapping one stream in
// another, and
//
// * a progress observer that long extract/encode operations report through.
//
// Filter writers buffer a byte or two of carry state between writes. That
// state is only written out by Flush or Close, so a caller that drops a
// filter writer without closing it may lose the tail of the data. This is a
// usage contract, not a bug.
package stream

import (
	"io"
)

// Flusher is implemented by filter writers that hold carry state. Flush
// writes any held bytes to the underlying stream without closing it.
type Flusher interface {
	Flush() error
}

// Reader adapts an external byte source. Whether Close touches the
// underlying source depends on which constructor was used.
type Reader struct {
	r     io.Reader
	c     io.Closer
	owned bool
}

// BorrowReader adapts a reader whose lifetime the caller keeps responsibility
// for. Close on the returned Reader is a no-op.
func BorrowReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// OwnReader adopts a reader. The returned Reader is responsible for releasing
// it: Close closes the underlying stream.
func OwnReader(rc io.ReadCloser) *Reader {
	return &Reader{r: rc, c: rc, owned: true}
}

// Read reads from the underlying source.
func (r *Reader) Read(p []byte) (int, error) {
	return r.r.Read(p)
}

// Owned reports whether this adapter owns the underlying stream.
func (r *Reader) Owned() bool {
	return r.owned
}

// Close closes the underlying source only if it is owned.
func (r *Reader) Close() error {
	if r.owned && r.c != nil {
		return r.c.Close()
	}
	return nil
}

// Writer adapts an external byte sink with the same ownership discipline as
// Reader.
type Writer struct {
	w     io.Writer
	c     io.Closer
	owned bool
}

// BorrowWriter adapts a writer the caller retains responsibility for.
func BorrowWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// OwnWriter adopts a writer; Close will close it.
func OwnWriter(wc io.WriteCloser) *Writer {
	return &Writer{w: wc, c: wc, owned: true}
}

// Write writes to the underlying sink.
func (w *Writer) Write(p []byte) (int, error) {
	return w.w.Write(p)
}

// Owned reports whether this adapter owns the underlying stream.
func (w *Writer) Owned() bool {
	return w.owned
}

// Close closes the underlying sink only if it is owned.
func (w *Writer) Close() error {
	if w.owned && w.c != nil {
		return w.c.Close()
	}
	return nil
}
