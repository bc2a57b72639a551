package message

import (
	"io"
	"os"
	"path/filepath"

	"github.com/zostay/go-mime/component"
	"github.com/zostay/go-mime/content"
	"github.com/zostay/go-mime/encoding"
	"github.com/zostay/go-mime/message/header"
)

// Opaque is the base-level message: a header and a body of plain content.
// The body lives in a content.Handler, which may hold it in memory or read
// it from an adopted stream; either way the Opaque owns it and Close
// releases it.
type Opaque struct {
	component.Region

	// Header will contain the header of the message. A top-level message
	// must have several headers to be correct. A message part should have
	// one or more headers as well.
	header.Header

	// Body holds the body content of the message. If the content is zero
	// bytes long, then Body should be set to nil.
	Body content.Handler

	// encoded tracks whether the bytes stored in Body still carry the
	// Content-transfer-encoding or not...
	//
	// - parsing leaves encoding in place by default (unless
	// DecodeTransferEncoding() option is specified)
	//
	// - creating an opaque with a Buffer will leave this false unless the
	// object is constructed using OpaqueAlreadyEncoded
	encoded bool
}

// transferEncoding reads the Content-transfer-encoding for this message,
// treating an absent header as as-is.
func (m *Opaque) transferEncoding() string {
	cte, err := m.GetTransferEncoding()
	if err != nil {
		return encoding.None
	}
	return cte
}

// WriteTo writes the Opaque header and body to the destination io.Writer.
//
// If the bytes held by the Body have had the Content-transfer-encoding
// decoded (e.g., the message was parsed with the DecodeTransferEncoding()
// option or was created via a Buffer), then this will encode the data as it
// is being written.
//
// This can only be safely called once when the Body wraps a one-shot stream,
// as it will consume the stream.
func (m *Opaque) WriteTo(w io.Writer) (int64, error) {
	total, err := m.Header.WriteTo(w)
	if err != nil {
		return total, err
	}

	if m.Body == nil {
		return total, nil
	}

	var bn int64
	if m.encoded {
		bn, err = m.Body.ExtractRaw(w)
	} else {
		bn, err = m.Body.Generate(w, m.transferEncoding())
	}
	total += bn
	return total, err
}

// IsMultipart always returns false.
func (m *Opaque) IsMultipart() bool {
	return false
}

// IsEncoded returns true if the Content-transfer-encoding has not been
// decoded for the bytes stored in the Body. It will return false if that
// decoding has been performed.
//
// Be aware that a false value here does not mean any actual changes to the
// bytes have been made. If the Content-transfer-encoding is set to something
// like "8bit", the transfer encoding keeps the bytes as-is and no
// transformation of the data is performed anyway.
//
// However, if this returns true, then reading the data from GetReader() will
// return exactly the same bytes as would be written via WriteTo().
func (m *Opaque) IsEncoded() bool {
	return m.encoded
}

// GetHeader returns the header for the message.
func (m *Opaque) GetHeader() *header.Header {
	return &m.Header
}

// GetReader returns a reader for the body of the message, or nil when the
// message has no body.
//
// If IsEncoded() returns false, the data returned by reading this io.Reader
// may differ from the data that would be written via WriteTo(). This is
// because the data here will have been decoded, but WriteTo() will encode
// the data anew as it writes.
func (m *Opaque) GetReader() io.Reader {
	if m.Body == nil {
		return nil
	}
	return &bodyReader{body: m.Body}
}

// bodyReader extracts the body through a pipe, started lazily so that
// constructing a reader moves no bytes. A reader that is never read from
// leaves the content untouched, which keeps one-shot stream bodies safe to
// write out afterward.
type bodyReader struct {
	body content.Handler
	pr   *io.PipeReader
}

func (br *bodyReader) Read(p []byte) (int, error) {
	if br.pr == nil {
		pr, pw := io.Pipe()
		go func() {
			_, err := br.body.ExtractRaw(pw)
			pw.CloseWithError(err)
		}()
		br.pr = pr
	}
	return br.pr.Read(p)
}

// GetParts always returns nil.
func (m *Opaque) GetParts() []Part {
	return nil
}

// ChildComponents returns the header as the only child component; the body
// is content, not structure.
func (m *Opaque) ChildComponents() []component.Component {
	return []component.Component{&m.Header}
}

// Close releases the body content, closing any adopted stream behind it.
func (m *Opaque) Close() error {
	if m.Body == nil {
		return nil
	}
	return m.Body.Close()
}

// AttachmentFile is a constructor that will create an Opaque from the given
// filename and MIME type. The file is adopted as a content stream rather
// than read into memory, so large attachments stay cheap; the file is closed
// when the returned message is.
//
// The last argument is the transfer encoding to use. Use encoding.None if
// you do not want to set a transfer encoding; base64 is the usual choice for
// binary files.
func AttachmentFile(fn, mt, te string) (*Opaque, error) {
	m := &Opaque{}
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}

	length := int64(-1)
	if fi, err := f.Stat(); err == nil {
		length = fi.Size()
	}

	// the file holds unencoded bytes; WriteTo applies the transfer encoding
	m.Body = content.NewStream(f, encoding.None, length)
	m.SetMediaType(mt)
	m.SetPresentation("attachment")
	_ = m.SetFilename(filepath.Base(fn))

	if te != encoding.None {
		m.SetTransferEncoding(te)
	}

	return m, nil
}
