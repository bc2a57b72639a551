package message

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/zostay/go-mime/content"
	"github.com/zostay/go-mime/encoding"
	"github.com/zostay/go-mime/message/header"
	"github.com/zostay/go-mime/message/header/field"
)

// Constants related to Parse() options.
const (
	// DefaultMaxMultipartDepth is the default depth the parser will recurse
	// into a message.
	DefaultMaxMultipartDepth = 10

	// DefaultMaxHeaderLength is the default maximum byte length of a header
	// before parsing gives up on finding the end of it.
	DefaultMaxHeaderLength = bufio.MaxScanTokenSize

	// DefaultMaxPartLength is the default maximum byte length a single
	// message part may reach before parsing gives up on it.
	DefaultMaxPartLength = bufio.MaxScanTokenSize
)

// Errors that occur during parsing.
var (
	// ErrNoBoundary is returned by Parse when the boundary parameter is not
	// set on the Content-type field of the message header.
	ErrNoBoundary = errors.New("the boundary parameter is missing from Content-type")

	// ErrLargeHeader is returned by Parse when the header is longer than the
	// configured WithMaxHeaderLength option (or the default,
	// DefaultMaxHeaderLength).
	ErrLargeHeader = errors.New("the header exceeds the maximum parse length")

	// ErrLargePart is returned by Parse when a part is longer than the
	// configured WithMaxPartLength option (or the default,
	// DefaultMaxPartLength).
	ErrLargePart = errors.New("a message part exceeds the maximum parse length")
)

var splits = [][]byte{
	[]byte("\x0d\x0a\x0d\x0a"), // \r\n\r\n
	[]byte("\x0a\x0d\x0a\x0d"), // \n\r\n\r, extremely unlikely, possibly never
	[]byte("\x0a\x0a"),         // \n\n
	[]byte("\x0d\x0d"),         // \r\r
}

type parser struct {
	maxHeaderLen int
	maxPartLen   int
	maxDepth     int
	decode       bool
	reg          *field.Registry
}

func (pr *parser) clone() *parser {
	p := *pr
	return &p
}

var defaultParser = &parser{
	maxHeaderLen: DefaultMaxHeaderLength,
	maxPartLen:   DefaultMaxPartLength,
	maxDepth:     DefaultMaxMultipartDepth,
	decode:       false,
}

// ParseOption refers to options that may be passed to the Parse function to
// modify how the parser works.
type ParseOption func(pr *parser)

// WithMaxHeaderLength is a ParseOption that sets the maximum length a header
// may have before parsing exits with an ErrLargeHeader error. This setting
// prevents bad input from consuming the process. Setting this to a value
// less than or equal to 0 will result in there being no maximum length. The
// default value is DefaultMaxHeaderLength.
func WithMaxHeaderLength(n int) ParseOption {
	return func(pr *parser) { pr.maxHeaderLen = n }
}

// WithMaxPartLength is a ParseOption that sets the maximum size a single
// part may reach at any level of depth. If a part gets too large, Parse will
// fail with an ErrLargePart error. There is, at this time, no way to disable
// this limit.
func WithMaxPartLength(n int) ParseOption {
	return func(pr *parser) { pr.maxPartLen = n }
}

// DecodeTransferEncoding is a ParseOption that enables the decoding of
// Content-transfer-encoding. By default, Content-transfer-encoding will not
// be decoded, which allows for safer round-tripping of messages. However, if
// you want to display or process the message body, you will want to enable
// this.
func DecodeTransferEncoding() ParseOption {
	return func(pr *parser) { pr.decode = true }
}

// WithFieldRegistry is a ParseOption that selects the field type registry
// used to build structured header field values throughout the parsed
// message.
func WithFieldRegistry(reg *field.Registry) ParseOption {
	return func(pr *parser) { pr.reg = reg }
}

// WithMaxDepth is a ParseOption that controls how deep the parser will go in
// recursively parsing a multipart message. This is set to
// DefaultMaxMultipartDepth by default.
func WithMaxDepth(maxDepth int) ParseOption {
	return func(pr *parser) { pr.maxDepth = maxDepth }
}

// WithoutMultipart is a ParseOption that will not allow parsing of any
// multipart messages. The message returned from Parse() will always be
// *Opaque. You should use this option if all you are interested in is the
// top-level header.
func WithoutMultipart() ParseOption {
	return func(pr *parser) { pr.maxDepth = 0 }
}

// WithoutRecursion is a ParseOption that will only allow a single level of
// multipart parsing.
func WithoutRecursion() ParseOption {
	return func(pr *parser) { pr.maxDepth = 1 }
}

// WithUnlimitedRecursion is a ParseOption that will allow the parser to
// parse sub-parts of any depth.
func WithUnlimitedRecursion() ParseOption {
	return func(pr *parser) { pr.maxDepth = -1 }
}

// searchForSplit looks for a header/body split. Returns -1, nil if none is
// found. If the header/body split is found, it returns the position of the
// first body byte (past the split newlines) and the line break to use with
// the header as a slice of bytes.
func searchForSplit(buf []byte, subpart bool) (pos int, crlf []byte) {
	if subpart {
		// if the header is empty, the first char might be a line break,
		// indicating an empty header, right? It happens.
		for _, s := range splits {
			if testPos := bytes.Index(buf, s[0:len(s)/2]); testPos == 0 {
				pos = testPos + len(s)/2
				crlf = s[0 : len(s)/2]
				return
			}
		}
	}

	// Find the split between header/body
	pos = -1
	for _, s := range splits {
		if testPos := bytes.Index(buf, s); testPos > -1 {
			pos = testPos + len(s)
			crlf = s[0 : len(s)/2]
			return
		}
	}
	return
}

// splitHeadFromBody detects the split between the message header and the
// message body as well as the line break the message is using. It returns
// the header bytes, the line break, and the body bytes.
func (pr *parser) splitHeadFromBody(buf []byte, subpart bool) ([]byte, []byte, []byte, error) {
	pos, crlf := searchForSplit(buf, subpart)
	if pos >= 0 {
		if pr.maxHeaderLen > 0 && pos > pr.maxHeaderLen {
			return nil, nil, nil, ErrLargeHeader
		}
		return buf[:pos], crlf, buf[pos:], nil
	}

	// We were unable to find a header/body split. We will just assume the
	// message is all header, no body.
	if pr.maxHeaderLen > 0 && len(buf) > pr.maxHeaderLen {
		return nil, nil, nil, ErrLargeHeader
	}

	// Let's see if we can find what to use as a break.
	for _, s := range splits {
		crlf := s[0 : len(s)/2]
		if bytes.Contains(buf, crlf) {
			return buf, crlf, nil, nil
		}
	}

	// Or the ultimate fallback is...
	return buf, []byte("\x0d"), nil, nil
}

// parseToOpaque turns a buffer into an *Opaque, recording where in the
// original input the message and its header sit.
func (pr *parser) parseToOpaque(buf []byte, off int64, subpart bool) (*Opaque, error) {
	hdr, crlf, body, err := pr.splitHeadFromBody(buf, subpart)
	if err != nil {
		return nil, err
	}

	head, err := header.Parse(hdr, header.Break(crlf),
		header.WithOffset(off), header.WithRegistry(pr.reg))
	var badStart *field.BadStartError // recoverable
	if err != nil && !errors.As(err, &badStart) {
		return nil, err
	}

	msg := &Opaque{Header: *head, encoded: true}
	msg.SetParsed(off, int64(len(buf)))

	if len(body) > 0 {
		cte, err := msg.GetTransferEncoding()
		if err != nil {
			cte = encoding.None
		}
		msg.Body = content.NewMemory(body, cte)
	}

	if pr.decode {
		pr.decodeBody(msg)
	}

	return msg, nil
}

// decodeBody replaces the message's stored body with its decoded form. A
// body that fails to decode stays encoded; a partial body is worse than an
// encoded one.
func (pr *parser) decodeBody(msg *Opaque) {
	if msg.Body == nil {
		msg.encoded = false
		return
	}

	buf := &bytes.Buffer{}
	if _, err := msg.Body.Extract(buf); err != nil {
		return
	}

	msg.Body = content.NewMemory(buf.Bytes(), encoding.None)
	msg.encoded = false
}

// Parse will consume the given reader entirely and return a Generic message
// containing the parsed content. Parsing proceeds in two or three phases.
//
// During the first phase, the input is searched for a double line break of
// some kind (e.g., "\r\n\r\n" or "\n\n" are the most common). Once found,
// that line break is used to determine what line break the message uses for
// breaking the header into fields, and the bytes preceding it are parsed as
// the header. The bytes after it make up the body content of an *Opaque
// message. A header longer than the WithMaxHeaderLength() option (or the
// default, DefaultMaxHeaderLength) fails the parse with ErrLargeHeader.
//
// If the first phase completes successfully, the second phase will begin.
// During the second phase, the *Opaque message created during the first
// phase may be transformed into a *Multipart, if the message seems to be a
// multipart message. If the Content-type of the message is a multipart/*
// MIME type and the WithMaxDepth() option (or the default,
// DefaultMaxMultipartDepth) permits it, the body will be broken into parts
// according to the boundary parameter set on the Content-type. The parts
// must be smaller than the setting in the WithMaxPartLength() option (or the
// default, DefaultMaxPartLength) or the parse fails with ErrLargePart.
//
// These newly broken up parts each go through the same process themselves.
// This continues until either the deepest multipart sub-part is parsed or
// the maximum depth is reached. Every message, header, and field produced
// remembers the offset and length of the input region it was parsed from,
// reachable through the component methods.
//
// If the DecodeTransferEncoding() option is passed, a third phase of parsing
// is also performed: the parts of the message that do not have sub-parts and
// have a Content-transfer-encoding header set will be decoded.
//
// This third phase is not the default behavior because one of the goals of
// this library is to preserve the original bytes as-is. Decoding the
// transfer encoding and then re-encoding it again is very likely to modify
// the original message. The modification will be trivial, but it won't
// preserve the original message for round-trip output with minimal changes.
//
// Errors at any point in the process may lead to a completely failed parse,
// especially those involving ErrLargeHeader or ErrLargePart. However,
// whenever possible, the partially parsed message object will be returned.
func Parse(r io.Reader, opts ...ParseOption) (Generic, error) {
	pr := defaultParser.clone()
	for _, opt := range opts {
		opt(pr)
	}

	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return pr.parseBuffer(buf, 0, false, 0)
}

// ParseBytes is Parse for input already held in memory. The returned message
// may alias the given slice; the caller must not modify it afterward.
func ParseBytes(buf []byte, opts ...ParseOption) (Generic, error) {
	pr := defaultParser.clone()
	for _, opt := range opts {
		opt(pr)
	}

	return pr.parseBuffer(buf, 0, false, 0)
}

// parseBuffer parses one message (or sub-part) found at the given absolute
// offset of the original input.
func (pr *parser) parseBuffer(buf []byte, off int64, subpart bool, depth int) (Generic, error) {
	msg, err := pr.parseToOpaque(buf, off, subpart)
	if err != nil {
		return nil, err
	}

	bodyStart := int(msg.Header.ParsedLength())
	return pr.parse(msg, buf[bodyStart:], off+int64(bodyStart), depth)
}

// boundaries holds the split of a multipart body into its round-trip
// pieces: the prefix before the first boundary, the parts between
// boundaries, and the suffix after the final boundary. Positions are
// relative to the body buffer.
type boundaries struct {
	prefix, suffix []byte
	parts          [][]byte
	partPos        []int
}

// splitParts breaks a multipart body apart on the given boundary. The
// newline before the start boundary (if any) belongs to the prefix. The
// newline after the final boundary (if any) belongs to the suffix. The
// newlines before and after the middle boundaries belong to the boundary
// and are not included with the parts (because they have to be there or
// message parsing does not work).
func splitParts(body []byte, boundary string, br []byte) *boundaries {
	sb := []byte(fmt.Sprintf("--%s%s", boundary, br))
	mb := []byte(fmt.Sprintf("%s--%s%s", br, boundary, br))
	eb := []byte(fmt.Sprintf("%s--%s--%s", br, boundary, br))
	fb := []byte(fmt.Sprintf("%s--%s--", br, boundary))

	bs := &boundaries{}
	rest := body
	pos := 0

	// locate the first boundary, which gives us the prefix
	switch {
	case bytes.HasPrefix(rest, sb):
		bs.prefix = []byte{}
		rest = rest[len(sb):]
		pos += len(sb)
	default:
		if ix := bytes.Index(rest, mb); ix >= 0 {
			bs.prefix = rest[:ix+len(br)]
			rest = rest[ix+len(mb):]
			pos += ix + len(mb)
		} else {
			// no initial boundary at all; badly formatted, record that by
			// leaving the prefix nil and treat everything up to the final
			// boundary as a single part
			bs.prefix = nil
		}
	}

	// middle boundaries separate the parts
	for {
		ix := bytes.Index(rest, mb)
		if ix < 0 {
			break
		}
		bs.parts = append(bs.parts, rest[:ix])
		bs.partPos = append(bs.partPos, pos)
		rest = rest[ix+len(mb):]
		pos += ix + len(mb)
	}

	// the final boundary gives us the suffix
	if ix := bytes.Index(rest, eb); ix >= 0 {
		bs.parts = append(bs.parts, rest[:ix])
		bs.partPos = append(bs.partPos, pos)
		// everything after the final boundary, line ending included, is the
		// suffix; fb rather than eb is deliberate
		bs.suffix = rest[ix+len(fb):]
	} else if ix := bytes.Index(rest, fb); ix >= 0 && ix == len(rest)-len(fb) {
		// final boundary at the actual end of input with no line break
		bs.parts = append(bs.parts, rest[:ix])
		bs.partPos = append(bs.partPos, pos)
		bs.suffix = []byte{}
	} else {
		// no final boundary, so the rest is the final part and there is no
		// suffix (when round-tripping, the final boundary will be omitted)
		bs.parts = append(bs.parts, rest)
		bs.partPos = append(bs.partPos, pos)
		bs.suffix = nil
	}

	return bs
}

// parse transforms an *Opaque into a *Multipart when the header says it has
// parts inside. body is the message's raw (still encoded) body bytes and
// bodyOff their absolute position.
func (pr *parser) parse(msg *Opaque, body []byte, bodyOff int64, depth int) (Generic, error) {
	// we're too deep: stop here and just return the original
	if pr.maxDepth >= 0 && depth >= pr.maxDepth {
		return msg, nil
	}

	// lookup the Content-type header
	pv, err := msg.GetParamValue(header.ContentType)
	if err != nil {
		return msg, nil
	}

	// if this is not a multipart, don't parse it
	if pv.Type() != "multipart" && pv.Type() != "message" {
		return msg, nil
	}

	// if the boundary is missing, don't parse it and return an error
	if pv.Boundary() == "" {
		return msg, ErrNoBoundary
	}

	bs := splitParts(body, pv.Boundary(), msg.Break().Bytes())

	msgParts := make([]Part, 0, len(bs.parts))
	for i, part := range bs.parts {
		if pr.maxPartLen > 0 && len(part) > pr.maxPartLen {
			return nil, ErrLargePart
		}

		partOff := bodyOff + int64(bs.partPos[i])
		pmsg, err := pr.parseBuffer(part, partOff, true, depth+1)
		if err != nil {
			// a part we cannot parse means we keep the original as-is
			return msg, err
		}

		msgParts = append(msgParts, pmsg)
	}

	mm := &Multipart{
		Header: msg.Header,
		prefix: bs.prefix,
		suffix: bs.suffix,
		parts:  msgParts,
	}
	mm.SetParsed(msg.ParsedOffset(), msg.ParsedLength())
	return mm, nil
}
