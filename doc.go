// Package mime provides a complete model for MIME and RFC 5322 documents:
// parsing messages into a structured tree of headers, fields, and parts,
// reading and modifying them through typed accessors, and generating
// strictly correct output.
//
// The code is split according to part of message. A message is either a
// message.Opaque, which treats the body as plain content, or a
// message.Multipart, which breaks a multipart body into sub-parts that are
// each one or the other of these again. The message.Parse() function builds
// whichever the input calls for, and a message.Buffer builds new messages
// from bytes or parts.
//
// Headers are handled by header.Header. Every field of a parsed header keeps
// its raw bytes alongside a structured value typed by field name through a
// registry (addresses, dates, media types, message identifiers), so reading
// is cheap, mutation is precise, and untouched fields round-trip
// byte-for-byte. Low-level access to field.Field objects is available for
// anything the high-level interface doesn't cover.
//
// Body content lives behind content.Handler: in-memory buffers or adopted
// streams with explicit ownership, extracted or re-encoded through the codec
// registry in the encoding package (base64, quoted-printable, uuencode, and
// the as-is encodings).
//
// Two properties drive most of the design. First, parsing is liberal: real
// messages are full of mistakes, and whatever can be made sense of is.
// Second, output is conservative and faithful: a message parsed and written
// back out stays byte-for-byte identical, insofar as it has not been
// deliberately modified, and every parsed component remembers the offset and
// length of the input region it came from.
package mime
