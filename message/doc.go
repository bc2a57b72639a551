// Package message is the heart of this library. It provides objects for
// flexibly parsing and reading MIME documents (that survive even when the
// input is not strictly correct) and for generating new messages that are
// strictly correct. You can pair the parsing/reading tools with the
// generating tools to perform advanced message transformations.
//
// You can deal with any message as an Opaque message object: a header plus a
// body treated as a blob of content. If you want to work with the individual
// parts of a multipart message, use the Multipart message object instead.
// The Parse() function produces whichever of the two the input calls for:
//
//	msg, err := message.Parse(in)
//	if err != nil {
//	  panic(err)
//	}
//
// New messages are built with a Buffer, which produces an Opaque from bytes
// written to it or a Multipart from parts added to it.
//
// Every parsed message remembers where its pieces came from: the message,
// its header, each header field, and each sub-part report the byte offset
// and length of the input region they were parsed from, and parsing a
// message and writing it back out reproduces the input byte-for-byte.
package message
