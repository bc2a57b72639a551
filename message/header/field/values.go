package field

import (
	"strings"
	"time"

	"github.com/zostay/go-addr/pkg/addr"

	"github.com/zostay/go-mime/message/header/param"
	"github.com/zostay/go-mime/message/header/text"
)

// Value is the structured form of a header field body. Which Value type a
// given field name gets is decided by the Registry the field was built
// through. Custom field types implement this interface and register a
// constructor for their name.
//
// ParseValue initializes the value from the unfolded field body as it
// appears on the wire (encoded words and all). String renders the value back
// to a wire-safe body.
type Value interface {
	ParseValue(body string) error
	String() string
}

// TextValue is the structured body of unstructured fields such as Subject
// and Comments: the RFC 2047 word model, with each word's original charset
// preserved through a parse/generate round trip.
type TextValue struct {
	Text text.Text
}

// ParseValue decodes encoded words in the body into the word model.
// Ill-formed encoded words survive as literal text, so this cannot fail.
func (v *TextValue) ParseValue(body string) error {
	v.Text = text.Decode([]byte(body))
	return nil
}

// String renders the text with encoded words wherever the content is not
// 7-bit safe.
func (v *TextValue) String() string {
	return text.Encode(v.Text)
}

// AddressListValue is the structured body of address fields such as To, Cc,
// and Bcc.
type AddressListValue struct {
	Addresses addr.AddressList
}

// ParseValue parses the body as an address list. A strict parse is attempted
// first; anything the strict parser rejects goes through the lenient parser,
// which returns something for any input. This never fails, it just gets
// weirder as the input does.
func (v *AddressListValue) ParseValue(body string) error {
	v.Addresses = ParseAddressList(text.Decode([]byte(body)).String())
	return nil
}

// String renders the address list.
func (v *AddressListValue) String() string {
	return v.Addresses.String()
}

// MailboxListValue is the structured body of originator fields such as From
// and Sender, which carry mailboxes rather than general addresses. Parsing
// is shared with AddressListValue; the distinction matters to callers that
// want to reject groups in these fields.
type MailboxListValue struct {
	AddressListValue
}

// DateValue is the structured body of the Date field and friends.
type DateValue struct {
	Time time.Time
}

// ParseValue parses the body as a date, trying RFC 5322 first and falling
// back to the formats ParseTime knows.
func (v *DateValue) ParseValue(body string) error {
	t, err := ParseTime(strings.TrimSpace(body))
	if err != nil {
		return err
	}
	v.Time = t
	return nil
}

// String renders the date in RFC 5322 format.
func (v *DateValue) String() string {
	return v.Time.Format(time.RFC1123Z)
}

// ParameterizedValue is the structured body of Content-type,
// Content-disposition, and any other field made of a primary value followed
// by semicolon-separated parameters.
type ParameterizedValue struct {
	Params *param.Value
}

// ParseValue parses the body as a parameterized value, preserving parameter
// order.
func (v *ParameterizedValue) ParseValue(body string) error {
	pv, err := param.Parse(body)
	if err != nil {
		return err
	}
	v.Params = pv
	return nil
}

// String renders the primary value and parameters in order.
func (v *ParameterizedValue) String() string {
	return v.Params.String()
}

// TokenValue is the structured body of single-token fields such as
// Content-transfer-encoding. The token is held lowercase since these tokens
// compare case-insensitively.
type TokenValue struct {
	Token string
}

// ParseValue trims and lowercases the body.
func (v *TokenValue) ParseValue(body string) error {
	v.Token = strings.ToLower(strings.TrimSpace(body))
	return nil
}

// String renders the token.
func (v *TokenValue) String() string {
	return v.Token
}

// MessageIDValue is the structured body of Message-id, In-reply-to, and
// References: one or more angle-bracketed identifiers.
type MessageIDValue struct {
	IDs []string
}

// ParseValue collects the angle-bracketed identifiers from the body. Bare
// tokens with no brackets are accepted as identifiers too, since they do
// turn up.
func (v *MessageIDValue) ParseValue(body string) error {
	v.IDs = v.IDs[:0]
	rest := body
	for {
		open := strings.IndexByte(rest, '<')
		if open < 0 {
			break
		}
		clos := strings.IndexByte(rest[open:], '>')
		if clos < 0 {
			break
		}
		v.IDs = append(v.IDs, rest[open+1:open+clos])
		rest = rest[open+clos+1:]
	}

	if len(v.IDs) == 0 {
		for _, tok := range strings.Fields(body) {
			v.IDs = append(v.IDs, strings.Trim(tok, "<>"))
		}
	}

	return nil
}

// String renders the identifiers in angle brackets, space separated.
func (v *MessageIDValue) String() string {
	var out strings.Builder
	for i, id := range v.IDs {
		if i > 0 {
			out.WriteByte(' ')
		}
		out.WriteByte('<')
		out.WriteString(id)
		out.WriteByte('>')
	}
	return out.String()
}
