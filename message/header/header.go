package header

import (
	"errors"
	"strings"
	"time"

	"github.com/zostay/go-addr/pkg/addr"

	"github.com/zostay/go-mime/message/header/field"
	"github.com/zostay/go-mime/message/header/param"
	"github.com/zostay/go-mime/message/header/text"
)

// Errors returned by various header methods and functions.
var (
	// ErrNoSuchField is returned by Header methods when the operation
	// being performed failed because the header named does not exist.
	ErrNoSuchField = errors.New("no such header field")

	// ErrNoSuchFieldParameter is returned by Header methods when the
	// operation being performed failed because the header exists, but a
	// sub-field of the header does not exist.
	ErrNoSuchFieldParameter = errors.New("no such header field parameter")

	// ErrManyFields is returned by Header methods when the operation
	// being performed failed because there are multiple fields with the
	// given name.
	ErrManyFields = errors.New("many header fields found")

	// ErrWrongAddressType is returned by address setting methods that accept
	// either a string or an addr.AddressList when something other than those
	// types is provided.
	ErrWrongAddressType = errors.New("incorrect address type during write")
)

// These are standard headers defined in RFC 5322 and RFC 2045.
const (
	Bcc                     = "Bcc"
	Cc                      = "Cc"
	Comments                = "Comments"
	ContentDisposition      = "Content-disposition"
	ContentID               = "Content-id"
	ContentTransferEncoding = "Content-transfer-encoding"
	ContentType             = "Content-type"
	Date                    = "Date"
	From                    = "From"
	InReplyTo               = "In-reply-to"
	Keywords                = "Keywords"
	MessageID               = "Message-id"
	MIMEVersion             = "MIME-Version"
	References              = "References"
	ReplyTo                 = "Reply-to"
	Sender                  = "Sender"
	Subject                 = "Subject"
	To                      = "To"
)

// Header wraps a Base, which does the actual storage and low-level field
// manipulation. This provides several methods to make reading and
// manipulating the header more convenient.
//
// There is no separate value cache here: every field holds the structured
// value built for it when it was parsed or set, so the typed getters read
// that value directly. A field modified through the low-level interface
// reparses its value at that moment, which keeps the two views consistent.
//
// The getter methods of this object will return an error if the field being
// fetched has not been set on the header. The error returned will be
// ErrNoSuchField.
type Header struct {
	// Base provides the low-level storage of header fields.
	Base
}

// Clone returns a deep copy of the header object.
func (h *Header) Clone() *Header {
	return &Header{Base: *h.Base.Clone()}
}

// getField retrieves the first field with the given name. It returns nil
// with ErrNoSuchField when the field is absent, and the first field with
// ErrManyFields when the name occurs more than once.
func (h *Header) getField(name string) (*field.Field, error) {
	ixs := h.GetIndexesNamed(name)
	if len(ixs) == 0 {
		return nil, ErrNoSuchField
	}

	f := h.GetField(ixs[0])
	if len(ixs) > 1 {
		return f, ErrManyFields
	}

	return f, nil
}

// Get retrieves the string value of the named field.
//
// If the named field is not set in the header, it will return an empty
// string with ErrNoSuchField. If there are multiple headers for the given
// named field, it will return the first value found and return
// ErrManyFields.
func (h *Header) Get(name string) (string, error) {
	f, err := h.getField(name)
	if f == nil {
		return "", err
	}
	return f.Body(), err
}

// GetAll fetches all the header field bodies for fields with the given name
// and returns them as a slice of strings.
//
// It returns nil with ErrNoSuchField if no field with the given name is set
// on the header.
func (h *Header) GetAll(name string) ([]string, error) {
	fs := h.GetAllFieldsNamed(name)
	if len(fs) == 0 {
		return nil, ErrNoSuchField
	}

	bs := make([]string, len(fs))
	for i, f := range fs {
		bs[i] = f.Body()
	}

	return bs, nil
}

// GetTime parses the named field as a date and returns it.
//
// It will return the zero value and ErrNoSuchField if the header does not
// exist, the zero value and ErrManyFields if the field is set more than
// once, and a parse error if the body cannot be understood as a date.
func (h *Header) GetTime(name string) (time.Time, error) {
	f, err := h.getField(name)
	if err != nil {
		return time.Time{}, err
	}

	if dv, isDate := f.Value().(*field.DateValue); isDate {
		return dv.Time, nil
	}

	return field.ParseTime(f.Body())
}

// GetAddressList will return an addr.AddressList for the named field. This
// method works hard to avoid parse errors and tries to accept anything. As
// such a badly formatted address field might return a weird address value.
//
// It will return nil and ErrNoSuchField if the field is not set on the
// header. It will return ErrManyFields if the field is set more than once on
// the header.
func (h *Header) GetAddressList(name string) (addr.AddressList, error) {
	f, err := h.getField(name)
	if err != nil {
		return nil, err
	}

	return fieldAddresses(f), nil
}

// fieldAddresses pulls the address list out of a field's structured value,
// falling back to a lenient parse for fields that are not address-typed.
func fieldAddresses(f *field.Field) addr.AddressList {
	switch v := f.Value().(type) {
	case *field.MailboxListValue:
		return v.Addresses
	case *field.AddressListValue:
		return v.Addresses
	}
	return field.ParseAddressList(f.Body())
}

// GetAllAddressLists will return a slice of addr.AddressList for all fields
// with the given name. The same best-effort parsing as GetAddressList
// applies.
//
// It will return nil and ErrNoSuchField if no field with the name is set.
func (h *Header) GetAllAddressLists(name string) ([]addr.AddressList, error) {
	fs := h.GetAllFieldsNamed(name)
	if len(fs) == 0 {
		return nil, ErrNoSuchField
	}

	als := make([]addr.AddressList, len(fs))
	for i, f := range fs {
		als[i] = fieldAddresses(f)
	}

	return als, nil
}

// GetParamValue returns the named field as a parameterized value.
//
// It returns nil and ErrNoSuchField if the field is not set on the header.
// It returns nil and ErrManyFields if the field is set more than once. It
// will return nil and an error if there is a problem parsing the
// param.Value.
func (h *Header) GetParamValue(name string) (*param.Value, error) {
	f, err := h.getField(name)
	if err != nil {
		return nil, err
	}

	if pv, isParams := f.Value().(*field.ParameterizedValue); isParams {
		return pv.Params, nil
	}

	return param.Parse(f.Body())
}

// GetText returns the named field in the RFC 2047 word model, preserving
// the character set of each word as parsed.
//
// It returns the zero Text and ErrNoSuchField if the field is not set on the
// header and the first value with ErrManyFields if it is set more than once.
func (h *Header) GetText(name string) (text.Text, error) {
	f, err := h.getField(name)
	if f == nil {
		return text.Text{}, err
	}

	if tv, isText := f.Value().(*field.TextValue); isText {
		return tv.Text, err
	}

	return text.FromString(f.Body()), err
}

// GetMessageIDList returns the message identifiers in the named field,
// stripped of their angle brackets.
//
// It returns nil and ErrNoSuchField if the field is not set on the header
// and ErrManyFields if it is set more than once.
func (h *Header) GetMessageIDList(name string) ([]string, error) {
	f, err := h.getField(name)
	if err != nil {
		return nil, err
	}

	if mv, isIDs := f.Value().(*field.MessageIDValue); isIDs {
		return mv.IDs, nil
	}

	mv := &field.MessageIDValue{}
	_ = mv.ParseValue(f.Body())
	return mv.IDs, nil
}

// GetKeywordsList returns all the comma-separated entries of all fields with
// the given name as a single flat list of strings.
//
// This method will return nil with ErrNoSuchField if no field with the given
// name exists.
func (h *Header) GetKeywordsList(name string) ([]string, error) {
	bs, err := h.GetAll(name)
	if err != nil {
		return nil, err
	}

	var ks []string
	for _, b := range bs {
		for _, k := range strings.Split(b, ",") {
			k = strings.TrimSpace(k)
			if k != "" {
				ks = append(ks, k)
			}
		}
	}

	return ks, nil
}

// SetAll replaces all the header fields with the given name with the bodies
// given. After a successful completion of this method, the field with the
// given name will occur exactly len(bodies) times in the header. If the
// field is already present in the header, existing fields will have their
// bodies replaced with the new values. Any new fields will be appended to
// the end of the header.
func (h *Header) SetAll(name string, bodies ...string) {
	ixs := h.GetIndexesNamed(name)

	for i, b := range bodies {
		if i < len(ixs) {
			// Replace existing fields
			f := h.GetField(ixs[i])
			f.SetBody(b)
			continue
		}

		// Append more fields
		h.InsertBeforeField(h.Len(), name, b)
	}

	if len(ixs) > len(bodies) {
		// Delete extra fields
		for i := len(ixs) - 1; i >= len(bodies); i-- {
			_ = h.DeleteField(ixs[i])
		}
	}
}

// SetKeywordsList will replace all fields with the given name currently set
// in the header with one field with all the given entries separated by a
// comma.
func (h *Header) SetKeywordsList(name string, keywords ...string) {
	bodyStr := strings.Join(keywords, ", ")
	h.Set(name, bodyStr)
}

// Set will replace all existing header fields with the given name with a
// single header field with the given name and body. If the field already
// exists on the header, then the first occurrence will be replaced with this
// value and any other values will be deleted. If the field does not exist,
// it will be appended to the end of the header.
//
// The procedure for replacing above is used for all the Set* methods that
// replace all fields with a single field.
func (h *Header) Set(name, body string) {
	// Check for existing fields
	ixs := h.GetIndexesNamed(name)

	// if none, insert the new field and we're done
	if len(ixs) == 0 {
		h.InsertBeforeField(h.Len(), name, body)
		return
	}

	// if more than one, we're setting so delete any but the first
	if len(ixs) > 1 {
		for i := len(ixs) - 1; i > 0; i-- {
			// ignore out of range errors, we don't make that mistake here
			_ = h.DeleteField(ixs[i])
		}
	}

	// get the field we want to modify or replace
	f := h.GetField(ixs[0])
	f.SetName(name)
	f.SetBody(body)
}

// SetTime will replace all existing header fields with the given name with a
// single header field with the given name and time. The time will be
// formatted via time.RFC1123Z.
func (h *Header) SetTime(name string, body time.Time) {
	bodyStr := body.Format(time.RFC1123Z)
	h.Set(name, bodyStr)
}

// SetAddressList will replace all existing header fields with the given name
// with a single header containing the given addr.AddressList.
func (h *Header) SetAddressList(name string, body ...addr.Address) {
	bodyStr := addr.AddressList(body).String()
	h.Set(name, bodyStr)
}

// SetAllAddressLists will replace all existing header fields with a new set
// of header fields from the given slice of addr.AddressList.
func (h *Header) SetAllAddressLists(name string, bodies ...addr.AddressList) {
	strs := make([]string, len(bodies))
	for i, body := range bodies {
		strs[i] = body.String()
	}
	h.SetAll(name, strs...)
}

// SetParamValue will replace all existing header fields with the given name
// with a single field containing the given param.Value.
func (h *Header) SetParamValue(name string, body *param.Value) {
	bodyStr := body.String()
	h.Set(name, bodyStr)
}

// getParamValueValue reads the primary value of the param.Value header or
// returns an error.
func (h *Header) getParamValueValue(name string) (string, error) {
	pv, err := h.GetParamValue(name)
	if err != nil {
		return "", err
	}

	return pv.Value(), nil
}

// setParamValueValue sets the primary value of the param.Value header.
func (h *Header) setParamValueValue(name, v string) {
	// Before we start, let's make sure we cannot get an ErrManyFields first...
	ixs := h.GetIndexesNamed(name)
	for i := len(ixs) - 1; i > 0; i-- {
		_ = h.DeleteField(ixs[i])
	}

	// Then, pull the param.Value
	pv, err := h.GetParamValue(name)
	if err != nil {
		// we got an error, just overwrite the whole header
		pv = param.New(v)
	} else {
		// preserve everything else and update
		pv = param.Modify(pv, param.Change(v))
	}

	// and replace
	h.SetParamValue(name, pv)
}

// getParamValueParam gets a parameter value of the param.Value header or
// returns an error.
func (h *Header) getParamValueParam(name, p string) (string, error) {
	pv, err := h.GetParamValue(name)
	if err != nil {
		return "", err
	}

	if v := pv.Parameter(p); v != "" {
		return v, nil
	}

	return "", ErrNoSuchFieldParameter
}

// setParamValueParam sets a parameter value of the param.Value header or
// returns an error. The header must already exist before calling this
// method.
func (h *Header) setParamValueParam(name, p, v string) error {
	pv, err := h.GetParamValue(name)
	if err != nil {
		return err
	}

	newPv := param.Modify(pv, param.Set(p, v))
	h.SetParamValue(name, newPv)

	return nil
}

// GetContentType returns the Content-type header as a param.Value.
//
// It returns nil and ErrNoSuchField if the field is not set on the header.
// It returns nil and ErrManyFields if the field is set more than once on the
// header. It will return nil and an error if there is a problem parsing the
// param.Value.
func (h *Header) GetContentType() (*param.Value, error) {
	return h.GetParamValue(ContentType)
}

// SetContentType replaces the Content-type with the given param.Value.
func (h *Header) SetContentType(v *param.Value) {
	h.SetParamValue(ContentType, v)
}

// GetMediaType returns the MIME type set in the Content-type header (other
// parameters will not be returned).
//
// It returns an empty string and ErrNoSuchField if the field is not set on
// the header and an empty string and ErrManyFields if the field is set more
// than once.
func (h *Header) GetMediaType() (string, error) {
	return h.getParamValueValue(ContentType)
}

// SetMediaType replaces the MIME type on the Content-type header, creating
// it if it has not been set yet. If the Content-type header already exists,
// any other parameters already set will be preserved. If this header is set
// multiple times (in violation of RFC 5322), it will remove all but the
// first instance and replace the media type of the first instance.
func (h *Header) SetMediaType(mt string) {
	h.setParamValueValue(ContentType, mt)
}

// GetCharset gets the charset from the Content-type header field.
//
// This method returns an empty string with ErrNoSuchField if no field is
// present in the header, an empty string with ErrNoSuchFieldParameter if the
// field is present but the parameter is not set on the field, and an empty
// string with ErrManyFields if the field is set more than once.
func (h *Header) GetCharset() (string, error) {
	return h.getParamValueParam(ContentType, param.Charset)
}

// SetCharset sets the charset on the Content-type header.
//
// This method fails with ErrNoSuchField if the field is not set on the
// header.
func (h *Header) SetCharset(c string) error {
	return h.setParamValueParam(ContentType, param.Charset, c)
}

// GetBoundary gets the boundary from the Content-type header field.
//
// This method returns an empty string with ErrNoSuchField if no field is
// present in the header, an empty string with ErrNoSuchFieldParameter if the
// field is present but the parameter is not set on the field, and an empty
// string with ErrManyFields if the field is set more than once.
func (h *Header) GetBoundary() (string, error) {
	return h.getParamValueParam(ContentType, param.Boundary)
}

// SetBoundary sets the boundary on the Content-type header.
//
// This method fails with ErrNoSuchField if the field is not set on the
// header.
func (h *Header) SetBoundary(b string) error {
	return h.setParamValueParam(ContentType, param.Boundary, b)
}

// GetContentDisposition returns the Content-disposition header as a
// param.Value.
//
// It returns nil and ErrNoSuchField if the field is not set on the header.
// It returns nil and ErrManyFields if the field is set more than once on the
// header.
func (h *Header) GetContentDisposition() (*param.Value, error) {
	return h.GetParamValue(ContentDisposition)
}

// SetContentDisposition sets the Content-disposition to a new value from a
// param.Value.
func (h *Header) SetContentDisposition(v *param.Value) {
	h.SetParamValue(ContentDisposition, v)
}

// GetPresentation returns the primary value of the Content-disposition
// header, describing what the function of this part of the document is,
// usually either "inline" or "attachment".
//
// It returns an empty string and ErrNoSuchField if the field is not set on
// the header and an empty string and ErrManyFields if the field is set more
// than once.
func (h *Header) GetPresentation() (string, error) {
	return h.getParamValueValue(ContentDisposition)
}

// SetPresentation sets the disposition value of the Content-disposition
// header field. If the Content-disposition header already exists, any other
// parameters already set will be preserved.
func (h *Header) SetPresentation(d string) {
	h.setParamValueValue(ContentDisposition, d)
}

// GetFilename gets the filename parameter of the Content-disposition header.
//
// This method returns an empty string with ErrNoSuchField if no field is
// present in the header, an empty string with ErrNoSuchFieldParameter if the
// field is present but the parameter is not set on the field, and an empty
// string with ErrManyFields if the field is set more than once.
func (h *Header) GetFilename() (string, error) {
	return h.getParamValueParam(ContentDisposition, param.Filename)
}

// SetFilename sets the filename parameter of the Content-disposition header.
//
// This method fails with ErrNoSuchField if the field is not set on the
// header.
func (h *Header) SetFilename(f string) error {
	return h.setParamValueParam(ContentDisposition, param.Filename, f)
}

// GetDate retrieves the Date header as a time.Time value.
//
// It will return an error if it is unable to parse the time value from the
// Date header. It will return the zero value and ErrNoSuchField if the
// header does not exist. It will return the zero value and ErrManyFields if
// more than one Date field is set on the header.
func (h *Header) GetDate() (time.Time, error) {
	return h.GetTime(Date)
}

// SetDate updates the Date header from the given time.Time value.
func (h *Header) SetDate(d time.Time) {
	h.SetTime(Date, d)
}

// GetSubject returns the value of the Subject header field.
//
// If Subject is not set in the header, it will return an empty string with
// ErrNoSuchField. If there are multiple Subject headers, it will return
// ErrManyFields.
func (h *Header) GetSubject() (string, error) {
	return h.Get(Subject)
}

// GetSubjectText returns the Subject header in the RFC 2047 word model,
// preserving the character set of each word as parsed.
func (h *Header) GetSubjectText() (text.Text, error) {
	return h.GetText(Subject)
}

// SetSubject replaces the Subject header field.
func (h *Header) SetSubject(s string) {
	h.Set(Subject, s)
}

// setAddress allows the setting of an address field either from a string or
// from an address list or fails with an error.
func (h *Header) setAddress(n string, as []any) error {
	var al addr.AddressList
	for _, a := range as {
		switch v := a.(type) {
		case string:
			add, err := addr.ParseEmailAddress(v)
			if err != nil {
				return err
			}
			al = append(al, add)
		case addr.Address:
			al = append(al, v)
		default:
			return ErrWrongAddressType
		}
	}
	h.SetAddressList(n, al...)
	return nil
}

// GetTo returns the To address field as an addr.AddressList.
//
// It will return nil and ErrNoSuchField if the field is not set on the
// header. It will return ErrManyFields if the field is set more than once on
// the header.
func (h *Header) GetTo() (addr.AddressList, error) {
	return h.GetAddressList(To)
}

// SetTo sets the To address field with either addr.Address values or
// strings.
//
// It will fail with an error returned if something other than those types is
// provided or if a given string fails to strictly parse.
func (h *Header) SetTo(a ...any) error {
	return h.setAddress(To, a)
}

// GetCc returns the Cc address field as an addr.AddressList.
//
// It will return nil and ErrNoSuchField if the field is not set on the
// header. It will return ErrManyFields if the field is set more than once on
// the header.
func (h *Header) GetCc() (addr.AddressList, error) {
	return h.GetAddressList(Cc)
}

// SetCc sets the Cc address field with either addr.Address values or
// strings.
//
// It will fail with an error returned if something other than those types is
// provided or if a given string fails to strictly parse.
func (h *Header) SetCc(a ...any) error {
	return h.setAddress(Cc, a)
}

// GetBcc returns the Bcc address field as an addr.AddressList.
//
// It will return nil and ErrNoSuchField if the field is not set on the
// header. It will return ErrManyFields if the field is set more than once on
// the header.
func (h *Header) GetBcc() (addr.AddressList, error) {
	return h.GetAddressList(Bcc)
}

// SetBcc sets the Bcc address field with either addr.Address values or
// strings.
//
// It will fail with an error returned if something other than those types is
// provided or if a given string fails to strictly parse.
func (h *Header) SetBcc(a ...any) error {
	return h.setAddress(Bcc, a)
}

// GetFrom returns the From address field as an addr.AddressList.
//
// It will return nil and ErrNoSuchField if the field is not set on the
// header. It will return ErrManyFields if the field is set more than once on
// the header.
func (h *Header) GetFrom() (addr.AddressList, error) {
	return h.GetAddressList(From)
}

// SetFrom sets the From address field with either addr.Address values or
// strings.
//
// It will fail with an error returned if something other than those types is
// provided or if a given string fails to strictly parse.
func (h *Header) SetFrom(a ...any) error {
	return h.setAddress(From, a)
}

// GetReplyTo returns the Reply-to address field as an addr.AddressList.
//
// It will return nil and ErrNoSuchField if the field is not set on the
// header. It will return ErrManyFields if the field is set more than once on
// the header.
func (h *Header) GetReplyTo() (addr.AddressList, error) {
	return h.GetAddressList(ReplyTo)
}

// SetReplyTo sets the Reply-to address field with either addr.Address values
// or strings.
//
// It will fail with an error returned if something other than those types is
// provided or if a given string fails to strictly parse.
func (h *Header) SetReplyTo(a ...any) error {
	return h.setAddress(ReplyTo, a)
}

// GetKeywords returns all the keywords set on all the Keywords fields.
//
// This method will return nil with ErrNoSuchField if the Keywords field does
// not exist.
func (h *Header) GetKeywords() ([]string, error) {
	return h.GetKeywordsList(Keywords)
}

// SetKeywords sets keywords on the Keywords header.
func (h *Header) SetKeywords(ks ...string) {
	h.SetKeywordsList(Keywords, ks...)
}

// GetComments returns the content of the Comments header fields.
func (h *Header) GetComments() ([]string, error) {
	return h.GetAll(Comments)
}

// SetComments replaces all Comments fields with the given bodies.
func (h *Header) SetComments(cs ...string) {
	h.SetAll(Comments, cs...)
}

// GetReferences returns the message IDs in the References header, if any.
//
// If References is not set in the header, it will return nil with
// ErrNoSuchField. If there are multiple References headers, it will return
// ErrManyFields.
func (h *Header) GetReferences() ([]string, error) {
	return h.GetMessageIDList(References)
}

// SetReferences sets the message IDs to store in the References header.
func (h *Header) SetReferences(refs ...string) {
	v := &field.MessageIDValue{IDs: refs}
	h.Set(References, v.String())
}

// GetInReplyTo returns the message IDs in the In-reply-to header, if any.
//
// If In-reply-to is not set in the header, it will return nil with
// ErrNoSuchField. If there are multiple In-reply-to headers, it will return
// ErrManyFields.
func (h *Header) GetInReplyTo() ([]string, error) {
	return h.GetMessageIDList(InReplyTo)
}

// SetInReplyTo sets the message IDs in the In-reply-to header.
func (h *Header) SetInReplyTo(refs ...string) {
	v := &field.MessageIDValue{IDs: refs}
	h.Set(InReplyTo, v.String())
}

// GetMessageID returns the message ID found in the Message-id header, if
// any, stripped of its angle brackets.
//
// If Message-id is not set in the header, it will return an empty string
// with ErrNoSuchField. If there are multiple Message-id headers, it will
// return ErrManyFields.
func (h *Header) GetMessageID() (string, error) {
	ids, err := h.GetMessageIDList(MessageID)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", nil
	}
	return ids[0], nil
}

// SetMessageID sets the Message-id header of the header.
func (h *Header) SetMessageID(ref string) {
	v := &field.MessageIDValue{IDs: []string{strings.Trim(ref, "<>")}}
	h.Set(MessageID, v.String())
}

// GetSender returns the address list in the Sender header, if any.
//
// It will return nil and ErrNoSuchField if the field is not set on the
// header. It will return ErrManyFields if the field is set more than once on
// the header.
func (h *Header) GetSender() (addr.AddressList, error) {
	return h.GetAddressList(Sender)
}

// SetSender sets the Sender address field with either addr.Address values or
// strings.
//
// It will fail with an error returned if something other than those types is
// provided or if a given string fails to strictly parse.
func (h *Header) SetSender(a ...any) error {
	return h.setAddress(Sender, a)
}

// GetTransferEncoding returns the content of the Content-transfer-encoding
// header, normalized to lowercase.
//
// It will return ErrNoSuchField if the header is not set. It will return
// ErrManyFields if the field is set more than once.
func (h *Header) GetTransferEncoding() (string, error) {
	f, err := h.getField(ContentTransferEncoding)
	if err != nil {
		return "", err
	}

	if tv, isToken := f.Value().(*field.TokenValue); isToken {
		return tv.Token, nil
	}

	return strings.ToLower(strings.TrimSpace(f.Body())), nil
}

// SetTransferEncoding replaces the Content-transfer-encoding with the given
// value.
func (h *Header) SetTransferEncoding(b string) {
	h.Set(ContentTransferEncoding, b)
}
