package field

// Raw preserves the original bytes of a header field exactly as parsed,
// folding and all. Objects of this type are immutable. As long as a Field
// keeps its Raw, output of that field is byte-for-byte identical to input.
type Raw struct {
	field []byte // complete original field, unfolded breaks included
	colon int    // the index of the colon
}

// String returns the original field as a string.
func (f *Raw) String() string {
	return string(f.field)
}

// Bytes returns the original field bytes.
func (f *Raw) Bytes() []byte {
	return f.field
}

// Name returns the name part of the original field. The value returned may
// be folded.
func (f *Raw) Name() string {
	return string(f.field[:f.colon])
}

// Body returns the body part of the original field. The value returned may
// be folded and may contain encoded words.
func (f *Raw) Body() string {
	off := 1
	if f.colon == len(f.field) {
		off = 0
	}
	return string(f.field[f.colon+off:])
}
