// Package component defines the structural interface shared by every node of
// a parsed message tree: headers, header fields, messages, and message parts.
// It provides the byte-range bookkeeping that records where in the original
// input a node was parsed from, which is useful for debugging and for partial
// re-serialization.
package component

// Unparsed is the value returned by ParsedOffset() and ParsedLength() for a
// component that was built programmatically or has not yet been successfully
// parsed.
const Unparsed int64 = -1

// Component is a node of the message tree. Every parseable/generatable part
// of a message implements this interface, which allows generic traversal of
// the tree independent of the domain-specific accessors each node provides.
type Component interface {
	// ParsedOffset returns the absolute byte offset into the original input
	// at which this component was parsed, or Unparsed.
	ParsedOffset() int64

	// ParsedLength returns the number of bytes this component consumed when
	// it was parsed, or Unparsed.
	ParsedLength() int64

	// ChildComponents returns the structural children of this node for
	// generic tree traversal. This is independent of domain accessors and may
	// return nil for leaf nodes.
	ChildComponents() []Component
}

// Region implements the parsed byte-range half of Component. Embed it in a
// concrete component and call SetParsed after a successful parse. The zero
// value reports Unparsed for both offset and length.
//
// Offsets are only meaningful with respect to the exact input a component was
// parsed from. Generating a component is unrelated to its parsed offsets.
type Region struct {
	offset int64
	length int64
	parsed bool
}

// ParsedOffset returns the recorded offset or Unparsed.
func (r *Region) ParsedOffset() int64 {
	if !r.parsed {
		return Unparsed
	}
	return r.offset
}

// ParsedLength returns the recorded length or Unparsed.
func (r *Region) ParsedLength() int64 {
	if !r.parsed {
		return Unparsed
	}
	return r.length
}

// SetParsed records the byte range this component was parsed from.
func (r *Region) SetParsed(offset, length int64) {
	r.offset = offset
	r.length = length
	r.parsed = true
}

// ClearParsed resets the component to the unparsed state.
func (r *Region) ClearParsed() {
	r.offset = 0
	r.length = 0
	r.parsed = false
}
