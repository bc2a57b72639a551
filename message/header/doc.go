// Package header provides low-level and high-level tooling for dealing with
// document headers. If you need low-level access, you want to deal with
// methods that work with field.Field objects. It is generally expected that
// devs will prefer the high-level methods, which keep reading and
// manipulation of the header safe and strictly correct on output.
//
// Every field carries a structured value typed by its name through a
// field.Registry, so the high-level getters are cheap: they read the value
// parsed when the field was, rather than reparsing the body on each call.
package header
