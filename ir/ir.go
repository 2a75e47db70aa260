// Package ir defines the intermediate representation for oneof binding
// generation. Providers build these descriptors from a resolved protobuf
// schema; the rust package transforms them into target-language source.
// Descriptors are immutable facts: once built they are never mutated by
// the generator.
package ir

// File holds the oneof groups of one schema file in declaration order.
type File struct {
	// Path is the schema file path as declared in the descriptor
	// (e.g. "acme/contact.proto").
	Path string

	// Package is the schema package (e.g. "acme.api.v1").
	// Empty for files without a package declaration.
	Package string

	// Messages lists every message that contains at least one oneof
	// group, plus any enclosing message of one, in declaration order.
	// Nested messages appear after their parent, also in declaration
	// order.
	Messages []Message

	// Warnings contains non-fatal issues recorded while building the
	// descriptors (e.g. fields excluded from binding generation).
	Warnings []Warning
}

// AddWarning appends a warning to the file.
func (f *File) AddWarning(w Warning) {
	f.Warnings = append(f.Warnings, w)
}

// Message identifies a containing aggregate and carries its oneof groups.
type Message struct {
	// Name is the simple message name (e.g. "Contact").
	Name string

	// FullName is the dot-separated proto full name, including the
	// package and any enclosing messages (e.g. "acme.api.v1.Contact").
	FullName string

	// Package is the enclosing file's package. FullName minus the
	// package prefix is the nesting chain, which native-language name
	// mangling needs.
	Package string

	// Groups lists the message's oneof groups in declaration order.
	// Synthetic oneofs (proto3 optional presence) are never included.
	Groups []OneofGroup
}

// Warning represents a non-fatal issue encountered during generation.
// Binding gaps (legacy-encoded fields) are warnings, never errors.
type Warning struct {
	// Code is a machine-readable warning identifier.
	Code string

	// Message is a human-readable description.
	Message string

	// Symbol is the schema symbol that triggered the warning, as a
	// dot-separated path (e.g. "acme.Contact.payload.blob").
	Symbol string
}
