package rust

import (
	"context"

	"github.com/ferropb/ferropb/ir"
	"github.com/ferropb/ferropb/sink"
)

// Generator transforms oneof descriptors into target language source.
type Generator interface {
	// Name returns the generator's identifier (e.g., "rust").
	Name() string

	// Generate produces source code for the given file's oneof groups.
	Generate(ctx context.Context, file *ir.File, opts GenerateOptions) (*GenerateResult, error)
}

// GenerateOptions configures generation behavior.
type GenerateOptions struct {
	// Sink receives generated output files.
	Sink sink.OutputSink

	// Config contains generator configuration.
	Config GeneratorConfig
}

// GenerateResult contains generation output metadata.
type GenerateResult struct {
	// Files lists all files that were written.
	Files []OutputFile

	// GroupsGenerated is the count of oneof groups generated.
	GroupsGenerated int

	// Warnings contains non-fatal issues encountered.
	Warnings []ir.Warning
}

// OutputFile describes a generated file.
type OutputFile struct {
	// Path is the relative path of the generated file.
	Path string

	// Size is the number of bytes written.
	Size int64
}

// AccessorContext identifies which generated message surface an accessor
// block is emitted for. Owned and mutable surfaces expose both the read
// and the mutate accessor; the view surface exposes reads only.
type AccessorContext int

const (
	// AccessorOwned emits accessors for the owned message type.
	AccessorOwned AccessorContext = iota

	// AccessorMut emits accessors for the mutable message handle.
	AccessorMut

	// AccessorView emits accessors for the read-only message view.
	AccessorView
)

// GeneratorConfig provides configuration for Rust binding emission.
type GeneratorConfig struct {
	// Kernel selects the native runtime the bindings link against.
	Kernel Kernel

	// Paths resolves message/enum type references. Defaults to a
	// CratePaths scoped to the generated file's package.
	Paths TypePathResolver

	// Names resolves the sibling per-field accessor names the oneof
	// accessors dispatch to. Defaults to DefaultAccessorNames.
	Names AccessorNames

	// ViewOnly suppresses mutator unions and mutate accessors for
	// binding surfaces without mutation support.
	ViewOnly bool

	// Frontmatter is content added to the top of each generated file,
	// after the generated-code marker.
	Frontmatter string
}
