// Package ferropb generates Rust bindings for protocol buffer oneof
// groups. The bindings sit on top of a native kernel (upb or the C++
// runtime) that owns field storage; generated accessors query the
// kernel's case function and dispatch into typed union views.
package ferropb

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/ferropb/ferropb/internal/cratemap"
	"github.com/ferropb/ferropb/ir"
	"github.com/ferropb/ferropb/provider"
	"github.com/ferropb/ferropb/rust"
	"github.com/ferropb/ferropb/sink"
)

var validate = validator.New()

// Config holds the configuration for code generation.
type Config struct {
	// OutDir is the directory where generated files will be written.
	// Required unless Sink is set.
	OutDir string `validate:"required_without=Sink"`

	// Sink overrides OutDir with a custom output destination.
	Sink sink.OutputSink `validate:"-"`

	// Kernel selects the native runtime the bindings dispatch against.
	// Supported values: "upb" (default), "cpp".
	Kernel string `validate:"omitempty,oneof=upb cpp"`

	// CrateMap is the path to a YAML file mapping proto packages to
	// Rust crate paths, for schemas that reference types generated
	// into other crates.
	CrateMap string

	// DefaultCrate is the crate path prefix for types in the generated
	// file's own package. Default: "crate".
	DefaultCrate string

	// Frontmatter is content added to the top of each generated file,
	// after the header comment.
	Frontmatter string

	// ViewOnly suppresses mutator unions and _mut accessors.
	ViewOnly bool

	// Manifest writes a .manifest.json describing each schema file's
	// outputs next to the generated files.
	Manifest bool
}

// Result summarizes a generation run.
type Result struct {
	// Files lists the written output files in generation order.
	Files []rust.OutputFile

	// GroupsGenerated is the number of oneof groups generated.
	GroupsGenerated int

	// Warnings lists non-fatal conditions, e.g. members excluded from
	// the union surfaces.
	Warnings []ir.Warning
}

// Generate generates Rust oneof bindings for a resolved file descriptor.
func Generate(ctx context.Context, fd protoreflect.FileDescriptor, cfg *Config) (*Result, error) {
	p := &provider.DescriptorProvider{}
	file, err := p.BuildFile(ctx, provider.DescriptorInputOptions{File: fd})
	if err != nil {
		return nil, fmt.Errorf("failed to build schema: %w", err)
	}
	return GenerateIR(ctx, file, cfg)
}

// GenerateIR generates Rust oneof bindings for an already extracted
// schema file. Most callers want Generate; this entry point exists for
// tooling that assembles ir.File values directly.
func GenerateIR(ctx context.Context, file *ir.File, cfg *Config) (*Result, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, newConfigError(verrs)
		}
		return nil, err
	}

	cfg = applyConfigDefaults(cfg)

	kernel, err := rust.ParseKernel(cfg.Kernel)
	if err != nil {
		return nil, err
	}

	paths, err := buildPathResolver(file, cfg)
	if err != nil {
		return nil, err
	}

	out := cfg.Sink
	if out == nil {
		out = sink.NewFilesystemSink(cfg.OutDir)
	}

	gen := &rust.RustGenerator{}
	result, err := gen.Generate(ctx, file, rust.GenerateOptions{
		Sink: out,
		Config: rust.GeneratorConfig{
			Kernel:      kernel,
			Paths:       paths,
			ViewOnly:    cfg.ViewOnly,
			Frontmatter: cfg.Frontmatter,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate bindings: %w", err)
	}

	log := Logger()
	log.Debug("generated oneof bindings",
		zap.String("source", file.Path),
		zap.String("kernel", string(kernel)),
		zap.Int("groups", result.GroupsGenerated),
		zap.Int("files", len(result.Files)))
	for _, w := range result.Warnings {
		log.Debug("generation warning",
			zap.String("code", w.Code),
			zap.String("symbol", w.Symbol),
			zap.String("message", w.Message))
	}

	if cfg.Manifest {
		data, err := encodeManifest(buildManifest(file, kernel, result))
		if err != nil {
			return nil, err
		}
		mpath := manifestPath(file.Path)
		if err := out.WriteFile(ctx, mpath, data); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", mpath, err)
		}
	}

	return &Result{
		Files:           result.Files,
		GroupsGenerated: result.GroupsGenerated,
		Warnings:        result.Warnings,
	}, nil
}

// applyConfigDefaults applies default values to Config.
func applyConfigDefaults(cfg *Config) *Config {
	// Make a copy to avoid mutating the input
	result := *cfg

	if result.Kernel == "" {
		result.Kernel = "upb"
	}

	return &result
}

// buildPathResolver assembles the type path resolver from config. An
// explicit DefaultCrate wins over the crate map's; CratePaths itself
// falls back to "crate" when both are empty.
func buildPathResolver(file *ir.File, cfg *Config) (rust.TypePathResolver, error) {
	paths := rust.CratePaths{
		LocalPackage: file.Package,
		DefaultCrate: cfg.DefaultCrate,
	}
	if cfg.CrateMap != "" {
		m, err := cratemap.LoadFile(cfg.CrateMap)
		if err != nil {
			return nil, err
		}
		paths.Crates = m.Packages
		if paths.DefaultCrate == "" {
			paths.DefaultCrate = m.DefaultCrate
		}
	}
	return paths, nil
}
