// Package gen implements offline generation from a serialized
// FileDescriptorSet, the output of protoc --descriptor_set_out.
package gen

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/ferropb/ferropb"
)

type Cmd struct {
	DescriptorSet string   `arg:"" help:"Serialized FileDescriptorSet, e.g. from protoc --descriptor_set_out." type:"existingfile"`
	Out           string   `help:"Output directory for generated files." short:"o" default:"."`
	Kernel        string   `help:"Native kernel the bindings link against (upb or cpp)." default:"upb"`
	CrateMap      string   `help:"YAML file mapping proto packages to Rust crate paths." name:"crate-map"`
	DefaultCrate  string   `help:"Crate path prefix for the schema's own types." name:"default-crate"`
	Frontmatter   string   `help:"Content inserted at the top of each generated file."`
	ViewOnly      bool     `help:"Generate read-only surfaces without mutators." name:"view-only"`
	Manifest      bool     `help:"Write a .manifest.json next to each schema's outputs."`
	Files         []string `help:"Schema paths to generate (default: every file in the set)." short:"f" name:"file"`
	Verbose       bool     `help:"Enable debug logging." short:"v"`
}

func (c *Cmd) Run() error {
	if c.Verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		ferropb.SetLogger(l)
	}

	data, err := os.ReadFile(c.DescriptorSet)
	if err != nil {
		return fmt.Errorf("failed to read descriptor set: %w", err)
	}

	fds := &descriptorpb.FileDescriptorSet{}
	if err := proto.Unmarshal(data, fds); err != nil {
		return fmt.Errorf("failed to parse descriptor set: %w", err)
	}

	files, err := protodesc.NewFiles(fds)
	if err != nil {
		return fmt.Errorf("failed to resolve descriptor set: %w", err)
	}

	targets := c.Files
	if len(targets) == 0 {
		for _, f := range fds.GetFile() {
			targets = append(targets, f.GetName())
		}
	}

	cfg := &ferropb.Config{
		OutDir:       c.Out,
		Kernel:       c.Kernel,
		CrateMap:     c.CrateMap,
		DefaultCrate: c.DefaultCrate,
		Frontmatter:  c.Frontmatter,
		ViewOnly:     c.ViewOnly,
		Manifest:     c.Manifest,
	}

	ctx := context.Background()
	var written int
	for _, path := range targets {
		fd, err := files.FindFileByPath(path)
		if err != nil {
			return fmt.Errorf("schema %s not in descriptor set: %w", path, err)
		}

		result, err := ferropb.Generate(ctx, fd, cfg)
		if err != nil {
			return fmt.Errorf("failed to generate %s: %w", path, err)
		}

		for _, w := range result.Warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s: %s\n", w.Code, w.Message)
		}
		written += len(result.Files)
	}

	fmt.Fprintf(os.Stderr, "ferropb: wrote %d file(s) to %s\n", written, c.Out)
	return nil
}
