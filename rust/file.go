package rust

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ferropb/ferropb/ir"
)

// RustGenerator assembles the binding source for one schema file.
type RustGenerator struct{}

// Name returns the generator identifier.
func (g *RustGenerator) Name() string {
	return "rust"
}

// Generate emits one .pb.rs binding file for the schema file's oneof
// groups and, under the cpp kernel, one .pb.thunks.cc file with the
// matching kernel-side adapters. Messages are emitted concurrently;
// output order is always declaration order, so a regeneration of an
// unchanged schema produces byte-identical files. Nested messages emit
// inside the enclosing message's companion module.
func (g *RustGenerator) Generate(ctx context.Context, file *ir.File, opts GenerateOptions) (*GenerateResult, error) {
	if opts.Sink == nil {
		return nil, fmt.Errorf("sink is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := opts.Config
	if cfg.Kernel == "" {
		cfg.Kernel = KernelUpb
	}
	if cfg.Paths == nil {
		cfg.Paths = CratePaths{LocalPackage: file.Package}
	}
	emitter := NewEmitter(cfg)

	result := &GenerateResult{}
	result.Warnings = append(result.Warnings, file.Warnings...)

	if len(file.Messages) == 0 {
		return result, nil
	}

	// Each message's section is independent of every other's, so they can
	// be built in parallel. The indexed slice keeps concatenation in
	// declaration order no matter which goroutine finishes first.
	sections := make([]messageSection, len(file.Messages))
	var wg sync.WaitGroup
	for i := range file.Messages {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sections[i] = buildMessageSection(emitter, cfg, file.Messages[i])
		}(i)
	}
	wg.Wait()

	var out bytes.Buffer
	writeFileHeader(&out, file.Path, cfg)

	var externs bytes.Buffer
	var thunks bytes.Buffer
	for i := range sections {
		sec := &sections[i]
		if sec.err != nil {
			return nil, sec.err
		}
		result.Warnings = append(result.Warnings, sec.warnings...)
		result.GroupsGenerated += sec.groups
		externs.Write(sec.externs.Bytes())
		thunks.Write(sec.thunks.Bytes())
	}

	roots, children := messageTree(file.Messages)
	for _, i := range roots {
		writeMessageBinding(&out, file.Messages, sections, children, i)
	}

	if externs.Len() > 0 {
		out.WriteString("unsafe extern \"C\" {\n")
		out.WriteString(indentLines(strings.TrimRight(externs.String(), "\n")))
		out.WriteString("\n}\n")
	}

	rsPath := cfg.Kernel.RustFilePath(file.Path)
	if err := opts.Sink.WriteFile(ctx, rsPath, out.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", rsPath, err)
	}
	result.Files = append(result.Files, OutputFile{Path: rsPath, Size: int64(out.Len())})

	if cfg.Kernel.NeedsThunks() && thunks.Len() > 0 {
		cc := assembleThunkFile(file.Path, thunks.String())
		ccPath := cfg.Kernel.ThunkFilePath(file.Path)
		if err := opts.Sink.WriteFile(ctx, ccPath, cc); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", ccPath, err)
		}
		result.Files = append(result.Files, OutputFile{Path: ccPath, Size: int64(len(cc))})
	}

	return result, nil
}

// messageSection holds one message's finished output fragments.
type messageSection struct {
	defs     bytes.Buffer // enum definitions, relative to the companion module
	impls    bytes.Buffer // accessor impl blocks for the message surfaces
	externs  bytes.Buffer // extern "C" declaration lines
	thunks   bytes.Buffer // C++ thunk bodies, cpp kernel only
	groups   int
	warnings []ir.Warning
	err      error
}

// buildMessageSection emits everything one message contributes: the enum
// definitions for the companion module, the accessor impl blocks for each
// message surface, the extern declarations, and the thunk bodies. A
// message without groups of its own contributes nothing; it is carried
// only so its companion module can host nested bindings.
func buildMessageSection(e *Emitter, cfg GeneratorConfig, m ir.Message) messageSection {
	var sec messageSection
	sec.groups = len(m.Groups)
	if len(m.Groups) == 0 {
		return sec
	}

	// Distinct oneof names can camel-case to one Rust type name; refuse
	// the message rather than emit two enums with the same name.
	scope := NewScope()
	for _, grp := range m.Groups {
		for _, name := range []string{ViewEnumName(grp), MutEnumName(grp), CaseEnumName(grp)} {
			if scope.Claim(name) != name {
				sec.err = fmt.Errorf("oneof %s.%s: generated enum name %s is already used by another oneof in the message", m.FullName, grp.Name, name)
				return sec
			}
		}
	}

	for _, grp := range m.Groups {
		w, err := e.EmitDefinition(&sec.defs, m, grp)
		if err != nil {
			sec.err = err
			return sec
		}
		sec.warnings = append(sec.warnings, w...)
	}

	base := SafeName(m.Name)
	surfaces := []struct {
		name string
		ac   AccessorContext
	}{
		{base, AccessorOwned},
		{base + "Mut", AccessorMut},
		{base + "View", AccessorView},
	}
	if cfg.ViewOnly {
		// No mutable handle type exists on a view-only surface.
		surfaces = []struct {
			name string
			ac   AccessorContext
		}{
			{base, AccessorOwned},
			{base + "View", AccessorView},
		}
	}

	for _, surface := range surfaces {
		var body bytes.Buffer
		for _, grp := range m.Groups {
			w, err := e.EmitAccessors(&body, m, grp, surface.ac)
			if err != nil {
				sec.err = err
				return sec
			}
			sec.warnings = append(sec.warnings, w...)
		}
		fmt.Fprintf(&sec.impls, "impl %s {\n", surface.name)
		sec.impls.WriteString(indentLines(strings.TrimRight(body.String(), "\n")))
		sec.impls.WriteString("\n}\n\n")
	}

	for _, grp := range m.Groups {
		e.EmitExternDecl(&sec.externs, m, grp)
		if cfg.Kernel.NeedsThunks() {
			e.EmitThunk(&sec.thunks, m, grp)
		}
	}

	return sec
}

// messageTree splits the flat declaration-order message list into roots
// and a parent-to-children index, reconstructed from full names.
func messageTree(msgs []ir.Message) (roots []int, children map[int][]int) {
	children = make(map[int][]int)
	index := make(map[string]int, len(msgs))
	for i, m := range msgs {
		index[m.FullName] = i
	}
	for i, m := range msgs {
		parent := strings.TrimSuffix(m.FullName, "."+m.Name)
		if p, ok := index[parent]; ok && parent != m.FullName {
			children[p] = append(children[p], i)
			continue
		}
		roots = append(roots, i)
	}
	return roots, children
}

// writeMessageBinding writes one message's companion module followed by
// its impl blocks. Nested messages land inside the enclosing companion
// module, next to where the message generator places the nested types
// themselves, so a sibling reference like Inner_::DetailCase resolves at
// every nesting level.
func writeMessageBinding(out *bytes.Buffer, msgs []ir.Message, secs []messageSection, children map[int][]int, i int) {
	var body bytes.Buffer
	body.Write(secs[i].defs.Bytes())
	for _, c := range children[i] {
		writeMessageBinding(&body, msgs, secs, children, c)
	}
	fmt.Fprintf(out, "pub mod %s {\n", MessageModName(msgs[i]))
	out.WriteString(indentLines(strings.TrimRight(body.String(), "\n")))
	out.WriteString("\n}\n\n")
	out.Write(secs[i].impls.Bytes())
}

// writeFileHeader writes the generated-code marker and any configured
// frontmatter.
func writeFileHeader(buf *bytes.Buffer, schemaPath string, cfg GeneratorConfig) {
	buf.WriteString("// Generated by ferropb. DO NOT EDIT!\n")
	fmt.Fprintf(buf, "// source: %s\n", schemaPath)
	fmt.Fprintf(buf, "// kernel: %s\n\n", cfg.Kernel)
	if cfg.Frontmatter != "" {
		buf.WriteString(strings.TrimRight(cfg.Frontmatter, "\n"))
		buf.WriteString("\n\n")
	}
}

// assembleThunkFile wraps the thunk bodies in a C++ translation unit. The
// thunks need the full message class definition, so the unit includes the
// schema's generated C++ header; C linkage matches the Rust-side extern
// declarations.
func assembleThunkFile(schemaPath, thunks string) []byte {
	var cc bytes.Buffer
	cc.WriteString("// Generated by ferropb. DO NOT EDIT!\n")
	fmt.Fprintf(&cc, "// source: %s\n\n", schemaPath)
	fmt.Fprintf(&cc, "#include %q\n\n", strings.TrimSuffix(schemaPath, ".proto")+".pb.h")
	cc.WriteString("extern \"C\" {\n\n")
	cc.WriteString(indentLines(strings.TrimRight(thunks, "\n")))
	cc.WriteString("\n\n}  // extern \"C\"\n")
	return cc.Bytes()
}

// indentLines prefixes every non-empty line with two spaces. Empty lines
// stay empty so the output carries no trailing whitespace.
func indentLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n")
}
