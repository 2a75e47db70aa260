package rust

import (
	"bytes"
	"fmt"

	"github.com/ferropb/ferropb/ir"
)

// Emitter handles Rust code emission for oneof groups.
type Emitter struct {
	config GeneratorConfig
	types  TypeMap
}

// NewEmitter returns an Emitter for the given configuration, applying
// defaults for any unset resolver.
func NewEmitter(config GeneratorConfig) *Emitter {
	if config.Paths == nil {
		config.Paths = CratePaths{}
	}
	if config.Names == nil {
		config.Names = DefaultAccessorNames{}
	}
	return &Emitter{
		config: config,
		types:  TypeMap{Paths: config.Paths},
	}
}

// EmitDefinition emits the enums backing one oneof group:
//
//	pub enum Avatar<'msg> { ImageUrl(&'msg ::__pb::ProtoStr) = 5, ... not_set(...) = 0 }
//	pub enum AvatarMut<'msg> { ImageUrl(::__pb::ProtoStrMut<'msg>) = 5, ... not_set(...) = 0 }
//	pub(super) enum AvatarCase { ImageUrl = 5, ... not_set = 0 }
//
// The view and mut unions pair each member with its borrowed payload type
// and use the field number as the discriminant. The case enum carries no
// payloads and is #[repr(C)]: its values cross the FFI boundary and must
// equal the field numbers the kernel reports, with 0 meaning no member is
// set. Members whose payload type has no Rust binding are omitted from the
// unions with a warning but still appear in the case enum, since the kernel
// can report their number regardless.
func (e *Emitter) EmitDefinition(buf *bytes.Buffer, m ir.Message, g ir.OneofGroup) ([]ir.Warning, error) {
	var warnings []ir.Warning

	var viewVariants, mutVariants, caseVariants []string
	for _, f := range g.Members {
		if f.Number <= 0 {
			return nil, fmt.Errorf("oneof %s.%s: field %q has number %d; member numbers must be positive", m.FullName, g.Name, f.Name, f.Number)
		}
		variant := VariantName(f)

		viewType, ok, err := e.types.View(f)
		if err != nil {
			return nil, fmt.Errorf("oneof %s.%s: %w", m.FullName, g.Name, err)
		}
		if !ok {
			warnings = append(warnings, ir.Warning{
				Code:    "unsupported_member",
				Message: fmt.Sprintf("field %q has no Rust binding for its representation; omitted from the %s unions", f.Name, g.Name),
				Symbol:  m.FullName + "." + f.Name,
			})
		} else {
			viewVariants = append(viewVariants, fmt.Sprintf("%s(%s) = %d", variant, viewType, f.Number))

			mutType, ok, err := e.types.Mut(f)
			if err != nil {
				return nil, fmt.Errorf("oneof %s.%s: %w", m.FullName, g.Name, err)
			}
			if ok {
				mutVariants = append(mutVariants, fmt.Sprintf("%s(%s) = %d", variant, mutType, f.Number))
			}
		}

		caseVariants = append(caseVariants, fmt.Sprintf("%s = %d", variant, f.Number))
	}

	writeUnionEnum(buf, ViewEnumName(g), "Debug, Clone, Copy", viewVariants)
	if !e.config.ViewOnly {
		writeUnionEnum(buf, MutEnumName(g), "Debug", mutVariants)
	}
	writeCaseEnum(buf, CaseEnumName(g), caseVariants)

	return warnings, nil
}

// writeUnionEnum writes one borrowed tagged-union enum. The trailing not_set
// variant carries PhantomData so the 'msg lifetime parameter stays used even
// when every member was omitted from the union.
func writeUnionEnum(buf *bytes.Buffer, name, derives string, variants []string) {
	buf.WriteString("#[non_exhaustive]\n")
	fmt.Fprintf(buf, "#[derive(%s)]\n", derives)
	buf.WriteString("#[allow(dead_code)]\n")
	buf.WriteString("#[repr(isize)]\n")
	fmt.Fprintf(buf, "pub enum %s<'msg> {\n", name)
	for _, v := range variants {
		buf.WriteString("  ")
		buf.WriteString(v)
		buf.WriteString(",\n")
	}
	buf.WriteString("\n")
	buf.WriteString("  #[allow(non_camel_case_types)]\n")
	buf.WriteString("  not_set(std::marker::PhantomData<&'msg ()>) = 0\n")
	buf.WriteString("}\n\n")
}

// writeCaseEnum writes the payload-free case enum shared with the kernel.
func writeCaseEnum(buf *bytes.Buffer, name string, variants []string) {
	buf.WriteString("#[repr(C)]\n")
	buf.WriteString("#[derive(Debug, Copy, Clone, PartialEq, Eq)]\n")
	buf.WriteString("#[allow(dead_code)]\n")
	fmt.Fprintf(buf, "pub(super) enum %s {\n", name)
	for _, v := range variants {
		buf.WriteString("  ")
		buf.WriteString(v)
		buf.WriteString(",\n")
	}
	buf.WriteString("\n")
	buf.WriteString("  #[allow(non_camel_case_types)]\n")
	buf.WriteString("  not_set = 0\n")
	buf.WriteString("}\n\n")
}
