// Package provider implements input providers for extracting oneof
// descriptors from resolved protobuf schemas. Providers convert
// descriptor data into the intermediate representation (IR) that
// generators use to produce target language code.
package provider

import (
	"context"
	"fmt"

	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/ferropb/ferropb/ir"
)

// DescriptorProvider extracts oneof groups from resolved protobuf file
// descriptors, the schema source shared by standalone and protoc-plugin
// invocations.
type DescriptorProvider struct{}

// DescriptorInputOptions configures descriptor-based extraction.
type DescriptorInputOptions struct {
	// File is the resolved file descriptor to extract from.
	File protoreflect.FileDescriptor
}

// BuildFile walks the file's messages in declaration order, nested
// messages after their parent, and returns IR for every message that
// declares at least one real oneof group, plus the enclosing messages a
// nested binding needs as hosts. Synthetic oneofs (proto3 optional
// presence) are not schema oneofs and never appear.
func (p *DescriptorProvider) BuildFile(ctx context.Context, opts DescriptorInputOptions) (*ir.File, error) {
	if opts.File == nil {
		return nil, fmt.Errorf("no file descriptor provided")
	}

	file := &ir.File{
		Path:    opts.File.Path(),
		Package: string(opts.File.Package()),
	}

	msgs := opts.File.Messages()
	for i := 0; i < msgs.Len(); i++ {
		collected, err := collectMessage(ctx, msgs.Get(i))
		if err != nil {
			return nil, err
		}
		file.Messages = append(file.Messages, collected...)
	}
	return file, nil
}

// collectMessage returns md's binding-relevant messages: md itself when
// it declares a real oneof group or encloses a message that does,
// followed by those nested messages. Enclosing messages are kept even
// without groups of their own, since nested bindings live inside the
// enclosing companion module.
func collectMessage(ctx context.Context, md protoreflect.MessageDescriptor) ([]ir.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Map entries are compiler-synthesized messages; nothing in them can
	// declare a oneof.
	if md.IsMapEntry() {
		return nil, nil
	}

	var groups []ir.OneofGroup
	oneofs := md.Oneofs()
	for i := 0; i < oneofs.Len(); i++ {
		od := oneofs.Get(i)
		if od.IsSynthetic() {
			continue
		}
		g, err := buildGroup(od)
		if err != nil {
			return nil, fmt.Errorf("message %s: %w", md.FullName(), err)
		}
		groups = append(groups, g)
	}

	var nested []ir.Message
	subs := md.Messages()
	for i := 0; i < subs.Len(); i++ {
		collected, err := collectMessage(ctx, subs.Get(i))
		if err != nil {
			return nil, err
		}
		nested = append(nested, collected...)
	}

	if len(groups) == 0 && len(nested) == 0 {
		return nil, nil
	}

	out := []ir.Message{{
		Name:     string(md.Name()),
		FullName: string(md.FullName()),
		Package:  string(md.ParentFile().Package()),
		Groups:   groups,
	}}
	return append(out, nested...), nil
}

// buildGroup converts one oneof descriptor with its members in
// declaration order.
func buildGroup(od protoreflect.OneofDescriptor) (ir.OneofGroup, error) {
	g := ir.OneofGroup{
		Name:  string(od.Name()),
		Index: od.Index(),
	}

	fields := od.Fields()
	for i := 0; i < fields.Len(); i++ {
		member, err := buildMember(fields.Get(i))
		if err != nil {
			return ir.OneofGroup{}, fmt.Errorf("oneof %s: %w", od.Name(), err)
		}
		g.Members = append(g.Members, member)
	}
	return g, nil
}

// buildMember converts one member field, folding the descriptor's wire
// variants (sint32, sfixed32, ...) into the value categories the binding
// layer distinguishes.
func buildMember(fd protoreflect.FieldDescriptor) (ir.MemberField, error) {
	m := ir.MemberField{
		Name:   string(fd.Name()),
		Number: int32(fd.Number()),
	}

	switch fd.Kind() {
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		m.Kind = ir.KindInt32
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		m.Kind = ir.KindInt64
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		m.Kind = ir.KindUint32
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		m.Kind = ir.KindUint64
	case protoreflect.FloatKind:
		m.Kind = ir.KindFloat32
	case protoreflect.DoubleKind:
		m.Kind = ir.KindFloat64
	case protoreflect.BoolKind:
		m.Kind = ir.KindBool
	case protoreflect.BytesKind:
		m.Kind = ir.KindBytes
	case protoreflect.StringKind:
		m.Kind = ir.KindString
	case protoreflect.MessageKind:
		m.Kind = ir.KindMessage
		m.TypeName = string(fd.Message().FullName())
	case protoreflect.GroupKind:
		// proto2 groups reference a message but use the delimited wire
		// encoding the binding layer does not map.
		m.Kind = ir.KindMessage
		m.TypeName = string(fd.Message().FullName())
		m.Legacy = true
	case protoreflect.EnumKind:
		m.Kind = ir.KindEnum
		m.TypeName = string(fd.Enum().FullName())
	default:
		return ir.MemberField{}, fmt.Errorf("field %s: unsupported kind %v", fd.Name(), fd.Kind())
	}

	// An explicit C++ string representation option changes the kernel's
	// storage type; no Rust binding exists for those.
	if hasCType(fd) {
		m.Legacy = true
	}

	return m, nil
}

// hasCType reports whether the field sets the ctype option.
func hasCType(fd protoreflect.FieldDescriptor) bool {
	opts, ok := fd.Options().(*descriptorpb.FieldOptions)
	return ok && opts != nil && opts.Ctype != nil
}
