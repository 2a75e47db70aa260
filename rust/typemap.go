package rust

import (
	"fmt"

	"github.com/ferropb/ferropb/ir"
)

// TypeMap is the pure mapping from a oneof member to the Rust type
// expressions its union variants carry. Borrowed forms use the fixed
// lifetime 'msg: every view and mutation handle is scoped to the
// enclosing message, never owned, so recursive message fields cannot
// form ownership cycles.
type TypeMap struct {
	// Paths resolves KindMessage/KindEnum references.
	Paths TypePathResolver
}

// View returns the read-view type for a member. ok is false for
// legacy-encoded fields: a documented binding gap, not an error. The
// field stays out of both unions but keeps its case-enumeration slot.
// An out-of-range kind is an error; it signals a defect in the upstream
// schema resolver, and generation must not proceed past it.
func (m TypeMap) View(f ir.MemberField) (expr string, ok bool, err error) {
	if f.Legacy {
		return "", false, nil
	}
	if scalar, isScalar := scalarTypeName(f.Kind); isScalar {
		return scalar, true, nil
	}
	switch f.Kind {
	case ir.KindBytes:
		return "&'msg [u8]", true, nil
	case ir.KindString:
		return "&'msg ::__pb::ProtoStr", true, nil
	case ir.KindMessage, ir.KindEnum:
		path, pathErr := m.Paths.RustPath(f.TypeName)
		if pathErr != nil {
			return "", false, fmt.Errorf("field %q: %w", f.Name, pathErr)
		}
		return "::__pb::View<'msg, " + path + ">", true, nil
	}
	return "", false, fmt.Errorf("field %q: unexpected field kind %v", f.Name, f.Kind)
}

// Mut returns the mutation-handle type for a member. Semantics of ok and
// err match View.
func (m TypeMap) Mut(f ir.MemberField) (expr string, ok bool, err error) {
	if f.Legacy {
		return "", false, nil
	}
	if scalar, isScalar := scalarTypeName(f.Kind); isScalar {
		return "::__pb::PrimitiveMut<'msg, " + scalar + ">", true, nil
	}
	switch f.Kind {
	case ir.KindBytes:
		return "::__pb::BytesMut<'msg>", true, nil
	case ir.KindString:
		return "::__pb::ProtoStrMut<'msg>", true, nil
	case ir.KindMessage, ir.KindEnum:
		path, pathErr := m.Paths.RustPath(f.TypeName)
		if pathErr != nil {
			return "", false, fmt.Errorf("field %q: %w", f.Name, pathErr)
		}
		return "::__pb::Mut<'msg, " + path + ">", true, nil
	}
	return "", false, fmt.Errorf("field %q: unexpected field kind %v", f.Name, f.Kind)
}

// scalarTypeName maps the primitive numeric and boolean kinds to their
// Rust spellings. Scalars are returned by copy from the view union, so
// the view type and the plain value type coincide.
func scalarTypeName(k ir.FieldKind) (string, bool) {
	switch k {
	case ir.KindInt32:
		return "i32", true
	case ir.KindInt64:
		return "i64", true
	case ir.KindUint32:
		return "u32", true
	case ir.KindUint64:
		return "u64", true
	case ir.KindFloat32:
		return "f32", true
	case ir.KindFloat64:
		return "f64", true
	case ir.KindBool:
		return "bool", true
	}
	return "", false
}
