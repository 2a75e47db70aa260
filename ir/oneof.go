package ir

// FieldKind identifies the value category of a oneof member field.
//
// The set is closed: every kind a resolved schema can produce appears
// here. Emitters treat any other value as a schema-resolution defect and
// abort generation; there is no catch-all "unknown" kind.
type FieldKind int

const (
	KindInt32   FieldKind = iota // 32-bit signed integer
	KindInt64                    // 64-bit signed integer
	KindUint32                   // 32-bit unsigned integer
	KindUint64                   // 64-bit unsigned integer
	KindFloat32                  // 32-bit floating point
	KindFloat64                  // 64-bit floating point
	KindBool                     // boolean
	KindBytes                    // arbitrary byte sequence
	KindString                   // UTF-8 validated text
	KindMessage                  // nested aggregate, referenced by TypeName
	KindEnum                     // enumeration, referenced by TypeName
)

// String returns the string representation of the field kind.
func (k FieldKind) String() string {
	switch k {
	case KindInt32:
		return "Int32"
	case KindInt64:
		return "Int64"
	case KindUint32:
		return "Uint32"
	case KindUint64:
		return "Uint64"
	case KindFloat32:
		return "Float32"
	case KindFloat64:
		return "Float64"
	case KindBool:
		return "Bool"
	case KindBytes:
		return "Bytes"
	case KindString:
		return "String"
	case KindMessage:
		return "Message"
	case KindEnum:
		return "Enum"
	default:
		return "Unknown"
	}
}

// CaseTag is the numeric discriminant identifying the active member of a
// oneof group at runtime. It crosses the FFI boundary and must equal the
// value the native kernel and every sibling generator use for the same
// schema: the member's declared field number, with 0 reserved for "no
// member active". This is a cross-system ABI contract, not an internal
// detail.
type CaseTag int32

// CaseNotSet is the tag reported when no member of the group is active.
// Field numbers are always >= 1, so 0 never collides with a member.
const CaseNotSet CaseTag = 0

// MemberField describes one member of a oneof group.
type MemberField struct {
	// Name is the schema field name (snake_case by convention).
	Name string

	// Number is the declared field number. It is positive and unique
	// across all fields of the enclosing message, not just this group,
	// and doubles as the member's CaseTag value.
	Number int32

	// Kind is the field's value category.
	Kind FieldKind

	// Legacy marks a field-level encoding that binding generation does
	// not support. Legacy fields are excluded from the public view and
	// mutator unions but still occupy their slot in the internal case
	// enumeration, so the numeric ABI stays aligned with the kernel.
	Legacy bool

	// TypeName is the referenced type's proto full name for KindMessage
	// and KindEnum members. Empty for all other kinds.
	TypeName string
}

// Tag returns the member's case tag.
func (f MemberField) Tag() CaseTag { return CaseTag(f.Number) }

// OneofGroup describes a named set of mutually exclusive fields. At most
// one member holds a value at any instant; the native kernel, not the
// generated bindings, enforces that.
type OneofGroup struct {
	// Name is the schema oneof name (snake_case by convention).
	Name string

	// Index is the oneof's declaration index within its message.
	Index int

	// Members lists the group's fields in declaration order. The order
	// is semantically meaningful: generated variants preserve it.
	Members []MemberField
}
