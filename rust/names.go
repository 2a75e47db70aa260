package rust

import (
	"strings"

	"github.com/ferropb/ferropb/ir"
)

// Generated artifact names for one oneof group. The view enum carries the
// oneof name in UpperCamelCase; the mutator and case enums append "Mut"
// and "Case". Variants carry the member field name in UpperCamelCase.
// Case-enum variant names must match what sibling generators derive for
// the same schema, since diagnostics and kernel-side thunks refer to them.

// ViewEnumName returns the name of the group's read-only view union.
func ViewEnumName(g ir.OneofGroup) string {
	return toUpperCamel(g.Name)
}

// MutEnumName returns the name of the group's mutator union.
func MutEnumName(g ir.OneofGroup) string {
	return toUpperCamel(g.Name) + "Mut"
}

// CaseEnumName returns the name of the group's internal case enumeration.
func CaseEnumName(g ir.OneofGroup) string {
	return toUpperCamel(g.Name) + "Case"
}

// VariantName returns the union/enumeration variant name for a member.
func VariantName(f ir.MemberField) string {
	return toUpperCamel(f.Name)
}

// AccessorMethodName returns the name of the generated read accessor on
// the enclosing message; the mutate accessor appends "_mut".
func AccessorMethodName(g ir.OneofGroup) string {
	return SafeName(g.Name)
}

// MessageModName returns the name of the per-message module holding the
// generated enums, e.g. "Contact_" for message Contact.
func MessageModName(m ir.Message) string {
	return sanitizeIdentifier(m.Name) + "_"
}

// messageChain returns the message-name components of the full name with
// the package prefix removed, outermost first.
func messageChain(m ir.Message) []string {
	chain := m.FullName
	if m.Package != "" {
		chain = strings.TrimPrefix(chain, m.Package+".")
	}
	return strings.Split(chain, ".")
}

// ModulePath returns the path of the message's companion module from the
// file root, one module per nesting level: "Outer_::Inner_" for a message
// Inner nested in Outer. Code emitted next to the module refers to it by
// its bare name; the extern block at the file root needs the full path.
func ModulePath(m ir.Message) string {
	comps := messageChain(m)
	for i, c := range comps {
		comps[i] = sanitizeIdentifier(c) + "_"
	}
	return strings.Join(comps, "::")
}

// AccessorNames resolves the externally generated per-field accessor
// names the oneof accessors dispatch to. Field accessor generation is a
// sibling subsystem; this interface is the seam between the two.
type AccessorNames interface {
	// Getter returns the field's read accessor method name.
	Getter(f ir.MemberField) string

	// MutGetter returns the field's mutable accessor method name.
	MutGetter(f ir.MemberField) string
}

// DefaultAccessorNames derives accessor names the way the field-accessor
// generator does: the safe field name reads, the raw field name with a
// "_mut" suffix mutates.
type DefaultAccessorNames struct{}

func (DefaultAccessorNames) Getter(f ir.MemberField) string { return SafeName(f.Name) }

func (DefaultAccessorNames) MutGetter(f ir.MemberField) string { return f.Name + "_mut" }
