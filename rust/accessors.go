package rust

import (
	"bytes"
	"fmt"

	"github.com/ferropb/ferropb/ir"
)

// caseMismatchMsg labels the generated assertion that the kernel-reported
// case agrees with the set member's own presence. A panic on it means the
// bindings and the linked kernel were built from different descriptors.
const caseMismatchMsg = "oneof case out of sync with field presence; generated bindings and kernel disagree"

// EmitAccessors emits the oneof accessor methods for one message surface.
// The read accessor asks the kernel which member is set and wraps the value
// returned by that member's own getter in the view union:
//
//	pub fn avatar(&self) -> Profile_::Avatar {
//	  match unsafe { profile_avatar_case(self.raw_msg()) } {
//	    Profile_::AvatarCase::ImageUrl =>
//	        Profile_::Avatar::ImageUrl(self.image_url()),
//	    _ => Profile_::Avatar::not_set(std::marker::PhantomData)
//	  }
//	}
//
// Owned and mutable surfaces also get the mutate accessor, which converts
// the set member's field mutator into the mut union; view surfaces do not.
// Members omitted from the unions get no match arm and fall through to
// not_set.
func (e *Emitter) EmitAccessors(buf *bytes.Buffer, m ir.Message, g ir.OneofGroup, ac AccessorContext) ([]ir.Warning, error) {
	mod := MessageModName(m)
	method := AccessorMethodName(g)
	thunk := e.config.Kernel.CaseThunkName(m, g)
	caseEnum := mod + "::" + CaseEnumName(g)
	viewEnum := mod + "::" + ViewEnumName(g)

	fmt.Fprintf(buf, "pub fn %s(&self) -> %s {\n", method, viewEnum)
	fmt.Fprintf(buf, "  match unsafe { %s(self.raw_msg()) } {\n", thunk)
	for _, f := range g.Members {
		_, ok, err := e.types.View(f)
		if err != nil {
			return nil, fmt.Errorf("oneof %s.%s: %w", m.FullName, g.Name, err)
		}
		if !ok {
			continue
		}
		fmt.Fprintf(buf, "    %s::%s =>\n", caseEnum, VariantName(f))
		fmt.Fprintf(buf, "        %s::%s(self.%s()),\n", viewEnum, VariantName(f), e.config.Names.Getter(f))
	}
	fmt.Fprintf(buf, "    _ => %s::not_set(std::marker::PhantomData)\n", viewEnum)
	buf.WriteString("  }\n")
	buf.WriteString("}\n\n")

	if ac == AccessorView || e.config.ViewOnly {
		return nil, nil
	}

	// Member mutators return an optional handle for scalar members, so each
	// arm narrows it with try_into_mut. Narrowing can only fail when the
	// kernel-reported case and the member's presence disagree.
	mutEnum := mod + "::" + MutEnumName(g)
	fmt.Fprintf(buf, "pub fn %s_mut(&mut self) -> %s {\n", method, mutEnum)
	fmt.Fprintf(buf, "  match unsafe { %s(self.raw_msg()) } {\n", thunk)
	for _, f := range g.Members {
		_, ok, err := e.types.Mut(f)
		if err != nil {
			return nil, fmt.Errorf("oneof %s.%s: %w", m.FullName, g.Name, err)
		}
		if !ok {
			continue
		}
		fmt.Fprintf(buf, "    %s::%s =>\n", caseEnum, VariantName(f))
		fmt.Fprintf(buf, "        %s::%s(\n", mutEnum, VariantName(f))
		fmt.Fprintf(buf, "            self.%s().try_into_mut().expect(%q)),\n", e.config.Names.MutGetter(f), caseMismatchMsg)
	}
	fmt.Fprintf(buf, "    _ => %s::not_set(std::marker::PhantomData)\n", mutEnum)
	buf.WriteString("  }\n")
	buf.WriteString("}\n\n")

	return nil, nil
}
