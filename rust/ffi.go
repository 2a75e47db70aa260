package rust

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ferropb/ferropb/ir"
)

// EmitExternDecl emits the foreign declaration of the case thunk for one
// group, one line inside the file's unsafe extern "C" block:
//
//	fn proto2_rust_thunk_demo_Profile_avatar_case(raw_msg: ::__pbi::RawMessage) -> Profile_::AvatarCase;
//
// The return type is the group's #[repr(C)] case enumeration, qualified
// from the file root since the extern block sits outside every companion
// module. The kernel's numeric answer arrives already typed; calling the
// thunk is the only way generated code learns which member is set.
func (e *Emitter) EmitExternDecl(buf *bytes.Buffer, m ir.Message, g ir.OneofGroup) {
	fmt.Fprintf(buf, "fn %s(raw_msg: ::__pbi::RawMessage) -> %s::%s;\n",
		e.config.Kernel.CaseThunkName(m, g), ModulePath(m), CaseEnumName(g))
}

// EmitThunk emits the C++ adapter that answers the case query. It is
// compiled into the kernel side of the build, where the message class is
// a complete type:
//
//	::demo::Profile::AvatarCase proto2_rust_thunk_demo_Profile_avatar_case(::demo::Profile* msg) {
//	  return msg->avatar_case();
//	}
//
// Only the cpp kernel needs thunks; upb exports a case accessor symbol
// per oneof on its own.
func (e *Emitter) EmitThunk(buf *bytes.Buffer, m ir.Message, g ir.OneofGroup) {
	qualified := cppQualifiedName(m)
	fmt.Fprintf(buf, "%s::%s %s(%s* msg) {\n",
		qualified, CaseEnumName(g), e.config.Kernel.CaseThunkName(m, g), qualified)
	fmt.Fprintf(buf, "  return msg->%s_case();\n", g.Name)
	buf.WriteString("}\n\n")
}

// cppQualifiedName returns the message's fully qualified C++ class name.
// Package components become namespaces; nesting is flattened with
// underscores, matching how the C++ generator names nested classes.
func cppQualifiedName(m ir.Message) string {
	ns := ""
	if m.Package != "" {
		ns = "::" + strings.ReplaceAll(m.Package, ".", "::")
	}
	return ns + "::" + strings.Join(messageChain(m), "_")
}
