package rust

import (
	"fmt"
	"strings"

	"github.com/ferropb/ferropb/ir"
)

// Kernel identifies the native runtime the generated bindings link
// against. The kernel owns field storage and presence state; generated
// code only queries it through the case thunk.
type Kernel string

const (
	// KernelUpb links against the upb C kernel.
	KernelUpb Kernel = "upb"

	// KernelCpp links against the full C++ runtime.
	KernelCpp Kernel = "cpp"
)

// ParseKernel returns a kernel by name, or an error if unknown.
func ParseKernel(name string) (Kernel, error) {
	switch name {
	case "upb":
		return KernelUpb, nil
	case "cpp":
		return KernelCpp, nil
	default:
		return "", fmt.Errorf("unknown kernel: %q", name)
	}
}

// NeedsThunks reports whether the kernel requires generated adapter
// thunks compiled into its own build. upb already exports a C symbol per
// oneof case accessor; the C++ runtime exposes the accessor as a method,
// so a free-function adapter must be generated for it.
func (k Kernel) NeedsThunks() bool {
	return k == KernelCpp
}

// CaseThunkName returns the exported symbol of the tag-query function
// for one oneof group. The name is derived from the message full name
// and the group name only, so regenerating an unchanged schema always
// yields the same symbol, and two groups can never collide: field
// numbers are not part of the name, and full names are unique per
// schema.
func (k Kernel) CaseThunkName(m ir.Message, g ir.OneofGroup) string {
	mangled := strings.ReplaceAll(m.FullName, ".", "_")
	if k == KernelCpp {
		return "proto2_rust_thunk_" + mangled + "_" + g.Name + "_case"
	}
	// upb generates <full_name>_<oneof>_case itself; the binding links
	// straight against it.
	return mangled + "_" + g.Name + "_case"
}

// RustFilePath returns the binding output path for a schema file path.
// The kernel qualifier keeps upb and cpp outputs apart in one tree:
// "acme/contact.proto" becomes "acme/contact.u.pb.rs" under upb.
func (k Kernel) RustFilePath(schemaPath string) string {
	qualifier := "u"
	if k == KernelCpp {
		qualifier = "c"
	}
	return strings.TrimSuffix(schemaPath, ".proto") + "." + qualifier + ".pb.rs"
}

// ThunkFilePath returns the C++ thunk output path for a schema file path.
// Only meaningful for kernels that need thunks.
func (k Kernel) ThunkFilePath(schemaPath string) string {
	return strings.TrimSuffix(schemaPath, ".proto") + ".pb.thunks.cc"
}
