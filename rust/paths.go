package rust

import (
	"fmt"
	"strings"
)

// TypePathResolver maps a message or enum referenced by a oneof member to
// the Rust path its generated type lives at. Resolution is an external
// concern: the emitters only splice the returned path into type
// expressions like `::__pb::View<'msg, PATH>`.
type TypePathResolver interface {
	// RustPath resolves a proto full name (e.g. "acme.api.Contact") to a
	// Rust type path (e.g. "::acme_protos::Contact").
	RustPath(fullName string) (string, error)
}

// CratePaths resolves type paths from a proto-package to Rust-crate
// mapping. Nested messages follow the per-message module convention:
// "pkg.Outer.Inner" resolves to "<crate>::Outer_::Inner".
type CratePaths struct {
	// LocalPackage is the proto package of the file being generated.
	// Types under it resolve against DefaultCrate.
	LocalPackage string

	// DefaultCrate is the path prefix for local types ("crate" if empty).
	DefaultCrate string

	// Crates maps proto packages to crate paths for types outside the
	// local package (e.g. "acme.common" -> "::acme_common_protos").
	// Longest matching package prefix wins.
	Crates map[string]string
}

// RustPath resolves fullName against the crate mapping. A name in a
// foreign package with no mapping entry is an error: emitting a guessed
// path would move the failure into the Rust build.
func (p CratePaths) RustPath(fullName string) (string, error) {
	if fullName == "" {
		return "", fmt.Errorf("empty type name")
	}

	comps := strings.Split(fullName, ".")
	defaultCrate := p.DefaultCrate
	if defaultCrate == "" {
		defaultCrate = "crate"
	}

	// Longest package prefix wins; the empty prefix matches an empty
	// local package.
	for i := len(comps) - 1; i >= 0; i-- {
		prefix := strings.Join(comps[:i], ".")
		if crate, ok := p.Crates[prefix]; ok && prefix != "" {
			return joinTypePath(crate, comps[i:]), nil
		}
		if prefix == p.LocalPackage {
			return joinTypePath(defaultCrate, comps[i:]), nil
		}
	}

	return "", fmt.Errorf("no crate mapping for type %q", fullName)
}

// joinTypePath builds crate::Outer_::Inner from the crate path and the
// message-path components after the package.
func joinTypePath(crate string, comps []string) string {
	var b strings.Builder
	b.WriteString(crate)
	for i, c := range comps {
		b.WriteString("::")
		if i < len(comps)-1 {
			b.WriteString(sanitizeIdentifier(c) + "_")
		} else {
			b.WriteString(SafeName(c))
		}
	}
	return b.String()
}
