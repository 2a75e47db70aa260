package rust

import (
	"testing"

	"github.com/ferropb/ferropb/ir"
)

func TestParseKernel(t *testing.T) {
	tests := []struct {
		input   string
		want    Kernel
		wantErr bool
	}{
		{"upb", KernelUpb, false},
		{"cpp", KernelCpp, false},
		{"", "", true},
		{"UPB", "", true},
		{"c++", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKernel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKernel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseKernel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestKernel_NeedsThunks(t *testing.T) {
	if KernelUpb.NeedsThunks() {
		t.Error("upb should not need thunks")
	}
	if !KernelCpp.NeedsThunks() {
		t.Error("cpp should need thunks")
	}
}

func TestKernel_CaseThunkName(t *testing.T) {
	m := ir.Message{Name: "Contact", FullName: "acme.api.Contact", Package: "acme.api"}
	g := ir.OneofGroup{Name: "contact"}

	if got, want := KernelUpb.CaseThunkName(m, g), "acme_api_Contact_contact_case"; got != want {
		t.Errorf("upb thunk name = %q, want %q", got, want)
	}
	if got, want := KernelCpp.CaseThunkName(m, g), "proto2_rust_thunk_acme_api_Contact_contact_case"; got != want {
		t.Errorf("cpp thunk name = %q, want %q", got, want)
	}

	// The name depends only on identity, never on member layout, so an
	// unchanged schema regenerates to the same symbol.
	withMembers := m
	withMembers.Groups = []ir.OneofGroup{{Name: "contact", Members: []ir.MemberField{{Name: "email", Number: 3}}}}
	if KernelUpb.CaseThunkName(withMembers, g) != KernelUpb.CaseThunkName(m, g) {
		t.Error("thunk name changed with member layout")
	}
}

func TestKernel_FilePaths(t *testing.T) {
	if got, want := KernelUpb.RustFilePath("acme/contact.proto"), "acme/contact.u.pb.rs"; got != want {
		t.Errorf("upb RustFilePath = %q, want %q", got, want)
	}
	if got, want := KernelCpp.RustFilePath("acme/contact.proto"), "acme/contact.c.pb.rs"; got != want {
		t.Errorf("cpp RustFilePath = %q, want %q", got, want)
	}
	if got, want := KernelCpp.ThunkFilePath("acme/contact.proto"), "acme/contact.pb.thunks.cc"; got != want {
		t.Errorf("ThunkFilePath = %q, want %q", got, want)
	}
}
