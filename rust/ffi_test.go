package rust

import (
	"bytes"
	"testing"

	"github.com/ferropb/ferropb/ir"
)

func TestEmitter_EmitExternDecl(t *testing.T) {
	m := contactMessage()
	g := m.Groups[0]

	tests := []struct {
		kernel Kernel
		want   string
	}{
		{KernelUpb, "fn demo_Contact_contact_case(raw_msg: ::__pbi::RawMessage) -> Contact_::ContactCase;\n"},
		{KernelCpp, "fn proto2_rust_thunk_demo_Contact_contact_case(raw_msg: ::__pbi::RawMessage) -> Contact_::ContactCase;\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kernel), func(t *testing.T) {
			emitter := NewEmitter(GeneratorConfig{Kernel: tt.kernel})

			var buf bytes.Buffer
			emitter.EmitExternDecl(&buf, m, g)
			if got := buf.String(); got != tt.want {
				t.Errorf("EmitExternDecl() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmitter_EmitThunk(t *testing.T) {
	const want = `::demo::Contact::ContactCase proto2_rust_thunk_demo_Contact_contact_case(::demo::Contact* msg) {
  return msg->contact_case();
}

`

	m := contactMessage()
	emitter := NewEmitter(GeneratorConfig{Kernel: KernelCpp})

	var buf bytes.Buffer
	emitter.EmitThunk(&buf, m, m.Groups[0])
	if got := buf.String(); got != want {
		t.Errorf("EmitThunk() output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}

	// Emission is pure; a second run yields identical bytes.
	var again bytes.Buffer
	emitter.EmitThunk(&again, m, m.Groups[0])
	if !bytes.Equal(buf.Bytes(), again.Bytes()) {
		t.Error("EmitThunk() output differs between identical runs")
	}
}

func TestCppQualifiedName(t *testing.T) {
	tests := []struct {
		name    string
		message ir.Message
		want    string
	}{
		{
			"packaged",
			ir.Message{FullName: "acme.api.Contact", Package: "acme.api"},
			"::acme::api::Contact",
		},
		{
			"nested class flattens with underscores",
			ir.Message{FullName: "demo.Outer.Inner", Package: "demo"},
			"::demo::Outer_Inner",
		},
		{
			"no package",
			ir.Message{FullName: "Contact", Package: ""},
			"::Contact",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cppQualifiedName(tt.message); got != tt.want {
				t.Errorf("cppQualifiedName() = %q, want %q", got, tt.want)
			}
		})
	}
}
