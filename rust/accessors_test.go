package rust

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ferropb/ferropb/ir"
)

func TestEmitter_EmitAccessors_Output(t *testing.T) {
	const want = `pub fn contact(&self) -> Contact_::Contact {
  match unsafe { demo_Contact_contact_case(self.raw_msg()) } {
    Contact_::ContactCase::Email =>
        Contact_::Contact::Email(self.email()),
    Contact_::ContactCase::Phone =>
        Contact_::Contact::Phone(self.phone()),
    _ => Contact_::Contact::not_set(std::marker::PhantomData)
  }
}

pub fn contact_mut(&mut self) -> Contact_::ContactMut {
  match unsafe { demo_Contact_contact_case(self.raw_msg()) } {
    Contact_::ContactCase::Email =>
        Contact_::ContactMut::Email(
            self.email_mut().try_into_mut().expect("oneof case out of sync with field presence; generated bindings and kernel disagree")),
    Contact_::ContactCase::Phone =>
        Contact_::ContactMut::Phone(
            self.phone_mut().try_into_mut().expect("oneof case out of sync with field presence; generated bindings and kernel disagree")),
    _ => Contact_::ContactMut::not_set(std::marker::PhantomData)
  }
}

`

	m := contactMessage()
	emitter := NewEmitter(GeneratorConfig{Kernel: KernelUpb})

	var buf bytes.Buffer
	if _, err := emitter.EmitAccessors(&buf, m, m.Groups[0], AccessorOwned); err != nil {
		t.Fatalf("EmitAccessors() error = %v", err)
	}
	if got := buf.String(); got != want {
		t.Errorf("EmitAccessors() output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestEmitter_EmitAccessors_ViewSurface(t *testing.T) {
	m := contactMessage()
	emitter := NewEmitter(GeneratorConfig{Kernel: KernelUpb})

	var buf bytes.Buffer
	if _, err := emitter.EmitAccessors(&buf, m, m.Groups[0], AccessorView); err != nil {
		t.Fatalf("EmitAccessors() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "pub fn contact(&self)") {
		t.Error("view surface should keep the read accessor")
	}
	if strings.Contains(output, "contact_mut") {
		t.Error("view surface should not get a mutate accessor")
	}
}

func TestEmitter_EmitAccessors_MutSurface(t *testing.T) {
	m := contactMessage()
	emitter := NewEmitter(GeneratorConfig{Kernel: KernelUpb})

	var buf bytes.Buffer
	if _, err := emitter.EmitAccessors(&buf, m, m.Groups[0], AccessorMut); err != nil {
		t.Fatalf("EmitAccessors() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "pub fn contact(&self)") {
		t.Error("mut surface should keep the read accessor")
	}
	if !strings.Contains(output, "pub fn contact_mut(&mut self)") {
		t.Error("mut surface should get the mutate accessor")
	}
}

func TestEmitter_EmitAccessors_LegacyMemberHasNoArm(t *testing.T) {
	m := payloadMessage()
	emitter := NewEmitter(GeneratorConfig{Kernel: KernelUpb})

	var buf bytes.Buffer
	if _, err := emitter.EmitAccessors(&buf, m, m.Groups[0], AccessorOwned); err != nil {
		t.Fatalf("EmitAccessors() error = %v", err)
	}

	output := buf.String()
	if strings.Contains(output, "Blob") {
		t.Error("legacy member should have no dispatch arm; its tag falls through to not_set")
	}

	// One arm per bindable member per accessor, nothing else.
	if got := strings.Count(output, "PayloadCase::"); got != 4 {
		t.Errorf("dispatch arms = %d, want 4 (two members, read and mutate)", got)
	}
	if got := strings.Count(output, "_ ="); got != 2 {
		t.Errorf("default arms = %d, want 2", got)
	}
}

func TestEmitter_EmitAccessors_CppKernelThunk(t *testing.T) {
	m := contactMessage()
	emitter := NewEmitter(GeneratorConfig{Kernel: KernelCpp})

	var buf bytes.Buffer
	if _, err := emitter.EmitAccessors(&buf, m, m.Groups[0], AccessorOwned); err != nil {
		t.Fatalf("EmitAccessors() error = %v", err)
	}

	if !strings.Contains(buf.String(), "unsafe { proto2_rust_thunk_demo_Contact_contact_case(self.raw_msg()) }") {
		t.Error("cpp kernel should dispatch through its thunk symbol")
	}
}

func TestEmitter_EmitAccessors_ViewOnlyConfig(t *testing.T) {
	m := contactMessage()
	emitter := NewEmitter(GeneratorConfig{Kernel: KernelUpb, ViewOnly: true})

	var buf bytes.Buffer
	if _, err := emitter.EmitAccessors(&buf, m, m.Groups[0], AccessorOwned); err != nil {
		t.Fatalf("EmitAccessors() error = %v", err)
	}
	if strings.Contains(buf.String(), "contact_mut") {
		t.Error("view-only config should suppress the mutate accessor on every surface")
	}
}

func TestEmitter_EmitAccessors_KeywordGroupName(t *testing.T) {
	m := ir.Message{
		Name:     "Node",
		FullName: "demo.Node",
		Package:  "demo",
		Groups: []ir.OneofGroup{{
			Name: "type",
			Members: []ir.MemberField{
				{Name: "leaf", Number: 1, Kind: ir.KindBool},
			},
		}},
	}
	emitter := NewEmitter(GeneratorConfig{Kernel: KernelUpb})

	var buf bytes.Buffer
	if _, err := emitter.EmitAccessors(&buf, m, m.Groups[0], AccessorOwned); err != nil {
		t.Fatalf("EmitAccessors() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "pub fn r#type(&self) -> Node_::Type {") {
		t.Errorf("keyword group name should escape in the method name:\n%s", output)
	}
	// The thunk symbol keeps the raw schema name; escaping is a
	// Rust-surface concern only.
	if !strings.Contains(output, "demo_Node_type_case(self.raw_msg())") {
		t.Errorf("thunk symbol should use the raw group name:\n%s", output)
	}
}
