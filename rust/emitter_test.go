package rust

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ferropb/ferropb/ir"
)

// contactMessage is the shared fixture: one group with a string member
// and an int64 member, numbers deliberately non-contiguous.
func contactMessage() ir.Message {
	return ir.Message{
		Name:     "Contact",
		FullName: "demo.Contact",
		Package:  "demo",
		Groups: []ir.OneofGroup{{
			Name:  "contact",
			Index: 0,
			Members: []ir.MemberField{
				{Name: "email", Number: 3, Kind: ir.KindString},
				{Name: "phone", Number: 5, Kind: ir.KindInt64},
			},
		}},
	}
}

// payloadMessage has one group mixing bindable members with a
// legacy-encoded one.
func payloadMessage() ir.Message {
	return ir.Message{
		Name:     "Payload",
		FullName: "demo.Payload",
		Package:  "demo",
		Groups: []ir.OneofGroup{{
			Name:  "payload",
			Index: 0,
			Members: []ir.MemberField{
				{Name: "blob", Number: 1, Kind: ir.KindBytes, Legacy: true},
				{Name: "email", Number: 3, Kind: ir.KindString},
				{Name: "phone", Number: 5, Kind: ir.KindInt64},
			},
		}},
	}
}

func TestEmitter_EmitDefinition_Output(t *testing.T) {
	const want = `#[non_exhaustive]
#[derive(Debug, Clone, Copy)]
#[allow(dead_code)]
#[repr(isize)]
pub enum Contact<'msg> {
  Email(&'msg ::__pb::ProtoStr) = 3,
  Phone(i64) = 5,

  #[allow(non_camel_case_types)]
  not_set(std::marker::PhantomData<&'msg ()>) = 0
}

#[non_exhaustive]
#[derive(Debug)]
#[allow(dead_code)]
#[repr(isize)]
pub enum ContactMut<'msg> {
  Email(::__pb::ProtoStrMut<'msg>) = 3,
  Phone(::__pb::PrimitiveMut<'msg, i64>) = 5,

  #[allow(non_camel_case_types)]
  not_set(std::marker::PhantomData<&'msg ()>) = 0
}

#[repr(C)]
#[derive(Debug, Copy, Clone, PartialEq, Eq)]
#[allow(dead_code)]
pub(super) enum ContactCase {
  Email = 3,
  Phone = 5,

  #[allow(non_camel_case_types)]
  not_set = 0
}

`

	m := contactMessage()
	emitter := NewEmitter(GeneratorConfig{Kernel: KernelUpb})

	var buf bytes.Buffer
	warnings, err := emitter.EmitDefinition(&buf, m, m.Groups[0])
	if err != nil {
		t.Fatalf("EmitDefinition() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("EmitDefinition() warnings = %v, want none", warnings)
	}
	if got := buf.String(); got != want {
		t.Errorf("EmitDefinition() output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}

	// Same input, same bytes.
	var again bytes.Buffer
	if _, err := emitter.EmitDefinition(&again, m, m.Groups[0]); err != nil {
		t.Fatalf("EmitDefinition() second run error = %v", err)
	}
	if !bytes.Equal(buf.Bytes(), again.Bytes()) {
		t.Error("EmitDefinition() output differs between identical runs")
	}
}

func TestEmitter_EmitDefinition(t *testing.T) {
	tests := []struct {
		name    string
		message ir.Message
		config  GeneratorConfig
		want    []string
		notWant []string
	}{
		{
			name: "message member uses resolved view path",
			message: ir.Message{
				Name:     "Event",
				FullName: "demo.Event",
				Package:  "demo",
				Groups: []ir.OneofGroup{{
					Name: "detail",
					Members: []ir.MemberField{
						{Name: "info", Number: 2, Kind: ir.KindMessage, TypeName: "demo.Info"},
					},
				}},
			},
			want: []string{
				"Info(::__pb::View<'msg, crate::Info>) = 2,",
				"Info(::__pb::Mut<'msg, crate::Info>) = 2,",
				"Info = 2,",
			},
		},
		{
			name: "enum member uses resolved view path",
			message: ir.Message{
				Name:     "Event",
				FullName: "demo.Event",
				Package:  "demo",
				Groups: []ir.OneofGroup{{
					Name: "detail",
					Members: []ir.MemberField{
						{Name: "color", Number: 4, Kind: ir.KindEnum, TypeName: "demo.Color"},
					},
				}},
			},
			want: []string{"Color(::__pb::View<'msg, crate::Color>) = 4,"},
		},
		{
			name:    "view only drops the mut union",
			message: contactMessage(),
			config:  GeneratorConfig{ViewOnly: true},
			want:    []string{"pub enum Contact<'msg> {", "pub(super) enum ContactCase {"},
			notWant: []string{"ContactMut"},
		},
		{
			name: "bytes member borrows a slice",
			message: ir.Message{
				Name:     "Blob",
				FullName: "demo.Blob",
				Package:  "demo",
				Groups: []ir.OneofGroup{{
					Name: "data",
					Members: []ir.MemberField{
						{Name: "raw", Number: 1, Kind: ir.KindBytes},
					},
				}},
			},
			want: []string{
				"Raw(&'msg [u8]) = 1,",
				"Raw(::__pb::BytesMut<'msg>) = 1,",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.config
			if cfg.Paths == nil {
				cfg.Paths = CratePaths{LocalPackage: tt.message.Package}
			}
			emitter := NewEmitter(cfg)

			var buf bytes.Buffer
			_, err := emitter.EmitDefinition(&buf, tt.message, tt.message.Groups[0])
			if err != nil {
				t.Fatalf("EmitDefinition() error = %v", err)
			}

			output := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q\ngot:\n%s", want, output)
				}
			}
			for _, notWant := range tt.notWant {
				if strings.Contains(output, notWant) {
					t.Errorf("output should NOT contain %q", notWant)
				}
			}
		})
	}
}

func TestEmitter_EmitDefinition_LegacyMember(t *testing.T) {
	m := payloadMessage()
	emitter := NewEmitter(GeneratorConfig{})

	var buf bytes.Buffer
	warnings, err := emitter.EmitDefinition(&buf, m, m.Groups[0])
	if err != nil {
		t.Fatalf("EmitDefinition() error = %v", err)
	}

	output := buf.String()

	// The legacy member never grows a payload variant but keeps its slot
	// in the case enumeration.
	if strings.Contains(output, "Blob(") {
		t.Error("legacy member should have no union variant")
	}
	if !strings.Contains(output, "Blob = 1,") {
		t.Error("legacy member should keep its case enumeration slot")
	}

	// Two bindable members appear in all three enums, the legacy one in
	// exactly one.
	if got := strings.Count(output, " = 3,"); got != 3 {
		t.Errorf("bindable member appears %d times, want 3", got)
	}
	if got := strings.Count(output, " = 1,"); got != 1 {
		t.Errorf("legacy member appears %d times, want 1", got)
	}
	if got := strings.Count(output, "not_set"); got != 3 {
		t.Errorf("not_set appears %d times, want one per enum (3)", got)
	}

	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", warnings)
	}
	if warnings[0].Code != "unsupported_member" {
		t.Errorf("warning code = %q, want unsupported_member", warnings[0].Code)
	}
	if warnings[0].Symbol != "demo.Payload.blob" {
		t.Errorf("warning symbol = %q, want demo.Payload.blob", warnings[0].Symbol)
	}
}

func TestEmitter_EmitDefinition_OnlyLegacyMembers(t *testing.T) {
	m := ir.Message{
		Name:     "Opaque",
		FullName: "demo.Opaque",
		Package:  "demo",
		Groups: []ir.OneofGroup{{
			Name: "body",
			Members: []ir.MemberField{
				{Name: "blob", Number: 1, Kind: ir.KindBytes, Legacy: true},
			},
		}},
	}
	emitter := NewEmitter(GeneratorConfig{})

	var buf bytes.Buffer
	warnings, err := emitter.EmitDefinition(&buf, m, m.Groups[0])
	if err != nil {
		t.Fatalf("EmitDefinition() error = %v", err)
	}
	if len(warnings) != 1 {
		t.Errorf("warnings = %v, want one", warnings)
	}

	// Unions still emit with only the not_set variant; PhantomData keeps
	// the lifetime parameter legal.
	output := buf.String()
	if !strings.Contains(output, "pub enum Body<'msg> {\n\n  #[allow(non_camel_case_types)]\n  not_set(std::marker::PhantomData<&'msg ()>) = 0\n}") {
		t.Errorf("empty union shape unexpected:\n%s", output)
	}
	if !strings.Contains(output, "Blob = 1,") {
		t.Error("case enumeration should keep the legacy slot")
	}
}

func TestEmitter_EmitDefinition_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		member ir.MemberField
	}{
		{"zero number", ir.MemberField{Name: "x", Number: 0, Kind: ir.KindInt32}},
		{"negative number", ir.MemberField{Name: "x", Number: -4, Kind: ir.KindInt32}},
		{"out-of-range kind", ir.MemberField{Name: "x", Number: 1, Kind: ir.FieldKind(42)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ir.Message{
				Name:     "Bad",
				FullName: "demo.Bad",
				Package:  "demo",
				Groups:   []ir.OneofGroup{{Name: "g", Members: []ir.MemberField{tt.member}}},
			}
			emitter := NewEmitter(GeneratorConfig{})

			var buf bytes.Buffer
			if _, err := emitter.EmitDefinition(&buf, m, m.Groups[0]); err == nil {
				t.Fatal("EmitDefinition() expected error")
			}
		})
	}
}
