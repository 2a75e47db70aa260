package ir

import "testing"

func TestFieldKind_String(t *testing.T) {
	tests := []struct {
		kind FieldKind
		want string
	}{
		{KindInt32, "Int32"},
		{KindInt64, "Int64"},
		{KindUint32, "Uint32"},
		{KindUint64, "Uint64"},
		{KindFloat32, "Float32"},
		{KindFloat64, "Float64"},
		{KindBool, "Bool"},
		{KindBytes, "Bytes"},
		{KindString, "String"},
		{KindMessage, "Message"},
		{KindEnum, "Enum"},
		{FieldKind(999), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("FieldKind.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMemberField_Tag(t *testing.T) {
	f := MemberField{Name: "phone", Number: 5, Kind: KindInt64}
	if got := f.Tag(); got != CaseTag(5) {
		t.Errorf("Tag() = %d, want 5", got)
	}
	if CaseNotSet != 0 {
		t.Errorf("CaseNotSet = %d, want 0", CaseNotSet)
	}
}
