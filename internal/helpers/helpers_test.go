package helpers

import "testing"

func TestIsPasswordStrong(t *testing.T) {
	tests := []struct {
		password string
		strong   bool
	}{
		{"Str0ng!pass", true},
		{"short1!A", true},
		{"alllowercase1!", false},
		{"NOLOWERCASE1!", false},
		{"NoNumbers!!", false},
		{"NoSpecials11", false},
		{"Sh0rt!", false},
	}

	for _, tt := range tests {
		if got := IsPasswordStrong(tt.password); got != tt.strong {
			t.Errorf("IsPasswordStrong(%q) = %v, want %v", tt.password, got, tt.strong)
		}
	}
}

func TestStringTrim(t *testing.T) {
	if got := StringTrim(`  "rome-food-walk"  `); got != "rome-food-walk" {
		t.Errorf("StringTrim() = %q", got)
	}
}

func TestGenerateSlug(t *testing.T) {
	if got := GenerateSlug("Rome Food Walk", "2026"); got != "rome-food-walk-2026" {
		t.Errorf("GenerateSlug() = %q", got)
	}
}
