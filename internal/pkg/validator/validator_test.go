package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"123e4567-e89b-12d3-a456-426614174000",
		"123E4567-E89B-12D3-A456-426614174000",
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"{123e4567-e89b-12d3-a456-426614174000}",
		"",
	}
	for _, id := range valid {
		if !IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = true, want false", id)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2024-02-29"}
	invalid := []string{"2023-02-29", "2023-13-01", "01-01-2023", ""}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidStateCode(t *testing.T) {
	valid := []string{"01", "27", "29", "38", "97"}
	invalid := []string{"00", "39", "7", "ab", "270"}
	for _, s := range valid {
		if !IsValidStateCode(s) {
			t.Errorf("IsValidStateCode(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidStateCode(s) {
			t.Errorf("IsValidStateCode(%q) = true, want false", s)
		}
	}
}

func TestIsValidGSTIN(t *testing.T) {
	valid := []string{"27AAPFU0939F1ZV", "29aagcb7383j1z4"}
	invalid := []string{"27AAPFU0939F1AV", "AAPFU0939F1ZV", ""}
	for _, s := range valid {
		if !IsValidGSTIN(s) {
			t.Errorf("IsValidGSTIN(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidGSTIN(s) {
			t.Errorf("IsValidGSTIN(%q) = true, want false", s)
		}
	}
	if got := GSTINStateCode("27AAPFU0939F1ZV"); got != "27" {
		t.Errorf("GSTINStateCode = %q, want 27", got)
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Err() != nil {
		t.Fatal("empty ValidationErrors must not be an error")
	}
	errs.Add("start_date", "start_date is required")
	errs.Add("end_date", "end_date is required")
	if errs.Err() == nil {
		t.Fatal("expected an error")
	}
	m := errs.ToMap()
	if m["start_date"] != "start_date is required" || len(m) != 2 {
		t.Errorf("unexpected map: %v", m)
	}
}
