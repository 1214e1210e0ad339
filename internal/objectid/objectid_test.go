package objectid

import "testing"

func TestIsValid(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"507f1f77bcf86cd799439011", true},
		{"000000000000000000000000", true},
		{"507F1F77BCF86CD799439011", false},
		{"507f1f77bcf86cd79943901", false},
		{"507f1f77bcf86cd7994390111", false},
		{"507f1f77bcf86cd79943901g", false},
		{"invalid-id", false},
		{"", false},
		{" 507f1f77bcf86cd799439011", false},
	}
	for _, c := range cases {
		if got := IsValid(c.in); got != c.want {
			t.Fatalf("IsValid(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNewIsValidAndOrdered(t *testing.T) {
	a := New()
	b := New()
	if !IsValid(a) || !IsValid(b) {
		t.Fatalf("generated ids must be valid: %q %q", a, b)
	}
	if a == b {
		t.Fatalf("ids must be unique")
	}
	if !(a < b) {
		t.Fatalf("expected %q < %q", a, b)
	}
}

func TestInvalid(t *testing.T) {
	got := Invalid([]string{"507f1f77bcf86cd799439011", "x", "invalid-id"})
	if len(got) != 2 || got[0] != "x" || got[1] != "invalid-id" {
		t.Fatalf("unexpected: %v", got)
	}
	if Invalid(nil) != nil {
		t.Fatalf("expected nil for empty input")
	}
}
