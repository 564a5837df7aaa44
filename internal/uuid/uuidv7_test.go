package uuid

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	a := New()
	b := New()

	if a == b {
		t.Fatal("expected unique ids")
	}
	if !IsValid(a) {
		t.Fatalf("New() = %q is not a valid UUID", a)
	}
	if a[14] != '7' {
		t.Errorf("New() = %q, want version 7", a)
	}
	// Time-ordered: ids generated later never sort before earlier ones.
	if strings.Compare(a[:13], b[:13]) > 0 {
		t.Errorf("ids not time-ordered: %s then %s", a, b)
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("0190A1B2-C3D4-7E5F-8A6B-7C8D9E0F1A2B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "0190a1b2-c3d4-7e5f-8a6b-7c8d9e0f1a2b" {
		t.Errorf("Parse() = %q", got)
	}

	if _, err := Parse("not-a-uuid"); err == nil {
		t.Error("expected error for invalid uuid")
	}
	if IsValid("") {
		t.Error("empty string should be invalid")
	}
}
