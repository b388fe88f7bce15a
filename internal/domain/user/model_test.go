package user

import "testing"

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	got, err := NormalizeEmail("  Nacho@Example.com ")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got != "nacho@example.com" {
		t.Fatalf("unexpected email %q", got)
	}

	for _, in := range []string{"", "nacho", "Nacho <nacho@example.com>", "@example.com"} {
		if _, err := NormalizeEmail(in); err == nil {
			t.Fatalf("expected %q to be rejected", in)
		}
	}
}
