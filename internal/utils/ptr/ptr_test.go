package ptr

import "testing"

func TestTo(t *testing.T) {
	s := To("hq")
	if *s != "hq" {
		t.Errorf("To(string) = %q, want %q", *s, "hq")
	}

	n := To(42)
	if *n != 42 {
		t.Errorf("To(int) = %d, want %d", *n, 42)
	}

	// Each call allocates independently.
	a, b := To(1), To(1)
	if a == b {
		t.Error("To returned the same pointer for independent calls")
	}
}
