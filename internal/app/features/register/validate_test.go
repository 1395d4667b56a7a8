package register

import (
	"strings"
	"testing"
)

func TestValidateForm_Order(t *testing.T) {
	base := registerFormData{FullName: "Budi", Email: "budi@example.com", Role: "donor"}

	noRole := base
	noRole.Role = ""
	if msg := validateForm(noRole, "x", "y"); !strings.Contains(msg, "peran") {
		t.Errorf("missing role must be reported first, got %q", msg)
	}

	// A password that is both short and mismatched reports the mismatch.
	if msg := validateForm(base, "abc", "abcd"); !strings.Contains(msg, "tidak cocok") {
		t.Errorf("mismatch must be reported before the length rule, got %q", msg)
	}

	// Matching but short falls through to the length rule.
	if msg := validateForm(base, "abc", "abc"); msg == "" || strings.Contains(msg, "tidak cocok") {
		t.Errorf("short matching password must hit the length rule, got %q", msg)
	}

	if msg := validateForm(base, "rahasia123", "rahasia123"); msg != "" {
		t.Errorf("valid form rejected: %q", msg)
	}
}
