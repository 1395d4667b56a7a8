package normalize

import "testing"

func TestEmail(t *testing.T) {
	cases := []struct{ in, want string }{
		{"  Budi@Example.COM ", "budi@example.com"},
		{"plain@example.com", "plain@example.com"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Email(c.in); got != c.want {
			t.Errorf("Email(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestName(t *testing.T) {
	if got := Name("  Budi   Santoso "); got != "Budi Santoso" {
		t.Errorf("Name: got %q", got)
	}
}

func TestRoleAndStatus(t *testing.T) {
	if got := Role(" Donor "); got != "donor" {
		t.Errorf("Role: got %q", got)
	}
	if got := Status("AVAILABLE"); got != "available" {
		t.Errorf("Status: got %q", got)
	}
}
