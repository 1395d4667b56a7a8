package identitystore

import (
	"testing"

	"github.com/makanenak/makanenak/internal/app/system/authutil"
	"github.com/makanenak/makanenak/internal/domain/models"
)

// White-box test: the hash comparison runs without a database, so a
// mixed-up plaintext/hash pairing is caught even when the Mongo-backed
// Authenticate tests are skipped.
func TestMatchesPassword(t *testing.T) {
	hash, err := authutil.HashPassword("rahasia123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	ident := &models.Identity{PasswordHash: hash}

	if !matchesPassword(ident, "rahasia123") {
		t.Error("correct password rejected: login would always fail")
	}
	if matchesPassword(ident, "salah") {
		t.Error("wrong password accepted")
	}
	if matchesPassword(ident, hash) {
		t.Error("the stored hash itself must not authenticate")
	}
}
