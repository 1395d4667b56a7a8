package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/makanenak/makanenak/internal/app/system/auth"
	"github.com/makanenak/makanenak/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserCtx_Anonymous(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	role, name, id, ok := authz.UserCtx(r)
	if ok || role != "visitor" || name != "" || id != primitive.NilObjectID {
		t.Errorf("UserCtx anonymous: got %q %q %v %v", role, name, id, ok)
	}
}

func TestUserCtx_MalformedID(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r = auth.WithTestUser(r, &auth.SessionUser{ID: "not-a-hex-id", Role: "donor"})
	if _, _, _, ok := authz.UserCtx(r); ok {
		t.Error("expected ok=false for malformed user id")
	}
}

func TestUserCtx_Valid(t *testing.T) {
	oid := primitive.NewObjectID()
	r := httptest.NewRequest("GET", "/", nil)
	r = auth.WithTestUser(r, &auth.SessionUser{ID: oid.Hex(), Name: "Budi", Role: "Donor"})

	role, name, id, ok := authz.UserCtx(r)
	if !ok || role != "donor" || name != "Budi" || id != oid {
		t.Errorf("UserCtx: got %q %q %v %v", role, name, id, ok)
	}
	if !authz.IsDonor(r) || authz.IsAdmin(r) || authz.IsRecipient(r) {
		t.Error("role predicates disagree with UserCtx")
	}
}
