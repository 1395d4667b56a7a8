// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/makanenak/makanenak/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role (lowercased), name, Mongo ObjectID, and a
// found flag. If no user is present or the session user id is malformed it
// returns "visitor", "", NilObjectID, false, so ok=true always means a valid
// authenticated user with a parseable id.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed id in session means session corruption; fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, userID, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "admin"
}

// IsDonor reports whether the current request's user is a donor.
func IsDonor(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "donor"
}

// IsRecipient reports whether the current request's user is a recipient.
func IsRecipient(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "recipient"
}
