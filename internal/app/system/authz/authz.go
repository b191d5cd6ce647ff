// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/reporthub/internal/app/pipeline"
	"github.com/dalemusser/reporthub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role (lowercased), name, Mongo ObjectID, and a
// found flag. If no user is present in context or the user ID is malformed,
// it returns "visitor", "", NilObjectID, false. ok=true always means a
// valid, authenticated user with a valid ObjectID.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, userID, true
}

// CallerIdentity resolves the request's session user into the workflow
// identity handed to pipeline operations.
func CallerIdentity(r *http.Request) (pipeline.Identity, bool) {
	role, name, userID, ok := UserCtx(r)
	if !ok {
		return pipeline.Identity{}, false
	}
	return pipeline.Identity{
		UserID: userID,
		Name:   name,
		Role:   role,
		Office: UserOffice(r),
	}, true
}

// IsSuperAdmin reports whether the current request's user is the superadmin.
func IsSuperAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "superadmin"
}

// IsAdmin reports whether the current request's user is an admin.
// The superadmin is also considered an admin for permission purposes.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && (role == "admin" || role == "superadmin")
}

// IsOfficeUser reports whether the current request's user is an office user.
func IsOfficeUser(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "user"
}

// UserOffice returns the current user's office, or "" if not signed in or
// officeless (admins, superadmin).
func UserOffice(r *http.Request) string {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return ""
	}
	return user.Office
}
