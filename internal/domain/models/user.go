// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleAdmin      = "admin"
	RoleUser       = "user"
	RoleSuperAdmin = "superadmin"
)

// User represents admins, office users, and the superadmin.
//
// Role, Office, and Campus are explicit authorization fields. They are
// populated once (either directly or by the email-derivation migration in
// internal/app/system/identity) and every later authorization check reads
// only these fields, never the email itself.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName string             `bson:"full_name" json:"full_name"`
	Email    string             `bson:"email" json:"email"`
	Role     string             `bson:"role" json:"role"`     // admin | user | superadmin
	Status   string             `bson:"status" json:"status"` // "active" or "inactive"

	// Office and Campus are empty for the superadmin, who belongs to no office.
	Office string `bson:"office,omitempty" json:"office,omitempty"`
	Campus string `bson:"campus,omitempty" json:"campus,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsActive returns true if the user may sign in and act.
func (u *User) IsActive() bool {
	return u.Status == "active"
}

// HasOffice returns true if the user is bound to an office.
func (u *User) HasOffice() bool {
	return u.Office != ""
}
