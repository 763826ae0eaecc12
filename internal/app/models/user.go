package models

import (
	"time"
)

// User defines an account row in the 'users' table. Profiles (student, parent,
// accountant) and taught subjects hang off it; roles are held through the
// user_roles table.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Roles []RoleName `json:"roles,omitempty"` // loaded from user_roles, no db tag
}

// HasRole reports whether the account holds the given role.
func (u *User) HasRole(role RoleName) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Role defines a row in the 'roles' table. Rows are seeded once and persist
// for the institution's lifetime.
type Role struct {
	ID   int64    `json:"id" db:"id"`
	Name RoleName `json:"name" db:"name"`
}
