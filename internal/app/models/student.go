package models

import (
	"time"
)

// Student defines a student profile row in the 'students' table. The owning
// account cascades into it; the class reference is restricted while the
// student exists.
type Student struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"userId" db:"user_id"`
	FirstName   string    `json:"firstName" db:"first_name"`
	LastName    string    `json:"lastName" db:"last_name"`
	DateOfBirth time.Time `json:"dateOfBirth" db:"date_of_birth"`
	ClassID     int64     `json:"classId" db:"class_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	User  *User       `json:"user,omitempty"`  // relation, no db tag
	Class *ClassGroup `json:"class,omitempty"` // relation, no db tag
}
