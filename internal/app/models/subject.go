package models

import (
	"time"
)

// Subject defines a row in the 'subjects' table. The teacher reference points
// at an account; both the class and the teacher are restricted while the
// subject exists.
type Subject struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	ClassID   int64     `json:"classId" db:"class_id"`
	TeacherID int64     `json:"teacherId" db:"teacher_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Class   *ClassGroup `json:"class,omitempty"`   // relation, no db tag
	Teacher *User       `json:"teacher,omitempty"` // relation, no db tag
}
