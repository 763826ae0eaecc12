package models

import (
	"time"
)

// Absence defines a row in the 'absences' table. Deleting the student removes
// it; the subject cannot be deleted while it exists.
type Absence struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	SubjectID int64     `json:"subjectId" db:"subject_id"`
	Date      time.Time `json:"date" db:"date"`
	Reason    *string   `json:"reason,omitempty" db:"reason"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
