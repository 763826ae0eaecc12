package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Grade defines a row in the 'grades' table. Value is a fixed-point decimal
// with two fractional digits (NUMERIC(5,2)); never compare it through floats.
type Grade struct {
	ID        int64           `json:"id" db:"id"`
	StudentID int64           `json:"studentId" db:"student_id"`
	SubjectID int64           `json:"subjectId" db:"subject_id"`
	Value     decimal.Decimal `json:"value" db:"grade"`
	ExamDate  time.Time       `json:"examDate" db:"exam_date"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}
