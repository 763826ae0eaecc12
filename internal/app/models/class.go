package models

import (
	"time"
)

// ClassGroup defines a row in the 'classes' table. Students, subjects and
// timetable entries reference it; all three restrict its deletion.
type ClassGroup struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Level     string    `json:"level" db:"level"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
