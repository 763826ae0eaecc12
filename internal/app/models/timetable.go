package models

import (
	"time"
)

// Weekday is the closed set of timetable days.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Valid reports whether the weekday belongs to the closed set.
func (d Weekday) Valid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

// TimetableEntry defines a row in the 'timetables' table. Both the class and
// the subject are restricted while the entry exists. Times are stored as
// "HH:MM" strings matching the TIME column.
type TimetableEntry struct {
	ID        int64     `json:"id" db:"id"`
	ClassID   int64     `json:"classId" db:"class_id"`
	SubjectID int64     `json:"subjectId" db:"subject_id"`
	Day       Weekday   `json:"day" db:"day"`
	StartTime string    `json:"startTime" db:"start_time"`
	EndTime   string    `json:"endTime" db:"end_time"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Subject *Subject    `json:"subject,omitempty"` // relation, no db tag
	Class   *ClassGroup `json:"class,omitempty"`   // relation, no db tag
}
