package models

import (
	"time"
)

// Transport defines a row in the 'transports' table. Enrollments in the
// student_transport pivot restrict its deletion.
type Transport struct {
	ID               int64     `json:"id" db:"id"`
	VehicleNumber    string    `json:"vehicleNumber" db:"vehicle_number"`
	DriverName       string    `json:"driverName" db:"driver_name"`
	RouteDescription string    `json:"routeDescription" db:"route_description"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}

// TransportEnrollment is a student_transport pivot row carrying the validity
// interval. A nil EndDate means the enrollment is open-ended.
type TransportEnrollment struct {
	StudentID   int64      `json:"studentId" db:"student_id"`
	TransportID int64      `json:"transportId" db:"transport_id"`
	StartDate   time.Time  `json:"startDate" db:"start_date"`
	EndDate     *time.Time `json:"endDate,omitempty" db:"end_date"`
}

// Open reports whether the enrollment has no end date yet.
func (e *TransportEnrollment) Open() bool {
	return e.EndDate == nil
}
