package dto

// Request bodies for the record endpoints. Dates travel as "2006-01-02"
// strings and times of day as "15:04"; the services parse and validate them.

// UpdateAccountRequest changes an account's name or email.
type UpdateAccountRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// ClassRequest creates or updates a class group.
type ClassRequest struct {
	Name  string `json:"name" binding:"required"`
	Level string `json:"level" binding:"required"`
}

// CreateStudentRequest attaches a student profile to an account.
type CreateStudentRequest struct {
	UserID      int64  `json:"userId" binding:"required"`
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	DateOfBirth string `json:"dateOfBirth" binding:"required"`
	ClassID     int64  `json:"classId" binding:"required"`
}

// UpdateStudentRequest changes a student profile. The owning account is
// immutable.
type UpdateStudentRequest struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	DateOfBirth string `json:"dateOfBirth" binding:"required"`
	ClassID     int64  `json:"classId" binding:"required"`
}

// CreateParentRequest attaches a guardian profile to an account.
type CreateParentRequest struct {
	UserID    int64  `json:"userId" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
}

// UpdateParentRequest changes a guardian profile.
type UpdateParentRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
}

// CreateAccountantRequest attaches an accountant profile to an account.
type CreateAccountantRequest struct {
	UserID    int64  `json:"userId" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
}

// UpdateAccountantRequest changes an accountant profile.
type UpdateAccountantRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
}

// SubjectRequest creates or updates a subject.
type SubjectRequest struct {
	Name      string `json:"name" binding:"required"`
	ClassID   int64  `json:"classId" binding:"required"`
	TeacherID int64  `json:"teacherId" binding:"required"`
}

// AbsenceRequest creates or updates an absence record.
type AbsenceRequest struct {
	StudentID int64   `json:"studentId" binding:"required"`
	SubjectID int64   `json:"subjectId" binding:"required"`
	Date      string  `json:"date" binding:"required"`
	Reason    *string `json:"reason"`
}

// GradeRequest creates or updates a grade record. Value is a decimal string
// with at most two fractional digits.
type GradeRequest struct {
	StudentID int64  `json:"studentId" binding:"required"`
	SubjectID int64  `json:"subjectId" binding:"required"`
	Value     string `json:"value" binding:"required"`
	ExamDate  string `json:"examDate" binding:"required"`
}

// CreatePaymentRequest records a payment. The receipt reference is generated
// server side.
type CreatePaymentRequest struct {
	StudentID   int64  `json:"studentId" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	PaymentDate string `json:"paymentDate" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Status      string `json:"status" binding:"required"`
}

// UpdatePaymentRequest changes a payment's mutable attributes.
type UpdatePaymentRequest struct {
	StudentID   int64  `json:"studentId" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	PaymentDate string `json:"paymentDate" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Status      string `json:"status" binding:"required"`
}

// TransportRequest creates or updates a transport route.
type TransportRequest struct {
	VehicleNumber    string `json:"vehicleNumber" binding:"required"`
	DriverName       string `json:"driverName" binding:"required"`
	RouteDescription string `json:"routeDescription" binding:"required"`
}

// EnrollTransportRequest puts a student on a transport route for an interval.
// A missing endDate leaves the enrollment open-ended.
type EnrollTransportRequest struct {
	StudentID int64   `json:"studentId" binding:"required"`
	StartDate string  `json:"startDate" binding:"required"`
	EndDate   *string `json:"endDate"`
}

// LinkStudentRequest attaches a student to a guardian.
type LinkStudentRequest struct {
	StudentID int64 `json:"studentId" binding:"required"`
}

// TimetableRequest creates or updates a timetable entry.
type TimetableRequest struct {
	ClassID   int64  `json:"classId" binding:"required"`
	SubjectID int64  `json:"subjectId" binding:"required"`
	Day       string `json:"day" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}
