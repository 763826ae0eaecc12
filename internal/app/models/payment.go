package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType is the closed set of payment purposes.
type PaymentType string

const (
	PaymentTuition   PaymentType = "tuition"
	PaymentTransport PaymentType = "transport"
	PaymentOther     PaymentType = "other"
)

// Valid reports whether the payment type belongs to the closed set.
func (t PaymentType) Valid() bool {
	switch t {
	case PaymentTuition, PaymentTransport, PaymentOther:
		return true
	}
	return false
}

// PaymentStatus is the closed set of payment states.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Valid reports whether the payment status belongs to the closed set.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return true
	}
	return false
}

// Payment defines a row in the 'payments' table. Amount is a fixed-point
// decimal with two fractional digits (NUMERIC(10,2)). Reference is a
// generated receipt identifier, unique per payment.
type Payment struct {
	ID          int64           `json:"id" db:"id"`
	StudentID   int64           `json:"studentId" db:"student_id"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	PaymentDate time.Time       `json:"paymentDate" db:"payment_date"`
	Type        PaymentType     `json:"type" db:"payment_type"`
	Status      PaymentStatus   `json:"status" db:"status"`
	Reference   string          `json:"reference" db:"reference"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}
