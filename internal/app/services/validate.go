package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/emirkay/schoolregistry/internal/pkg/apperrors"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// parseDate parses a "2006-01-02" date field.
func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(field, "must be a date in YYYY-MM-DD form")
	}
	return t, nil
}

// parseClock checks a "15:04" time-of-day field and returns it normalized.
func parseClock(field, value string) (string, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return "", apperrors.NewValidationError(field, "must be a time in HH:MM form")
	}
	return t.Format(timeLayout), nil
}

// parseAmount parses a decimal field with at most two fractional digits.
// Fixed-point throughout; floats never touch these values.
func parseAmount(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, apperrors.NewValidationError(field, "must be a decimal number")
	}
	if d.Exponent() < -2 {
		return decimal.Decimal{}, apperrors.NewValidationError(field, "at most two fractional digits")
	}
	return d, nil
}

// validateInterval checks that an end date, when present, does not precede
// the start date.
func validateInterval(start time.Time, end *time.Time) error {
	if end != nil && end.Before(start) {
		return apperrors.NewValidationError("endDate", "must not precede startDate")
	}
	return nil
}
