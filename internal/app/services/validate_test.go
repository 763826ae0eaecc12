package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emirkay/schoolregistry/internal/pkg/apperrors"
)

func TestParseDate(t *testing.T) {
	d, err := parseDate("date", "2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), d)

	_, err = parseDate("date", "15/03/2026")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = parseDate("date", "2026-02-30")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestParseClock(t *testing.T) {
	got, err := parseClock("startTime", "08:30")
	require.NoError(t, err)
	assert.Equal(t, "08:30", got)

	_, err = parseClock("startTime", "8:30am")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = parseClock("startTime", "25:00")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestParseAmountKeepsFixedPoint(t *testing.T) {
	amount, err := parseAmount("amount", "199.90")
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("199.90")))

	// 0.10 + 0.20 must land exactly on 0.30.
	a, err := parseAmount("amount", "0.10")
	require.NoError(t, err)
	b, err := parseAmount("amount", "0.20")
	require.NoError(t, err)
	assert.True(t, a.Add(b).Equal(decimal.RequireFromString("0.30")))
}

func TestParseAmountRejectsBadInput(t *testing.T) {
	_, err := parseAmount("amount", "12.345")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = parseAmount("amount", "twelve")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidateInterval(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, validateInterval(start, nil))

	end := start.AddDate(0, 9, 0)
	assert.NoError(t, validateInterval(start, &end))

	same := start
	assert.NoError(t, validateInterval(start, &same))

	before := start.AddDate(0, 0, -1)
	err := validateInterval(start, &before)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestParseGradeValue(t *testing.T) {
	value, err := parseGradeValue("17.50")
	require.NoError(t, err)
	assert.True(t, value.Equal(decimal.RequireFromString("17.5")))

	_, err = parseGradeValue("-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = parseGradeValue("1000")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = parseGradeValue("17.505")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
