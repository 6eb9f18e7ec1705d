package validator

import (
	"time"

	"rentdesk/internal/domain"
)

// Range and year limits for report queries.
const (
	MaxRangeDays = 365
	MinYear      = 2020
)

// RangeOption adds an optional rule to a range validation.
type RangeOption func(*rangeRules)

type rangeRules struct {
	nonEmpty bool
}

// RequireNonEmpty rejects ranges shorter than one whole day.
func RequireNonEmpty() RangeOption {
	return func(r *rangeRules) { r.nonEmpty = true }
}

// RangeValidator checks report query windows against a clock.
type RangeValidator struct {
	now func() time.Time
}

// NewRangeValidator creates a RangeValidator. A nil clock uses time.Now.
func NewRangeValidator(now func() time.Time) *RangeValidator {
	if now == nil {
		now = time.Now
	}
	return &RangeValidator{now: now}
}

// Validate applies, in order: both bounds present, end not before start,
// start not in the future, span within MaxRangeDays, then any options.
func (v *RangeValidator) Validate(start, end time.Time, opts ...RangeOption) error {
	var rules rangeRules
	for _, opt := range opts {
		opt(&rules)
	}

	if start.IsZero() || end.IsZero() {
		return domain.NewValidationError(domain.CodeMissingDate, "start and end dates are required")
	}

	from, to := CivilDate(start), CivilDate(end)
	if to.Before(from) {
		return domain.NewValidationError(domain.CodeInvertedRange, "end date cannot be before start date")
	}
	if from.After(CivilDate(v.now())) {
		return domain.NewValidationError(domain.CodeFutureStart, "start date cannot be in the future")
	}

	days := DaysBetween(from, to)
	if days > MaxRangeDays {
		return domain.NewValidationError(domain.CodeRangeTooWide, "date range cannot exceed %d days", MaxRangeDays)
	}
	if rules.nonEmpty && days < 1 {
		return domain.NewValidationError(domain.CodeRangeTooShort, "date range must span at least one day")
	}
	return nil
}

// ValidateYear accepts years from MinYear through next year.
func (v *RangeValidator) ValidateYear(year int) error {
	maxYear := v.now().Year() + 1
	if year < MinYear || year > maxYear {
		return domain.NewValidationError(domain.CodeInvalidYear, "year must be between %d and %d", MinYear, maxYear)
	}
	return nil
}

// Now returns the validator's current time.
func (v *RangeValidator) Now() time.Time {
	return v.now()
}

// CivilDate strips the clock from t, keeping its calendar date.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from start to end.
func DaysBetween(start, end time.Time) int {
	return int(CivilDate(end).Sub(CivilDate(start)).Hours() / 24)
}

// InclusiveDays counts the calendar days of [start, end], both ends included.
func InclusiveDays(start, end time.Time) int {
	return DaysBetween(start, end) + 1
}
