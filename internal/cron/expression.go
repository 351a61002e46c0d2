package cron

import (
	"fmt"
	errs "github.com/osmike/orbitcron/internal/error"
	"strings"
	"time"
)

// Expression is a parsed five-field cron expression:
//
//	┌───────────── minute (0-59)
//	│ ┌───────────── hour (0-23)
//	│ │ ┌───────────── day of month (1-31)
//	│ │ │ ┌───────────── month (1-12 or jan-dec)
//	│ │ │ │ ┌───────────── day of week (0-6 or sun-sat, Sunday = 0)
//	│ │ │ │ │
//	* * * * *
//
// An Expression only ever holds a grammatically valid expression. The builder
// methods replace it as a whole and leave it untouched when their input is invalid.
type Expression struct {
	raw        string
	minute     *Field
	hour       *Field
	dayOfMonth *Field
	month      *Field
	dayOfWeek  *Field
}

// Parse parses a cron expression string.
//
// The expression is trimmed and split on single spaces; it must contain exactly
// five non-empty fields. Parsing is atomic: any invalid field rejects the whole
// expression.
//
// Parameters:
//   - raw: The cron expression string (e.g., "*/5 * * * *").
//
// Returns:
//   - A pointer to the parsed Expression.
//   - An *errs.ExpressionError (errors.Is ErrInvalidCronExpression) if the syntax is invalid.
func Parse(raw string) (*Expression, error) {
	e := &Expression{}
	if err := e.parse(raw); err != nil {
		return nil, err
	}
	return e, nil
}

// MustParse is like Parse but panics on an invalid expression.
// Intended for package-level defaults built from literals.
func MustParse(raw string) *Expression {
	e, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return e
}

// parse fills e from raw, only touching e when every field is valid.
func (e *Expression) parse(raw string) error {
	trimmed := strings.TrimSpace(raw)
	parts := strings.Split(trimmed, " ")
	if len(parts) != 5 {
		return errs.NewExpressionError(trimmed, fmt.Errorf("expected 5 fields, got %d", len(parts)))
	}
	for i, part := range parts {
		if part == "" {
			return errs.NewExpressionError(trimmed, fmt.Errorf("field %d is empty", i+1))
		}
	}

	units := [5]Unit{Minute, Hour, DayOfMonth, Month, DayOfWeek}
	var fields [5]*Field
	for i, part := range parts {
		f, err := ParseField(part, units[i])
		if err != nil {
			return errs.NewExpressionError(trimmed, err)
		}
		fields[i] = f
	}

	e.raw = trimmed
	e.minute, e.hour, e.dayOfMonth, e.month, e.dayOfWeek = fields[0], fields[1], fields[2], fields[3], fields[4]
	return nil
}

// String returns the expression text exactly as parsed (after trimming).
func (e *Expression) String() string { return e.raw }

func (e *Expression) Minute() *Field     { return e.minute }
func (e *Expression) Hour() *Field       { return e.hour }
func (e *Expression) DayOfMonth() *Field { return e.dayOfMonth }
func (e *Expression) Month() *Field      { return e.month }
func (e *Expression) DayOfWeek() *Field  { return e.dayOfWeek }

// IsMinute reports whether the minute of t matches the minute field.
func (e *Expression) IsMinute(t time.Time) bool { return e.minute.Matches(t.Minute()) }

// IsHour reports whether the hour of t matches the hour field.
func (e *Expression) IsHour(t time.Time) bool { return e.hour.Matches(t.Hour()) }

// IsDayOfMonth reports whether the day of t matches the day-of-month field.
func (e *Expression) IsDayOfMonth(t time.Time) bool { return e.dayOfMonth.Matches(t.Day()) }

// IsMonth reports whether the month of t matches the month field.
func (e *Expression) IsMonth(t time.Time) bool { return e.month.Matches(int(t.Month())) }

// IsDayOfWeek reports whether the weekday of t matches the day-of-week field.
func (e *Expression) IsDayOfWeek(t time.Time) bool { return e.dayOfWeek.Matches(int(t.Weekday())) }

// IsDue determines if a given time satisfies every field of the expression.
//
// Day-of-month and day-of-week are combined with AND, like all other fields.
//
// Parameters:
//   - t: Time value to evaluate, already in the desired location.
//
// Returns:
//   - true if the provided time matches all cron fields; false otherwise.
func (e *Expression) IsDue(t time.Time) bool {
	return e.IsMinute(t) &&
		e.IsHour(t) &&
		e.IsDayOfMonth(t) &&
		e.IsMonth(t) &&
		e.IsDayOfWeek(t)
}

// Next calculates the first minute strictly after the given time at which the expression is due.
// It efficiently skips unsuitable months, days and hours, looking ahead up to four years
// so that leap days are reachable.
//
// Parameters:
//   - after: Baseline time; the result is in the same location.
//
// Returns:
//   - The next scheduled run time.
//   - ErrNoNextRun if the expression can never match (e.g. "0 0 31 2 *").
func (e *Expression) Next(after time.Time) (time.Time, error) {
	loc := after.Location()
	t := after.Truncate(time.Minute).Add(time.Minute)
	limit := t.AddDate(4, 0, 0)

	for t.Before(limit) {
		if !e.IsMonth(t) {
			t = time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, loc)
			continue
		}
		if !e.IsDayOfMonth(t) || !e.IsDayOfWeek(t) {
			t = time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, loc)
			continue
		}
		if !e.IsHour(t) {
			t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour()+1, 0, 0, 0, loc)
			continue
		}
		if !e.IsMinute(t) {
			t = t.Add(time.Minute)
			continue
		}
		return t, nil
	}

	return time.Time{}, errs.New(errs.ErrNoNextRun, fmt.Sprintf("%q within 4 years of %s", e.raw, after.Format(time.RFC3339)))
}
