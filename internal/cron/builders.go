package cron

import (
	"fmt"
	"strconv"
	"strings"
)

// The builders below rewrite the whole expression from validated parameters.
// Each one returns false and leaves the expression unchanged when a parameter is invalid.

// EveryHour schedules the expression at minute 0 of every hour ("0 * * * *").
func (e *Expression) EveryHour() bool {
	return e.replace("0 * * * *")
}

// DailyAt schedules the expression once a day at hour:minute.
//
// Parameters:
//   - hour: 0-23.
//   - minute: 0-59.
//
// Returns:
//   - true if the expression was replaced; false if a parameter is out of range.
func (e *Expression) DailyAt(hour, minute int) bool {
	if !inUnit(Hour, hour) || !inUnit(Minute, minute) {
		return false
	}
	return e.replace(fmt.Sprintf("%d %d * * *", minute, hour))
}

// EveryMonthOn schedules the expression on the given day of every month.
//
// Parameters:
//   - day: 1-31.
//   - clock: "H:M" time of day, see ParseClock.
func (e *Expression) EveryMonthOn(day int, clock string) bool {
	hour, minute, ok := ParseClock(clock)
	if !ok || !inUnit(DayOfMonth, day) {
		return false
	}
	return e.replace(fmt.Sprintf("%d %d %d * *", minute, hour, day))
}

// OnMonth schedules the expression once a year on month/day at clock.
//
// Parameters:
//   - month: 1-12.
//   - day: 1-31.
//   - clock: "H:M" time of day, see ParseClock.
func (e *Expression) OnMonth(month, day int, clock string) bool {
	hour, minute, ok := ParseClock(clock)
	if !ok || !inUnit(Month, month) || !inUnit(DayOfMonth, day) {
		return false
	}
	return e.replace(fmt.Sprintf("%d %d %d %d *", minute, hour, day, month))
}

// OnMonthNamed is OnMonth with the month given as a numeric string ("3")
// or a three-letter name ("mar", case-insensitive).
func (e *Expression) OnMonthNamed(month string, day int, clock string) bool {
	m, ok := resolveName(Month, month)
	if !ok {
		return false
	}
	return e.OnMonth(m, day, clock)
}

// WeeklyOn schedules the expression once a week on dayOfWeek at clock.
//
// Parameters:
//   - dayOfWeek: 0-6, Sunday = 0.
//   - clock: "H:M" time of day, see ParseClock.
func (e *Expression) WeeklyOn(dayOfWeek int, clock string) bool {
	hour, minute, ok := ParseClock(clock)
	if !ok || !inUnit(DayOfWeek, dayOfWeek) {
		return false
	}
	return e.replace(fmt.Sprintf("%d %d * * %d", minute, hour, dayOfWeek))
}

// WeeklyOnNamed is WeeklyOn with the weekday given as a numeric string ("1")
// or a short name ("mon", case-insensitive). Full names such as "monday" are rejected.
func (e *Expression) WeeklyOnNamed(dayOfWeek string, clock string) bool {
	d, ok := resolveName(DayOfWeek, dayOfWeek)
	if !ok {
		return false
	}
	return e.WeeklyOn(d, clock)
}

// ParseClock parses an "H:M" time of day.
//
// Each side is parsed as a plain integer, so extra leading zeros are tolerated
// ("012:000" is 12:00) while out-of-range values ("12:100") are not.
//
// Returns:
//   - hour, minute and true on success; false otherwise.
func ParseClock(clock string) (hour, minute int, ok bool) {
	parts := strings.Split(strings.TrimSpace(clock), ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || !inUnit(Hour, h) {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || !inUnit(Minute, m) {
		return 0, 0, false
	}
	return h, m, true
}

// replace swaps in a new expression only if it parses.
func (e *Expression) replace(raw string) bool {
	return e.parse(raw) == nil
}

func resolveName(unit Unit, token string) (int, bool) {
	v, err := unit.resolve(strings.TrimSpace(token))
	if err != nil {
		return 0, false
	}
	return v, true
}

func inUnit(unit Unit, v int) bool {
	return v >= unit.Min && v <= unit.Max
}
