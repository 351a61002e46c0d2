package cron_test

import (
	"errors"
	"github.com/osmike/orbitcron/internal/cron"
	errs "github.com/osmike/orbitcron/internal/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func utc(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func TestParse_RoundTrip(t *testing.T) {
	expressions := []string{
		"* * * * *",
		"0 7 * * *",
		"*/15 0-6 1,15 * 1-5",
		"15 8 * jan-mar 0,mon,3-6",
		"59 23 31 12 6",
		"*/59 */23 */31 */12 */6",
		"5,10,15 * * * *",
	}
	for _, raw := range expressions {
		t.Run(raw, func(t *testing.T) {
			e, err := cron.Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, e.String())
		})
	}
}

func TestParse_Trims(t *testing.T) {
	e, err := cron.Parse("  0 7 * * *  ")
	require.NoError(t, err)
	assert.Equal(t, "0 7 * * *", e.String())
}

func TestParse_EmptyMessage(t *testing.T) {
	_, err := cron.Parse("")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidCronExpression)
	assert.Equal(t, "Invalid cron expression: ''.", err.Error())

	var exprErr *errs.ExpressionError
	require.True(t, errors.As(err, &exprErr))
	assert.Equal(t, "", exprErr.Raw)
}

func TestParse_MessageQuotesRaw(t *testing.T) {
	_, err := cron.Parse("5-60 * * * *")
	require.Error(t, err)
	assert.Equal(t, "Invalid cron expression: '5-60 * * * *'.", err.Error())
	assert.ErrorIs(t, err, errs.ErrInvalidField)
}

func TestParse_Invalid(t *testing.T) {
	expressions := []string{
		"",
		"* * * *",
		"* * * * * *",
		"*  * * * *",
		"60-60 * * * *",
		"5-60 * * * *",
		"5-0 * * * *",
		"*/60 * * * *",
		"* */24 * * *",
		"* * * * 0-7",
		"* * * * 7",
		"60 * * * *",
		"* 24 * * *",
		"* * 0 * *",
		"* * 32 * *",
		"* * * 0 *",
		"* * * 13 *",
		"5, * * * *",
		"*/5,*/10 * * * *",
		"*/5,1-4 * * * *",
		"* * * * monday",
		"* * * january *",
	}
	for _, raw := range expressions {
		t.Run(raw, func(t *testing.T) {
			e, err := cron.Parse(raw)
			assert.Nil(t, e)
			assert.ErrorIs(t, err, errs.ErrInvalidCronExpression)
		})
	}
}

func TestParse_ValidEdgeCases(t *testing.T) {
	expressions := []string{
		"* * * * 0-6",
		"15 8 * jan-mar 0,mon,3-6",
		"0 0 1 JAN SUN",
		"*/1 * * * *",
		"* * * */1 *",
	}
	for _, raw := range expressions {
		t.Run(raw, func(t *testing.T) {
			_, err := cron.Parse(raw)
			assert.NoError(t, err)
		})
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { cron.MustParse("nope") })
	assert.NotPanics(t, func() { cron.MustParse("* * * * *") })
}

func TestExpression_IsDue(t *testing.T) {
	// 2025-03-05 is a Wednesday.
	at := utc(2025, time.March, 5, 10, 15)

	cases := []struct {
		raw  string
		want bool
	}{
		{"* * * * *", true},
		{"15 10 5 3 3", true},
		{"15 10 5 mar wed", true},
		{"16 10 5 3 3", false},
		{"15 11 5 3 3", false},
		{"15 10 6 3 3", false},
		{"15 10 5 4 3", false},
		{"15 10 5 3 4", false},
		{"*/5 * * * *", true},
		{"*/7 * * * *", false},
		{"10-20 9-11 * * mon-fri", true},
		{"* * * * sat,sun", false},
		// day-of-month and day-of-week are ANDed
		{"* * 5 * 1", false},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			e := cron.MustParse(tc.raw)
			assert.Equal(t, tc.want, e.IsDue(at))
		})
	}
}

func TestExpression_FieldPredicates(t *testing.T) {
	at := utc(2025, time.March, 5, 10, 15)
	e := cron.MustParse("15 9 5 1 3")

	assert.True(t, e.IsMinute(at))
	assert.False(t, e.IsHour(at))
	assert.True(t, e.IsDayOfMonth(at))
	assert.False(t, e.IsMonth(at))
	assert.True(t, e.IsDayOfWeek(at))
	assert.False(t, e.IsDue(at))
}

func TestExpression_FieldAccessors(t *testing.T) {
	e := cron.MustParse("*/5 1-3 7 jan,feb sun")
	assert.Equal(t, cron.Step, e.Minute().Kind())
	assert.Equal(t, []int{1, 2, 3}, e.Hour().Values())
	assert.Equal(t, []int{7}, e.DayOfMonth().Values())
	assert.Equal(t, []int{1, 2}, e.Month().Values())
	assert.Equal(t, []int{0}, e.DayOfWeek().Values())
}

func TestExpression_Next(t *testing.T) {
	after := utc(2025, time.March, 5, 10, 15)

	cases := []struct {
		raw  string
		want time.Time
	}{
		{"* * * * *", utc(2025, time.March, 5, 10, 16)},
		{"*/15 * * * *", utc(2025, time.March, 5, 10, 30)},
		{"15 10 * * *", utc(2025, time.March, 6, 10, 15)},
		{"30 9 * * mon", utc(2025, time.March, 10, 9, 30)},
		{"0 0 1 * *", utc(2025, time.April, 1, 0, 0)},
		{"0 0 1 jan *", utc(2026, time.January, 1, 0, 0)},
		{"0 0 29 2 *", utc(2028, time.February, 29, 0, 0)},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			next, err := cron.MustParse(tc.raw).Next(after)
			require.NoError(t, err)
			assert.Equal(t, tc.want, next)
			assert.True(t, cron.MustParse(tc.raw).IsDue(next))
		})
	}
}

func TestExpression_NextImpossible(t *testing.T) {
	_, err := cron.MustParse("0 0 31 2 *").Next(utc(2025, time.January, 1, 0, 0))
	assert.ErrorIs(t, err, errs.ErrNoNextRun)
}

func TestExpression_NextKeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	after := time.Date(2025, time.March, 5, 10, 15, 30, 0, loc)

	next, err := cron.MustParse("0 12 * * *").Next(after)
	require.NoError(t, err)
	assert.Equal(t, loc, next.Location())
	assert.Equal(t, time.Date(2025, time.March, 5, 12, 0, 0, 0, loc), next)
}
