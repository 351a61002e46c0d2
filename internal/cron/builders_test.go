package cron_test

import (
	"github.com/osmike/orbitcron/internal/cron"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestBuilders_EveryHour(t *testing.T) {
	e := cron.MustParse("* * * * *")
	assert.True(t, e.EveryHour())
	assert.Equal(t, "0 * * * *", e.String())
}

func TestBuilders_DailyAt(t *testing.T) {
	e := cron.MustParse("* * * * *")

	assert.False(t, e.DailyAt(24, 59))
	assert.Equal(t, "* * * * *", e.String())
	assert.False(t, e.DailyAt(-1, 0))
	assert.False(t, e.DailyAt(0, 60))
	assert.Equal(t, "* * * * *", e.String())

	assert.True(t, e.DailyAt(13, 6))
	assert.Equal(t, "6 13 * * *", e.String())
	assert.Equal(t, []int{13}, e.Hour().Values())

	assert.True(t, e.DailyAt(0, 0))
	assert.Equal(t, "0 0 * * *", e.String())
}

func TestBuilders_EveryMonthOn(t *testing.T) {
	e := cron.MustParse("* * * * *")

	assert.True(t, e.EveryMonthOn(1, "00:00"))
	assert.Equal(t, "0 0 1 * *", e.String())

	assert.True(t, e.EveryMonthOn(31, "23:59"))
	assert.Equal(t, "59 23 31 * *", e.String())

	assert.True(t, e.EveryMonthOn(15, "012:000"))
	assert.Equal(t, "0 12 15 * *", e.String())

	for _, tc := range []struct {
		day   int
		clock string
	}{
		{0, "00:00"},
		{32, "00:00"},
		{1, "24:00"},
		{1, "12:100"},
		{1, "12:60"},
		{1, "1200"},
		{1, "12:00:00"},
		{1, "aa:bb"},
		{1, ""},
	} {
		assert.False(t, e.EveryMonthOn(tc.day, tc.clock), "day=%d clock=%q", tc.day, tc.clock)
	}
	assert.Equal(t, "0 12 15 * *", e.String())
}

func TestBuilders_OnMonth(t *testing.T) {
	e := cron.MustParse("* * * * *")

	assert.True(t, e.OnMonth(1, 1, "00:00"))
	assert.Equal(t, "0 0 1 1 *", e.String())

	assert.True(t, e.OnMonth(12, 25, "7:30"))
	assert.Equal(t, "30 7 25 12 *", e.String())

	assert.False(t, e.OnMonth(0, 1, "00:00"))
	assert.False(t, e.OnMonth(13, 1, "00:00"))
	assert.False(t, e.OnMonth(2, 0, "00:00"))
	assert.False(t, e.OnMonth(2, 1, "25:00"))
	assert.Equal(t, "30 7 25 12 *", e.String())
}

func TestBuilders_OnMonthNamed(t *testing.T) {
	e := cron.MustParse("* * * * *")

	assert.True(t, e.OnMonthNamed("mar", 3, "10:00"))
	assert.Equal(t, "0 10 3 3 *", e.String())

	assert.True(t, e.OnMonthNamed("DEC", 1, "10:00"))
	assert.Equal(t, "0 10 1 12 *", e.String())

	assert.True(t, e.OnMonthNamed("7", 1, "10:00"))
	assert.Equal(t, "0 10 1 7 *", e.String())

	assert.False(t, e.OnMonthNamed("march", 1, "10:00"))
	assert.False(t, e.OnMonthNamed("13", 1, "10:00"))
	assert.False(t, e.OnMonthNamed("", 1, "10:00"))
	assert.Equal(t, "0 10 1 7 *", e.String())
}

func TestBuilders_WeeklyOn(t *testing.T) {
	e := cron.MustParse("* * * * *")

	assert.True(t, e.WeeklyOn(0, "00:00"))
	assert.Equal(t, "0 0 * * 0", e.String())

	assert.True(t, e.WeeklyOn(6, "23:15"))
	assert.Equal(t, "15 23 * * 6", e.String())

	assert.False(t, e.WeeklyOn(7, "00:00"))
	assert.False(t, e.WeeklyOn(-1, "00:00"))
	assert.False(t, e.WeeklyOn(1, "24:00"))
	assert.Equal(t, "15 23 * * 6", e.String())
}

func TestBuilders_WeeklyOnNamed(t *testing.T) {
	e := cron.MustParse("* * * * *")

	assert.True(t, e.WeeklyOnNamed("mon", "08:00"))
	assert.Equal(t, "0 8 * * 1", e.String())

	assert.True(t, e.WeeklyOnNamed("Sat", "08:00"))
	assert.Equal(t, "0 8 * * 6", e.String())

	assert.True(t, e.WeeklyOnNamed("3", "08:00"))
	assert.Equal(t, "0 8 * * 3", e.String())

	assert.False(t, e.WeeklyOnNamed("monday", "08:00"))
	assert.False(t, e.WeeklyOnNamed("7", "08:00"))
	assert.Equal(t, "0 8 * * 3", e.String())
}

func TestParseClock(t *testing.T) {
	h, m, ok := cron.ParseClock("12:000")
	assert.True(t, ok)
	assert.Equal(t, 12, h)
	assert.Equal(t, 0, m)

	_, _, ok = cron.ParseClock("12:100")
	assert.False(t, ok)
}
