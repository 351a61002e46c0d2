package job

import (
	"github.com/osmike/orbitcron/internal/cron"
	"time"
)

// Expression returns a copy of the job's cron expression.
func (j *Job) Expression() *cron.Expression {
	j.mu.Lock()
	defer j.mu.Unlock()
	return cron.MustParse(j.expr.String())
}

// ExpressionString returns the cron expression text.
func (j *Job) ExpressionString() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.expr.String()
}

// SetExpression replaces the schedule. On error the previous schedule is kept.
func (j *Job) SetExpression(expression string) error {
	expr, err := cron.Parse(expression)
	if err != nil {
		return err
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.expr = expr
	return nil
}

// NextRun returns the next time after now at which the job is due.
func (j *Job) NextRun() (time.Time, error) {
	now := j.now()
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.expr.Next(now)
}

func (j *Job) IsMinute() bool     { return j.matchNow((*cron.Expression).IsMinute) }
func (j *Job) IsHour() bool       { return j.matchNow((*cron.Expression).IsHour) }
func (j *Job) IsDayOfMonth() bool { return j.matchNow((*cron.Expression).IsDayOfMonth) }
func (j *Job) IsMonth() bool      { return j.matchNow((*cron.Expression).IsMonth) }
func (j *Job) IsDayOfWeek() bool  { return j.matchNow((*cron.Expression).IsDayOfWeek) }

// IsTime reports whether the job is due right now.
func (j *Job) IsTime() bool { return j.matchNow((*cron.Expression).IsDue) }

func (j *Job) matchNow(pred func(*cron.Expression, time.Time) bool) bool {
	now := j.now()
	j.mu.Lock()
	defer j.mu.Unlock()
	return pred(j.expr, now)
}

// EveryHour, DailyAt, EveryMonthOn, OnMonth, OnMonthNamed, WeeklyOn and WeeklyOnNamed
// reschedule the job, see the cron.Expression builders of the same name.

func (j *Job) EveryHour() bool {
	return j.build(func(e *cron.Expression) bool { return e.EveryHour() })
}

func (j *Job) DailyAt(hour, minute int) bool {
	return j.build(func(e *cron.Expression) bool { return e.DailyAt(hour, minute) })
}

func (j *Job) EveryMonthOn(day int, clock string) bool {
	return j.build(func(e *cron.Expression) bool { return e.EveryMonthOn(day, clock) })
}

func (j *Job) OnMonth(month, day int, clock string) bool {
	return j.build(func(e *cron.Expression) bool { return e.OnMonth(month, day, clock) })
}

func (j *Job) OnMonthNamed(month string, day int, clock string) bool {
	return j.build(func(e *cron.Expression) bool { return e.OnMonthNamed(month, day, clock) })
}

func (j *Job) WeeklyOn(dayOfWeek int, clock string) bool {
	return j.build(func(e *cron.Expression) bool { return e.WeeklyOn(dayOfWeek, clock) })
}

func (j *Job) WeeklyOnNamed(dayOfWeek string, clock string) bool {
	return j.build(func(e *cron.Expression) bool { return e.WeeklyOnNamed(dayOfWeek, clock) })
}

func (j *Job) build(fn func(e *cron.Expression) bool) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return fn(j.expr)
}
