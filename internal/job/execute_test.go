package job

import (
	"context"
	"errors"
	"github.com/osmike/orbitcron/internal/domain"
	errs "github.com/osmike/orbitcron/internal/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

// at10_15 is a Wednesday morning.
var at10_15 = time.Date(2025, time.March, 5, 10, 15, 0, 0, time.UTC)

func newExecutableJob(t *testing.T, expression string, fn domain.Fn, args ...any) *Job {
	j, err := New(expression)
	require.NoError(t, err)
	j.SetName("exec-job")
	j.SetClock(fixedClock(at10_15))
	j.SetOnExecution(fn, args...)
	return j
}

func TestJob_Execute_Success(t *testing.T) {
	var beforeCalled, failureCalled bool
	var gotArgs []any

	j := newExecutableJob(t, "* * * * *", func(ctrl domain.FnControl, args ...any) error {
		gotArgs = args
		return nil
	}, "a", 2)
	j.SetOnBefore(func(ctrl domain.FnControl, err error, args ...any) error {
		beforeCalled = true
		assert.NoError(t, err)
		return nil
	})
	j.SetOnFailure(func(ctrl domain.FnControl, err error, args ...any) error {
		failureCalled = true
		return nil
	})

	assert.True(t, j.Execute(context.Background(), false))
	assert.True(t, beforeCalled)
	assert.False(t, failureCalled)
	assert.Equal(t, []any{"a", 2}, gotArgs)
	assert.True(t, j.IsSuccess())
	assert.Equal(t, domain.Succeeded, j.LastRun())
	assert.Equal(t, domain.Completed, j.Status())

	st := j.State()
	assert.False(t, st.StartAt.IsZero())
	assert.False(t, st.EndAt.IsZero())
	assert.False(t, st.Forced)
}

func TestJob_Execute_NilFnIsNoop(t *testing.T) {
	j := newExecutableJob(t, "* * * * *", nil)
	assert.True(t, j.Execute(context.Background(), false))
	assert.True(t, j.IsSuccess())
}

func TestJob_Execute_ReturnsErrorFails(t *testing.T) {
	var failureErr error
	var failureArgs []any

	j := newExecutableJob(t, "* * * * *", func(ctrl domain.FnControl, args ...any) error {
		return errs.ErrJobFailed
	})
	j.SetOnFailure(func(ctrl domain.FnControl, err error, args ...any) error {
		failureErr = err
		failureArgs = args
		return nil
	}, "notify")

	assert.True(t, j.Execute(context.Background(), false), "a failed job still ran")
	assert.False(t, j.IsSuccess())
	assert.Equal(t, domain.Failed, j.LastRun())
	assert.Equal(t, domain.Error, j.Status())
	assert.ErrorIs(t, failureErr, errs.ErrJobFailed)
	assert.Equal(t, []any{"notify"}, failureArgs)
	assert.ErrorIs(t, j.State().Error.JobError, errs.ErrJobFailed)
}

func TestJob_Execute_PanicFails(t *testing.T) {
	var failureErr error

	j := newExecutableJob(t, "* * * * *", func(ctrl domain.FnControl, args ...any) error {
		panic("boom")
	})
	j.SetOnFailure(func(ctrl domain.FnControl, err error, args ...any) error {
		failureErr = err
		return nil
	})

	assert.NotPanics(t, func() {
		assert.True(t, j.Execute(context.Background(), false))
	})
	assert.False(t, j.IsSuccess())
	assert.ErrorIs(t, failureErr, errs.ErrJobPanicked)
	assert.Contains(t, failureErr.Error(), "boom")
}

func TestJob_Execute_BeforeHookFailureDoesNotBlock(t *testing.T) {
	for name, hook := range map[string]domain.HookFn{
		"error": func(ctrl domain.FnControl, err error, args ...any) error { return errors.New("before failed") },
		"panic": func(ctrl domain.FnControl, err error, args ...any) error { panic("before panicked") },
	} {
		t.Run(name, func(t *testing.T) {
			executed := false
			j := newExecutableJob(t, "* * * * *", func(ctrl domain.FnControl, args ...any) error {
				executed = true
				return nil
			})
			j.SetOnBefore(hook)

			assert.True(t, j.Execute(context.Background(), false))
			assert.True(t, executed)
			assert.True(t, j.IsSuccess())
			assert.ErrorIs(t, j.State().Error.OnBefore, errs.ErrOnBeforeHook)
		})
	}
}

func TestJob_Execute_FailureHookFailureIsSwallowed(t *testing.T) {
	for name, hook := range map[string]domain.HookFn{
		"error": func(ctrl domain.FnControl, err error, args ...any) error { return errors.New("hook failed") },
		"panic": func(ctrl domain.FnControl, err error, args ...any) error { panic("hook panicked") },
	} {
		t.Run(name, func(t *testing.T) {
			j := newExecutableJob(t, "* * * * *", func(ctrl domain.FnControl, args ...any) error {
				return errors.New("exec failed")
			})
			j.SetOnFailure(hook)

			assert.NotPanics(t, func() {
				assert.True(t, j.Execute(context.Background(), false))
			})
			assert.False(t, j.IsSuccess())
			assert.ErrorIs(t, j.State().Error.OnFailure, errs.ErrOnFailure)
		})
	}
}

func TestJob_Execute_NotDueIsSkipped(t *testing.T) {
	executed := false
	j := newExecutableJob(t, "* * * * *", func(ctrl domain.FnControl, args ...any) error {
		executed = true
		return nil
	})
	require.True(t, j.DailyAt(23, 0))

	assert.False(t, j.Execute(context.Background(), false))
	assert.False(t, executed)
	assert.False(t, j.IsSuccess())
	assert.Equal(t, domain.Unknown, j.LastRun())
	assert.Equal(t, domain.Waiting, j.Status())

	assert.True(t, j.Execute(context.Background(), true))
	assert.True(t, executed)
	assert.True(t, j.IsSuccess())
	assert.True(t, j.State().Forced)
}

func TestJob_Execute_SkipKeepsPreviousResult(t *testing.T) {
	j := newExecutableJob(t, "15 10 * * *", func(ctrl domain.FnControl, args ...any) error {
		return errors.New("nope")
	})

	assert.True(t, j.ExecuteAt(context.Background(), at10_15, false))
	assert.Equal(t, domain.Failed, j.LastRun())

	assert.False(t, j.ExecuteAt(context.Background(), at10_15.Add(time.Minute), false))
	assert.Equal(t, domain.Failed, j.LastRun())
}

func TestJob_Execute_SecondRunOverwritesResult(t *testing.T) {
	fail := true
	j := newExecutableJob(t, "* * * * *", func(ctrl domain.FnControl, args ...any) error {
		if fail {
			return errors.New("first run fails")
		}
		return nil
	})

	j.Execute(context.Background(), false)
	assert.False(t, j.IsSuccess())

	fail = false
	j.Execute(context.Background(), false)
	assert.True(t, j.IsSuccess())
	assert.True(t, j.State().Error.IsEmpty())
}

func TestJob_Execute_ControlExposesRun(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "value")

	j := newExecutableJob(t, "* * * * *", func(ctrl domain.FnControl, args ...any) error {
		assert.Equal(t, "exec-job", ctrl.JobName())
		assert.Equal(t, []string{"nightly"}, ctrl.Attributes())
		assert.Equal(t, "value", ctrl.Context().Value(ctxKey{}))
		assert.Equal(t, "before", ctrl.GetData()["stage"])
		ctrl.SaveData(map[string]interface{}{"rows": 42})
		return nil
	})
	j.AddExecutionAttribute("nightly")
	j.SetOnBefore(func(ctrl domain.FnControl, err error, args ...any) error {
		ctrl.SaveData(map[string]interface{}{"stage": "before"})
		return nil
	})

	require.True(t, j.Execute(ctx, false))
	st := j.State()
	assert.Equal(t, 42, st.Data["rows"])
	assert.Equal(t, "before", st.Data["stage"])
}

func TestJob_Execute_CallbackMayUseJob(t *testing.T) {
	var j *Job
	j = newExecutableJob(t, "* * * * *", func(ctrl domain.FnControl, args ...any) error {
		// must not deadlock
		_ = j.Name()
		_ = j.ExpressionString()
		return nil
	})
	assert.True(t, j.Execute(context.Background(), false))
}
