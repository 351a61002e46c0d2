package job

import (
	"context"
	"fmt"
	"github.com/osmike/orbitcron/internal/domain"
	errs "github.com/osmike/orbitcron/internal/error"
	"time"
)

// Execute runs the job if it is due now, or unconditionally when force is true.
// See ExecuteAt.
func (j *Job) Execute(ctx context.Context, force bool) bool {
	return j.ExecuteAt(ctx, j.now(), force)
}

// ExecuteAt runs the job if its expression is due at now, or unconditionally when force is true.
//
// This function follows these steps:
//  1. Skips the run (returning false, state untouched) when the job is not due and not forced.
//  2. Runs the OnBefore hook. Its error or panic is recorded and discarded.
//  3. Runs the execution callback. A returned error or a panic fails the run.
//  4. Records the outcome, so IsSuccess reflects this run.
//  5. On failure runs the OnFailure hook. Its error or panic is recorded and discarded.
//
// Returns:
//   - true if the job ran (due or forced), regardless of success; false if it was skipped.
func (j *Job) ExecuteAt(ctx context.Context, now time.Time, force bool) bool {
	j.mu.Lock()
	due := j.expr.IsDue(now)
	name := j.name
	exec := j.exec
	hooks := j.hooks
	attributes := append([]string(nil), j.attributes...)
	j.mu.Unlock()

	if !due && !force {
		return false
	}

	ctrl := newControl(ctx, name, attributes, j.state)
	j.state.start(time.Now(), force && !due)

	if err := runHook(hooks.OnBefore, ctrl, nil); err != nil {
		j.state.setBeforeErr(errs.New(errs.ErrOnBeforeHook, fmt.Sprintf("job: %s, error: %v", name, err)))
	}

	execErr := runExec(exec, ctrl)
	j.state.finish(execErr)

	if execErr != nil {
		if err := runHook(hooks.OnFailure, ctrl, execErr); err != nil {
			j.state.setFailureErr(errs.New(errs.ErrOnFailure, fmt.Sprintf("job: %s, error: %v", name, err)))
		}
	}
	return true
}

// runExec invokes the execution callback, converting a panic into an error.
func runExec(cb domain.Callback, ctrl domain.FnControl) (err error) {
	if cb.Fn == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = errs.New(errs.ErrJobPanicked, fmt.Sprint(r))
		}
	}()
	return cb.Fn(ctrl, cb.Args...)
}

// runHook invokes a hook and returns whatever it returned or panicked with.
func runHook(hook domain.Hook, ctrl domain.FnControl, execErr error) (err error) {
	if hook.Fn == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return hook.Fn(ctrl, execErr, hook.Args...)
}
