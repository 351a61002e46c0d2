// Package orbitcron schedules jobs with five-field cron expressions and runs the due ones
// whenever an external trigger fires.
//
// The process owns one Manager. Something outside the manager calls RunDueJobs at least
// once a minute: the HTTP trigger endpoint, the built-in ticker, or "orbitcron tick"
// from a system scheduler. Every pass evaluates each registered job against the current
// minute and runs the ones whose expression matches.
//
// Features:
//   - Standard cron syntax with wildcards, steps (*/N), lists, ranges and month/day names.
//   - Expression builders (DailyAt, WeeklyOn, OnMonth, ...) that never leave a half-updated schedule.
//   - Per-job before and failure hooks whose own failures never change the job outcome.
//   - Execution attributes passed to callbacks and to command jobs.
//   - A password-protected trigger and a forced mode that ignores schedules.
//   - Pluggable monitoring: in-memory, Prometheus and SQLite run history.
//
// Example usage:
//
//	m := orbitcron.New(orbitcron.WithPassword("s3cret"))
//
//	j, _ := orbitcron.NewJob("0 3 * * *")
//	j.SetName("backup")
//	j.SetOnExecution(func(ctrl orbitcron.FnControl, args ...any) error {
//		ctrl.SaveData(map[string]interface{}{"target": args[0]})
//		return runBackup(ctrl.Context(), args[0].(string))
//	}, "/var/lib/app")
//	j.SetOnFailure(func(ctrl orbitcron.FnControl, err error, args ...any) error {
//		return alert(ctrl.JobName(), err)
//	})
//	_ = m.ScheduleJob(j)
//
//	report := m.RunDueJobs(ctx, false)
package orbitcron

import (
	"github.com/osmike/orbitcron/internal/cron"
	"github.com/osmike/orbitcron/internal/domain"
	errs "github.com/osmike/orbitcron/internal/error"
	"github.com/osmike/orbitcron/internal/job"
	"github.com/osmike/orbitcron/internal/manager"
	"github.com/osmike/orbitcron/internal/monitoring"
)

// Manager is the job registry and dispatcher.
//
// Methods:
//   - CreateJob / ScheduleJob: register jobs under unique names.
//   - GetJob / RemoveJob / RenameJob / Jobs: inspect and edit the registry.
//   - RunDueJobs: run every due job (or every job when forced) and report the counts.
//   - RunJob: run a single job by name.
//   - SetPassword / CheckPassword: guard the trigger.
type Manager = manager.Manager

// Option configures a Manager, see WithPassword, WithLocation, WithClock, WithLogger and WithMonitoring.
type Option = manager.Option

// Job binds a cron expression to an execution callback, hooks and attributes.
type Job = job.Job

// Expression is a parsed five-field cron expression.
type Expression = cron.Expression

// Field is one parsed field of an Expression.
type Field = cron.Field

// Report summarises one dispatch pass.
//
// Parameters:
//   - TotalJobs: registered jobs at the time of the pass.
//   - ExecutedJobsCount: jobs that ran, successful or not.
//   - Succeeded / Failed: names of the jobs that ran, by outcome.
type Report = domain.Report

// FnControl is handed to every callback. It exposes the run context, the job name,
// the execution attributes and a per-run data store.
type FnControl = domain.FnControl

// Fn is an execution callback. Returning a non-nil error or panicking fails the run.
// args are the values bound with SetOnExecution.
type Fn = domain.Fn

// HookFn is a before or failure hook. err is nil for the before hook and the execution
// failure for the failure hook. Errors and panics of hooks are recorded but never change
// the run result.
type HookFn = domain.HookFn

// JobState is a snapshot of a job: identity, last run timing, result, errors and saved data.
type JobState = domain.StateDTO

// JobStatus is the lifecycle status of a job (waiting, running, completed, error).
type JobStatus = domain.JobStatus

// RunResult is the outcome of the last run: unknown (never ran), succeeded or failed.
type RunResult = domain.RunResult

// Monitoring receives the state of every job right after it ran.
type Monitoring = domain.Monitoring

// ExpressionError is returned for expressions that do not satisfy the cron grammar.
type ExpressionError = errs.ExpressionError

const (
	Waiting   = domain.Waiting
	Running   = domain.Running
	Completed = domain.Completed
	Error     = domain.Error

	Unknown   = domain.Unknown
	Succeeded = domain.Succeeded
	Failed    = domain.Failed
)

var (
	ErrInvalidCronExpression = errs.ErrInvalidCronExpression
	ErrNoNextRun             = errs.ErrNoNextRun
	ErrNilJob                = errs.ErrNilJob
	ErrJobExists             = errs.ErrJobExists
	ErrJobNotFound           = errs.ErrJobNotFound
	ErrJobRegistered         = errs.ErrJobRegistered
	ErrInvalidName           = errs.ErrInvalidName
	ErrJobFailed             = errs.ErrJobFailed
	ErrJobPanicked           = errs.ErrJobPanicked
)

var (
	WithPassword   = manager.WithPassword
	WithLocation   = manager.WithLocation
	WithClock      = manager.WithClock
	WithLogger     = manager.WithLogger
	WithMonitoring = manager.WithMonitoring
)

// New creates an empty Manager.
func New(opts ...Option) *Manager {
	return manager.New(opts...)
}

// NewJob creates a job named DEFAULT_JOB_NAME that runs a no-op on the given schedule.
//
// Returns:
//   - An *ExpressionError if the expression is invalid; no job is created then.
func NewJob(expression string) (*Job, error) {
	return job.New(expression)
}

// DefaultJob returns a no-op job running every minute.
func DefaultJob() *Job {
	return job.Default()
}

// ParseExpression parses a five-field cron expression.
func ParseExpression(raw string) (*Expression, error) {
	return cron.Parse(raw)
}

// NewMemoryMonitor returns an in-memory Monitoring that keeps the latest state per job.
func NewMemoryMonitor() *monitoring.Memory {
	return monitoring.New()
}
