package domain

import (
	"time"
)

// StateDTO is a lightweight snapshot of a job's runtime state used for data transfer.
// It is handed to Monitoring implementations after every run and exposed through the API.
type StateDTO struct {
	// JobName is the unique name of the job the state belongs to.
	JobName string

	// Expression is the cron expression the job was evaluated against.
	Expression string

	// StartAt is the moment the last run started. Zero if the job never ran.
	StartAt time.Time

	// EndAt is the moment the last run finished. Zero while running or if never run.
	EndAt time.Time

	// Forced reports whether the last run bypassed the schedule.
	Forced bool

	// Error holds the failures recorded during the last run.
	Error StateError

	// Status is the current lifecycle status.
	Status JobStatus

	// Result is the outcome of the last run.
	Result RunResult

	// ExecutionTime is the duration of the last run in nanoseconds.
	ExecutionTime int64

	// Attributes are the execution attributes attached to the job.
	Attributes []string

	// Data stores key-value pairs saved by callbacks through FnControl.SaveData.
	Data map[string]interface{}
}

// StateError collects the errors of a single run.
//
// Only JobError affects the run result; hook errors are recorded for diagnostics
// and never change the outcome.
type StateError struct {
	// JobError is the error returned by (or the panic recovered from) the execution callback.
	JobError error

	// OnBefore is the error returned by the before hook, if any.
	OnBefore error

	// OnFailure is the error returned by the failure hook, if any.
	OnFailure error
}

// IsEmpty reports whether no error was recorded.
func (e StateError) IsEmpty() bool {
	return e.JobError == nil && e.OnBefore == nil && e.OnFailure == nil
}

// Report summarises one dispatch pass over the registry.
type Report struct {
	// TotalJobs is the number of registered jobs at the time of the pass.
	TotalJobs int

	// ExecutedJobsCount is the number of jobs that actually ran, regardless of outcome.
	ExecutedJobsCount int

	// Succeeded lists, in registration order, the names of jobs that ran and succeeded.
	Succeeded []string

	// Failed lists, in registration order, the names of jobs that ran and failed.
	Failed []string

	// StartedAt is when the pass began.
	StartedAt time.Time

	// Duration is the wall time of the whole pass.
	Duration time.Duration
}
