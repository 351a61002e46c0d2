package domain

// JobStatus represents the current execution state of a cron job.
//
// A job starts in Waiting, moves to Running while its hooks execute and ends
// the pass in either Completed or Error. Jobs that were evaluated but not due
// stay in whatever status the previous pass left them in.
type JobStatus string

const (
	// Waiting indicates the job is registered and has not run yet.
	Waiting JobStatus = "waiting"

	// Running indicates the job's before hook or execution callback is executing.
	Running JobStatus = "running"

	// Completed indicates the last run finished successfully.
	Completed JobStatus = "completed"

	// Error indicates the last run failed, either because the execution callback
	// returned an error or because it panicked.
	Error JobStatus = "error"
)

// RunResult is the tri-state outcome of the most recent run of a job.
type RunResult int

const (
	// Unknown means the job has never actually run.
	Unknown RunResult = iota
	// Succeeded means the last run completed without error.
	Succeeded
	// Failed means the last run returned an error or panicked.
	Failed
)

// String returns a lowercase label suitable for logs and JSON payloads.
func (r RunResult) String() string {
	switch r {
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

const (
	// DEFAULT_JOB_NAME is assigned to jobs created without a usable name.
	DEFAULT_JOB_NAME = "CRON-JOB"

	// DEFAULT_EXPRESSION matches every minute.
	DEFAULT_EXPRESSION = "* * * * *"

	// FORBIDDEN_ATTRIBUTE_CHARS lists the characters an execution attribute may not contain.
	// Attributes travel as query-style tokens, so URL delimiters are rejected.
	FORBIDDEN_ATTRIBUTE_CHARS = "&#=?"
)
