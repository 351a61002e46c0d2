package domain

import "context"

// FnControl gives job callbacks access to the run they are part of.
type FnControl interface {
	// Context returns the context the dispatch pass was started with.
	Context() context.Context

	// JobName returns the name of the job being run.
	JobName() string

	// Attributes returns a copy of the job's execution attributes.
	Attributes() []string

	// SaveData stores arbitrary key-value pairs in the job state.
	// The data is visible to later callbacks of the same run and to monitoring.
	SaveData(data map[string]interface{})

	// GetData returns a copy of the data saved so far.
	GetData() map[string]interface{}
}

// Fn is the execution callback of a job.
//
// args are the extra arguments bound when the callback was registered.
// A nil return marks the run as succeeded; any error marks it as failed.
type Fn func(ctrl FnControl, args ...any) error

// HookFn is the signature of the before and failure hooks.
//
// err is nil for the before hook and carries the execution failure for the failure hook.
// Whatever a hook returns is discarded by the job; it is only logged.
type HookFn func(ctrl FnControl, err error, args ...any) error
