package job

import (
	"github.com/osmike/orbitcron/internal/cron"
	"github.com/osmike/orbitcron/internal/domain"
	"strings"
	"sync"
	"time"
)

// Job binds a cron expression to executable behavior and tracks the outcome of its last run.
type Job struct {
	// mu guards the configuration fields below. It is never held while callbacks run,
	// so callbacks may freely call back into the job.
	mu sync.Mutex

	name       string
	expr       *cron.Expression
	exec       domain.Callback
	hooks      domain.Hooks
	attributes []string

	// registered is set while a manager holds the job under its name.
	registered bool

	// clock supplies "now" for Execute and the Is* predicates.
	clock func() time.Time

	// state holds the runtime execution details, including status, timing and errors.
	state *state
}

// New initializes a new Job scheduled by the given cron expression.
//
// The job is named DEFAULT_JOB_NAME and executes a no-op until SetName and
// SetOnExecution are called.
//
// Parameters:
//   - expression: five-field cron expression, see cron.Parse.
//
// Returns:
//   - A pointer to the initialized Job.
//   - An *errs.ExpressionError if the expression is invalid; no job is created then.
func New(expression string) (*Job, error) {
	expr, err := cron.Parse(expression)
	if err != nil {
		return nil, err
	}
	return &Job{
		name:  domain.DEFAULT_JOB_NAME,
		expr:  expr,
		clock: time.Now,
		state: newState(),
	}, nil
}

// Default returns a job that runs every minute ("* * * * *") and does nothing.
func Default() *Job {
	j, err := New(domain.DEFAULT_EXPRESSION)
	if err != nil {
		panic(err)
	}
	return j
}

// Name returns the job name.
func (j *Job) Name() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.name
}

// SetName trims value and uses it as the job name.
// A blank value leaves the previous name in place and returns false.
// A registered job keeps its name; rename it through the manager instead.
func (j *Job) SetName(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.registered {
		return false
	}
	j.name = value
	return true
}

// Claim marks the job as registered and returns its name, which is frozen until Release.
// It returns false if the job is already registered.
func (j *Job) Claim() (string, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.registered {
		return j.name, false
	}
	j.registered = true
	return j.name, true
}

// Release unfreezes the name of a job dropped from its registry.
func (j *Job) Release() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.registered = false
}

// IsRegistered reports whether a manager currently holds the job.
func (j *Job) IsRegistered() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.registered
}

// SetClock replaces the source of "now" used by Execute and the Is* predicates.
// A nil clock restores time.Now.
func (j *Job) SetClock(clock func() time.Time) {
	if clock == nil {
		clock = time.Now
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.clock = clock
}

func (j *Job) now() time.Time {
	j.mu.Lock()
	clock := j.clock
	j.mu.Unlock()
	return clock()
}

// SetOnExecution registers the execution callback and the extra arguments it is called with.
// A nil fn restores the default no-op.
func (j *Job) SetOnExecution(fn domain.Fn, args ...any) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.exec = domain.Callback{Fn: fn, Args: args}
}

// SetOnBefore registers the hook that runs before every execution. A nil fn removes it.
func (j *Job) SetOnBefore(fn domain.HookFn, args ...any) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.hooks.OnBefore = domain.Hook{Fn: fn, Args: args}
}

// SetOnFailure registers the hook that runs after a failed execution. A nil fn removes it.
func (j *Job) SetOnFailure(fn domain.HookFn, args ...any) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.hooks.OnFailure = domain.Hook{Fn: fn, Args: args}
}

// ExecutionAttributes returns a copy of the attributes in insertion order.
func (j *Job) ExecutionAttributes() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]string, len(j.attributes))
	copy(out, j.attributes)
	return out
}

// IsSuccess reports whether the last run succeeded. False if the job never ran.
func (j *Job) IsSuccess() bool {
	return j.state.GetResult() == domain.Succeeded
}

// LastRun returns the tri-state outcome of the last run.
func (j *Job) LastRun() domain.RunResult {
	return j.state.GetResult()
}

// Status returns the current lifecycle status.
func (j *Job) Status() domain.JobStatus {
	return j.state.GetStatus()
}

// State returns a snapshot of the runtime state enriched with the job's identity.
func (j *Job) State() domain.StateDTO {
	dto := j.state.snapshot()
	j.mu.Lock()
	defer j.mu.Unlock()
	dto.JobName = j.name
	dto.Expression = j.expr.String()
	dto.Attributes = append([]string(nil), j.attributes...)
	return dto
}
