package manager

import (
	"github.com/osmike/orbitcron/internal/domain"
	errs "github.com/osmike/orbitcron/internal/error"
	"github.com/osmike/orbitcron/internal/job"
	"go.uber.org/zap"
	"strings"
)

// CreateJob builds a job from an expression, a name and an execution callback, and registers it.
//
// Parameters:
//   - expression: five-field cron expression.
//   - name: unique job name; blank falls back to DEFAULT_JOB_NAME.
//   - fn: execution callback, nil for a no-op.
//   - args: extra arguments bound to fn.
//
// Returns:
//   - The registered job.
//   - An *errs.ExpressionError for an invalid expression, or ErrJobExists for a taken name.
func (m *Manager) CreateJob(expression, name string, fn domain.Fn, args ...any) (*job.Job, error) {
	j, err := job.New(expression)
	if err != nil {
		return nil, err
	}
	j.SetName(name)
	j.SetOnExecution(fn, args...)
	if err := m.ScheduleJob(j); err != nil {
		return nil, err
	}
	return j, nil
}

// ScheduleJob registers an existing job under its current name.
// Once registered, the job name can only change through RenameJob.
//
// The method performs the following validations:
//   - The job is not nil.
//   - The job is not already held by a manager.
//   - The job name is unique within the manager; existing jobs are never overwritten.
//
// Returns:
//   - An error (ErrNilJob, ErrJobRegistered, ErrJobExists) if validation fails.
//   - nil if the job is successfully registered.
func (m *Manager) ScheduleJob(j *job.Job) error {
	if j == nil {
		return errs.ErrNilJob
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	name, ok := j.Claim()
	if !ok {
		return errs.New(errs.ErrJobRegistered, name)
	}
	if _, taken := m.jobs[name]; taken {
		j.Release()
		return errs.New(errs.ErrJobExists, name)
	}
	m.jobs[name] = j
	m.order = append(m.order, name)

	m.log.Debug("job scheduled",
		zap.String("job", name),
		zap.String("expression", j.ExpressionString()),
	)
	return nil
}

// GetJob returns the job registered under name, or ErrJobNotFound.
func (m *Manager) GetJob(name string) (*job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[strings.TrimSpace(name)]
	if !ok {
		return nil, errs.New(errs.ErrJobNotFound, name)
	}
	return j, nil
}

// RemoveJob deletes a job from the registry. A job that is currently running finishes its run.
//
// Returns:
//   - An error (ErrJobNotFound) if the specified job does not exist.
func (m *Manager) RemoveJob(name string) error {
	name = strings.TrimSpace(name)

	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[name]
	if !ok {
		return errs.New(errs.ErrJobNotFound, name)
	}
	j.Release()
	delete(m.jobs, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// RenameJob moves a registered job to a new name, keeping its place in registration order.
//
// Returns:
//   - ErrInvalidName if the new name is blank.
//   - ErrJobNotFound if no job is registered under oldName.
//   - ErrJobExists if newName is held by another job.
func (m *Manager) RenameJob(oldName, newName string) error {
	oldName = strings.TrimSpace(oldName)
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return errs.New(errs.ErrInvalidName, "blank name")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[oldName]
	if !ok {
		return errs.New(errs.ErrJobNotFound, oldName)
	}
	if oldName == newName {
		return nil
	}
	if _, taken := m.jobs[newName]; taken {
		return errs.New(errs.ErrJobExists, newName)
	}

	j.Release()
	j.SetName(newName)
	j.Claim()
	delete(m.jobs, oldName)
	m.jobs[newName] = j
	for i, n := range m.order {
		if n == oldName {
			m.order[i] = newName
			break
		}
	}

	m.log.Debug("job renamed",
		zap.String("from", oldName),
		zap.String("job", newName),
	)
	return nil
}

// Jobs returns the registered jobs in registration order.
func (m *Manager) Jobs() []*job.Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*job.Job, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.jobs[name])
	}
	return out
}

// Len returns the number of registered jobs.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.order)
}
