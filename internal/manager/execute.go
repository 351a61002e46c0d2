package manager

import (
	"context"
	"github.com/osmike/orbitcron/internal/domain"
	"github.com/osmike/orbitcron/internal/job"
	"go.uber.org/zap"
	"time"
)

// RunDueJobs performs one dispatch pass over every registered job.
//
// Execution flow:
//  1. Snapshots the registry in registration order.
//  2. For each job samples "now" in the manager's location and calls ExecuteAt,
//     which runs the job only if it is due (or always, when force is true).
//  3. Hands the state of every job that ran to monitoring and logs the outcome.
//
// No job is retried or removed; a failing job never stops the pass.
//
// Returns:
//   - A Report with TotalJobs and ExecutedJobsCount (jobs that ran, successful or not).
func (m *Manager) RunDueJobs(ctx context.Context, force bool) domain.Report {
	m.runMu.Lock()
	defer m.runMu.Unlock()

	jobs := m.Jobs()
	report := domain.Report{
		TotalJobs: len(jobs),
		StartedAt: m.Now(),
	}
	started := time.Now()

	for _, j := range jobs {
		st, ran := m.run(ctx, j, force)
		if !ran {
			continue
		}
		report.ExecutedJobsCount++
		if st.Result == domain.Succeeded {
			report.Succeeded = append(report.Succeeded, st.JobName)
		} else {
			report.Failed = append(report.Failed, st.JobName)
		}
	}
	report.Duration = time.Since(started)

	m.log.Info("cron pass finished",
		zap.Int("total", report.TotalJobs),
		zap.Int("executed", report.ExecutedJobsCount),
		zap.Int("failed", len(report.Failed)),
		zap.Bool("force", force),
		zap.Duration("duration", report.Duration),
	)
	return report
}

// RunJob runs a single registered job, honoring its schedule unless force is true.
//
// Returns:
//   - Whether the job ran.
//   - The result of this run, or Unknown if the job did not run.
//   - ErrJobNotFound if no job is registered under name.
func (m *Manager) RunJob(ctx context.Context, name string, force bool) (bool, domain.RunResult, error) {
	j, err := m.GetJob(name)
	if err != nil {
		return false, domain.Unknown, err
	}

	m.runMu.Lock()
	defer m.runMu.Unlock()
	st, ran := m.run(ctx, j, force)
	if !ran {
		return false, domain.Unknown, nil
	}
	return true, st.Result, nil
}

// run executes one job and returns the state snapshot taken right after it. Must be called with runMu held.
func (m *Manager) run(ctx context.Context, j *job.Job, force bool) (domain.StateDTO, bool) {
	if !j.ExecuteAt(ctx, m.Now(), force) {
		return domain.StateDTO{}, false
	}

	st := j.State()
	if m.mon != nil {
		m.mon.SaveMetrics(st)
	}

	fields := []zap.Field{
		zap.String("job", st.JobName),
		zap.String("expression", st.Expression),
		zap.Bool("forced", st.Forced),
		zap.Bool("success", st.Result == domain.Succeeded),
		zap.Duration("duration", time.Duration(st.ExecutionTime)),
	}
	if st.Error.OnBefore != nil {
		m.log.Warn("before hook failed", zap.String("job", st.JobName), zap.Error(st.Error.OnBefore))
	}
	if st.Error.OnFailure != nil {
		m.log.Warn("failure hook failed", zap.String("job", st.JobName), zap.Error(st.Error.OnFailure))
	}
	if st.Error.JobError != nil {
		m.log.Error("job failed", append(fields, zap.Error(st.Error.JobError))...)
	} else {
		m.log.Info("job executed", fields...)
	}
	return st, true
}
