// Example: orbitcron + zap structured logging.
// Demonstrates hooks that log around a flaky job, driven by forced passes.

package main

import (
	"context"
	"errors"
	"github.com/osmike/orbitcron"
	"go.uber.org/zap"
	"math/rand"
	"time"
)

var logger *zap.Logger

func main() {
	// Development config for human-readable output.
	logger, _ = zap.NewDevelopment()
	defer logger.Sync()

	m := orbitcron.New(orbitcron.WithLogger(logger))

	job, err := orbitcron.NewJob("*/5 * * * *")
	if err != nil {
		logger.Fatal("Failed to create job", zap.Error(err))
	}
	job.SetName("loggable_job")
	job.AddExecutionAttribute("demo")
	job.SetOnBefore(logBefore)
	job.SetOnExecution(runWithLogging, 0.3)
	job.SetOnFailure(logFailure)

	if err := m.ScheduleJob(job); err != nil {
		logger.Fatal("Failed to schedule job", zap.Error(err))
	}

	// A real deployment triggers once a minute; force a few passes instead.
	for i := 0; i < 5; i++ {
		report := m.RunDueJobs(context.Background(), true)
		logger.Info("Pass done", zap.Int("executed", report.ExecutedJobsCount), zap.Strings("failed", report.Failed))
		time.Sleep(500 * time.Millisecond)
	}
}

func runWithLogging(ctrl orbitcron.FnControl, args ...any) error {
	failRate := args[0].(float64)
	logger.Info("Job execution started", zap.String("job", ctrl.JobName()), zap.Any("started", ctrl.GetData()["started"]))
	time.Sleep(time.Duration(rand.Intn(300)+100) * time.Millisecond)
	if rand.Float64() < failRate {
		return errors.New("simulated job failure")
	}
	return nil
}

func logBefore(ctrl orbitcron.FnControl, _ error, _ ...any) error {
	logger.Info("Before hook executed", zap.Strings("attributes", ctrl.Attributes()))
	ctrl.SaveData(map[string]interface{}{"started": time.Now().Format(time.RFC3339)})
	return nil
}

func logFailure(ctrl orbitcron.FnControl, execErr error, _ ...any) error {
	logger.Error("Job failed", zap.String("job", ctrl.JobName()), zap.Error(execErr))
	return nil
}
