package main

import (
	"fmt"
	"github.com/osmike/orbitcron/internal/config"
	"github.com/osmike/orbitcron/internal/domain"
	"github.com/osmike/orbitcron/internal/logger"
	"github.com/osmike/orbitcron/internal/manager"
	"github.com/osmike/orbitcron/internal/monitoring"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// app is everything a command needs, built from the configuration.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	manager  *manager.Manager
	memory   *monitoring.Memory
	registry *prometheus.Registry
	history  *monitoring.History
}

func newApp(opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log, memory: monitoring.New()}
	mon := monitoring.Multi{a.memory}

	if cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
		mon = append(mon, monitoring.NewPrometheus(a.registry))
	}
	if cfg.History.Path != "" {
		a.history, err = monitoring.NewHistory(cfg.History.Path, log)
		if err != nil {
			return nil, err
		}
		mon = append(mon, a.history)
	}

	a.manager = manager.New(
		manager.WithPassword(cfg.Password),
		manager.WithLocation(loc),
		manager.WithLogger(log),
		manager.WithMonitoring(mon),
	)

	jobs, err := cfg.AllJobs()
	if err != nil {
		a.close()
		return nil, err
	}
	if err := config.Register(a.manager, jobs); err != nil {
		a.close()
		return nil, fmt.Errorf("register jobs: %w", err)
	}
	log.Debug("configuration loaded", zap.Int("jobs", a.manager.Len()), zap.String("timezone", loc.String()))
	return a, nil
}

// reportFields flattens a report for logs.
func reportFields(r domain.Report) []zap.Field {
	return []zap.Field{
		zap.Int("total", r.TotalJobs),
		zap.Int("executed", r.ExecutedJobsCount),
		zap.Strings("failed", r.Failed),
	}
}

func (a *app) close() {
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			a.log.Warn("close history", zap.Error(err))
		}
	}
	_ = a.log.Sync()
}
