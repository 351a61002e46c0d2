// Package ticker drives dispatch passes from inside the process, once a minute.
package ticker

import (
	"context"
	"github.com/osmike/orbitcron/internal/domain"
	"github.com/osmike/orbitcron/internal/manager"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"sync"
)

// DEFAULT_SPEC fires at the start of every minute.
const DEFAULT_SPEC = "* * * * *"

// Config holds ticker settings.
type Config struct {
	// Spec is the robfig/cron spec the ticker fires on. Default DEFAULT_SPEC.
	// An optional leading seconds field is accepted.
	Spec string

	// OnReport, when set, receives the report of every pass.
	OnReport func(domain.Report)
}

// Ticker calls Manager.RunDueJobs on a schedule. A pass that is still running
// when the next tick fires makes that tick a no-op.
type Ticker struct {
	cron    *cron.Cron
	manager *manager.Manager
	cfg     Config
	log     *zap.Logger
	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	stopped bool
}

// New creates a stopped ticker for m.
func New(m *manager.Manager, cfg Config, log *zap.Logger) *Ticker {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Spec == "" {
		cfg.Spec = DEFAULT_SPEC
	}
	return &Ticker{
		cron:    newCron(m, log),
		manager: m,
		cfg:     cfg,
		log:     log,
	}
}

func newCron(m *manager.Manager, log *zap.Logger) *cron.Cron {
	clog := cronLogger{log: log.Sugar()}
	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	return cron.New(
		cron.WithParser(parser),
		cron.WithLocation(m.Location()),
		cron.WithLogger(clog),
		cron.WithChain(cron.Recover(clog), cron.SkipIfStillRunning(clog)),
	)
}

// Start registers the pass and starts firing. The ticker stops when ctx is cancelled.
func (t *Ticker) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started {
		return nil
	}

	t.ctx, t.cancel = context.WithCancel(ctx)
	if _, err := t.cron.AddFunc(t.cfg.Spec, t.tick); err != nil {
		t.cancel()
		return err
	}
	t.cron.Start()
	t.started = true
	t.log.Info("ticker started", zap.String("spec", t.cfg.Spec), zap.Int("jobs", t.manager.Len()))

	go func() {
		<-t.ctx.Done()
		t.Stop()
	}()
	return nil
}

// Stop stops firing and waits for a running pass to finish. Safe to call multiple times.
// A stopped ticker cannot be restarted.
func (t *Ticker) Stop() {
	t.mu.Lock()
	if !t.started || t.stopped {
		t.mu.Unlock()
		return
	}
	t.stopped = true
	t.mu.Unlock()

	<-t.cron.Stop().Done()
	t.cancel()
	t.log.Info("ticker stopped")
}

func (t *Ticker) tick() {
	report := t.manager.RunDueJobs(t.ctx, false)
	if t.cfg.OnReport != nil {
		t.cfg.OnReport(report)
	}
}

// cronLogger adapts zap to cron.Logger. cron's chatty info lines go to debug.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
