package manager

import (
	"crypto/subtle"
	"github.com/osmike/orbitcron/internal/domain"
	"github.com/osmike/orbitcron/internal/job"
	"go.uber.org/zap"
	"sync"
	"time"
)

// Manager is the registry of cron jobs and the dispatcher that runs the due ones.
//
// A process is expected to build one Manager at start-up and hand it to whatever
// drives the triggers (HTTP server, CLI tick, ticker). Dispatch passes are
// serialized, so those drivers may share a Manager.
type Manager struct {
	// mu guards the registry and the password.
	mu       sync.Mutex
	jobs     map[string]*job.Job
	order    []string
	password string

	// runMu serializes dispatch passes.
	runMu sync.Mutex

	clock    func() time.Time
	location *time.Location
	log      *zap.Logger
	mon      domain.Monitoring
}

// Option configures a Manager.
type Option func(*Manager)

// WithPassword sets the shared secret required by trigger endpoints.
func WithPassword(password string) Option {
	return func(m *Manager) { m.password = password }
}

// WithLocation sets the time zone the cron expressions are evaluated in. Default time.Local.
func WithLocation(loc *time.Location) Option {
	return func(m *Manager) {
		if loc != nil {
			m.location = loc
		}
	}
}

// WithClock replaces time.Now as the source of "now". Mostly useful in tests.
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) {
		if clock != nil {
			m.clock = clock
		}
	}
}

// WithLogger sets the structured logger. Default zap.NewNop().
func WithLogger(log *zap.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithMonitoring sets the sink that receives the state of every job after it ran.
func WithMonitoring(mon domain.Monitoring) Option {
	return func(m *Manager) { m.mon = mon }
}

// New creates an empty Manager.
func New(opts ...Option) *Manager {
	m := &Manager{
		jobs:     make(map[string]*job.Job),
		clock:    time.Now,
		location: time.Local,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetPassword replaces the shared secret. An empty value disables the check.
func (m *Manager) SetPassword(value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.password = value
}

// Password returns the shared secret; empty means no password is required.
func (m *Manager) Password() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.password
}

// CheckPassword reports whether candidate grants access to the trigger.
// Any candidate is accepted when no password is configured.
func (m *Manager) CheckPassword(candidate string) bool {
	password := m.Password()
	if password == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(candidate)) == 1
}

// Location returns the time zone expressions are evaluated in.
func (m *Manager) Location() *time.Location { return m.location }

// Now returns the current time in the manager's location.
func (m *Manager) Now() time.Time { return m.clock().In(m.location) }
