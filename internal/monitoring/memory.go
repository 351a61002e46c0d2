package monitoring

import (
	"github.com/osmike/orbitcron/internal/domain"
	"sync"
)

// Memory provides an in-memory, thread-safe implementation of the domain.Monitoring interface.
//
// It keeps the latest state of every job that ran, keyed by job name.
// This basic implementation is suitable for debugging, testing and for the
// job listing of the HTTP endpoint.
type Memory struct {
	data *sync.Map // Thread-safe storage keyed by job name, storing the latest state.
}

// New creates and initializes a new in-memory monitor.
func New() *Memory {
	return &Memory{
		data: &sync.Map{},
	}
}

// SaveMetrics stores the state of a job that just ran, replacing the previous one.
//
// Parameters:
//   - dto: domain.StateDTO containing execution details of the job.
func (m *Memory) SaveMetrics(dto domain.StateDTO) {
	m.data.Store(dto.JobName, dto)
}

// GetMetrics retrieves all stored job states.
//
// Returns:
//   - A map with job names as keys and domain.StateDTO values.
func (m *Memory) GetMetrics() map[string]interface{} {
	result := make(map[string]interface{})
	m.data.Range(func(key, value interface{}) bool {
		result[key.(string)] = value.(domain.StateDTO)
		return true
	})
	return result
}

// Get returns the latest stored state of a job.
func (m *Memory) Get(name string) (domain.StateDTO, bool) {
	v, ok := m.data.Load(name)
	if !ok {
		return domain.StateDTO{}, false
	}
	return v.(domain.StateDTO), true
}

// Multi fans a state out to several monitors, skipping nil ones.
type Multi []domain.Monitoring

func (mm Multi) SaveMetrics(dto domain.StateDTO) {
	for _, m := range mm {
		if m != nil {
			m.SaveMetrics(dto)
		}
	}
}
