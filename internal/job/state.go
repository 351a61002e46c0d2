package job

import (
	"github.com/osmike/orbitcron/internal/domain"
	"sync"
	"time"
)

// state represents the internal execution state of a job.
//
// It tracks runtime details, including timestamps, current status,
// execution duration, errors and custom metadata.
// Access to all state fields is synchronized via an internal mutex
// so callbacks can save data while the registry reads snapshots.
type state struct {
	domain.StateDTO

	mu sync.Mutex // Protects state fields from concurrent access.
}

// newState returns a Waiting state with an empty metadata map.
func newState() *state {
	return &state{
		StateDTO: domain.StateDTO{
			Status: domain.Waiting,
			Result: domain.Unknown,
			Data:   make(map[string]interface{}),
		},
	}
}

// GetStatus safely retrieves the current execution status of the job.
func (s *state) GetStatus() domain.JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Status
}

// GetResult safely retrieves the outcome of the last run.
func (s *state) GetResult() domain.RunResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Result
}

// start resets the per-run fields and marks the state as Running.
//
// The previous Result is kept until finish is called.
func (s *state) start(at time.Time, forced bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.StartAt = at
	s.EndAt = time.Time{}
	s.Forced = forced
	s.Error = domain.StateError{}
	s.ExecutionTime = 0
	s.Status = domain.Running
	s.Data = make(map[string]interface{})
}

// finish records the outcome of the execution callback.
//
// Parameters:
//   - err: The execution failure, nil on success.
func (s *state) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.EndAt = time.Now()
	s.ExecutionTime = s.EndAt.Sub(s.StartAt).Nanoseconds()
	s.Error.JobError = err
	if err != nil {
		s.Status = domain.Error
		s.Result = domain.Failed
		return
	}
	s.Status = domain.Completed
	s.Result = domain.Succeeded
}

func (s *state) setBeforeErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Error.OnBefore = err
}

func (s *state) setFailureErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Error.OnFailure = err
}

// saveData merges data into the run's metadata map.
func (s *state) saveData(data map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range data {
		s.Data[k] = v
	}
}

func (s *state) getData() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyData(s.Data)
}

// snapshot returns a copy of the state safe to hand to other goroutines.
func (s *state) snapshot() domain.StateDTO {
	s.mu.Lock()
	defer s.mu.Unlock()

	dto := s.StateDTO
	dto.Data = copyData(s.Data)
	return dto
}

func copyData(in map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
