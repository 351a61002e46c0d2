package config

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/osmike/orbitcron/internal/command"
	errs "github.com/osmike/orbitcron/internal/error"
	"github.com/osmike/orbitcron/internal/job"
	"github.com/osmike/orbitcron/internal/manager"
	"gopkg.in/yaml.v3"
	"io"
	"os"
	"strings"
)

// jobsFile is the layout of a file read by LoadJobs.
type jobsFile struct {
	Jobs []JobConfig `yaml:"jobs"`
}

// LoadJobs reads the job declarations of a YAML file:
//
//	jobs:
//	  - name: backup
//	    schedule: "0 3 * * *"
//	    command: ["/usr/local/bin/backup", "--full"]
//	    attributes: [nightly]
//
// Unknown keys are rejected.
func LoadJobs(path string) ([]JobConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read jobs file: %w", err)
	}
	return ParseJobs(data)
}

// ParseJobs decodes job declarations, see LoadJobs.
func ParseJobs(data []byte) ([]JobConfig, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f jobsFile
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, errs.New(errs.ErrInvalidJob, err.Error())
	}
	return f.Jobs, nil
}

// Validate checks the declaration without building a job.
func (c JobConfig) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errs.New(errs.ErrInvalidJob, "name is required")
	}
	if len(c.Command) == 0 || strings.TrimSpace(c.Command[0]) == "" {
		return errs.New(errs.ErrInvalidJob, fmt.Sprintf("job %s: %v", c.Name, errs.ErrEmptyCommand))
	}
	return nil
}

// Build turns the declaration into a job running its command.
func (c JobConfig) Build() (*job.Job, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	j, err := job.New(c.Schedule)
	if err != nil {
		return nil, fmt.Errorf("job %s: %w", c.Name, err)
	}
	j.SetName(c.Name)
	j.SetOnExecution(command.Exec, command.Args(c.Command)...)
	for _, a := range c.Attributes {
		if !j.AddExecutionAttribute(a) {
			return nil, errs.New(errs.ErrInvalidJob, fmt.Sprintf("job %s: attribute %q", c.Name, a))
		}
	}
	return j, nil
}

// Register builds every declaration and schedules it on m.
// It stops at the first invalid or duplicate job; jobs registered before it stay registered.
func Register(m *manager.Manager, jobs []JobConfig) error {
	for _, c := range jobs {
		j, err := c.Build()
		if err != nil {
			return err
		}
		if err := m.ScheduleJob(j); err != nil {
			return err
		}
	}
	return nil
}
