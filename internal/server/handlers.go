package server

import (
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/osmike/orbitcron/internal/domain"
	errs "github.com/osmike/orbitcron/internal/error"
	"github.com/osmike/orbitcron/internal/monitoring"
	"net/http"
	"strconv"
	"time"
)

// RunResponse is the body of a dispatch pass.
type RunResponse struct {
	TotalJobs    int      `json:"total_jobs"`
	ExecutedJobs int      `json:"executed_jobs"`
	Succeeded    []string `json:"succeeded"`
	Failed       []string `json:"failed"`
}

// JobResponse describes one registered job.
type JobResponse struct {
	Name       string     `json:"name"`
	Expression string     `json:"expression"`
	Attributes []string   `json:"attributes"`
	Status     string     `json:"status"`
	LastRun    string     `json:"last_run"`
	LastStart  *time.Time `json:"last_start,omitempty"`
	NextRun    *time.Time `json:"next_run,omitempty"`
}

// RunJobResponse is the body of a single job trigger.
type RunJobResponse struct {
	Job     string `json:"job"`
	Ran     bool   `json:"ran"`
	Success bool   `json:"success"`
}

// HistoryResponse lists persisted runs of a job, newest first.
type HistoryResponse struct {
	Job  string           `json:"job"`
	Runs []monitoring.Run `json:"runs"`
}

func parseForce(c *gin.Context) (bool, bool) {
	raw := c.Query("force")
	if raw == "" {
		return false, true
	}
	force, err := strconv.ParseBool(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "force must be a boolean"})
		return false, false
	}
	return force, true
}

func (s *Server) handleRun(c *gin.Context) {
	force, ok := parseForce(c)
	if !ok {
		return
	}
	report := s.manager.RunDueJobs(c.Request.Context(), force)

	resp := RunResponse{
		TotalJobs:    report.TotalJobs,
		ExecutedJobs: report.ExecutedJobsCount,
		Succeeded:    append([]string{}, report.Succeeded...),
		Failed:       append([]string{}, report.Failed...),
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleListJobs(c *gin.Context) {
	now := s.manager.Now()
	jobs := s.manager.Jobs()

	resp := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		st := j.State()
		item := JobResponse{
			Name:       st.JobName,
			Expression: st.Expression,
			Attributes: append([]string{}, st.Attributes...),
			Status:     string(st.Status),
			LastRun:    st.Result.String(),
		}
		if !st.StartAt.IsZero() {
			start := st.StartAt
			item.LastStart = &start
		}
		if next, err := j.Expression().Next(now); err == nil {
			item.NextRun = &next
		}
		resp = append(resp, item)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleRunJob(c *gin.Context) {
	force, ok := parseForce(c)
	if !ok {
		return
	}
	name := c.Param("name")
	ran, result, err := s.manager.RunJob(c.Request.Context(), name, force)
	if errors.Is(err, errs.ErrJobNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, RunJobResponse{
		Job:     name,
		Ran:     ran,
		Success: result == domain.Succeeded,
	})
}

func (s *Server) handleHistory(c *gin.Context) {
	name := c.Param("name")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}
	runs, err := s.cfg.History.Recent(c.Request.Context(), name, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if runs == nil {
		runs = []monitoring.Run{}
	}
	c.JSON(http.StatusOK, HistoryResponse{Job: name, Runs: runs})
}
