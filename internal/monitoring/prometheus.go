package monitoring

import (
	"github.com/osmike/orbitcron/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"time"
)

// Prometheus exposes job runs as Prometheus collectors.
type Prometheus struct {
	runs         *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	lastRun      *prometheus.GaugeVec
	lastSuccess  *prometheus.GaugeVec
	hookFailures *prometheus.CounterVec
}

// NewPrometheus creates the collectors and registers them with reg
// (prometheus.DefaultRegisterer when nil). Registration errors panic, which
// surfaces configuration bugs early; tests should pass a fresh registry.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	p := &Prometheus{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "orbitcron",
				Name:      "job_runs_total",
				Help:      "Number of job runs by outcome.",
			},
			[]string{"job", "result", "forced"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "orbitcron",
				Name:      "job_duration_seconds",
				Help:      "Duration of the before hook plus execution callback.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"job"},
		),
		lastRun: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "orbitcron",
				Name:      "job_last_run_timestamp_seconds",
				Help:      "Unix time of the last run of a job.",
			},
			[]string{"job"},
		),
		lastSuccess: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "orbitcron",
				Name:      "job_last_run_success",
				Help:      "1 if the last run of a job succeeded, 0 otherwise.",
			},
			[]string{"job"},
		),
		hookFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "orbitcron",
				Name:      "hook_failures_total",
				Help:      "Number of swallowed hook failures.",
			},
			[]string{"job", "hook"},
		),
	}
	reg.MustRegister(p.runs, p.duration, p.lastRun, p.lastSuccess, p.hookFailures)
	return p
}

// SaveMetrics records one run.
func (p *Prometheus) SaveMetrics(dto domain.StateDTO) {
	forced := "false"
	if dto.Forced {
		forced = "true"
	}
	p.runs.WithLabelValues(dto.JobName, dto.Result.String(), forced).Inc()
	p.duration.WithLabelValues(dto.JobName).Observe(time.Duration(dto.ExecutionTime).Seconds())
	if !dto.StartAt.IsZero() {
		p.lastRun.WithLabelValues(dto.JobName).Set(float64(dto.StartAt.Unix()))
	}
	success := 0.0
	if dto.Result == domain.Succeeded {
		success = 1
	}
	p.lastSuccess.WithLabelValues(dto.JobName).Set(success)

	if dto.Error.OnBefore != nil {
		p.hookFailures.WithLabelValues(dto.JobName, "before").Inc()
	}
	if dto.Error.OnFailure != nil {
		p.hookFailures.WithLabelValues(dto.JobName, "failure").Inc()
	}
}
