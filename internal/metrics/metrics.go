// Package metrics counts pipeline jobs for node-exporter's textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	StageAnalyse  = "analyse"
	StageEnrich   = "enrich"
	StageCompose  = "compose"
	StageMaster   = "master"
	StageConvert  = "convert"
	StageStamp    = "stamp"
	StagePublish  = "publish"
	statusSuccess = "success"
	statusFailure = "failure"
)

var (
	jobs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "focus_jobs_total",
			Help: "Pipeline jobs by stage and outcome",
		},
		[]string{"stage", "status"},
	)
	duration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "focus_job_duration_seconds",
			Help:    "Processing time per stage",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	// A CLI run has no scrape endpoint, so nothing goes to the default registry.
	registry = prometheus.NewRegistry()
)

func init() {
	registry.MustRegister(jobs, duration)
}

// Observe starts timing stage; call the returned func with the job's error.
func Observe(stage string) func(error) {
	timer := prometheus.NewTimer(duration.WithLabelValues(stage))
	return func(err error) {
		timer.ObserveDuration()
		Record(stage, err)
	}
}

func Record(stage string, err error) {
	if err != nil {
		jobs.WithLabelValues(stage, statusFailure).Inc()
		return
	}
	jobs.WithLabelValues(stage, statusSuccess).Inc()
}

// WriteTextfile dumps the registry atomically; an empty path is a no-op.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, registry)
}
