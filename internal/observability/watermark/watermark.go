package watermark

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	runSucceededGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "cycling_coach",
		Subsystem: "orchestrator",
		Name:      "last_run_succeeded_timestamp_seconds",
		Help:      "Unix timestamp of the most recent successful run, labeled by job.",
	}, []string{"job"})
	runFailedGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "cycling_coach",
		Subsystem: "orchestrator",
		Name:      "last_run_failed_timestamp_seconds",
		Help:      "Unix timestamp of the most recent failed run, labeled by job.",
	}, []string{"job"})
	sessionPersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "cycling_coach",
		Subsystem: "persistence",
		Name:      "last_session_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent training session write to Postgres.",
	})
)

func init() {
	prometheus.MustRegister(runSucceededGauge, runFailedGauge, sessionPersistGauge)
}

// RecordRun updates the success or failure watermark of job.
func RecordRun(job string, success bool, ts time.Time) {
	if ts.IsZero() {
		return
	}
	if success {
		runSucceededGauge.WithLabelValues(job).Set(float64(ts.Unix()))
		return
	}
	runFailedGauge.WithLabelValues(job).Set(float64(ts.Unix()))
}

// RecordSessionPersisted updates the persistence watermark gauge.
func RecordSessionPersisted(ts time.Time) {
	if ts.IsZero() {
		return
	}
	sessionPersistGauge.Set(float64(ts.Unix()))
}
