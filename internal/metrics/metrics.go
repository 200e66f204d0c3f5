// Package metrics records issuance run metrics and pushes them to a
// Prometheus Pushgateway. A run is a short-lived batch job, so metrics are
// collected in a private registry and pushed once at the end instead of
// being scraped. Course, section and term travel as the push grouping key,
// not as metric labels.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/imamik/rosterkeys/internal/config"
	"github.com/imamik/rosterkeys/internal/util/retry"
)

const namespace = "rosterkeys"

// pushRetry is the backoff used for Pushgateway requests.
var pushRetry = []retry.Option{
	retry.WithAttempts(3),
	retry.WithDelay(500*time.Millisecond, 2*time.Second),
}

// Recorder collects the metrics of a single run.
type Recorder struct {
	registry *prometheus.Registry
	grouping map[string]string

	keysIssued    prometheus.Counter
	keyFailures   prometheus.Counter
	studentsFound prometheus.Gauge
	runDuration   *prometheus.GaugeVec
	lastSuccess   prometheus.Gauge
}

// NewRecorder creates a recorder for one course section and term.
func NewRecorder(course, section, term string) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		grouping: map[string]string{
			"course":  course,
			"section": section,
			"term":    term,
		},
		keysIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "keys_issued_total",
			Help:      "Number of API keys created",
		}),
		keyFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "key_failures_total",
			Help:      "Number of key creation calls that failed",
		}),
		studentsFound: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "students_found",
			Help:      "Number of students extracted from the roster",
		}),
		runDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of the last issuance run in seconds",
			},
			[]string{"result"},
		),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful issuance run",
		}),
	}

	r.registry.MustRegister(r.keysIssued, r.keyFailures, r.studentsFound, r.runDuration)
	return r
}

// Registry returns the registry holding the run's metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// KeyIssued records a successful key creation.
func (r *Recorder) KeyIssued() {
	r.keysIssued.Inc()
}

// KeyFailed records a failed key creation.
func (r *Recorder) KeyFailed() {
	r.keyFailures.Inc()
}

// StudentsFound records the roster size.
func (r *Recorder) StudentsFound(n int) {
	r.studentsFound.Set(float64(n))
}

// RunFinished records the run duration and, on success, the completion time.
// The last-success gauge is only registered on success so a failed run does
// not overwrite the previous value in the Pushgateway with zero.
func (r *Recorder) RunFinished(duration time.Duration, err error, now time.Time) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	r.runDuration.WithLabelValues(result).Set(duration.Seconds())

	if err == nil {
		r.lastSuccess.Set(float64(now.Unix()))
		_ = r.registry.Register(r.lastSuccess)
	}
}

// Push sends the recorded metrics to the configured Pushgateway.
// Success pushes replace the group; failure pushes only add, keeping the
// last success timestamp of earlier runs. Failed requests are retried.
func Push(ctx context.Context, cfg config.MetricsConfig, r *Recorder, succeeded bool) error {
	pusher := push.New(cfg.Pushgateway, cfg.Job).Gatherer(r.registry)
	for _, name := range []string{"course", "section", "term"} {
		pusher = pusher.Grouping(name, r.grouping[name])
	}

	err := retry.Do(ctx, func(ctx context.Context) error {
		if succeeded {
			return pusher.PushContext(ctx)
		}
		return pusher.AddContext(ctx)
	}, pushRetry...)
	if err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", cfg.Pushgateway, err)
	}
	return nil
}
