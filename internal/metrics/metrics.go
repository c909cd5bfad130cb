// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from the report pipeline.
//
// The global backend defaults to a no-op implementation, so metric calls
// are always safe even when no backend is configured. Concrete systems
// (Prometheus Pushgateway) live in subpackages and register themselves via
// SetBackend; the pipeline stages only ever talk to this package.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it.
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing one.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStep measures one pipeline stage: a success/failure counter plus
// the stage duration.
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{"job": job, "step": step, "status": status}
	backend.IncCounter("kontrola_step_total", 1, lbls)
	backend.ObserveHistogram("kontrola_step_duration_seconds", d.Seconds(), lbls)
}

// RecordRows counts rows per kind. Kinds in use: "ingested" and one per
// report bucket.
func RecordRows(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("kontrola_rows_total", float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}
