package metrics

import (
	"errors"
	"testing"
	"time"
)

type call struct {
	name   string
	value  float64
	labels Labels
}

type fakeBackend struct {
	counters   []call
	histograms []call
	flushed    int
}

func (f *fakeBackend) IncCounter(name string, delta float64, labels Labels) {
	f.counters = append(f.counters, call{name, delta, labels})
}

func (f *fakeBackend) ObserveHistogram(name string, value float64, labels Labels) {
	f.histograms = append(f.histograms, call{name, value, labels})
}

func (f *fakeBackend) Flush() error {
	f.flushed++
	return nil
}

func withBackend(t *testing.T, b Backend) {
	t.Helper()
	prev := backend
	SetBackend(b)
	t.Cleanup(func() { backend = prev })
}

func TestRecordStep(t *testing.T) {
	fb := &fakeBackend{}
	withBackend(t, fb)

	RecordStep("job", "ingest", nil, 2*time.Second)
	RecordStep("job", "report", errors.New("boom"), time.Second)

	if len(fb.counters) != 2 || len(fb.histograms) != 2 {
		t.Fatalf("counters=%d histograms=%d, want 2 each", len(fb.counters), len(fb.histograms))
	}
	if got := fb.counters[0].labels["status"]; got != "success" {
		t.Errorf("status = %q, want success", got)
	}
	if got := fb.counters[1].labels["status"]; got != "failure" {
		t.Errorf("status = %q, want failure", got)
	}
	if got := fb.histograms[0].value; got != 2 {
		t.Errorf("duration = %v, want 2", got)
	}
}

func TestRecordRowsSkipsNonPositive(t *testing.T) {
	fb := &fakeBackend{}
	withBackend(t, fb)

	RecordRows("job", "ingested", 5)
	RecordRows("job", "ingested", 0)
	RecordRows("job", "ingested", -1)

	if len(fb.counters) != 1 {
		t.Fatalf("counters = %d, want 1", len(fb.counters))
	}
	if fb.counters[0].value != 5 {
		t.Errorf("delta = %v, want 5", fb.counters[0].value)
	}
}

func TestSetBackendNilKeepsCurrent(t *testing.T) {
	fb := &fakeBackend{}
	withBackend(t, fb)
	SetBackend(nil)

	RecordRows("job", "ingested", 1)
	if len(fb.counters) != 1 {
		t.Error("nil SetBackend replaced the installed backend")
	}
}

func TestNopBackendIsSafe(t *testing.T) {
	withBackend(t, nopBackend{})
	RecordStep("job", "step", nil, time.Second)
	RecordRows("job", "kind", 1)
	if err := Flush(); err != nil {
		t.Errorf("Flush: %v", err)
	}
}
