package metrics

import (
	"testing"
	"time"
)

func TestMetricsRecordScan(t *testing.T) {
	m := NewMetrics()

	m.RecordScan(5, 1, 10*time.Millisecond)
	m.RecordScan(3, 0, 5*time.Millisecond)
	m.RecordScanFailure()
	m.RecordChange()

	scans, failures, entries, parseFailures, changes := m.GetStats()
	if scans != 2 {
		t.Errorf("scans = %d, want 2", scans)
	}
	if failures != 1 {
		t.Errorf("failures = %d, want 1", failures)
	}
	if entries != 8 {
		t.Errorf("entries = %d, want 8", entries)
	}
	if parseFailures != 1 {
		t.Errorf("parse failures = %d, want 1", parseFailures)
	}
	if changes != 1 {
		t.Errorf("changes = %d, want 1", changes)
	}
	if m.LastScanDuration != 5*time.Millisecond {
		t.Errorf("last scan duration = %v", m.LastScanDuration)
	}
	if m.LastScan.IsZero() {
		t.Error("last scan time should be set")
	}
}
