package metrics

import (
	"sync"
	"time"
)

// Metrics represents the counters kept while scanning route tables
type Metrics struct {
	ScansCompleted   int64
	ScanFailures     int64
	EntriesDecoded   int64
	ParseFailures    int64
	ChangesDetected  int64
	LastScanDuration time.Duration
	LastScan         time.Time
	mutex            sync.RWMutex
}

// NewMetrics creates a new metrics instance
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordScan records the outcome of one table scan
func (m *Metrics) RecordScan(entries, parseFailures int, duration time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.ScansCompleted++
	m.EntriesDecoded += int64(entries)
	m.ParseFailures += int64(parseFailures)
	m.LastScanDuration = duration
	m.LastScan = time.Now()
}

// RecordScanFailure records a scan that could not be completed
func (m *Metrics) RecordScanFailure() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.ScanFailures++
}

// RecordChange records a detected route table change
func (m *Metrics) RecordChange() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.ChangesDetected++
}

// GetStats returns the scan statistics
func (m *Metrics) GetStats() (scans, failures, entries, parseFailures, changes int64) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.ScansCompleted, m.ScanFailures, m.EntriesDecoded, m.ParseFailures, m.ChangesDetected
}
