package monitor

import (
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/procnet/route/internal/config"
	"github.com/procnet/route/internal/logger"
	"github.com/procnet/route/internal/metrics"
	"github.com/procnet/route/routetable"
)

// TableEvent represents a detected route table change
type TableEvent struct {
	Family      routetable.Family
	Entries     int
	ParseErrors int
	Signature   uint64
	Timestamp   time.Time
}

// Monitor polls both kernel route tables and emits an event whenever the
// content of one of them changes between polls.
type Monitor struct {
	cfg     *config.Config
	log     *logger.Logger
	metrics *metrics.Metrics

	pool      *ants.Pool
	eventChan chan TableEvent
	stopChan  chan struct{}
	mutex     sync.Mutex
	isRunning bool

	stateMutex sync.Mutex
	previous   map[routetable.Family]*routetable.Snapshot

	// snapshot is swappable so tests can feed fixture tables.
	snapshot func(routetable.Family) (*routetable.Snapshot, error)
}

// New creates a monitor over the tables named in cfg.
func New(cfg *config.Config, log *logger.Logger, m *metrics.Metrics) (*Monitor, error) {
	pool, err := ants.NewPool(cfg.Concurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	mon := &Monitor{
		cfg:       cfg,
		log:       log.WithComponent("monitor"),
		metrics:   m,
		pool:      pool,
		eventChan: make(chan TableEvent, 16),
		stopChan:  make(chan struct{}),
		previous:  make(map[routetable.Family]*routetable.Snapshot),
	}
	mon.snapshot = mon.snapshotFromFile
	return mon, nil
}

// Start begins polling in the background.
func (m *Monitor) Start() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.isRunning {
		return fmt.Errorf("monitor is already running")
	}

	m.isRunning = true
	m.log.MonitorStart(m.cfg.PollInterval.String())
	go m.run()

	return nil
}

// Stop halts polling and releases the worker pool.
func (m *Monitor) Stop() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if !m.isRunning {
		return
	}

	close(m.stopChan)
	m.pool.Release()
	m.isRunning = false
	m.log.MonitorStop()
}

// Events returns the channel change events are delivered on.
func (m *Monitor) Events() <-chan TableEvent {
	return m.eventChan
}

func (m *Monitor) run() {
	ticker := time.NewTicker(m.cfg.PollInterval)
	defer ticker.Stop()

	m.poll()

	for {
		select {
		case <-m.stopChan:
			return
		case <-ticker.C:
			m.poll()
		}
	}
}

// poll refreshes both families, one pool job each, and waits for the round
// to finish so overlapping rounds cannot reorder snapshots.
func (m *Monitor) poll() {
	var wg sync.WaitGroup
	for _, family := range []routetable.Family{routetable.FamilyIPv4, routetable.FamilyIPv6} {
		family := family
		wg.Add(1)
		err := m.pool.Submit(func() {
			defer wg.Done()
			m.refresh(family)
		})
		if err != nil {
			wg.Done()
			m.log.ScanError(family.String(), err)
			m.metrics.RecordScanFailure()
		}
	}
	wg.Wait()
}

func (m *Monitor) refresh(family routetable.Family) {
	start := time.Now()
	snap, err := m.snapshot(family)
	if err != nil {
		m.log.ScanError(family.String(), err)
		m.metrics.RecordScanFailure()
		return
	}

	m.metrics.RecordScan(snap.Len(), len(snap.ParseErrors), time.Since(start))
	m.log.TableScan(family.String(), snap.Len(), len(snap.ParseErrors), time.Since(start))

	m.stateMutex.Lock()
	prev := m.previous[family]
	m.previous[family] = snap
	m.stateMutex.Unlock()

	if !snap.ChangedFrom(prev) {
		return
	}

	m.metrics.RecordChange()
	var oldSignature uint64
	if prev != nil {
		oldSignature = prev.Signature
	}
	m.log.ChangeDetected(family.String(), snap.Len(), oldSignature, snap.Signature)

	event := TableEvent{
		Family:      family,
		Entries:     snap.Len(),
		ParseErrors: len(snap.ParseErrors),
		Signature:   snap.Signature,
		Timestamp:   snap.Taken,
	}
	select {
	case m.eventChan <- event:
	case <-m.stopChan:
	}
}

func (m *Monitor) snapshotFromFile(family routetable.Family) (*routetable.Snapshot, error) {
	switch family {
	case routetable.FamilyIPv4:
		src, err := routetable.OpenFileSource(m.cfg.IPv4RoutePath)
		if err != nil {
			return nil, err
		}
		tab := routetable.NewIPv4Table(src, routetable.WithHeaderLines(m.cfg.IPv4HeaderLines))
		defer tab.Close()
		return routetable.SnapshotIPv4(tab), nil
	default:
		src, err := routetable.OpenFileSource(m.cfg.IPv6RoutePath)
		if err != nil {
			return nil, err
		}
		tab := routetable.NewIPv6Table(src, routetable.WithHeaderLines(m.cfg.IPv6HeaderLines))
		defer tab.Close()
		return routetable.SnapshotIPv6(tab), nil
	}
}
