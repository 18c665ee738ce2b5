package input

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/vtkeys/internal/input/resolve"
)

const defaultLatencySamples = 1000

// Metrics tracks input processing counts and latency.
type Metrics struct {
	// Event counters
	keyEvents        atomic.Uint64
	mouseEvents      atomic.Uint64
	actions          atomic.Uint64
	byteResults      atomic.Uint64
	bytesWritten     atomic.Uint64
	selections       atomic.Uint64
	unhandled        atomic.Uint64
	errors           atomic.Uint64
	hookConsumptions atomic.Uint64

	// Latency ring buffers
	mu               sync.RWMutex
	resolveLatencies []time.Duration
	actionLatencies  []time.Duration
	resolveIdx       int
	actionIdx        int

	peakResolveLatency atomic.Int64
	peakActionLatency  atomic.Int64

	startTime time.Time
	enabled   atomic.Bool
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		resolveLatencies: make([]time.Duration, defaultLatencySamples),
		actionLatencies:  make([]time.Duration, defaultLatencySamples),
		startTime:        time.Now(),
	}
	m.enabled.Store(true)
	return m
}

// SetEnabled enables or disables metrics collection.
func (m *Metrics) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

// IsEnabled returns whether metrics collection is enabled.
func (m *Metrics) IsEnabled() bool {
	return m.enabled.Load()
}

// RecordKeyEvent records a resolved key event with its resolution time.
func (m *Metrics) RecordKeyEvent(res resolve.Result, latency time.Duration) {
	if !m.enabled.Load() {
		return
	}
	m.keyEvents.Add(1)
	m.recordResult(res)
	m.recordLatency(&m.peakResolveLatency, m.resolveLatencies, &m.resolveIdx, latency)
}

// RecordMouseEvent records a resolved mouse event with its resolution time.
func (m *Metrics) RecordMouseEvent(res resolve.Result, latency time.Duration) {
	if !m.enabled.Load() {
		return
	}
	m.mouseEvents.Add(1)
	m.recordResult(res)
	m.recordLatency(&m.peakResolveLatency, m.resolveLatencies, &m.resolveIdx, latency)
}

// RecordAction records an action dispatch with its processing time.
func (m *Metrics) RecordAction(latency time.Duration) {
	if !m.enabled.Load() {
		return
	}
	m.recordLatency(&m.peakActionLatency, m.actionLatencies, &m.actionIdx, latency)
}

// RecordWrite records n bytes written to the controlled process.
func (m *Metrics) RecordWrite(n int) {
	if !m.enabled.Load() || n <= 0 {
		return
	}
	m.bytesWritten.Add(uint64(n))
}

// RecordError records a failed delivery.
func (m *Metrics) RecordError() {
	if !m.enabled.Load() {
		return
	}
	m.errors.Add(1)
}

// RecordHookConsumption records when a hook consumes an event.
func (m *Metrics) RecordHookConsumption() {
	if !m.enabled.Load() {
		return
	}
	m.hookConsumptions.Add(1)
}

func (m *Metrics) recordResult(res resolve.Result) {
	switch res.Kind {
	case resolve.Action:
		m.actions.Add(1)
	case resolve.Bytes:
		m.byteResults.Add(1)
	case resolve.Selection:
		m.selections.Add(1)
	default:
		m.unhandled.Add(1)
	}
}

func (m *Metrics) recordLatency(peak *atomic.Int64, ring []time.Duration, idx *int, latency time.Duration) {
	ns := latency.Nanoseconds()
	for {
		current := peak.Load()
		if ns <= current {
			break
		}
		if peak.CompareAndSwap(current, ns) {
			break
		}
	}

	m.mu.Lock()
	ring[*idx] = latency
	*idx = (*idx + 1) % len(ring)
	m.mu.Unlock()
}

// MetricsSnapshot holds a point-in-time view of metrics.
type MetricsSnapshot struct {
	// Counters
	KeyEvents        uint64
	MouseEvents      uint64
	Actions          uint64
	ByteResults      uint64
	BytesWritten     uint64
	Selections       uint64
	Unhandled        uint64
	Errors           uint64
	HookConsumptions uint64

	// Latency stats
	AvgResolveLatency  time.Duration
	MaxResolveLatency  time.Duration
	P99ResolveLatency  time.Duration
	PeakResolveLatency time.Duration

	AvgActionLatency  time.Duration
	MaxActionLatency  time.Duration
	P99ActionLatency  time.Duration
	PeakActionLatency time.Duration

	// Rates
	EventsPerSecond float64

	Uptime time.Duration
}

// Snapshot returns a point-in-time view of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	resolveLatencies := slices.Clone(m.resolveLatencies)
	actionLatencies := slices.Clone(m.actionLatencies)
	startTime := m.startTime
	m.mu.RUnlock()

	uptime := time.Since(startTime)
	snap := MetricsSnapshot{
		KeyEvents:          m.keyEvents.Load(),
		MouseEvents:        m.mouseEvents.Load(),
		Actions:            m.actions.Load(),
		ByteResults:        m.byteResults.Load(),
		BytesWritten:       m.bytesWritten.Load(),
		Selections:         m.selections.Load(),
		Unhandled:          m.unhandled.Load(),
		Errors:             m.errors.Load(),
		HookConsumptions:   m.hookConsumptions.Load(),
		PeakResolveLatency: time.Duration(m.peakResolveLatency.Load()),
		PeakActionLatency:  time.Duration(m.peakActionLatency.Load()),
		Uptime:             uptime,
	}

	if uptime > 0 {
		snap.EventsPerSecond = float64(snap.KeyEvents+snap.MouseEvents) / uptime.Seconds()
	}

	snap.AvgResolveLatency, snap.MaxResolveLatency, snap.P99ResolveLatency = calculateLatencyStats(resolveLatencies)
	snap.AvgActionLatency, snap.MaxActionLatency, snap.P99ActionLatency = calculateLatencyStats(actionLatencies)

	return snap
}

// calculateLatencyStats computes average, max, and p99 from a slice of
// latencies. Zero entries are unused ring slots.
func calculateLatencyStats(latencies []time.Duration) (avg, maxLat, p99 time.Duration) {
	valid := make([]time.Duration, 0, len(latencies))
	for _, l := range latencies {
		if l > 0 {
			valid = append(valid, l)
		}
	}
	if len(valid) == 0 {
		return 0, 0, 0
	}

	slices.Sort(valid)

	var sum time.Duration
	for _, l := range valid {
		sum += l
	}
	avg = sum / time.Duration(len(valid))
	maxLat = valid[len(valid)-1]

	idx := int(float64(len(valid)) * 0.99)
	if idx >= len(valid) {
		idx = len(valid) - 1
	}
	p99 = valid[idx]

	return avg, maxLat, p99
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	for _, c := range []*atomic.Uint64{
		&m.keyEvents, &m.mouseEvents, &m.actions, &m.byteResults, &m.bytesWritten,
		&m.selections, &m.unhandled, &m.errors, &m.hookConsumptions,
	} {
		c.Store(0)
	}
	m.peakResolveLatency.Store(0)
	m.peakActionLatency.Store(0)

	m.mu.Lock()
	clear(m.resolveLatencies)
	clear(m.actionLatencies)
	m.resolveIdx = 0
	m.actionIdx = 0
	m.startTime = time.Now()
	m.mu.Unlock()
}

// HealthStatus represents the current health status of input processing.
type HealthStatus struct {
	Healthy          bool          `json:"healthy"`
	Errors           uint64        `json:"errors"`
	PeakLatency      time.Duration `json:"peak_latency_ns"`
	LatencyThreshold time.Duration `json:"latency_threshold_ns"`
	Message          string        `json:"message"`
}

// HealthCheck returns the current health status.
func (m *Metrics) HealthCheck(latencyThreshold time.Duration) HealthStatus {
	status := HealthStatus{
		Healthy:          true,
		Errors:           m.errors.Load(),
		PeakLatency:      time.Duration(m.peakResolveLatency.Load()),
		LatencyThreshold: latencyThreshold,
	}

	switch {
	case status.Errors > 0:
		status.Healthy = false
		status.Message = "delivery errors detected"
	case status.PeakLatency > latencyThreshold:
		status.Healthy = false
		status.Message = "latency threshold exceeded"
	default:
		status.Message = "healthy"
	}

	return status
}
