package stats

import (
	"math"
	"sort"
	"sync"
)

// Percentile calculates the p-th percentile (0-100) of values using linear
// interpolation between closest ranks
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	index := p / 100.0 * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// LatencyTracker keeps a bounded window of recent latency samples for the
// stats surface. Recording is cheap and never blocks the request path for
// long; readers snapshot under the same short lock.
type LatencyTracker struct {
	mu      sync.Mutex
	samples []float64
	next    int
	full    bool
}

// NewLatencyTracker creates a tracker over a window of size samples.
func NewLatencyTracker(size int) *LatencyTracker {
	if size <= 0 {
		size = 1024
	}
	return &LatencyTracker{samples: make([]float64, size)}
}

// Record adds one latency sample in milliseconds.
func (t *LatencyTracker) Record(ms float64) {
	t.mu.Lock()
	t.samples[t.next] = ms
	t.next++
	if t.next == len(t.samples) {
		t.next = 0
		t.full = true
	}
	t.mu.Unlock()
}

// Percentile returns the p-th percentile of the current window.
func (t *LatencyTracker) Percentile(p float64) float64 {
	t.mu.Lock()
	window := t.window()
	t.mu.Unlock()
	return Percentile(window, p)
}

// window snapshots the live samples. Caller holds the lock.
func (t *LatencyTracker) window() []float64 {
	n := t.next
	if t.full {
		n = len(t.samples)
	}
	out := make([]float64, n)
	copy(out, t.samples[:n])
	return out
}
