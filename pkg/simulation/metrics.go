package simulation

import "sync"

// MetricsCollector accumulates per-client waiting times in seconds
type MetricsCollector struct {
	mu      sync.Mutex
	samples []float64
}

func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{}
}

// Record appends one waiting time sample
func (m *MetricsCollector) Record(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.samples = append(m.samples, seconds)
}

// Average returns the mean waiting time, 0 when nothing was recorded
func (m *MetricsCollector) Average() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range m.samples {
		sum += s
	}
	return sum / float64(len(m.samples))
}

func (m *MetricsCollector) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.samples)
}

// Samples returns a copy of the recorded samples
func (m *MetricsCollector) Samples() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.samples...)
}

// Reset clears the samples between runs
func (m *MetricsCollector) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.samples = nil
}
