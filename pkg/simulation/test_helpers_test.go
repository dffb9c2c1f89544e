package simulation

import (
	"errors"
	"strings"
	"sync"
	"time"

	testingclock "k8s.io/utils/clock/testing"
)

func newFakeClock() (*ScaledClock, *testingclock.FakeClock) {
	fake := testingclock.NewFakeClock(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	return NewScaledClock(fake, 1), fake
}

// statusCapture keeps every status change in call order
type statusCapture struct {
	mu        sync.Mutex
	queue     []QueueEvent
	snapshots [][]Lawyer
	// sequence interleaves "q" (queue) and "l" (lawyer) entries
	sequence []string
}

func (s *statusCapture) OnQueueChanged(event QueueEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, event)
	s.sequence = append(s.sequence, "q")
}

func (s *statusCapture) OnLawyerStatusChanged(snapshot []Lawyer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = append(s.snapshots, snapshot)
	s.sequence = append(s.sequence, "l")
}

func (s *statusCapture) queueEvents() []QueueEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]QueueEvent(nil), s.queue...)
}

func (s *statusCapture) lastSnapshot() []Lawyer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.snapshots) == 0 {
		return nil
	}
	return s.snapshots[len(s.snapshots)-1]
}

// logCapture records appended lines and optionally fails every write
type logCapture struct {
	mu    sync.Mutex
	lines []string
	fail  bool
}

func (l *logCapture) Append(ts time.Time, message string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fail {
		return errors.New("disk full")
	}
	l.lines = append(l.lines, message)
	return nil
}

func (l *logCapture) count(substr string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, line := range l.lines {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}

func newTestAllocator(seed int64, status StatusSink) (*Allocator, *LawyerPool) {
	pool := NewLawyerPool(status)
	return NewAllocator(pool, NewRandomProcess(seed), 2), pool
}

func busyCount(lawyers []Lawyer) int {
	n := 0
	for _, l := range lawyers {
		if l.IsBusy {
			n++
		}
	}
	return n
}
