package simulation

import (
	"fmt"
	"sync"

	"github.com/gammazero/deque"
)

// QueueManager owns the waiting line. Clients join at the tail and leave by
// identity once a lawyer was assigned to them, so service order is not
// strictly FIFO.
type QueueManager struct {
	mu      sync.Mutex
	line    deque.Deque[*Client]
	status  StatusSink
	journal *journal
}

func newQueueManager(status StatusSink, j *journal) *QueueManager {
	return &QueueManager{status: status, journal: j}
}

// NewQueueManager creates an empty waiting line reporting to the given sinks
func NewQueueManager(status StatusSink, log LogSink, clock Clock) *QueueManager {
	if status == nil {
		status = NopStatusSink{}
	}
	if log == nil {
		log = discardLog{}
	}
	if clock == nil {
		clock = wallClock(1)
	}
	return newQueueManager(status, &journal{sink: log, clock: clock})
}

// Enqueue appends c to the tail of the line
func (q *QueueManager) Enqueue(c *Client) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.indexLocked(c) >= 0 {
		return fmt.Errorf("client %d: %w", c.ID, ErrAlreadyQueued)
	}
	q.line.PushBack(c)
	q.status.OnQueueChanged(QueueEvent{Kind: QueueEventAdded, ClientID: c.ID, PrefersHighCategory: c.PrefersHighCategory})
	q.journal.printf("Client %d arrived at %s", c.ID, c.EnqueueTime.Format(timeLayout))
	return nil
}

// DequeueSpecific removes c from wherever it stands in the line
func (q *QueueManager) DequeueSpecific(c *Client) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	idx := q.indexLocked(c)
	if idx < 0 {
		return fmt.Errorf("client %d: %w", c.ID, ErrNotQueued)
	}
	q.line.Remove(idx)
	q.status.OnQueueChanged(QueueEvent{Kind: QueueEventRemoved, ClientID: c.ID, PrefersHighCategory: c.PrefersHighCategory})
	return nil
}

// Drain empties the line and returns the clients that were still waiting
func (q *QueueManager) Drain() []*Client {
	q.mu.Lock()
	defer q.mu.Unlock()

	var drained []*Client
	for q.line.Len() > 0 {
		c := q.line.PopFront()
		drained = append(drained, c)
		q.status.OnQueueChanged(QueueEvent{Kind: QueueEventRemoved, ClientID: c.ID, PrefersHighCategory: c.PrefersHighCategory})
	}
	return drained
}

func (q *QueueManager) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.line.Len()
}

// Snapshot returns the waiting clients in line order
func (q *QueueManager) Snapshot() []*Client {
	q.mu.Lock()
	defer q.mu.Unlock()

	clients := make([]*Client, 0, q.line.Len())
	for i := 0; i < q.line.Len(); i++ {
		clients = append(clients, q.line.At(i))
	}
	return clients
}

func (q *QueueManager) indexLocked(c *Client) int {
	return q.line.Index(func(queued *Client) bool { return queued == c })
}
