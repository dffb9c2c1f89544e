package simulation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func newTestQueue() (*QueueManager, *statusCapture, *logCapture) {
	status := &statusCapture{}
	log := &logCapture{}
	clock, _ := newFakeClock()
	return NewQueueManager(status, log, clock), status, log
}

func TestQueueManager_Enqueue_NotifiesSinks(t *testing.T) {
	// GIVEN an empty line
	q, status, log := newTestQueue()
	c := &Client{ID: 1, PrefersHighCategory: true, EnqueueTime: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}

	// WHEN a client is enqueued
	require.NoError(t, q.Enqueue(c))

	// THEN an added event and an arrival line are emitted
	assert.Equal(t, []QueueEvent{{Kind: QueueEventAdded, ClientID: 1, PrefersHighCategory: true}}, status.queueEvents())
	assert.Equal(t, []string{"Client 1 arrived at 2024-01-01 09:00:00"}, log.lines)
	assert.Equal(t, 1, q.Len())
}

func TestQueueManager_Enqueue_Duplicate(t *testing.T) {
	q, status, _ := newTestQueue()
	c := &Client{ID: 1}
	require.NoError(t, q.Enqueue(c))

	err := q.Enqueue(c)

	assert.ErrorIs(t, err, ErrAlreadyQueued)
	assert.Equal(t, 1, q.Len())
	assert.Len(t, status.queueEvents(), 1)
}

func TestQueueManager_DequeueSpecific_RemovesByIdentity(t *testing.T) {
	// GIVEN a line [A, B, C]
	q, status, _ := newTestQueue()
	a, b, c := &Client{ID: 1}, &Client{ID: 2}, &Client{ID: 3}
	for _, cl := range []*Client{a, b, c} {
		require.NoError(t, q.Enqueue(cl))
	}

	// WHEN B, who is not at the head, gets a lawyer
	require.NoError(t, q.DequeueSpecific(b))

	// THEN A and C keep their order and a removed event names B
	assert.Equal(t, []*Client{a, c}, q.Snapshot())
	events := status.queueEvents()
	assert.Equal(t, QueueEvent{Kind: QueueEventRemoved, ClientID: 2}, events[len(events)-1])
}

func TestQueueManager_DequeueSpecific_NotQueued(t *testing.T) {
	q, status, _ := newTestQueue()
	err := q.DequeueSpecific(&Client{ID: 9})

	assert.ErrorIs(t, err, ErrNotQueued)
	assert.Empty(t, status.queueEvents())
}

func TestQueueManager_Drain(t *testing.T) {
	q, status, _ := newTestQueue()
	a, b := &Client{ID: 1}, &Client{ID: 2}
	require.NoError(t, q.Enqueue(a))
	require.NoError(t, q.Enqueue(b))

	drained := q.Drain()

	assert.Equal(t, []*Client{a, b}, drained)
	assert.Equal(t, 0, q.Len())
	assert.Len(t, status.queueEvents(), 4)
}

// TestQueueManager_Rapid checks the line against a slice model under random
// enqueue and out-of-order dequeue sequences
func TestQueueManager_Rapid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		q, status, _ := newTestQueue()
		var model []*Client
		nextID := int64(0)
		added, removed := 0, 0

		t.Repeat(map[string]func(*rapid.T){
			"enqueue": func(t *rapid.T) {
				nextID++
				c := &Client{ID: nextID, PrefersHighCategory: rapid.Bool().Draw(t, "prefersHigh")}
				require.NoError(t, q.Enqueue(c))
				model = append(model, c)
				added++
			},
			"dequeueSpecific": func(t *rapid.T) {
				if len(model) == 0 {
					t.Skip("line is empty")
				}
				i := rapid.IntRange(0, len(model)-1).Draw(t, "index")
				require.NoError(t, q.DequeueSpecific(model[i]))
				model = append(model[:i:i], model[i+1:]...)
				removed++
			},
			"dequeueTwice": func(t *rapid.T) {
				if len(model) == 0 {
					t.Skip("line is empty")
				}
				c := model[0]
				require.NoError(t, q.DequeueSpecific(c))
				model = model[1:]
				removed++
				require.ErrorIs(t, q.DequeueSpecific(c), ErrNotQueued)
			},
			"": func(t *rapid.T) {
				snapshot := q.Snapshot()
				require.Len(t, snapshot, len(model))
				for i := range model {
					require.Same(t, model[i], snapshot[i])
				}
				require.Len(t, status.queueEvents(), added+removed)
			},
		})
	})
}
