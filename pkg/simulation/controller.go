package simulation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sherine-k/consultation/pkg/config"
)

const timeLayout = "2006-01-02 15:04:05"

// State is the lifecycle state of a Controller
type State int

const (
	StateStopped State = iota
	StateRunning
)

func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "stopped"
}

// Controller drives the simulation: an arrival loop creates clients and a
// service goroutine per client obtains a lawyer, holds it for the service
// time and releases it. Every goroutine is tracked so that Stop returns
// only once all leases have been released.
type Controller struct {
	config  *config.Config
	clock   Clock
	rng     *RandomProcess
	pool    *LawyerPool
	alloc   *Allocator
	queue   *QueueManager
	metrics *MetricsCollector
	journal *journal

	mu         sync.Mutex
	state      State
	stopping   bool
	terminated bool
	runID      string
	cancel     context.CancelFunc
	tasks      sync.WaitGroup

	nextClientID atomic.Int64
}

// NewController validates cfg and wires the simulation components. A nil
// clock runs on wall time at the configured time scale; nil sinks discard
// their input.
func NewController(cfg *config.Config, clock Clock, status StatusSink, log LogSink) (*Controller, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if clock == nil {
		clock = wallClock(cfg.TimeScale)
	}
	if status == nil {
		status = NopStatusSink{}
	}
	if log == nil {
		log = discardLog{}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	j := &journal{sink: log, clock: clock}
	rng := NewRandomProcess(seed)
	pool := NewLawyerPool(status)

	return &Controller{
		config:  cfg,
		clock:   clock,
		rng:     rng,
		pool:    pool,
		alloc:   NewAllocator(pool, rng, cfg.MaxClaimRetries),
		queue:   newQueueManager(status, j),
		metrics: NewMetricsCollector(),
		journal: j,
	}, nil
}

// Start begins a new run. Waiting times and leftover waiting clients of the
// previous run are cleared.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.terminated {
		return ErrShutdown
	}
	if c.state == StateRunning {
		return ErrAlreadyRunning
	}

	c.queue.Drain()
	c.metrics.Reset()

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.runID = uuid.NewString()
	c.state = StateRunning

	log := logrus.WithField("run", c.runID)
	log.Info("Simulation started")

	c.tasks.Add(1)
	go c.arrivalLoop(ctx, log)
	return nil
}

// Stop cancels the run, waits until every client goroutine has released its
// lawyer and returns the average waiting time in seconds. The state stays
// running until the goroutines are gone; a concurrent Stop gets
// ErrNotRunning.
func (c *Controller) Stop() (float64, error) {
	c.mu.Lock()
	if c.state != StateRunning || c.stopping {
		c.mu.Unlock()
		return 0, ErrNotRunning
	}
	c.stopping = true
	cancel, runID := c.cancel, c.runID
	c.mu.Unlock()

	cancel()
	c.tasks.Wait()

	c.mu.Lock()
	c.state = StateStopped
	c.stopping = false
	c.mu.Unlock()

	avg := c.metrics.Average()
	c.journal.printf("Simulation stopped.")
	logrus.WithFields(logrus.Fields{
		"run":     runID,
		"served":  c.metrics.Count(),
		"average": avg,
	}).Info("Simulation stopped")
	return avg, nil
}

// Shutdown cancels any run and waits for it to unwind. The controller can
// not be started again afterwards.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	if c.terminated {
		c.mu.Unlock()
		return
	}
	c.terminated = true
	cancel := c.cancel
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.tasks.Wait()

	c.mu.Lock()
	c.state = StateStopped
	c.mu.Unlock()
}

// CurrentAverageWaitingTime returns the average waiting time of the current
// (or last) run in seconds
func (c *Controller) CurrentAverageWaitingTime() float64 {
	return c.metrics.Average()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// RunID identifies the current or last run
func (c *Controller) RunID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runID
}

func (c *Controller) QueueLength() int {
	return c.queue.Len()
}

func (c *Controller) Lawyers() []Lawyer {
	return c.pool.ListAll()
}

func (c *Controller) AllocatorStats() AllocatorStats {
	return c.alloc.Stats()
}

// ServedClients returns how many clients were assigned a lawyer in this run
func (c *Controller) ServedClients() int {
	return c.metrics.Count()
}

func (c *Controller) arrivalLoop(ctx context.Context, log *logrus.Entry) {
	defer c.tasks.Done()

	for {
		if err := c.clock.Sleep(ctx, c.rng.NextInterval(c.config.ArrivalMean)); err != nil {
			return
		}

		client := c.newClient()
		if err := c.queue.Enqueue(client); err != nil {
			log.WithError(err).Error("Error in client arrival")
			c.journal.printf("Error in client arrival: %v", err)
			continue
		}

		c.tasks.Add(1)
		go c.serve(ctx, client, log.WithField("client", client.ID))
	}
}

func (c *Controller) newClient() *Client {
	id := c.nextClientID.Add(1)

	var prefersHigh bool
	switch c.config.PreferenceMode {
	case config.PreferenceModeEveryNth:
		prefersHigh = id%int64(c.config.HighCategoryEvery) == 0
	default:
		prefersHigh = c.rng.Bernoulli(c.config.HighCategoryProbability)
	}

	return &Client{ID: id, PrefersHighCategory: prefersHigh, EnqueueTime: c.clock.Now()}
}

func (c *Controller) serve(ctx context.Context, client *Client, log *logrus.Entry) {
	defer c.tasks.Done()

	lease, err := c.alloc.Acquire(ctx, client)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.WithError(err).Warn("Client dropped")
		c.journal.printf("Error processing client %d: %v", client.ID, err)
		if err := c.queue.DequeueSpecific(client); err != nil {
			log.WithError(err).Error("Dropped client not in waiting line")
		}
		return
	}

	log = log.WithField("lawyer", lease.Lawyer.ID)
	outcome := "interrupted"
	defer func() {
		if err := lease.Release(); err != nil {
			log.WithError(err).Error("Error releasing lawyer")
			c.journal.printf("Error releasing Lawyer %d for client %d: %v", lease.Lawyer.ID, client.ID, err)
		}
		c.journal.printf("Client %d %s with Lawyer %d at %s", client.ID, outcome, lease.Lawyer.ID, c.clock.Now().Format(timeLayout))
	}()

	if err := c.queue.DequeueSpecific(client); err != nil {
		log.WithError(err).Error("Assigned client not in waiting line")
		c.journal.printf("Error processing client %d: %v", client.ID, err)
		return
	}

	assignedAt := c.clock.Now()
	waiting := assignedAt.Sub(client.EnqueueTime).Seconds()
	c.metrics.Record(waiting)
	c.journal.printf("Client %d assigned to Lawyer %d at %s, waiting time: %.2f sec",
		client.ID, lease.Lawyer.ID, assignedAt.Format(timeLayout), waiting)
	log.WithField("token", lease.Token.String()).Debugf("Assigned after %.2fs", waiting)

	if err := c.clock.Sleep(ctx, c.rng.NextInterval(c.config.ServiceMean)); err != nil {
		return
	}
	outcome = "finished"
}
