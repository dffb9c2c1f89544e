package simulation

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

// TokenKind identifies which admission token a lease holds
type TokenKind int

const (
	TokenHigh TokenKind = iota
	TokenRegular
)

func (k TokenKind) String() string {
	if k == TokenHigh {
		return "high"
	}
	return "regular"
}

const (
	highTokenCapacity    = 1
	regularTokenCapacity = RegularLawyerCount
)

// AllocatorStats is a point-in-time view of token usage
type AllocatorStats struct {
	HighInUse       int64
	RegularInUse    int64
	HighAcquired    int64
	HighReleased    int64
	RegularAcquired int64
	RegularReleased int64
	// Tokens granted while no matching lawyer was free, then handed back
	Leaks int64
}

type tokenCounters struct {
	inUse    atomic.Int64
	acquired atomic.Int64
	released atomic.Int64
}

// Allocator decides which lawyer serves a client. Two counting tokens gate
// access: the high token (capacity 1) stands for the high-category lawyer
// and the regular token (capacity 5) for the regular lawyers. A client that
// prefers the regular category borrows the high-category lawyer whenever
// the high token is free at decision time.
type Allocator struct {
	pool       *LawyerPool
	rng        *RandomProcess
	maxRetries int

	high    *semaphore.Weighted
	regular *semaphore.Weighted

	highCounters    tokenCounters
	regularCounters tokenCounters
	leaks           atomic.Int64
}

// NewAllocator creates an allocator over pool. maxRetries bounds how often a
// client re-acquires a token after being granted one with no free lawyer.
func NewAllocator(pool *LawyerPool, rng *RandomProcess, maxRetries int) *Allocator {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Allocator{
		pool:       pool,
		rng:        rng,
		maxRetries: maxRetries,
		high:       semaphore.NewWeighted(highTokenCapacity),
		regular:    semaphore.NewWeighted(regularTokenCapacity),
	}
}

// Acquire blocks until a lawyer is assigned to c or ctx is done. On success
// the lawyer is already marked busy and the caller owns the returned lease,
// which must be released exactly once. On cancellation no token is held.
func (a *Allocator) Acquire(ctx context.Context, c *Client) (*Lease, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	kind := TokenRegular
	if c.PrefersHighCategory {
		kind = TokenHigh
	} else if a.high.TryAcquire(1) {
		lease, err := a.claim(ctx, TokenHigh, c)
		if !errors.Is(err, ErrNoFreeLawyer) {
			return lease, err
		}
	}

	var err error
	for attempt := 0; attempt <= a.maxRetries; attempt++ {
		if err = a.token(kind).Acquire(ctx, 1); err != nil {
			return nil, err
		}
		var lease *Lease
		lease, err = a.claim(ctx, kind, c)
		if !errors.Is(err, ErrNoFreeLawyer) {
			return lease, err
		}
	}
	return nil, fmt.Errorf("client %d: %d attempts on %s token: %w", c.ID, a.maxRetries+1, kind, err)
}

// claim turns a held token into a lease. The token is handed back if the
// context was cancelled meanwhile or no lawyer of the kind is free.
func (a *Allocator) claim(ctx context.Context, kind TokenKind, c *Client) (*Lease, error) {
	if err := ctx.Err(); err != nil {
		a.token(kind).Release(1)
		return nil, err
	}

	lawyer, err := a.pool.Claim(kind == TokenHigh, a.rng.Intn)
	if err != nil {
		a.token(kind).Release(1)
		a.leaks.Add(1)
		logrus.WithFields(logrus.Fields{
			"client": c.ID,
			"token":  kind.String(),
		}).Warn("token granted without a free lawyer, returning it")
		return nil, err
	}

	counters := a.counters(kind)
	counters.inUse.Add(1)
	counters.acquired.Add(1)

	return &Lease{Client: c, Lawyer: lawyer, Token: kind, alloc: a}, nil
}

// release frees the lawyer first so that a token holder always finds one
func (a *Allocator) release(l *Lease) error {
	err := a.pool.SetBusy(l.Lawyer.ID, false)

	counters := a.counters(l.Token)
	counters.inUse.Add(-1)
	counters.released.Add(1)
	a.token(l.Token).Release(1)

	return err
}

// Stats returns the current token usage
func (a *Allocator) Stats() AllocatorStats {
	return AllocatorStats{
		HighInUse:       a.highCounters.inUse.Load(),
		RegularInUse:    a.regularCounters.inUse.Load(),
		HighAcquired:    a.highCounters.acquired.Load(),
		HighReleased:    a.highCounters.released.Load(),
		RegularAcquired: a.regularCounters.acquired.Load(),
		RegularReleased: a.regularCounters.released.Load(),
		Leaks:           a.leaks.Load(),
	}
}

func (a *Allocator) token(kind TokenKind) *semaphore.Weighted {
	if kind == TokenHigh {
		return a.high
	}
	return a.regular
}

func (a *Allocator) counters(kind TokenKind) *tokenCounters {
	if kind == TokenHigh {
		return &a.highCounters
	}
	return &a.regularCounters
}

// Lease pairs an assigned lawyer with the token kind that was acquired for
// it. A regular client borrowing the high-category lawyer holds the high
// token, and releasing the lease returns the high token.
type Lease struct {
	Client *Client
	Lawyer Lawyer
	Token  TokenKind

	alloc    *Allocator
	released atomic.Bool
}

// Release frees the lawyer and returns the token. Only the first call has an
// effect; later calls return ErrLeaseReleased.
func (l *Lease) Release() error {
	if !l.released.CompareAndSwap(false, true) {
		return ErrLeaseReleased
	}
	return l.alloc.release(l)
}
