package simulation

import (
	"fmt"
	"sync"
)

const (
	// HighCategoryLawyerID identifies the single high-category lawyer
	HighCategoryLawyerID = 0
	RegularLawyerCount   = 5
)

// LawyerPool owns the busy/free state of the office's lawyers: one
// high-category lawyer followed by the regular ones.
type LawyerPool struct {
	mu      sync.Mutex
	lawyers []Lawyer
	status  StatusSink
}

// NewLawyerPool creates the fixed pool and publishes its initial status
func NewLawyerPool(status StatusSink) *LawyerPool {
	if status == nil {
		status = NopStatusSink{}
	}

	p := &LawyerPool{status: status}
	p.lawyers = append(p.lawyers, Lawyer{ID: HighCategoryLawyerID, IsHighCategory: true})
	for i := 1; i <= RegularLawyerCount; i++ {
		p.lawyers = append(p.lawyers, Lawyer{ID: i})
	}

	p.mu.Lock()
	p.notifyLocked()
	p.mu.Unlock()
	return p
}

// ListAll returns a snapshot of every lawyer
func (p *LawyerPool) ListAll() []Lawyer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// ListFree returns the free lawyers of the given category
func (p *LawyerPool) ListFree(highCategory bool) []Lawyer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.freeLocked(highCategory)
}

// SetBusy changes one lawyer's busy flag and publishes the new status
func (p *LawyerPool) SetBusy(id int, busy bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	idx := p.indexLocked(id)
	if idx < 0 {
		return fmt.Errorf("lawyer %d: %w", id, ErrUnknownLawyer)
	}
	p.lawyers[idx].IsBusy = busy
	p.notifyLocked()
	return nil
}

// Claim picks a free lawyer of the given category and marks it busy in one
// step. pick chooses an index among n > 1 candidates; with a single
// candidate it is not called. Returns ErrNoFreeLawyer when none is free.
func (p *LawyerPool) Claim(highCategory bool, pick func(n int) int) (Lawyer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	free := p.freeLocked(highCategory)
	if len(free) == 0 {
		return Lawyer{}, ErrNoFreeLawyer
	}
	chosen := free[0]
	if len(free) > 1 {
		chosen = free[pick(len(free))]
	}

	idx := p.indexLocked(chosen.ID)
	p.lawyers[idx].IsBusy = true
	p.notifyLocked()
	return p.lawyers[idx], nil
}

func (p *LawyerPool) freeLocked(highCategory bool) []Lawyer {
	var free []Lawyer
	for _, l := range p.lawyers {
		if l.IsHighCategory == highCategory && !l.IsBusy {
			free = append(free, l)
		}
	}
	return free
}

func (p *LawyerPool) indexLocked(id int) int {
	for i, l := range p.lawyers {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (p *LawyerPool) snapshotLocked() []Lawyer {
	return append([]Lawyer(nil), p.lawyers...)
}

func (p *LawyerPool) notifyLocked() {
	p.status.OnLawyerStatusChanged(p.snapshotLocked())
}
