package simulation

import (
	"fmt"
	"time"
)

// Client is a visitor of the consultation office. Immutable after creation.
type Client struct {
	ID                  int64
	PrefersHighCategory bool
	EnqueueTime         time.Time
}

func (c *Client) String() string {
	return fmt.Sprintf("client %d (prefers high category: %t)", c.ID, c.PrefersHighCategory)
}

// Lawyer is a value snapshot of one lawyer of the pool
type Lawyer struct {
	ID             int
	IsHighCategory bool
	IsBusy         bool
}

func (l Lawyer) String() string {
	category := ""
	if l.IsHighCategory {
		category = " (high category)"
	}
	status := "free"
	if l.IsBusy {
		status = "busy"
	}
	return fmt.Sprintf("Lawyer %d%s: %s", l.ID, category, status)
}
