package simulation

import "errors"

var (
	// ErrNoFreeLawyer is returned when a token was granted but no lawyer of
	// the matching category is free.
	ErrNoFreeLawyer   = errors.New("no free lawyer")
	ErrUnknownLawyer  = errors.New("unknown lawyer")
	ErrLeaseReleased  = errors.New("lease already released")
	ErrAlreadyQueued  = errors.New("client already in waiting line")
	ErrNotQueued      = errors.New("client not in waiting line")
	ErrAlreadyRunning = errors.New("simulation already running")
	ErrNotRunning     = errors.New("simulation not running")
	ErrShutdown       = errors.New("simulation shut down")
)
