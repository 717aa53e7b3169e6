package services

import (
	"sync"

	"github.com/geevapp/geev/internal/apperrors"
)

// ReentrancyGuard is a scoped mutual-exclusion flag around fund-distributing
// operations. A second guarded call that starts while one is still in flight
// fails with REENTRANT_CALL instead of observing intermediate state.
type ReentrancyGuard struct {
	mu       sync.Mutex
	inFlight bool
}

// NewReentrancyGuard creates a new ReentrancyGuard
func NewReentrancyGuard() *ReentrancyGuard {
	return &ReentrancyGuard{}
}

// Run executes body under the guard. The flag is released on every exit
// path, including a failing body; a stuck flag would permanently disable
// every guarded operation.
func (g *ReentrancyGuard) Run(body func() error) error {
	g.mu.Lock()
	if g.inFlight {
		g.mu.Unlock()
		return apperrors.New(apperrors.KindReentrantCall, "a guarded operation is already in flight")
	}
	g.inFlight = true
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.inFlight = false
		g.mu.Unlock()
	}()

	return body()
}
