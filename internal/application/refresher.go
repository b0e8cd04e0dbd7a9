package application

import (
	"context"
	"sync"
	"time"
)

// RefreshState is the last known refresh outcome: the most recent
// successful snapshot plus the error of the latest attempt, if any.
type RefreshState struct {
	Snapshot Snapshot
	HasData  bool
	LastErr  error
}

// Refresher drives the periodic status refresh cycle and keeps the latest
// result available to readers. Writes (punches) call RefreshNow eagerly so
// displayed state catches up without waiting for the next tick.
type Refresher struct {
	service  *Service
	interval time.Duration

	mu      sync.Mutex
	state   RefreshState
	updated chan struct{}
}

func NewRefresher(service *Service, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Refresher{
		service:  service,
		interval: interval,
		updated:  make(chan struct{}, 1),
	}
}

// Run performs an immediate refresh and then one per interval until the
// context is canceled. Failed cycles record the error and keep the last
// good snapshot; the next tick retries.
func (r *Refresher) Run(ctx context.Context) error {
	_, _ = r.RefreshNow(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			_, _ = r.RefreshNow(ctx)
		}
	}
}

// RefreshNow runs one refresh cycle and records its outcome.
func (r *Refresher) RefreshNow(ctx context.Context) (Snapshot, error) {
	snapshot, err := r.service.Refresh(ctx)

	r.mu.Lock()
	if err == nil {
		r.state.Snapshot = snapshot
		r.state.HasData = true
	}
	r.state.LastErr = err
	r.mu.Unlock()

	r.notify()
	return snapshot, err
}

// State returns the last known refresh outcome.
func (r *Refresher) State() RefreshState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Updated signals after every completed refresh cycle. The channel carries
// at most one pending notification.
func (r *Refresher) Updated() <-chan struct{} {
	return r.updated
}

func (r *Refresher) notify() {
	select {
	case r.updated <- struct{}{}:
	default:
	}
}
