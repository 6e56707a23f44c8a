package browser

import (
	"context"
	"sync"
	"time"
)

// HostLimiter bounds concurrency and request rate per host.
type HostLimiter struct {
	maxConcurrent int
	rpm           int
	hosts         map[string]*hostState
	mu            sync.Mutex
}

type hostState struct {
	sem         chan struct{}
	windowStart time.Time
	requests    int
	mu          sync.Mutex
}

func NewHostLimiter(maxConcurrent, rpm int) *HostLimiter {
	return &HostLimiter{
		maxConcurrent: maxConcurrent,
		rpm:           rpm,
		hosts:         make(map[string]*hostState),
	}
}

// Wait blocks until a request to host may proceed.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	l.mu.Lock()
	state, exists := l.hosts[host]
	if !exists {
		state = &hostState{sem: make(chan struct{}, l.maxConcurrent)}
		l.hosts[host] = state
	}
	l.mu.Unlock()

	select {
	case state.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-state.sem }()

	if l.rpm <= 0 {
		return nil
	}

	state.mu.Lock()
	now := time.Now()
	if now.Sub(state.windowStart) > time.Minute {
		state.windowStart = now
		state.requests = 0
	}

	var delay time.Duration
	if state.requests >= l.rpm {
		delay = time.Minute - now.Sub(state.windowStart)
		state.windowStart = now.Add(delay)
		state.requests = 0
	}
	state.requests++
	state.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
