// Package shutdown turns process-wide termination signals into context
// cancellation.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Manager listens for SIGTERM/SIGINT and exposes the event as a closed
// channel and as context cancellation. Trigger allows programmatic shutdown
// through the same path.
type Manager struct {
	sigChan  chan os.Signal
	doneChan chan struct{}
	once     sync.Once
}

// New creates a shutdown manager and starts listening for signals.
func New() *Manager {
	m := &Manager{
		sigChan:  make(chan os.Signal, 1),
		doneChan: make(chan struct{}),
	}
	signal.Notify(m.sigChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		select {
		case <-m.sigChan:
			m.Trigger()
		case <-m.doneChan:
		}
	}()
	return m
}

// Trigger initiates shutdown. Safe to call multiple times.
func (m *Manager) Trigger() {
	m.once.Do(func() {
		close(m.doneChan)
	})
}

// Done returns a channel closed once shutdown has been initiated.
func (m *Manager) Done() <-chan struct{} {
	return m.doneChan
}

// Context returns a child of parent that is cancelled when shutdown is
// initiated.
func (m *Manager) Context(parent context.Context) context.Context {
	ctx, cancel := context.WithCancel(parent)
	go func() {
		select {
		case <-m.doneChan:
		case <-ctx.Done():
		}
		cancel()
	}()
	return ctx
}
