// Package resources tracks the handles the client opens (database, HTTP
// transport, background watchers) and releases them together on exit.
package resources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/storykeeper/internal/logging"
)

type closer struct {
	name string
	fn   func() error
}

// Manager closes registered resources in reverse registration order.
// It is safe for concurrent use; Close is idempotent.
type Manager struct {
	mu      sync.Mutex
	closers []closer
	closed  bool
	log     logging.Logger
}

func NewManager(log logging.Logger) *Manager {
	return &Manager{log: log}
}

// Add registers c under name. Adding after Close closes c immediately.
func (m *Manager) Add(name string, c io.Closer) {
	m.AddFunc(name, c.Close)
}

// AddFunc registers a release function, e.g. a context.CancelFunc wrapper.
func (m *Manager) AddFunc(name string, fn func() error) {
	m.mu.Lock()
	if !m.closed {
		m.closers = append(m.closers, closer{name: name, fn: fn})
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	if err := fn(); err != nil {
		m.log.Warn(context.Background(), "closing late resource failed", "resource", name, "error", err)
	}
}

// Len reports how many resources are still open.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.closers)
}

// Close releases everything and joins the errors.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	closers := m.closers
	m.closers = nil
	m.mu.Unlock()

	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		c := closers[i]
		if err := c.fn(); err != nil {
			m.log.Warn(context.Background(), "closing resource failed", "resource", c.name, "error", err)
			errs = append(errs, fmt.Errorf("close %s: %w", c.name, err))
			continue
		}
		m.log.Debug(context.Background(), "resource closed", "resource", c.name)
	}
	return errors.Join(errs...)
}
