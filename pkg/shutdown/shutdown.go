// Package shutdown runs registered cleanup hooks on process exit, bounded
// by a caller-supplied deadline.
package shutdown

import (
	"context"
	"sync"

	"github.com/w6g2000/polymarket-go-client/pkg/logger"
)

// Handler is one cleanup hook. It should respect ctx cancellation.
type Handler func(ctx context.Context)

// Manager collects hooks and runs them concurrently on Shutdown.
type Manager struct {
	mu        sync.Mutex
	callbacks []Handler
}

func NewManager() *Manager {
	return &Manager{}
}

// OnShutdown registers a cleanup hook.
func (m *Manager) OnShutdown(handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, handler)
}

// Shutdown runs every hook and blocks until all finish or ctx expires.
// Pass a context with a timeout; a hung hook otherwise blocks exit.
func (m *Manager) Shutdown(ctx context.Context) {
	m.mu.Lock()
	callbacks := m.callbacks
	m.mu.Unlock()

	log := logger.Named("shutdown")
	if len(callbacks) == 0 {
		return
	}
	log.Infof("running %d shutdown hooks", len(callbacks))

	var wg sync.WaitGroup
	wg.Add(len(callbacks))
	for _, cb := range callbacks {
		go func(handler Handler) {
			defer wg.Done()
			handler(ctx)
		}(cb)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("shutdown complete")
	case <-ctx.Done():
		log.Warnf("shutdown timed out: %v", ctx.Err())
	}
}
