package connectivity

import (
	"sync"

	"github.com/MKhiriev/edu-offline/internal/logger"
)

// Monitor is the connectivity state shared by the services.
type Monitor struct {
	mu     sync.RWMutex
	online bool
	subs   map[uint64]func(online bool)
	nextID uint64

	// notifyMu keeps transition callbacks in transition order.
	notifyMu sync.Mutex

	logger *logger.Logger
}

// NewMonitor returns a Monitor in the given initial state.
func NewMonitor(online bool, logger *logger.Logger) *Monitor {
	return &Monitor{
		online: online,
		subs:   make(map[uint64]func(bool)),
		logger: logger,
	}
}

// Online reports the current state.
func (m *Monitor) Online() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

// SetOnline records a host connectivity event. Subscribers are called only
// when the state actually changes, synchronously and outside the state lock.
// A subscriber must not call SetOnline itself. It reports whether the state
// changed.
func (m *Monitor) SetOnline(online bool) bool {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return false
	}
	m.online = online
	subs := make([]func(bool), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	m.logger.Info().
		Str("func", "Monitor.SetOnline").
		Bool("online", online).
		Int("subscribers", len(subs)).
		Msg("connectivity changed")

	for _, fn := range subs {
		fn(online)
	}
	return true
}

// Subscribe registers fn for state transitions and returns a function that
// removes it. The returned function is safe to call more than once.
func (m *Monitor) Subscribe(fn func(online bool)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}
}
