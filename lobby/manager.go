package lobby

import (
	"context"
	"sync"
	"time"

	"github.com/Jaggernaut555/chaoticbot/logging"
	"github.com/google/uuid"
)

// Manager owns every open lobby and advances their countdowns
type Manager struct {
	mu       sync.Mutex
	lobbies  map[uuid.UUID]*Lobby
	interval time.Duration
}

func NewManager() *Manager {
	return &Manager{
		lobbies:  make(map[uuid.UUID]*Lobby),
		interval: TickSeconds * time.Second,
	}
}

func (m *Manager) Add(l *Lobby) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lobbies[l.ID] = l
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.lobbies)
}

// TickAll advances every collecting lobby and forgets the ones that are done
func (m *Manager) TickAll() {
	m.mu.Lock()
	open := make([]*Lobby, 0, len(m.lobbies))
	for _, l := range m.lobbies {
		open = append(open, l)
	}
	m.mu.Unlock()

	for _, l := range open {
		if l.Status() == Collecting {
			l.Tick()
		}
		if l.Status() != Collecting {
			m.mu.Lock()
			delete(m.lobbies, l.ID)
			m.mu.Unlock()
		}
	}
}

// Run ticks until ctx ends, then cancels whatever is still open
func (m *Manager) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.TickAll()
		case <-ctx.Done():
			m.cancelAll()
			return ctx.Err()
		}
	}
}

func (m *Manager) cancelAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, l := range m.lobbies {
		l.Cancel()
		delete(m.lobbies, id)
	}
	logging.Log("cancelled open lobbies")
}
