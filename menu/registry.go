package menu

import (
	"context"
	"sync"

	"github.com/Jaggernaut555/chaoticbot/state"
	"github.com/google/uuid"
)

// Registry knows every live menu and routes reactions to them
type Registry struct {
	mu        sync.Mutex
	menus     map[uuid.UUID]*Menu
	byMessage map[string]*Menu
}

func NewRegistry() *Registry {
	return &Registry{
		menus:     make(map[uuid.UUID]*Menu),
		byMessage: make(map[string]*Menu),
	}
}

func (r *Registry) Add(m *Menu) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.menus[m.ID] = m
	r.byMessage[m.MessageID()] = m
}

func (r *Registry) Remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.menus[id]; ok {
		delete(r.byMessage, m.MessageID())
		delete(r.menus, id)
	}
}

// Len is the number of live menus
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.menus)
}

// HandleReaction passes the reaction to the menu living on that message, if any
func (r *Registry) HandleReaction(ctx context.Context, reaction state.Reaction) bool {
	r.mu.Lock()
	m, ok := r.byMessage[reaction.MessageID]
	r.mu.Unlock()
	if !ok {
		return false
	}
	return m.Handle(ctx, reaction)
}
