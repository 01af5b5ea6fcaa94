package state

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTimeout is returned when nothing matching arrived in time
var ErrTimeout = errors.New("timed out waiting for input")

// Reaction is a reaction added to or removed from a message
type Reaction struct {
	ChannelID string
	GuildID   string
	MessageID string
	UserID    string
	Emoji     string
	Added     bool
}

// Message is a message posted in a channel
type Message struct {
	ID        string
	ChannelID string
	AuthorID  string
	Content   string
}

type waiter[T any] struct {
	match func(T) bool
	found chan T
}

type waitList[T any] struct {
	mu      sync.Mutex
	nextID  int
	waiters map[int]*waiter[T]
}

func (l *waitList[T]) add(match func(T) bool) (int, *waiter[T]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.waiters == nil {
		l.waiters = make(map[int]*waiter[T])
	}
	l.nextID++
	w := &waiter[T]{match: match, found: make(chan T, 1)}
	l.waiters[l.nextID] = w
	return l.nextID, w
}

func (l *waitList[T]) remove(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.waiters, id)
}

// dispatch hands the event to every waiter it matches; each waiter gets at most one event
func (l *waitList[T]) dispatch(event T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for id, w := range l.waiters {
		if w.match(event) {
			w.found <- event
			delete(l.waiters, id)
		}
	}
}

func await[T any](ctx context.Context, l *waitList[T], match func(T) bool, timeout time.Duration) (T, error) {
	id, w := l.add(match)
	defer l.remove(id)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var zero T
	select {
	case event := <-w.found:
		return event, nil
	case <-timer.C:
		return zero, ErrTimeout
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Waiter lets code block until a reaction or message it cares about arrives
type Waiter struct {
	reactions waitList[Reaction]
	messages  waitList[Message]
}

func NewWaiter() *Waiter {
	return &Waiter{}
}

// AwaitReaction blocks until a reaction satisfies match, the timeout passes or ctx ends
func (w *Waiter) AwaitReaction(ctx context.Context, match func(Reaction) bool, timeout time.Duration) (Reaction, error) {
	return await(ctx, &w.reactions, match, timeout)
}

// AwaitMessage blocks until a message satisfies match, the timeout passes or ctx ends
func (w *Waiter) AwaitMessage(ctx context.Context, match func(Message) bool, timeout time.Duration) (Message, error) {
	return await(ctx, &w.messages, match, timeout)
}

// DispatchReaction feeds an incoming reaction to anyone waiting on it
func (w *Waiter) DispatchReaction(r Reaction) {
	w.reactions.dispatch(r)
}

// DispatchMessage feeds an incoming message to anyone waiting on it
func (w *Waiter) DispatchMessage(m Message) {
	w.messages.dispatch(m)
}
