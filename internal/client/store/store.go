// Package store is a small state container: one owned state value, one
// reducer, synchronous ordered dispatch and change notification.
//
// A Store is created by its owner and handed to whoever needs it; there is
// no package-level instance.
package store

import (
	"context"
	"sync"
)

// Action is a named event. Type is the transition name used for routing,
// e.g. "auth/LOGIN_ATTEMPT".
type Action interface {
	Type() string
}

// Reducer computes the next state. It must be pure and must not modify
// the state it was given.
type Reducer[S any] func(state S, action Action) S

// Listener observes every applied action with the state before and after it.
type Listener[S any] func(prev, next S, action Action)

// Dispatcher is the write side of a Store.
type Dispatcher interface {
	Dispatch(action Action)
	DispatchContext(ctx context.Context, action Action) error
}

type subscription[S any] struct {
	id uint64
	fn Listener[S]
}

type Store[S any] struct {
	// dispatchMu serialises reduce+notify so listeners see actions in order.
	dispatchMu sync.Mutex

	stateMu sync.RWMutex
	state   S
	reducer Reducer[S]

	subMu     sync.Mutex
	listeners []subscription[S]
	nextID    uint64
}

var _ Dispatcher = (*Store[struct{}])(nil)

func New[S any](initial S, reducer Reducer[S]) *Store[S] {
	return &Store[S]{state: initial, reducer: reducer}
}

// State returns the current state. It is safe to call from a listener.
func (s *Store[S]) State() S {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

// Dispatch applies the action and notifies listeners before returning.
// Listeners run while the dispatch lock is held and must not dispatch
// synchronously; starting a goroutine that dispatches is fine.
func (s *Store[S]) Dispatch(action Action) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()
	s.apply(action)
}

// DispatchContext is Dispatch for work that may have been cancelled: when
// ctx is already done the action is dropped and ctx.Err() is returned.
// The check happens under the dispatch lock, so an action that cancels ctx
// from another dispatch can never be overtaken by this one.
func (s *Store[S]) DispatchContext(ctx context.Context, action Action) error {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	s.apply(action)
	return nil
}

func (s *Store[S]) apply(action Action) {
	s.stateMu.Lock()
	prev := s.state
	next := s.reducer(prev, action)
	s.state = next
	s.stateMu.Unlock()

	s.subMu.Lock()
	listeners := make([]subscription[S], len(s.listeners))
	copy(listeners, s.listeners)
	s.subMu.Unlock()

	for _, l := range listeners {
		l.fn(prev, next, action)
	}
}

// Subscribe registers fn for every later dispatch, in registration order.
// The returned function removes it and may be called more than once.
func (s *Store[S]) Subscribe(fn Listener[S]) (unsubscribe func()) {
	s.subMu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription[S]{id: id, fn: fn})
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// WaitFor blocks until ready reports true for the current or a later state,
// or until ctx is done.
func (s *Store[S]) WaitFor(ctx context.Context, ready func(S) bool) (S, error) {
	found := make(chan S, 1)
	unsubscribe := s.Subscribe(func(_, next S, _ Action) {
		if ready(next) {
			select {
			case found <- next:
			default:
			}
		}
	})
	defer unsubscribe()

	if st := s.State(); ready(st) {
		return st, nil
	}

	select {
	case st := <-found:
		return st, nil
	case <-ctx.Done():
		var zero S
		return zero, ctx.Err()
	}
}
