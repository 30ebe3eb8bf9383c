package modals

import (
	"context"
	"log/slog"
	"sync"

	"chatdesk/logging"
)

// Store is the single owner of the modal state. Dispatches are serialized.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners map[int]func(State)
	nextID    int
	logger    *slog.Logger
}

// NewStore creates a store holding initial
func NewStore(initial State, logger *slog.Logger) *Store {
	return &Store{
		state:     initial,
		listeners: make(map[int]func(State)),
		logger:    logging.Component(logging.OrNop(logger), "modals"),
	}
}

// State returns a copy of the current state. Callers may keep or modify it.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Dispatch reduces action into a new state and notifies subscribers
func (s *Store) Dispatch(action Action) {
	if action == nil {
		return
	}

	s.mu.Lock()
	s.state = Reduce(s.state, action)
	next := s.state
	listeners := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	s.logger.Debug("dispatch", "type", action.Type(), "visible", next.Visible())

	for _, fn := range listeners {
		fn(next.Clone())
	}
}

// Run executes thunk against the store
func (s *Store) Run(ctx context.Context, thunk Thunk) error {
	err := thunk(ctx, s.Dispatch, s.State)
	if err != nil {
		s.logger.Warn("thunk failed", "error", err)
	}
	return err
}

// Subscribe registers fn to receive every new state. The returned function
// removes it.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}
