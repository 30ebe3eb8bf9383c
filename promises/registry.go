// Package promises correlates ids with pending decisions that some later
// action settles exactly once.
package promises

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"chatdesk/cache"
	"chatdesk/logging"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned for ids that were never registered or were
	// already settled
	ErrNotFound = errors.New("promise not found")

	// ErrExpired rejects deferreds that were not settled within the TTL
	ErrExpired = errors.New("promise expired before it was settled")

	// ErrCleared rejects deferreds still pending when the registry closes
	ErrCleared = errors.New("promise registry closed")
)

// Registry maps generated ids to pending deferreds. Settling an id removes
// it, so each id is served once.
type Registry[T any] struct {
	entries *cache.MemoryCache[string, *Deferred[T]]
	logger  *slog.Logger
	newID   func() string
}

// NewRegistry creates a registry whose unsettled entries expire after ttl.
// A zero ttl keeps entries until settled or Close.
func NewRegistry[T any](ttl time.Duration, logger *slog.Logger) *Registry[T] {
	r := &Registry[T]{
		logger: logging.OrNop(logger),
		newID:  uuid.NewString,
	}
	r.entries = cache.NewMemoryCache[string, *Deferred[T]](ttl, 0,
		cache.WithOnEvict(r.onEvict),
	)
	return r
}

func (r *Registry[T]) onEvict(id string, d *Deferred[T], reason cache.EvictionReason) {
	err := ErrExpired
	if reason == cache.EvictedCleared {
		err = ErrCleared
	}
	if d.Reject(err) {
		r.logger.Warn("pending promise dropped", "promise_id", id, "reason", reason.String())
	}
}

// Set registers d and returns its correlation id
func (r *Registry[T]) Set(d *Deferred[T]) string {
	id := r.newID()
	r.entries.Set(id, d)
	r.logger.Debug("promise registered", "promise_id", id)
	return id
}

// Resolve settles the deferred registered under id with v
func (r *Registry[T]) Resolve(id string, v T) error {
	d, ok := r.entries.Take(id)
	if !ok {
		return fmt.Errorf("resolve %s: %w", id, ErrNotFound)
	}
	d.Resolve(v)
	r.logger.Debug("promise resolved", "promise_id", id)
	return nil
}

// Reject settles the deferred registered under id with err
func (r *Registry[T]) Reject(id string, err error) error {
	d, ok := r.entries.Take(id)
	if !ok {
		return fmt.Errorf("reject %s: %w", id, ErrNotFound)
	}
	d.Reject(err)
	r.logger.Debug("promise rejected", "promise_id", id, "error", err)
	return nil
}

// Pending reports whether id is registered and unsettled
func (r *Registry[T]) Pending(id string) bool {
	return r.entries.HasKey(id)
}

// Len returns the number of registered entries
func (r *Registry[T]) Len() int {
	return r.entries.Size()
}

// Close rejects every pending deferred with ErrCleared
func (r *Registry[T]) Close() {
	r.entries.Close()
}
