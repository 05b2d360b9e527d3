// Package donestate keeps the list of question files a user has marked done.
package donestate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

var ErrPersist = errors.New("failed to save done state")

// Backend stores the identifier list. Write replaces the stored list entirely.
type Backend interface {
	Read(ctx context.Context) ([]string, error)
	Write(ctx context.Context, ids []string) error
}

// Store serialises writers inside one process. Two processes sharing the same
// backend still race and the last write wins.
type Store struct {
	backend Backend
	mu      sync.Mutex
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Load never fails: a missing or unreadable state is reported as empty.
func (s *Store) Load(ctx context.Context) []string {
	ids, err := s.backend.Read(ctx)
	if err != nil {
		log.Printf("error loading done state: %v", err)
		return []string{}
	}
	if ids == nil {
		return []string{}
	}
	return ids
}

func (s *Store) Save(ctx context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, ids)
}

// Toggle flips the membership of id and persists the result. When the write
// fails the previous state is left in place and ErrPersist is returned.
func (s *Store) Toggle(ctx context.Context, id string) (bool, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, isDone := toggle(s.Load(ctx), id)
	if err := s.save(ctx, next); err != nil {
		return false, nil, err
	}
	return isDone, next, nil
}

func (s *Store) save(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	if err := s.backend.Write(ctx, ids); err != nil {
		log.Printf("error saving done state: %v", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// toggle removes the first occurrence of id, or appends it when absent.
func toggle(ids []string, id string) ([]string, bool) {
	out := make([]string, 0, len(ids)+1)
	for i, v := range ids {
		if v == id {
			out = append(out, ids[:i]...)
			return append(out, ids[i+1:]...), false
		}
	}
	out = append(out, ids...)
	return append(out, id), true
}
