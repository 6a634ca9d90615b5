package auth

import (
	"context"
	"errors"
	"sync"
)

// MemoryStore is an in-process Store used by tests and dry runs
type MemoryStore struct {
	mu   sync.Mutex
	cred *Credential

	// AddErr, when set, makes the next Add fail
	AddErr error
	// FindErr, when set, makes Find fail
	FindErr error

	adds    int
	deletes int
}

// NewMemoryStore creates a store, optionally preloaded with cred
func NewMemoryStore(cred *Credential) *MemoryStore {
	s := &MemoryStore{}
	if cred != nil {
		c := *cred
		s.cred = &c
	}
	return s
}

func (s *MemoryStore) Find(_ context.Context) (*Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FindErr != nil {
		return nil, s.FindErr
	}
	if s.cred == nil {
		return nil, nil
	}
	c := *s.cred
	return &c, nil
}

func (s *MemoryStore) Add(_ context.Context, cred Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adds++
	if err := s.AddErr; err != nil {
		s.AddErr = nil
		return &StoreError{Operation: "add", Err: err}
	}
	if s.cred != nil {
		return &StoreError{Operation: "add", Err: errors.New("entry already exists")}
	}
	s.cred = &cred
	return nil
}

func (s *MemoryStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes++
	s.cred = nil
	return nil
}

// Current returns the stored credential without going through Find
func (s *MemoryStore) Current() *Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cred == nil {
		return nil
	}
	c := *s.cred
	return &c
}

// Writes returns how many times Add was called
func (s *MemoryStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adds
}
