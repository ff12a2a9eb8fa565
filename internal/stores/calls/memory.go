package calls

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethanbaker/calldash/pkg/calls"
)

// InMemoryStore provides an in-memory implementation of StoreInterface for testing
type InMemoryStore struct {
	records []*calls.Call
	mutex   sync.RWMutex
}

// NewInMemoryStore creates a new in-memory call store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		records: make([]*calls.Call, 0),
		mutex:   sync.RWMutex{},
	}
}

// Save appends a call to the store
func (s *InMemoryStore) Save(ctx context.Context, call *calls.Call) error {
	if call == nil || call.ID == "" {
		return &calls.PersistenceError{Op: "save", Err: fmt.Errorf("call id cannot be empty")}
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, existing := range s.records {
		if existing.ID == call.ID {
			return &calls.PersistenceError{Op: "save", Err: fmt.Errorf("call '%s' already exists", call.ID)}
		}
	}

	// Store a copy to avoid shared references
	s.records = append(s.records, call.Clone())
	return nil
}

// ListAll returns copies of every call, newest first
func (s *InMemoryStore) ListAll(ctx context.Context) ([]*calls.Call, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	list := make([]*calls.Call, 0, len(s.records))
	for _, call := range s.records {
		list = append(list, call.Clone())
	}

	calls.SortByRecency(list)
	return list, nil
}

// GetByID returns a copy of the call with the given id, or nil if there is none
func (s *InMemoryStore) GetByID(ctx context.Context, id string) (*calls.Call, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, call := range s.records {
		if call.ID == id {
			return call.Clone(), nil
		}
	}

	return nil, nil
}

// UpdateStatus sets the status of one call. Unknown ids are ignored and a terminal status
// cannot be replaced.
func (s *InMemoryStore) UpdateStatus(ctx context.Context, id string, status calls.Status) error {
	if !calls.ValidateStatus(status) {
		return &calls.PersistenceError{Op: "update", Err: fmt.Errorf("unknown status '%s'", status)}
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, call := range s.records {
		if call.ID != id {
			continue
		}
		if !calls.CanTransition(call.Status, status) {
			return &calls.PersistenceError{Op: "update", Err: fmt.Errorf("call '%s' is already %s", id, call.Status)}
		}
		call.Status = status
	}

	return nil
}
