package calls

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ethanbaker/calldash/pkg/calls"
)

// FileStore keeps every call in a single JSON file. Each operation reads the whole
// collection, changes it and writes it back, so only one process may use a file.
type FileStore struct {
	path  string
	mutex sync.Mutex
}

// NewFileStore creates a store backed by the JSON file at path. The file is created on
// the first write.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	return &FileStore{path: path}, nil
}

// Path returns the location of the backing file
func (s *FileStore) Path() string {
	return s.path
}

// Save appends a call to the collection
func (s *FileStore) Save(ctx context.Context, call *calls.Call) error {
	if call == nil || call.ID == "" {
		return &calls.PersistenceError{Op: "save", Err: fmt.Errorf("call id cannot be empty")}
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	list, err := s.load()
	if err != nil {
		return &calls.PersistenceError{Op: "save", Err: err}
	}

	for _, existing := range list {
		if existing.ID == call.ID {
			return &calls.PersistenceError{Op: "save", Err: fmt.Errorf("call '%s' already exists", call.ID)}
		}
	}

	list = append(list, call.Clone())
	if err := s.write(list); err != nil {
		return &calls.PersistenceError{Op: "save", Err: err}
	}

	return nil
}

// ListAll returns every call, newest first
func (s *FileStore) ListAll(ctx context.Context) ([]*calls.Call, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	list, err := s.load()
	if err != nil {
		return nil, &calls.PersistenceError{Op: "list", Err: err}
	}

	calls.SortByRecency(list)
	return list, nil
}

// GetByID returns the call with the given id, or nil if there is none
func (s *FileStore) GetByID(ctx context.Context, id string) (*calls.Call, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	list, err := s.load()
	if err != nil {
		return nil, &calls.PersistenceError{Op: "get", Err: err}
	}

	for _, call := range list {
		if call.ID == id {
			return call, nil
		}
	}

	return nil, nil
}

// UpdateStatus sets the status of one call. Unknown ids are ignored and a terminal status
// cannot be replaced.
func (s *FileStore) UpdateStatus(ctx context.Context, id string, status calls.Status) error {
	if !calls.ValidateStatus(status) {
		return &calls.PersistenceError{Op: "update", Err: fmt.Errorf("unknown status '%s'", status)}
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	list, err := s.load()
	if err != nil {
		return &calls.PersistenceError{Op: "update", Err: err}
	}

	found := false
	for _, call := range list {
		if call.ID != id {
			continue
		}
		if !calls.CanTransition(call.Status, status) {
			return &calls.PersistenceError{Op: "update", Err: fmt.Errorf("call '%s' is already %s", id, call.Status)}
		}
		call.Status = status
		found = true
	}
	if !found {
		return nil
	}

	if err := s.write(list); err != nil {
		return &calls.PersistenceError{Op: "update", Err: err}
	}

	return nil
}

// load reads the whole collection in insertion order. A missing file is an empty collection.
func (s *FileStore) load() ([]*calls.Call, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []*calls.Call{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return []*calls.Call{}, nil
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}

	list := make([]*calls.Call, 0, len(records))
	for _, r := range records {
		call, err := r.toCall()
		if err != nil {
			return nil, err
		}
		list = append(list, call)
	}

	return list, nil
}

// write replaces the collection on disk through a temp file and rename
func (s *FileStore) write(list []*calls.Call) error {
	records := make([]record, 0, len(list))
	for _, call := range list {
		records = append(records, toRecord(call))
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode calls: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}

	return nil
}
