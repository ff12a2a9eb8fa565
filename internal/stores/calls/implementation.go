package calls

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethanbaker/calldash/pkg/calls"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Store handles storage and retrieval of call records using MySQL
type Store struct {
	db *gorm.DB
}

// NewStore creates a new call store with MySQL connection
func NewStore(databaseURL string) (*Store, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return NewStoreWithDB(db)
}

// NewStoreWithDB wraps an already opened connection and migrates the call table
func NewStoreWithDB(db *gorm.DB) (*Store, error) {
	store := &Store{db: db}

	// Auto-migrate tables
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	return store, nil
}

// migrate creates or updates the required database tables
func (s *Store) migrate() error {
	return s.db.AutoMigrate(&CallModel{})
}

// Save inserts a new call record
func (s *Store) Save(ctx context.Context, call *calls.Call) error {
	if call == nil || call.ID == "" {
		return &calls.PersistenceError{Op: "save", Err: fmt.Errorf("call id cannot be empty")}
	}

	model := &CallModel{
		CallID:       call.ID,
		UserName:     call.UserName,
		PhoneNumber:  call.PhoneNumber,
		Prompt:       call.Prompt,
		PromptOrigin: string(call.PromptOrigin),
		Status:       string(call.Status),
		Timestamp:    call.Timestamp.UTC(),
	}

	if err := s.db.WithContext(ctx).Create(model).Error; err != nil {
		return &calls.PersistenceError{Op: "save", Err: fmt.Errorf("failed to create call: %w", err)}
	}

	return nil
}

// ListAll returns every call, newest first with ties in insertion order
func (s *Store) ListAll(ctx context.Context) ([]*calls.Call, error) {
	var models []CallModel
	if err := s.db.WithContext(ctx).Order("timestamp DESC").Order("seq ASC").Find(&models).Error; err != nil {
		return nil, &calls.PersistenceError{Op: "list", Err: fmt.Errorf("failed to query calls: %w", err)}
	}

	list := make([]*calls.Call, 0, len(models))
	for _, model := range models {
		call, err := model.toCall()
		if err != nil {
			return nil, &calls.PersistenceError{Op: "list", Err: err}
		}
		list = append(list, call)
	}

	return list, nil
}

// GetByID retrieves a call by id, or nil if there is none
func (s *Store) GetByID(ctx context.Context, id string) (*calls.Call, error) {
	var model CallModel
	result := s.db.WithContext(ctx).Where("call_id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, &calls.PersistenceError{Op: "get", Err: fmt.Errorf("failed to get call: %w", result.Error)}
	}

	call, err := model.toCall()
	if err != nil {
		return nil, &calls.PersistenceError{Op: "get", Err: err}
	}

	return call, nil
}

// UpdateStatus sets the status of one call. Unknown ids affect no rows and are not an error.
// A terminal status cannot be replaced.
func (s *Store) UpdateStatus(ctx context.Context, id string, status calls.Status) error {
	if !calls.ValidateStatus(status) {
		return &calls.PersistenceError{Op: "update", Err: fmt.Errorf("unknown status '%s'", status)}
	}

	// Only pending rows, or rows already holding the status, may be written
	result := s.db.WithContext(ctx).Model(&CallModel{}).
		Where("call_id = ? AND (status = ? OR status = ?)", id, string(calls.StatusInProgress), string(status)).
		Update("status", string(status))
	if result.Error != nil {
		return &calls.PersistenceError{Op: "update", Err: fmt.Errorf("failed to update call status: %w", result.Error)}
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Nothing matched, so the id is unknown or the call has already settled
	var model CallModel
	if err := s.db.WithContext(ctx).Where("call_id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return &calls.PersistenceError{Op: "update", Err: fmt.Errorf("failed to get call: %w", err)}
	}
	if !calls.CanTransition(calls.Status(model.Status), status) {
		return &calls.PersistenceError{Op: "update", Err: fmt.Errorf("call '%s' is already %s", id, model.Status)}
	}

	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	return sqlDB.Close()
}

// toCall converts a database row to a call, rejecting unknown statuses
func (m CallModel) toCall() (*calls.Call, error) {
	status := calls.Status(m.Status)
	if !calls.ValidateStatus(status) {
		return nil, fmt.Errorf("call '%s' has unknown status '%s'", m.CallID, m.Status)
	}

	var origin calls.PromptOrigin
	if m.PromptOrigin != "" {
		parsed, ok := calls.ParsePromptOrigin(m.PromptOrigin)
		if !ok {
			return nil, fmt.Errorf("call '%s' has unknown prompt origin '%s'", m.CallID, m.PromptOrigin)
		}
		origin = parsed
	}

	return &calls.Call{
		ID:           m.CallID,
		UserName:     m.UserName,
		PhoneNumber:  m.PhoneNumber,
		Prompt:       m.Prompt,
		PromptOrigin: origin,
		Status:       status,
		Timestamp:    m.Timestamp.UTC(),
	}, nil
}
