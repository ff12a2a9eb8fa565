package calls

import "fmt"

// PersistenceError reports a store that could not be read or written
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("calls store %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// DispatchError reports a call that could not be initiated
type DispatchError struct {
	Err error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("failed to initiate call: %v", e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a call id with no matching record
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("call '%s' not found", e.ID)
}

// StatusResolutionError reports an oracle that was unreachable or answered with garbage
type StatusResolutionError struct {
	ID  string
	Err error
}

func (e *StatusResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve status for call '%s': %v", e.ID, e.Err)
}

func (e *StatusResolutionError) Unwrap() error {
	return e.Err
}
