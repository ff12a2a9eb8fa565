package calls

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// maxMintAttempts bounds how many ids are tried before giving up on a collision
const maxMintAttempts = 3

// NewID mints a fresh call identifier
func NewID() string {
	return "call-" + uuid.NewString()
}

// Dispatcher submits new calls and creates their initial records
type Dispatcher struct {
	store     StoreInterface
	transport Transport
	newID     func() string
	now       func() time.Time
}

// DispatcherOptions contains optional hooks for the Dispatcher
type DispatcherOptions struct {
	NewID func() string    // Id generator, defaults to NewID
	Now   func() time.Time // Clock, defaults to time.Now
}

// NewDispatcher creates a dispatcher writing to store and placing calls through transport
func NewDispatcher(store StoreInterface, transport Transport, opts *DispatcherOptions) (*Dispatcher, error) {
	if store == nil {
		return nil, fmt.Errorf("a valid store must be provided")
	}
	if transport == nil {
		return nil, fmt.Errorf("a valid transport must be provided")
	}

	d := &Dispatcher{
		store:     store,
		transport: transport,
		newID:     NewID,
		now:       time.Now,
	}

	if opts != nil {
		if opts.NewID != nil {
			d.newID = opts.NewID
		}
		if opts.Now != nil {
			d.now = opts.Now
		}
	}

	return d, nil
}

// Initiate places a call and persists its record with status in_progress. Any failure
// leaves the store untouched and is returned as a *DispatchError. A save that fails after
// the transport accepted the call leaves that call with the provider and no record of it.
func (d *Dispatcher) Initiate(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, &DispatchError{Err: errors.New("request cannot be nil")}
	}

	origin, ok := ParsePromptOrigin(string(req.PromptOrigin))
	if !ok {
		return nil, &DispatchError{Err: fmt.Errorf("unknown prompt origin '%s'", req.PromptOrigin)}
	}

	id, err := d.mintID(ctx)
	if err != nil {
		return nil, &DispatchError{Err: err}
	}

	// Place the call before anything is written so a provider failure leaves no record
	if _, err := d.transport.PlaceCall(ctx, &PlaceCallRequest{
		ID:          id,
		UserName:    req.UserName,
		PhoneNumber: req.PhoneNumber,
		Prompt:      req.Prompt,
	}); err != nil {
		return nil, &DispatchError{Err: fmt.Errorf("provider rejected call: %w", err)}
	}

	call := &Call{
		ID:           id,
		UserName:     req.UserName,
		PhoneNumber:  req.PhoneNumber,
		Prompt:       req.Prompt,
		PromptOrigin: origin,
		Status:       StatusInProgress,
		Timestamp:    d.now().UTC().Truncate(time.Millisecond),
	}

	if err := d.store.Save(ctx, call); err != nil {
		return nil, &DispatchError{Err: err}
	}

	return &Response{ID: call.ID, Status: call.Status}, nil
}

// mintID returns an id not yet present in the store
func (d *Dispatcher) mintID(ctx context.Context) (string, error) {
	for range maxMintAttempts {
		id := d.newID()

		existing, err := d.store.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return id, nil
		}
	}

	return "", fmt.Errorf("could not mint a unique call id after %d attempts", maxMintAttempts)
}
