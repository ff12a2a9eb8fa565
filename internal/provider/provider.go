package provider

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/ethanbaker/calldash/pkg/calls"
)

// demoDialogue is the canned conversation served for completed calls
const demoDialogue = `Agent: Hello, this is a test call. How can I help you today?

Customer: Hi, I'm just responding to your call about my appointment.

Agent: Yes, I'm calling to confirm your appointment for tomorrow at 2 PM. Will you be able to make it?

Customer: Yes, I'll be there. Thank you for confirming.

Agent: Great! We look forward to seeing you tomorrow. Have a nice day!

Customer: You too. Goodbye.`

// placement is what the provider remembers about a placed call
type placement struct {
	phoneNumber string
	placedAt    time.Time
	settled     calls.Status // Terminal status carried over from a stored record
}

// Demo stands in for a real calling provider. Calls settle deterministically once
// CompleteAfter has elapsed since placement.
type Demo struct {
	opts *Options

	mutex  sync.RWMutex
	placed map[string]placement
}

// NewDemo creates a demo provider. A nil opts uses the defaults.
func NewDemo(opts *Options) *Demo {
	if opts == nil {
		opts = &Options{CompleteAfter: DefaultCompleteAfter}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Demo{
		opts:   opts,
		placed: make(map[string]placement),
	}
}

// PlaceCall registers a call with the provider
func (d *Demo) PlaceCall(ctx context.Context, req *calls.PlaceCallRequest) (*calls.PlaceCallResult, error) {
	if req == nil || req.ID == "" {
		return nil, fmt.Errorf("call id cannot be empty")
	}
	if req.PhoneNumber == "" {
		return nil, fmt.Errorf("phone number cannot be empty")
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()

	if _, exists := d.placed[req.ID]; exists {
		return nil, fmt.Errorf("call '%s' was already placed", req.ID)
	}

	d.placed[req.ID] = placement{
		phoneNumber: req.PhoneNumber,
		placedAt:    d.opts.Now(),
	}

	log.Printf("[PROVIDER]: Placed call '%s' to %s", req.ID, req.PhoneNumber)
	return &calls.PlaceCallResult{ProviderID: req.ID, InitialStatus: calls.StatusInProgress}, nil
}

// Register makes the provider aware of a call placed before it started, such as a record
// read back from a persistent store after a restart. Pending calls settle CompleteAfter
// from their timestamp and settled calls keep their status. Known ids are left as is.
func (d *Demo) Register(call *calls.Call) {
	if call == nil || call.ID == "" {
		return
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()

	if _, exists := d.placed[call.ID]; exists {
		return
	}

	p := placement{
		phoneNumber: call.PhoneNumber,
		placedAt:    call.Timestamp,
	}
	if call.Status.IsTerminal() {
		p.settled = call.Status
	}
	d.placed[call.ID] = p
}

// CheckStatus reports the status of a placed call
func (d *Demo) CheckStatus(ctx context.Context, id string) (calls.Status, error) {
	d.mutex.RLock()
	p, exists := d.placed[id]
	d.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("provider has no record of call '%s'", id)
	}

	return d.statusOf(p), nil
}

// FetchTranscript returns the dialogue of a completed call. Calls that are still ringing
// or that failed have no transcript.
func (d *Demo) FetchTranscript(ctx context.Context, id string) (string, bool, error) {
	d.mutex.RLock()
	p, exists := d.placed[id]
	d.mutex.RUnlock()

	if !exists {
		return "", false, nil
	}
	if d.statusOf(p) != calls.StatusCompleted {
		return "", false, nil
	}

	return fmt.Sprintf("This is a transcript for call %s.\n\n%s", id, demoDialogue), true, nil
}

// statusOf derives the status of a placement from the clock
func (d *Demo) statusOf(p placement) calls.Status {
	if p.settled != "" {
		return p.settled
	}
	if d.opts.Now().Sub(p.placedAt) < d.opts.CompleteAfter {
		return calls.StatusInProgress
	}
	if slices.Contains(d.opts.FailNumbers, p.phoneNumber) {
		return calls.StatusFailed
	}
	return calls.StatusCompleted
}
