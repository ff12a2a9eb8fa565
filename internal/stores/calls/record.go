package calls

import (
	"fmt"
	"time"

	"github.com/ethanbaker/calldash/pkg/calls"
)

// record is the serialized form of a call in the file store
type record struct {
	ID           string `json:"id"`
	UserName     string `json:"userName"`
	PhoneNumber  string `json:"phoneNumber"`
	Prompt       string `json:"prompt"`
	PromptOrigin string `json:"promptOrigin,omitempty"`
	Status       string `json:"status"`
	Timestamp    string `json:"timestamp"`

	// Older dashboards wrote the origin under this key with "auto" for generated prompts
	PromptGenerationType string `json:"promptGenerationType,omitempty"`
}

// toRecord converts a call to its serialized form
func toRecord(call *calls.Call) record {
	return record{
		ID:           call.ID,
		UserName:     call.UserName,
		PhoneNumber:  call.PhoneNumber,
		Prompt:       call.Prompt,
		PromptOrigin: string(call.PromptOrigin),
		Status:       string(call.Status),
		Timestamp:    call.Timestamp.UTC().Format(time.RFC3339Nano),
	}
}

// toCall validates a serialized record and converts it back to a call
func (r record) toCall() (*calls.Call, error) {
	if r.ID == "" {
		return nil, fmt.Errorf("record has no id")
	}

	status := calls.Status(r.Status)
	if !calls.ValidateStatus(status) {
		return nil, fmt.Errorf("record '%s' has unknown status '%s'", r.ID, r.Status)
	}

	timestamp, err := time.Parse(time.RFC3339Nano, r.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("record '%s' has invalid timestamp: %w", r.ID, err)
	}

	rawOrigin := r.PromptOrigin
	if rawOrigin == "" {
		rawOrigin = r.PromptGenerationType
	}
	var origin calls.PromptOrigin
	if rawOrigin != "" {
		parsed, ok := calls.ParsePromptOrigin(rawOrigin)
		if !ok {
			return nil, fmt.Errorf("record '%s' has unknown prompt origin '%s'", r.ID, rawOrigin)
		}
		origin = parsed
	}

	return &calls.Call{
		ID:           r.ID,
		UserName:     r.UserName,
		PhoneNumber:  r.PhoneNumber,
		Prompt:       r.Prompt,
		PromptOrigin: origin,
		Status:       status,
		Timestamp:    timestamp,
	}, nil
}
