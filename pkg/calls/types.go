package calls

import (
	"strings"
	"time"
)

/** Core types for the calls module */

// Call is the persisted record of one call request and its outcome
type Call struct {
	ID           string       `json:"id"`                     // Opaque identifier assigned at dispatch
	UserName     string       `json:"userName"`               // Name of the person being called
	PhoneNumber  string       `json:"phoneNumber"`            // Number the call was placed to
	Prompt       string       `json:"prompt"`                 // Script used for the call
	PromptOrigin PromptOrigin `json:"promptOrigin,omitempty"` // Provenance of the prompt
	Status       Status       `json:"status"`                 // Current lifecycle status
	Timestamp    time.Time    `json:"timestamp"`              // Creation time
}

// Clone returns a copy of the call that shares no state with the receiver
func (c *Call) Clone() *Call {
	if c == nil {
		return nil
	}
	copied := *c
	return &copied
}

// PromptOrigin tags where a call's prompt came from
type PromptOrigin string

const (
	// ManualPrompt was typed by the user
	ManualPrompt PromptOrigin = "manual"

	// GeneratedPrompt was produced by the prompt generator
	GeneratedPrompt PromptOrigin = "generated"
)

// ParsePromptOrigin normalizes a prompt origin tag. Empty defaults to manual and the
// legacy "auto" tag maps to generated.
func ParsePromptOrigin(raw string) (PromptOrigin, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(ManualPrompt):
		return ManualPrompt, true
	case string(GeneratedPrompt), "auto":
		return GeneratedPrompt, true
	default:
		return "", false
	}
}

/** Requests and results */

// Request is what a caller submits to place a new call
type Request struct {
	UserName     string       `json:"userName"`
	PhoneNumber  string       `json:"phoneNumber"`
	Prompt       string       `json:"prompt"`
	PromptOrigin PromptOrigin `json:"promptOrigin,omitempty"`
}

// Response is returned by the dispatcher once a call is initiated
type Response struct {
	ID     string `json:"callId"`
	Status Status `json:"status"`
}

// PlaceCallRequest is handed to the transport when a call is placed
type PlaceCallRequest struct {
	ID          string
	UserName    string
	PhoneNumber string
	Prompt      string
}

// PlaceCallResult is what the transport reports after placing a call
type PlaceCallResult struct {
	ProviderID    string
	InitialStatus Status
}
