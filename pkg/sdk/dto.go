package sdk

import (
	"encoding/json"
	"time"

	"github.com/ethanbaker/api/pkg/api_types"
)

// ApiResponse represents a standard API response structure
type ApiResponse[T any] struct {
	Status  api_types.StatusType `json:"status"`          // Status message
	Code    int                  `json:"code"`            // Status code
	Message string               `json:"message"`         // Human-readable message
	Data    T                    `json:"data,omitempty"`  // Optional data field for successful responses
	Error   any                  `json:"error,omitempty"` // Optional errors field for error responses
}

// AsGinResponse converts the ApiResponse to a format suitable for Gin framework
func (r ApiResponse[T]) AsGinResponse() (int, any) {
	return r.Code, r
}

// AsJSON converts the ApiResponse to a JSON string
func (r ApiResponse[T]) AsJSON() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func NewSuccess(message string) ApiResponse[any] {
	return ApiResponse[any]{
		Status:  api_types.StatusSuccess,
		Code:    200,
		Message: message,
	}
}

func NewSuccessResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Status:  api_types.StatusSuccess,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse builds an error envelope. Errors are flattened to their message so
// they survive JSON encoding.
func NewErrorResponse(code int, message string, err any) ApiResponse[any] {
	if e, ok := err.(error); ok && e != nil {
		err = e.Error()
	}

	return ApiResponse[any]{
		Status:  api_types.StatusError,
		Code:    code,
		Message: message,
		Error:   err,
	}
}

/** Requests */

// InitiateCallRequest represents the request body for placing a new call
type InitiateCallRequest struct {
	UserName     string `json:"userName" binding:"required,min=2"`
	PhoneNumber  string `json:"phoneNumber" binding:"required"`
	Prompt       string `json:"prompt" binding:"required,min=10"`
	PromptOrigin string `json:"promptOrigin"`
}

// GeneratePromptRequest represents the request body for generating a call script
type GeneratePromptRequest struct {
	Input string `json:"input" binding:"required"`
}

/** Responses */

// InitiateCallResponse is returned once a call is placed
type InitiateCallResponse struct {
	CallID string `json:"callId"`
	Status string `json:"status"`
}

// Call represents one call record
type Call struct {
	ID           string    `json:"id"`
	UserName     string    `json:"userName"`
	PhoneNumber  string    `json:"phoneNumber"`
	Prompt       string    `json:"prompt"`
	PromptOrigin string    `json:"promptOrigin,omitempty"`
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
}

// ListCallsResponse represents the call history, newest first
type ListCallsResponse struct {
	Calls []Call `json:"calls"`
	Count int    `json:"count"`
}

// CallStatusResponse represents the resolved status of a call
type CallStatusResponse struct {
	CallID string `json:"callId"`
	Status string `json:"status"`
}

// TranscriptLine is a single display line of a transcript
type TranscriptLine struct {
	Speaker string `json:"speaker,omitempty"`
	Text    string `json:"text"`
}

// TranscriptResponse represents the transcript of a call. Available is false when the
// provider has no transcript yet.
type TranscriptResponse struct {
	CallID     string           `json:"callId"`
	Transcript string           `json:"transcript"`
	Available  bool             `json:"available"`
	Lines      []TranscriptLine `json:"lines,omitempty"`
}

// RefreshCallsResponse summarizes a status refresh over all pending calls
type RefreshCallsResponse struct {
	Checked int               `json:"checked"`
	Updated int               `json:"updated"`
	Failed  map[string]string `json:"failed,omitempty"`
}

// GeneratePromptResponse carries a generated call script
type GeneratePromptResponse struct {
	GeneratedPrompt string `json:"generatedPrompt"`
}
