package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// InitiateCall places a new call
func (c *Client) InitiateCall(ctx context.Context, req *InitiateCallRequest) (*InitiateCallResponse, error) {
	var out ApiResponse[InitiateCallResponse]
	if err := c.doJSON(ctx, http.MethodPost, "/api/calls", req, &out); err != nil {
		return nil, err
	}

	if out.Data.CallID == "" {
		return nil, fmt.Errorf("no call id returned")
	}

	return &out.Data, nil
}

// ListCalls returns the call history, newest first
func (c *Client) ListCalls(ctx context.Context) (*ListCallsResponse, error) {
	var out ApiResponse[ListCallsResponse]
	if err := c.doJSON(ctx, http.MethodGet, "/api/calls", nil, &out); err != nil {
		return nil, err
	}

	return &out.Data, nil
}

// GetCall returns one call record
func (c *Client) GetCall(ctx context.Context, id string) (*Call, error) {
	path := fmt.Sprintf("/api/calls/%s", url.PathEscape(id))

	var out ApiResponse[Call]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	return &out.Data, nil
}

// GetCallStatus resolves the current status of a call
func (c *Client) GetCallStatus(ctx context.Context, id string) (*CallStatusResponse, error) {
	path := fmt.Sprintf("/api/calls/%s/status", url.PathEscape(id))

	var out ApiResponse[CallStatusResponse]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	return &out.Data, nil
}

// GetTranscript fetches the transcript of a call
func (c *Client) GetTranscript(ctx context.Context, id string) (*TranscriptResponse, error) {
	path := fmt.Sprintf("/api/calls/%s/transcript", url.PathEscape(id))

	var out ApiResponse[TranscriptResponse]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	return &out.Data, nil
}

// RefreshCalls resolves the status of every pending call
func (c *Client) RefreshCalls(ctx context.Context) (*RefreshCallsResponse, error) {
	var out ApiResponse[RefreshCallsResponse]
	if err := c.doJSON(ctx, http.MethodPost, "/api/calls/refresh", nil, &out); err != nil {
		return nil, err
	}

	return &out.Data, nil
}

// GeneratePrompt asks the backend to write a call script from a description
func (c *Client) GeneratePrompt(ctx context.Context, input string) (string, error) {
	var out ApiResponse[GeneratePromptResponse]
	if err := c.doJSON(ctx, http.MethodPost, "/api/prompts/generate", &GeneratePromptRequest{Input: input}, &out); err != nil {
		return "", err
	}

	return out.Data.GeneratedPrompt, nil
}
