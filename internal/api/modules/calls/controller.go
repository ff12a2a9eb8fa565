package calls_module

import (
	"errors"
	"log"
	"net/http"
	"regexp"

	"github.com/ethanbaker/calldash/pkg/calls"
	"github.com/ethanbaker/calldash/pkg/sdk"
	"github.com/gin-gonic/gin"
)

// phonePattern matches the numbers the dashboard form accepts
var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{9,14}$`)

// controller holds the handlers for the calls routes
type controller struct {
	service *CallsService
}

// InitiateCall handles POST requests to place a new call
func (ctl *controller) InitiateCall(c *gin.Context) {
	// Parse request body
	var req sdk.InitiateCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err).AsGinResponse())
		return
	}

	if !phonePattern.MatchString(req.PhoneNumber) {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Please enter a valid phone number", nil).AsGinResponse())
		return
	}

	origin, ok := calls.ParsePromptOrigin(req.PromptOrigin)
	if !ok {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Unknown prompt origin", req.PromptOrigin).AsGinResponse())
		return
	}

	resp, err := ctl.service.Initiate(c.Request.Context(), &calls.Request{
		UserName:     req.UserName,
		PhoneNumber:  req.PhoneNumber,
		Prompt:       req.Prompt,
		PromptOrigin: origin,
	})
	if err != nil {
		writeError(c, "Failed to initiate call", err)
		return
	}

	c.JSON(sdk.NewSuccessResponse("Call initiated successfully", sdk.InitiateCallResponse{
		CallID: resp.ID,
		Status: resp.Status.String(),
	}).AsGinResponse())
}

// ListCalls handles GET requests for the call history
func (ctl *controller) ListCalls(c *gin.Context) {
	history, err := ctl.service.History(c.Request.Context())
	if err != nil {
		writeError(c, "Failed to fetch call history", err)
		return
	}

	out := make([]sdk.Call, 0, len(history))
	for _, call := range history {
		out = append(out, toSDKCall(call))
	}

	c.JSON(sdk.NewSuccessResponse("Call history retrieved successfully", sdk.ListCallsResponse{
		Calls: out,
		Count: len(out),
	}).AsGinResponse())
}

// GetCall handles GET requests for a single call
func (ctl *controller) GetCall(c *gin.Context) {
	call, err := ctl.service.Find(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, "Failed to fetch call", err)
		return
	}

	c.JSON(sdk.NewSuccessResponse("Call retrieved successfully", toSDKCall(call)).AsGinResponse())
}

// GetCallStatus handles GET requests that resolve the current status of a call
func (ctl *controller) GetCallStatus(c *gin.Context) {
	id := c.Param("id")

	status, err := ctl.service.Status(c.Request.Context(), id)
	if err != nil {
		writeError(c, "Failed to resolve call status", err)
		return
	}

	c.JSON(sdk.NewSuccessResponse("Status retrieved successfully", sdk.CallStatusResponse{
		CallID: id,
		Status: status.String(),
	}).AsGinResponse())
}

// GetTranscript handles GET requests for the transcript of a call
func (ctl *controller) GetTranscript(c *gin.Context) {
	transcript, err := ctl.service.Transcript(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, "Failed to fetch transcript", err)
		return
	}

	resp := sdk.TranscriptResponse{
		CallID:     transcript.CallID,
		Transcript: transcript.Text,
		Available:  transcript.Available,
	}
	for _, line := range transcript.Lines() {
		resp.Lines = append(resp.Lines, sdk.TranscriptLine{Speaker: line.Speaker, Text: line.Text})
	}

	message := "Transcript retrieved successfully"
	if !transcript.Available {
		message = "No transcript available for this call yet"
	}

	c.JSON(sdk.NewSuccessResponse(message, resp).AsGinResponse())
}

// RefreshCalls handles POST requests that resolve every pending call
func (ctl *controller) RefreshCalls(c *gin.Context) {
	report, err := ctl.service.Refresh(c.Request.Context())
	if err != nil {
		writeError(c, "Failed to refresh call statuses", err)
		return
	}

	resp := sdk.RefreshCallsResponse{
		Checked: report.Checked,
		Updated: report.Updated,
	}
	if len(report.Failed) > 0 {
		resp.Failed = make(map[string]string, len(report.Failed))
		for id, failure := range report.Failed {
			resp.Failed[id] = failure.Error()
		}
	}

	c.JSON(sdk.NewSuccessResponse("Call statuses refreshed", resp).AsGinResponse())
}

/** ---- HELPERS ---- */

// writeError maps the calls error taxonomy onto HTTP status codes
func writeError(c *gin.Context, message string, err error) {
	var (
		notFound    *calls.NotFoundError
		resolution  *calls.StatusResolutionError
		persistence *calls.PersistenceError
		dispatch    *calls.DispatchError
	)

	code := http.StatusInternalServerError
	switch {
	case errors.As(err, &notFound):
		code = http.StatusNotFound
	case errors.As(err, &resolution):
		code = http.StatusBadGateway
	case errors.As(err, &persistence):
		code = http.StatusInternalServerError
	case errors.As(err, &dispatch):
		code = http.StatusBadGateway
	}

	if code >= http.StatusInternalServerError {
		log.Printf("[CALLS]: %s: %v", message, err)
	}

	c.JSON(sdk.NewErrorResponse(code, message, err).AsGinResponse())
}

// toSDKCall converts a call record to its API representation
func toSDKCall(call *calls.Call) sdk.Call {
	return sdk.Call{
		ID:           call.ID,
		UserName:     call.UserName,
		PhoneNumber:  call.PhoneNumber,
		Prompt:       call.Prompt,
		PromptOrigin: string(call.PromptOrigin),
		Status:       call.Status.String(),
		Timestamp:    call.Timestamp,
	}
}
