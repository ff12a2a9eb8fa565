package prompts_module

import (
	"log"
	"net/http"

	"github.com/ethanbaker/calldash/pkg/prompt"
	"github.com/ethanbaker/calldash/pkg/sdk"
	"github.com/gin-gonic/gin"
)

type controller struct {
	generator prompt.Generator
}

// GeneratePrompt handles POST requests to write a call script from a description
func (ctl *controller) GeneratePrompt(c *gin.Context) {
	var req sdk.GeneratePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err).AsGinResponse())
		return
	}

	script, err := ctl.generator.Generate(c.Request.Context(), req.Input)
	if err != nil {
		log.Printf("[PROMPT]: Failed to generate prompt: %v", err)
		c.JSON(sdk.NewErrorResponse(http.StatusBadGateway, "Failed to generate prompt", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Prompt generated successfully", sdk.GeneratePromptResponse{GeneratedPrompt: script}).AsGinResponse())
}
