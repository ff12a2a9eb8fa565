package calls_module

import (
	"github.com/ethanbaker/api/pkg/api_key"
	"github.com/ethanbaker/calldash/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Register routes for the calls module
func RegisterRoutes(g *gin.RouterGroup, cfg *utils.Config, service *CallsService) {
	ctl := &controller{service: service}

	// Create base group for call routes
	group := g.Group("/calls")

	// Gate the group behind an API key when one is configured
	if apiKey := cfg.Get("API_KEY"); apiKey != "" {
		group.Handlers = append(group.Handlers, api_key.APIKeyHeaderHandler(func(key string) bool {
			return key == apiKey
		}))
	}

	group.POST("", ctl.InitiateCall)                // Place a new call
	group.GET("", ctl.ListCalls)                    // Call history, newest first
	group.POST("/refresh", ctl.RefreshCalls)        // Resolve every pending call
	group.GET("/:id", ctl.GetCall)                  // One call record
	group.GET("/:id/status", ctl.GetCallStatus)     // Resolve the current status
	group.GET("/:id/transcript", ctl.GetTranscript) // Transcript, if available
}
