package health

import (
	"time"

	"github.com/ethanbaker/calldash/pkg/sdk"
	"github.com/gin-gonic/gin"
)

// Status is the body of a health check
type Status struct {
	Service string `json:"service"`
	Uptime  string `json:"uptime"`
}

// handler reports liveness along with the process uptime
type handler struct {
	started time.Time
}

func (h *handler) getStatus(c *gin.Context) {
	c.JSON(sdk.NewSuccessResponse("OK", Status{
		Service: "calldash",
		Uptime:  time.Since(h.started).Round(time.Second).String(),
	}).AsGinResponse())
}
