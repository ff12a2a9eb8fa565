package health

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the routes for the health module
func RegisterRoutes(g *gin.RouterGroup) {
	h := &handler{started: time.Now()}
	g.GET("/health", h.getStatus)
}
