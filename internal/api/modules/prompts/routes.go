package prompts_module

import (
	"github.com/ethanbaker/calldash/pkg/prompt"
	"github.com/gin-gonic/gin"
)

// Register routes for the prompts module
func RegisterRoutes(g *gin.RouterGroup, generator prompt.Generator) {
	ctl := &controller{generator: generator}

	group := g.Group("/prompts")
	group.POST("/generate", ctl.GeneratePrompt)
}
