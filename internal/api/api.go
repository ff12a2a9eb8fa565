package api

import (
	"fmt"
	"log"
	"strings"
	"time"

	api_utils "github.com/ethanbaker/api/pkg/utils"
	"github.com/ethanbaker/calldash/pkg/prompt"
	"github.com/ethanbaker/calldash/pkg/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	calls_module "github.com/ethanbaker/calldash/internal/api/modules/calls"
	health_module "github.com/ethanbaker/calldash/internal/api/modules/health"
	prompts_module "github.com/ethanbaker/calldash/internal/api/modules/prompts"
)

// Start builds the calls service and serves the API. It returns once the server fails,
// after the service has been stopped.
func Start(cfg *utils.Config) error {
	// Initialized configuration settings
	port := cfg.GetWithDefault("API_PORT", "8080")

	service, err := calls_module.Init(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize calls service: %w", err)
	}
	defer service.Stop()

	engine := NewEngine(cfg, service, prompt.NewFromConfig(cfg))

	// Then after performing initial setup, start the server
	log.Printf("[API-MAIN]: Listening on :%s", port)
	if err := engine.Run(":" + port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// NewEngine assembles the gin engine with every module registered under /api
func NewEngine(cfg *utils.Config, service *calls_module.CallsService, generator prompt.Generator) *gin.Engine {
	// Add app level settings/routes
	engine := gin.Default()
	engine.NoRoute(api_utils.NoRouteHandler)

	// Add trusted proxies
	engine.SetTrustedProxies(nil)

	// Add CORS using gin-contrib/cors (https://github.com/gin-contrib/cors for documentation)
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.GetWithDefault("CORS_ALLOWED_ORIGINS", "*"), ","),
		AllowMethods:     []string{"OPTIONS", "GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Base group '/api' for all API routes
	baseGroup := engine.Group("/api")

	// Adding custom modules
	health_module.RegisterRoutes(baseGroup)
	calls_module.RegisterRoutes(baseGroup, cfg, service)
	prompts_module.RegisterRoutes(baseGroup, generator)

	return engine
}
