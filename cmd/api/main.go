package main

import (
	"log"

	"github.com/ethanbaker/calldash/internal/api"
	"github.com/ethanbaker/calldash/pkg/utils"
)

// Start the API server
func main() {
	// Load global config from the env file named by ENV_FILE
	cfg := utils.NewConfigFromEnv(utils.EnvFile())

	// Start
	if err := api.Start(cfg); err != nil {
		log.Fatal("[API-MAIN]: ", err)
	}
}
