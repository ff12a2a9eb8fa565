package cli

import (
	"github.com/ethanbaker/calldash/pkg/sdk"
	"github.com/ethanbaker/calldash/pkg/utils"
)

// DefaultAPIURL is used when CALLDASH_API_URL is not set
const DefaultAPIURL = "http://localhost:8080"

// newClient builds an API client from the env file and environment
func newClient() *sdk.Client {
	cfg := utils.NewConfigFromEnv(utils.EnvFile())
	return sdk.NewClient(cfg.GetWithDefault("CALLDASH_API_URL", DefaultAPIURL), cfg.Get("API_KEY"))
}
