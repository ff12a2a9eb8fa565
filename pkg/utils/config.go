package utils

import (
	"maps"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Config holds the settings of a calldash process. Values come from .env files and the
// environment and are read through typed getters.
type Config struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewConfig creates a new Config holding a copy of values
func NewConfig(values map[string]string) *Config {
	config := &Config{
		values: make(map[string]string, len(values)),
	}

	maps.Copy(config.values, values)

	return config
}

// NewConfigFromEnv creates a Config from the process environment after loading the
// given .env files
func NewConfigFromEnv(files ...string) *Config {
	return NewConfig(LoadEnv(files...))
}

// Get retrieves a value by key, or the empty string
func (c *Config) Get(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values[key]
}

// GetWithDefault retrieves a value by key, falling back when it is missing or empty
func (c *Config) GetWithDefault(key, defaultValue string) string {
	if value := c.Get(key); value != "" {
		return value
	}
	return defaultValue
}

// GetBool retrieves a value as a boolean. Unparseable values are false.
func (c *Config) GetBool(key string) bool {
	value := strings.ToLower(strings.TrimSpace(c.Get(key)))

	switch value {
	case "yes", "on", "enabled":
		return true
	case "no", "off", "disabled", "":
		return false
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return parsed
}

// GetIntWithDefault retrieves a value as an integer, falling back when it is missing
// or cannot be parsed
func (c *Config) GetIntWithDefault(key string, defaultValue int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(c.Get(key)))
	if err != nil {
		return defaultValue
	}
	return parsed
}

// GetDurationWithDefault retrieves a Go duration string such as "30s", falling back
// when it is missing or cannot be parsed
func (c *Config) GetDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	parsed, err := time.ParseDuration(strings.TrimSpace(c.Get(key)))
	if err != nil {
		return defaultValue
	}
	return parsed
}

// Set modifies a configuration value
func (c *Config) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}

// Has checks if a configuration key exists
func (c *Config) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.values[key]
	return exists
}
