package provider

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultCompleteAfter is how long a demo call rings before it settles
const DefaultCompleteAfter = 30 * time.Second

// Options configures the demo provider
type Options struct {
	CompleteAfter time.Duration `json:"complete_after" yaml:"complete_after"` // Time from placement until a call settles
	FailNumbers   []string      `json:"fail_numbers" yaml:"fail_numbers"`     // Phone numbers whose calls end as failed

	Now func() time.Time `json:"-" yaml:"-"` // Clock, defaults to time.Now
}

// LoadOptions reads provider options from a YAML file. An empty path yields the defaults.
func LoadOptions(path string) (*Options, error) {
	opts := &Options{CompleteAfter: DefaultCompleteAfter}
	if path == "" {
		return opts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider config file: %w", err)
	}

	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("failed to parse provider config file: %w", err)
	}

	if opts.CompleteAfter < 0 {
		return nil, fmt.Errorf("complete_after cannot be negative")
	}

	return opts, nil
}
