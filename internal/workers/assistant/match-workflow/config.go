// internal/workers/assistant/match-workflow/config.go
package matchworkflow

import (
	"time"

	"assistant-engine/internal/common/config"
)

type Config struct {
	MaxJobsActive int
	Timeout       time.Duration
}

func LoadConfig() *Config {
	return &Config{
		MaxJobsActive: 5,
		Timeout:       10 * time.Second,
	}
}

// FromWorkerConfig maps the shared worker settings onto this task.
func FromWorkerConfig(wc config.WorkerConfig) *Config {
	cfg := LoadConfig()
	if wc.MaxJobsActive > 0 {
		cfg.MaxJobsActive = wc.MaxJobsActive
	}
	if wc.Timeout > 0 {
		cfg.Timeout = time.Duration(wc.Timeout) * time.Millisecond
	}
	return cfg
}
