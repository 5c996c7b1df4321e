// internal/common/config/loader_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBase() *Config {
	cfg := &Config{}
	cfg.Camunda.BrokerAddress = "localhost:26500"
	cfg.Classifier = ClassifierConfig{
		PatternWeight:          0.60,
		RouteWeight:            0.25,
		EntityWeight:           0.15,
		ClarificationThreshold: 0.45,
		MinAccuracy:            0.80,
		MinCoverage:            0.80,
	}
	return cfg
}

func TestValidateConfig(t *testing.T) {
	require.NoError(t, validateConfig(validBase()))

	t.Run("weight ordering", func(t *testing.T) {
		cfg := validBase()
		cfg.Classifier.RouteWeight = 0.65
		err := validateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pattern > route > entity")
	})

	t.Run("weight sum above 1", func(t *testing.T) {
		cfg := validBase()
		cfg.Classifier.PatternWeight = 0.70
		cfg.Classifier.RouteWeight = 0.40
		cfg.Classifier.EntityWeight = 0.20
		err := validateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sum to at most 1")
	})

	t.Run("threshold range", func(t *testing.T) {
		cfg := validBase()
		cfg.Classifier.ClarificationThreshold = 1.2
		assert.Error(t, validateConfig(cfg))
	})

	t.Run("broker address required", func(t *testing.T) {
		cfg := validBase()
		cfg.Camunda.BrokerAddress = ""
		assert.Error(t, validateConfig(cfg))
	})
}
