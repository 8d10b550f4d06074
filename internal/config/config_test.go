package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		config, err := LoadConfig("../../fixtures/tests/config/valid_config.yaml")
		require.NoError(t, err)
		require.NotNil(t, config)

		assert.Equal(t, "debug", config.Logger.Verbosity)
		assert.Equal(t, "parallel", config.Compute.Mode)
		assert.Equal(t, 4, config.Compute.Workers)
		assert.Equal(t, 500, config.Solve.Observations)
		assert.Equal(t, 60, config.Solve.Variables)
		assert.Equal(t, 12, config.Solve.Passes)
		assert.Equal(t, 5, config.Solve.Block)
		assert.Equal(t, 0.01, config.Solve.Noise)
		assert.Equal(t, int64(99), config.Solve.Seed)
		assert.Equal(t, 128, config.Bench.MatrixSize)
		assert.Equal(t, []int{1, 4, 16}, config.Bench.Blocks)
		assert.Equal(t, "127.0.0.1:9090", config.Bench.MetricsListen)
		assert.Equal(t, 48, config.Train.Neurons)
		assert.Equal(t, 3, config.Train.FanIn)
	})

	t.Run("omitted keys keep defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("logger:\n  verbosity: warn\n"), 0o644))

		config, err := LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "warn", config.Logger.Verbosity)
		def := Default()
		assert.Equal(t, def.Compute.Mode, config.Compute.Mode)
		assert.Equal(t, def.Solve.Observations, config.Solve.Observations)
		assert.Equal(t, def.Bench.Blocks, config.Bench.Blocks)
	})

	t.Run("non-existent file", func(t *testing.T) {
		_, err := LoadConfig("non-existent-file.yaml")
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		dir, err := os.Getwd()
		require.NoError(t, err)

		configPath := filepath.Join(dir, "..", "..", "fixtures", "tests", "invalid_config", "config.yaml")
		_, err = LoadConfig(configPath)
		assert.Error(t, err)
	})
}

func TestDefault(t *testing.T) {
	config := Default()
	assert.Equal(t, "info", config.Logger.Verbosity)
	assert.Equal(t, "auto", config.Compute.Mode)
	assert.NotEmpty(t, config.Bench.Blocks)
	assert.Greater(t, config.Solve.Observations, config.Solve.Variables)
}
