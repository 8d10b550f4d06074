package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadPresetConfig(t *testing.T) {
	t.Run("valid presets", func(t *testing.T) {
		presets, err := LoadPresetConfig("../../fixtures/tests/config/presets.yaml")
		require.NoError(t, err)
		require.NotNil(t, presets)

		small, err := presets.Get("small", zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, 200, small.Observations)
		assert.Equal(t, 20, small.Variables)
		assert.Equal(t, 4, small.Block)

		large, err := presets.Get("large", zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, 8192, large.Observations)
		assert.Equal(t, 0.05, large.Noise)
	})

	t.Run("unknown preset", func(t *testing.T) {
		presets, err := LoadPresetConfig("../../fixtures/tests/config/presets.yaml")
		require.NoError(t, err)

		_, err = presets.Get("galactic", zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "galactic")
	})

	t.Run("non-existent file", func(t *testing.T) {
		_, err := LoadPresetConfig("missing-presets.yaml")
		assert.Error(t, err)
	})
}
