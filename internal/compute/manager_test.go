package compute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewManager(t *testing.T) {
	log := zap.NewNop()

	t.Run("serial mode", func(t *testing.T) {
		m, err := NewManager(ModeSerial, 0, log)
		require.NoError(t, err)
		defer m.Close()

		assert.Equal(t, "serial", m.Backend().Name())
		assert.False(t, m.IsParallel())
	})

	t.Run("parallel mode", func(t *testing.T) {
		m, err := NewManager(ModeParallel, 2, log)
		require.NoError(t, err)
		defer m.Close()

		assert.Equal(t, "parallel", m.Backend().Name())
		assert.True(t, m.IsParallel())
		assert.Equal(t, 2, m.Info().Workers)
	})

	t.Run("auto with one worker falls back to serial", func(t *testing.T) {
		m, err := NewManager(ModeAuto, 1, log)
		require.NoError(t, err)
		defer m.Close()

		assert.Equal(t, "serial", m.Backend().Name())
	})

	t.Run("auto with several workers selects the pool", func(t *testing.T) {
		m, err := NewManager(ModeAuto, 4, log)
		require.NoError(t, err)
		defer m.Close()

		assert.Equal(t, "parallel", m.Backend().Name())
	})

	t.Run("empty mode behaves like auto", func(t *testing.T) {
		m, err := NewManager("", 2, log)
		require.NoError(t, err)
		defer m.Close()

		assert.Equal(t, "parallel", m.Backend().Name())
	})

	t.Run("unknown mode is rejected", func(t *testing.T) {
		_, err := NewManager("cuda", 0, log)
		assert.Error(t, err)
	})

	t.Run("nil logger is tolerated", func(t *testing.T) {
		m, err := NewManager(ModeSerial, 0, nil)
		require.NoError(t, err)
		assert.NoError(t, m.Close())
	})
}

func TestManager_Close(t *testing.T) {
	m, err := NewManager(ModeParallel, 2, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, m.Close())
	assert.Nil(t, m.Backend())
	assert.Equal(t, "none", m.Info().Name)
	assert.False(t, m.IsParallel())
	// closing an already closed manager is a no-op
	assert.NoError(t, m.Close())
}
