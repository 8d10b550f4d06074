package compute

import (
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// Backend selection modes accepted by NewManager.
const (
	ModeAuto     = "auto"
	ModeSerial   = "serial"
	ModeParallel = "parallel"
)

// Manager owns backend selection and lifecycle. It picks the worker-pool
// backend when the host has more than one CPU and falls back to the serial
// backend otherwise, mirroring how the solve and bench commands expect to be
// handed a ready substrate.
type Manager struct {
	backend Backend
	mu      sync.RWMutex
	log     *zap.Logger
}

// NewManager selects and initializes a backend. mode is one of ModeAuto,
// ModeSerial or ModeParallel; workers caps the pool size (0 means NumCPU).
func NewManager(mode string, workers int, log *zap.Logger) (*Manager, error) {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{log: log}

	switch mode {
	case ModeSerial:
		m.backend = NewSerialBackend()
	case ModeParallel:
		m.backend = NewParallelBackend(workers)
	case ModeAuto, "":
		if workers == 0 {
			workers = runtime.NumCPU()
		}
		if workers > 1 {
			m.backend = NewParallelBackend(workers)
		} else {
			m.backend = NewSerialBackend()
		}
	default:
		return nil, fmt.Errorf("compute: unknown backend mode %q", mode)
	}

	info := m.backend.Info()
	log.Info("compute backend selected",
		zap.String("backend", m.backend.Name()),
		zap.String("device", info.Name),
		zap.Int("workers", info.Workers),
		zap.String("simd", info.SIMD))
	return m, nil
}

// Backend returns the selected backend.
func (m *Manager) Backend() Backend {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.backend
}

// Info reports the selected backend's device.
func (m *Manager) Info() DeviceInfo {
	b := m.Backend()
	if b == nil {
		return DeviceInfo{Name: "none"}
	}
	return b.Info()
}

// IsParallel reports whether the worker-pool backend is active.
func (m *Manager) IsParallel() bool {
	b := m.Backend()
	if b == nil {
		return false
	}
	_, serial := b.(*SerialBackend)
	return !serial
}

// Close releases the selected backend.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.backend == nil {
		return nil
	}
	err := m.backend.Close()
	m.backend = nil
	return err
}
