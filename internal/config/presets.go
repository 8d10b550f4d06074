package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Preset is a named solve workload.
type Preset struct {
	Observations int     `yaml:"observations"`
	Variables    int     `yaml:"variables"`
	Passes       int     `yaml:"passes"`
	Block        int     `yaml:"block"`
	Noise        float64 `yaml:"noise"`
	Seed         int64   `yaml:"seed"`
}

type PresetConfig struct {
	Presets map[string]Preset `yaml:"presets"`
}

func LoadPresetConfig(path string) (*PresetConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config PresetConfig
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}

	return &config, nil
}

// Get looks up a preset by name.
func (c *PresetConfig) Get(name string, log *zap.Logger) (Preset, error) {
	preset, ok := c.Presets[name]
	if !ok {
		log.Warn("preset not found in presets config", zap.String("preset", name))
		return Preset{}, fmt.Errorf("preset not found in presets config: %s", name)
	}
	return preset, nil
}
