package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Logger struct {
		Verbosity string `yaml:"verbosity"`
	} `yaml:"logger"`
	Compute struct {
		Mode    string `yaml:"mode"`
		Workers int    `yaml:"workers"`
	} `yaml:"compute"`
	Solve struct {
		Observations int     `yaml:"observations"`
		Variables    int     `yaml:"variables"`
		Passes       int     `yaml:"passes"`
		Block        int     `yaml:"block"`
		Noise        float64 `yaml:"noise"`
		Seed         int64   `yaml:"seed"`
	} `yaml:"solve"`
	Bench struct {
		MatrixSize    int    `yaml:"matrixSize"`
		VectorLength  int    `yaml:"vectorLength"`
		VectorReps    int    `yaml:"vectorReps"`
		Observations  int    `yaml:"observations"`
		Variables     int    `yaml:"variables"`
		Passes        int    `yaml:"passes"`
		Blocks        []int  `yaml:"blocks"`
		Seed          int64  `yaml:"seed"`
		MetricsListen string `yaml:"metricsListen"`
	} `yaml:"bench"`
	Train struct {
		Samples  int   `yaml:"samples"`
		Features int   `yaml:"features"`
		Neurons  int   `yaml:"neurons"`
		FanIn    int   `yaml:"fanIn"`
		Passes   int   `yaml:"passes"`
		Block    int   `yaml:"block"`
		Seed     int64 `yaml:"seed"`
	} `yaml:"train"`
}

// Default returns the built-in configuration. LoadConfig layers file values
// on top of it, so omitted keys keep these settings.
func Default() *Config {
	var c Config
	c.Logger.Verbosity = "info"
	c.Compute.Mode = "auto"
	c.Compute.Workers = 0

	c.Solve.Observations = 1024
	c.Solve.Variables = 256
	c.Solve.Passes = 25
	c.Solve.Block = 8
	c.Solve.Noise = 0
	c.Solve.Seed = 42

	c.Bench.MatrixSize = 256
	c.Bench.VectorLength = 1 << 20
	c.Bench.VectorReps = 50
	c.Bench.Observations = 2048
	c.Bench.Variables = 256
	c.Bench.Passes = 10
	c.Bench.Blocks = []int{1, 8, 64}
	c.Bench.Seed = 1
	c.Bench.MetricsListen = ""

	c.Train.Samples = 512
	c.Train.Features = 8
	c.Train.Neurons = 96
	c.Train.FanIn = 4
	c.Train.Passes = 200
	c.Train.Block = 8
	c.Train.Seed = 7
	return &c
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := Default()
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, err
	}

	return config, nil
}
