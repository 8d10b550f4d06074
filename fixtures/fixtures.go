package fixtures

import (
	_ "embed"
)

//go:embed config/config.yaml.template
var ConfigTemplate []byte

//go:embed config/presets.yaml.template
var PresetsTemplate []byte
