// Package config loads the batch-run configuration consumed by
// cmd/tabisim: which directory of tree files to minimize, an optional
// explicit accepting-states list, where to write the result, and whether
// to trace iterations.
//
// Grounded in aretext/aretext's config/file.go loading style (read file,
// unmarshal, wrap errors with github.com/pkg/errors), adapted from JSON to
// gopkg.in/yaml.v3 to match the rest of the corpus's YAML usage.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped around a missing required field in a loaded
// config. A YAML document that doesn't parse into Config is reported as the
// wrapped parse error, without this sentinel.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the YAML document cmd/tabisim reads at startup.
type Config struct {
	InputDir        string `yaml:"input_dir"`
	AcceptingStates []int  `yaml:"accepting_states,omitempty"`
	OutputPath      string `yaml:"output_path"`
	Trace           bool   `yaml:"trace"`
}

// Load reads and parses the YAML document at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: reading %q", path)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "config: parsing %q", path)
	}

	if cfg.InputDir == "" {
		return nil, errors.Wrapf(ErrInvalidConfig, "%q: input_dir is required", path)
	}
	if cfg.OutputPath == "" {
		return nil, errors.Wrapf(ErrInvalidConfig, "%q: output_path is required", path)
	}

	return &cfg, nil
}
