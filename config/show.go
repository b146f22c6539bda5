// By Navid M (c)
// Date: 2025
// License: GPL3

package config

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Marshal encodes cfg as toml, yaml or json.
func Marshal(cfg *Config, format string) ([]byte, error) {
	switch format {
	case "toml", "":
		data, err := toml.Marshal(cfg)
		return data, errors.Wrap(err, "failed to marshal config to TOML")
	case "yaml":
		data, err := yaml.Marshal(cfg)
		return data, errors.Wrap(err, "failed to marshal config to YAML")
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config to JSON")
		}
		return append(data, '\n'), nil
	}
	return nil, errors.Newf("unsupported format: %s (supported: toml, json, yaml)", format)
}
