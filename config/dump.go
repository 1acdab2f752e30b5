package config

import (
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"pkt.systems/marklog/errors"
)

// Dump renders cfg as "yaml" or "toml".
func Dump(cfg *Config, format string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "yaml", "yml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "encode yaml")
		}
		return data, nil
	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "encode toml")
		}
		return data, nil
	default:
		return nil, errors.Newf(errors.ErrConfigParse, "unknown dump format %q", format)
	}
}
