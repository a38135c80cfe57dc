package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Values are not validated here; each command checks the fields it uses.
// Order of precedence (low -> high):
//  1. defaults (Default())
//  2. file (YAML) if XGLAB_CONFIG is set
//  3. env (prefix XGLAB_)
func Load() (*Config, error) {
	base := Default()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("XGLAB_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: XGLAB_FEED_URL, XGLAB_POSTGRES_DSN, ...
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("XGLAB_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "xglab_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	return &cfg, nil
}
