package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if LEADSCORE_CONFIG is set
//  3. env (prefix LEADSCORE_), with a local .env loaded first
func Load() (*Config, error) {
	// A .env in the working directory feeds the env provider below.
	// Missing files are fine.
	_ = godotenv.Load()

	cfg := New()

	k := koanf.New(".")

	if path := os.Getenv("LEADSCORE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: LEADSCORE_ADDR, LEADSCORE_HOT_THRESHOLD, ...
	// Keys keep their underscores to match koanf tags; the weights block
	// is the only nested section, addressed as LEADSCORE_WEIGHTS_<NAME>.
	envProvider := env.Provider("LEADSCORE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "leadscore_")
		if rest, ok := strings.CutPrefix(s, "weights_"); ok {
			return "weights." + rest
		}
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
