package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every env tag of Config.
const EnvPrefix = "GOPHKMS_"

// parseEnv overlays config with GOPHKMS_* variables. Unset variables
// leave fields untouched.
func parseEnv(config *Config) error {
	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
