// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Struct fields are mapped via their `env` and `envPrefix` tags
// defined on [StructuredConfig] and its nested types.
//
// Returns a wrapped error if env.Parse fails (e.g. a required variable is
// missing or a value cannot be converted to the target type).
func parseEnv(cfg any) error {
	err := env.Parse(cfg)
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}

// GetLocalIdentityConfig reads only the IDENTITY_* variables (after the
// .env file) and checks that they describe local token signing.
func GetLocalIdentityConfig() (Identity, error) {
	if err := loadDotEnv(); err != nil {
		return Identity{}, err
	}

	var cfg StructuredConfig
	if err := parseEnv(&cfg); err != nil {
		return Identity{}, err
	}

	id := cfg.Identity
	if id.Mode != IdentityModeLocal {
		return Identity{}, fmt.Errorf("%w: IDENTITY_MODE must be %q, got %q", ErrInvalidIdentityConfigs, IdentityModeLocal, id.Mode)
	}
	if id.SignKey == "" || id.Issuer == "" {
		return Identity{}, fmt.Errorf("%w: local mode requires sign key and issuer", ErrInvalidIdentityConfigs)
	}
	return id, nil
}
