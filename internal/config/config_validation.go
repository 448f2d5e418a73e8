// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// Identity modes.
const (
	IdentityModeFirebase = "firebase"
	IdentityModeLocal    = "local"
)

// LLM providers.
const (
	LLMProviderOpenAI = "openai"
	LLMProviderCompat = "compat"
	LLMProviderGemini = "gemini"
)

// Rate limiter backends.
const (
	RateLimitBackendMemory = "memory"
	RateLimitBackendRedis  = "redis"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Billing settings are deliberately optional: without a Stripe secret key the
// billing endpoints answer 503 and the rest of the API keeps working.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		return ErrInvalidServerConfigs
	}
	if cfg.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: max body bytes must be positive", ErrInvalidServerConfigs)
	}

	switch cfg.Identity.Mode {
	case IdentityModeFirebase:
		if cfg.Identity.ProjectID == "" || cfg.Identity.JWKSURL == "" {
			return fmt.Errorf("%w: firebase mode requires project id and jwks url", ErrInvalidIdentityConfigs)
		}
	case IdentityModeLocal:
		if cfg.Identity.SignKey == "" || cfg.Identity.Issuer == "" {
			return fmt.Errorf("%w: local mode requires sign key and issuer", ErrInvalidIdentityConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidIdentityConfigs, cfg.Identity.Mode)
	}

	switch cfg.LLM.Provider {
	case LLMProviderOpenAI, LLMProviderGemini:
	case LLMProviderCompat:
		if cfg.LLM.BaseURL == "" {
			return fmt.Errorf("%w: compat provider requires base url", ErrInvalidLLMConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown provider %q", ErrInvalidLLMConfigs, cfg.LLM.Provider)
	}
	if cfg.LLM.APIKey == "" || cfg.LLM.Model == "" {
		return fmt.Errorf("%w: api key and model are required", ErrInvalidLLMConfigs)
	}

	switch cfg.RateLimit.Backend {
	case RateLimitBackendMemory:
	case RateLimitBackendRedis:
		if cfg.RateLimit.RedisAddress == "" {
			return fmt.Errorf("%w: redis backend requires address", ErrInvalidRateLimitConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidRateLimitConfigs, cfg.RateLimit.Backend)
	}
	for _, w := range []Window{cfg.RateLimit.General, cfg.RateLimit.AI, cfg.RateLimit.Auth} {
		if w.Limit <= 0 || w.Period <= 0 {
			return fmt.Errorf("%w: limits and periods must be positive", ErrInvalidRateLimitConfigs)
		}
	}

	return nil
}
