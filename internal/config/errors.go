package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates that no transport address is set or
	// that limits are non-positive.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidIdentityConfigs indicates an unknown identity mode or missing
	// project / sign key.
	ErrInvalidIdentityConfigs = errors.New("invalid identity configuration")
	// ErrInvalidLLMConfigs indicates an unknown provider or a missing API key.
	ErrInvalidLLMConfigs = errors.New("invalid llm configuration")
	// ErrInvalidRateLimitConfigs indicates an unknown backend, a redis
	// backend without address, or a non-positive window.
	ErrInvalidRateLimitConfigs = errors.New("invalid rate limit configuration")
)
