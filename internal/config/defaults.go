package config

import "time"

const (
	defaultHTTPAddress    = "0.0.0.0:8080"
	defaultRequestTimeout = 2 * time.Minute
	defaultMaxBodyBytes   = 2 << 20

	// DefaultFirebaseJWKSURL publishes the keys that sign Firebase ID tokens.
	DefaultFirebaseJWKSURL = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Env: "development",
		},
		Server: Server{
			HTTPAddress:    defaultHTTPAddress,
			RequestTimeout: defaultRequestTimeout,
			MaxBodyBytes:   defaultMaxBodyBytes,
		},
		Identity: Identity{
			Mode:    IdentityModeFirebase,
			JWKSURL: DefaultFirebaseJWKSURL,
		},
		LLM: LLM{
			Provider: LLMProviderOpenAI,
			Model:    "gpt-4o",
			Timeout:  90 * time.Second,
		},
		RateLimit: RateLimit{
			Backend:     RateLimitBackendMemory,
			RedisPrefix: "report-buddy:ratelimit",
			General:     Window{Limit: 100, Period: 15 * time.Minute},
			AI:          Window{Limit: 10, Period: time.Minute},
			Auth:        Window{Limit: 10, Period: time.Minute},
		},
		Workers: Workers{
			LimiterSweepInterval: time.Minute,
		},
	}
}
