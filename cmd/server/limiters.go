package main

import (
	"fmt"

	"github.com/MKhiriev/report-buddy/internal/config"
	httphandler "github.com/MKhiriev/report-buddy/internal/handler/http"
	"github.com/MKhiriev/report-buddy/internal/ratelimit"
	"github.com/MKhiriev/report-buddy/internal/workers"
)

type limiterFactory func(name string, w config.Window) (ratelimit.Limiter, error)

// newLimiters builds the general, AI and auth limiters on the configured
// backend. In-memory limiters are also returned as sweepers.
func newLimiters(cfg config.RateLimit) (httphandler.Limiters, []workers.Sweeper, error) {
	var (
		build    limiterFactory
		sweepers []workers.Sweeper
	)

	switch cfg.Backend {
	case config.RateLimitBackendRedis:
		client, err := ratelimit.NewRedisClient(cfg.RedisAddress, cfg.RedisPassword)
		if err != nil {
			return httphandler.Limiters{}, nil, err
		}
		build = func(name string, w config.Window) (ratelimit.Limiter, error) {
			return ratelimit.NewRedisFixedWindow(client, cfg.RedisPrefix, name, w.Limit, w.Period)
		}
	default:
		build = func(_ string, w config.Window) (ratelimit.Limiter, error) {
			l, err := ratelimit.NewMemoryFixedWindow(w.Limit, w.Period)
			if err != nil {
				return nil, err
			}
			sweepers = append(sweepers, l)
			return l, nil
		}
	}

	var (
		limiters httphandler.Limiters
		err      error
	)
	for _, w := range []struct {
		name   string
		window config.Window
		dst    *ratelimit.Limiter
	}{
		{"general", cfg.General, &limiters.General},
		{"ai", cfg.AI, &limiters.AI},
		{"auth", cfg.Auth, &limiters.Auth},
	} {
		if *w.dst, err = build(w.name, w.window); err != nil {
			return httphandler.Limiters{}, nil, fmt.Errorf("%s limiter: %w", w.name, err)
		}
	}

	return limiters, sweepers, nil
}
