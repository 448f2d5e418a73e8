// Package ratelimit provides fixed-window request limiters keyed by an
// arbitrary string, usually the client IP.
package ratelimit

import (
	"context"
	"errors"
	"strings"
)

// ErrInvalidWindow is returned for a non-positive limit or window.
var ErrInvalidWindow = errors.New("rate limiter requires positive limit and window")

// Limiter decides whether one more request for key fits in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "unknown"
	}
	return key
}
