package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/report-buddy/internal/config"
	"github.com/MKhiriev/report-buddy/internal/logger"
	"github.com/MKhiriev/report-buddy/models"
)

// NewChatCompleter builds the [ChatCompleter] for the configured provider.
// Every call is bounded by cfg.Timeout when it is positive.
func NewChatCompleter(ctx context.Context, cfg config.LLM, log *logger.Logger) (ChatCompleter, error) {
	var (
		completer ChatCompleter
		err       error
	)

	switch cfg.Provider {
	case config.LLMProviderOpenAI:
		completer = newOpenAICompleter(cfg)
	case config.LLMProviderCompat:
		completer = newCompatCompleter(cfg)
	case config.LLMProviderGemini:
		completer, err = newGeminiCompleter(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLLMProvider, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	log.Info().Str("provider", cfg.Provider).Str("model", cfg.Model).Msg("language model client configured")

	return &loggedCompleter{
		next:    completer,
		timeout: cfg.Timeout,
		log:     log.GetChildLogger(),
	}, nil
}

type loggedCompleter struct {
	next    ChatCompleter
	timeout time.Duration
	log     *logger.Logger
}

func (c *loggedCompleter) Complete(ctx context.Context, req models.ChatRequest) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := c.next.Complete(ctx, req)
	if err != nil {
		c.log.Err(err).
			Int("messages", len(req.Messages)).
			Dur("elapsed", time.Since(start)).
			Msg("chat completion failed")
		return "", err
	}

	c.log.Debug().
		Int("messages", len(req.Messages)).
		Int("output_len", len(out)).
		Dur("elapsed", time.Since(start)).
		Msg("chat completion finished")

	return out, nil
}

// Close releases the provider client when it holds resources.
func (c *loggedCompleter) Close() error {
	if closer, ok := c.next.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
