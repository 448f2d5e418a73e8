package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/report-buddy/internal/config"
	"github.com/MKhiriev/report-buddy/internal/utils"
	"github.com/MKhiriev/report-buddy/models"
)

// compatCompleter talks to any gateway exposing the OpenAI chat completions
// wire format.
type compatCompleter struct {
	client *utils.HTTPClient
	model  string
}

type compatResponseFormat struct {
	Type string `json:"type"`
}

type compatChatRequest struct {
	Model          string                `json:"model"`
	Messages       []models.ChatMessage  `json:"messages"`
	Temperature    float32               `json:"temperature"`
	MaxTokens      int                   `json:"max_tokens,omitempty"`
	ResponseFormat *compatResponseFormat `json:"response_format,omitempty"`
}

type compatChatResponse struct {
	Choices []struct {
		Message models.ChatMessage `json:"message"`
	} `json:"choices"`
}

func newCompatCompleter(cfg config.LLM) *compatCompleter {
	client := utils.NewHTTPClient(cfg.BaseURL, cfg.Timeout)
	client.SetAuthToken(cfg.APIKey)

	return &compatCompleter{client: client, model: cfg.Model}
}

func (c *compatCompleter) Complete(ctx context.Context, req models.ChatRequest) (string, error) {
	body := compatChatRequest{
		Model:       c.model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSON {
		body.ResponseFormat = &compatResponseFormat{Type: "json_object"}
	}

	var out compatChatResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&out).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}

	return out.Choices[0].Message.Content, nil
}
