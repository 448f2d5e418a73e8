package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/report-buddy/internal/config"
	"github.com/MKhiriev/report-buddy/models"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	geminiRoleUser  = "user"
	geminiRoleModel = "model"
)

var errNoUserTurn = errors.New("conversation must end with a user message")

type geminiCompleter struct {
	client *genai.Client
	model  string
}

func newGeminiCompleter(ctx context.Context, cfg config.LLM) (*geminiCompleter, error) {
	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &geminiCompleter{client: client, model: cfg.Model}, nil
}

func (c *geminiCompleter) Complete(ctx context.Context, req models.ChatRequest) (string, error) {
	system, history, last, err := geminiConversation(req.Messages)
	if err != nil {
		return "", err
	}

	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(req.Temperature)
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}
	if req.JSON {
		model.ResponseMIMEType = "application/json"
	}

	chat := model.StartChat()
	chat.History = history

	resp, err := chat.SendMessage(ctx, last...)
	if err != nil {
		return "", fmt.Errorf("gemini send message: %w", err)
	}

	return geminiText(resp)
}

func (c *geminiCompleter) Close() error {
	return c.client.Close()
}

// geminiConversation splits a chat into the system instruction, the prior
// history and the parts of the final user turn. Leading system messages form
// the instruction; later system messages are sent as user turns. Consecutive
// turns of the same role are merged.
func geminiConversation(messages []models.ChatMessage) (string, []*genai.Content, []genai.Part, error) {
	var system []string
	i := 0
	for ; i < len(messages) && messages[i].Role == models.RoleSystem; i++ {
		system = append(system, messages[i].Content)
	}

	var contents []*genai.Content
	for _, m := range messages[i:] {
		role := geminiRoleUser
		if m.Role == models.RoleAssistant {
			role = geminiRoleModel
		}

		if n := len(contents); n > 0 && contents[n-1].Role == role {
			contents[n-1].Parts = append(contents[n-1].Parts, genai.Text(m.Content))
			continue
		}
		contents = append(contents, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(m.Content)}})
	}

	if len(contents) == 0 || contents[len(contents)-1].Role != geminiRoleUser {
		return "", nil, nil, errNoUserTurn
	}

	last := contents[len(contents)-1]
	return strings.Join(system, "\n\n"), contents[:len(contents)-1], last.Parts, nil
}

func geminiText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyCompletion
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyCompletion
	}

	return sb.String(), nil
}
