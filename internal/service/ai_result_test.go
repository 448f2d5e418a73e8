package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/report-buddy/internal/mock"
	"github.com/MKhiriev/report-buddy/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantKind ResultKind
		want     models.FollowUpCheck
	}{
		{
			name:     "plain object",
			raw:      `{"ready": true}`,
			wantKind: ResultOk,
			want:     models.FollowUpCheck{Ready: true},
		},
		{
			name:     "fenced object",
			raw:      "```json\n{\"ready\": false, \"questions\": [\"Where?\"]}\n```",
			wantKind: ResultOk,
			want:     models.FollowUpCheck{Questions: []string{"Where?"}},
		},
		{
			name:     "bare fence",
			raw:      "```\n{\"ready\": true}\n```",
			wantKind: ResultOk,
			want:     models.FollowUpCheck{Ready: true},
		},
		{
			name:     "prose",
			raw:      "Sure, here you go",
			wantKind: ResultParseError,
		},
		{
			name:     "empty",
			raw:      "  ",
			wantKind: ResultParseError,
		},
		{
			name:     "null",
			raw:      "null",
			wantKind: ResultParseError,
		},
		{
			name:     "fenced null",
			raw:      "```json\nnull\n```",
			wantKind: ResultParseError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeJSON[models.FollowUpCheck](tt.raw)
			assert.Equal(t, tt.wantKind, got.Kind)
			if tt.wantKind == ResultOk {
				assert.Equal(t, tt.want, got.Value)
			} else {
				assert.Equal(t, tt.raw, got.Raw)
				assert.Error(t, got.Cause)
			}
		})
	}
}

func TestResult_Unwrap(t *testing.T) {
	v, err := Ok(3).Unwrap()
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = ParseError[int]("x", errors.New("bad")).Unwrap()
	assert.ErrorIs(t, err, ErrAIInvalidResponse)

	_, err = CallError[int](errors.New("down")).Unwrap()
	assert.ErrorIs(t, err, ErrAIUnavailable)
}

func TestCompleteJSON_SetsJSONMode(t *testing.T) {
	ctrl := gomock.NewController(t)
	llm := mock.NewMockChatCompleter(ctrl)

	llm.EXPECT().
		Complete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.ChatRequest) (string, error) {
			assert.True(t, req.JSON)
			return `{"charges": []}`, nil
		})

	got := completeJSON[models.ChargeSuggestions](context.Background(), llm, chat("s", "u", 0.2, 100))
	assert.Equal(t, ResultOk, got.Kind)
}

func TestCompleteText_TrimsAndReportsCallErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	llm := mock.NewMockChatCompleter(ctrl)

	gomock.InOrder(
		llm.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("  text \n", nil),
		llm.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("", errors.New("timeout")),
	)

	got := completeText(context.Background(), llm, chat("s", "u", 0.2, 100))
	assert.Equal(t, Ok("text"), got)

	got = completeText(context.Background(), llm, chat("s", "u", 0.2, 100))
	assert.Equal(t, ResultCallError, got.Kind)
}
