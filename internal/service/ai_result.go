package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/report-buddy/internal/adapter"
	"github.com/MKhiriev/report-buddy/models"
)

// ResultKind tags the outcome of a language model call.
type ResultKind int

const (
	ResultOk ResultKind = iota
	ResultParseError
	ResultCallError
)

// Result is the outcome of a language model call: a decoded value, output
// that could not be decoded, or a failed call.
type Result[T any] struct {
	Kind  ResultKind
	Value T
	Raw   string
	Cause error
}

func Ok[T any](value T) Result[T] {
	return Result[T]{Kind: ResultOk, Value: value}
}

func ParseError[T any](raw string, cause error) Result[T] {
	return Result[T]{Kind: ResultParseError, Raw: raw, Cause: cause}
}

func CallError[T any](cause error) Result[T] {
	return Result[T]{Kind: ResultCallError, Cause: cause}
}

// Unwrap converts the result into the value or a service error matching
// ErrAIInvalidResponse or ErrAIUnavailable.
func (r Result[T]) Unwrap() (T, error) {
	switch r.Kind {
	case ResultOk:
		return r.Value, nil
	case ResultParseError:
		return r.Value, fmt.Errorf("%w: %w", ErrAIInvalidResponse, r.Cause)
	default:
		return r.Value, fmt.Errorf("%w: %w", ErrAIUnavailable, r.Cause)
	}
}

// DecodeJSON parses raw model output into T. Code fences around the JSON
// object are tolerated.
func DecodeJSON[T any](raw string) Result[T] {
	body := strings.TrimSpace(raw)
	body = strings.TrimPrefix(body, "```json")
	body = strings.TrimPrefix(body, "```")
	body = strings.TrimSuffix(body, "```")
	body = strings.TrimSpace(body)

	if body == "" || body == "null" {
		return ParseError[T](raw, errors.New("empty output"))
	}

	var value T
	if err := json.Unmarshal([]byte(body), &value); err != nil {
		return ParseError[T](raw, err)
	}
	return Ok(value)
}

// completeText runs a free-text completion.
func completeText(ctx context.Context, llm adapter.ChatCompleter, req models.ChatRequest) Result[string] {
	out, err := llm.Complete(ctx, req)
	if err != nil {
		return CallError[string](err)
	}
	return Ok(strings.TrimSpace(out))
}

// completeJSON runs a JSON-mode completion and decodes the output into T.
func completeJSON[T any](ctx context.Context, llm adapter.ChatCompleter, req models.ChatRequest) Result[T] {
	req.JSON = true

	out, err := llm.Complete(ctx, req)
	if err != nil {
		return CallError[T](err)
	}
	return DecodeJSON[T](out)
}
