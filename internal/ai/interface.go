package ai

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrTransport marks failures reaching the generation service (network, HTTP status).
	ErrTransport = errors.New("generation service unreachable")
	// ErrEmptyResponse is returned when the service answers without any content.
	ErrEmptyResponse = errors.New("generation service returned no content")
)

// Generator defines the contract for the text generation service behind the planner.
// Implementations must return the raw JSON document produced for the prompt.
type Generator interface {
	Generate(ctx context.Context, p Prompt) (string, error)
}

// CleanJSON removes markdown code fences if present (e.g. ```json ... ```).
func CleanJSON(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```JSON")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
