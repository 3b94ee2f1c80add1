package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	openAIEndpoint     = "https://api.openai.com/v1/chat/completions"
	DefaultOpenAIModel = "gpt-4-turbo-preview"
)

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// OpenAIProvider implements Generator against the chat completions API in JSON mode.
type OpenAIProvider struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

type OpenAIOption func(*OpenAIProvider)

// WithEndpoint points the provider at a compatible chat completions URL.
func WithEndpoint(url string) OpenAIOption {
	return func(p *OpenAIProvider) { p.endpoint = url }
}

func WithHTTPClient(c *http.Client) OpenAIOption {
	return func(p *OpenAIProvider) { p.client = c }
}

func NewOpenAIProvider(apiKey, model string, opts ...OpenAIOption) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: api key is required")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	p := &OpenAIProvider{
		apiKey:   apiKey,
		model:    model,
		endpoint: openAIEndpoint,
		// No client timeout: call duration is bounded by the caller's context.
		client: &http.Client{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Generate sends the persona and request as system/user messages and returns the reply text.
func (p *OpenAIProvider) Generate(ctx context.Context, prompt Prompt) (string, error) {
	msgs := make([]chatMessage, 0, 2)
	if prompt.System != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: prompt.System})
	}
	msgs = append(msgs, chatMessage{Role: "user", Content: prompt.User})

	reqBody, err := json.Marshal(chatRequest{
		Model:          p.model,
		Messages:       msgs,
		Temperature:    0.7,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai %s: %w: %v", prompt.Task, ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("openai %s: %w: read response: %v", prompt.Task, ErrTransport, err)
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("openai %s: %w: status %d", prompt.Task, ErrTransport, resp.StatusCode)
		}
		return "", fmt.Errorf("openai %s: unmarshal response: %w", prompt.Task, err)
	}
	if cr.Error != nil {
		return "", fmt.Errorf("openai %s: %w: status %d: %s", prompt.Task, ErrTransport, resp.StatusCode, cr.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai %s: %w: status %d", prompt.Task, ErrTransport, resp.StatusCode)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("openai %s: %w", prompt.Task, ErrEmptyResponse)
	}
	out := CleanJSON(cr.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("openai %s: %w", prompt.Task, ErrEmptyResponse)
	}
	return out, nil
}
