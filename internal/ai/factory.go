package ai

import (
	"context"
	"fmt"
)

const (
	ProviderOpenAI  = "openai"
	ProviderGemini  = "gemini"
	ProviderFixture = "fixture"
)

// Settings selects and configures a provider.
type Settings struct {
	Provider    string
	OpenAIKey   string
	OpenAIModel string
	GeminiKey   string
	GeminiModel string
	FixtureDir  string
}

// New builds the configured Generator. The returned close func is never nil.
func New(ctx context.Context, s Settings) (Generator, func(), error) {
	noop := func() {}
	switch s.Provider {
	case ProviderOpenAI, "":
		p, err := NewOpenAIProvider(s.OpenAIKey, s.OpenAIModel)
		if err != nil {
			return nil, noop, err
		}
		return p, noop, nil
	case ProviderGemini:
		p, err := NewGeminiProvider(ctx, s.GeminiKey, s.GeminiModel)
		if err != nil {
			return nil, noop, err
		}
		return p, p.Close, nil
	case ProviderFixture:
		return NewFixtureGenerator(s.FixtureDir), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown generation provider %q", s.Provider)
	}
}
