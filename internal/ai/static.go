package ai

import (
	"context"
	"fmt"
	"sync"
)

// StaticGenerator returns canned replies keyed by task and records every prompt it receives.
type StaticGenerator struct {
	mu      sync.Mutex
	replies map[string]string
	errs    map[string]error
	prompts []Prompt
}

func NewStaticGenerator(replies map[string]string) *StaticGenerator {
	r := make(map[string]string, len(replies))
	for k, v := range replies {
		r[k] = v
	}
	return &StaticGenerator{replies: r, errs: map[string]error{}}
}

// Fail makes every later call for task return err.
func (g *StaticGenerator) Fail(task string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.errs[task] = err
}

func (g *StaticGenerator) Generate(ctx context.Context, p Prompt) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, p)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := g.errs[p.Task]; err != nil {
		return "", err
	}
	reply, ok := g.replies[p.Task]
	if !ok {
		return "", fmt.Errorf("static: %w for task %q", ErrEmptyResponse, p.Task)
	}
	return CleanJSON(reply), nil
}

// Prompts returns a copy of the prompts received so far.
func (g *StaticGenerator) Prompts() []Prompt {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Prompt(nil), g.prompts...)
}
