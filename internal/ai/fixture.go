package ai

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FixtureGenerator answers every task with a document from disk. Used for local development
// without a provider key.
type FixtureGenerator struct {
	files map[string]string
}

// NewFixtureGenerator maps the standard tasks onto the snapshot files in dir.
func NewFixtureGenerator(dir string) *FixtureGenerator {
	return &FixtureGenerator{files: map[string]string{
		TaskGenerateItinerary: filepath.Join(dir, "itinerary.json"),
		TaskReviseItinerary:   filepath.Join(dir, "itinerary.json"),
		TaskSimulateBookings:  filepath.Join(dir, "booking-response.json"),
	}}
}

func (g *FixtureGenerator) Generate(ctx context.Context, p Prompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, ok := g.files[p.Task]
	if !ok {
		return "", fmt.Errorf("fixture: no document for task %q", p.Task)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("fixture %s: %w: %v", p.Task, ErrTransport, err)
	}
	out := CleanJSON(string(b))
	if out == "" {
		return "", fmt.Errorf("fixture %s: %w", p.Task, ErrEmptyResponse)
	}
	return out, nil
}
