package ai

import "context"

// Options tunes a single completion call.
type Options struct {
	// JSON asks the provider for a JSON object response.
	JSON        bool
	MaxTokens   int
	Temperature float32
}

// Provider port (interface untuk LLM backend: OpenAI, Gemini)
type Provider interface {
	Complete(ctx context.Context, system, user string, opts Options) (string, error)
	// Name returns "<provider>/<model>", used for the generator mode label.
	Name() string
}
