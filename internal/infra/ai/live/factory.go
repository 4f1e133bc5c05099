// Package live builds the LLM-backed strategy generator from the provider
// settings and the API keys found in the environment.
package live

import (
	"context"
	"fmt"
	"strings"

	appwizard "github.com/bryanwahyu/stratiq/internal/application/wizard"
	"github.com/bryanwahyu/stratiq/internal/domain/ai"
	"github.com/bryanwahyu/stratiq/internal/domain/analysis"
	"github.com/bryanwahyu/stratiq/internal/infra/ai/gemini"
	"github.com/bryanwahyu/stratiq/internal/infra/ai/openai"
	"github.com/bryanwahyu/stratiq/internal/infra/ai/strategy"
)

// Settings picks the provider.
type Settings struct {
	Provider string // openai | gemini
	Model    string
	BaseURL  string // gemini only, for proxies and tests
}

// Factory returns a LiveFactory that reads keys through getenv on every call,
// so keys exported after startup are picked up.
func Factory(ctx context.Context, s Settings, getenv func(string) string) appwizard.LiveFactory {
	return func() (analysis.Generator, string, error) {
		p, err := provider(ctx, s, getenv)
		if err != nil {
			return nil, "", err
		}
		return strategy.New(p), p.Name(), nil
	}
}

func provider(ctx context.Context, s Settings, getenv func(string) string) (ai.Provider, error) {
	switch strings.ToLower(s.Provider) {
	case "", "openai":
		key := strings.TrimSpace(getenv("OPENAI_API_KEY"))
		if key == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY not set", appwizard.ErrLiveUnavailable)
		}
		return openai.NewClient(key, strings.TrimSpace(getenv("OPENAI_PROJECT")), s.Model), nil
	case "gemini":
		key := strings.TrimSpace(getenv("GEMINI_API_KEY"))
		if key == "" {
			return nil, fmt.Errorf("%w: GEMINI_API_KEY not set", appwizard.ErrLiveUnavailable)
		}
		c, err := gemini.NewClient(ctx, key, s.Model, s.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", appwizard.ErrLiveUnavailable, err)
		}
		return c, nil
	}
	return nil, fmt.Errorf("%w: unknown provider %q", appwizard.ErrLiveUnavailable, s.Provider)
}
