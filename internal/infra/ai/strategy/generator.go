// Package strategy implements the live analysis.Generator over an LLM provider.
package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/bryanwahyu/stratiq/internal/domain/ai"
	"github.com/bryanwahyu/stratiq/internal/domain/analysis"
	"github.com/bryanwahyu/stratiq/internal/infra/ai/mock"
	"github.com/bryanwahyu/stratiq/internal/infra/ai/prompt"
)

// MaxItems caps every bullet list returned by the model.
const MaxItems = 8

const (
	temperature = 0.2
	maxTokens   = 1200
)

// Generator asks the provider once per framework and normalizes the answers.
type Generator struct {
	Provider ai.Provider
}

func New(p ai.Provider) *Generator {
	return &Generator{Provider: p}
}

func (g *Generator) SuggestScope(ctx context.Context, company string) (string, error) {
	raw, err := g.completeJSON(ctx, prompt.Scope(company))
	if err != nil {
		return "", err
	}
	m, _ := raw.(map[string]any)
	scope := strings.TrimSpace(fmt.Sprint(m["scope"]))
	if m == nil || m["scope"] == nil || scope == "" {
		return "", fmt.Errorf("scope missing in model output")
	}
	return scope, nil
}

// GenerateFrameworks calls the provider sequentially for each requested
// framework. The first failure aborts the whole request.
func (g *Generator) GenerateFrameworks(ctx context.Context, req analysis.FrameworkRequest) (analysis.Generated, error) {
	in := prompt.Inputs{
		Company: req.Company,
		Scope:   req.Scope,
		Product: req.Product,
		Notes:   req.Notes,
		Geo:     string(req.Geo),
		Peers:   req.Peers,
	}
	out := analysis.Generated{Results: analysis.NewResults()}
	for _, f := range req.Frameworks {
		if err := g.generateOne(ctx, f, in, &out.Results); err != nil {
			return analysis.Generated{}, fmt.Errorf("%s: %w", f, err)
		}
		out.Frameworks = append(out.Frameworks, f)
	}
	return out, nil
}

func (g *Generator) generateOne(ctx context.Context, f analysis.Framework, in prompt.Inputs, res *analysis.Results) error {
	var user string
	switch f {
	case analysis.FrameworkSWOT:
		user = prompt.SWOT(in)
	case analysis.FrameworkAnsoff:
		user = prompt.Ansoff(in)
	case analysis.FrameworkIndustry:
		user = prompt.Industry(in)
	case analysis.FrameworkBenchmark:
		user = prompt.Benchmark(in)
	case analysis.FrameworkFit:
		user = prompt.Fit(in)
	default:
		return fmt.Errorf("%w: %q", analysis.ErrUnknownFramework, f)
	}

	raw, err := g.completeJSON(ctx, user)
	if err != nil {
		return err
	}
	obj, _ := raw.(map[string]any)

	switch f {
	case analysis.FrameworkSWOT:
		res.SWOT = analysis.ParseSWOT(obj, MaxItems)
		if isEmptySWOT(res.SWOT) {
			res.SWOT = mock.FallbackSWOT()
		}
	case analysis.FrameworkAnsoff:
		res.Ansoff = analysis.ParseAnsoff(obj, MaxItems)
	case analysis.FrameworkIndustry:
		res.Industry = analysis.ParseIndustry(raw)
	case analysis.FrameworkBenchmark:
		res.Benchmark = analysis.ParseBenchmark(obj)
		if len(res.Benchmark.Peers) == 0 {
			res.Benchmark.Peers = append([]string{}, in.Peers...)
		}
	case analysis.FrameworkFit:
		res.Fit = analysis.ParseFit(raw)
	}
	return nil
}

func (g *Generator) GenerateRecommendations(ctx context.Context, results analysis.Results) ([]analysis.Recommendation, error) {
	user, err := prompt.Recommendations(results)
	if err != nil {
		return nil, err
	}
	raw, err := g.completeJSON(ctx, user)
	if err != nil {
		return nil, err
	}
	return analysis.ParseRecommendations(raw), nil
}

func (g *Generator) completeJSON(ctx context.Context, user string) (any, error) {
	text, err := g.Provider.Complete(ctx, prompt.System, user, ai.Options{
		JSON:        true,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return nil, err
	}
	v, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}
	return v, nil
}

var jsonBlock = regexp.MustCompile(`\{[\s\S]*\}`)

// ExtractJSON parses model output: the whole text first, else the outermost
// {...} block, which also covers fenced code blocks.
func ExtractJSON(text string) (any, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("extract json: %w", ai.ErrEmptyResponse)
	}
	var v any
	if err := json.Unmarshal([]byte(text), &v); err == nil {
		return v, nil
	}
	if m := jsonBlock.FindString(text); m != "" {
		if err := json.Unmarshal([]byte(m), &v); err == nil {
			return v, nil
		}
	}
	return nil, fmt.Errorf("extract json: no JSON object in model output")
}

func isEmptySWOT(s analysis.SWOT) bool {
	return len(s.S)+len(s.W)+len(s.O)+len(s.T) == 0
}
