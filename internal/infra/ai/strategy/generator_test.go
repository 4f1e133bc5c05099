package strategy

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/stratiq/internal/domain/ai"
	"github.com/bryanwahyu/stratiq/internal/domain/analysis"
	"github.com/bryanwahyu/stratiq/internal/infra/ai/mock"
)

// scriptedProvider answers by matching a marker in the user prompt.
type scriptedProvider struct {
	answers map[string]string
	err     error
	calls   []string
}

func (p *scriptedProvider) Name() string { return "fake/model" }

func (p *scriptedProvider) Complete(_ context.Context, system, user string, opts ai.Options) (string, error) {
	p.calls = append(p.calls, user)
	if p.err != nil {
		return "", p.err
	}
	if !opts.JSON || system == "" {
		return "", errors.New("expected JSON mode with a system prompt")
	}
	for marker, answer := range p.answers {
		if strings.Contains(user, marker) {
			return answer, nil
		}
	}
	return "{}", nil
}

func TestExtractJSON(t *testing.T) {
	v, err := ExtractJSON(`{"a": 1}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1.0}, v)

	v, err = ExtractJSON("Here you go:\n```json\n{\"a\": [\"x\"]}\n```\nThanks")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": []any{"x"}}, v)

	_, err = ExtractJSON("no json here")
	assert.Error(t, err)
	_, err = ExtractJSON("   ")
	assert.ErrorIs(t, err, ai.ErrEmptyResponse)
}

func TestGenerateFrameworksNormalizes(t *testing.T) {
	p := &scriptedProvider{answers: map[string]string{
		"Generate a detailed SWOT": `{"S":["a","b","c","d","e","f","g","h","i"],"W":["w"],"O":[],"T":"t"}`,
		"Ansoff growth matrix":     "```json\n{\"market_penetration\":[\"bundle\"]}\n```",
		"industry verticals":       `[{"industry_vertical_name":"Retail","TAM":12.5,"Critical Success category":{"Economies of Scale":["volume"]}}]`,
		"Benchmark Acme":           `{"table":[{"capability":"Price","Acme":4,"Rival A":3}]}`,
	}}
	g := New(p)
	out, err := g.GenerateFrameworks(context.Background(), analysis.FrameworkRequest{
		Company:    "Acme",
		Scope:      "Retail tech",
		Product:    "POS",
		Frameworks: []analysis.Framework{analysis.FrameworkSWOT, analysis.FrameworkAnsoff, analysis.FrameworkIndustry, analysis.FrameworkBenchmark},
		Peers:      []string{"Rival A"},
	})
	require.NoError(t, err)
	assert.Len(t, p.calls, 4)
	assert.Equal(t, []analysis.Framework{analysis.FrameworkSWOT, analysis.FrameworkAnsoff, analysis.FrameworkIndustry, analysis.FrameworkBenchmark}, out.Frameworks)

	assert.Len(t, out.Results.SWOT.S, MaxItems)
	assert.Equal(t, []string{"t"}, out.Results.SWOT.T)
	assert.Equal(t, []string{"bundle"}, out.Results.Ansoff.MarketPenetration)
	require.Len(t, out.Results.Industry.Industries, 1)
	assert.Equal(t, "12.5", out.Results.Industry.Industries[0].TAM)
	assert.Equal(t, "volume", out.Results.Industry.Industries[0].TopFactor("Economies_of_Scale"))
	assert.Equal(t, "4", out.Results.Benchmark.Table[0]["Acme"])
	assert.Equal(t, []string{"Rival A"}, out.Results.Benchmark.Peers)
}

func TestEmptySWOTFallsBack(t *testing.T) {
	g := New(&scriptedProvider{answers: map[string]string{"SWOT": `{"S":[],"W":[],"O":[],"T":[]}`}})
	out, err := g.GenerateFrameworks(context.Background(), analysis.FrameworkRequest{
		Company:    "Acme",
		Frameworks: []analysis.Framework{analysis.FrameworkSWOT},
	})
	require.NoError(t, err)
	assert.Equal(t, mock.FallbackSWOT(), out.Results.SWOT)
}

func TestGenerateFrameworksFailureAborts(t *testing.T) {
	g := New(&scriptedProvider{err: ai.ErrQuotaExceeded})
	_, err := g.GenerateFrameworks(context.Background(), analysis.FrameworkRequest{
		Frameworks: []analysis.Framework{analysis.FrameworkSWOT, analysis.FrameworkAnsoff},
	})
	assert.ErrorIs(t, err, ai.ErrQuotaExceeded)
}

func TestGenerateRecommendations(t *testing.T) {
	p := &scriptedProvider{answers: map[string]string{
		"prioritized strategic recommendations": `{"recommendations":[{"title":"Pilot","impact":7,"effort":2,"rationale":"quick"}]}`,
	}}
	recs, err := New(p).GenerateRecommendations(context.Background(), analysis.NewResults())
	require.NoError(t, err)
	assert.Equal(t, []analysis.Recommendation{{Title: "Pilot", Impact: 5, Effort: 2, Rationale: "quick"}}, recs)
}

func TestSuggestScope(t *testing.T) {
	g := New(&scriptedProvider{answers: map[string]string{"business scope": `{"scope":" Industrial IoT "}`}})
	scope, err := g.SuggestScope(context.Background(), "Acme")
	require.NoError(t, err)
	assert.Equal(t, "Industrial IoT", scope)

	g = New(&scriptedProvider{})
	_, err = g.SuggestScope(context.Background(), "Acme")
	assert.Error(t, err)
}
