// Package mock is the offline analysis.Generator with fixed sample data.
package mock

import (
	"context"

	"github.com/bryanwahyu/stratiq/internal/domain/analysis"
)

// Generator returns the same sample content for every request.
type Generator struct{}

func New() *Generator { return &Generator{} }

// SuggestScope has no offline answer; an empty scope leaves the field untouched.
func (*Generator) SuggestScope(context.Context, string) (string, error) {
	return "", nil
}

func (*Generator) GenerateFrameworks(_ context.Context, req analysis.FrameworkRequest) (analysis.Generated, error) {
	out := analysis.Generated{Results: analysis.NewResults()}
	for _, f := range req.Frameworks {
		switch f {
		case analysis.FrameworkSWOT:
			out.Results.SWOT = analysis.SWOT{
				S: []string{"Clear value proposition", "Growing customer base"},
				W: []string{"Limited brand awareness"},
				O: []string{"Upsell existing accounts"},
				T: []string{"Price pressure from rivals"},
			}
		case analysis.FrameworkAnsoff:
			out.Results.Ansoff = analysis.Ansoff{
				MarketPenetration:  []string{"Bundle add‑ons"},
				MarketDevelopment:  []string{"Enter 1–2 adjacent regions"},
				ProductDevelopment: []string{"Launch analytics‑lite"},
				Diversification:    []string{"Vertical solution pack"},
			}
		case analysis.FrameworkIndustry:
			out.Results.Industry = sampleIndustry()
		case analysis.FrameworkBenchmark:
			out.Results.Benchmark = sampleBenchmark(req.Company, req.Peers)
		case analysis.FrameworkFit:
			out.Results.Fit = analysis.Fit{
				"dimensions": []any{
					map[string]any{"name": "Capability fit", "score": 4.0, "note": "Builds on the existing sensor platform."},
					map[string]any{"name": "Market fit", "score": 3.0, "note": "Demand proven in two verticals."},
				},
				"overall": "Moderate to strong fit",
			}
		default:
			continue
		}
		out.Frameworks = append(out.Frameworks, f)
	}
	return out, nil
}

func (*Generator) GenerateRecommendations(context.Context, analysis.Results) ([]analysis.Recommendation, error) {
	raw := []analysis.Recommendation{
		{Title: "OEM bundle program - Q0", Impact: 5, Effort: 3},
		{Title: "Managed calibration add‑on - Q0", Impact: 4, Effort: 2},
		{Title: "Managed calibration add‑on - Q1", Impact: 5, Effort: 4},
		{Title: "Managed calibration add‑on - Q1", Impact: 6, Effort: 5},
		{Title: "Managed calibration add‑on - Q2", Impact: 3, Effort: 2},
		{Title: "Managed calibration add‑on - Q2", Impact: 1, Effort: 3},
		{Title: "Managed calibration add‑on - Q4", Impact: 1, Effort: 4},
		{Title: "Managed calibration add‑on - Q4", Impact: 3, Effort: 6},
		{Title: "Managed calibration add‑on - Q1", Impact: 5, Effort: 4},
		{Title: "Managed calibration add‑on - Q2", Impact: 3, Effort: 2},
	}
	out := make([]analysis.Recommendation, len(raw))
	for i, r := range raw {
		r.Impact = analysis.ClampScore(r.Impact)
		r.Effort = analysis.ClampScore(r.Effort)
		r.Rationale = "Derived from analysis."
		out[i] = r
	}
	return out, nil
}

// FallbackSWOT is used when a live model answers with an empty SWOT.
func FallbackSWOT() analysis.SWOT {
	return analysis.SWOT{
		S: []string{
			"Clear value proposition",
			"Growing customer base",
			"Experienced leadership",
			"Strong partner interest",
		},
		W: []string{
			"Limited brand awareness",
			"Thin mid-market coverage",
			"Inconsistent messaging",
		},
		O: []string{
			"Upsell existing accounts",
			"New geography pilots",
			"Alliances with integrators",
		},
		T: []string{
			"Price pressure from low-cost rivals",
			"Long sales cycles",
			"Security/compliance scrutiny",
		},
	}
}

func sampleIndustry() analysis.Industry {
	return analysis.Industry{Industries: []analysis.IndustryRecord{
		{
			Name: "Discrete Manufacturing",
			TAM:  "48",
			SuccessFactors: map[string][]string{
				"Brand":              {"Reliability track record", "Reference customers"},
				"Economies_of_Scale": {"Volume component sourcing"},
				"Capital":            {"Working capital for pilots"},
			},
		},
		{
			Name: "Energy & Utilities",
			TAM:  "31",
			SuccessFactors: map[string][]string{
				"Brand":              {"Safety certifications"},
				"Economies_of_Scale": {"Fleet-wide deployments"},
				"Capital":            {"Long payback tolerance"},
			},
		},
	}}
}

func sampleBenchmark(company string, peers []string) analysis.Benchmark {
	if company == "" {
		company = "Company"
	}
	if len(peers) == 0 {
		peers = []string{"Rival A", "Rival B"}
	}
	capabilities := []struct{ name, own, peer string }{
		{"Pricing/Packaging", "Parity", "Strong"},
		{"Integrations/Partner ecosystem", "Strong", "Parity"},
		{"Analytics/AI", "Strong", "Weak"},
		{"Support/Success", "Parity", "Parity"},
	}
	b := analysis.Benchmark{Peers: append([]string{}, peers...)}
	for _, c := range capabilities {
		row := map[string]string{"capability": c.name, company: c.own}
		for _, p := range peers {
			row[p] = c.peer
		}
		b.Table = append(b.Table, row)
	}
	return b
}
