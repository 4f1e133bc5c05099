package prompt

import (
	"encoding/json"
	"fmt"
	"strings"
)

// System is the system prompt shared by every strategy call.
const System = "You are a senior business strategy analyst. " +
	"Return only strict JSON with the requested keys. " +
	"No prose, no markdown, no backticks."

// Inputs are the wizard fields a framework prompt is built from.
type Inputs struct {
	Company string
	Scope   string
	Product string
	Notes   string
	Geo     string
	Peers   []string
}

func (in Inputs) geo() string {
	if in.Geo == "" {
		return "unspecified"
	}
	return in.Geo
}

func (in Inputs) market() string {
	if in.Geo == "" {
		return "the target market"
	}
	return in.Geo
}

// header renders the common input block at the top of every user prompt.
func (in Inputs) header() string {
	return fmt.Sprintf("Company: %s\nIndustry/Scope: %s\nProduct: %s\nGeography: %s\nNotes: %s",
		in.Company, in.Scope, in.Product, in.geo(), in.Notes)
}

// Scope asks for a short industry/scope label for a company.
func Scope(company string) string {
	return fmt.Sprintf(`Company: %s

TASK: Name the primary industry or business scope of this company in 2-6 words.

Output schema:
{"scope": "..."}`, company)
}

// Recommendations builds the prompt that turns the reviewed results into
// prioritized recommendations.
func Recommendations(results any) (string, error) {
	b, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}
	return fmt.Sprintf(`Strategy analysis results (JSON):
%s

TASK: Derive 6-10 prioritized strategic recommendations from the analysis above.

Constraints:
- Return **ONLY** valid JSON. No commentary, no code fences.
- title: imperative, at most 10 words.
- impact and effort: integers from 1 (lowest) to 5 (highest).
- rationale: one sentence tying the recommendation to a specific finding.
- Order by priority, highest first.

Output schema:
{
  "recommendations": [
    {"title": "...", "impact": 4, "effort": 2, "rationale": "..."}
  ]
}`, string(b)), nil
}

func joinPeers(peers []string) string {
	if len(peers) == 0 {
		return "the main competitors"
	}
	return strings.Join(peers, ", ")
}
