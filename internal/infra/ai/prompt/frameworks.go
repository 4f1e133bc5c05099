package prompt

import (
	"fmt"
	"strings"
)

// CapabilityAreas must be covered across the SWOT bullets.
var CapabilityAreas = []string{
	"Brand strength",
	"Distribution/Channels",
	"Pricing/Packaging",
	"Integrations/Partner ecosystem",
	"Security/Compliance",
	"Analytics/AI",
	"Implementation complexity",
	"Support/Success",
}

// SuccessFactorCategories are the canonical keys of critical_success_factors.
var SuccessFactorCategories = []string{"Brand", "Economies_of_Scale", "Capital", "Technology", "Distribution"}

// SWOT builds the SWOT prompt.
func SWOT(in Inputs) string {
	return fmt.Sprintf(`%s

TASK: Generate a detailed SWOT for the inputs.

Constraints:
- Return **ONLY** valid JSON. No commentary, no code fences.
- Each of S, W, O, T must have **5-8 bullets**.
- Each bullet 8-18 words, **specific** (no vague boilerplate like "industry leading").
- Reflect the local context of **%s** and trends in **%s**.
- Cover these capabilities across the set of bullets (spread them; no need to label each):
  %s.
- Avoid duplicates; no trailing commas.

Output schema (must match exactly these keys):
{
  "S": ["...", "..."],
  "W": ["...", "..."],
  "O": ["...", "..."],
  "T": ["...", "..."]
}`, in.header(), in.market(), in.Scope, strings.Join(CapabilityAreas, ", "))
}

// Ansoff builds the Ansoff matrix prompt.
func Ansoff(in Inputs) string {
	return fmt.Sprintf(`%s

TASK: Fill the Ansoff growth matrix for the product.

Constraints:
- Return **ONLY** valid JSON. No commentary, no code fences.
- 2-5 concrete initiatives per quadrant, each 5-14 words.
- market_penetration: existing product, existing markets.
- market_development: existing product, new markets or segments in %s.
- product_development: new offerings for existing customers.
- diversification: new offerings for new markets.

Output schema:
{
  "market_penetration": ["..."],
  "market_development": ["..."],
  "product_development": ["..."],
  "diversification": ["..."]
}`, in.header(), in.market())
}

// Industry builds the industry analysis prompt.
func Industry(in Inputs) string {
	return fmt.Sprintf(`%s

TASK: Analyze the 3-5 industry verticals most relevant to the product.

Constraints:
- Return **ONLY** valid JSON. No commentary, no code fences.
- TAM is the total addressable market in billions of USD, as a number.
- critical_success_factors maps each of these categories to 1-3 ranked factors, most important first:
  %s.

Output schema:
{
  "industries": [
    {
      "industry_vertical_name": "...",
      "TAM": 0,
      "critical_success_factors": {"Brand": ["..."], "Economies_of_Scale": ["..."], "Capital": ["..."]}
    }
  ]
}`, in.header(), strings.Join(SuccessFactorCategories, ", "))
}

// Benchmark builds the competitor benchmark prompt.
func Benchmark(in Inputs) string {
	return fmt.Sprintf(`%s
Peers: %s

TASK: Benchmark %s against the peers on 5-8 capabilities.

Constraints:
- Return **ONLY** valid JSON. No commentary, no code fences.
- One row per capability; one column per company named exactly as given.
- Cell values are short ratings such as "Strong", "Parity", "Weak" or a 1-5 score.

Output schema:
{
  "table": [{"capability": "...", "%s": "...", "<peer>": "..."}],
  "peers": ["..."]
}`, in.header(), joinPeers(in.Peers), in.Company, in.Company)
}

// Fit builds the strategic fit matrix prompt.
func Fit(in Inputs) string {
	return fmt.Sprintf(`%s

TASK: Assess strategic fit of the product with the company and market.

Constraints:
- Return **ONLY** valid JSON. No commentary, no code fences.
- Score each dimension 1-5 and give a one-sentence note.

Output schema:
{
  "dimensions": [{"name": "...", "score": 3, "note": "..."}],
  "overall": "..."
}`, in.header())
}
