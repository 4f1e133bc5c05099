package analysis

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// The Parse* helpers decode loosely-shaped generator output (JSON decoded
// into any) into the canonical payload schema. Key aliases are resolved here
// and nowhere else.

// CoerceList turns a scalar or list value into trimmed, non-empty strings.
func CoerceList(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case []string:
		out := make([]string, 0, len(t))
		for _, s := range t {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, x := range t {
			if x == nil {
				continue
			}
			if s := strings.TrimSpace(scalarString(x)); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		if s := strings.TrimSpace(scalarString(t)); s != "" {
			return []string{s}
		}
		return []string{}
	}
}

// TopN keeps at most n items; n <= 0 keeps everything.
func TopN(items []string, n int) []string {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

// ParseSWOT reads S/W/O/T lists, keeping at most max items each.
func ParseSWOT(raw map[string]any, max int) SWOT {
	return SWOT{
		S: TopN(CoerceList(lookup(raw, "S", "strengths")), max),
		W: TopN(CoerceList(lookup(raw, "W", "weaknesses")), max),
		O: TopN(CoerceList(lookup(raw, "O", "opportunities")), max),
		T: TopN(CoerceList(lookup(raw, "T", "threats")), max),
	}
}

// ParseAnsoff reads the four quadrant lists, keeping at most max items each.
func ParseAnsoff(raw map[string]any, max int) Ansoff {
	return Ansoff{
		MarketPenetration:  TopN(CoerceList(lookup(raw, "market_penetration")), max),
		MarketDevelopment:  TopN(CoerceList(lookup(raw, "market_development")), max),
		ProductDevelopment: TopN(CoerceList(lookup(raw, "product_development")), max),
		Diversification:    TopN(CoerceList(lookup(raw, "diversification")), max),
	}
}

// ParseIndustry accepts either a list of industry records or an object with
// an "industries" list and returns the object shape.
func ParseIndustry(raw any) Industry {
	var items []any
	switch t := raw.(type) {
	case []any:
		items = t
	case map[string]any:
		items, _ = lookup(t, "industries").([]any)
	}
	out := Industry{Industries: []IndustryRecord{}}
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		rec := IndustryRecord{
			Name:           strings.TrimSpace(scalarString(lookup(m, "industry_vertical_name", "industry", "name"))),
			TAM:            strings.TrimSpace(scalarString(lookup(m, "TAM"))),
			SuccessFactors: map[string][]string{},
		}
		cs, _ := lookup(m, "critical_success_factors", "critical_success_category", "critical_success_categories").(map[string]any)
		for k, v := range cs {
			rec.SuccessFactors[CategoryKey(k)] = CoerceList(v)
		}
		out.Industries = append(out.Industries, rec)
	}
	return out
}

// CategoryKey canonicalizes a success-factor category name,
// e.g. "Economies of Scale" becomes "Economies_of_Scale".
func CategoryKey(k string) string {
	return strings.Join(strings.Fields(k), "_")
}

// ParseBenchmark reads the table rows and peers list.
func ParseBenchmark(raw map[string]any) Benchmark {
	out := Benchmark{
		Table: []map[string]string{},
		Peers: CoerceList(lookup(raw, "peers")),
	}
	rows, _ := lookup(raw, "table").([]any)
	for _, r := range rows {
		m, ok := r.(map[string]any)
		if !ok {
			continue
		}
		row := make(map[string]string, len(m))
		for k, v := range m {
			row[k] = scalarString(v)
		}
		out.Table = append(out.Table, row)
	}
	return out
}

// ParseFit keeps the object as-is; non-object output is wrapped under "value".
func ParseFit(raw any) Fit {
	switch t := raw.(type) {
	case nil:
		return Fit{}
	case map[string]any:
		return Fit(t)
	default:
		return Fit{"value": t}
	}
}

// ParseRecommendations accepts a list or an object with a "recommendations"
// list. Rows without a title are dropped; scores are clamped to [1,5].
func ParseRecommendations(raw any) []Recommendation {
	var items []any
	switch t := raw.(type) {
	case []any:
		items = t
	case map[string]any:
		items, _ = lookup(t, "recommendations", "recs").([]any)
	}
	out := []Recommendation{}
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		title := strings.TrimSpace(scalarString(lookup(m, "title")))
		if title == "" {
			continue
		}
		out = append(out, Recommendation{
			Title:     title,
			Impact:    ClampScore(scalarInt(lookup(m, "impact"), 3)),
			Effort:    ClampScore(scalarInt(lookup(m, "effort"), 3)),
			Rationale: strings.TrimSpace(scalarString(lookup(m, "rationale"))),
		})
	}
	return out
}

// lookup returns the first present key, comparing keys case-insensitively
// with spaces and underscores treated alike.
func lookup(m map[string]any, keys ...string) any {
	if m == nil {
		return nil
	}
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	// deterministic order for the fuzzy pass
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range keys {
		want := looseKey(k)
		for _, name := range names {
			if looseKey(name) == want {
				return m[name]
			}
		}
	}
	return nil
}

func looseKey(k string) string {
	return strings.ToLower(CategoryKey(strings.ReplaceAll(k, "_", " ")))
}

func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func scalarInt(v any, fallback int) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
	}
	return fallback
}
