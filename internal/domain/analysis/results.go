package analysis

import "encoding/json"

// SWOT payload
type SWOT struct {
	S []string `json:"S"`
	W []string `json:"W"`
	O []string `json:"O"`
	T []string `json:"T"`
}

// Ansoff payload
type Ansoff struct {
	MarketPenetration  []string `json:"market_penetration"`
	MarketDevelopment  []string `json:"market_development"`
	ProductDevelopment []string `json:"product_development"`
	Diversification    []string `json:"diversification"`
}

// IndustryRecord is one industry vertical of the industry analysis.
// SuccessFactors is keyed by canonical category names (Brand, Economies_of_Scale, Capital, ...).
type IndustryRecord struct {
	Name           string              `json:"industry_vertical_name"`
	TAM            string              `json:"TAM"`
	SuccessFactors map[string][]string `json:"critical_success_factors"`
}

// TopFactor returns the first factor listed under category, or "".
func (r IndustryRecord) TopFactor(category string) string {
	if v := r.SuccessFactors[category]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// Industry payload. Always object-shaped.
type Industry struct {
	Industries []IndustryRecord `json:"industries"`
}

// Benchmark payload. Each row holds "capability" plus one column per company.
type Benchmark struct {
	Table []map[string]string `json:"table"`
	Peers []string            `json:"peers"`
}

// Fit payload is rendered opaquely.
type Fit map[string]any

// Results holds one payload per known framework, placeholders included.
type Results struct {
	Industry  Industry  `json:"ind"`
	SWOT      SWOT      `json:"SWOT"`
	Ansoff    Ansoff    `json:"Ansoff"`
	Benchmark Benchmark `json:"Benchmark"`
	Fit       Fit       `json:"Fit"`
}

// NewResults returns results with empty placeholders for every framework.
func NewResults() Results {
	return Results{}.withPlaceholders()
}

// Generated carries the payloads produced for a subset of frameworks.
type Generated struct {
	Frameworks []Framework
	Results    Results
}

// Merge returns a copy of r where only the generated frameworks are replaced.
func (r Results) Merge(g Generated) Results {
	out := r.Clone()
	src := g.Results.Clone()
	for _, f := range g.Frameworks {
		switch f {
		case FrameworkIndustry:
			out.Industry = src.Industry
		case FrameworkSWOT:
			out.SWOT = src.SWOT
		case FrameworkAnsoff:
			out.Ansoff = src.Ansoff
		case FrameworkBenchmark:
			out.Benchmark = src.Benchmark
		case FrameworkFit:
			out.Fit = src.Fit
		}
	}
	return out.withPlaceholders()
}

// Clone returns a deep copy.
func (r Results) Clone() Results {
	out := Results{
		SWOT: SWOT{
			S: cloneStrings(r.SWOT.S),
			W: cloneStrings(r.SWOT.W),
			O: cloneStrings(r.SWOT.O),
			T: cloneStrings(r.SWOT.T),
		},
		Ansoff: Ansoff{
			MarketPenetration:  cloneStrings(r.Ansoff.MarketPenetration),
			MarketDevelopment:  cloneStrings(r.Ansoff.MarketDevelopment),
			ProductDevelopment: cloneStrings(r.Ansoff.ProductDevelopment),
			Diversification:    cloneStrings(r.Ansoff.Diversification),
		},
		Benchmark: Benchmark{Peers: cloneStrings(r.Benchmark.Peers)},
	}
	if r.Industry.Industries != nil {
		out.Industry.Industries = make([]IndustryRecord, len(r.Industry.Industries))
		for i, rec := range r.Industry.Industries {
			cp := IndustryRecord{Name: rec.Name, TAM: rec.TAM}
			if rec.SuccessFactors != nil {
				cp.SuccessFactors = make(map[string][]string, len(rec.SuccessFactors))
				for k, v := range rec.SuccessFactors {
					cp.SuccessFactors[k] = cloneStrings(v)
				}
			}
			out.Industry.Industries[i] = cp
		}
	}
	if r.Benchmark.Table != nil {
		out.Benchmark.Table = make([]map[string]string, len(r.Benchmark.Table))
		for i, row := range r.Benchmark.Table {
			cp := make(map[string]string, len(row))
			for k, v := range row {
				cp[k] = v
			}
			out.Benchmark.Table[i] = cp
		}
	}
	if r.Fit != nil {
		out.Fit, _ = cloneValue(map[string]any(r.Fit)).(map[string]any)
	}
	return out
}

// withPlaceholders replaces nil collections with empty ones so every key
// serializes as [] or {} instead of null.
func (r Results) withPlaceholders() Results {
	r.Industry.Industries = orEmptyRecords(r.Industry.Industries)
	r.SWOT.S = orEmpty(r.SWOT.S)
	r.SWOT.W = orEmpty(r.SWOT.W)
	r.SWOT.O = orEmpty(r.SWOT.O)
	r.SWOT.T = orEmpty(r.SWOT.T)
	r.Ansoff.MarketPenetration = orEmpty(r.Ansoff.MarketPenetration)
	r.Ansoff.MarketDevelopment = orEmpty(r.Ansoff.MarketDevelopment)
	r.Ansoff.ProductDevelopment = orEmpty(r.Ansoff.ProductDevelopment)
	r.Ansoff.Diversification = orEmpty(r.Ansoff.Diversification)
	if r.Benchmark.Table == nil {
		r.Benchmark.Table = []map[string]string{}
	}
	r.Benchmark.Peers = orEmpty(r.Benchmark.Peers)
	if r.Fit == nil {
		r.Fit = Fit{}
	}
	return r
}

// MarshalJSON always emits placeholders.
func (r Results) MarshalJSON() ([]byte, error) {
	type plain Results
	return json.Marshal(plain(r.withPlaceholders()))
}

// UnmarshalJSON restores placeholders for keys missing from the input.
func (r *Results) UnmarshalJSON(data []byte) error {
	type plain Results
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Results(p).withPlaceholders()
	return nil
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func orEmptyRecords(in []IndustryRecord) []IndustryRecord {
	if in == nil {
		return []IndustryRecord{}
	}
	return in
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[k] = cloneValue(x)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = cloneValue(x)
		}
		return out
	default:
		return v
	}
}
