package deck

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bryanwahyu/stratiq/internal/domain/analysis"
)

const (
	// AppendixChunk is the max number of characters on one appendix slide.
	AppendixChunk = 2000
	// GridLimit is how many recommendations are placed on the grid.
	GridLimit = 10
	// SnapshotLimit caps the executive snapshot bullets.
	SnapshotLimit = 6
	// SummaryLimit caps the industries in the summary table.
	SummaryLimit = 5

	appendixTitle = "Appendix — Raw Analysis JSON"
	dateLayout    = "Jan 02, 2006"
)

// DefaultAgenda is shown on the agenda slide.
var DefaultAgenda = []string{
	"Inputs & Goals",
	"Framework Insights",
	"Recommendations",
	"Next Steps",
}

// Deck is the view-model of the slide template. Nil sections are skipped.
type Deck struct {
	Title       string
	Subtitle    string
	Company     string
	Agenda      []string
	Snapshot    []string
	Industry    []IndustryRow
	Industries  []IndustrySummary
	SWOT        *analysis.SWOT
	Ansoff      *analysis.Ansoff
	Benchmark   *BenchmarkTable
	Grid        *Grid
	Fit         []FitRow
	Appendix    []AppendixPage
	GeneratedAt time.Time
}

// IndustryRow is one long-format line of the industry analysis.
type IndustryRow struct {
	Industry string
	TAM      string
	Category string
	Rank     int
	Factor   string
}

// IndustrySummary is one industry with the top factor of the headline categories.
type IndustrySummary struct {
	Industry string
	TAM      string
	Brand    string
	Scale    string
	Capital  string
}

// BenchmarkTable is the competitor benchmark with its header row first.
type BenchmarkTable struct {
	Header []string
	Rows   [][]string
}

// Quadrant holds the numbered recommendation labels of one grid cell.
type Quadrant struct {
	Code  string
	Label string
	Items []string
}

// Grid is the impact x effort matrix, Q1..Q4 in order.
type Grid struct {
	Quadrants [4]Quadrant
}

// FitRow is one top-level entry of the strategic fit payload.
type FitRow struct {
	Key   string
	Value string
}

// AppendixPage is one chunk of the raw JSON appendix.
type AppendixPage struct {
	Title string
	Text  string
}

// Compose builds the deck view-model from a record.
func Compose(rec analysis.Record, now time.Time) (Deck, error) {
	company := strings.TrimSpace(rec.Company)
	if company == "" {
		company = "Company"
	}
	product := strings.TrimSpace(rec.Product)
	if product == "" {
		product = "Product"
	}
	res := rec.Results

	d := Deck{
		Title:       fmt.Sprintf("%s × %s", product, company),
		Subtitle:    "Strategy Snapshot — " + now.Format(dateLayout),
		Company:     company,
		Agenda:      DefaultAgenda,
		Snapshot:    Snapshot(res, rec.Recs),
		Industry:    IndustryRows(res.Industry),
		Industries:  IndustrySummaries(res.Industry),
		Benchmark:   BenchmarkRows(company, res.Benchmark),
		Fit:         FitRows(res.Fit),
		GeneratedAt: now,
	}
	if swotFilled(res.SWOT) {
		s := res.SWOT
		d.SWOT = &s
	}
	if ansoffFilled(res.Ansoff) {
		a := res.Ansoff
		d.Ansoff = &a
	}
	if len(rec.Recs) > 0 {
		g := PlaceRecommendations(rec.Recs)
		d.Grid = &g
	}

	raw, err := appendixJSON(rec)
	if err != nil {
		return Deck{}, err
	}
	d.Appendix = AppendixPages(appendixTitle, raw)
	return d, nil
}

// Snapshot returns the executive snapshot bullets.
func Snapshot(res analysis.Results, recs []analysis.Recommendation) []string {
	var out []string
	if len(res.Industry.Industries) > 0 {
		out = append(out, "Industry Analysis")
	}
	quads := []struct {
		label string
		items []string
	}{
		{"Strengths", res.SWOT.S},
		{"Weaknesses", res.SWOT.W},
		{"Opportunities", res.SWOT.O},
		{"Threats", res.SWOT.T},
	}
	for _, q := range quads {
		if len(q.items) > 0 {
			out = append(out, fmt.Sprintf("%s: %s", q.label, strings.Join(analysis.TopN(q.items, 2), ", ")))
		}
	}
	if ansoffFilled(res.Ansoff) {
		out = append(out, "Focus: Execute 1–2 high-impact Ansoff plays next quarter.")
	}
	if len(recs) > 0 {
		title := recs[0].Title
		if title == "" {
			title = "First recommendation"
		}
		out = append(out, "Top priority: "+title)
	}
	if len(out) > SnapshotLimit {
		out = out[:SnapshotLimit]
	}
	return out
}

// IndustryRows flattens the industries into one row per ranked factor.
// Categories are emitted in sorted order.
func IndustryRows(ind analysis.Industry) []IndustryRow {
	var rows []IndustryRow
	for _, rec := range ind.Industries {
		for _, cat := range sortedKeys(rec.SuccessFactors) {
			for i, f := range rec.SuccessFactors[cat] {
				rows = append(rows, IndustryRow{
					Industry: rec.Name,
					TAM:      rec.TAM,
					Category: cat,
					Rank:     i + 1,
					Factor:   f,
				})
			}
		}
	}
	return rows
}

// IndustrySummaries lists at most SummaryLimit industries.
func IndustrySummaries(ind analysis.Industry) []IndustrySummary {
	var out []IndustrySummary
	for _, rec := range topIndustries(ind.Industries, SummaryLimit) {
		out = append(out, IndustrySummary{
			Industry: rec.Name,
			TAM:      rec.TAM,
			Brand:    rec.TopFactor("Brand"),
			Scale:    rec.TopFactor("Economies_of_Scale"),
			Capital:  rec.TopFactor("Capital"),
		})
	}
	return out
}

// BenchmarkRows lays the benchmark out as Capability, company, peers.
func BenchmarkRows(company string, b analysis.Benchmark) *BenchmarkTable {
	if len(b.Table) == 0 {
		return nil
	}
	t := &BenchmarkTable{Header: append([]string{"Capability", company}, b.Peers...)}
	for _, row := range b.Table {
		line := []string{row["capability"], row[company]}
		for _, p := range b.Peers {
			line = append(line, row[p])
		}
		t.Rows = append(t.Rows, line)
	}
	return t
}

// QuadrantOf returns the grid index (0..3) for impact and effort.
func QuadrantOf(impact, effort int) int {
	high := impact >= 4
	cheap := effort <= 3
	switch {
	case high && cheap:
		return 0
	case high:
		return 1
	case cheap:
		return 2
	default:
		return 3
	}
}

// PlaceRecommendations puts the first GridLimit recommendations on the grid.
func PlaceRecommendations(recs []analysis.Recommendation) Grid {
	g := Grid{Quadrants: [4]Quadrant{
		{Code: "Q1", Label: "Quick Wins"},
		{Code: "Q2", Label: "Strategic Bets"},
		{Code: "Q3", Label: "Fill-ins"},
		{Code: "Q4", Label: "Long Shots"},
	}}
	for i, r := range recs {
		if i == GridLimit {
			break
		}
		title := r.Title
		if title == "" {
			title = fmt.Sprintf("Rec %d", i+1)
		}
		q := QuadrantOf(r.Impact, r.Effort)
		g.Quadrants[q].Items = append(g.Quadrants[q].Items, fmt.Sprintf("%d. %s", i+1, title))
	}
	return g
}

// FitRows renders each top-level fit key as compact JSON.
func FitRows(fit analysis.Fit) []FitRow {
	var out []FitRow
	keys := make([]string, 0, len(fit))
	for k := range fit {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := fit[k]
		if s, ok := v.(string); ok {
			out = append(out, FitRow{Key: k, Value: s})
			continue
		}
		b, err := json.Marshal(v)
		if err != nil {
			continue
		}
		out = append(out, FitRow{Key: k, Value: string(b)})
	}
	return out
}

// AppendixPages splits text into pages of AppendixChunk characters. The
// first page carries title, the rest "(cont.)".
func AppendixPages(title, text string) []AppendixPage {
	runes := []rune(text)
	if len(runes) == 0 {
		return []AppendixPage{{Title: title}}
	}
	var pages []AppendixPage
	for start := 0; start < len(runes); start += AppendixChunk {
		end := start + AppendixChunk
		if end > len(runes) {
			end = len(runes)
		}
		t := title
		if start > 0 {
			t += " (cont.)"
		}
		pages = append(pages, AppendixPage{Title: t, Text: string(runes[start:end])})
	}
	return pages
}

func appendixJSON(rec analysis.Record) (string, error) {
	payload := struct {
		Frameworks []analysis.Framework      `json:"frameworks"`
		Results    analysis.Results          `json:"results"`
		Recs       []analysis.Recommendation `json:"recs"`
	}{
		Frameworks: append([]analysis.Framework{}, rec.Frameworks...),
		Results:    rec.Results,
		Recs:       append([]analysis.Recommendation{}, rec.Recs...),
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return "", fmt.Errorf("encode appendix: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func swotFilled(s analysis.SWOT) bool {
	return len(s.S)+len(s.W)+len(s.O)+len(s.T) > 0
}

func ansoffFilled(a analysis.Ansoff) bool {
	return len(a.MarketPenetration)+len(a.MarketDevelopment)+len(a.ProductDevelopment)+len(a.Diversification) > 0
}

func topIndustries(in []analysis.IndustryRecord, n int) []analysis.IndustryRecord {
	if len(in) > n {
		return in[:n]
	}
	return in
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
