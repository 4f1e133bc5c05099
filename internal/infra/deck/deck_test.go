package deck

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/stratiq/internal/application"
	"github.com/bryanwahyu/stratiq/internal/domain/analysis"
)

var day = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func sampleRecord() analysis.Record {
	rec := analysis.NewRecord()
	rec.Company = "Acme"
	rec.Product = "Sensors"
	rec.Results.SWOT = analysis.SWOT{
		S: []string{"Brand", "Channel", "Patents"},
		W: []string{"Cost"},
		O: []string{"Retrofit"},
		T: []string{"Price war"},
	}
	rec.Results.Ansoff.MarketPenetration = []string{"Bundles"}
	rec.Results.Benchmark = analysis.Benchmark{
		Peers: []string{"Rival A"},
		Table: []map[string]string{{"capability": "Pricing", "Acme": "High", "Rival A": "Low"}},
	}
	rec.Recs = []analysis.Recommendation{
		{Title: "OEM Bundle Program", Impact: 5, Effort: 3},
		{Title: "Managed Calibration", Impact: 4, Effort: 4},
		{Title: "Security Proof Pack", Impact: 3, Effort: 2},
		{Title: "Moonshot", Impact: 2, Effort: 5},
	}
	return rec
}

func TestQuadrantOf(t *testing.T) {
	tests := []struct {
		impact, effort, want int
	}{
		{5, 1, 0},
		{4, 3, 0},
		{4, 4, 1},
		{5, 5, 1},
		{3, 3, 2},
		{1, 1, 2},
		{3, 4, 3},
		{1, 5, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, QuadrantOf(tt.impact, tt.effort), "impact=%d effort=%d", tt.impact, tt.effort)
	}
}

func TestPlaceRecommendations(t *testing.T) {
	g := PlaceRecommendations(sampleRecord().Recs)
	assert.Equal(t, []string{"1. OEM Bundle Program"}, g.Quadrants[0].Items)
	assert.Equal(t, []string{"2. Managed Calibration"}, g.Quadrants[1].Items)
	assert.Equal(t, []string{"3. Security Proof Pack"}, g.Quadrants[2].Items)
	assert.Equal(t, []string{"4. Moonshot"}, g.Quadrants[3].Items)
	assert.Equal(t, "Quick Wins", g.Quadrants[0].Label)
}

func TestPlaceRecommendationsLimit(t *testing.T) {
	recs := make([]analysis.Recommendation, 14)
	for i := range recs {
		recs[i] = analysis.Recommendation{Impact: 5, Effort: 1}
	}
	g := PlaceRecommendations(recs)
	require.Len(t, g.Quadrants[0].Items, GridLimit)
	assert.Equal(t, "1. Rec 1", g.Quadrants[0].Items[0])
}

func TestSnapshot(t *testing.T) {
	rec := sampleRecord()
	got := Snapshot(rec.Results, rec.Recs)
	require.Len(t, got, SnapshotLimit)
	assert.Equal(t, "Strengths: Brand, Channel", got[0])
	assert.Equal(t, "Weaknesses: Cost", got[1])
	assert.Contains(t, got[4], "Ansoff")
	assert.Equal(t, "Top priority: OEM Bundle Program", got[5])

	// industry bullet pushes the last one out
	rec.Results.Industry.Industries = []analysis.IndustryRecord{{Name: "Retail"}}
	got = Snapshot(rec.Results, rec.Recs)
	require.Len(t, got, SnapshotLimit)
	assert.Equal(t, "Industry Analysis", got[0])
	assert.NotContains(t, got, "Top priority: OEM Bundle Program")

	assert.Empty(t, Snapshot(analysis.NewResults(), nil))
}

func TestIndustryRows(t *testing.T) {
	ind := analysis.Industry{Industries: []analysis.IndustryRecord{{
		Name: "Retail",
		TAM:  "120",
		SuccessFactors: map[string][]string{
			"Capital": {"Inventory financing"},
			"Brand":   {"Trust", "Reach"},
		},
	}}}
	rows := IndustryRows(ind)
	require.Len(t, rows, 3)
	assert.Equal(t, IndustryRow{Industry: "Retail", TAM: "120", Category: "Brand", Rank: 1, Factor: "Trust"}, rows[0])
	assert.Equal(t, 2, rows[1].Rank)
	assert.Equal(t, "Capital", rows[2].Category)

	sum := IndustrySummaries(ind)
	require.Len(t, sum, 1)
	assert.Equal(t, "Trust", sum[0].Brand)
	assert.Equal(t, "", sum[0].Scale)
	assert.Equal(t, "Inventory financing", sum[0].Capital)
}

func TestBenchmarkRows(t *testing.T) {
	assert.Nil(t, BenchmarkRows("Acme", analysis.Benchmark{}))

	tbl := BenchmarkRows("Acme", sampleRecord().Results.Benchmark)
	require.NotNil(t, tbl)
	assert.Equal(t, []string{"Capability", "Acme", "Rival A"}, tbl.Header)
	assert.Equal(t, [][]string{{"Pricing", "High", "Low"}}, tbl.Rows)
}

func TestAppendixPages(t *testing.T) {
	text := strings.Repeat("é", AppendixChunk*2+5)
	pages := AppendixPages("Raw", text)
	require.Len(t, pages, 3)
	assert.Equal(t, "Raw", pages[0].Title)
	assert.Equal(t, "Raw (cont.)", pages[1].Title)
	assert.Len(t, []rune(pages[0].Text), AppendixChunk)
	assert.Len(t, []rune(pages[2].Text), 5)

	assert.Len(t, AppendixPages("Raw", ""), 1)
}

func TestFitRows(t *testing.T) {
	rows := FitRows(analysis.Fit{"score": 4.5, "summary": "Good fit"})
	assert.Equal(t, []FitRow{{Key: "score", Value: "4.5"}, {Key: "summary", Value: "Good fit"}}, rows)
}

func TestComposeSkipsEmptySections(t *testing.T) {
	d, err := Compose(analysis.NewRecord(), day)
	require.NoError(t, err)
	assert.Equal(t, "Product × Company", d.Title)
	assert.Equal(t, "Strategy Snapshot — Oct 19, 2026", d.Subtitle)
	assert.Nil(t, d.SWOT)
	assert.Nil(t, d.Ansoff)
	assert.Nil(t, d.Benchmark)
	assert.Nil(t, d.Grid)
	require.Len(t, d.Appendix, 1)
	assert.Contains(t, d.Appendix[0].Text, `"frameworks"`)
}

func TestBuildHTML(t *testing.T) {
	b := &Builder{Clock: application.FixedClock(day)}
	f, err := b.Build(context.Background(), sampleRecord(), analysis.ExportHTML)
	require.NoError(t, err)

	assert.Equal(t, "Acme_Sensors_20261019_strategy.html", f.Filename)
	assert.Equal(t, "text/html; charset=utf-8", f.MimeType)
	html := string(f.Data)
	for _, want := range []string{
		"Sensors × Acme",
		"Executive Snapshot",
		"SWOT Analysis",
		"Ansoff Matrix",
		"Competitor Benchmark",
		"Q1: Quick Wins",
		"1. OEM Bundle Program",
		"Appendix — Raw Analysis JSON",
		"Inputs &amp; Goals",
	} {
		assert.Contains(t, html, want)
	}
	assert.NotContains(t, html, "Industry Analysis")
}

func TestBuildPDFWithoutBrowser(t *testing.T) {
	b := &Builder{Clock: application.FixedClock(day), ChromePath: "/nonexistent/chromium-for-tests"}
	_, err := b.Build(context.Background(), sampleRecord(), analysis.ExportDeck)
	assert.ErrorIs(t, err, ErrPDFDependencyMissing)
}

func TestBuildRejectsJSON(t *testing.T) {
	b := &Builder{}
	_, err := b.Build(context.Background(), sampleRecord(), analysis.ExportJSON)
	assert.ErrorIs(t, err, analysis.ErrUnsupportedFormat)
}

func TestPercentEncodeForDataURL(t *testing.T) {
	assert.Equal(t, "a%20b%3C%C3%A9", percentEncodeForDataURL("a b<é"))
}
