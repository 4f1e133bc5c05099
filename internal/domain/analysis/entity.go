package analysis

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Framework enum
type Framework string

const (
	FrameworkIndustry  Framework = "Industry Analysis"
	FrameworkSWOT      Framework = "SWOT"
	FrameworkAnsoff    Framework = "Ansoff"
	FrameworkBenchmark Framework = "Benchmark"
	FrameworkFit       Framework = "Fit Matrix"
)

// MaxFrameworks is the upper bound of a framework selection.
const MaxFrameworks = 5

// Frameworks lists every known framework in display order.
var Frameworks = []Framework{
	FrameworkIndustry,
	FrameworkSWOT,
	FrameworkAnsoff,
	FrameworkBenchmark,
	FrameworkFit,
}

// Key returns the results key the framework payload is stored under.
func (f Framework) Key() string {
	switch f {
	case FrameworkIndustry:
		return "ind"
	case FrameworkFit:
		return "Fit"
	default:
		return string(f)
	}
}

// ParseFramework accepts a display name or a results key, case-insensitively.
func ParseFramework(s string) (Framework, error) {
	name := strings.TrimSpace(s)
	for _, f := range Frameworks {
		if strings.EqualFold(name, string(f)) || strings.EqualFold(name, f.Key()) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFramework, s)
}

// ParseFrameworks parses names into an ordered set, dropping duplicates.
func ParseFrameworks(names []string) ([]Framework, error) {
	out := make([]Framework, 0, len(names))
	seen := make(map[Framework]bool, len(names))
	for _, n := range names {
		f, err := ParseFramework(n)
		if err != nil {
			return nil, err
		}
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	if len(out) > MaxFrameworks {
		return nil, fmt.Errorf("%w: at most %d frameworks", ErrTooManyFrameworks, MaxFrameworks)
	}
	return out, nil
}

// Geo enum, empty means unspecified
type Geo string

const (
	GeoNone Geo = ""
	GeoUS   Geo = "US"
	GeoEU   Geo = "EU"
	GeoAPAC Geo = "APAC"
)

// ParseGeo validates a geography value.
func ParseGeo(s string) (Geo, error) {
	switch g := Geo(strings.ToUpper(strings.TrimSpace(s))); g {
	case GeoNone, GeoUS, GeoEU, GeoAPAC:
		return g, nil
	}
	return "", fmt.Errorf("%w: %q (allowed: US, EU, APAC)", ErrInvalidGeo, s)
}

// Recommendation is one row of the recommendations list.
type Recommendation struct {
	Title     string `json:"title"`
	Impact    int    `json:"impact"`
	Effort    int    `json:"effort"`
	Rationale string `json:"rationale"`
}

// Score bounds for impact and effort.
const (
	MinScore = 1
	MaxScore = 5
)

// ClampScore forces a score into [MinScore, MaxScore].
func ClampScore(v int) int {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

// ExportChoice remembers the last export the user made.
type ExportChoice struct {
	Type ExportFormat `json:"type"`
	Path string       `json:"path,omitempty"`
}

// Record is the single mutable aggregate of a wizard session.
type Record struct {
	ID         string           `json:"analysis_id"`
	Company    string           `json:"company"`
	Scope      string           `json:"scope"`
	Product    string           `json:"product"`
	Geo        Geo              `json:"geo"`
	Notes      string           `json:"notes"`
	Frameworks []Framework      `json:"frameworks"`
	Results    Results          `json:"results"`
	Recs       []Recommendation `json:"recs"`
	Export     ExportChoice     `json:"export"`
}

// NewRecord creates a record with a fresh analysis id and empty placeholders.
func NewRecord() Record {
	return Record{
		ID:         uuid.NewString(),
		Frameworks: []Framework{FrameworkSWOT, FrameworkAnsoff},
		Results:    NewResults(),
		Recs:       []Recommendation{},
		Export:     ExportChoice{Type: ExportDeck},
	}
}

// Clone returns a deep copy.
func (r Record) Clone() Record {
	out := r
	out.Frameworks = append([]Framework{}, r.Frameworks...)
	out.Results = r.Results.Clone()
	out.Recs = append([]Recommendation{}, r.Recs...)
	return out
}

// HasFramework reports whether f is part of the selection.
func (r Record) HasFramework(f Framework) bool {
	for _, x := range r.Frameworks {
		if x == f {
			return true
		}
	}
	return false
}
