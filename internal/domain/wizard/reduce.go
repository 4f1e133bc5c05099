package wizard

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bryanwahyu/stratiq/internal/domain/analysis"
)

// MaxFieldLength bounds company, scope and product.
const MaxFieldLength = 80

// DefaultPeers are the competitors used for benchmark generation.
var DefaultPeers = []string{"Rival A", "Rival B"}

// Reduce applies ev to s and returns the next state plus the effects the
// caller has to run. s is never modified. On error the returned state is s
// itself and no effects are emitted.
func Reduce(s Session, ev Event) (Session, []Effect, error) {
	if !allowed(s, ev) {
		return s, nil, fmt.Errorf("%w: %s at step %s", ErrInvalidTransition, ev.Name(), s.Step)
	}

	n := s.Clone()
	var effects []Effect

	switch e := ev.(type) {
	case EditInputs:
		geo, err := analysis.ParseGeo(e.Geo)
		if err != nil {
			return s, nil, invalid("geo", err.Error())
		}
		for _, f := range [...]struct{ name, value string }{{"company", e.Company}, {"scope", e.Scope}, {"product", e.Product}} {
			if utf8.RuneCountInString(f.value) > MaxFieldLength {
				return s, nil, invalid(f.name, fmt.Sprintf("must be at most %d characters", MaxFieldLength))
			}
		}
		n.Record.Company = e.Company
		n.Record.Scope = e.Scope
		n.Record.Product = e.Product
		n.Record.Geo = geo
		n.Record.Notes = e.Notes
		n.Offline = e.Offline

		companyChanged := e.Company != s.PrevCompany
		if strings.TrimSpace(e.Company) != "" && (e.Scope == "" || companyChanged) && !e.Offline {
			effects = append(effects, SuggestScope{Company: e.Company})
		}
		n.PrevCompany = e.Company

	case ScopeSuggested:
		// stale answers for an older company are dropped
		if e.Company == n.Record.Company && strings.TrimSpace(e.Scope) != "" {
			n.Record.Scope = strings.TrimSpace(e.Scope)
		}

	case ScopeSuggestionFailed:
		n.Notify(NoticeInfo, "Scope auto-fill skipped: "+e.Reason)

	case Continue:
		if strings.TrimSpace(n.Record.Company) == "" || strings.TrimSpace(n.Record.Scope) == "" {
			return s, nil, invalid("scope", "Company and Scope are required.")
		}
		n.Step = StepFrameworks

	case SelectFrameworks:
		fws, err := analysis.ParseFrameworks(e.Names)
		if err != nil {
			return s, nil, invalid("frameworks", err.Error())
		}
		n.Record.Frameworks = fws

	case Generate:
		if strings.TrimSpace(n.Record.Company) == "" || strings.TrimSpace(n.Record.Product) == "" {
			return s, nil, invalid("product", "Company and Product are required before generation.")
		}
		if len(n.Record.Frameworks) == 0 {
			return s, nil, invalid("frameworks", "Select at least one framework.")
		}
		if len(n.Record.Frameworks) > analysis.MaxFrameworks {
			return s, nil, invalid("frameworks", fmt.Sprintf("Select at most %d frameworks.", analysis.MaxFrameworks))
		}
		n.Busy = true
		effects = append(effects, GenerateAnalysis{Request: analysis.FrameworkRequest{
			Company:    n.Record.Company,
			Scope:      n.Record.Scope,
			Product:    n.Record.Product,
			Frameworks: append([]analysis.Framework{}, n.Record.Frameworks...),
			Notes:      n.Record.Notes,
			Geo:        n.Record.Geo,
			Peers:      append([]string{}, DefaultPeers...),
		}})

	case GenerationSucceeded:
		n.Record.Results = n.Record.Results.Merge(e.Generated)
		n.Record.Recs = append([]analysis.Recommendation{}, e.Recs...)
		n.Busy = false
		n.Step = StepReview
		n.Notify(NoticeSuccess, "Analysis generated.")

	case GenerationFailed:
		n.Busy = false
		n.Notify(NoticeError, "Generation failed: "+e.Reason)

	case SaveSWOT:
		if !n.Record.HasFramework(analysis.FrameworkSWOT) {
			return s, nil, invalid("frameworks", "SWOT is not part of the selected frameworks.")
		}
		n.Record.Results.SWOT = analysis.SWOTFromText(e.S, e.W, e.O, e.T)
		n.Notify(NoticeSuccess, "SWOT saved.")

	case SaveAnsoff:
		if !n.Record.HasFramework(analysis.FrameworkAnsoff) {
			return s, nil, invalid("frameworks", "Ansoff is not part of the selected frameworks.")
		}
		n.Record.Results.Ansoff = analysis.AnsoffFromText(e.MarketPenetration, e.MarketDevelopment, e.ProductDevelopment, e.Diversification)
		n.Notify(NoticeSuccess, "Ansoff saved.")

	case AddRecommendation:
		title := strings.TrimSpace(e.Title)
		if title == "" {
			return s, nil, invalid("title", "Recommendation title is required.")
		}
		if e.Impact < analysis.MinScore || e.Impact > analysis.MaxScore {
			return s, nil, invalid("impact", fmt.Sprintf("must be between %d and %d", analysis.MinScore, analysis.MaxScore))
		}
		if e.Effort < analysis.MinScore || e.Effort > analysis.MaxScore {
			return s, nil, invalid("effort", fmt.Sprintf("must be between %d and %d", analysis.MinScore, analysis.MaxScore))
		}
		n.Record.Recs = append(n.Record.Recs, analysis.Recommendation{
			Title:     title,
			Impact:    e.Impact,
			Effort:    e.Effort,
			Rationale: strings.TrimSpace(e.Rationale),
		})
		n.Notify(NoticeSuccess, "Recommendation added.")

	case ChooseExport:
		if n.Record.Export.Type != e.Format {
			n.Record.Export = analysis.ExportChoice{Type: e.Format}
		}

	case ExportCompleted:
		n.Record.Export = analysis.ExportChoice{Type: e.Format, Path: e.Path}
		n.Notify(NoticeSuccess, "Export ready.")

	case Back:
		n.Step = s.Step - 1

	case Next:
		n.Step = s.Step + 1
	}

	return n, effects, nil
}

// allowed is the step gate of every event.
func allowed(s Session, ev Event) bool {
	switch ev.(type) {
	case EditInputs, Continue:
		return s.Step == StepInputs
	case ScopeSuggested, ScopeSuggestionFailed:
		return true
	case SelectFrameworks, Generate:
		return s.Step == StepFrameworks && !s.Busy
	case GenerationSucceeded, GenerationFailed:
		return s.Step == StepFrameworks && s.Busy
	case SaveSWOT, SaveAnsoff:
		return s.Step == StepReview
	case AddRecommendation:
		return s.Step == StepRecommendations
	case ChooseExport, ExportCompleted:
		return s.Step == StepExport
	case Back:
		return s.Step > StepInputs && s.Step <= StepExport && !s.Busy
	case Next:
		return s.Step == StepReview || s.Step == StepRecommendations
	}
	return false
}
