package wizard

import "github.com/bryanwahyu/stratiq/internal/domain/analysis"

// Event is one user interaction or collaborator outcome fed into Reduce.
type Event interface {
	Name() string
	isEvent()
}

// EditInputs carries the full inputs form of step 0.
type EditInputs struct {
	Company string
	Scope   string
	Product string
	Geo     string
	Notes   string
	Offline bool
}

// ScopeSuggested is the outcome of a SuggestScope effect.
type ScopeSuggested struct {
	Company string
	Scope   string
}

// ScopeSuggestionFailed reports a failed SuggestScope effect.
type ScopeSuggestionFailed struct {
	Reason string
}

// Continue leaves the inputs step.
type Continue struct{}

// SelectFrameworks replaces the framework selection.
type SelectFrameworks struct {
	Names []string
}

// Generate requests framework and recommendation generation.
type Generate struct{}

// GenerationSucceeded is the outcome of a GenerateAnalysis effect.
type GenerationSucceeded struct {
	Generated analysis.Generated
	Recs      []analysis.Recommendation
}

// GenerationFailed reports a failed GenerateAnalysis effect.
type GenerationFailed struct {
	Reason string
}

// SaveSWOT commits the four SWOT edit fields, one item per line.
type SaveSWOT struct {
	S, W, O, T string
}

// SaveAnsoff commits the four Ansoff edit fields, one item per line.
type SaveAnsoff struct {
	MarketPenetration  string
	MarketDevelopment  string
	ProductDevelopment string
	Diversification    string
}

// AddRecommendation appends a manual recommendation.
type AddRecommendation struct {
	Title     string
	Impact    int
	Effort    int
	Rationale string
}

// ChooseExport records the export format picked at step 4.
type ChooseExport struct {
	Format analysis.ExportFormat
}

// ExportCompleted records where an export ended up.
type ExportCompleted struct {
	Format analysis.ExportFormat
	Path   string
}

// Back moves one step backwards.
type Back struct{}

// Next moves one step forward from the review and recommendations steps.
type Next struct{}

func (EditInputs) Name() string            { return "edit_inputs" }
func (ScopeSuggested) Name() string        { return "scope_suggested" }
func (ScopeSuggestionFailed) Name() string { return "scope_suggestion_failed" }
func (Continue) Name() string              { return "continue" }
func (SelectFrameworks) Name() string      { return "select_frameworks" }
func (Generate) Name() string              { return "generate" }
func (GenerationSucceeded) Name() string   { return "generation_succeeded" }
func (GenerationFailed) Name() string      { return "generation_failed" }
func (SaveSWOT) Name() string              { return "save_swot" }
func (SaveAnsoff) Name() string            { return "save_ansoff" }
func (AddRecommendation) Name() string     { return "add_recommendation" }
func (ChooseExport) Name() string          { return "choose_export" }
func (ExportCompleted) Name() string       { return "export_completed" }
func (Back) Name() string                  { return "back" }
func (Next) Name() string                  { return "next" }

func (EditInputs) isEvent()            {}
func (ScopeSuggested) isEvent()        {}
func (ScopeSuggestionFailed) isEvent() {}
func (Continue) isEvent()              {}
func (SelectFrameworks) isEvent()      {}
func (Generate) isEvent()              {}
func (GenerationSucceeded) isEvent()   {}
func (GenerationFailed) isEvent()      {}
func (SaveSWOT) isEvent()              {}
func (SaveAnsoff) isEvent()            {}
func (AddRecommendation) isEvent()     {}
func (ChooseExport) isEvent()          {}
func (ExportCompleted) isEvent()       {}
func (Back) isEvent()                  {}
func (Next) isEvent()                  {}
