package wizard

import "github.com/bryanwahyu/stratiq/internal/domain/analysis"

// Effect is a collaborator call requested by Reduce. The caller executes it
// and feeds the outcome back as an event.
type Effect interface {
	isEffect()
}

// SuggestScope asks the generator for a scope; answered by ScopeSuggested
// or ScopeSuggestionFailed.
type SuggestScope struct {
	Company string
}

// GenerateAnalysis asks for framework payloads followed by recommendations;
// answered by GenerationSucceeded or GenerationFailed.
type GenerateAnalysis struct {
	Request analysis.FrameworkRequest
}

func (SuggestScope) isEffect()     {}
func (GenerateAnalysis) isEffect() {}
