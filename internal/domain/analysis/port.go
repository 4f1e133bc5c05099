package analysis

import "context"

// FrameworkRequest is the input of a framework generation call.
type FrameworkRequest struct {
	Company    string
	Scope      string
	Product    string
	Frameworks []Framework
	Notes      string
	Geo        Geo
	Peers      []string
}

// Generator port (strategy content producer, live or mock)
type Generator interface {
	SuggestScope(ctx context.Context, company string) (string, error)
	// GenerateFrameworks returns payloads for the requested frameworks only.
	GenerateFrameworks(ctx context.Context, req FrameworkRequest) (Generated, error)
	// GenerateRecommendations derives an ordered list from the full results.
	GenerateRecommendations(ctx context.Context, results Results) ([]Recommendation, error)
}

// DeckBuilder port (slide deck rendering)
type DeckBuilder interface {
	Build(ctx context.Context, rec Record, format ExportFormat) (*File, error)
}

// Archive port (remote copy of exported files)
type Archive interface {
	Put(ctx context.Context, key string, f *File) (string, error)
}
