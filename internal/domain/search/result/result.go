package result

import (
	"github.com/kailas-cloud/contentdex/internal/domain"
	"github.com/kailas-cloud/contentdex/internal/domain/content"
)

// Hit is a single search result: the record, the engine's score (zero for
// non-relevance sorts), and resolved reference projections when available.
type Hit struct {
	Record    content.Record
	Score     float64
	Franchise *domain.Ref
	Origin    *domain.Ref
}

// Suggestion is a compact prefix-match hit for typeahead.
type Suggestion struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Tags  []string `json:"tags,omitempty"`
}
