package ports

import (
	"context"

	"github.com/contextcart/ragsearch/internal/core/domain"
)

// ProductSearcher queries the product-catalog provider.
type ProductSearcher interface {
	Search(ctx context.Context, query string) ([]domain.CandidateRecord, error)
}

// RecordNormalizer turns one arbitrary JSON record into a ContextSummary
// via schema-constrained generation.
type RecordNormalizer interface {
	Normalize(ctx context.Context, raw map[string]any) (domain.ContextSummary, error)
}

// RelevanceRanker selects the topM most relevant projected candidates for a
// query given the user's context entries.
type RelevanceRanker interface {
	Rank(ctx context.Context, contextEntries []string, query string, projected []domain.ProjectedCandidate, topM int) (domain.RankingResult, error)
}

// Embedder converts text into a vector. Embeddings are enrichment, not the
// primary deliverable: every provider failure degrades to an empty slice
// instead of an error.
type Embedder interface {
	Embed(ctx context.Context, text string) []float32
}
