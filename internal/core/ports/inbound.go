package ports

import (
	"context"

	"github.com/contextcart/ragsearch/internal/core/domain"
)

// RecordCleaner is the inbound contract for the clean operation.
type RecordCleaner interface {
	Clean(ctx context.Context, raw map[string]any) (*domain.CleanOutcome, error)
}

// ProductFinder is the inbound contract for context-aware product search.
type ProductFinder interface {
	Search(ctx context.Context, query string, contextEntries []string) (*domain.SearchOutcome, error)
}

// TextEmbedder is the inbound contract for the standalone embedding operation.
type TextEmbedder interface {
	Embed(ctx context.Context, text string) []float32
}
