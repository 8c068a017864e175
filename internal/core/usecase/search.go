package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/contextcart/ragsearch/internal/core/domain"
	"github.com/contextcart/ragsearch/internal/core/ports"
)

// SearchProductsUseCase runs the full search pipeline: retrieve candidates,
// project them to the bounded prompt view, ask the model for the topM most
// relevant positions, and reconcile those positions back to full records.
// The full candidate set is retained through the request so reconciliation
// returns complete provider records, not projections.
type SearchProductsUseCase struct {
	searcher ports.ProductSearcher
	ranker   ports.RelevanceRanker

	projectTopK int
	rankTopM    int
}

func NewSearchProductsUseCase(
	searcher ports.ProductSearcher,
	ranker ports.RelevanceRanker,
	projectTopK int,
	rankTopM int,
) *SearchProductsUseCase {
	if projectTopK <= 0 {
		projectTopK = 48
	}
	if rankTopM <= 0 {
		rankTopM = 10
	}
	return &SearchProductsUseCase{
		searcher:    searcher,
		ranker:      ranker,
		projectTopK: projectTopK,
		rankTopM:    rankTopM,
	}
}

func (uc *SearchProductsUseCase) Search(ctx context.Context, query string, contextEntries []string) (*domain.SearchOutcome, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "search products", errors.New("search query is required"))
	}

	candidates, err := uc.searcher.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search provider: %w", err)
	}

	projected, _, err := ProjectCandidates(candidates, uc.projectTopK)
	if err != nil {
		return nil, err
	}

	result, err := uc.ranker.Rank(ctx, contextEntries, query, projected, uc.rankTopM)
	if err != nil {
		return nil, fmt.Errorf("rank candidates: %w", err)
	}

	return &domain.SearchOutcome{
		Products: ReconcileIndices(result.Indices, candidates),
		Message:  result.Rationale,
	}, nil
}
