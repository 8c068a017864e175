package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/contextcart/ragsearch/internal/core/domain"
)

type searcherFake struct {
	candidates []domain.CandidateRecord
	err        error
}

func (f searcherFake) Search(context.Context, string) ([]domain.CandidateRecord, error) {
	return f.candidates, f.err
}

type rankerFake struct {
	result domain.RankingResult
	err    error

	gotEntries   []string
	gotProjected int
	gotTopM      int
}

func (f *rankerFake) Rank(_ context.Context, entries []string, _ string, projected []domain.ProjectedCandidate, topM int) (domain.RankingResult, error) {
	f.gotEntries = entries
	f.gotProjected = len(projected)
	f.gotTopM = topM
	return f.result, f.err
}

func candidateSet(n int) []domain.CandidateRecord {
	out := make([]domain.CandidateRecord, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, domain.CandidateRecord{
			"position": float64(i),
			"title":    fmt.Sprintf("product %d", i),
		})
	}
	return out
}

func TestSearchRanksAndReconcilesInOrder(t *testing.T) {
	ranker := &rankerFake{result: domain.RankingResult{
		Indices:   []int{7, 3, 12},
		Rationale: "you seem interested in ergonomic desk gear",
	}}
	uc := NewSearchProductsUseCase(searcherFake{candidates: candidateSet(48)}, ranker, 48, 10)

	outcome, err := uc.Search(context.Background(), "wireless mouse", []string{
		"liked: ergonomic keyboard",
		"viewed: gaming mousepad",
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if ranker.gotProjected != 48 {
		t.Fatalf("expected 48 projected candidates sent to ranker, got %d", ranker.gotProjected)
	}
	if ranker.gotTopM != 10 {
		t.Fatalf("expected topM 10, got %d", ranker.gotTopM)
	}
	if len(ranker.gotEntries) != 2 || ranker.gotEntries[0] != "liked: ergonomic keyboard" {
		t.Fatalf("context entry order must be preserved, got %v", ranker.gotEntries)
	}
	if len(outcome.Products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(outcome.Products))
	}
	if outcome.Products[0]["title"] != "product 7" || outcome.Products[2]["title"] != "product 12" {
		t.Fatalf("expected ranker order preserved, got %v", outcome.Products)
	}
	if outcome.Message == "" {
		t.Fatalf("expected non-empty ai message")
	}
}

func TestSearchDropsIndicesOutsideCandidateSet(t *testing.T) {
	ranker := &rankerFake{result: domain.RankingResult{
		Indices:   []int{2, 99},
		Rationale: "closest matches",
	}}
	uc := NewSearchProductsUseCase(searcherFake{candidates: candidateSet(3)}, ranker, 48, 10)

	outcome, err := uc.Search(context.Background(), "anything", nil)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(outcome.Products) != 1 {
		t.Fatalf("expected out-of-set index dropped, got %d products", len(outcome.Products))
	}
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	uc := NewSearchProductsUseCase(searcherFake{}, &rankerFake{}, 48, 10)

	_, err := uc.Search(context.Background(), "   ", nil)
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestSearchMalformedCandidateIsNotACallerError(t *testing.T) {
	uc := NewSearchProductsUseCase(searcherFake{candidates: []domain.CandidateRecord{
		{"title": "no rank"},
	}}, &rankerFake{}, 48, 10)

	_, err := uc.Search(context.Background(), "mouse", nil)
	if !domain.IsKind(err, domain.ErrMalformedCandidate) {
		t.Fatalf("expected malformed candidate error, got %v", err)
	}
	if domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("provider data discovered after the search call must not classify as caller input, got %v", err)
	}
}

func TestSearchPropagatesProviderFailure(t *testing.T) {
	providerErr := domain.WrapError(domain.ErrProvider, "product search", fmt.Errorf("status 502"))
	uc := NewSearchProductsUseCase(searcherFake{err: providerErr}, &rankerFake{}, 48, 10)

	_, err := uc.Search(context.Background(), "mouse", nil)
	if !domain.IsKind(err, domain.ErrProvider) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestSearchPropagatesRankerFailureWithRawText(t *testing.T) {
	ranker := &rankerFake{err: &domain.ModelOutputError{
		Kind:      domain.ErrInvalidModelOutput,
		Operation: "rank candidates",
		RawOutput: `sorry, here is a list instead`,
	}}
	uc := NewSearchProductsUseCase(searcherFake{candidates: candidateSet(5)}, ranker, 48, 10)

	_, err := uc.Search(context.Background(), "mouse", nil)
	if !domain.IsKind(err, domain.ErrInvalidModelOutput) {
		t.Fatalf("expected invalid model output error, got %v", err)
	}
	if domain.RawModelOutput(err) == "" {
		t.Fatalf("expected raw model text preserved through the pipeline")
	}
}
