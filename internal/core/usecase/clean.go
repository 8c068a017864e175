package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/contextcart/ragsearch/internal/core/domain"
	"github.com/contextcart/ragsearch/internal/core/ports"
)

// CleanRecordUseCase normalizes one raw browsing record through the
// generative provider and enriches it with an embedding of the summary.
type CleanRecordUseCase struct {
	normalizer ports.RecordNormalizer
	embedder   ports.Embedder
}

func NewCleanRecordUseCase(normalizer ports.RecordNormalizer, embedder ports.Embedder) *CleanRecordUseCase {
	return &CleanRecordUseCase{
		normalizer: normalizer,
		embedder:   embedder,
	}
}

func (uc *CleanRecordUseCase) Clean(ctx context.Context, raw map[string]any) (*domain.CleanOutcome, error) {
	if err := validateRawRecord(raw); err != nil {
		return nil, err
	}

	summary, err := uc.normalizer.Normalize(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("normalize record: %w", err)
	}

	// Embedding failures degrade to an empty vector; cleaned data is the
	// primary deliverable and still ships.
	embedding := uc.embedder.Embed(ctx, summary.Context)
	if embedding == nil {
		embedding = []float32{}
	}

	return &domain.CleanOutcome{
		Cleaned:   summary.Cleaned,
		Context:   summary.Context,
		Embedding: embedding,
	}, nil
}

func validateRawRecord(raw map[string]any) error {
	if len(raw) == 0 {
		return domain.WrapError(domain.ErrInvalidInput, "clean record", errors.New("no input data provided"))
	}

	missing := make([]string, 0, 2)
	for _, field := range []string{"url", "metadata"} {
		if _, ok := raw[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return domain.WrapError(domain.ErrInvalidInput, "clean record",
			fmt.Errorf("missing required fields: %s", strings.Join(missing, ", ")))
	}
	return nil
}
