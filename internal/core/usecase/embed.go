package usecase

import (
	"context"

	"github.com/contextcart/ragsearch/internal/core/ports"
)

// EmbedTextUseCase exposes the embedding provider as its own operation.
type EmbedTextUseCase struct {
	embedder ports.Embedder
}

func NewEmbedTextUseCase(embedder ports.Embedder) *EmbedTextUseCase {
	return &EmbedTextUseCase{embedder: embedder}
}

// Embed returns the provider's vector for text, or an empty slice when the
// provider yielded nothing. The caller decides whether empty is an error;
// the clean pipeline treats it as a degraded success, the embedding
// endpoint reports it.
func (uc *EmbedTextUseCase) Embed(ctx context.Context, text string) []float32 {
	embedding := uc.embedder.Embed(ctx, text)
	if embedding == nil {
		return []float32{}
	}
	return embedding
}
