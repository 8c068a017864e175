package gemini

import (
	"context"
	"log/slog"

	"google.golang.org/genai"
)

// contentEmbedder is the slice of the genai client the embedder needs;
// tests substitute a fake.
type contentEmbedder interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Embedder turns a text summary into a vector through the Gemini embedding
// API. Embeddings are best-effort enrichment: every failure, transport or
// otherwise, degrades to an empty vector instead of an error, and the
// enclosing operation carries on.
type Embedder struct {
	models contentEmbedder
	model  string
}

func New(client *genai.Client, model string) *Embedder {
	return &Embedder{models: client.Models, model: model}
}

func newWithEmbedder(models contentEmbedder, model string) *Embedder {
	return &Embedder{models: models, model: model}
}

func (e *Embedder) Embed(ctx context.Context, text string) []float32 {
	if text == "" {
		return []float32{}
	}

	resp, err := e.models.EmbedContent(ctx, e.model, genai.Text(text), nil)
	if err != nil {
		slog.Warn("embedding request failed", "model", e.model, "error", err)
		return []float32{}
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		slog.Warn("embedding response carried no vector", "model", e.model)
		return []float32{}
	}
	return resp.Embeddings[0].Values
}
