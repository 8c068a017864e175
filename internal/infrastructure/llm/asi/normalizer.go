package asi

import (
	"context"
	"strings"

	"github.com/contextcart/ragsearch/internal/core/domain"
)

// Normalizer cleans one arbitrary JSON record into the fixed
// {cleaned, context} shape via schema-constrained generation. A single
// attempt per call; retrying is the caller's concern.
type Normalizer struct {
	client *Client
	model  string
}

func NewNormalizer(client *Client, model string) *Normalizer {
	return &Normalizer{client: client, model: model}
}

func (n *Normalizer) Normalize(ctx context.Context, raw map[string]any) (domain.ContextSummary, error) {
	const op = "normalize record"

	message, err := buildCleanMessage(raw)
	if err != nil {
		return domain.ContextSummary{}, domain.WrapError(domain.ErrInvalidInput, op, err)
	}

	reply, err := n.client.Generate(ctx, message, buildCleanSystemPrompt(), n.model, cleanOutputSchema())
	if err != nil {
		return domain.ContextSummary{}, err
	}

	// The schema constraint is only a hint; the reply is parsed defensively
	// and the raw text rides along on every failure.
	var parsed struct {
		Cleaned *domain.CleanedRecord `json:"cleaned"`
		Context *string               `json:"context"`
	}
	if err := unmarshalModelJSON(reply, &parsed); err != nil {
		return domain.ContextSummary{}, &domain.ModelOutputError{
			Kind:      domain.ErrInvalidModelOutput,
			Operation: op,
			RawOutput: reply,
			Err:       err,
		}
	}
	if parsed.Cleaned == nil || parsed.Context == nil || strings.TrimSpace(*parsed.Context) == "" {
		return domain.ContextSummary{}, &domain.ModelOutputError{
			Kind:      domain.ErrSchemaViolation,
			Operation: op,
			RawOutput: reply,
		}
	}

	return domain.ContextSummary{
		Cleaned: *parsed.Cleaned,
		Context: *parsed.Context,
	}, nil
}
