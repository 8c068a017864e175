package asi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/contextcart/ragsearch/internal/core/domain"
)

// Ranker asks the model to select the topM most relevant projected
// candidates by position and to justify the selection.
type Ranker struct {
	client *Client
	model  string
}

func NewRanker(client *Client, model string) *Ranker {
	return &Ranker{client: client, model: model}
}

func (r *Ranker) Rank(
	ctx context.Context,
	contextEntries []string,
	query string,
	projected []domain.ProjectedCandidate,
	topM int,
) (domain.RankingResult, error) {
	const op = "rank candidates"

	message, err := buildRankMessage(contextEntries, query, projected, topM)
	if err != nil {
		return domain.RankingResult{}, domain.WrapError(domain.ErrInvalidInput, op, err)
	}

	reply, err := r.client.Generate(ctx, message, buildRankSystemPrompt(), r.model, rankOutputSchema())
	if err != nil {
		return domain.RankingResult{}, err
	}

	var parsed struct {
		Index     []flexIndex `json:"index"`
		AIMessage *string     `json:"ai_message"`
	}
	if err := unmarshalModelJSON(reply, &parsed); err != nil {
		return domain.RankingResult{}, &domain.ModelOutputError{
			Kind:      domain.ErrInvalidModelOutput,
			Operation: op,
			RawOutput: reply,
			Err:       err,
		}
	}
	if parsed.Index == nil || parsed.AIMessage == nil {
		return domain.RankingResult{}, &domain.ModelOutputError{
			Kind:      domain.ErrSchemaViolation,
			Operation: op,
			RawOutput: reply,
		}
	}

	indices := make([]int, len(parsed.Index))
	for i, idx := range parsed.Index {
		indices[i] = int(idx)
	}
	return domain.RankingResult{
		Indices:   indices,
		Rationale: *parsed.AIMessage,
	}, nil
}

// flexIndex accepts both 2 and "2"; the model does not reliably keep index
// elements numeric even under a schema constraint.
type flexIndex int

func (f *flexIndex) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n, ok := domain.CoerceIndex(v)
	if !ok {
		return fmt.Errorf("index element %s is not numeric", data)
	}
	*f = flexIndex(n)
	return nil
}
