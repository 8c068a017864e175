package usecase

import (
	"errors"
	"fmt"
	"sort"

	"github.com/contextcart/ragsearch/internal/core/domain"
)

// ProjectCandidates reduces a heterogeneous candidate list to the fixed
// six-field view sent to the ranking model: sorted ascending by position,
// capped at topK, with missing fields kept as explicit nulls so the shape
// stays stable for schema-constrained consumption. Pure; the input slice is
// not modified.
func ProjectCandidates(candidates []domain.CandidateRecord, topK int) ([]domain.ProjectedCandidate, map[int]domain.ProjectedCandidate, error) {
	if topK < 1 {
		return nil, nil, domain.WrapError(domain.ErrInvalidInput, "project candidates", errors.New("topK must be >= 1"))
	}

	type ranked struct {
		position int
		record   domain.CandidateRecord
	}
	order := make([]ranked, 0, len(candidates))
	for i, candidate := range candidates {
		position, ok := candidate.Position()
		if !ok {
			return nil, nil, domain.WrapError(domain.ErrMalformedCandidate, "project candidates",
				fmt.Errorf("candidate %d has no usable position", i))
		}
		order = append(order, ranked{position: position, record: candidate})
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].position < order[j].position
	})
	if topK < len(order) {
		order = order[:topK]
	}

	projected := make([]domain.ProjectedCandidate, 0, len(order))
	byPosition := make(map[int]domain.ProjectedCandidate, len(order))
	for _, entry := range order {
		p := domain.ProjectedCandidate{
			Position: entry.position,
			Title:    entry.record["title"],
			Link:     cleanLink(entry.record),
			Rating:   entry.record["rating"],
			Reviews:  entry.record["reviews"],
			Price:    entry.record["price"],
		}
		projected = append(projected, p)
		byPosition[entry.position] = p
	}
	return projected, byPosition, nil
}

// cleanLink prefers the provider's tracking-free link variant.
func cleanLink(record domain.CandidateRecord) any {
	if link, ok := record["link_clean"]; ok && link != nil {
		return link
	}
	return record["link"]
}
