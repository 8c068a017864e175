package usecase

import "github.com/contextcart/ragsearch/internal/core/domain"

// ReconcileIndices maps model-selected positions back to full candidate
// records. Output follows the index order, because ranking order is the
// result. Positions are compared under numeric coercion (providers emit
// both "2" and 2), indices without a matching candidate are skipped, and
// duplicate indices produce duplicate entries.
func ReconcileIndices(indices []int, candidates []domain.CandidateRecord) []domain.CandidateRecord {
	out := make([]domain.CandidateRecord, 0, len(indices))
	for _, index := range indices {
		for _, candidate := range candidates {
			position, ok := candidate.Position()
			if !ok {
				continue
			}
			if position == index {
				out = append(out, candidate)
				break
			}
		}
	}
	return out
}
