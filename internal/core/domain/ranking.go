package domain

// RankingResult holds the model-selected candidate positions in ranking
// order plus the user-facing rationale. Indices are canonical ints after
// parse; values that never existed in the projected set are dropped later
// during reconciliation.
type RankingResult struct {
	Indices   []int
	Rationale string
}

// SearchOutcome is the full result of the search operation: the reconciled
// candidate records in ranking order and the model's explanation.
type SearchOutcome struct {
	Products []CandidateRecord `json:"products"`
	Message  string            `json:"ai_message"`
}
