package domain

import (
	"encoding/json"
	"strconv"
)

// CandidateRecord is one product record as returned by the search provider.
// The shape is provider-controlled and heterogeneous; the only field this
// system depends on is "position", a 1-based rank that may arrive as a
// number or as a string.
type CandidateRecord map[string]any

func (c CandidateRecord) Position() (int, bool) {
	return CoerceIndex(c["position"])
}

// ProjectedCandidate is the bounded, schema-stable view of a candidate that
// goes into ranking prompts. All six keys are always serialized; fields the
// provider did not supply stay null.
type ProjectedCandidate struct {
	Position int `json:"position"`
	Title    any `json:"title"`
	Link     any `json:"link"`
	Rating   any `json:"rating"`
	Reviews  any `json:"reviews"`
	Price    any `json:"price"`
}

// CoerceIndex normalizes the inconsistently typed position/index values in
// provider and model payloads to a canonical int. JSON decoding yields
// float64 for numbers; the model and some providers emit quoted numbers.
func CoerceIndex(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case string:
		i, err := strconv.Atoi(n)
		if err == nil {
			return i, true
		}
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return int(f), true
	default:
		return 0, false
	}
}
