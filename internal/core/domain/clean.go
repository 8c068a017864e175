package domain

// Geolocation is the optional coordinate block inside a cleaned record.
type Geolocation struct {
	OK        bool    `json:"ok"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CleanedRecord is the fixed four-key shape the cleaning prompt asks the
// model to produce. All keys are present even when the values are null.
type CleanedRecord struct {
	URL         string       `json:"url"`
	Metadata    string       `json:"metadata"`
	Timestamp   *float64     `json:"timestamp"`
	Geolocation *Geolocation `json:"geolocation"`
}

// ContextSummary pairs a cleaned record with the free-text summary used as
// embedding input. Context is non-empty on success.
type ContextSummary struct {
	Cleaned CleanedRecord `json:"cleaned"`
	Context string        `json:"context"`
}

// CleanOutcome is the full result of the clean operation. Embedding is
// best-effort: an empty slice means the embedding provider was unavailable,
// not that the operation failed.
type CleanOutcome struct {
	Cleaned   CleanedRecord `json:"cleaned"`
	Context   string        `json:"context"`
	Embedding []float32     `json:"embedding"`
}
