package asi

import "github.com/google/jsonschema-go/jsonschema"

// cleanOutputSchema constrains the cleaning reply to the strict
// {cleaned, context} shape. Top-level keys are non-nullable; timestamp and
// geolocation inside the cleaned block may be null.
func cleanOutputSchema() OutputSchema {
	return OutputSchema{
		Name:   "data_extraction_summary",
		Strict: true,
		Schema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"cleaned": {
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"url": {
							Type:        "string",
							Description: "A simplified, clean version of the source URL",
						},
						"metadata": {
							Type:        "string",
							Description: "Cleaned and summarized metadata from the source",
						},
						"timestamp": {
							Types:       []string{"number", "null"},
							Description: "UNIX timestamp of the content, or null if not available",
						},
						"geolocation": {
							Types: []string{"object", "null"},
							Properties: map[string]*jsonschema.Schema{
								"ok": {
									Type:        "boolean",
									Description: "True if geolocation data was successfully found",
								},
								"latitude": {
									Type:        "number",
									Description: "The latitude coordinate",
								},
								"longitude": {
									Type:        "number",
									Description: "The longitude coordinate",
								},
							},
							Required: []string{"ok", "latitude", "longitude"},
						},
					},
					Required: []string{"url", "metadata", "timestamp", "geolocation"},
				},
				"context": {
					Type:        "string",
					Description: "A detailed summary of the content for contextual understanding",
				},
			},
			Required: []string{"cleaned", "context"},
		},
	}
}

// rankOutputSchema constrains the ranking reply to an index array plus a
// user-facing message. The required list names the fields the prompt asks
// for and the parser reads: index and ai_message.
func rankOutputSchema() OutputSchema {
	return OutputSchema{
		Name:   "ranked_index_with_message",
		Strict: true,
		Schema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"index": {
					Type: "array",
					Items: &jsonschema.Schema{
						Type:        "number",
						Description: "A candidate position selected by relevance",
					},
					Description: "Positions of the selected products, most relevant first",
				},
				"ai_message": {
					Type:        "string",
					Description: "A message from the AI describing or explaining the choice of products",
				},
			},
			Required: []string{"index", "ai_message"},
		},
	}
}
