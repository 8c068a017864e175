package asi

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/contextcart/ragsearch/internal/core/domain"
)

func buildCleanSystemPrompt() string {
	return `You are a formatting and cleaning agent. You remove unwanted details and tokens from the given URL data but keep the structure intact.
Analyze the JSON data and do the following:
1. Create a cleaned version with sensitive and redundant data removed
   - Keep the same structure (url, metadata, timestamp, geolocation)
   - Remove query parameters and tracking IDs from URLs
   - Keep only essential product information
   - Preserve the timestamp number when it is present
2. Write a brief but detailed summary describing what this data represents
   - Include product type, category and key features, or video type for youtube
   - The data can come from any category, so describe accordingly
   - Add a very short inference from the website URL
   - Make it descriptive enough for meaningful embeddings

Format your response strictly as valid JSON like this:
{
    "cleaned": {
        "url": "simplified-url",
        "metadata": "cleaned-metadata",
        "timestamp": number or null,
        "geolocation": {"ok": true, "latitude": number, "longitude": number} or null if not available (do not change coordinate values)
    },
    "context": "your detailed summary here"
}

You are a JSON-only generator. Always return valid, strict JSON with double quotes for keys and string values.
Do not add a markdown code fence around the output.`
}

func buildCleanMessage(raw map[string]any) (string, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return "", fmt.Errorf("marshal input record: %w", err)
	}
	return "format this data: " + string(data), nil
}

func buildRankSystemPrompt() string {
	return `You are a search agent that finds the best products based on user context, a search term and a list of products with descriptions.
The user provides data in the following format:

[Context Text Chunk 1]
[Context Text Chunk 2]
...
[Context Text Chunk K]

[Search Query Statement]

[Product Details 1]
[Product Details 2]
...
[Product Details N]

Each product detail is a JSON object like:
{"position": 1, "title": "Fighter Jet Combat Simulator: Jet Force Elite", "link": "https://www.example.com/dp/B0DXF6NJ36/", "rating": 3.9, "reviews": 198, "price": "$0.00"}

Return the top M most relevant products (use what products they like, what websites they visit and what videos they have watched) that best match the search query, as a JSON array of their "position" values under the key "index", most relevant first.
Also return an AI message under the key "ai_message" explaining why these are the best matches given the past context. Do not mention product IDs or positions in the AI message.
If the search query does not match any of the context or product details at all, say that the search did not exactly match and return the closest similar products instead of an empty list.

You are a JSON-only generator. Always return valid, strict JSON with double quotes for keys and string values.
Do not add a markdown code fence around the output.`
}

func buildRankMessage(contextEntries []string, query string, projected []domain.ProjectedCandidate, topM int) (string, error) {
	products, err := json.Marshal(projected)
	if err != nil {
		return "", fmt.Errorf("marshal projected candidates: %w", err)
	}

	var b strings.Builder
	b.WriteString("Here are the context entries:\n")
	for _, entry := range contextEntries {
		b.WriteString(entry)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nSearch query: %s\n", query)
	fmt.Fprintf(&b, "\nGive me the top %d entries (strictly this many indexes if there are more records than that) that best match the search query and product details.\n", topM)
	b.WriteString("\nHere are the product details:\n")
	b.Write(products)
	return b.String(), nil
}
