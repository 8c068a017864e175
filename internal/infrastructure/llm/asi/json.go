package asi

import (
	"encoding/json"
	"strings"
)

// unmarshalModelJSON strictly parses model output after trimming a whole
// markdown code fence if the model ignored the no-fence instruction.
// Anything else that is not valid JSON fails.
func unmarshalModelJSON(raw string, out any) error {
	return json.Unmarshal([]byte(extractJSONObject(raw)), out)
}

func extractJSONObject(raw string) string {
	trimmed := strings.TrimSpace(raw)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		return trimmed[start : end+1]
	}
	return trimmed
}
