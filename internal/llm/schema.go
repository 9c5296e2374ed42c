package llm

// BuildAnalysisJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. We use it locally to validate the document model's output
// before forwarding anything to the caller.
func BuildAnalysisJSONSchema() map[string]any {
	stringList := map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"document_type": map[string]any{"type": "string", "minLength": 1},
			"explanation":   map[string]any{"type": "string", "minLength": 1},
			"key_details":   stringList,
			"calculations":  stringList,
			"insights":      map[string]any{"type": "string"},
		},
		"required": []string{"document_type", "explanation", "key_details", "calculations", "insights"},
	}
}
