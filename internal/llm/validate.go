package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// The analysis schema never changes at runtime, so it is compiled once on
// first use and shared by every validation.
var compileAnalysisSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	b, err := json.Marshal(BuildAnalysisJSONSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal analysis schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("analysis.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add analysis schema: %w", err)
	}
	return compiler.Compile("analysis.json")
})

// ValidateAnalysisJSON checks raw model output against the document-analysis
// schema before it is unmarshalled into DocumentAnalysis.
func ValidateAnalysisJSON(data []byte) error {
	schema, err := compileAnalysisSchema()
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("analysis is not valid json: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("analysis does not match schema: %w", err)
	}
	return nil
}
