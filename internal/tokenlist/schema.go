package tokenlist

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// The published token-list schema is the single source of truth for
// required and optional document fields.
//
//go:embed schema.json
var schemaJSON []byte

// ValidateDocument checks a candidate document against the token-list
// schema. On failure it returns a DataError wrapping a SchemaError
// that carries every violation, not just the first.
func ValidateDocument(d *Document) error {
	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode candidate document: %w", err)
	}
	return ValidateBytes(b)
}

// ValidateBytes validates a serialized token-list document.
func ValidateBytes(doc []byte) error {
	if !json.Valid(doc) {
		return dataErrf("", "document is not valid JSON")
	}
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}
	violations := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		violations = append(violations, re.String())
	}
	return &DataError{Err: &SchemaError{Violations: violations}}
}
