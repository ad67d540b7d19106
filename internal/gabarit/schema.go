package gabarit

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// fileSchema is the JSON Schema every gabarit file must satisfy.
var fileSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"chapitre":      map[string]any{"type": "string", "minLength": 1},
		"type_exercice": map[string]any{"type": "string", "minLength": 1},
		"gabarits": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"style": map[string]any{"type": "string"},
					"templates": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items":    map[string]any{"type": "string", "minLength": 1},
					},
				},
				"required": []any{"style", "templates"},
			},
		},
	},
	"required": []any{"chapitre", "type_exercice", "gabarits"},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		const url = "schema://gabarit-file.json"
		c := jsonschema.NewCompiler()
		if err := c.AddResource(url, fileSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(url)
	})
	return compiled, compileErr
}

// validateFile checks raw JSON against fileSchema.
func validateFile(raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile gabarit schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
