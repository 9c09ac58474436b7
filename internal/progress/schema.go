package progress

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const progressSchemaURL = "schema://kanaz/progress.json"

func counterSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"alltime"},
		"properties": map[string]any{
			"alltime": map[string]any{"type": "integer", "minimum": 0},
		},
	}
}

var progressSchema = map[string]any{
	"$schema":  "https://json-schema.org/draft/2020-12/schema",
	"type":     "object",
	"required": []any{"data"},
	"properties": map[string]any{
		"data": map[string]any{
			"type":          "object",
			"propertyNames": map[string]any{"pattern": "^[0-9]+$"},
			"additionalProperties": map[string]any{
				"type":     "object",
				"required": []any{"weight", "type", "lastPractice", "timesPracticed", "mistakes", "corrects"},
				"properties": map[string]any{
					"weight":         map[string]any{"type": "number", "minimum": 0},
					"type":           map[string]any{"enum": []any{"gojuuon", "dakuon", "youon"}},
					"lastPractice":   map[string]any{"type": "number"},
					"timesPracticed": map[string]any{"type": "integer", "minimum": 0},
					"mistakes":       counterSchema(),
					"corrects":       counterSchema(),
				},
			},
		},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// validate checks raw progress JSON against the progress file schema.
func validate(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(progressSchemaURL, progressSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(progressSchemaURL)
	})
	if compileErr != nil {
		return fmt.Errorf("compile progress schema: %w", compileErr)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
