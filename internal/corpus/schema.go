package corpus

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const corpusSchemaURL = "schema://kanaz/corpus.json"

// corpusSchema describes the corpus file: a non-empty array of cards.
var corpusSchema = map[string]any{
	"$schema":  "https://json-schema.org/draft/2020-12/schema",
	"type":     "array",
	"minItems": 1,
	"items": map[string]any{
		"type":     "object",
		"required": []any{"kana", "roumaji", "type"},
		"properties": map[string]any{
			"kana":    map[string]any{"type": "string", "minLength": 1},
			"roumaji": map[string]any{"type": "string", "minLength": 1},
			"type":    map[string]any{"enum": []any{"gojuuon", "dakuon", "youon"}},
		},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(corpusSchemaURL, corpusSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(corpusSchemaURL)
	})
	return compiled, compileErr
}

// entry is the on-disk shape of a card.
type entry struct {
	Kana    string `json:"kana"`
	Roumaji string `json:"roumaji"`
	Type    string `json:"type"`
}

// Parse validates raw corpus JSON and converts it to cards, assigning IDs by position.
func Parse(raw []byte) ([]Card, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := schema()
	if err != nil {
		return nil, fmt.Errorf("compile corpus schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var entries []entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode cards: %w", err)
	}

	cards := make([]Card, len(entries))
	for i, e := range entries {
		t, err := ParseType(e.Type)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		cards[i] = Card{
			ID:      i,
			Kana:    e.Kana,
			Roumaji: e.Roumaji,
			Type:    t,
		}
	}
	return cards, nil
}
