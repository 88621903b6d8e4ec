package vocab

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const poolSchemaURL = "schema://vocab-pool.json"

// poolSchema describes a vocabulary JSON file: an array of items.
var poolSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":         map[string]any{"type": "string", "minLength": 1},
			"en":         map[string]any{"type": "string", "minLength": 1},
			"ja":         map[string]any{"type": "string", "minLength": 1},
			"example_en": map[string]any{"type": "string"},
			"category": map[string]any{
				"type": "string",
				"enum": []any{"daily", "business", "it"},
			},
			"level": map[string]any{"type": "integer", "minimum": 1},
		},
		"required": []any{"id", "en", "ja", "category", "level"},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// validatePool checks raw JSON against the pool schema.
func validatePool(raw []byte) error {
	compileOnce.Do(func() {
		compiled, compileErr = compilePoolSchema()
	})
	if compileErr != nil {
		return compileErr
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", ErrInvalidPool, err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPool, err)
	}
	return nil
}

func compilePoolSchema() (*jsonschema.Schema, error) {
	// The compiler wants a parsed JSON value, not Go maps with typed slices.
	defBytes, err := json.Marshal(poolSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal pool schema: %w", err)
	}
	var def any
	if err := json.Unmarshal(defBytes, &def); err != nil {
		return nil, fmt.Errorf("parse pool schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(poolSchemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	sch, err := c.Compile(poolSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return sch, nil
}
