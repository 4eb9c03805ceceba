package scoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const responseSchemaURL = "schema://scoring-response.json"

// responseSchema is the envelope the scoring endpoint answers with. A body
// without a success flag is a refusal, not a malformed reply.
var responseSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"success":     map[string]any{"type": "boolean"},
		"profile":     map[string]any{"type": "string"},
		"score":       map[string]any{"type": "number"},
		"description": map[string]any{"type": "string"},
		"error":       map[string]any{"type": "string"},
	},
	"if": map[string]any{
		"required":   []any{"success"},
		"properties": map[string]any{"success": map[string]any{"const": true}},
	},
	"then": map[string]any{
		"required": []any{"profile", "score", "description"},
	},
}

var (
	compiledOnce sync.Once
	compiled     *jsonschema.Schema
	compileErr   error
)

func compiledResponseSchema() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		// The compiler wants plain decoded JSON, not Go maps with typed slices.
		raw, err := json.Marshal(responseSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal response schema: %w", err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			compileErr = fmt.Errorf("parse response schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(responseSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(responseSchemaURL)
	})
	return compiled, compileErr
}

// validateResponse checks raw against the response envelope.
func validateResponse(raw []byte) error {
	sch, err := compiledResponseSchema()
	if err != nil {
		return err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
