// Package schema validates JSON documents against JSON Schemas built as Go maps.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Compile compiles a schema given as a generic map.
func Compile(schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	s, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return s, nil
}

// ValidateJSON validates the JSON document data against schemaMap.
func ValidateJSON(schemaMap map[string]any, data []byte) error {
	s, err := Compile(schemaMap)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// ValidateValue marshals v to JSON and validates it against schemaMap.
func ValidateValue(schemaMap map[string]any, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal data: %w", err)
	}
	return ValidateJSON(schemaMap, data)
}
