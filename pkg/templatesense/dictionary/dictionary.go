// Package dictionary loads the field dictionary that maps canonical field
// keys to the label variants found on invoice templates.
package dictionary

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/templatesense-go/internal/schema"
)

// ErrInvalidDictionary is returned when a dictionary is malformed.
var ErrInvalidDictionary = errors.New("invalid field dictionary")

// Dictionary maps a canonical key (e.g. "invoice_number") to its label variants.
type Dictionary map[string][]string

// Schema returns the JSON Schema a dictionary document must satisfy.
func Schema() map[string]any {
	return map[string]any{
		"type":          "object",
		"minProperties": 1,
		"propertyNames": map[string]any{"minLength": 1},
		"additionalProperties": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    map[string]any{"type": "string", "minLength": 1},
		},
	}
}

// Parse decodes a YAML or JSON dictionary document and validates it.
func Parse(data []byte) (Dictionary, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDictionary, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: document is empty", ErrInvalidDictionary)
	}

	doc, err := json.Marshal(raw)
	if err != nil {
		// Non-string mapping keys end up here.
		return nil, fmt.Errorf("%w: %v", ErrInvalidDictionary, err)
	}
	if err := schema.ValidateJSON(Schema(), doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDictionary, err)
	}

	var d Dictionary
	if err := json.Unmarshal(doc, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDictionary, err)
	}
	return d, nil
}

// Load reads and parses the dictionary file at path.
func Load(path string) (Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dictionary %s: %w", path, err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("dictionary %s: %w", path, err)
	}
	return d, nil
}

// Validate checks an in-memory dictionary against the same rules as Parse.
func (d Dictionary) Validate() error {
	if len(d) == 0 {
		return fmt.Errorf("%w: must contain at least one key", ErrInvalidDictionary)
	}
	for _, key := range d.Keys() {
		if key == "" {
			return fmt.Errorf("%w: empty key", ErrInvalidDictionary)
		}
		variants := d[key]
		if len(variants) == 0 {
			return fmt.Errorf("%w: key %q has no variants", ErrInvalidDictionary, key)
		}
		for i, v := range variants {
			if v == "" {
				return fmt.Errorf("%w: key %q variant %d is empty", ErrInvalidDictionary, key, i)
			}
		}
	}
	return nil
}

// Keys returns the canonical keys in sorted order.
func (d Dictionary) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
