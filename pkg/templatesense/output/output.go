// Package output serializes summaries and payloads as JSON or YAML.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

const (
	// FormatJSON encodes as JSON.
	FormatJSON Format = "json"
	// FormatYAML encodes as YAML with keys in JSON field order.
	FormatYAML Format = "yaml"
)

// ParseFormat parses a case-insensitive format name. "yml" is accepted.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (must be json or yaml)", s)
	}
}

// ToJSON serializes v to JSON.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// ToYAML serializes v to block-style YAML. v is encoded through its JSON
// form so field names and ordering match ToJSON.
func ToYAML(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("convert json to yaml: %w", err)
	}
	blockStyle(&doc)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// blockStyle drops the flow and quoting styles inherited from JSON. String
// scalars keep an explicit tag so "12345" is re-quoted rather than turned into a number.
func blockStyle(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str" {
		n.Tag = "!!str"
	}
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// Marshal serializes v in the given format. pretty only affects JSON.
func Marshal(v any, format Format, pretty bool) ([]byte, error) {
	switch format {
	case FormatYAML:
		return ToYAML(v)
	case FormatJSON, "":
		return ToJSON(v, pretty)
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// Write serializes v to w, ending with a newline.
func Write(w io.Writer, v any, format Format, pretty bool) error {
	data, err := Marshal(v, format, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	_, err = w.Write(data)
	return err
}
