// Package codec provides the value encodings used by the storage adapters.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/notemaster/pkg/core"
)

// Default returns the JSON codec, the format the browser build used.
func Default() core.Codec {
	return NewJSON()
}

// ByName resolves a codec from its name or file extension.
func ByName(name string) (core.Codec, error) {
	switch strings.TrimPrefix(strings.ToLower(name), ".") {
	case "", "json":
		return NewJSON(), nil
	case "yaml", "yml":
		return NewYAML(), nil
	}
	return nil, fmt.Errorf("unknown codec %q (want json or yaml)", name)
}

// Extension returns the file extension used for values encoded by c.
func Extension(c core.Codec) string {
	if c.Name() == "yaml" {
		return ".yaml"
	}
	return ".json"
}

// --- JSON Codec ---

// JSONCodec handles reading and writing JSON values.
type JSONCodec struct {
	// Indent is used for every nesting level; empty writes compact JSON.
	Indent string
}

// NewJSON creates a JSON codec with two-space indentation.
func NewJSON() *JSONCodec {
	return &JSONCodec{Indent: "  "}
}

func (c *JSONCodec) Name() string { return "json" }

func (c *JSONCodec) Marshal(v any) ([]byte, error) {
	if c.Indent == "" {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", c.Indent)
}

func (c *JSONCodec) Unmarshal(data []byte, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

// --- YAML Codec ---

// YAMLCodec handles reading and writing YAML values.
type YAMLCodec struct{}

// NewYAML creates a YAML codec.
func NewYAML() *YAMLCodec {
	return &YAMLCodec{}
}

func (c *YAMLCodec) Name() string { return "yaml" }

func (c *YAMLCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *YAMLCodec) Unmarshal(data []byte, v any) error {
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid yaml: %w", err)
	}
	return nil
}

var (
	_ core.Codec = (*JSONCodec)(nil)
	_ core.Codec = (*YAMLCodec)(nil)
)
