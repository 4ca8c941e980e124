package assemble

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Format names accepted by BackendFor.
const (
	FormatGo   = "go"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// JSONBackend renders the Document as an indented JSON manifest for a
// separate code generator. Identifiers are kept as sanitized.
type JSONBackend struct{}

// Name implements Backend.
func (JSONBackend) Name() string { return FormatJSON }

// Ident implements Backend.
func (JSONBackend) Ident(id string) string { return id }

// Render implements Backend.
func (JSONBackend) Render(doc *Document) ([]byte, error) {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// YAMLBackend renders the Document as a YAML manifest.
type YAMLBackend struct{}

// Name implements Backend.
func (YAMLBackend) Name() string { return FormatYAML }

// Ident implements Backend.
func (YAMLBackend) Ident(id string) string { return id }

// Render implements Backend.
func (YAMLBackend) Render(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
