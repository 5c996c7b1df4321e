// pkg/registry/loader.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// catalogSchema validates the on-disk capability catalog before it is
// unmarshalled. Structural problems surface as one aggregated error.
const catalogSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["capabilities"],
  "properties": {
    "capabilities": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["name", "kind", "description"],
        "properties": {
          "name": {"type": "string", "pattern": "^[a-z][a-z0-9-]*$"},
          "description": {"type": "string", "minLength": 1},
          "kind": {"type": "string", "enum": ["query", "action", "notification"]},
          "input_keys": {"type": "array", "items": {"type": "string"}},
          "output_keys": {"type": "array", "items": {"type": "string"}}
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`

type catalogFile struct {
	Capabilities []Capability `json:"capabilities"`
}

// Load reads, schema-validates, and indexes a capability catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read capability catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse validates and indexes a capability catalog from raw JSON.
func Parse(data []byte) (*Catalog, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(catalogSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("capability catalog validation failed: %w", err)
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return nil, fmt.Errorf("capability catalog is invalid: %s", strings.Join(problems, "; "))
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse capability catalog: %w", err)
	}
	return NewCatalog(file.Capabilities)
}
