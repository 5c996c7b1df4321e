// internal/coverage/loader.go
package coverage

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// corpusSchema validates the on-disk corpus before unmarshalling.
const corpusSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["entries"],
  "properties": {
    "entries": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["text", "pool", "target"],
        "properties": {
          "text": {"type": "string", "minLength": 1},
          "pool": {"type": "string", "enum": ["intent", "workflow"]},
          "target": {"type": "string", "minLength": 1},
          "route": {"type": "string"}
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`

// LoadCorpus reads and schema-validates a corpus file.
func LoadCorpus(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus %s: %w", path, err)
	}
	return ParseCorpus(data)
}

// ParseCorpus validates and unmarshals a corpus from raw JSON.
func ParseCorpus(data []byte) (*Corpus, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(corpusSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("corpus validation failed: %w", err)
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return nil, fmt.Errorf("corpus is invalid: %s", strings.Join(problems, "; "))
	}

	var corpus Corpus
	if err := json.Unmarshal(data, &corpus); err != nil {
		return nil, fmt.Errorf("failed to parse corpus: %w", err)
	}
	return &corpus, nil
}
