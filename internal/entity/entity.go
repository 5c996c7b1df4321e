// Package entity extracts structured values (dates, money, contact
// details, identifiers) from free-form user text using deterministic
// pattern rules. Extraction is pure: the same text and reference time
// always yield the same result.
package entity

import (
	"assistant-engine/internal/taxonomy"
)

// Entity is one extracted value with its span in the original text.
// Confidence is in 0..1; rule matches always report 1.0, the field
// exists so fuzzier extraction sources can slot in behind the same
// type.
type Entity struct {
	Type       taxonomy.EntityType `json:"type"`
	Raw        string              `json:"raw"`
	Normalized string              `json:"normalized"`
	Confidence float64             `json:"confidence"`
	Start      int                 `json:"start"`
	End        int                 `json:"end"`
}

// ExtractionResult holds every entity found in one utterance.
// Entities are ordered by start offset and never overlap.
type ExtractionResult struct {
	Text     string   `json:"text"`
	Entities []Entity `json:"entities"`
}

// ByType returns all entities of the given type in text order.
func (r *ExtractionResult) ByType(t taxonomy.EntityType) []Entity {
	var out []Entity
	for _, e := range r.Entities {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first entity of the given type, or false when none
// was extracted.
func (r *ExtractionResult) First(t taxonomy.EntityType) (Entity, bool) {
	for _, e := range r.Entities {
		if e.Type == t {
			return e, true
		}
	}
	return Entity{}, false
}

// HasType reports whether at least one entity of the given type exists.
func (r *ExtractionResult) HasType(t taxonomy.EntityType) bool {
	_, ok := r.First(t)
	return ok
}

// Types returns the distinct entity types present, in text order.
func (r *ExtractionResult) Types() []taxonomy.EntityType {
	seen := make(map[taxonomy.EntityType]bool)
	var out []taxonomy.EntityType
	for _, e := range r.Entities {
		if !seen[e.Type] {
			seen[e.Type] = true
			out = append(out, e.Type)
		}
	}
	return out
}

// ToMap flattens the result into normalized values keyed by entity
// type, keeping the first occurrence of each type. Convenient for
// process variable payloads.
func (r *ExtractionResult) ToMap() map[string]string {
	out := make(map[string]string)
	for _, e := range r.Entities {
		key := string(e.Type)
		if _, exists := out[key]; !exists {
			out[key] = e.Normalized
		}
	}
	return out
}

// ValidateRequired returns the required entity types of def that are
// absent from the result, in the definition's declared order. An empty
// slice means all requirements are satisfied.
func (r *ExtractionResult) ValidateRequired(def *taxonomy.IntentDefinition) []taxonomy.EntityType {
	var missing []taxonomy.EntityType
	for _, et := range def.RequiredEntities {
		if !r.HasType(et) {
			missing = append(missing, et)
		}
	}
	return missing
}
