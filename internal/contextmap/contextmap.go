// Package contextmap declares which context fields each process step
// needs before a prompt can be built or a tool invoked, and where each
// field comes from. The map is static configuration: resolving the
// actual values is the resolver package's job.
package contextmap

import (
	"fmt"

	"assistant-engine/internal/taxonomy"
)

// Source tells the resolver layer where a field's value lives.
type Source string

const (
	SourceConversation Source = "conversation"
	SourceDatabase     Source = "database"
	SourceSearch       Source = "search"
	SourceStatic       Source = "static"
)

// Valid reports whether s is a declared source.
func (s Source) Valid() bool {
	switch s {
	case SourceConversation, SourceDatabase, SourceSearch, SourceStatic:
		return true
	}
	return false
}

// Field is one context requirement for a process step.
type Field struct {
	Key         string `json:"key"`
	Source      Source `json:"source"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
}

// StepKey addresses one process step within a domain.
type StepKey struct {
	Domain taxonomy.Domain `json:"domain"`
	Step   string          `json:"step"`
}

// Entry binds a step to its context fields.
type Entry struct {
	Domain taxonomy.Domain `json:"domain"`
	Step   string          `json:"step"`
	Fields []Field         `json:"fields"`
}

// Map is the immutable (domain, step) -> fields lookup.
type Map struct {
	fields map[StepKey][]Field
}

// NewMap validates and indexes the entries. Duplicate steps, duplicate
// keys within a step, and unknown domains or sources fail construction.
func NewMap(entries []Entry) (*Map, error) {
	m := &Map{fields: make(map[StepKey][]Field, len(entries))}
	for _, e := range entries {
		if !e.Domain.Valid() {
			return nil, fmt.Errorf("context entry: unknown domain %q", e.Domain)
		}
		if e.Step == "" {
			return nil, fmt.Errorf("context entry in domain %s has empty step", e.Domain)
		}
		key := StepKey{Domain: e.Domain, Step: e.Step}
		if _, exists := m.fields[key]; exists {
			return nil, fmt.Errorf("duplicate context entry for %s/%s", e.Domain, e.Step)
		}
		if len(e.Fields) == 0 {
			return nil, fmt.Errorf("context entry %s/%s has no fields", e.Domain, e.Step)
		}
		seen := make(map[string]bool, len(e.Fields))
		for _, f := range e.Fields {
			if f.Key == "" {
				return nil, fmt.Errorf("context entry %s/%s has a field with empty key", e.Domain, e.Step)
			}
			if !f.Source.Valid() {
				return nil, fmt.Errorf("context field %s/%s/%s: unknown source %q", e.Domain, e.Step, f.Key, f.Source)
			}
			if seen[f.Key] {
				return nil, fmt.Errorf("context entry %s/%s: duplicate field key %q", e.Domain, e.Step, f.Key)
			}
			seen[f.Key] = true
		}
		fields := make([]Field, len(e.Fields))
		copy(fields, e.Fields)
		m.fields[key] = fields
	}
	return m, nil
}

// Fields returns every field declared for the step, in declaration
// order. A step with no entry returns an empty slice.
func (m *Map) Fields(domain taxonomy.Domain, step string) []Field {
	fields := m.fields[StepKey{Domain: domain, Step: step}]
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// Required returns only the required fields for the step, in
// declaration order.
func (m *Map) Required(domain taxonomy.Domain, step string) []Field {
	var out []Field
	for _, f := range m.fields[StepKey{Domain: domain, Step: step}] {
		if f.Required {
			out = append(out, f)
		}
	}
	return out
}

// Has reports whether the step has any declared context.
func (m *Map) Has(domain taxonomy.Domain, step string) bool {
	_, ok := m.fields[StepKey{Domain: domain, Step: step}]
	return ok
}

// GroupBySource buckets fields by where their values come from, so a
// resolver can batch lookups per backend. Order within a bucket follows
// the input order.
func GroupBySource(fields []Field) map[Source][]Field {
	out := make(map[Source][]Field)
	for _, f := range fields {
		out[f.Source] = append(out[f.Source], f)
	}
	return out
}
