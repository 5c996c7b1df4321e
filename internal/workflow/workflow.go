// Package workflow defines the multi-step procedures the assistant can
// launch from a single utterance, and matches utterances against the
// workflow pattern pool. Steps carry an explicit 1..N order and every
// step's tool must exist in the capability catalog.
package workflow

import (
	"fmt"

	"assistant-engine/internal/pattern"
	"assistant-engine/internal/taxonomy"
	"assistant-engine/pkg/registry"
)

// CardType names the rich result card a finished workflow renders in
// the client. Empty means the plain text summary.
type CardType string

const (
	CardBookingSummary CardType = "booking_summary"
	CardMessageReceipt CardType = "message_receipt"
	CardQuoteStatus    CardType = "quote_status"
	CardInvoiceBalance CardType = "invoice_balance"
)

// Valid reports whether c is one of the declared card types.
func (c CardType) Valid() bool {
	switch c {
	case CardBookingSummary, CardMessageReceipt, CardQuoteStatus, CardInvoiceBalance:
		return true
	}
	return false
}

// Step is one ordered action within a workflow. Order starts at 1 and
// is contiguous within a workflow. ArgsTemplate maps each tool argument
// to the context placeholder that fills it.
type Step struct {
	Order        int               `json:"order"`
	Tool         string            `json:"tool"`
	Description  string            `json:"description"`
	ArgsTemplate map[string]string `json:"args_template,omitempty"`
}

// Workflow is a named multi-step procedure.
type Workflow struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Domain          taxonomy.Domain `json:"domain"`
	Description     string          `json:"description"`
	Steps           []Step          `json:"steps"`
	SuccessMetrics  []string        `json:"success_metrics"`
	SpecialCardType CardType        `json:"special_card_type,omitempty"`
}

// Tools returns the workflow's tool names in step order.
func (w *Workflow) Tools() []string {
	out := make([]string, len(w.Steps))
	for i, s := range w.Steps {
		out[i] = s.Tool
	}
	return out
}

// Registry is the immutable workflow catalog.
type Registry struct {
	byID    map[string]*Workflow
	ordered []*Workflow
}

// NewRegistry validates the workflows against the capability catalog.
// Violations (duplicate ids, gaps in step order, unregistered tools)
// are load-time errors.
func NewRegistry(workflows []Workflow, catalog *registry.Catalog) (*Registry, error) {
	r := &Registry{
		byID:    make(map[string]*Workflow, len(workflows)),
		ordered: make([]*Workflow, 0, len(workflows)),
	}
	for i := range workflows {
		wf := workflows[i]
		if wf.ID == "" {
			return nil, fmt.Errorf("workflow has empty id")
		}
		if _, exists := r.byID[wf.ID]; exists {
			return nil, fmt.Errorf("duplicate workflow id %q", wf.ID)
		}
		if !wf.Domain.Valid() {
			return nil, fmt.Errorf("workflow %s: unknown domain %q", wf.ID, wf.Domain)
		}
		if len(wf.Steps) == 0 {
			return nil, fmt.Errorf("workflow %s: no steps", wf.ID)
		}
		if len(wf.SuccessMetrics) == 0 {
			return nil, fmt.Errorf("workflow %s: no success metrics", wf.ID)
		}
		if wf.SpecialCardType != "" && !wf.SpecialCardType.Valid() {
			return nil, fmt.Errorf("workflow %s: unknown card type %q", wf.ID, wf.SpecialCardType)
		}
		for i, step := range wf.Steps {
			if step.Order != i+1 {
				return nil, fmt.Errorf("workflow %s: step %d has order %d, steps must be contiguous from 1",
					wf.ID, i+1, step.Order)
			}
			tool, ok := catalog.Get(step.Tool)
			if !ok {
				return nil, fmt.Errorf("workflow %s: step %d tool %q is not in the capability catalog",
					wf.ID, step.Order, step.Tool)
			}
			for arg := range step.ArgsTemplate {
				if !containsKey(tool.InputKeys, arg) {
					return nil, fmt.Errorf("workflow %s: step %d arg %q is not an input of tool %q",
						wf.ID, step.Order, arg, step.Tool)
				}
			}
		}
		r.byID[wf.ID] = &wf
		r.ordered = append(r.ordered, &wf)
	}
	return r, nil
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns the workflow for id, or false when unknown.
func (r *Registry) Get(id string) (*Workflow, bool) {
	wf, ok := r.byID[id]
	return wf, ok
}

// All returns every workflow in registration order.
func (r *Registry) All() []*Workflow {
	out := make([]*Workflow, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Len returns the number of registered workflows.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// Match is one workflow pattern hit with its resolved workflow.
type Match struct {
	Workflow  *Workflow `json:"workflow"`
	PatternID string    `json:"pattern_id"`
	Trigger   string    `json:"trigger"`
}

// Matcher runs utterances against the workflow pattern pool.
type Matcher struct {
	workflows *Registry
	patterns  *pattern.Registry
}

// NewMatcher builds a matcher. Every workflow-pool pattern must target
// a registered workflow with a matching domain.
func NewMatcher(workflows *Registry, patterns *pattern.Registry) (*Matcher, error) {
	for _, def := range patterns.WorkflowPatterns() {
		wf, ok := workflows.Get(def.TargetID)
		if !ok {
			return nil, fmt.Errorf("pattern %s targets unknown workflow %q", def.ID, def.TargetID)
		}
		if wf.Domain != def.Domain {
			return nil, fmt.Errorf("pattern %s domain %q does not match workflow %s domain %q",
				def.ID, def.Domain, wf.ID, wf.Domain)
		}
	}
	return &Matcher{workflows: workflows, patterns: patterns}, nil
}

// Match returns every workflow whose pattern fires on text, in pattern
// registration order. An empty slice means no workflow applies.
func (m *Matcher) Match(text string) []Match {
	hits := m.patterns.MatchWorkflows(text)
	out := make([]Match, 0, len(hits))
	for _, h := range hits {
		wf, _ := m.workflows.Get(h.TargetID)
		out = append(out, Match{Workflow: wf, PatternID: h.PatternID, Trigger: h.Trigger})
	}
	return out
}
