// Package pattern holds the phrase registry the classifier and
// workflow matcher run against. Every trigger phrase is compiled to a
// word-boundary matcher once at registry construction, so matching at
// request time is allocation-light and deterministic.
package pattern

import (
	"fmt"
	"regexp"
	"strings"

	"assistant-engine/internal/taxonomy"
)

// Pool separates intent patterns from workflow patterns. Mutual
// exclusivity is enforced within a pool; the two pools may legitimately
// share vocabulary.
type Pool string

const (
	PoolIntent   Pool = "intent"
	PoolWorkflow Pool = "workflow"
)

// Definition declares one pattern: the phrases that trigger it and the
// intent or workflow it resolves to.
type Definition struct {
	ID          string          `json:"id"`
	Pool        Pool            `json:"pool"`
	TargetID    string          `json:"target_id"`
	Domain      taxonomy.Domain `json:"domain"`
	Triggers    []string        `json:"triggers"`
	Expressions []string        `json:"expressions,omitempty"`
}

// Match is one pattern hit against an utterance.
type Match struct {
	PatternID string          `json:"pattern_id"`
	TargetID  string          `json:"target_id"`
	Domain    taxonomy.Domain `json:"domain"`
	Trigger   string          `json:"trigger"`
}

type compiled struct {
	def      Definition
	triggers []*regexp.Regexp
	regexes  []*regexp.Regexp
}

// Registry holds the compiled pattern pools. Immutable after
// construction.
type Registry struct {
	intent   []*compiled
	workflow []*compiled
	byID     map[string]*compiled
}

// NewRegistry validates and compiles the given definitions. It fails
// when an id repeats, a pool or domain is unknown, a pattern has no
// triggers, or an expression does not compile.
func NewRegistry(defs []Definition) (*Registry, error) {
	r := &Registry{byID: make(map[string]*compiled, len(defs))}
	for _, def := range defs {
		if def.ID == "" {
			return nil, fmt.Errorf("pattern has empty id")
		}
		if _, exists := r.byID[def.ID]; exists {
			return nil, fmt.Errorf("duplicate pattern id %q", def.ID)
		}
		if def.Pool != PoolIntent && def.Pool != PoolWorkflow {
			return nil, fmt.Errorf("pattern %s: unknown pool %q", def.ID, def.Pool)
		}
		if !def.Domain.Valid() {
			return nil, fmt.Errorf("pattern %s: unknown domain %q", def.ID, def.Domain)
		}
		if def.TargetID == "" {
			return nil, fmt.Errorf("pattern %s: empty target id", def.ID)
		}
		if len(def.Triggers) == 0 && len(def.Expressions) == 0 {
			return nil, fmt.Errorf("pattern %s: no triggers or expressions", def.ID)
		}

		c := &compiled{def: def}
		for _, trig := range def.Triggers {
			trig = strings.ToLower(strings.TrimSpace(trig))
			if trig == "" {
				return nil, fmt.Errorf("pattern %s: empty trigger", def.ID)
			}
			re, err := regexp.Compile(`\b` + regexp.QuoteMeta(trig) + `\b`)
			if err != nil {
				return nil, fmt.Errorf("pattern %s: trigger %q: %w", def.ID, trig, err)
			}
			c.triggers = append(c.triggers, re)
		}
		for _, expr := range def.Expressions {
			re, err := regexp.Compile(`(?i)` + expr)
			if err != nil {
				return nil, fmt.Errorf("pattern %s: expression %q: %w", def.ID, expr, err)
			}
			c.regexes = append(c.regexes, re)
		}

		r.byID[def.ID] = c
		switch def.Pool {
		case PoolIntent:
			r.intent = append(r.intent, c)
		case PoolWorkflow:
			r.workflow = append(r.workflow, c)
		}
	}
	return r, nil
}

// Get returns the definition for id, or false when unknown.
func (r *Registry) Get(id string) (Definition, bool) {
	c, ok := r.byID[id]
	if !ok {
		return Definition{}, false
	}
	return c.def, true
}

// IntentPatterns returns the intent pool definitions in registration
// order.
func (r *Registry) IntentPatterns() []Definition {
	return definitions(r.intent)
}

// WorkflowPatterns returns the workflow pool definitions in
// registration order.
func (r *Registry) WorkflowPatterns() []Definition {
	return definitions(r.workflow)
}

func definitions(pool []*compiled) []Definition {
	out := make([]Definition, len(pool))
	for i, c := range pool {
		out[i] = c.def
	}
	return out
}

// MatchIntents returns every intent pattern that fires on text, in
// registration order. Matching is case-insensitive on word boundaries.
func (r *Registry) MatchIntents(text string) []Match {
	return matchPool(r.intent, text)
}

// MatchWorkflows returns every workflow pattern that fires on text, in
// registration order.
func (r *Registry) MatchWorkflows(text string) []Match {
	return matchPool(r.workflow, text)
}

func matchPool(pool []*compiled, text string) []Match {
	lower := strings.ToLower(text)
	var out []Match
	for _, c := range pool {
		if trigger, ok := c.match(lower, text); ok {
			out = append(out, Match{
				PatternID: c.def.ID,
				TargetID:  c.def.TargetID,
				Domain:    c.def.Domain,
				Trigger:   trigger,
			})
		}
	}
	return out
}

// match reports the first trigger or expression that fires. Triggers
// are checked before expressions, each in declaration order.
func (c *compiled) match(lower, original string) (string, bool) {
	for _, re := range c.triggers {
		if loc := re.FindStringIndex(lower); loc != nil {
			return original[loc[0]:loc[1]], true
		}
	}
	for _, re := range c.regexes {
		if loc := re.FindStringIndex(original); loc != nil {
			return original[loc[0]:loc[1]], true
		}
	}
	return "", false
}

// OverlapPair records two same-pool patterns whose trigger phrases
// shadow each other.
type OverlapPair struct {
	PatternA string `json:"pattern_a"`
	PatternB string `json:"pattern_b"`
	Trigger  string `json:"trigger"`
}

// FindOverlapping reports pairs of patterns in the given pool where one
// pattern's trigger phrase would also fire the other pattern. Such
// pairs break mutual exclusivity and should fail the coverage gate.
func (r *Registry) FindOverlapping(pool Pool) []OverlapPair {
	var compiledPool []*compiled
	switch pool {
	case PoolIntent:
		compiledPool = r.intent
	case PoolWorkflow:
		compiledPool = r.workflow
	}

	var out []OverlapPair
	for i, a := range compiledPool {
		for _, rawTrig := range a.def.Triggers {
			trig := strings.ToLower(strings.TrimSpace(rawTrig))
			for j, b := range compiledPool {
				if i == j {
					continue
				}
				if _, ok := b.match(trig, trig); ok {
					out = append(out, OverlapPair{
						PatternA: a.def.ID,
						PatternB: b.def.ID,
						Trigger:  trig,
					})
				}
			}
		}
	}
	return out
}
