// Package classifier ranks intent patterns against an utterance and
// produces a deterministic classification. Scoring is rule-based: a
// pattern hit dominates, the conversation route is a soft preference,
// and extracted entities round out the score. The same text, route and
// reference time always produce the same result.
package classifier

import (
	"fmt"
	"sort"
	"time"

	"assistant-engine/internal/common/logger"
	"assistant-engine/internal/entity"
	"assistant-engine/internal/pattern"
	"assistant-engine/internal/taxonomy"
)

// Weights controls how the three scoring signals combine. The pattern
// signal must outweigh the route signal, and the route signal must
// outweigh the entity signal, so an explicit phrase always beats
// navigation context.
type Weights struct {
	Pattern                float64
	Route                  float64
	Entity                 float64
	ClarificationThreshold float64
}

// DefaultWeights are the shipped scoring weights.
var DefaultWeights = Weights{
	Pattern:                0.60,
	Route:                  0.25,
	Entity:                 0.15,
	ClarificationThreshold: 0.45,
}

// Validate enforces the signal ordering, the confidence ceiling and the
// threshold range.
func (w Weights) Validate() error {
	if w.Pattern <= 0 || w.Route <= 0 || w.Entity <= 0 {
		return fmt.Errorf("classifier weights must be positive")
	}
	if !(w.Pattern > w.Route && w.Route > w.Entity) {
		return fmt.Errorf("classifier weights must satisfy pattern > route > entity, got %.2f/%.2f/%.2f",
			w.Pattern, w.Route, w.Entity)
	}
	// The three signals sum to the maximum score, which is the reported
	// confidence. Confidence stays in [0,1] only if the sum does.
	if sum := w.Pattern + w.Route + w.Entity; sum > 1 {
		return fmt.Errorf("classifier weights must sum to at most 1, got %.2f", sum)
	}
	if w.ClarificationThreshold <= 0 || w.ClarificationThreshold >= 1 {
		return fmt.Errorf("clarification threshold must be in (0,1), got %.2f", w.ClarificationThreshold)
	}
	return nil
}

// Candidate is one scored intent in the ranking.
type Candidate struct {
	IntentID   string          `json:"intent_id"`
	PatternID  string          `json:"pattern_id"`
	Domain     taxonomy.Domain `json:"domain"`
	Trigger    string          `json:"trigger"`
	Score      float64         `json:"score"`
	RouteBoost bool            `json:"route_boost"`
}

// Result is the full classification outcome for one utterance.
type Result struct {
	Classified           bool                     `json:"classified"`
	IntentID             string                   `json:"intent_id,omitempty"`
	Domain               taxonomy.Domain          `json:"domain,omitempty"`
	Confidence           float64                  `json:"confidence"`
	RequiresConfirmation bool                     `json:"requires_confirmation"`
	Risk                 taxonomy.RiskLevel       `json:"risk,omitempty"`
	Entities             *entity.ExtractionResult `json:"entities"`
	MissingEntities      []taxonomy.EntityType    `json:"missing_entities,omitempty"`
	Candidates           []Candidate              `json:"candidates,omitempty"`
	NeedsClarification   bool                     `json:"needs_clarification"`
	Clarification        string                   `json:"clarification,omitempty"`
}

// Classifier scores utterances against the intent pattern pool.
type Classifier struct {
	intents   *taxonomy.Registry
	patterns  *pattern.Registry
	extractor *entity.Extractor
	weights   Weights
	log       logger.Logger
}

// New builds a classifier over the given registries. Every intent-pool
// pattern must target a known intent whose domain matches the
// pattern's; violations are construction errors.
func New(intents *taxonomy.Registry, patterns *pattern.Registry, weights Weights, log logger.Logger) (*Classifier, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	for _, def := range patterns.IntentPatterns() {
		intentDef, ok := intents.Get(def.TargetID)
		if !ok {
			return nil, fmt.Errorf("pattern %s targets unknown intent %q", def.ID, def.TargetID)
		}
		if intentDef.Domain != def.Domain {
			return nil, fmt.Errorf("pattern %s domain %q does not match intent %s domain %q",
				def.ID, def.Domain, intentDef.ID, intentDef.Domain)
		}
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Classifier{
		intents:   intents,
		patterns:  patterns,
		extractor: entity.NewExtractor(),
		weights:   weights,
		log:       log,
	}, nil
}

// Classify scores text against the intent pool. route is the
// conversation route the user is in ("" when unknown); it only nudges
// ranking, it never filters candidates. now anchors relative date
// extraction.
func (c *Classifier) Classify(text, route string, now time.Time) *Result {
	extraction := c.extractor.Extract(text, now)
	matches := c.patterns.MatchIntents(text)

	result := &Result{Entities: extraction}
	if len(matches) == 0 {
		result.NeedsClarification = true
		result.Clarification = "I did not recognize a request in that message. Could you rephrase what you would like to do?"
		c.log.Debug("no intent pattern matched", map[string]interface{}{
			"route": route,
		})
		return result
	}

	routeDomain, routeKnown := taxonomy.DomainFromRoute(route)

	candidates := make([]Candidate, 0, len(matches))
	for _, m := range matches {
		def, _ := c.intents.Get(m.TargetID)
		score := c.weights.Pattern
		boost := routeKnown && def.Domain == routeDomain
		if boost {
			score += c.weights.Route
		}
		score += c.weights.Entity * requiredFraction(def, extraction)

		candidates = append(candidates, Candidate{
			IntentID:   def.ID,
			PatternID:  m.PatternID,
			Domain:     def.Domain,
			Trigger:    m.Trigger,
			Score:      score,
			RouteBoost: boost,
		})
	}

	// Stable sort keeps registration order for equal scores.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	top := candidates[0]
	def, _ := c.intents.Get(top.IntentID)

	result.Classified = true
	result.IntentID = def.ID
	result.Domain = def.Domain
	result.Confidence = top.Score
	result.Risk = def.Risk
	result.RequiresConfirmation = def.RequiresConfirmation
	result.Candidates = candidates
	result.MissingEntities = extraction.ValidateRequired(def)

	if top.Score < c.weights.ClarificationThreshold {
		result.NeedsClarification = true
		result.Clarification = ambiguityQuestion(candidates)
	} else if len(result.MissingEntities) > 0 {
		result.NeedsClarification = true
		result.Clarification = missingEntityQuestion(def, result.MissingEntities)
	}

	c.log.Debug("classified intent", map[string]interface{}{
		"intent":     result.IntentID,
		"confidence": result.Confidence,
		"candidates": len(candidates),
	})
	return result
}

// requiredFraction returns the share of the intent's required entity
// types present in the extraction. Intents with no requirements score
// the full entity signal.
func requiredFraction(def *taxonomy.IntentDefinition, res *entity.ExtractionResult) float64 {
	if len(def.RequiredEntities) == 0 {
		return 1.0
	}
	present := 0
	for _, et := range def.RequiredEntities {
		if res.HasType(et) {
			present++
		}
	}
	return float64(present) / float64(len(def.RequiredEntities))
}
