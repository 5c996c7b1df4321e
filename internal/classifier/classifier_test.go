package classifier

import (
	"testing"
	"time"

	"assistant-engine/internal/common/logger"
	"assistant-engine/internal/pattern"
	"assistant-engine/internal/taxonomy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refNow = time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

func newDefaultClassifier(t *testing.T) *Classifier {
	t.Helper()
	intents, err := taxonomy.NewRegistry(taxonomy.DefaultIntents())
	require.NoError(t, err)
	patterns, err := pattern.NewRegistry(pattern.DefaultPatterns())
	require.NoError(t, err)
	c, err := New(intents, patterns, DefaultWeights, logger.NewTestLogger(t))
	require.NoError(t, err)
	return c
}

func TestClassify_LeadWithRoute(t *testing.T) {
	c := newDefaultClassifier(t)

	res := c.Classify("new lead from John Smith, 555-0100", "lead", refNow)
	require.True(t, res.Classified)
	assert.Equal(t, "lead.create", res.IntentID)
	assert.Equal(t, taxonomy.DomainLeadGeneration, res.Domain)
	assert.InDelta(t, 1.0, res.Confidence, 0.001)
	assert.Empty(t, res.MissingEntities)
	assert.False(t, res.NeedsClarification)

	name, ok := res.Entities.First(taxonomy.EntityName)
	require.True(t, ok)
	assert.Equal(t, "John Smith", name.Normalized)
	phone, ok := res.Entities.First(taxonomy.EntityPhone)
	require.True(t, ok)
	assert.Equal(t, "+15550100", phone.Normalized)
}

func TestClassify_RouteIsSoftPreference(t *testing.T) {
	c := newDefaultClassifier(t)

	// Without a route the pattern still classifies, just lower.
	res := c.Classify("new lead from John Smith, 555-0100", "", refNow)
	require.True(t, res.Classified)
	assert.Equal(t, "lead.create", res.IntentID)
	assert.InDelta(t, 0.75, res.Confidence, 0.001)

	// A mismatched route never filters the candidate out.
	res = c.Classify("new lead from John Smith, 555-0100", "invoices", refNow)
	require.True(t, res.Classified)
	assert.Equal(t, "lead.create", res.IntentID)
	assert.InDelta(t, 0.75, res.Confidence, 0.001)
	assert.False(t, res.Candidates[0].RouteBoost)
}

func TestClassify_NoMatch(t *testing.T) {
	c := newDefaultClassifier(t)

	res := c.Classify("hello there", "", refNow)
	assert.False(t, res.Classified)
	assert.Empty(t, res.IntentID)
	assert.Zero(t, res.Confidence)
	assert.True(t, res.NeedsClarification)
	assert.NotEmpty(t, res.Clarification)
}

func TestClassify_MissingEntitiesAskClarification(t *testing.T) {
	c := newDefaultClassifier(t)

	res := c.Classify("add a lead for me", "lead", refNow)
	require.True(t, res.Classified)
	assert.Equal(t, "lead.create", res.IntentID)
	require.Len(t, res.MissingEntities, 2)
	// Missing entities follow the intent's declared required order.
	assert.Equal(t, taxonomy.EntityName, res.MissingEntities[0])
	assert.Equal(t, taxonomy.EntityPhone, res.MissingEntities[1])
	assert.True(t, res.NeedsClarification)
	assert.Contains(t, res.Clarification, "name")
	assert.Contains(t, res.Clarification, "phone")
}

func TestClassify_RouteBreaksTies(t *testing.T) {
	intents, err := taxonomy.NewRegistry([]taxonomy.IntentDefinition{
		{ID: "quote.settle", Domain: taxonomy.DomainQuoting, Risk: taxonomy.RiskLow},
		{ID: "invoice.settle", Domain: taxonomy.DomainInvoicing, Risk: taxonomy.RiskLow},
	})
	require.NoError(t, err)
	patterns, err := pattern.NewRegistry([]pattern.Definition{
		{ID: "p.quote", Pool: pattern.PoolIntent, TargetID: "quote.settle",
			Domain: taxonomy.DomainQuoting, Triggers: []string{"settle up"}},
		{ID: "p.invoice", Pool: pattern.PoolIntent, TargetID: "invoice.settle",
			Domain: taxonomy.DomainInvoicing, Triggers: []string{"settle up now"}},
	})
	require.NoError(t, err)
	c, err := New(intents, patterns, DefaultWeights, logger.NewNoOpLogger())
	require.NoError(t, err)

	// Both patterns fire. Without a route the tie resolves by
	// registration order.
	res := c.Classify("lets settle up now", "", refNow)
	require.True(t, res.Classified)
	assert.Equal(t, "quote.settle", res.IntentID)

	// The invoices route tips the same utterance the other way.
	res = c.Classify("lets settle up now", "invoices", refNow)
	require.True(t, res.Classified)
	assert.Equal(t, "invoice.settle", res.IntentID)
	assert.True(t, res.Candidates[0].RouteBoost)
	assert.Len(t, res.Candidates, 2)
}

func TestClassify_Deterministic(t *testing.T) {
	c := newDefaultClassifier(t)
	a := c.Classify("resend the invoice INV-1042 tomorrow at 3pm", "invoices", refNow)
	b := c.Classify("resend the invoice INV-1042 tomorrow at 3pm", "invoices", refNow)
	assert.Equal(t, a, b)
}

func TestNew_Validation(t *testing.T) {
	intents, err := taxonomy.NewRegistry(taxonomy.DefaultIntents())
	require.NoError(t, err)

	t.Run("unknown target intent", func(t *testing.T) {
		patterns, err := pattern.NewRegistry([]pattern.Definition{
			{ID: "p", Pool: pattern.PoolIntent, TargetID: "nope",
				Domain: taxonomy.DomainQuoting, Triggers: []string{"x"}},
		})
		require.NoError(t, err)
		_, err = New(intents, patterns, DefaultWeights, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown intent")
	})

	t.Run("domain mismatch", func(t *testing.T) {
		patterns, err := pattern.NewRegistry([]pattern.Definition{
			{ID: "p", Pool: pattern.PoolIntent, TargetID: "lead.create",
				Domain: taxonomy.DomainQuoting, Triggers: []string{"x"}},
		})
		require.NoError(t, err)
		_, err = New(intents, patterns, DefaultWeights, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not match intent")
	})

	t.Run("bad weights", func(t *testing.T) {
		patterns, err := pattern.NewRegistry(pattern.DefaultPatterns())
		require.NoError(t, err)
		bad := Weights{Pattern: 0.2, Route: 0.5, Entity: 0.1, ClarificationThreshold: 0.45}
		_, err = New(intents, patterns, bad, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pattern > route > entity")
	})
}

func TestWeights_Validate(t *testing.T) {
	assert.NoError(t, DefaultWeights.Validate())

	w := DefaultWeights
	w.ClarificationThreshold = 1.5
	assert.Error(t, w.Validate())

	w = DefaultWeights
	w.Entity = 0
	assert.Error(t, w.Validate())

	// Correctly ordered weights whose sum exceeds 1 would report a
	// confidence above 1 on a full-signal match.
	w = Weights{Pattern: 0.7, Route: 0.4, Entity: 0.2, ClarificationThreshold: 0.45}
	err := w.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum to at most 1")
}

func TestClassify_ConfidenceBounded(t *testing.T) {
	intents, err := taxonomy.NewRegistry(taxonomy.DefaultIntents())
	require.NoError(t, err)
	patterns, err := pattern.NewRegistry(pattern.DefaultPatterns())
	require.NoError(t, err)

	// The tightest admissible weights: ordered and summing to exactly 1.
	w := Weights{Pattern: 0.60, Route: 0.25, Entity: 0.15, ClarificationThreshold: 0.45}
	c, err := New(intents, patterns, w, logger.NewNoOpLogger())
	require.NoError(t, err)

	res := c.Classify("new lead from John Smith, 555-0100", "lead", refNow)
	require.True(t, res.Classified)
	assert.LessOrEqual(t, res.Confidence, 1.0)
	assert.GreaterOrEqual(t, res.Confidence, 0.0)
}
