package pattern

import (
	"testing"

	"assistant-engine/internal/taxonomy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_Defaults(t *testing.T) {
	reg, err := NewRegistry(DefaultPatterns())
	require.NoError(t, err)
	assert.Len(t, reg.WorkflowPatterns(), 4)
	assert.NotEmpty(t, reg.IntentPatterns())
}

func TestNewRegistry_Validation(t *testing.T) {
	tests := []struct {
		name    string
		defs    []Definition
		wantErr string
	}{
		{
			name: "duplicate id",
			defs: []Definition{
				{ID: "p", Pool: PoolIntent, TargetID: "a", Domain: taxonomy.DomainQuoting, Triggers: []string{"x"}},
				{ID: "p", Pool: PoolIntent, TargetID: "b", Domain: taxonomy.DomainQuoting, Triggers: []string{"y"}},
			},
			wantErr: "duplicate pattern id",
		},
		{
			name:    "unknown pool",
			defs:    []Definition{{ID: "p", Pool: "other", TargetID: "a", Domain: taxonomy.DomainQuoting, Triggers: []string{"x"}}},
			wantErr: "unknown pool",
		},
		{
			name:    "no triggers",
			defs:    []Definition{{ID: "p", Pool: PoolIntent, TargetID: "a", Domain: taxonomy.DomainQuoting}},
			wantErr: "no triggers",
		},
		{
			name:    "bad expression",
			defs:    []Definition{{ID: "p", Pool: PoolIntent, TargetID: "a", Domain: taxonomy.DomainQuoting, Expressions: []string{"("}}},
			wantErr: "expression",
		},
		{
			name:    "unknown domain",
			defs:    []Definition{{ID: "p", Pool: PoolIntent, TargetID: "a", Domain: "nope", Triggers: []string{"x"}}},
			wantErr: "unknown domain",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.defs)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMatchIntents(t *testing.T) {
	reg, err := NewRegistry(DefaultPatterns())
	require.NoError(t, err)

	tests := []struct {
		text string
		want string // expected target intent id, "" means no match
	}{
		{"new lead from John Smith, 555-0100", "lead.create"},
		{"please CREATE A CUSTOMER for the Hendersons", "customer.create"},
		{"can you check availability for tomorrow", "schedule.check_availability"},
		{"resend the invoice INV-1042", "invoice.send"},
		{"issue a refund of $45.50", "payment.refund"},
		{"hello there", ""},
		{"misleading text", ""}, // "lead" inside a word must not fire
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			matches := reg.MatchIntents(tt.text)
			if tt.want == "" {
				assert.Empty(t, matches)
				return
			}
			require.Len(t, matches, 1)
			assert.Equal(t, tt.want, matches[0].TargetID)
			assert.NotEmpty(t, matches[0].Trigger)
		})
	}
}

func TestMatchWorkflows(t *testing.T) {
	reg, err := NewRegistry(DefaultPatterns())
	require.NoError(t, err)

	tests := []struct {
		text string
		want string
	}{
		{"schedule a site visit for 123 Main Street", "site-assessment"},
		{"contact the customer about the delay", "customer-communication"},
		{"follow up on the quote we sent", "quote-followup"},
		{"that overdue invoice needs attention", "invoice-collection"},
		{"hello there", ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			matches := reg.MatchWorkflows(tt.text)
			if tt.want == "" {
				assert.Empty(t, matches)
				return
			}
			require.Len(t, matches, 1)
			assert.Equal(t, tt.want, matches[0].TargetID)
		})
	}
}

func TestMatch_RegistrationOrder(t *testing.T) {
	defs := []Definition{
		{ID: "second-registered", Pool: PoolIntent, TargetID: "b", Domain: taxonomy.DomainQuoting, Triggers: []string{"quote it"}},
		{ID: "first-registered", Pool: PoolIntent, TargetID: "a", Domain: taxonomy.DomainQuoting, Triggers: []string{"price it"}},
	}
	reg, err := NewRegistry(defs)
	require.NoError(t, err)

	matches := reg.MatchIntents("quote it and price it")
	require.Len(t, matches, 2)
	assert.Equal(t, "second-registered", matches[0].PatternID)
	assert.Equal(t, "first-registered", matches[1].PatternID)
}

func TestFindOverlapping(t *testing.T) {
	// The shipped registry must be mutually exclusive within each pool.
	reg, err := NewRegistry(DefaultPatterns())
	require.NoError(t, err)
	assert.Empty(t, reg.FindOverlapping(PoolIntent))
	assert.Empty(t, reg.FindOverlapping(PoolWorkflow))

	// A trigger that shadows another pattern's trigger is reported.
	defs := []Definition{
		{ID: "narrow", Pool: PoolIntent, TargetID: "a", Domain: taxonomy.DomainQuoting, Triggers: []string{"send the quote"}},
		{ID: "wide", Pool: PoolIntent, TargetID: "b", Domain: taxonomy.DomainQuoting, Triggers: []string{"quote"}},
	}
	reg, err = NewRegistry(defs)
	require.NoError(t, err)
	overlaps := reg.FindOverlapping(PoolIntent)
	require.NotEmpty(t, overlaps)
	assert.Equal(t, "narrow", overlaps[0].PatternA)
	assert.Equal(t, "wide", overlaps[0].PatternB)
}

func TestExpressions(t *testing.T) {
	defs := []Definition{
		{
			ID: "exp", Pool: PoolIntent, TargetID: "report.revenue",
			Domain:      taxonomy.DomainReporting,
			Expressions: []string{`revenue (for|in) (Q[1-4]|last quarter)`},
		},
	}
	reg, err := NewRegistry(defs)
	require.NoError(t, err)

	matches := reg.MatchIntents("show me revenue for Q3 please")
	require.Len(t, matches, 1)
	assert.Equal(t, "revenue for Q3", matches[0].Trigger)
}
